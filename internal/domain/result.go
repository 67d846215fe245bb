package domain

// Result is the persisted outcome of one participant's run, unique per chat id.
type Result struct {
	ChatID          int64   `json:"chat_id"`
	Name            string  `json:"name"`
	Surname         string  `json:"surname"`
	Birthdate       string  `json:"birthdate"`
	PhoneNumber     string  `json:"phone_number"`
	StartTime       string  `json:"start_time"`
	StartLatitude   float64 `json:"start_latitude"`
	StartLongitude  float64 `json:"start_longitude"`
	FinishTime      string  `json:"finish_time"`
	FinishLatitude  float64 `json:"finish_latitude"`
	FinishLongitude float64 `json:"finish_longitude"`
	DistanceKm      float64 `json:"distance_km"`
}
