package dto

import "heroes-marathon-bot/internal/domain"

// ResultResponse is the public view of a finished run. The phone number is withheld.
type ResultResponse struct {
	ChatID     int64              `json:"chat_id"`
	Name       string             `json:"name"`
	Surname    string             `json:"surname"`
	Birthdate  string             `json:"birthdate"`
	StartTime  string             `json:"start_time"`
	FinishTime string             `json:"finish_time"`
	Start      domain.Coordinates `json:"start"`
	Finish     domain.Coordinates `json:"finish"`
	DistanceKm float64            `json:"distance_km"`
}

type ListResultsResponse struct {
	Count   int              `json:"count"`
	Results []ResultResponse `json:"results"`
}

func FromResult(r domain.Result) ResultResponse {
	return ResultResponse{
		ChatID:     r.ChatID,
		Name:       r.Name,
		Surname:    r.Surname,
		Birthdate:  r.Birthdate,
		StartTime:  r.StartTime,
		FinishTime: r.FinishTime,
		Start:      domain.Coordinates{Lat: r.StartLatitude, Lon: r.StartLongitude},
		Finish:     domain.Coordinates{Lat: r.FinishLatitude, Lon: r.FinishLongitude},
		DistanceKm: r.DistanceKm,
	}
}
