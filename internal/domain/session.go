package domain

import (
	"errors"
	"fmt"
	"time"

	apperrors "heroes-marathon-bot/internal/platform/errors"
)

// TimeLayout is the textual timestamp format of persisted start/finish times.
const TimeLayout = "2006-01-02 15:04:05"

// Fix is a geolocation captured at a point in time.
type Fix struct {
	Coordinates
	At time.Time `json:"at"`
}

// Session is the per-participant conversational state, keyed by chat id.
// Fields are filled step by step as the registration flow advances.
type Session struct {
	ChatID   int64    `json:"chat_id"`
	State    State    `json:"state"`
	Language Language `json:"language,omitempty"`

	Name       string `json:"name,omitempty"`
	Surname    string `json:"surname,omitempty"`
	BirthDay   string `json:"birth_day,omitempty"`
	BirthMonth string `json:"birth_month,omitempty"`
	BirthYear  string `json:"birth_year,omitempty"`
	Birthdate  string `json:"birthdate,omitempty"`
	Phone      string `json:"phone,omitempty"`

	Start      *Fix     `json:"start,omitempty"`
	Finish     *Fix     `json:"finish,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(chatID int64, now time.Time) *Session {
	return &Session{
		ChatID:    chatID,
		State:     StateSelectLanguage,
		UpdatedAt: now,
	}
}

// ComposeBirthdate builds "DD/MM/YYYY", substituting placeholder for missing parts.
func (s *Session) ComposeBirthdate(placeholder string) string {
	part := func(v string) string {
		if v == "" {
			return placeholder
		}
		return v
	}
	s.Birthdate = fmt.Sprintf("%s/%s/%s", part(s.BirthDay), part(s.BirthMonth), part(s.BirthYear))
	return s.Birthdate
}

// Result assembles the persisted record. Start, finish and distance must be set.
func (s *Session) Result() (Result, error) {
	if s.Start == nil {
		return Result{}, apperrors.ErrNoStartRecorded
	}
	if s.Finish == nil || s.DistanceKm == nil {
		return Result{}, errors.New("session result: finish not recorded")
	}

	return Result{
		ChatID:          s.ChatID,
		Name:            s.Name,
		Surname:         s.Surname,
		Birthdate:       s.Birthdate,
		PhoneNumber:     s.Phone,
		StartTime:       s.Start.At.Format(TimeLayout),
		StartLatitude:   s.Start.Lat,
		StartLongitude:  s.Start.Lon,
		FinishTime:      s.Finish.At.Format(TimeLayout),
		FinishLatitude:  s.Finish.Lat,
		FinishLongitude: s.Finish.Lon,
		DistanceKm:      *s.DistanceKm,
	}, nil
}
