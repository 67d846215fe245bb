package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	apperrors "heroes-marathon-bot/internal/platform/errors"
)

func TestSessionComposeBirthdate(t *testing.T) {
	s := NewSession(42, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	s.BirthDay = "07"
	s.BirthYear = "1990"

	got := s.ComposeBirthdate("Not provided")
	if got != "07/Not provided/1990" {
		t.Fatalf("birthdate = %q, want %q", got, "07/Not provided/1990")
	}
	if s.Birthdate != got {
		t.Errorf("Birthdate field not updated: %q", s.Birthdate)
	}
}

func TestSessionResult(t *testing.T) {
	startAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	finishAt := startAt.Add(55 * time.Minute)
	distance := 11.12

	s := NewSession(42, startAt)
	s.Name = "Olena"
	s.Surname = "Koval"
	s.Birthdate = "01/02/1990"
	s.Phone = "+380501112233"

	if _, err := s.Result(); !errors.Is(err, apperrors.ErrNoStartRecorded) {
		t.Fatalf("expected ErrNoStartRecorded, got %v", err)
	}

	s.Start = &Fix{Coordinates: Coordinates{Lat: 48.0, Lon: 24.0}, At: startAt}
	if _, err := s.Result(); err == nil {
		t.Fatal("expected error while finish is missing")
	}

	s.Finish = &Fix{Coordinates: Coordinates{Lat: 48.1, Lon: 24.0}, At: finishAt}
	s.DistanceKm = &distance

	r, err := s.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.StartTime != "2026-05-01 09:00:00" {
		t.Errorf("start time = %q", r.StartTime)
	}
	if r.FinishTime != "2026-05-01 09:55:00" {
		t.Errorf("finish time = %q", r.FinishTime)
	}
	if r.FinishLatitude != 48.1 || r.StartLongitude != 24.0 {
		t.Errorf("coordinates not copied: %+v", r)
	}
	if r.DistanceKm != distance || r.ChatID != 42 || r.PhoneNumber != "+380501112233" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestCoordinatesValidate(t *testing.T) {
	valid := []Coordinates{{0, 0}, {90, 180}, {-90, -180}, {48.1, 24}}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Errorf("%+v: unexpected error %v", c, err)
		}
	}

	invalid := []Coordinates{{90.01, 0}, {-91, 0}, {0, 180.5}, {0, -181}, {math.NaN(), 0}, {0, math.Inf(1)}}
	for _, c := range invalid {
		if err := c.Validate(); !errors.Is(err, apperrors.ErrInvalidCoordinates) {
			t.Errorf("%+v: expected ErrInvalidCoordinates, got %v", c, err)
		}
	}
}

func TestStateOrdering(t *testing.T) {
	if !StateEnterPhone.Before(StateAwaitStart) {
		t.Error("EnterPhone should come before AwaitStart")
	}
	if StateAwaitFinish.Before(StateAwaitStart) {
		t.Error("AwaitFinish should not come before AwaitStart")
	}
	if StateAwaitStart.Before(StateAwaitStart) {
		t.Error("a state is not before itself")
	}
}

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{"uk": Ukrainian, "uk-UA": Ukrainian, "en": English, "en-GB": English}
	for in, want := range cases {
		got, ok := ParseLanguage(in)
		if !ok || got != want {
			t.Errorf("ParseLanguage(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}

	if _, ok := ParseLanguage("de"); ok {
		t.Error("de should not be supported")
	}
	if _, ok := ParseLanguage("not a tag!"); ok {
		t.Error("garbage should not parse")
	}
}
