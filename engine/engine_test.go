package engine

import (
	"errors"
	"testing"
	"time"

	"dabois-portal/models"
	"dabois-portal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newTestEngine seeds three members (one admin), one parent, and returns the
// engine plus actors for each seeded user.
func newTestEngine(t *testing.T) (*Engine, map[string]Actor) {
	t.Helper()
	s := store.NewMemoryStore()
	users := []models.User{
		{ID: "u-alice", Name: "alice", Role: models.RoleAdmin, Birthday: day(1995, time.March, 14)},
		{ID: "u-bob", Name: "bob", Role: models.RoleMember, Birthday: day(1996, time.January, 2)},
		{ID: "u-carol", Name: "carol", Role: models.RoleMember, Birthday: day(1997, time.July, 30)},
		{ID: "u-dave", Name: "dave", Role: models.RoleParent},
	}
	if err := s.SaveUsers(users); err != nil {
		t.Fatalf("seed users: %v", err)
	}
	actors := make(map[string]Actor)
	for _, u := range users {
		actors[u.Name] = Actor{ID: u.ID, Name: u.Name, Role: u.Role}
	}
	return New(s), actors
}

func mustCreateTrip(t *testing.T, e *Engine, actor Actor, start, end time.Time) models.Trip {
	t.Helper()
	trip, err := e.CreateTrip(actor, CreateTripInput{
		Name:        "Summer Trip",
		Destination: "Lisbon",
		StartDate:   start,
		EndDate:     end,
		Attendees:   []string{"alice", "bob", "carol"},
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

func TestErrorsAreDistinguishable(t *testing.T) {
	e, actors := newTestEngine(t)

	_, err := e.CreateEvent(Actor{}, CreateEventInput{Title: "x", Date: day(2025, 6, 1)})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	_, err = e.CreateEvent(actors["dave"], CreateEventInput{Title: "x", Date: day(2025, 6, 1)})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for parent, got %v", err)
	}
	err = e.DeleteEvent(actors["alice"], "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
