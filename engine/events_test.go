package engine

import (
	"errors"
	"testing"
	"time"

	"dabois-portal/models"
)

func TestCreateGroupEventSnapshotsPendingResponses(t *testing.T) {
	e, actors := newTestEngine(t)

	ev, err := e.CreateEvent(actors["alice"], CreateEventInput{
		Title: "Game night",
		Date:  day(2025, time.June, 10),
		Type:  models.EventTypeGroup,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if len(ev.Responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(ev.Responses))
	}
	for name, avail := range ev.Responses {
		if avail != models.AvailabilityPending {
			t.Fatalf("expected pending for %s, got %s", name, avail)
		}
	}
	if _, ok := ev.Responses["dave"]; ok {
		t.Fatal("parent must not appear in group event responses")
	}
}

func TestNonAdminEventIsForcedPersonal(t *testing.T) {
	e, actors := newTestEngine(t)

	ev, err := e.CreateEvent(actors["bob"], CreateEventInput{
		Title:     "Dentist",
		Date:      day(2025, time.June, 11),
		Type:      models.EventTypeGroup, // requested, but bob is not admin
		IsPrivate: true,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if ev.Type != models.EventTypePersonal {
		t.Fatalf("expected personal event, got %s", ev.Type)
	}
	if !ev.IsPrivate {
		t.Fatal("personal event should honor isPrivate")
	}
	if len(ev.Responses) != 1 || ev.Responses["bob"] != models.AvailabilityYes {
		t.Fatalf("personal event responses must be exactly {creator: yes}, got %v", ev.Responses)
	}
}

func TestRespondToEventScenarioB(t *testing.T) {
	e, actors := newTestEngine(t)

	ev, err := e.CreateEvent(actors["alice"], CreateEventInput{
		Title: "BBQ",
		Date:  day(2025, time.June, 12),
		Type:  models.EventTypeGroup,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := e.RespondToEvent(actors["bob"], ev.ID, models.AvailabilityYes); err != nil {
		t.Fatalf("respond: %v", err)
	}

	events, _ := e.store.LoadEvents()
	got := events[0].Responses
	if got["alice"] != models.AvailabilityPending || got["bob"] != models.AvailabilityYes || got["carol"] != models.AvailabilityPending {
		t.Fatalf("unexpected responses after RSVP: %v", got)
	}
}

func TestRespondToEventIsIdempotent(t *testing.T) {
	e, actors := newTestEngine(t)

	ev, _ := e.CreateEvent(actors["alice"], CreateEventInput{
		Title: "BBQ", Date: day(2025, time.June, 12), Type: models.EventTypeGroup,
	})
	if err := e.RespondToEvent(actors["bob"], ev.ID, models.AvailabilityMaybe); err != nil {
		t.Fatalf("first respond: %v", err)
	}
	if err := e.RespondToEvent(actors["bob"], ev.ID, models.AvailabilityMaybe); err != nil {
		t.Fatalf("second respond: %v", err)
	}
	events, _ := e.store.LoadEvents()
	if events[0].Responses["bob"] != models.AvailabilityMaybe {
		t.Fatalf("expected maybe, got %s", events[0].Responses["bob"])
	}
	if len(events[0].Responses) != 3 {
		t.Fatalf("responding twice must not grow the roster: %v", events[0].Responses)
	}
}

func TestRespondToEventRejectsNonGroupAndMissing(t *testing.T) {
	e, actors := newTestEngine(t)

	personal, _ := e.CreateEvent(actors["bob"], CreateEventInput{
		Title: "Dentist", Date: day(2025, time.June, 11),
	})
	err := e.RespondToEvent(actors["carol"], personal.ID, models.AvailabilityYes)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for non-group event, got %v", err)
	}
	err = e.RespondToEvent(actors["carol"], "missing", models.AvailabilityYes)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing event, got %v", err)
	}
	err = e.RespondToEvent(actors["dave"], personal.ID, models.AvailabilityYes)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for parent RSVP, got %v", err)
	}
}

func TestAddSuggestionRejectsEmptyText(t *testing.T) {
	e, actors := newTestEngine(t)

	ev, _ := e.CreateEvent(actors["alice"], CreateEventInput{
		Title: "BBQ", Date: day(2025, time.June, 12), Type: models.EventTypeGroup,
	})
	if err := e.AddEventSuggestion(actors["bob"], ev.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := e.AddEventSuggestion(actors["bob"], ev.ID, "bring ribs"); err != nil {
		t.Fatalf("add suggestion: %v", err)
	}
	events, _ := e.store.LoadEvents()
	if len(events[0].Suggestions) != 1 || events[0].Suggestions[0].SuggestedBy != "bob" {
		t.Fatalf("unexpected suggestions: %v", events[0].Suggestions)
	}
}

func TestUpdateEventNeverTouchesResponsesOrType(t *testing.T) {
	e, actors := newTestEngine(t)

	ev, _ := e.CreateEvent(actors["alice"], CreateEventInput{
		Title: "BBQ", Date: day(2025, time.June, 12), Type: models.EventTypeGroup,
	})
	e.RespondToEvent(actors["bob"], ev.ID, models.AvailabilityYes)

	updated, err := e.UpdateEvent(actors["alice"], ev.ID, UpdateEventInput{
		Title: "BBQ v2", Date: day(2025, time.June, 13), Description: "new place", IsFamilyEvent: true,
	})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if updated.Title != "BBQ v2" || !updated.IsFamilyEvent {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	if updated.Type != models.EventTypeGroup {
		t.Fatalf("update must not change type, got %s", updated.Type)
	}
	if updated.Responses["bob"] != models.AvailabilityYes {
		t.Fatalf("update must not touch responses: %v", updated.Responses)
	}

	_, err = e.UpdateEvent(actors["bob"], ev.ID, UpdateEventInput{Title: "x", Date: day(2025, 6, 13)})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-creator non-admin update should be forbidden, got %v", err)
	}
}

func TestDeleteEventAuthorizationAndNoCascade(t *testing.T) {
	e, actors := newTestEngine(t)

	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))
	published, err := e.PublishToEvent(actors["alice"], trip.ID, false)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if err := e.DeleteEvent(actors["carol"], published.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := e.DeleteEvent(actors["alice"], published.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	trips, _ := e.store.LoadTrips()
	if len(trips) != 1 {
		t.Fatal("deleting an event must not cascade to its trip")
	}
}

func TestImportCalendarSkipsMalformedEntries(t *testing.T) {
	e, actors := newTestEngine(t)

	entries := []ImportedEvent{
		{Title: "Concert", Start: day(2025, time.September, 5)},
		{Title: "", Start: day(2025, time.September, 6)}, // no title
		{Title: "Festival"},                              // no start
		{Title: "Road race", Start: day(2025, time.October, 1), Description: "10k"},
	}
	n, err := e.ImportCalendar(actors["alice"], entries)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}
	events, _ := e.store.LoadEvents()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, ev := range events {
		if ev.Type != models.EventTypeGroup {
			t.Fatalf("imported events must be group events, got %s", ev.Type)
		}
		if len(ev.Responses) != 3 {
			t.Fatalf("imported event must have pending roster, got %v", ev.Responses)
		}
		if ev.CreatedBy != "alice" {
			t.Fatalf("imported event creator should be the importer, got %s", ev.CreatedBy)
		}
	}

	if _, err := e.ImportCalendar(actors["bob"], entries); !errors.Is(err, ErrForbidden) {
		t.Fatalf("import should be admin only, got %v", err)
	}
}

func TestLaterUsersAreNotRetroactivelyAdded(t *testing.T) {
	e, actors := newTestEngine(t)

	ev, _ := e.CreateEvent(actors["alice"], CreateEventInput{
		Title: "BBQ", Date: day(2025, time.June, 12), Type: models.EventTypeGroup,
	})

	_, err := e.CreateUser(actors["alice"], CreateUserInput{
		Name: "erin", Role: models.RoleMember, PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	events, _ := e.store.LoadEvents()
	if _, ok := events[0].Responses["erin"]; ok {
		t.Fatal("users added after event creation must not join the roster")
	}
	if len(events[0].Responses) != len(ev.Responses) {
		t.Fatalf("roster changed: %v", events[0].Responses)
	}
}
