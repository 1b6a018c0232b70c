package engine

import (
	"errors"
	"testing"
	"time"

	"dabois-portal/models"
)

func TestAddItineraryItemScenarioA(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	_, err := e.AddItineraryItem(actors["alice"], trip.ID, day(2025, time.June, 4), "09:00", "10:00", "Surf lesson")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("day outside trip range must be rejected, got %v", err)
	}

	got, err := e.AddItineraryItem(actors["alice"], trip.ID, day(2025, time.June, 1), "09:00", "10:00", "Surf lesson")
	if err != nil {
		t.Fatalf("add itinerary item: %v", err)
	}
	if len(got.Itinerary) != 1 || len(got.Itinerary[0].Activities) != 1 {
		t.Fatalf("expected one day bucket with one activity, got %+v", got.Itinerary)
	}
}

func TestAddItineraryItemBoundaryDays(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	if _, err := e.AddItineraryItem(actors["alice"], trip.ID, day(2025, time.June, 3), "12:00", "13:00", "Lunch"); err != nil {
		t.Fatalf("end date itself must be accepted: %v", err)
	}
	// Time-of-day must not leak into the range check.
	noon := time.Date(2025, time.June, 1, 12, 30, 0, 0, time.UTC)
	if _, err := e.AddItineraryItem(actors["alice"], trip.ID, noon, "08:00", "09:00", "Breakfast"); err != nil {
		t.Fatalf("start date with time-of-day must be accepted: %v", err)
	}
}

func TestItineraryActivitiesStaySorted(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	d := day(2025, time.June, 2)
	e.AddItineraryItem(actors["alice"], trip.ID, d, "14:00", "15:00", "Museum")
	e.AddItineraryItem(actors["alice"], trip.ID, d, "09:00", "10:00", "Breakfast")
	got, err := e.AddItineraryItem(actors["alice"], trip.ID, d, "11:30", "12:30", "Walk")
	if err != nil {
		t.Fatalf("add itinerary item: %v", err)
	}

	acts := got.Itinerary[0].Activities
	want := []string{"09:00", "11:30", "14:00"}
	for i, w := range want {
		if acts[i].StartTime != w {
			t.Fatalf("activities out of order: %+v", acts)
		}
	}

	// Updating a start time re-sorts the bucket.
	got, err = e.UpdateItineraryItem(actors["alice"], trip.ID, acts[0].ID, "16:00", "17:00", "Breakfast, moved")
	if err != nil {
		t.Fatalf("update itinerary item: %v", err)
	}
	acts = got.Itinerary[0].Activities
	if acts[len(acts)-1].StartTime != "16:00" {
		t.Fatalf("bucket not re-sorted after update: %+v", acts)
	}
}

func TestDeleteLastActivityRemovesDayBucket(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	got, _ := e.AddItineraryItem(actors["alice"], trip.ID, day(2025, time.June, 2), "09:00", "10:00", "Breakfast")
	activityID := got.Itinerary[0].Activities[0].ID

	got, err := e.DeleteItineraryItem(actors["alice"], trip.ID, activityID)
	if err != nil {
		t.Fatalf("delete itinerary item: %v", err)
	}
	if len(got.Itinerary) != 0 {
		t.Fatalf("empty day bucket must be removed, got %+v", got.Itinerary)
	}

	_, err = e.DeleteItineraryItem(actors["alice"], trip.ID, activityID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted activity, got %v", err)
	}
}

func TestUpdateItineraryItemUnknownID(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	_, err := e.UpdateItineraryItem(actors["alice"], trip.ID, "nope", "09:00", "10:00", "x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestItineraryTimeValidation(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	if _, err := e.AddItineraryItem(actors["alice"], trip.ID, day(2025, time.June, 1), "9am", "10:00", "x"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad start time must be rejected, got %v", err)
	}
	if _, err := e.AddItineraryItem(actors["alice"], trip.ID, day(2025, time.June, 1), "09:00", "10:00", "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty description must be rejected, got %v", err)
	}
}

func TestCostLedgerScenarioC(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	if _, err := e.AddCostItem(actors["alice"], trip.ID, "Hotel", 300, "alice"); err != nil {
		t.Fatalf("add cost: %v", err)
	}
	got, err := e.AddCostItem(actors["bob"], trip.ID, "Food", 60, "bob")
	if err != nil {
		t.Fatalf("add cost: %v", err)
	}

	summary := SummarizeCosts(got)
	if summary.Total != 360 {
		t.Fatalf("expected total 360, got %f", summary.Total)
	}
	if summary.PerPerson != 120 {
		t.Fatalf("expected 120 per person, got %f", summary.PerPerson)
	}
}

func TestCostValidationAndEmptyAttendeeGuard(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	if _, err := e.AddCostItem(actors["alice"], trip.ID, "Hotel", -5, "alice"); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative amount must be rejected, got %v", err)
	}

	summary := SummarizeCosts(models.Trip{Costs: []models.CostItem{{Amount: 100}}})
	if summary.PerPerson != 100 {
		t.Fatalf("zero attendees must divide by one, got %f", summary.PerPerson)
	}
}

func TestRemoveCostItem(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	got, _ := e.AddCostItem(actors["alice"], trip.ID, "Hotel", 300, "alice")
	got, err := e.RemoveCostItem(actors["alice"], trip.ID, got.Costs[0].ID)
	if err != nil {
		t.Fatalf("remove cost: %v", err)
	}
	if len(got.Costs) != 0 {
		t.Fatalf("cost not removed: %+v", got.Costs)
	}
}

func TestPublishToEventScenarioD(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	ev, err := e.PublishToEvent(actors["alice"], trip.ID, true)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if ev.Type != models.EventTypeGroup || ev.TripID != trip.ID {
		t.Fatalf("published event malformed: %+v", ev)
	}
	if !ev.Date.Equal(trip.StartDate) || ev.Title != trip.Name {
		t.Fatalf("published event must snapshot trip name and start date: %+v", ev)
	}
	if len(ev.Responses) != 3 {
		t.Fatalf("published event must carry a pending roster: %v", ev.Responses)
	}

	_, err = e.PublishToEvent(actors["alice"], trip.ID, true)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("second publish must conflict, got %v", err)
	}
	events, _ := e.store.LoadEvents()
	if len(events) != 1 {
		t.Fatalf("conflict must not create a second event, got %d", len(events))
	}
}

func TestDeleteTripCascadesScenarioE(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	if _, err := e.PublishToEvent(actors["alice"], trip.ID, false); err != nil {
		t.Fatalf("publish: %v", err)
	}
	unrelated, err := e.CreateEvent(actors["alice"], CreateEventInput{
		Title: "Unrelated", Date: day(2025, time.July, 1), Type: models.EventTypeGroup,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := e.DeleteTrip(actors["bob"], trip.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("trip delete must be admin only, got %v", err)
	}
	if err := e.DeleteTrip(actors["alice"], trip.ID); err != nil {
		t.Fatalf("delete trip: %v", err)
	}

	events, _ := e.store.LoadEvents()
	if len(events) != 1 || events[0].ID != unrelated.ID {
		t.Fatalf("cascade removed the wrong events: %+v", events)
	}
	trips, _ := e.store.LoadTrips()
	if len(trips) != 0 {
		t.Fatal("trip not deleted")
	}
}

func TestCreateTripValidation(t *testing.T) {
	e, actors := newTestEngine(t)

	_, err := e.CreateTrip(actors["dave"], CreateTripInput{
		Name: "x", StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 2),
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("parents cannot create trips, got %v", err)
	}

	_, err = e.CreateTrip(actors["bob"], CreateTripInput{
		Name: "x", StartDate: day(2025, 6, 2), EndDate: day(2025, 6, 1),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("inverted range must be rejected, got %v", err)
	}

	_, err = e.CreateTrip(actors["bob"], CreateTripInput{
		Name: "x", StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 2),
		Attendees: []string{"mallory"},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown attendee must be rejected, got %v", err)
	}
}

func TestUpdateTripProtectsItinerary(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 5))
	e.AddItineraryItem(actors["alice"], trip.ID, day(2025, time.June, 5), "09:00", "10:00", "Checkout")

	_, err := e.UpdateTrip(actors["alice"], trip.ID, UpdateTripInput{
		Name: trip.Name, StartDate: day(2025, time.June, 1), EndDate: day(2025, time.June, 4),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("shrinking range past an itinerary day must be rejected, got %v", err)
	}

	got, err := e.UpdateTrip(actors["alice"], trip.ID, UpdateTripInput{
		Name: "Renamed", StartDate: day(2025, time.June, 1), EndDate: day(2025, time.June, 6),
	})
	if err != nil {
		t.Fatalf("update trip: %v", err)
	}
	if got.Name != "Renamed" || !got.EndDate.Equal(day(2025, time.June, 6)) {
		t.Fatalf("trip not updated: %+v", got)
	}
}

func TestSetTripAttendees(t *testing.T) {
	e, actors := newTestEngine(t)
	trip := mustCreateTrip(t, e, actors["alice"], day(2025, time.June, 1), day(2025, time.June, 3))

	got, err := e.SetTripAttendees(actors["alice"], trip.ID, []string{"bob", "bob", "carol"})
	if err != nil {
		t.Fatalf("set attendees: %v", err)
	}
	if len(got.Attendees) != 2 {
		t.Fatalf("attendees must be deduplicated: %v", got.Attendees)
	}
}
