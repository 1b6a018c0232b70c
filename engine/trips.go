package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dabois-portal/models"
)

// CreateTripInput carries the caller-supplied fields for a new trip.
type CreateTripInput struct {
	Name        string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Attendees   []string
}

// CreateTrip creates a trip with the attendee list chosen by the actor.
// Attendees must name existing users.
func (e *Engine) CreateTrip(actor Actor, in CreateTripInput) (models.Trip, error) {
	if err := requireContentCreator(actor); err != nil {
		return models.Trip{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return models.Trip{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return models.Trip{}, fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	start, end := dateOnly(in.StartDate), dateOnly(in.EndDate)
	if end.Before(start) {
		return models.Trip{}, fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()

	attendees, err := e.normalizeAttendees(in.Attendees)
	if err != nil {
		return models.Trip{}, err
	}

	trips, err := e.store.LoadTrips()
	if err != nil {
		return models.Trip{}, err
	}
	trip := models.Trip{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Destination: strings.TrimSpace(in.Destination),
		StartDate:   start,
		EndDate:     end,
		CreatedBy:   actor.Name,
		Attendees:   attendees,
		CreatedAt:   e.now(),
	}
	trips = append(trips, trip)
	if err := e.store.SaveTrips(trips); err != nil {
		return models.Trip{}, err
	}
	log.Info().Str("trip_id", trip.ID).Str("created_by", actor.Name).Msg("trip created")
	return trip, nil
}

// UpdateTripInput carries the replaceable trip fields.
type UpdateTripInput struct {
	Name        string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
}

// UpdateTrip replaces name, destination and the date range. Shrinking the
// range past an existing itinerary day is rejected so no bucket is orphaned.
func (e *Engine) UpdateTrip(actor Actor, tripID string, in UpdateTripInput) (models.Trip, error) {
	if err := requireActor(actor); err != nil {
		return models.Trip{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return models.Trip{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return models.Trip{}, fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	start, end := dateOnly(in.StartDate), dateOnly(in.EndDate)
	if end.Before(start) {
		return models.Trip{}, fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()

	trips, err := e.store.LoadTrips()
	if err != nil {
		return models.Trip{}, err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return models.Trip{}, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	if !actor.CanManage(trips[i].CreatedBy) {
		return models.Trip{}, fmt.Errorf("%w: only the creator or an admin may update a trip", ErrForbidden)
	}
	for _, day := range trips[i].Itinerary {
		d := dateOnly(day.Day)
		if d.Before(start) || d.After(end) {
			return models.Trip{}, fmt.Errorf("%w: itinerary day %s falls outside the new date range",
				ErrValidation, d.Format("2006-01-02"))
		}
	}
	trips[i].Name = strings.TrimSpace(in.Name)
	trips[i].Destination = strings.TrimSpace(in.Destination)
	trips[i].StartDate = start
	trips[i].EndDate = end
	if err := e.store.SaveTrips(trips); err != nil {
		return models.Trip{}, err
	}
	return trips[i], nil
}

// SetTripAttendees replaces the attendee list. Creator or admin only.
func (e *Engine) SetTripAttendees(actor Actor, tripID string, attendees []string) (models.Trip, error) {
	if err := requireActor(actor); err != nil {
		return models.Trip{}, err
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()

	normalized, err := e.normalizeAttendees(attendees)
	if err != nil {
		return models.Trip{}, err
	}
	trips, err := e.store.LoadTrips()
	if err != nil {
		return models.Trip{}, err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return models.Trip{}, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	if !actor.CanManage(trips[i].CreatedBy) {
		return models.Trip{}, fmt.Errorf("%w: only the creator or an admin may change attendees", ErrForbidden)
	}
	trips[i].Attendees = normalized
	if err := e.store.SaveTrips(trips); err != nil {
		return models.Trip{}, err
	}
	return trips[i], nil
}

// AddTripSuggestion appends a suggestion to a trip's thread.
func (e *Engine) AddTripSuggestion(actor Actor, tripID, text string) error {
	if err := requireContentCreator(actor); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: suggestion text is required", ErrValidation)
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()

	trips, err := e.store.LoadTrips()
	if err != nil {
		return err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	trips[i].Suggestions = append(trips[i].Suggestions, models.Suggestion{
		SuggestedBy: actor.Name,
		Text:        text,
	})
	return e.store.SaveTrips(trips)
}

// AddItineraryItem places an activity on a day inside the trip's date range
// (inclusive, day granularity). The day bucket is created on first use and
// its activities stay sorted by start time. Overlapping activities are
// allowed; overlap is a presentation concern.
func (e *Engine) AddItineraryItem(actor Actor, tripID string, day time.Time, startTime, endTime, description string) (models.Trip, error) {
	if err := requireContentCreator(actor); err != nil {
		return models.Trip{}, err
	}
	if err := validateActivity(startTime, endTime, description); err != nil {
		return models.Trip{}, err
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()

	trips, err := e.store.LoadTrips()
	if err != nil {
		return models.Trip{}, err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return models.Trip{}, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	d := dateOnly(day)
	if d.Before(dateOnly(trips[i].StartDate)) || d.After(dateOnly(trips[i].EndDate)) {
		return models.Trip{}, fmt.Errorf("%w: day %s is outside the trip dates",
			ErrValidation, d.Format("2006-01-02"))
	}

	activity := models.ItineraryActivity{
		ID:          uuid.NewString(),
		StartTime:   startTime,
		EndTime:     endTime,
		Description: strings.TrimSpace(description),
	}

	placed := false
	for j := range trips[i].Itinerary {
		if sameDay(trips[i].Itinerary[j].Day, d) {
			trips[i].Itinerary[j].Activities = append(trips[i].Itinerary[j].Activities, activity)
			sortActivities(trips[i].Itinerary[j].Activities)
			placed = true
			break
		}
	}
	if !placed {
		trips[i].Itinerary = append(trips[i].Itinerary, models.ItineraryDay{
			Day:        d,
			Activities: []models.ItineraryActivity{activity},
		})
		sort.Slice(trips[i].Itinerary, func(a, b int) bool {
			return trips[i].Itinerary[a].Day.Before(trips[i].Itinerary[b].Day)
		})
	}
	if err := e.store.SaveTrips(trips); err != nil {
		return models.Trip{}, err
	}
	return trips[i], nil
}

// UpdateItineraryItem replaces an activity's times and description wherever
// it lives; activity ids are unique across the whole trip, not per day.
func (e *Engine) UpdateItineraryItem(actor Actor, tripID, activityID, startTime, endTime, description string) (models.Trip, error) {
	if err := requireContentCreator(actor); err != nil {
		return models.Trip{}, err
	}
	if err := validateActivity(startTime, endTime, description); err != nil {
		return models.Trip{}, err
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()

	trips, err := e.store.LoadTrips()
	if err != nil {
		return models.Trip{}, err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return models.Trip{}, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	for j := range trips[i].Itinerary {
		for k := range trips[i].Itinerary[j].Activities {
			if trips[i].Itinerary[j].Activities[k].ID != activityID {
				continue
			}
			trips[i].Itinerary[j].Activities[k].StartTime = startTime
			trips[i].Itinerary[j].Activities[k].EndTime = endTime
			trips[i].Itinerary[j].Activities[k].Description = strings.TrimSpace(description)
			sortActivities(trips[i].Itinerary[j].Activities)
			if err := e.store.SaveTrips(trips); err != nil {
				return models.Trip{}, err
			}
			return trips[i], nil
		}
	}
	return models.Trip{}, fmt.Errorf("%w: activity %s", ErrNotFound, activityID)
}

// DeleteItineraryItem removes an activity; a day bucket left empty is removed
// from the itinerary entirely.
func (e *Engine) DeleteItineraryItem(actor Actor, tripID, activityID string) (models.Trip, error) {
	if err := requireContentCreator(actor); err != nil {
		return models.Trip{}, err
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()

	trips, err := e.store.LoadTrips()
	if err != nil {
		return models.Trip{}, err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return models.Trip{}, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	for j := range trips[i].Itinerary {
		for k := range trips[i].Itinerary[j].Activities {
			if trips[i].Itinerary[j].Activities[k].ID != activityID {
				continue
			}
			day := &trips[i].Itinerary[j]
			day.Activities = append(day.Activities[:k], day.Activities[k+1:]...)
			if len(day.Activities) == 0 {
				trips[i].Itinerary = append(trips[i].Itinerary[:j], trips[i].Itinerary[j+1:]...)
			}
			if err := e.store.SaveTrips(trips); err != nil {
				return models.Trip{}, err
			}
			return trips[i], nil
		}
	}
	return models.Trip{}, fmt.Errorf("%w: activity %s", ErrNotFound, activityID)
}

// AddCostItem appends a cost to the trip's ledger. Amounts must be finite and
// non-negative; the display layer assumes it can sum them.
func (e *Engine) AddCostItem(actor Actor, tripID, item string, amount float64, paidBy string) (models.Trip, error) {
	if err := requireContentCreator(actor); err != nil {
		return models.Trip{}, err
	}
	if strings.TrimSpace(item) == "" {
		return models.Trip{}, fmt.Errorf("%w: item label is required", ErrValidation)
	}
	if strings.TrimSpace(paidBy) == "" {
		return models.Trip{}, fmt.Errorf("%w: paidBy is required", ErrValidation)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return models.Trip{}, fmt.Errorf("%w: amount must be a non-negative number", ErrValidation)
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()

	trips, err := e.store.LoadTrips()
	if err != nil {
		return models.Trip{}, err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return models.Trip{}, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	trips[i].Costs = append(trips[i].Costs, models.CostItem{
		ID:     uuid.NewString(),
		Item:   strings.TrimSpace(item),
		Amount: amount,
		PaidBy: strings.TrimSpace(paidBy),
	})
	if err := e.store.SaveTrips(trips); err != nil {
		return models.Trip{}, err
	}
	return trips[i], nil
}

// RemoveCostItem deletes one ledger entry by id.
func (e *Engine) RemoveCostItem(actor Actor, tripID, costID string) (models.Trip, error) {
	if err := requireContentCreator(actor); err != nil {
		return models.Trip{}, err
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()

	trips, err := e.store.LoadTrips()
	if err != nil {
		return models.Trip{}, err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return models.Trip{}, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	for k := range trips[i].Costs {
		if trips[i].Costs[k].ID == costID {
			trips[i].Costs = append(trips[i].Costs[:k], trips[i].Costs[k+1:]...)
			if err := e.store.SaveTrips(trips); err != nil {
				return models.Trip{}, err
			}
			return trips[i], nil
		}
	}
	return models.Trip{}, fmt.Errorf("%w: cost item %s", ErrNotFound, costID)
}

// CostSummary holds the derived ledger totals; nothing here is stored.
type CostSummary struct {
	Total     float64 `json:"total"`
	PerPerson float64 `json:"per_person"`
}

// SummarizeCosts totals the ledger and splits it across attendees, guarding
// the empty-attendee divide.
func SummarizeCosts(trip models.Trip) CostSummary {
	var total float64
	for _, c := range trip.Costs {
		total += c.Amount
	}
	divisor := len(trip.Attendees)
	if divisor < 1 {
		divisor = 1
	}
	return CostSummary{Total: total, PerPerson: total / float64(divisor)}
}

// PublishToEvent converts a trip into a group event for RSVP purposes. A trip
// can be published once; a second call is a conflict.
func (e *Engine) PublishToEvent(actor Actor, tripID string, isFamilyEvent bool) (models.Event, error) {
	if err := requireActor(actor); err != nil {
		return models.Event{}, err
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()
	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	trips, err := e.store.LoadTrips()
	if err != nil {
		return models.Event{}, err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return models.Event{}, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	if !actor.CanManage(trips[i].CreatedBy) {
		return models.Event{}, fmt.Errorf("%w: only the creator or an admin may publish a trip", ErrForbidden)
	}

	events, err := e.store.LoadEvents()
	if err != nil {
		return models.Event{}, err
	}
	for _, ev := range events {
		if ev.TripID == tripID {
			return models.Event{}, fmt.Errorf("%w: trip %s is already published", ErrConflict, tripID)
		}
	}
	users, err := e.store.LoadUsers()
	if err != nil {
		return models.Event{}, err
	}

	ev := models.Event{
		ID:            uuid.NewString(),
		Title:         trips[i].Name,
		Date:          dateOnly(trips[i].StartDate),
		Description:   trips[i].Destination,
		Type:          models.EventTypeGroup,
		IsFamilyEvent: isFamilyEvent,
		CreatedBy:     actor.Name,
		Responses:     pendingResponses(users),
		TripID:        tripID,
		CreatedAt:     e.now(),
	}
	events = append(events, ev)
	if err := e.store.SaveEvents(events); err != nil {
		return models.Event{}, err
	}
	log.Info().Str("trip_id", tripID).Str("event_id", ev.ID).Msg("trip published to event")
	return ev, nil
}

// DeleteTrip removes a trip and cascades to any event published from it.
// Admin only.
func (e *Engine) DeleteTrip(actor Actor, tripID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	e.tripsMu.Lock()
	defer e.tripsMu.Unlock()
	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	trips, err := e.store.LoadTrips()
	if err != nil {
		return err
	}
	i := indexTrip(trips, tripID)
	if i < 0 {
		return fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	trips = append(trips[:i], trips[i+1:]...)
	if err := e.store.SaveTrips(trips); err != nil {
		return err
	}

	events, err := e.store.LoadEvents()
	if err != nil {
		return err
	}
	kept := events[:0]
	removed := 0
	for _, ev := range events {
		if ev.TripID == tripID {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	if removed == 0 {
		return nil
	}
	if err := e.store.SaveEvents(kept); err != nil {
		return err
	}
	log.Info().Str("trip_id", tripID).Int("events_removed", removed).Msg("trip deleted with cascade")
	return nil
}

func (e *Engine) normalizeAttendees(names []string) ([]string, error) {
	users, err := e.store.LoadUsers()
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(users))
	for _, u := range users {
		known[u.Name] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("%w: unknown attendee %q", ErrValidation, name)
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

func validateActivity(startTime, endTime, description string) error {
	if _, err := time.Parse("15:04", startTime); err != nil {
		return fmt.Errorf("%w: start time must be HH:MM", ErrValidation)
	}
	if _, err := time.Parse("15:04", endTime); err != nil {
		return fmt.Errorf("%w: end time must be HH:MM", ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}

// sortActivities orders a day's activities by start time; "HH:MM" strings
// compare correctly as text.
func sortActivities(activities []models.ItineraryActivity) {
	sort.SliceStable(activities, func(a, b int) bool {
		return activities[a].StartTime < activities[b].StartTime
	})
}

func indexTrip(trips []models.Trip, id string) int {
	for i := range trips {
		if trips[i].ID == id {
			return i
		}
	}
	return -1
}
