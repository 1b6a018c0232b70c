package api

import (
	"net/http"

	"dabois-portal/engine"
	"dabois-portal/models"
)

// CreateTripHandler creates a trip with an explicit attendee list.
func CreateTripHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Name        string   `json:"name" validate:"required"`
		Destination string   `json:"destination"`
		StartDate   string   `json:"start_date" validate:"required"`
		EndDate     string   `json:"end_date" validate:"required"`
		Attendees   []string `json:"attendees"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	start, okStart := parseDate(req.StartDate)
	end, okEnd := parseDate(req.EndDate)
	if !okStart || !okEnd || start.IsZero() || end.IsZero() {
		http.Error(w, "dates must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	trip, err := eng.CreateTrip(actor, engine.CreateTripInput{
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Attendees:   req.Attendees,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// ListTripsHandler returns all trips.
func ListTripsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	trips, err := appStore.LoadTrips()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTripHandler returns one trip by id.
func GetTripHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	trips, err := appStore.LoadTrips()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	for _, t := range trips {
		if t.ID == r.PathValue("tripID") {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	http.Error(w, "Trip not found", http.StatusNotFound)
}

// UpdateTripHandler replaces a trip's name, destination and date range.
func UpdateTripHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name" validate:"required"`
		Destination string `json:"destination"`
		StartDate   string `json:"start_date" validate:"required"`
		EndDate     string `json:"end_date" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	start, okStart := parseDate(req.StartDate)
	end, okEnd := parseDate(req.EndDate)
	if !okStart || !okEnd || start.IsZero() || end.IsZero() {
		http.Error(w, "dates must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	trip, err := eng.UpdateTrip(actor, r.PathValue("tripID"), engine.UpdateTripInput{
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteTripHandler removes a trip and cascades to its published event.
func DeleteTripHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if err := eng.DeleteTrip(actor, r.PathValue("tripID")); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Trip deleted"})
}

// SetTripAttendeesHandler replaces the attendee list.
func SetTripAttendeesHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Attendees []string `json:"attendees"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	trip, err := eng.SetTripAttendees(actor, r.PathValue("tripID"), req.Attendees)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// AddTripSuggestionHandler appends to the trip's suggestion thread.
func AddTripSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := eng.AddTripSuggestion(actor, r.PathValue("tripID"), req.Text); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Suggestion added"})
}

// AddItineraryItemHandler places an activity on a day within the trip range.
func AddItineraryItemHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Day         string `json:"day" validate:"required"`
		StartTime   string `json:"start_time" validate:"required"`
		EndTime     string `json:"end_time" validate:"required"`
		Description string `json:"description" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	day, valid := parseDate(req.Day)
	if !valid || day.IsZero() {
		http.Error(w, "day must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	trip, err := eng.AddItineraryItem(actor, r.PathValue("tripID"), day, req.StartTime, req.EndTime, req.Description)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// UpdateItineraryItemHandler replaces an activity's times and description.
func UpdateItineraryItemHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		StartTime   string `json:"start_time" validate:"required"`
		EndTime     string `json:"end_time" validate:"required"`
		Description string `json:"description" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	trip, err := eng.UpdateItineraryItem(actor, r.PathValue("tripID"), r.PathValue("activityID"),
		req.StartTime, req.EndTime, req.Description)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteItineraryItemHandler removes an activity (and its day bucket when it
// was the last one).
func DeleteItineraryItemHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	trip, err := eng.DeleteItineraryItem(actor, r.PathValue("tripID"), r.PathValue("activityID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// AddCostItemHandler appends to the trip's cost ledger.
func AddCostItemHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Item   string  `json:"item" validate:"required"`
		Amount float64 `json:"amount"`
		PaidBy string  `json:"paid_by" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	trip, err := eng.AddCostItem(actor, r.PathValue("tripID"), req.Item, req.Amount, req.PaidBy)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// DeleteCostItemHandler removes one ledger entry.
func DeleteCostItemHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	trip, err := eng.RemoveCostItem(actor, r.PathValue("tripID"), r.PathValue("costID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// CostSummaryHandler returns the derived ledger totals.
func CostSummaryHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	trips, err := appStore.LoadTrips()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	for _, t := range trips {
		if t.ID == r.PathValue("tripID") {
			writeJSON(w, http.StatusOK, engine.SummarizeCosts(t))
			return
		}
	}
	http.Error(w, "Trip not found", http.StatusNotFound)
}

// PublishTripHandler converts a trip into a group event for RSVPs.
func PublishTripHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		IsFamilyEvent bool `json:"is_family_event"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ev, err := eng.PublishToEvent(actor, r.PathValue("tripID"), req.IsFamilyEvent)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}
