package api

import (
	"net/http"

	"dabois-portal/calendar"
	"dabois-portal/engine"
	"dabois-portal/models"
)

// CreateEventHandler creates a group or personal event. Non-admins always
// end up with a personal event; the engine enforces that.
func CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Title         string `json:"title" validate:"required"`
		Date          string `json:"date" validate:"required"`
		Description   string `json:"description"`
		Type          string `json:"type"`
		IsFamilyEvent bool   `json:"is_family_event"`
		IsPrivate     bool   `json:"is_private"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	date, valid := parseDate(req.Date)
	if !valid || date.IsZero() {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	typ := models.EventType(req.Type)
	if req.Type == "" {
		typ = models.EventTypePersonal
	}

	ev, err := eng.CreateEvent(actor, engine.CreateEventInput{
		Title:         req.Title,
		Date:          date,
		Description:   req.Description,
		Type:          typ,
		IsFamilyEvent: req.IsFamilyEvent,
		IsPrivate:     req.IsPrivate,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// ListEventsHandler returns every event, with private personal events
// redacted for everyone but their creator.
func ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	events, err := appStore.LoadEvents()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, engine.RedactForViewer(ev, actor.Name))
	}
	writeJSON(w, http.StatusOK, out)
}

// RespondToEventHandler records the actor's RSVP on a group event.
func RespondToEventHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Availability string `json:"availability" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	err := eng.RespondToEvent(actor, r.PathValue("eventID"), models.Availability(req.Availability))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Response recorded"})
}

// AddEventSuggestionHandler appends to the event's suggestion thread.
func AddEventSuggestionHandler(w http.ResponseWriter, r *http.Request) {
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
	if err := eng.AddEventSuggestion(actor, r.PathValue("eventID"), req.Text); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Suggestion added"})
}

// UpdateEventHandler replaces an event's editable fields.
func UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Title         string `json:"title" validate:"required"`
		Date          string `json:"date" validate:"required"`
		Description   string `json:"description"`
		IsFamilyEvent bool   `json:"is_family_event"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	date, valid := parseDate(req.Date)
	if !valid || date.IsZero() {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ev, err := eng.UpdateEvent(actor, r.PathValue("eventID"), engine.UpdateEventInput{
		Title:         req.Title,
		Date:          date,
		Description:   req.Description,
		IsFamilyEvent: req.IsFamilyEvent,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// DeleteEventHandler removes an event; deleting a published trip event never
// touches the trip.
func DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if err := eng.DeleteEvent(actor, r.PathValue("eventID")); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

// ImportCalendarHandler reads an iCalendar body and synthesizes group events
// from its entries. Malformed entries are skipped, not fatal.
func ImportCalendarHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	entries, err := calendar.Parse(r.Body)
	if err != nil {
		http.Error(w, "Could not parse calendar file", http.StatusBadRequest)
		return
	}
	imported := make([]engine.ImportedEvent, 0, len(entries))
	for _, entry := range entries {
		imported = append(imported, engine.ImportedEvent{
			Title:       entry.Title,
			Start:       entry.Start,
			End:         entry.End,
			Description: entry.Description,
		})
	}
	n, err := eng.ImportCalendar(actor, imported)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}
