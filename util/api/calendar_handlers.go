package api

import (
	"net/http"
	"time"

	"dabois-portal/engine"
	"dabois-portal/models"
)

// MainCalendarHandler returns the merged calendar: every event (private ones
// redacted for the viewer), every trip as a span, and synthesized birthdays.
func MainCalendarHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	users, err := appStore.LoadUsers()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	events, err := appStore.LoadEvents()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	trips, err := appStore.LoadTrips()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	redacted := make([]models.Event, 0, len(events))
	for _, ev := range events {
		redacted = append(redacted, engine.RedactForViewer(ev, actor.Name))
	}
	birthdays := engine.Birthdays(users, time.Now().UTC())
	writeJSON(w, http.StatusOK, engine.MainCalendar(redacted, trips, birthdays))
}

// MyCalendarHandler returns only the events on the viewer's own calendar,
// flagging the days where more than one of them lands.
func MyCalendarHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	events, err := appStore.LoadEvents()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	mine := engine.UserCalendar(actor.Name, events)

	type entry struct {
		models.Event
		Clash bool `json:"clash"`
	}
	out := make([]entry, 0, len(mine))
	for _, ev := range mine {
		out = append(out, entry{Event: ev, Clash: engine.HasClash(ev.Date, mine)})
	}
	writeJSON(w, http.StatusOK, out)
}

// BirthdaysHandler returns the synthesized birthday entries on their own.
func BirthdaysHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	users, err := appStore.LoadUsers()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.Birthdays(users, time.Now().UTC()))
}
