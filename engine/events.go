package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dabois-portal/models"
)

// CreateEventInput carries the caller-supplied fields for a new event.
type CreateEventInput struct {
	Title         string
	Date          time.Time
	Description   string
	Type          models.EventType
	IsFamilyEvent bool
	IsPrivate     bool
}

// ImportedEvent is one entry produced by the calendar-import collaborator.
type ImportedEvent struct {
	Title       string
	Start       time.Time
	End         time.Time
	Description string
}

// CreateEvent creates a group or personal event. Non-admin actors always get
// a personal event regardless of the requested type. Group events snapshot a
// pending response for every non-parent user known right now; users added
// later are not retroactively included.
func (e *Engine) CreateEvent(actor Actor, in CreateEventInput) (models.Event, error) {
	if err := requireContentCreator(actor); err != nil {
		return models.Event{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.Event{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Date.IsZero() {
		return models.Event{}, fmt.Errorf("%w: date is required", ErrValidation)
	}

	typ := in.Type
	if !actor.IsAdmin() {
		typ = models.EventTypePersonal
	}
	if typ != models.EventTypeGroup && typ != models.EventTypePersonal {
		return models.Event{}, fmt.Errorf("%w: unknown event type %q", ErrValidation, in.Type)
	}

	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	events, err := e.store.LoadEvents()
	if err != nil {
		return models.Event{}, err
	}

	ev := models.Event{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(in.Title),
		Date:          dateOnly(in.Date),
		Description:   in.Description,
		Type:          typ,
		IsFamilyEvent: in.IsFamilyEvent,
		CreatedBy:     actor.Name,
		CreatedAt:     e.now(),
	}
	switch typ {
	case models.EventTypeGroup:
		users, err := e.store.LoadUsers()
		if err != nil {
			return models.Event{}, err
		}
		ev.Responses = pendingResponses(users)
	case models.EventTypePersonal:
		ev.IsPrivate = in.IsPrivate
		ev.Responses = map[string]models.Availability{actor.Name: models.AvailabilityYes}
	}

	events = append(events, ev)
	if err := e.store.SaveEvents(events); err != nil {
		return models.Event{}, err
	}
	log.Info().Str("event_id", ev.ID).Str("type", string(typ)).Str("created_by", actor.Name).Msg("event created")
	return ev, nil
}

// RespondToEvent records the actor's RSVP on a group event, overwriting any
// earlier answer. Responding to a missing event or a non-group event is an
// error rather than the silent no-op of the old portal.
func (e *Engine) RespondToEvent(actor Actor, eventID string, availability models.Availability) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.Role == models.RoleParent {
		return fmt.Errorf("%w: parents do not RSVP to events", ErrForbidden)
	}
	if !availability.Valid() {
		return fmt.Errorf("%w: unknown availability %q", ErrValidation, availability)
	}

	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	events, err := e.store.LoadEvents()
	if err != nil {
		return err
	}
	i := indexEvent(events, eventID)
	if i < 0 {
		return fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	if events[i].Type != models.EventTypeGroup {
		return fmt.Errorf("%w: responses are only tracked for group events", ErrValidation)
	}
	if events[i].Responses == nil {
		events[i].Responses = make(map[string]models.Availability)
	}
	events[i].Responses[actor.Name] = availability
	return e.store.SaveEvents(events)
}

// AddEventSuggestion appends a suggestion to an event's thread.
func (e *Engine) AddEventSuggestion(actor Actor, eventID, text string) error {
	if err := requireContentCreator(actor); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: suggestion text is required", ErrValidation)
	}

	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	events, err := e.store.LoadEvents()
	if err != nil {
		return err
	}
	i := indexEvent(events, eventID)
	if i < 0 {
		return fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	events[i].Suggestions = append(events[i].Suggestions, models.Suggestion{
		SuggestedBy: actor.Name,
		Text:        text,
	})
	return e.store.SaveEvents(events)
}

// UpdateEventInput carries the replaceable event fields. Responses and type
// are never touched by an update.
type UpdateEventInput struct {
	Title         string
	Date          time.Time
	Description   string
	IsFamilyEvent bool
}

// UpdateEvent replaces title, date, description and the family flag. Only the
// creator or an admin may update.
func (e *Engine) UpdateEvent(actor Actor, eventID string, in UpdateEventInput) (models.Event, error) {
	if err := requireActor(actor); err != nil {
		return models.Event{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.Event{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Date.IsZero() {
		return models.Event{}, fmt.Errorf("%w: date is required", ErrValidation)
	}

	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	events, err := e.store.LoadEvents()
	if err != nil {
		return models.Event{}, err
	}
	i := indexEvent(events, eventID)
	if i < 0 {
		return models.Event{}, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	if !actor.CanManage(events[i].CreatedBy) {
		return models.Event{}, fmt.Errorf("%w: only the creator or an admin may update an event", ErrForbidden)
	}
	events[i].Title = strings.TrimSpace(in.Title)
	events[i].Date = dateOnly(in.Date)
	events[i].Description = in.Description
	events[i].IsFamilyEvent = in.IsFamilyEvent
	if err := e.store.SaveEvents(events); err != nil {
		return models.Event{}, err
	}
	return events[i], nil
}

// DeleteEvent removes an event. Deleting a published trip event leaves the
// trip itself untouched.
func (e *Engine) DeleteEvent(actor Actor, eventID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	events, err := e.store.LoadEvents()
	if err != nil {
		return err
	}
	i := indexEvent(events, eventID)
	if i < 0 {
		return fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	if !actor.CanManage(events[i].CreatedBy) {
		return fmt.Errorf("%w: only the creator or an admin may delete an event", ErrForbidden)
	}
	events = append(events[:i], events[i+1:]...)
	return e.store.SaveEvents(events)
}

// ImportCalendar synthesizes a group event for every imported entry.
// Malformed entries are skipped, not fatal; the count of imported events is
// returned. Admin only, since group events are admin territory.
func (e *Engine) ImportCalendar(actor Actor, entries []ImportedEvent) (int, error) {
	if err := requireAdmin(actor); err != nil {
		return 0, err
	}

	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	users, err := e.store.LoadUsers()
	if err != nil {
		return 0, err
	}
	events, err := e.store.LoadEvents()
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, entry := range entries {
		if strings.TrimSpace(entry.Title) == "" || entry.Start.IsZero() {
			log.Warn().Str("title", entry.Title).Msg("skipping malformed calendar entry")
			continue
		}
		events = append(events, models.Event{
			ID:          uuid.NewString(),
			Title:       strings.TrimSpace(entry.Title),
			Date:        dateOnly(entry.Start),
			Description: entry.Description,
			Type:        models.EventTypeGroup,
			CreatedBy:   actor.Name,
			Responses:   pendingResponses(users),
			CreatedAt:   e.now(),
		})
		imported++
	}
	if imported == 0 {
		return 0, nil
	}
	if err := e.store.SaveEvents(events); err != nil {
		return 0, err
	}
	log.Info().Int("imported", imported).Str("by", actor.Name).Msg("calendar import complete")
	return imported, nil
}

// pendingResponses snapshots a pending RSVP for every non-parent user.
func pendingResponses(users []models.User) map[string]models.Availability {
	responses := make(map[string]models.Availability)
	for _, u := range users {
		if u.Role == models.RoleParent {
			continue
		}
		responses[u.Name] = models.AvailabilityPending
	}
	return responses
}

func indexEvent(events []models.Event, id string) int {
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}
