package models

import "time"

// Availability is a user's RSVP state for a group event.
type Availability string

const (
	AvailabilityYes     Availability = "yes"
	AvailabilityNo      Availability = "no"
	AvailabilityMaybe   Availability = "maybe"
	AvailabilityPending Availability = "pending"
)

// Valid reports whether a is one of the known RSVP states.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityYes, AvailabilityNo, AvailabilityMaybe, AvailabilityPending:
		return true
	}
	return false
}

// EventType distinguishes group events (everyone RSVPs), personal calendar
// entries, and synthesized birthday entries.
type EventType string

const (
	EventTypeGroup    EventType = "group"
	EventTypePersonal EventType = "personal"
	EventTypeBirthday EventType = "birthday"
)

// Suggestion is a free-text proposal attached to an event or trip.
type Suggestion struct {
	SuggestedBy string `json:"suggested_by"`
	Text        string `json:"text"`
}

// Event is a day-granular calendar entry. Group events carry one response per
// non-parent user snapshotted at creation time; personal events carry exactly
// the creator's fixed "yes".
type Event struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Date          time.Time               `json:"date"`
	Description   string                  `json:"description"`
	Type          EventType               `json:"type"`
	IsFamilyEvent bool                    `json:"is_family_event"`
	IsPrivate     bool                    `json:"is_private"`
	CreatedBy     string                  `json:"created_by"`
	Responses     map[string]Availability `json:"responses"`
	Suggestions   []Suggestion            `json:"suggestions,omitempty"`
	TripID        string                  `json:"trip_id,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}
