package models

import "time"

// ItineraryActivity is a time-boxed entry inside one itinerary day. Times are
// "HH:MM" strings; lexicographic comparison orders them correctly.
type ItineraryActivity struct {
	ID          string `json:"id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
}

// ItineraryDay buckets the activities scheduled on one calendar day. A day
// appears at most once per trip and is dropped when its last activity goes.
type ItineraryDay struct {
	Day        time.Time           `json:"day"`
	Activities []ItineraryActivity `json:"activities"`
}

// CostItem is one shared expense on a trip's ledger.
type CostItem struct {
	ID     string  `json:"id"`
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
	PaidBy string  `json:"paid_by"`
}

// Trip is a planned trip: an inclusive date range, a chosen attendee list, a
// day-keyed itinerary and a shared cost ledger. Publishing a trip creates a
// group event linked back via the event's TripID.
type Trip struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Destination string         `json:"destination"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	CreatedBy   string         `json:"created_by"`
	Attendees   []string       `json:"attendees"`
	Itinerary   []ItineraryDay `json:"itinerary,omitempty"`
	Costs       []CostItem     `json:"costs,omitempty"`
	Suggestions []Suggestion   `json:"suggestions,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
