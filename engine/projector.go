package engine

import (
	"sort"
	"time"

	"dabois-portal/models"
)

// The projector derives calendar views from events, trips and users without
// ever mutating them. Everything in this file is a pure function.

// BirthdayEntry is a synthesized calendar entry for one user's birthday.
type BirthdayEntry struct {
	UserName string    `json:"user_name"`
	Date     time.Time `json:"date"`
}

// CalendarEntry is one row of the merged calendar view.
type CalendarEntry struct {
	Kind      string           `json:"kind"` // "event", "trip" or "birthday"
	ID        string           `json:"id,omitempty"`
	Title     string           `json:"title"`
	Date      time.Time        `json:"date"`
	EndDate   time.Time        `json:"end_date,omitempty"`
	EventType models.EventType `json:"event_type,omitempty"`
	CreatedBy string           `json:"created_by,omitempty"`
	IsPrivate bool             `json:"is_private,omitempty"`
}

// Birthdays emits one entry per non-parent user for ref's year. During
// December it also emits the following year's entries so year-end views show
// the January birthdays coming up.
func Birthdays(users []models.User, ref time.Time) []BirthdayEntry {
	years := []int{ref.Year()}
	if ref.Month() == time.December {
		years = append(years, ref.Year()+1)
	}

	var entries []BirthdayEntry
	for _, year := range years {
		for _, u := range users {
			if u.Role == models.RoleParent || u.Birthday.IsZero() {
				continue
			}
			entries = append(entries, BirthdayEntry{
				UserName: u.Name,
				Date:     time.Date(year, u.Birthday.Month(), u.Birthday.Day(), 0, 0, 0, 0, time.UTC),
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].UserName < entries[j].UserName
	})
	return entries
}

// MainCalendar unions all events (privacy is a display concern, not a
// filter), all trips as date spans, and the synthesized birthdays, sorted by
// date.
func MainCalendar(events []models.Event, trips []models.Trip, birthdays []BirthdayEntry) []CalendarEntry {
	entries := make([]CalendarEntry, 0, len(events)+len(trips)+len(birthdays))
	for _, ev := range events {
		entries = append(entries, CalendarEntry{
			Kind:      "event",
			ID:        ev.ID,
			Title:     ev.Title,
			Date:      dateOnly(ev.Date),
			EventType: ev.Type,
			CreatedBy: ev.CreatedBy,
			IsPrivate: ev.IsPrivate,
		})
	}
	for _, t := range trips {
		entries = append(entries, CalendarEntry{
			Kind:    "trip",
			ID:      t.ID,
			Title:   t.Name,
			Date:    dateOnly(t.StartDate),
			EndDate: dateOnly(t.EndDate),
		})
	}
	for _, b := range birthdays {
		entries = append(entries, CalendarEntry{
			Kind:      "birthday",
			Title:     b.UserName,
			Date:      b.Date,
			CreatedBy: b.UserName,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}

// UserCalendar keeps the group events the user accepted plus their own
// personal events. Unaccepted group events and other users' personal events
// are excluded.
func UserCalendar(username string, events []models.Event) []models.Event {
	var out []models.Event
	for _, ev := range events {
		switch ev.Type {
		case models.EventTypeGroup:
			if ev.Responses[username] == models.AvailabilityYes {
				out = append(out, ev)
			}
		case models.EventTypePersonal:
			if ev.CreatedBy == username {
				out = append(out, ev)
			}
		}
	}
	return out
}

// HasClash reports whether day hosts more than one event, of any type mix.
// This is a coarse day-granular heuristic, not a time-interval check.
func HasClash(day time.Time, events []models.Event) bool {
	count := 0
	for _, ev := range events {
		if sameDay(ev.Date, day) {
			count++
			if count > 1 {
				return true
			}
		}
	}
	return false
}

// RedactForViewer hides a private personal event from anyone but its creator,
// leaving only a "Busy" placeholder. The stored record is untouched.
func RedactForViewer(ev models.Event, viewer string) models.Event {
	if ev.Type == models.EventTypePersonal && ev.IsPrivate && ev.CreatedBy != viewer {
		ev.Title = "Busy"
		ev.Description = ""
	}
	return ev
}
