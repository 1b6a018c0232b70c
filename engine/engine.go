// Package engine implements the scheduling and availability core of the
// portal: event records with RSVP aggregation, trip planning with day-keyed
// itineraries and shared cost ledgers, the wise-words leaderboard, and the
// read-only calendar projections derived from all of them.
package engine

import (
	"sync"
	"time"

	"dabois-portal/store"
)

// Engine performs every mutation as one read-modify-write cycle against the
// store. Per-collection mutexes close the lost-update race between concurrent
// writers; operations that touch both trips and events always take the trip
// lock first.
type Engine struct {
	store store.Store

	usersMu  sync.Mutex
	eventsMu sync.Mutex
	tripsMu  sync.Mutex
	wordsMu  sync.Mutex

	// now is swappable for tests.
	now func() time.Time
}

// New returns an Engine backed by s.
func New(s store.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// dateOnly zeroes the time-of-day in UTC; all day-granular comparisons go
// through it.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}
