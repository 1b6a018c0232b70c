package models

import "time"

// WiseWordCategory ranks a quote's rarity. Exotic beats Legendary beats
// Common when upvote counts tie.
type WiseWordCategory string

const (
	CategoryCommon    WiseWordCategory = "Common"
	CategoryLegendary WiseWordCategory = "Legendary"
	CategoryExotic    WiseWordCategory = "Exotic"
)

// Valid reports whether c is one of the known categories.
func (c WiseWordCategory) Valid() bool {
	return c == CategoryCommon || c == CategoryLegendary || c == CategoryExotic
}

// Rank returns the tie-break ordering for c; lower sorts first.
func (c WiseWordCategory) Rank() int {
	switch c {
	case CategoryExotic:
		return 0
	case CategoryLegendary:
		return 1
	default:
		return 2
	}
}

// WiseWord is one leaderboard quote. Upvotes holds user ids; each user
// contributes at most one, and upvoting again withdraws it.
type WiseWord struct {
	ID        string           `json:"id"`
	Phrase    string           `json:"phrase"`
	Author    string           `json:"author"`
	AddedBy   string           `json:"added_by"`
	Upvotes   []string         `json:"upvotes"`
	Pinned    bool             `json:"pinned"`
	Category  WiseWordCategory `json:"category"`
	CreatedAt time.Time        `json:"created_at"`
}

// HasUpvote reports whether userID already upvoted the word.
func (w WiseWord) HasUpvote(userID string) bool {
	for _, id := range w.Upvotes {
		if id == userID {
			return true
		}
	}
	return false
}
