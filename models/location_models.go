package models

import "time"

// LocationKind separates home bases from travel pins on the map.
type LocationKind string

const (
	LocationHome   LocationKind = "home"
	LocationTravel LocationKind = "travel"
)

// Location is a geocoded pin on the group map.
type Location struct {
	ID        string       `json:"id"`
	City      string       `json:"city"`
	Country   string       `json:"country"`
	Label     string       `json:"label,omitempty"`
	Kind      LocationKind `json:"kind"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	AddedBy   string       `json:"added_by"`
	CreatedAt time.Time    `json:"created_at"`
}
