package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dabois-portal/models"
)

// AddLocationHandler geocodes a city+country pair and pins it on the map.
// Unresolvable places are rejected rather than pinned at 0,0.
func AddLocationHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if !actor.CanCreateContent() {
		http.Error(w, "Parents have read-only access", http.StatusForbidden)
		return
	}
	var req struct {
		City    string `json:"city" validate:"required"`
		Country string `json:"country" validate:"required"`
		Label   string `json:"label"`
		Kind    string `json:"kind" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	kind := models.LocationKind(req.Kind)
	if kind != models.LocationHome && kind != models.LocationTravel {
		http.Error(w, "kind must be home or travel", http.StatusBadRequest)
		return
	}

	coords, err := geocoder.Geocode(r.Context(), req.City, req.Country)
	if err != nil {
		log.Error().Err(err).Str("city", req.City).Msg("geocoding failed")
		http.Error(w, "Geocoding service unavailable", http.StatusBadGateway)
		return
	}
	if coords == nil {
		http.Error(w, "Could not resolve that place", http.StatusUnprocessableEntity)
		return
	}

	locationsMu.Lock()
	defer locationsMu.Unlock()
	locations, err := appStore.LoadLocations()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	loc := models.Location{
		ID:        uuid.NewString(),
		City:      req.City,
		Country:   req.Country,
		Label:     req.Label,
		Kind:      kind,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
		AddedBy:   actor.Name,
		CreatedAt: time.Now().UTC(),
	}
	locations = append(locations, loc)
	if err := appStore.SaveLocations(locations); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loc)
}

// ListLocationsHandler returns all map pins.
func ListLocationsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	locations, err := appStore.LoadLocations()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	writeJSON(w, http.StatusOK, locations)
}

// DeleteLocationHandler removes a pin. Admin or the user who added it.
func DeleteLocationHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	locationsMu.Lock()
	defer locationsMu.Unlock()
	locations, err := appStore.LoadLocations()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	id := r.PathValue("locationID")
	for i, loc := range locations {
		if loc.ID != id {
			continue
		}
		if !actor.CanManage(loc.AddedBy) {
			http.Error(w, "Only the adder or an admin may delete a pin", http.StatusForbidden)
			return
		}
		locations = append(locations[:i], locations[i+1:]...)
		if err := appStore.SaveLocations(locations); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Location deleted"})
		return
	}
	http.Error(w, "Location not found", http.StatusNotFound)
}
