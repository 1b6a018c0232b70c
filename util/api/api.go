// Package api holds the HTTP handlers. Handlers decode and validate input,
// resolve the acting user, call into the engine (or the store for the simple
// boards) and translate engine errors to HTTP statuses.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"dabois-portal/engine"
	"dabois-portal/geo"
	"dabois-portal/middleware"
	"dabois-portal/models"
	"dabois-portal/store"
)

var (
	appStore store.Store
	eng      *engine.Engine
	geocoder *geo.Geocoder
	validate = validator.New()

	// Per-collection write locks for the boards the engine does not own.
	linksMu     sync.Mutex
	memoriesMu  sync.Mutex
	locationsMu sync.Mutex
	wikiMu      sync.Mutex
	messagesMu  sync.Mutex
)

// Init wires the handler package's collaborators. Call once from main before
// serving.
func Init(s store.Store, e *engine.Engine, g *geo.Geocoder) {
	appStore = s
	eng = e
	geocoder = g
}

// actorFromRequest resolves the session user id placed in the context by the
// auth middleware into a full engine.Actor.
func actorFromRequest(r *http.Request) (engine.Actor, error) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return engine.Actor{}, errors.New("no session in context")
	}
	users, err := appStore.LoadUsers()
	if err != nil {
		return engine.Actor{}, err
	}
	for _, u := range users {
		if u.ID == userID {
			return engine.Actor{ID: u.ID, Name: u.Name, Role: u.Role}, nil
		}
	}
	return engine.Actor{}, fmt.Errorf("session user %s no longer exists", userID)
}

// requireActor writes the 401 itself when resolution fails.
func requireActor(w http.ResponseWriter, r *http.Request) (engine.Actor, bool) {
	actor, err := actorFromRequest(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return engine.Actor{}, false
	}
	return actor, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

// writeEngineError maps the engine's failure taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an infrastructure fault and comes back as
// a generic 500.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, engine.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, engine.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, engine.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, engine.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error().Err(err).Msg("internal error")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// userByName is a small lookup shared by a few handlers.
func userByName(name string) (models.User, bool, error) {
	users, err := appStore.LoadUsers()
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range users {
		if u.Name == name {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}
