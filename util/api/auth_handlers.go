package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"dabois-portal/util"
)

// LoginHandler checks name+password and issues a session cookie.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, found, err := userByName(req.Name)
	if err != nil {
		log.Error().Err(err).Msg("login: loading users")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Invalid name or password", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Str("name", req.Name).Msg("login failed: bad password")
		http.Error(w, "Invalid name or password", http.StatusUnauthorized)
		return
	}

	token, err := util.CreateSession(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("login: creating session")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     util.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info().Str("name", user.Name).Msg("login successful")
	writeJSON(w, http.StatusOK, user.PublicView())
}

// LogoutHandler drops the session and clears the cookie.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(util.SessionCookieName)
	if err != nil {
		http.Error(w, "No active session", http.StatusUnauthorized)
		return
	}
	util.DeleteSession(cookie.Value)

	http.SetCookie(w, &http.Cookie{
		Name:     util.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// WhoAmIHandler returns the session's user, including the force flags the
// frontend uses to route first-time logins.
func WhoAmIHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	user, found, err := userByName(actor.Name)
	if err != nil || !found {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user.PublicView())
}
