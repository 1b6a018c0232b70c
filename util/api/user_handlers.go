package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"dabois-portal/engine"
	"dabois-portal/models"
)

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", value)
	return t, err == nil
}

// CreateUserHandler lets an admin add a member. The engine enforces the
// admin check and name uniqueness.
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name" validate:"required"`
		Role     string `json:"role" validate:"required"`
		Birthday string `json:"birthday"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	birthday, valid := parseDate(req.Birthday)
	if !valid {
		http.Error(w, "birthday must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("hashing password")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user, err := eng.CreateUser(actor, engine.CreateUserInput{
		Name:         req.Name,
		Role:         models.Role(req.Role),
		Birthday:     birthday,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user.PublicView())
}

// ListUsersHandler returns every member's public view.
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	users, err := appStore.LoadUsers()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	out := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.PublicView())
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateProfileHandler handles the self-service profile form; saving it
// clears the force-info-update flag.
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Birthday string `json:"birthday"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	birthday, valid := parseDate(req.Birthday)
	if !valid {
		http.Error(w, "birthday must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	user, err := eng.UpdateProfile(actor, engine.UpdateProfileInput{
		Birthday: birthday,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user.PublicView())
}

// ChangePasswordHandler verifies the current password before swapping in the
// new one; the change clears the force-password-change flag.
func ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, found, err := userByName(actor.Name)
	if err != nil || !found {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		http.Error(w, "Current password is incorrect", http.StatusForbidden)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("hashing password")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err := eng.ChangePassword(actor, string(hash)); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
}
