package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dabois-portal/models"
)

// CreateUserInput carries the fields for an admin-created user. PasswordHash
// is already hashed; the engine never sees plaintext passwords.
type CreateUserInput struct {
	Name         string
	Role         models.Role
	Birthday     time.Time
	Email        string
	Phone        string
	PasswordHash string
}

// CreateUser adds a member. Admin only; names must be unique. New users start
// with both force flags set so their first login walks them through a
// password change and profile check.
func (e *Engine) CreateUser(actor Actor, in CreateUserInput) (models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return models.User{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.User{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !in.Role.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	if in.PasswordHash == "" {
		return models.User{}, fmt.Errorf("%w: password is required", ErrValidation)
	}

	e.usersMu.Lock()
	defer e.usersMu.Unlock()

	users, err := e.store.LoadUsers()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Name == name {
			return models.User{}, fmt.Errorf("%w: user %q already exists", ErrConflict, name)
		}
	}
	user := models.User{
		ID:                  uuid.NewString(),
		Name:                name,
		Role:                in.Role,
		Birthday:            in.Birthday,
		Email:               strings.TrimSpace(in.Email),
		Phone:               strings.TrimSpace(in.Phone),
		PasswordHash:        in.PasswordHash,
		ForceInfoUpdate:     true,
		ForcePasswordChange: true,
		CreatedAt:           e.now(),
	}
	users = append(users, user)
	if err := e.store.SaveUsers(users); err != nil {
		return models.User{}, err
	}
	log.Info().Str("user", name).Str("role", string(in.Role)).Msg("user created")
	return user, nil
}

// UpdateProfileInput carries the self-service profile fields.
type UpdateProfileInput struct {
	Birthday time.Time
	Email    string
	Phone    string
}

// UpdateProfile lets a user update their own contact details and clears the
// force-info-update flag.
func (e *Engine) UpdateProfile(actor Actor, in UpdateProfileInput) (models.User, error) {
	if err := requireActor(actor); err != nil {
		return models.User{}, err
	}

	e.usersMu.Lock()
	defer e.usersMu.Unlock()

	users, err := e.store.LoadUsers()
	if err != nil {
		return models.User{}, err
	}
	for i := range users {
		if users[i].ID != actor.ID {
			continue
		}
		users[i].Birthday = in.Birthday
		users[i].Email = strings.TrimSpace(in.Email)
		users[i].Phone = strings.TrimSpace(in.Phone)
		users[i].ForceInfoUpdate = false
		if err := e.store.SaveUsers(users); err != nil {
			return models.User{}, err
		}
		return users[i], nil
	}
	return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, actor.ID)
}

// ChangePassword swaps in a new (pre-hashed) password and clears the
// force-password-change flag.
func (e *Engine) ChangePassword(actor Actor, passwordHash string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if passwordHash == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}

	e.usersMu.Lock()
	defer e.usersMu.Unlock()

	users, err := e.store.LoadUsers()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != actor.ID {
			continue
		}
		users[i].PasswordHash = passwordHash
		users[i].ForcePasswordChange = false
		return e.store.SaveUsers(users)
	}
	return fmt.Errorf("%w: user %s", ErrNotFound, actor.ID)
}
