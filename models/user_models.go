package models

import "time"

// Role is a closed set: authorization is gated on it everywhere, never on
// free-form strings.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleParent Role = "parent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember || r == RoleParent
}

// User represents a portal member. Users are created by an admin (or seed
// data) and never deleted; parents get a read/RSVP-limited view of the portal.
// The API returns UserResponse, never User, so the password hash stays out of
// responses while still round-tripping through the store.
type User struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Role                Role      `json:"role"`
	Birthday            time.Time `json:"birthday"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	PasswordHash        string    `json:"password_hash"`
	ForceInfoUpdate     bool      `json:"force_info_update"`
	ForcePasswordChange bool      `json:"force_password_change"`
	CreatedAt           time.Time `json:"created_at"`
}

// UserResponse is the public view of a user returned by the API.
type UserResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Role                Role      `json:"role"`
	Birthday            time.Time `json:"birthday"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	ForceInfoUpdate     bool      `json:"force_info_update"`
	ForcePasswordChange bool      `json:"force_password_change"`
}

// PublicView strips auth material from a User.
func (u User) PublicView() UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Role:                u.Role,
		Birthday:            u.Birthday,
		Email:               u.Email,
		Phone:               u.Phone,
		ForceInfoUpdate:     u.ForceInfoUpdate,
		ForcePasswordChange: u.ForcePasswordChange,
	}
}
