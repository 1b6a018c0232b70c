package engine

import (
	"fmt"

	"dabois-portal/models"
)

// Actor is the authenticated caller as resolved by the identity layer. A zero
// Actor means "no session".
type Actor struct {
	ID   string
	Name string
	Role models.Role
}

// CanCreateContent reports whether the actor may create events, trips and
// suggestions. Parents are read/RSVP-limited.
func (a Actor) CanCreateContent() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleMember
}

// CanManage reports whether the actor may update or delete content owned by
// createdBy: admins always, everyone else only their own.
func (a Actor) CanManage(createdBy string) bool {
	return a.Role == models.RoleAdmin || a.Name == createdBy
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func requireActor(a Actor) error {
	if a.Name == "" || !a.Role.Valid() {
		return fmt.Errorf("%w: no valid session", ErrUnauthorized)
	}
	return nil
}

func requireContentCreator(a Actor) error {
	if err := requireActor(a); err != nil {
		return err
	}
	if !a.CanCreateContent() {
		return fmt.Errorf("%w: parents cannot create content", ErrForbidden)
	}
	return nil
}

func requireAdmin(a Actor) error {
	if err := requireActor(a); err != nil {
		return err
	}
	if !a.IsAdmin() {
		return fmt.Errorf("%w: admin only", ErrForbidden)
	}
	return nil
}
