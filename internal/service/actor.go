package service

import "github.com/fleischwerk-next/internal/constants"

// Actor identifies who runs a workflow operation. Staff actors carry a
// role; customer actors carry their customer id and the kunde role.
type Actor struct {
	StaffID    uint
	CustomerID uint
	Username   string
	Role       string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// CanPick reports whether the actor may run picking operations.
func (a Actor) CanPick() bool {
	return a.Role == constants.RoleAdmin || a.Role == constants.RoleKommissionierung
}

// CanControl reports whether the actor may run control operations.
func (a Actor) CanControl() bool {
	return a.Role == constants.RoleAdmin || a.Role == constants.RoleKontrolle
}
