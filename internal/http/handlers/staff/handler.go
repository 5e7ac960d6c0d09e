// Package staff exposes the warehouse-facing API: login, order intake,
// picking, control, surcharges and the admin overrides.
package staff

import "github.com/fleischwerk-next/internal/provider"

// Handler is the staff API handler.
type Handler struct {
	*provider.Container
}

// New creates the staff handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
