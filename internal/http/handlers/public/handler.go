package public

import "github.com/fretehub/fretehub/internal/provider"

// Handler serves the /api/v1 surface for shippers and carriers.
type Handler struct {
	*provider.Container
}

// New creates the API handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
