package backend

import (
	"errors"

	"github.com/gogpu/render"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// RenderBackend is the interface for rendering backends.
// It abstracts the rendering implementation, allowing the library to
// support multiple backends (software, GPU, etc.).
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "software").
	Name() string

	// Init initializes the backend.
	// This should be called before any contexts are created.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// NewContext creates a rendering context with a drawing surface of
	// the given dimensions.
	NewContext(width, height int) (render.Context, error)
}
