package backend

import (
	"github.com/gogpu/render"
	"github.com/gogpu/render/softpipe"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU-based software backend.
	BackendSoftware = "software"
	// BackendNative is the name reserved for a GPU backend. It is not
	// compiled into this module; selecting it reports
	// ErrBackendNotAvailable through Get returning nil.
	BackendNative = "native"
)

// SoftwareBackend is a CPU-based rendering backend. Its contexts run
// the whole pipeline in process: vertex stage, triangle rasterization,
// depth test and texture sampling, all in package softpipe.
type SoftwareBackend struct {
	initialized bool
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() RenderBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software rendering backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.initialized = false
}

// NewContext creates a software rendering context.
func (b *SoftwareBackend) NewContext(width, height int) (render.Context, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	return softpipe.NewContext(width, height)
}
