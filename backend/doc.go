// Package backend provides a pluggable rendering backend abstraction.
//
// The backend package allows the render library to support multiple
// implementations of the common render.Context surface. Currently, only
// the software backend is available, but this architecture enables
// future GPU-accelerated backends.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/render/backend"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("software")
//
// # Usage
//
// A backend creates contexts that implement render.Context:
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	ctx, err := b.NewContext(800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Destroy()
//
// # Available Backends
//
// - "software": CPU pipeline emulation (always available)
// - "native": GPU-accelerated (reserved, not compiled in)
package backend
