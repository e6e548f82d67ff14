package render

import "github.com/gogpu/gputypes"

// Capability is a pipeline toggle keyed by ordinal, forming a bit-set
// in the backend's state.
type Capability uint8

// Pipeline capabilities.
const (
	// CapDepthTest enables the per-fragment depth comparison.
	CapDepthTest Capability = iota
	// CapBlend is declared in the common API but not implemented by the
	// software backend.
	CapBlend
)

// Bit returns the capability's position in a capability bit-set.
func (c Capability) Bit() uint32 {
	return 1 << uint32(c)
}

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case CapDepthTest:
		return "depth_test"
	case CapBlend:
		return "blend"
	default:
		return "unknown"
	}
}

// DrawMode selects the primitive topology of a draw call. The software
// backend supports gputypes.PrimitiveTopologyTriangleList only.
type DrawMode = gputypes.PrimitiveTopology

// Triangles is the triangle-list draw mode.
const Triangles DrawMode = gputypes.PrimitiveTopologyTriangleList

// Rectangle is an integer pixel rectangle, used for viewports.
type Rectangle struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rectangle) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle covers no pixels.
func (r Rectangle) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the intersection of two rectangles. The result may
// be empty.
func (r Rectangle) Intersect(o Rectangle) Rectangle {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.Width, o.X+o.Width)
	y1 := min(r.Y+r.Height, o.Y+o.Height)
	return Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
