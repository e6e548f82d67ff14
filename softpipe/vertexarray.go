package softpipe

import (
	"fmt"

	"github.com/gogpu/render"
)

// VertexArray is an interleaved per-vertex attribute source: an ordered
// attribute layout plus raw vertex words, one 32-bit word per
// component, with an optional index list. It seeds the vertex stage's
// input record for each vertex of a draw call.
type VertexArray struct {
	renderer *Renderer
	layout   []render.DataFormat
	stride   int // words per vertex
	words    []uint32
	indices  []int
	deleted  bool
}

func newVertexArray(r *Renderer, layout ...render.DataFormat) (*VertexArray, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("%w: empty vertex layout", ErrInvalidFormat)
	}
	stride := 0
	for _, f := range layout {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, f)
		}
		stride += f.WordSize()
	}
	return &VertexArray{renderer: r, layout: layout, stride: stride}, nil
}

// Layout returns the per-vertex attribute descriptors.
func (va *VertexArray) Layout() []render.DataFormat { return va.layout }

// Stride returns the number of words per vertex.
func (va *VertexArray) Stride() int { return va.stride }

// SetVertexData replaces the vertex words. The length must be a
// multiple of the layout stride.
func (va *VertexArray) SetVertexData(words []uint32) error {
	if len(words)%va.stride != 0 {
		return fmt.Errorf("%w: %d words, stride %d", ErrDataSize, len(words), va.stride)
	}
	va.words = make([]uint32, len(words))
	copy(va.words, words)
	return nil
}

// SetFloats replaces the vertex words from float values, storing each
// as its bit pattern. The layout's integer slots, if any, still read
// the raw words; SetFloats is a convenience for all-float layouts.
func (va *VertexArray) SetFloats(values ...float32) error {
	words := make([]uint32, len(values))
	for i, v := range values {
		words[i] = FloatBits(v)
	}
	return va.SetVertexData(words)
}

// SetIndices sets the index list. An empty list draws vertices
// sequentially.
func (va *VertexArray) SetIndices(indices ...int) {
	va.indices = indices
}

// Count returns the number of vertices a draw call consumes.
func (va *VertexArray) Count() int {
	if len(va.indices) > 0 {
		return len(va.indices)
	}
	return va.vertexCount()
}

func (va *VertexArray) vertexCount() int {
	return len(va.words) / va.stride
}

// index resolves draw position i to a vertex index.
func (va *VertexArray) index(i int) int {
	if len(va.indices) > 0 {
		return va.indices[i]
	}
	return i
}

// loadVertex copies vertex v's words into buf and rewinds it.
func (va *VertexArray) loadVertex(v int, buf *ShaderBuffer) {
	copy(buf.Words(), va.words[v*va.stride:(v+1)*va.stride])
	buf.Rewind()
}

// Draw submits the vertices as a triangle list. Other topologies are
// not supported by the software backend. Drawing a deleted vertex
// array is a program bug and panics.
func (va *VertexArray) Draw(mode render.DrawMode) error {
	if va.deleted {
		panic("softpipe: draw with deleted vertex array")
	}
	if mode != render.Triangles {
		return fmt.Errorf("%w: %v", ErrUnsupportedDrawMode, mode)
	}
	n := va.vertexCount()
	for _, i := range va.indices {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: %d of %d vertices", ErrIndexOutOfRange, i, n)
		}
	}
	return va.renderer.DrawTriangles(va)
}

// Delete releases the vertex data.
func (va *VertexArray) Delete() {
	va.words = nil
	va.indices = nil
	va.deleted = true
}
