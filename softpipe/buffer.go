package softpipe

import (
	"fmt"

	"github.com/gogpu/render"
)

// ShaderBuffer is the attribute record for one vertex or one fragment:
// an ordered sequence of DataFormat-described slots backed by a flat
// array of 32-bit words. Float components are stored as their bit
// pattern, so the same array holds integer and float data without
// dynamic typing.
//
// A cursor walks the slots: every typed read or write consumes
// components of the current slot and advances to the next slot once the
// slot's component count is satisfied. A typed call never spills into
// the following slot — reading more components than the slot declares
// yields zeros, writing more is dropped — and reads or writes past the
// last slot are silently ignored.
type ShaderBuffer struct {
	formats []render.DataFormat
	starts  []int // word offset of each slot
	words   []uint32

	slot int // current slot index
	used int // components consumed in the current slot
}

// NewShaderBuffer creates a buffer for the given slot formats. The word
// capacity is the sum of the slots' component counts.
func NewShaderBuffer(formats ...render.DataFormat) *ShaderBuffer {
	starts := make([]int, len(formats))
	total := 0
	for i, f := range formats {
		if !f.Valid() {
			panic(fmt.Sprintf("softpipe: invalid slot format %v", f))
		}
		starts[i] = total
		total += f.WordSize()
	}
	return &ShaderBuffer{
		formats: formats,
		starts:  starts,
		words:   make([]uint32, total),
	}
}

// Formats returns the slot descriptors.
func (b *ShaderBuffer) Formats() []render.DataFormat { return b.formats }

// Capacity returns the total word capacity.
func (b *ShaderBuffer) Capacity() int { return len(b.words) }

// Position returns the index of the slot the cursor is on.
func (b *ShaderBuffer) Position() int { return b.slot }

// WordPosition returns the cursor's absolute word offset.
func (b *ShaderBuffer) WordPosition() int {
	if b.slot >= len(b.formats) {
		return len(b.words)
	}
	return b.starts[b.slot] + b.used
}

// Words exposes the raw word storage. Mutating it bypasses the slot
// discipline; the rasterizer uses this for bulk interpolation.
func (b *ShaderBuffer) Words() []uint32 { return b.words }

// Clear resets the cursor to the first slot for writing. The word
// contents are kept; records are reused across pipeline stages.
func (b *ShaderBuffer) Clear() {
	b.slot = 0
	b.used = 0
}

// Flip resets the cursor so a freshly written buffer can be read back.
func (b *ShaderBuffer) Flip() { b.Clear() }

// Rewind resets the cursor to the first slot.
func (b *ShaderBuffer) Rewind() { b.Clear() }

// Skip advances to the next slot without consuming components.
func (b *ShaderBuffer) Skip() {
	if b.slot < len(b.formats) {
		b.slot++
		b.used = 0
	}
}

// next advances the cursor to the following slot.
func (b *ShaderBuffer) next() {
	b.slot++
	b.used = 0
}

// readSlot reads up to n components of the current slot into dst,
// padding with zeros, then leaves the cursor per the slot discipline.
func (b *ShaderBuffer) readSlot(dst []uint32, n int) {
	for i := 0; i < n; i++ {
		dst[i] = 0
	}
	if b.slot >= len(b.formats) {
		return
	}
	remaining := b.formats[b.slot].Components - b.used
	k := min(n, remaining)
	base := b.starts[b.slot] + b.used
	copy(dst[:k], b.words[base:base+k])
	if n >= remaining {
		b.next()
	} else {
		b.used += n
	}
}

// writeSlot writes up to n components from src into the current slot,
// dropping the excess, then leaves the cursor per the slot discipline.
func (b *ShaderBuffer) writeSlot(src []uint32, n int) {
	if b.slot >= len(b.formats) {
		return
	}
	remaining := b.formats[b.slot].Components - b.used
	k := min(n, remaining)
	base := b.starts[b.slot] + b.used
	copy(b.words[base:base+k], src[:k])
	if n >= remaining {
		b.next()
	} else {
		b.used += n
	}
}

// ReadInt reads one integer component.
func (b *ShaderBuffer) ReadInt() int32 {
	var w [1]uint32
	b.readSlot(w[:], 1)
	return int32(w[0])
}

// ReadFloat reads one float component.
func (b *ShaderBuffer) ReadFloat() float32 {
	var w [1]uint32
	b.readSlot(w[:], 1)
	return FloatFromBits(w[0])
}

// ReadVec2f reads a 2-component float vector.
func (b *ShaderBuffer) ReadVec2f() [2]float32 {
	var w [2]uint32
	b.readSlot(w[:], 2)
	return [2]float32{FloatFromBits(w[0]), FloatFromBits(w[1])}
}

// ReadVec3f reads a 3-component float vector.
func (b *ShaderBuffer) ReadVec3f() [3]float32 {
	var w [3]uint32
	b.readSlot(w[:], 3)
	return [3]float32{FloatFromBits(w[0]), FloatFromBits(w[1]), FloatFromBits(w[2])}
}

// ReadVec4f reads a 4-component float vector.
func (b *ShaderBuffer) ReadVec4f() [4]float32 {
	var w [4]uint32
	b.readSlot(w[:], 4)
	return [4]float32{
		FloatFromBits(w[0]), FloatFromBits(w[1]),
		FloatFromBits(w[2]), FloatFromBits(w[3]),
	}
}

// ReadVec2i reads a 2-component integer vector.
func (b *ShaderBuffer) ReadVec2i() [2]int32 {
	var w [2]uint32
	b.readSlot(w[:], 2)
	return [2]int32{int32(w[0]), int32(w[1])}
}

// ReadVec3i reads a 3-component integer vector.
func (b *ShaderBuffer) ReadVec3i() [3]int32 {
	var w [3]uint32
	b.readSlot(w[:], 3)
	return [3]int32{int32(w[0]), int32(w[1]), int32(w[2])}
}

// ReadVec4i reads a 4-component integer vector.
func (b *ShaderBuffer) ReadVec4i() [4]int32 {
	var w [4]uint32
	b.readSlot(w[:], 4)
	return [4]int32{int32(w[0]), int32(w[1]), int32(w[2]), int32(w[3])}
}

// WriteInt writes one integer component.
func (b *ShaderBuffer) WriteInt(v int32) {
	w := [1]uint32{uint32(v)}
	b.writeSlot(w[:], 1)
}

// WriteFloat writes one float component.
func (b *ShaderBuffer) WriteFloat(v float32) {
	w := [1]uint32{FloatBits(v)}
	b.writeSlot(w[:], 1)
}

// WriteVec2f writes a 2-component float vector.
func (b *ShaderBuffer) WriteVec2f(v [2]float32) {
	w := [2]uint32{FloatBits(v[0]), FloatBits(v[1])}
	b.writeSlot(w[:], 2)
}

// WriteVec3f writes a 3-component float vector.
func (b *ShaderBuffer) WriteVec3f(v [3]float32) {
	w := [3]uint32{FloatBits(v[0]), FloatBits(v[1]), FloatBits(v[2])}
	b.writeSlot(w[:], 3)
}

// WriteVec4f writes a 4-component float vector.
func (b *ShaderBuffer) WriteVec4f(v [4]float32) {
	w := [4]uint32{FloatBits(v[0]), FloatBits(v[1]), FloatBits(v[2]), FloatBits(v[3])}
	b.writeSlot(w[:], 4)
}

// WriteVec2i writes a 2-component integer vector.
func (b *ShaderBuffer) WriteVec2i(v [2]int32) {
	w := [2]uint32{uint32(v[0]), uint32(v[1])}
	b.writeSlot(w[:], 2)
}

// WriteVec3i writes a 3-component integer vector.
func (b *ShaderBuffer) WriteVec3i(v [3]int32) {
	w := [3]uint32{uint32(v[0]), uint32(v[1]), uint32(v[2])}
	b.writeSlot(w[:], 3)
}

// WriteVec4i writes a 4-component integer vector.
func (b *ShaderBuffer) WriteVec4i(v [4]int32) {
	w := [4]uint32{uint32(v[0]), uint32(v[1]), uint32(v[2]), uint32(v[3])}
	b.writeSlot(w[:], 4)
}

// WriteRaw bulk-copies src's unread remainder into b word for word,
// ignoring slot types, and advances both cursors past the copied words.
func (b *ShaderBuffer) WriteRaw(src *ShaderBuffer) {
	n := min(len(src.words)-src.WordPosition(), len(b.words)-b.WordPosition())
	copy(b.words[b.WordPosition():], src.words[src.WordPosition():src.WordPosition()+n])
	b.advanceWords(n)
	src.advanceWords(n)
}

// advanceWords moves the cursor forward by n component words.
func (b *ShaderBuffer) advanceWords(n int) {
	for i := 0; i < n && b.slot < len(b.formats); i++ {
		b.used++
		if b.used == b.formats[b.slot].Components {
			b.next()
		}
	}
}

// Interpolate writes the linear interpolation of a and b by t into out,
// slot by slot starting at startSlot, operating directly on the raw
// word stream. Float components interpolate as floats; integer
// components interpolate in float and round back. The start offset
// exists to skip the clip-position slot, which the rasterizer consumes
// itself. After the call out's cursor is at capacity, ready to flip.
func Interpolate(a, b *ShaderBuffer, t float32, startSlot int, out *ShaderBuffer) {
	for s := startSlot; s < len(a.formats); s++ {
		f := a.formats[s]
		base := a.starts[s]
		for c := 0; c < f.Components; c++ {
			w := [1]uint32{lerpWord(f.Type, a.words[base+c], b.words[base+c], t)}
			out.writeSlot(w[:], 1)
		}
	}
}

// Barycentric writes the three-way blend of a, b and c with weights
// (r, s, t) into out, slot by slot starting at startSlot. The weights
// are expected to sum to 1. After the call out's cursor is at capacity.
func Barycentric(a, b, c *ShaderBuffer, r, s, t float32, startSlot int, out *ShaderBuffer) {
	for si := startSlot; si < len(a.formats); si++ {
		f := a.formats[si]
		base := a.starts[si]
		for ci := 0; ci < f.Components; ci++ {
			w := [1]uint32{baryWord(f.Type, a.words[base+ci], b.words[base+ci], c.words[base+ci], r, s, t)}
			out.writeSlot(w[:], 1)
		}
	}
}

// lerpWord blends one raw component linearly. Float words interpolate
// as floats; integer words interpolate in float and round back.
func lerpWord(t render.PrimitiveType, w0, w1 uint32, f float32) uint32 {
	switch {
	case t == render.Float:
		return FloatBits(Lerp(FloatFromBits(w0), FloatFromBits(w1), f))
	case t.Integer():
		return uint32(int32(Lerp(float32(int32(w0)), float32(int32(w1)), f)))
	default:
		panic(fmt.Sprintf("softpipe: cannot interpolate primitive type %v", t))
	}
}

// baryWord blends one raw component by barycentric weights.
func baryWord(t render.PrimitiveType, w0, w1, w2 uint32, r, s, f float32) uint32 {
	switch {
	case t == render.Float:
		return FloatBits(BaryLerp(FloatFromBits(w0), FloatFromBits(w1), FloatFromBits(w2), r, s, f))
	case t.Integer():
		v := BaryLerp(float32(int32(w0)), float32(int32(w1)), float32(int32(w2)), r, s, f)
		return uint32(int32(v))
	default:
		panic(fmt.Sprintf("softpipe: cannot interpolate primitive type %v", t))
	}
}
