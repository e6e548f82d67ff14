package softpipe

import (
	"testing"

	"github.com/gogpu/render"
)

func TestShaderBufferLayout(t *testing.T) {
	b := NewShaderBuffer(render.Floats(4), render.Floats(2), render.Ints(1))
	if got := b.Capacity(); got != 7 {
		t.Errorf("Capacity() = %d, want 7", got)
	}
	if got := len(b.Formats()); got != 3 {
		t.Errorf("len(Formats()) = %d, want 3", got)
	}
}

func TestShaderBufferInvalidFormatPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("invalid slot format should panic")
		}
	}()
	NewShaderBuffer(render.DataFormat{Type: render.Float, Components: 5})
}

func TestShaderBufferWriteReadRoundTrip(t *testing.T) {
	b := NewShaderBuffer(render.Floats(4), render.Floats(2), render.Ints(1))
	b.WriteVec4f([4]float32{1, 2, 3, 4})
	b.WriteVec2f([2]float32{5, 6})
	b.WriteInt(-7)
	b.Flip()

	if got := b.ReadVec4f(); got != [4]float32{1, 2, 3, 4} {
		t.Errorf("ReadVec4f() = %v", got)
	}
	if got := b.ReadVec2f(); got != [2]float32{5, 6} {
		t.Errorf("ReadVec2f() = %v", got)
	}
	if got := b.ReadInt(); got != -7 {
		t.Errorf("ReadInt() = %d, want -7", got)
	}
}

func TestShaderBufferComponentWritesAccumulate(t *testing.T) {
	b := NewShaderBuffer(render.Floats(3))
	b.WriteFloat(1)
	b.WriteFloat(2)
	b.WriteFloat(3)
	b.Flip()
	if got := b.ReadVec3f(); got != [3]float32{1, 2, 3} {
		t.Errorf("ReadVec3f() = %v", got)
	}
}

func TestShaderBufferTypedCallStaysInSlot(t *testing.T) {
	// A vec4 read of a vec2 slot must not spill into the next slot.
	b := NewShaderBuffer(render.Floats(2), render.Floats(1))
	b.WriteVec2f([2]float32{1, 2})
	b.WriteFloat(9)
	b.Flip()

	got := b.ReadVec4f()
	if got != [4]float32{1, 2, 0, 0} {
		t.Errorf("over-read = %v, want trailing zeros", got)
	}
	if got := b.ReadFloat(); got != 9 {
		t.Errorf("next slot read = %v, want 9", got)
	}
}

func TestShaderBufferOverWriteDropped(t *testing.T) {
	b := NewShaderBuffer(render.Floats(2), render.Floats(1))
	b.WriteVec4f([4]float32{1, 2, 3, 4})
	b.WriteFloat(9)
	b.Flip()

	if got := b.ReadVec2f(); got != [2]float32{1, 2} {
		t.Errorf("first slot = %v", got)
	}
	if got := b.ReadFloat(); got != 9 {
		t.Errorf("second slot = %v, want 9 (over-write must not spill)", got)
	}
}

func TestShaderBufferPastEnd(t *testing.T) {
	b := NewShaderBuffer(render.Floats(1))
	b.WriteFloat(1)
	b.WriteFloat(2) // past the last slot, dropped
	b.Flip()
	if got := b.ReadFloat(); got != 1 {
		t.Errorf("ReadFloat() = %v, want 1", got)
	}
	if got := b.ReadFloat(); got != 0 {
		t.Errorf("read past end = %v, want 0", got)
	}
}

func TestShaderBufferSkip(t *testing.T) {
	b := NewShaderBuffer(render.Floats(2), render.Floats(1))
	b.WriteVec2f([2]float32{1, 2})
	b.WriteFloat(3)
	b.Flip()

	b.Skip()
	if got := b.ReadFloat(); got != 3 {
		t.Errorf("read after Skip = %v, want 3", got)
	}

	// Skip does not disturb the skipped slot's words.
	b.Rewind()
	if got := b.ReadVec2f(); got != [2]float32{1, 2} {
		t.Errorf("skipped slot = %v", got)
	}
}

func TestShaderBufferIntVectors(t *testing.T) {
	b := NewShaderBuffer(render.Ints(3))
	b.WriteVec3i([3]int32{-1, 0, 7})
	b.Flip()
	if got := b.ReadVec3i(); got != [3]int32{-1, 0, 7} {
		t.Errorf("ReadVec3i() = %v", got)
	}
}

func TestShaderBufferWordPosition(t *testing.T) {
	b := NewShaderBuffer(render.Floats(4), render.Floats(2))
	if got := b.WordPosition(); got != 0 {
		t.Errorf("initial WordPosition() = %d", got)
	}
	b.WriteVec4f([4]float32{})
	if got := b.WordPosition(); got != 4 {
		t.Errorf("WordPosition() after vec4 = %d, want 4", got)
	}
	b.WriteVec2f([2]float32{})
	if got := b.WordPosition(); got != 6 {
		t.Errorf("WordPosition() at end = %d, want 6", got)
	}
}

func TestShaderBufferWriteRaw(t *testing.T) {
	src := NewShaderBuffer(render.Floats(4), render.Floats(2))
	src.WriteVec4f([4]float32{1, 2, 3, 4})
	src.WriteVec2f([2]float32{5, 6})
	src.Flip()
	src.ReadVec4f() // consume position; the remainder follows

	dst := NewShaderBuffer(render.Floats(2))
	dst.WriteRaw(src)
	dst.Flip()
	if got := dst.ReadVec2f(); got != [2]float32{5, 6} {
		t.Errorf("WriteRaw remainder = %v, want {5 6}", got)
	}
}

func TestInterpolate(t *testing.T) {
	fmts := []render.DataFormat{render.Floats(4), render.Floats(2), render.Ints(1)}
	a := NewShaderBuffer(fmts...)
	a.WriteVec4f([4]float32{0, 0, 0, 1})
	a.WriteVec2f([2]float32{0, 10})
	a.WriteInt(0)
	b := NewShaderBuffer(fmts...)
	b.WriteVec4f([4]float32{1, 1, 1, 1})
	b.WriteVec2f([2]float32{1, 20})
	b.WriteInt(10)

	out := NewShaderBuffer(fmts[1:]...)
	Interpolate(a, b, 0.5, 1, out)
	if got := out.WordPosition(); got != out.Capacity() {
		t.Errorf("cursor after Interpolate = %d, want %d", got, out.Capacity())
	}
	out.Flip()
	if got := out.ReadVec2f(); got != [2]float32{0.5, 15} {
		t.Errorf("interpolated vec2 = %v, want {0.5 15}", got)
	}
	if got := out.ReadInt(); got != 5 {
		t.Errorf("interpolated int = %d, want 5", got)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	fmts := []render.DataFormat{render.Floats(4), render.Floats(1)}
	a := NewShaderBuffer(fmts...)
	a.WriteVec4f([4]float32{0, 0, 0, 1})
	a.WriteFloat(3)
	b := NewShaderBuffer(fmts...)
	b.WriteVec4f([4]float32{0, 0, 0, 1})
	b.WriteFloat(8)

	out := NewShaderBuffer(fmts[1:]...)
	Interpolate(a, b, 0, 1, out)
	out.Flip()
	if got := out.ReadFloat(); got != 3 {
		t.Errorf("t=0 endpoint = %v, want 3", got)
	}

	out.Clear()
	Interpolate(a, b, 1, 1, out)
	out.Flip()
	if got := out.ReadFloat(); got != 8 {
		t.Errorf("t=1 endpoint = %v, want 8", got)
	}
}

func TestBarycentricCorners(t *testing.T) {
	fmts := []render.DataFormat{render.Floats(4), render.Floats(2)}
	mk := func(u, v float32) *ShaderBuffer {
		sb := NewShaderBuffer(fmts...)
		sb.WriteVec4f([4]float32{0, 0, 0, 1})
		sb.WriteVec2f([2]float32{u, v})
		return sb
	}
	a, b, c := mk(1, 0), mk(0, 1), mk(1, 1)

	tests := []struct {
		name    string
		r, s, t float32
		want    [2]float32
	}{
		{"corner a", 1, 0, 0, [2]float32{1, 0}},
		{"corner b", 0, 1, 0, [2]float32{0, 1}},
		{"corner c", 0, 0, 1, [2]float32{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewShaderBuffer(fmts[1:]...)
			Barycentric(a, b, c, tt.r, tt.s, tt.t, 1, out)
			out.Flip()
			if got := out.ReadVec2f(); got != tt.want {
				t.Errorf("Barycentric(%v, %v, %v) = %v, want %v", tt.r, tt.s, tt.t, got, tt.want)
			}
		})
	}
}

func TestBarycentricCentroid(t *testing.T) {
	fmts := []render.DataFormat{render.Floats(4), render.Floats(1)}
	mk := func(v float32) *ShaderBuffer {
		sb := NewShaderBuffer(fmts...)
		sb.WriteVec4f([4]float32{0, 0, 0, 1})
		sb.WriteFloat(v)
		return sb
	}
	out := NewShaderBuffer(fmts[1:]...)
	third := float32(1.0 / 3.0)
	Barycentric(mk(0), mk(3), mk(6), third, third, third, 1, out)
	out.Flip()
	got := out.ReadFloat()
	if diff := got - 3; diff > 1e-5 || diff < -1e-5 {
		t.Errorf("centroid blend = %v, want 3", got)
	}
}
