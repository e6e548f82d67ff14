package softpipe

import (
	"testing"

	"github.com/gogpu/render"
)

func TestToFloatNormalized(t *testing.T) {
	tests := []struct {
		name string
		typ  render.PrimitiveType
		raw  uint32
		want float32
	}{
		{"ubyte zero", render.UnsignedByte, 0, 0},
		{"ubyte max", render.UnsignedByte, 255, 1},
		{"ubyte mid", render.UnsignedByte, 51, 0.2},
		{"byte min", render.Byte, 0x80, 0},
		{"byte max", render.Byte, 127, 1},
		{"ushort zero", render.UnsignedShort, 0, 0},
		{"ushort max", render.UnsignedShort, 65535, 1},
		{"short min", render.Short, 0x8000, 0},
		{"short max", render.Short, 32767, 1},
		{"uint max", render.UnsignedInt, 0xffffffff, 1},
		{"int max", render.Int, 0x7fffffff, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToFloat(tt.typ, tt.raw, true)
			if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("ToFloat(%v, %#x, true) = %v, want %v", tt.typ, tt.raw, got, tt.want)
			}
		})
	}
}

func TestToFloatUnnormalized(t *testing.T) {
	if got := ToFloat(render.UnsignedByte, 200, false); got != 200 {
		t.Errorf("ToFloat(ubyte, 200, false) = %v, want 200", got)
	}
	if got := ToFloat(render.Byte, 0xfb, false); got != -5 {
		t.Errorf("ToFloat(byte, -5, false) = %v, want -5", got)
	}
	if got := ToFloat(render.Int, 0xfffffc18, false); got != -1000 {
		t.Errorf("ToFloat(int, -1000, false) = %v, want -1000", got)
	}
}

func TestToFloatFloatBits(t *testing.T) {
	for _, v := range []float32{0, 1, -1, 0.5, 3.14159, -123.25} {
		if got := ToFloat(render.Float, FloatBits(v), true); got != v {
			t.Errorf("ToFloat(float, bits(%v)) = %v", v, got)
		}
	}
}

func TestFromFloatRoundTrip(t *testing.T) {
	types := []render.PrimitiveType{
		render.Byte, render.UnsignedByte,
		render.Short, render.UnsignedShort,
		render.Float,
	}
	values := []float32{0, 0.25, 0.5, 0.75, 1}
	for _, typ := range types {
		for _, v := range values {
			raw := FromFloat(typ, v, true)
			got := ToFloat(typ, raw, true)
			// One quantization step of the narrowest type tested.
			if diff := got - v; diff > 1.0/255+1e-6 || diff < -(1.0/255+1e-6) {
				t.Errorf("round trip %v of %v = %v", typ, v, got)
			}
		}
	}
}

func TestFromFloatClamps(t *testing.T) {
	if got := FromFloat(render.UnsignedByte, 2.0, true); got != 255 {
		t.Errorf("FromFloat(ubyte, 2.0) = %d, want 255", got)
	}
	if got := FromFloat(render.UnsignedByte, -1.0, true); got != 0 {
		t.Errorf("FromFloat(ubyte, -1.0) = %d, want 0", got)
	}
}

func TestToFloatDoublePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ToFloat(Double) should panic")
		}
	}()
	ToFloat(render.Double, 0, true)
}

func TestReadAsFloat(t *testing.T) {
	words := []uint32{FloatBits(1.5), 128}
	if got := ReadAsFloat(words, render.Float, 0, true); got != 1.5 {
		t.Errorf("ReadAsFloat(float) = %v, want 1.5", got)
	}
	got := ReadAsFloat(words, render.UnsignedByte, 1, true)
	if diff := got - 128.0/255; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("ReadAsFloat(ubyte) = %v, want %v", got, 128.0/255)
	}
}

func TestPackUnpack(t *testing.T) {
	r, g, b, a := Unpack(Pack(0.2, 0.4, 0.6, 0.8))
	for i, pair := range [][2]float32{{r, 0.2}, {g, 0.4}, {b, 0.6}, {a, 0.8}} {
		if diff := pair[0] - pair[1]; diff > 1.0/255 || diff < -1.0/255 {
			t.Errorf("channel %d = %v, want %v within 1/255", i, pair[0], pair[1])
		}
	}

	if got := Pack(1, 0, 0, 1); got != 0xffff0000 {
		t.Errorf("Pack(red) = %#x, want 0xffff0000", got)
	}
	if got := Pack(0, 0, 1, 1); got != 0xff0000ff {
		t.Errorf("Pack(blue) = %#x, want 0xff0000ff", got)
	}
}

func TestDenormalizeToShort(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{2, 32767},
		{-2, -32767},
		{0.5, 16383},
	}
	for _, tt := range tests {
		if got := DenormalizeToShort(tt.in); got != tt.want {
			t.Errorf("DenormalizeToShort(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLerpBaryLerp(t *testing.T) {
	if got := Lerp(2, 6, 0.5); got != 4 {
		t.Errorf("Lerp(2, 6, 0.5) = %v, want 4", got)
	}
	if got := Lerp(2, 6, 0); got != 2 {
		t.Errorf("Lerp(2, 6, 0) = %v, want 2", got)
	}
	if got := Lerp(2, 6, 1); got != 6 {
		t.Errorf("Lerp(2, 6, 1) = %v, want 6", got)
	}
	if got := BaryLerp(1, 2, 3, 1, 0, 0); got != 1 {
		t.Errorf("BaryLerp at first corner = %v, want 1", got)
	}
	if got := BaryLerp(1, 2, 3, 0, 0, 1); got != 3 {
		t.Errorf("BaryLerp at third corner = %v, want 3", got)
	}
}
