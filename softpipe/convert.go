package softpipe

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/gogpu/render"
)

// FloatBits returns the IEEE 754 bit pattern of f as a storage word.
func FloatBits(f float32) uint32 {
	return math.Float32bits(f)
}

// FloatFromBits reinterprets a storage word as a float32.
func FloatFromBits(w uint32) float32 {
	return math.Float32frombits(w)
}

// ToFloat converts the raw storage word of a value of type t to a
// float32. With normalize set, integer types map onto [0, 1] over their
// full range (unsigned byte: v/255; signed byte: (v-MIN)/range, and so
// on); without it the integer magnitude is returned. Float words are
// reinterpreted bit-for-bit.
//
// Unsupported types (Double, unknown) panic: a conversion request for
// them is a program bug, not a runtime condition.
func ToFloat(t render.PrimitiveType, raw uint32, normalize bool) float32 {
	switch t {
	case render.Byte:
		v := int8(uint8(raw))
		if normalize {
			return (float32(v) + 128) / 255
		}
		return float32(v)
	case render.UnsignedByte:
		v := uint8(raw)
		if normalize {
			return float32(v) / 255
		}
		return float32(v)
	case render.Short:
		v := int16(uint16(raw))
		if normalize {
			return (float32(v) + 32768) / 65535
		}
		return float32(v)
	case render.UnsignedShort:
		v := uint16(raw)
		if normalize {
			return float32(v) / 65535
		}
		return float32(v)
	case render.Int:
		v := int32(raw)
		if normalize {
			return float32((float64(v) + 2147483648) / 4294967295)
		}
		return float32(v)
	case render.UnsignedInt:
		if normalize {
			return float32(float64(raw) / 4294967295)
		}
		return float32(raw)
	case render.Float:
		return FloatFromBits(raw)
	default:
		panic(fmt.Sprintf("softpipe: unsupported primitive type %v", t))
	}
}

// FromFloat is the quantizing inverse of ToFloat: it converts a float32
// to the raw storage word of type t. With normalize set, v is clamped
// to [0, 1] and scaled over the type's full range.
func FromFloat(t render.PrimitiveType, v float32, normalize bool) uint32 {
	switch t {
	case render.Byte:
		if normalize {
			return uint32(uint8(int8(math32.Round(Clamp(v, 0, 1)*255) - 128)))
		}
		return uint32(uint8(int8(v)))
	case render.UnsignedByte:
		if normalize {
			return uint32(uint8(math32.Round(Clamp(v, 0, 1) * 255)))
		}
		return uint32(uint8(v))
	case render.Short:
		if normalize {
			return uint32(uint16(int16(math32.Round(Clamp(v, 0, 1)*65535) - 32768)))
		}
		return uint32(uint16(int16(v)))
	case render.UnsignedShort:
		if normalize {
			return uint32(uint16(math32.Round(Clamp(v, 0, 1) * 65535)))
		}
		return uint32(uint16(v))
	case render.Int:
		if normalize {
			return uint32(int32(math.Round(float64(Clamp(v, 0, 1))*4294967295) - 2147483648))
		}
		return uint32(int32(v))
	case render.UnsignedInt:
		if normalize {
			return uint32(math.Round(float64(Clamp(v, 0, 1)) * 4294967295))
		}
		return uint32(v)
	case render.Float:
		return FloatBits(v)
	default:
		panic(fmt.Sprintf("softpipe: unsupported primitive type %v", t))
	}
}

// ReadAsFloat reads the word at index from words and converts it
// exactly as ToFloat would.
func ReadAsFloat(words []uint32, t render.PrimitiveType, index int, normalize bool) float32 {
	return ToFloat(t, words[index], normalize)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// BaryLerp blends three values by barycentric weights r, s and t. The
// weights are expected to sum to 1.
func BaryLerp(a, b, c, r, s, t float32) float32 {
	return a*r + b*s + c*t
}

// Pack clamps each channel to [0, 1], scales it to a byte and assembles
// a 32-bit ARGB word.
func Pack(r, g, b, a float32) uint32 {
	return FromFloat(render.UnsignedByte, a, true)<<24 |
		FromFloat(render.UnsignedByte, r, true)<<16 |
		FromFloat(render.UnsignedByte, g, true)<<8 |
		FromFloat(render.UnsignedByte, b, true)
}

// Unpack splits a packed ARGB word back into float channels. It is the
// inverse of Pack within byte quantization (1/255 per channel).
func Unpack(argb uint32) (r, g, b, a float32) {
	r = float32(argb>>16&0xff) / 255
	g = float32(argb>>8&0xff) / 255
	b = float32(argb&0xff) / 255
	a = float32(argb>>24&0xff) / 255
	return
}

// DenormalizeToShort quantizes a normalized device depth in [-1, 1] to
// a signed 16-bit value for storage in the depth buffer.
func DenormalizeToShort(f float32) int16 {
	return int16(Clamp(f, -1, 1) * 32767)
}
