package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Format errors.
var (
	// ErrUnsupportedFormat is returned when a descriptor has no
	// equivalent in the target vocabulary.
	ErrUnsupportedFormat = errors.New("render: unsupported format")
)

// PrimitiveType is the scalar component type of an attribute or texture
// channel.
type PrimitiveType uint8

// Primitive types.
const (
	Byte PrimitiveType = iota
	UnsignedByte
	Short
	UnsignedShort
	Int
	UnsignedInt
	Float
	Double
)

// typeInfo describes a primitive type: signedness, whether it is an
// integer type, and its byte size as a power-of-two shift.
type typeInfo struct {
	name    string
	signed  bool
	integer bool
	shift   uint8
}

var typeInfos = [...]typeInfo{
	Byte:          {"byte", true, true, 0},
	UnsignedByte:  {"unsigned_byte", false, true, 0},
	Short:         {"short", true, true, 1},
	UnsignedShort: {"unsigned_short", false, true, 1},
	Int:           {"int", true, true, 2},
	UnsignedInt:   {"unsigned_int", false, true, 2},
	Float:         {"float", true, false, 2},
	Double:        {"double", true, false, 3},
}

// Valid reports whether t is a known primitive type.
func (t PrimitiveType) Valid() bool {
	return int(t) < len(typeInfos)
}

// Signed reports whether the type carries a sign.
func (t PrimitiveType) Signed() bool { return typeInfos[t].signed }

// Integer reports whether the type is an integer type.
func (t PrimitiveType) Integer() bool { return typeInfos[t].integer }

// SizeShift returns the power-of-two shift of the type's byte size,
// so that n values occupy n << SizeShift() bytes.
func (t PrimitiveType) SizeShift() uint8 { return typeInfos[t].shift }

// Size returns the byte size of one value.
func (t PrimitiveType) Size() int { return 1 << typeInfos[t].shift }

// String returns the type name.
func (t PrimitiveType) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return typeInfos[t].name
}

// DataFormat describes one scalar or vector element of an attribute
// layout: a primitive type and a component count in [1, 4]. DataFormat
// values are immutable descriptors; they describe both vertex input
// layouts and shader stage outputs.
type DataFormat struct {
	Type       PrimitiveType
	Components int
}

// Floats returns a float vector format with n components.
func Floats(n int) DataFormat { return DataFormat{Type: Float, Components: n} }

// Ints returns a signed int vector format with n components.
func Ints(n int) DataFormat { return DataFormat{Type: Int, Components: n} }

// Valid reports whether the format is usable: a known type and one to
// four components.
func (f DataFormat) Valid() bool {
	return f.Type.Valid() && f.Components >= 1 && f.Components <= 4
}

// ByteSize returns the packed byte size of one element.
func (f DataFormat) ByteSize() int {
	return f.Components << f.Type.SizeShift()
}

// WordSize returns the element's size in 32-bit storage words, one word
// per component.
func (f DataFormat) WordSize() int {
	return f.Components
}

// String returns a short descriptor like "float x3".
func (f DataFormat) String() string {
	return fmt.Sprintf("%s x%d", f.Type, f.Components)
}

// VertexFormat maps the descriptor to the gputypes vertex format
// vocabulary used by GPU backends. Only 32-bit component types have an
// equivalent; others report ErrUnsupportedFormat.
func (f DataFormat) VertexFormat() (gputypes.VertexFormat, error) {
	if !f.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	var table [4]gputypes.VertexFormat
	switch f.Type {
	case Float:
		table = [4]gputypes.VertexFormat{
			gputypes.VertexFormatFloat32,
			gputypes.VertexFormatFloat32x2,
			gputypes.VertexFormatFloat32x3,
			gputypes.VertexFormatFloat32x4,
		}
	case Int:
		table = [4]gputypes.VertexFormat{
			gputypes.VertexFormatSint32,
			gputypes.VertexFormatSint32x2,
			gputypes.VertexFormatSint32x3,
			gputypes.VertexFormatSint32x4,
		}
	case UnsignedInt:
		table = [4]gputypes.VertexFormat{
			gputypes.VertexFormatUint32,
			gputypes.VertexFormatUint32x2,
			gputypes.VertexFormatUint32x3,
			gputypes.VertexFormatUint32x4,
		}
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	return table[f.Components-1], nil
}

// Channel identifies one color channel of an internal texture format.
type Channel uint8

// Color channels.
const (
	ChanR Channel = iota
	ChanG
	ChanB
	ChanA
)

// InternalFormat describes the packed pixel layout of a texture: which
// of the R/G/B/A channels are present, their storage order, and the
// per-channel primitive type.
type InternalFormat struct {
	typ      PrimitiveType
	order    [4]Channel
	channels int
}

// Predefined internal formats.
var (
	R8      = InternalFormat{UnsignedByte, [4]Channel{ChanR}, 1}
	RG8     = InternalFormat{UnsignedByte, [4]Channel{ChanR, ChanG}, 2}
	RGB8    = InternalFormat{UnsignedByte, [4]Channel{ChanR, ChanG, ChanB}, 3}
	RGBA8   = InternalFormat{UnsignedByte, [4]Channel{ChanR, ChanG, ChanB, ChanA}, 4}
	BGRA8   = InternalFormat{UnsignedByte, [4]Channel{ChanB, ChanG, ChanR, ChanA}, 4}
	R32F    = InternalFormat{Float, [4]Channel{ChanR}, 1}
	RGB32F  = InternalFormat{Float, [4]Channel{ChanR, ChanG, ChanB}, 3}
	RGBA32F = InternalFormat{Float, [4]Channel{ChanR, ChanG, ChanB, ChanA}, 4}
)

// NewInternalFormat builds a custom pixel layout from a per-channel
// type and an ordered list of distinct channels.
func NewInternalFormat(t PrimitiveType, channels ...Channel) (InternalFormat, error) {
	if !t.Valid() || len(channels) < 1 || len(channels) > 4 {
		return InternalFormat{}, ErrUnsupportedFormat
	}
	f := InternalFormat{typ: t, channels: len(channels)}
	var seen [4]bool
	for i, c := range channels {
		if c > ChanA || seen[c] {
			return InternalFormat{}, fmt.Errorf("%w: bad channel list", ErrUnsupportedFormat)
		}
		seen[c] = true
		f.order[i] = c
	}
	return f, nil
}

// Type returns the per-channel primitive type.
func (f InternalFormat) Type() PrimitiveType { return f.typ }

// Channels returns the number of channels present.
func (f InternalFormat) Channels() int { return f.channels }

// Has reports whether channel c is present.
func (f InternalFormat) Has(c Channel) bool {
	return f.indexOf(c) >= 0
}

// Index returns the storage position of channel c within one pixel, or
// -1 if the channel is absent.
func (f InternalFormat) Index(c Channel) int { return f.indexOf(c) }

func (f InternalFormat) indexOf(c Channel) int {
	for i := 0; i < f.channels; i++ {
		if f.order[i] == c {
			return i
		}
	}
	return -1
}

// PixelSize returns the packed byte size of one pixel.
func (f InternalFormat) PixelSize() int {
	return f.channels << f.typ.SizeShift()
}

// Valid reports whether the format describes at least one channel of a
// known type.
func (f InternalFormat) Valid() bool {
	return f.typ.Valid() && f.channels >= 1 && f.channels <= 4
}

// TextureFormat maps the layout to the gputypes texture format
// vocabulary where a direct equivalent exists.
func (f InternalFormat) TextureFormat() (gputypes.TextureFormat, error) {
	switch f {
	case R8:
		return gputypes.TextureFormatR8Unorm, nil
	case RGBA8:
		return gputypes.TextureFormatRGBA8Unorm, nil
	case BGRA8:
		return gputypes.TextureFormatBGRA8Unorm, nil
	case R32F:
		return gputypes.TextureFormatR32Float, nil
	case RGBA32F:
		return gputypes.TextureFormatRGBA32Float, nil
	default:
		return 0, fmt.Errorf("%w: no gputypes equivalent", ErrUnsupportedFormat)
	}
}
