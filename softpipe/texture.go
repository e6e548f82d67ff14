package softpipe

import (
	"fmt"
	"image"

	"github.com/gogpu/render"
	xdraw "golang.org/x/image/draw"
)

// Texture is a 2D pixel storage unit. Pixel data is packed byte by
// byte according to the texture's internal format; channel values are
// converted through the same primitives the rest of the pipeline uses.
type Texture struct {
	format  render.InternalFormat
	width   int
	height  int
	data    []byte
	deleted bool
}

// NewTexture creates a texture. The pixel contents are zero until
// SetImageData or SetImage is called.
func NewTexture(width, height int, format render.InternalFormat) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}
	return &Texture{
		format: format,
		width:  width,
		height: height,
		data:   make([]byte, width*height*format.PixelSize()),
	}, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the internal pixel format.
func (t *Texture) Format() render.InternalFormat { return t.format }

// SetImageData replaces the pixel storage with data packed in the
// texture's internal format, resizing the texture to width×height.
func (t *Texture) SetImageData(data []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	want := width * height * t.format.PixelSize()
	if len(data) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), want)
	}
	t.width = width
	t.height = height
	t.data = make([]byte, want)
	copy(t.data, data)
	return nil
}

// GetImageData returns the pixel contents converted to the requested
// format, pixel by pixel. A channel absent from the source reads as
// zero, except alpha which reads as full.
func (t *Texture) GetImageData(dst render.InternalFormat) ([]byte, error) {
	if !dst.Valid() {
		return nil, ErrInvalidFormat
	}
	out := make([]byte, t.width*t.height*dst.PixelSize())
	channels := [4]render.Channel{render.ChanR, render.ChanG, render.ChanB, render.ChanA}
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			for _, c := range channels {
				di := dst.Index(c)
				if di < 0 {
					continue
				}
				var v float32
				if t.format.Has(c) {
					v = t.channel(x, y, c)
				} else if c == render.ChanA {
					v = 1
				}
				off := (y*t.width+x)*dst.PixelSize() + di*dst.Type().Size()
				storeRaw(out[off:], dst.Type().Size(), FromFloat(dst.Type(), v, dst.Type().Integer()))
			}
		}
	}
	return out, nil
}

// SetImage uploads an image.Image, converting it through an RGBA8
// staging buffer. Size mismatches are resolved with nearest-neighbor
// scaling to the texture's dimensions.
func (t *Texture) SetImage(img image.Image) {
	staging := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	b := img.Bounds()
	if b.Dx() == t.width && b.Dy() == t.height {
		xdraw.Copy(staging, image.Point{}, img, b, xdraw.Src, nil)
	} else {
		xdraw.NearestNeighbor.Scale(staging, staging.Bounds(), img, b, xdraw.Src, nil)
	}
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			i := staging.PixOffset(x, y)
			t.setPixel(x, y,
				float32(staging.Pix[i])/255,
				float32(staging.Pix[i+1])/255,
				float32(staging.Pix[i+2])/255,
				float32(staging.Pix[i+3])/255,
			)
		}
	}
}

// Image exports the texture as an image.RGBA, applying the usual
// absent-channel defaults.
func (t *Texture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			c := t.texel(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(FromFloat(render.UnsignedByte, c[0], true))
			img.Pix[i+1] = uint8(FromFloat(render.UnsignedByte, c[1], true))
			img.Pix[i+2] = uint8(FromFloat(render.UnsignedByte, c[2], true))
			img.Pix[i+3] = uint8(FromFloat(render.UnsignedByte, c[3], true))
		}
	}
	return img
}

// Delete releases the pixel storage.
func (t *Texture) Delete() {
	t.data = nil
	t.deleted = true
}

// texel returns the RGBA color at a pixel, defaulting absent channels
// to 0 and absent alpha to 1.
func (t *Texture) texel(x, y int) [4]float32 {
	c := [4]float32{0, 0, 0, 1}
	channels := [4]render.Channel{render.ChanR, render.ChanG, render.ChanB, render.ChanA}
	for i, ch := range channels {
		if t.format.Has(ch) {
			c[i] = t.channel(x, y, ch)
		}
	}
	return c
}

// channel reads one present channel, normalized to [0, 1] for integer
// formats.
func (t *Texture) channel(x, y int, c render.Channel) float32 {
	ci := t.format.Index(c)
	size := t.format.Type().Size()
	off := (y*t.width+x)*t.format.PixelSize() + ci*size
	return ToFloat(t.format.Type(), loadRaw(t.data[off:], size), t.format.Type().Integer())
}

// setPixel stores the channels present in the format.
func (t *Texture) setPixel(x, y int, r, g, b, a float32) {
	values := [4]float32{r, g, b, a}
	channels := [4]render.Channel{render.ChanR, render.ChanG, render.ChanB, render.ChanA}
	size := t.format.Type().Size()
	for i, ch := range channels {
		ci := t.format.Index(ch)
		if ci < 0 {
			continue
		}
		off := (y*t.width+x)*t.format.PixelSize() + ci*size
		storeRaw(t.data[off:], size, FromFloat(t.format.Type(), values[i], t.format.Type().Integer()))
	}
}

// loadRaw reads a little-endian value of 1, 2 or 4 bytes as a raw word.
func loadRaw(b []byte, size int) uint32 {
	switch size {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(b[0]) | uint32(b[1])<<8
	default:
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
}

// storeRaw writes a raw word as a little-endian value of 1, 2 or 4 bytes.
func storeRaw(b []byte, size int, w uint32) {
	switch size {
	case 1:
		b[0] = byte(w)
	case 2:
		b[0] = byte(w)
		b[1] = byte(w >> 8)
	default:
		b[0] = byte(w)
		b[1] = byte(w >> 8)
		b[2] = byte(w >> 16)
		b[3] = byte(w >> 24)
	}
}

// Sampler is a shader-visible handle through which a fragment stage
// reads a bound texture. The bound texture is set by the program when
// it is used and follows the context's texture unit bindings.
type Sampler struct {
	tex *Texture
}

// bind points the sampler at a texture. A nil texture unbinds.
func (s *Sampler) bind(t *Texture) { s.tex = t }

// Texture returns the currently bound texture, or nil.
func (s *Sampler) Texture() *Texture { return s.tex }

// Sample reads the texel at absolute pixel coordinates using
// nearest-neighbor lookup. Sampling with no bound texture or outside
// the texture bounds is a program bug and panics.
func (s *Sampler) Sample(x, y int) [4]float32 {
	t := s.bound()
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		panic(fmt.Sprintf("softpipe: sample at (%d, %d) outside %dx%d texture", x, y, t.width, t.height))
	}
	return t.texel(x, y)
}

// SampleNorm reads the texel at normalized coordinates in [0, 1]:
// each coordinate scales by (dimension-1) and truncates to a pixel
// index. Nearest-neighbor only; no filtering, no wrap modes.
func (s *Sampler) SampleNorm(u, v float32) [4]float32 {
	t := s.bound()
	x := int(Clamp(u, 0, 1) * float32(t.width-1))
	y := int(Clamp(v, 0, 1) * float32(t.height-1))
	return t.texel(x, y)
}

func (s *Sampler) bound() *Texture {
	if s.tex == nil || s.tex.deleted || s.tex.data == nil {
		panic("softpipe: sampling with no bound texture")
	}
	return s.tex
}
