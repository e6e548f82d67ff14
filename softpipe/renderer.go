package softpipe

import (
	"image"
	"log/slog"
	"math"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/render"
)

// clearDepth is the depth buffer reset value; any in-range candidate
// passes against it under the default comparison.
const clearDepth = math.MaxInt16

// target is one set of parallel color and depth buffers. The color
// buffer holds one packed ARGB word per pixel, the depth buffer one
// signed 16-bit value per pixel.
type target struct {
	width  int
	height int
	pixels []uint32
	depth  []int16
}

func newTarget(width, height int) *target {
	return &target{
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
		depth:  make([]int16, width*height),
	}
}

// bounds returns the target's pixel rectangle.
func (t *target) bounds() render.Rectangle {
	return render.Rectangle{Width: t.width, Height: t.height}
}

// Renderer is the software rasterizer: it owns the pixel and depth
// buffers, the drawing surface, the capability flags and the active
// program, and performs the triangle fill with per-pixel depth testing.
//
// The pipeline is immediate mode and single threaded; a Renderer must
// not be shared between goroutines.
type Renderer struct {
	screen  *target // default render target
	current *target // bound target (screen or a framebuffer)
	surface *image.RGBA

	clearColor   render.Color
	viewport     render.Rectangle
	caps         uint32
	depthMask    bool
	depthCompare gputypes.CompareFunction

	program  *Program
	textures map[int]*Texture
}

// NewRenderer creates a renderer with a width×height drawing surface.
func NewRenderer(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	r := &Renderer{
		depthMask:    true,
		depthCompare: gputypes.CompareFunctionLessEqual,
		textures:     make(map[int]*Texture),
	}
	r.resize(width, height)
	return r, nil
}

func (r *Renderer) resize(width, height int) {
	r.screen = newTarget(width, height)
	r.current = r.screen
	r.surface = image.NewRGBA(image.Rect(0, 0, width, height))
	r.viewport = render.Rectangle{Width: width, Height: height}
	render.Logger().Debug("softpipe: buffers allocated",
		slog.Int("width", width), slog.Int("height", height))
}

// Resize reallocates the default pixel and depth buffers. The resize is
// destructive: previous contents are discarded, not migrated, and the
// viewport resets to the full surface.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	r.resize(width, height)
	return nil
}

// Width returns the drawing surface width.
func (r *Renderer) Width() int { return r.screen.width }

// Height returns the drawing surface height.
func (r *Renderer) Height() int { return r.screen.height }

// SetClearColor sets the color used by ClearPixels.
func (r *Renderer) SetClearColor(c render.Color) { r.clearColor = c }

// SetViewport sets the rectangle clip-space coordinates map onto.
func (r *Renderer) SetViewport(v render.Rectangle) { r.viewport = v }

// Viewport returns the current viewport rectangle.
func (r *Renderer) Viewport() render.Rectangle { return r.viewport }

// SetCapabilityEnabled toggles a capability flag in the bit-set.
// Only depth testing affects rasterization; blending is tracked but
// not implemented by the software backend.
// TODO: apply CapBlend in the fragment write once blending lands.
func (r *Renderer) SetCapabilityEnabled(c render.Capability, enabled bool) {
	if enabled {
		r.caps |= c.Bit()
	} else {
		r.caps &^= c.Bit()
	}
}

// IsCapabilityEnabled reports whether a capability is on.
func (r *Renderer) IsCapabilityEnabled(c render.Capability) bool {
	return r.caps&c.Bit() != 0
}

// SetDepthMask controls whether passing fragments write depth.
func (r *Renderer) SetDepthMask(write bool) { r.depthMask = write }

// SetDepthCompare sets the depth comparison function. The default is
// gputypes.CompareFunctionLessEqual: a candidate passes if its depth is
// less than or equal to the stored depth.
func (r *Renderer) SetDepthCompare(f gputypes.CompareFunction) { r.depthCompare = f }

// BindTexture binds a texture to a unit; the active program's samplers
// on that unit observe the new binding immediately.
func (r *Renderer) BindTexture(unit int, t *Texture) {
	if t == nil {
		delete(r.textures, unit)
	} else {
		r.textures[unit] = t
	}
	if r.program != nil {
		r.program.rewireSamplers()
	}
}

// useProgram makes p the active program and wires its samplers.
func (r *Renderer) useProgram(p *Program) {
	r.program = p
	if p != nil {
		p.rewireSamplers()
	}
}

// setTarget binds a render target; nil restores the default surface.
func (r *Renderer) setTarget(t *target) {
	if t == nil {
		t = r.screen
	}
	r.current = t
}

// ClearPixels fills the bound color buffer with the clear color and
// the depth buffer with the maximum depth value.
func (r *Renderer) ClearPixels() {
	c := Pack(r.clearColor.R, r.clearColor.G, r.clearColor.B, r.clearColor.A)
	t := r.current
	for i := range t.pixels {
		t.pixels[i] = c
		t.depth[i] = clearDepth
	}
}

// Pixels returns the bound target's packed color words.
func (r *Renderer) Pixels() []uint32 { return r.current.pixels }

// PixelAt returns the packed color at a pixel of the bound target.
func (r *Renderer) PixelAt(x, y int) uint32 {
	return r.current.pixels[y*r.current.width+x]
}

// DepthAt returns the stored depth at a pixel of the bound target.
func (r *Renderer) DepthAt(x, y int) int16 {
	return r.current.depth[y*r.current.width+x]
}

// Present blits the default color buffer into the drawing surface and
// returns it.
func (r *Renderer) Present() *image.RGBA {
	t := r.screen
	for i, w := range t.pixels {
		o := i * 4
		r.surface.Pix[o] = uint8(w >> 16)
		r.surface.Pix[o+1] = uint8(w >> 8)
		r.surface.Pix[o+2] = uint8(w)
		r.surface.Pix[o+3] = uint8(w >> 24)
	}
	return r.surface
}

// Surface returns the drawing surface written by Present.
func (r *Renderer) Surface() *image.RGBA { return r.surface }

// destroy drops all buffers; the renderer must not be used afterwards.
func (r *Renderer) destroy() {
	r.screen = nil
	r.current = nil
	r.surface = nil
	r.program = nil
	r.textures = nil
}

// screenVertex is one vertex after the vertex stage: viewport pixel
// coordinates, normalized device depth, and the stage's output record.
type screenVertex struct {
	x, y float32
	z    float32
	out  *ShaderBuffer
}

// DrawTriangles runs the pipeline over the vertex array: vertex stage,
// primitive assembly, rasterization, fragment stage, depth/color write.
// Vertices are consumed in groups of three; a trailing partial group is
// ignored. There is no primitive clipping: triangles with a
// non-positive clip-space w are skipped whole.
func (r *Renderer) DrawTriangles(va *VertexArray) error {
	p := r.program
	if p == nil {
		return ErrNoProgram
	}

	outFmt := p.vertex.OutputFormat()
	vin := NewShaderBuffer(va.layout...)
	vouts := [3]*ShaderBuffer{
		NewShaderBuffer(outFmt...),
		NewShaderBuffer(outFmt...),
		NewShaderBuffer(outFmt...),
	}
	fragIn := NewShaderBuffer(outFmt[1:]...)
	fragOut := NewShaderBuffer(p.fragment.OutputFormat()...)

	count := va.Count()
	for i := 0; i+2 < count; i += 3 {
		var sv [3]screenVertex
		skip := false
		for j := 0; j < 3; j++ {
			va.loadVertex(va.index(i+j), vin)
			vo := vouts[j]
			vo.Clear()
			p.vertex.Main(vin, vo)
			vo.Flip()
			pos := vo.ReadVec4f()
			if pos[3] <= 0 {
				skip = true
				break
			}
			sv[j] = r.toScreen(pos, vo)
		}
		if skip {
			continue
		}
		r.rasterize(sv, fragIn, fragOut)
	}
	return nil
}

// toScreen applies the perspective divide and the viewport transform.
// Screen y grows downward.
func (r *Renderer) toScreen(pos [4]float32, out *ShaderBuffer) screenVertex {
	vp := r.viewport
	ndcX := pos[0] / pos[3]
	ndcY := pos[1] / pos[3]
	ndcZ := pos[2] / pos[3]
	return screenVertex{
		x:   float32(vp.X) + (ndcX+1)*0.5*float32(vp.Width),
		y:   float32(vp.Y) + (1-(ndcY+1)*0.5)*float32(vp.Height),
		z:   ndcZ,
		out: out,
	}
}

// edgeFn is the signed parallelogram area of (b-a)×(p-a); its sign
// tells which side of the directed edge a→b the point p lies on.
func edgeFn(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// topLeft reports whether the directed edge a→b counts its zero-weight
// pixels. With y growing down and positive-area winding, an edge owns
// its pixels if it is exactly horizontal going right, or if it goes
// upward. The rule is exclusive under direction reversal, so a shared
// edge between adjacent triangles is rasterized by exactly one of them.
func topLeft(ax, ay, bx, by float32) bool {
	return (ay == by && bx > ax) || by < ay
}

// rasterize fills one screen-space triangle: bounding box walk,
// barycentric coverage with the top-left fill rule, attribute
// interpolation, fragment stage, depth test, color/depth write.
func (r *Renderer) rasterize(sv [3]screenVertex, fragIn, fragOut *ShaderBuffer) {
	area := edgeFn(sv[0].x, sv[0].y, sv[1].x, sv[1].y, sv[2].x, sv[2].y)
	if area == 0 {
		return
	}
	if area < 0 {
		sv[1], sv[2] = sv[2], sv[1]
		area = -area
	}
	a, b, c := sv[0], sv[1], sv[2]

	clip := r.viewport.Intersect(r.current.bounds())
	if clip.Empty() {
		return
	}
	minX := max(clip.X, int(math32.Floor(math32.Min(a.x, math32.Min(b.x, c.x)))))
	minY := max(clip.Y, int(math32.Floor(math32.Min(a.y, math32.Min(b.y, c.y)))))
	maxX := min(clip.X+clip.Width-1, int(math32.Ceil(math32.Max(a.x, math32.Max(b.x, c.x)))))
	maxY := min(clip.Y+clip.Height-1, int(math32.Ceil(math32.Max(a.y, math32.Max(b.y, c.y)))))

	depthTest := r.IsCapabilityEnabled(render.CapDepthTest)
	t := r.current

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edgeFn(b.x, b.y, c.x, c.y, px, py)
			w1 := edgeFn(c.x, c.y, a.x, a.y, px, py)
			w2 := edgeFn(a.x, a.y, b.x, b.y, px, py)
			if !covers(w0, b, c) || !covers(w1, c, a) || !covers(w2, a, b) {
				continue
			}
			br := w0 / area
			bs := w1 / area
			bt := w2 / area

			d := DenormalizeToShort(br*a.z + bs*b.z + bt*c.z)
			idx := y*t.width + x

			fragIn.Clear()
			Barycentric(a.out, b.out, c.out, br, bs, bt, 1, fragIn)
			fragIn.Flip()
			fragOut.Clear()
			r.program.fragment.Main(fragIn, fragOut)
			fragOut.Flip()

			if depthTest && !r.depthPasses(d, t.depth[idx]) {
				continue
			}
			color := fragOut.ReadVec4f()
			t.pixels[idx] = Pack(color[0], color[1], color[2], color[3])
			if depthTest && r.depthMask {
				t.depth[idx] = d
			}
		}
	}
}

// covers applies the edge-inclusive fill rule: positive weight, or zero
// weight on a top-left edge.
func covers(w float32, from, to screenVertex) bool {
	if w > 0 {
		return true
	}
	return w == 0 && topLeft(from.x, from.y, to.x, to.y)
}

// depthPasses compares a candidate depth against the stored depth.
func (r *Renderer) depthPasses(d, stored int16) bool {
	switch r.depthCompare {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return d < stored
	case gputypes.CompareFunctionAlways:
		return true
	default:
		// CompareFunctionLessEqual and unset values.
		return d <= stored
	}
}
