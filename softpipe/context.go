package softpipe

import (
	"github.com/gogpu/render"
)

// Context adapts the software renderer to the generic render.Context
// contract. All resources it creates operate against the one Renderer
// instance it owns.
type Context struct {
	renderer  *Renderer
	destroyed bool
}

// compile-time interface checks.
var (
	_ render.Context     = (*Context)(nil)
	_ render.Program     = (*Program)(nil)
	_ render.Texture     = (*Texture)(nil)
	_ render.FrameBuffer = (*FrameBuffer)(nil)
	_ render.VertexArray = (*VertexArray)(nil)
)

// NewContext creates a software rendering context with a width×height
// drawing surface.
func NewContext(width, height int) (*Context, error) {
	r, err := NewRenderer(width, height)
	if err != nil {
		return nil, err
	}
	return &Context{renderer: r}, nil
}

// Renderer exposes the underlying rasterizer for advanced usage and
// inspection.
func (c *Context) Renderer() *Renderer { return c.renderer }

// NewProgram links shader stages into a program.
func (c *Context) NewProgram(shaders ...render.Shader) (render.Program, error) {
	return newProgram(c.renderer, shaders...)
}

// NewTexture creates a texture.
func (c *Context) NewTexture(width, height int, format render.InternalFormat) (render.Texture, error) {
	return NewTexture(width, height, format)
}

// NewFrameBuffer creates an offscreen render target.
func (c *Context) NewFrameBuffer(width, height int) (render.FrameBuffer, error) {
	return newFrameBuffer(c.renderer, width, height)
}

// NewVertexArray creates a vertex data source with the given layout.
func (c *Context) NewVertexArray(layout ...render.DataFormat) (render.VertexArray, error) {
	return newVertexArray(c.renderer, layout...)
}

// EnableCapability turns a pipeline capability on.
func (c *Context) EnableCapability(cap render.Capability) {
	c.renderer.SetCapabilityEnabled(cap, true)
}

// DisableCapability turns a pipeline capability off.
func (c *Context) DisableCapability(cap render.Capability) {
	c.renderer.SetCapabilityEnabled(cap, false)
}

// SetDepthMask controls whether passing fragments write depth.
func (c *Context) SetDepthMask(write bool) {
	c.renderer.SetDepthMask(write)
}

// SetClearColor sets the color used by ClearCurrentBuffer.
func (c *Context) SetClearColor(col render.Color) {
	c.renderer.SetClearColor(col)
}

// SetViewport sets the viewport rectangle.
func (c *Context) SetViewport(r render.Rectangle) {
	c.renderer.SetViewport(r)
}

// ClearCurrentBuffer clears the bound color and depth buffers.
func (c *Context) ClearCurrentBuffer() {
	c.renderer.ClearPixels()
}

// BindTexture binds a texture to a unit. Textures from other backends
// are ignored.
func (c *Context) BindTexture(unit int, t render.Texture) {
	if t == nil {
		c.renderer.BindTexture(unit, nil)
		return
	}
	if st, ok := t.(*Texture); ok {
		c.renderer.BindTexture(unit, st)
	}
}

// UpdateDisplay presents the default color buffer to the drawing
// surface.
func (c *Context) UpdateDisplay() {
	c.renderer.Present()
}

// Destroy releases the context and all buffers it owns.
func (c *Context) Destroy() {
	c.renderer.destroy()
	c.destroyed = true
}
