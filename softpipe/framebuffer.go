package softpipe

import (
	"github.com/gogpu/render"
)

// FrameBuffer is an offscreen render target: its own color and depth
// buffers plus an RGBA8 texture attachment that receives the color
// contents on Unbind, so a later pass can sample what was rendered.
type FrameBuffer struct {
	renderer *Renderer
	target   *target
	color    *Texture
	deleted  bool
}

func newFrameBuffer(r *Renderer, width, height int) (*FrameBuffer, error) {
	color, err := NewTexture(width, height, render.RGBA8)
	if err != nil {
		return nil, err
	}
	return &FrameBuffer{
		renderer: r,
		target:   newTarget(width, height),
		color:    color,
	}, nil
}

// Bind redirects rendering into the framebuffer.
func (f *FrameBuffer) Bind() {
	f.renderer.setTarget(f.target)
}

// Unbind restores the default render target and resolves the color
// buffer into the attachment texture.
func (f *FrameBuffer) Unbind() {
	if f.renderer.current == f.target {
		f.renderer.setTarget(nil)
	}
	f.resolve()
}

// ColorTexture returns the color attachment. Its contents are valid
// after Unbind.
func (f *FrameBuffer) ColorTexture() render.Texture { return f.color }

// resolve unpacks the target's color words into the attachment's RGBA8
// byte layout.
func (f *FrameBuffer) resolve() {
	data := f.color.data
	for i, w := range f.target.pixels {
		o := i * 4
		data[o] = byte(w >> 16)
		data[o+1] = byte(w >> 8)
		data[o+2] = byte(w)
		data[o+3] = byte(w >> 24)
	}
}

// Delete releases the framebuffer and its attachment. A bound
// framebuffer is unbound first.
func (f *FrameBuffer) Delete() {
	if f.renderer.current == f.target {
		f.renderer.setTarget(nil)
	}
	f.color.Delete()
	f.target = nil
	f.deleted = true
}
