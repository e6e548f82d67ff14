package render

// ShaderType identifies the pipeline stage a shader implements.
type ShaderType uint8

// Shader stages.
const (
	// VertexShader runs once per vertex and must output a clip-space
	// position as its first declared slot.
	VertexShader ShaderType = iota
	// FragmentShader runs once per covered pixel and outputs a color.
	FragmentShader
)

// String returns the stage name.
func (t ShaderType) String() string {
	switch t {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Shader is the marker interface for shader stages. Concrete backends
// define the full stage contract; see softpipe.Shader for the software
// pipeline.
type Shader interface {
	// Stage reports which pipeline stage this shader implements.
	Stage() ShaderType
}

// Context is the per-backend rendering context. One context owns the
// drawing surface and all resources created through it.
//
// Contexts are not safe for concurrent use; the design assumes exactly
// one context drives the pipeline at a time.
type Context interface {
	// NewProgram links shader stages into a program. Exactly one vertex
	// and one fragment stage must be supplied.
	NewProgram(shaders ...Shader) (Program, error)

	// NewTexture creates a texture with the given dimensions and
	// internal format. The pixel contents are undefined until
	// SetImageData is called.
	NewTexture(width, height int, format InternalFormat) (Texture, error)

	// NewFrameBuffer creates an offscreen render target with a color
	// texture attachment and its own depth buffer.
	NewFrameBuffer(width, height int) (FrameBuffer, error)

	// NewVertexArray creates a vertex data source with the given
	// per-vertex attribute layout.
	NewVertexArray(layout ...DataFormat) (VertexArray, error)

	// EnableCapability turns a pipeline capability on.
	EnableCapability(cap Capability)

	// DisableCapability turns a pipeline capability off.
	DisableCapability(cap Capability)

	// SetDepthMask controls whether passing fragments write depth.
	SetDepthMask(write bool)

	// SetClearColor sets the color used by ClearCurrentBuffer.
	SetClearColor(c Color)

	// SetViewport sets the rectangle that clip-space coordinates map to.
	SetViewport(r Rectangle)

	// ClearCurrentBuffer fills the bound color buffer with the clear
	// color and resets the depth buffer.
	ClearCurrentBuffer()

	// BindTexture binds a texture to a texture unit. Samplers declared
	// for that unit by the active program observe the new binding.
	BindTexture(unit int, t Texture)

	// UpdateDisplay presents the default color buffer to the drawing
	// surface.
	UpdateDisplay()

	// Destroy releases the context and all buffers it owns. The context
	// must not be used afterwards.
	Destroy()
}

// Program is a linked pair of shader stages.
type Program interface {
	// Use makes this program current for subsequent draws and wires its
	// declared samplers to the context's texture units.
	Use()

	// SetUniform assigns a named uniform in any stage that declared it.
	// Unknown names are ignored; a uniform absent from one stage may be
	// present in another.
	SetUniform(name string, value any)

	// Delete releases the program.
	Delete()
}

// Texture is a 2D image resource.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// SetImageData replaces the pixel storage with data packed in the
	// texture's internal format.
	SetImageData(data []byte, width, height int) error

	// GetImageData returns the pixel contents converted to the requested
	// format. Channels absent from the source read as zero, except alpha
	// which reads as full.
	GetImageData(format InternalFormat) ([]byte, error)

	// Delete releases the texture.
	Delete()
}

// FrameBuffer is an offscreen render target.
type FrameBuffer interface {
	// Bind redirects rendering into this framebuffer.
	Bind()

	// Unbind restores the default render target and resolves the color
	// buffer into the attachment texture.
	Unbind()

	// ColorTexture returns the color attachment.
	ColorTexture() Texture

	// Delete releases the framebuffer and its attachment.
	Delete()
}

// VertexArray is an interleaved per-vertex attribute source.
type VertexArray interface {
	// SetVertexData replaces the vertex words. The data is interpreted
	// as interleaved attributes, one 32-bit word per component, and its
	// length must be a multiple of the layout stride.
	SetVertexData(words []uint32) error

	// SetIndices sets the optional index list. An empty list draws
	// vertices sequentially.
	SetIndices(indices ...int)

	// Count returns the number of vertices drawn, honoring indices.
	Count() int

	// Draw submits the vertices with the given primitive topology.
	Draw(mode DrawMode) error

	// Delete releases the vertex array.
	Delete()
}
