package softpipe

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/render"
)

// stageBindings is one stage with its name-indexed uniform table,
// resolved at link time.
type stageBindings struct {
	shader   Shader
	uniforms map[string]any
}

// Program is a linked pair of shader stages. Linking performs the
// one-time binding discovery: each stage's Declare call populates a
// name→uniform table per stage and one unit→sampler table shared by
// the whole program. Re-using a program does not re-run discovery.
type Program struct {
	renderer *Renderer
	vertex   Shader
	fragment Shader
	stages   [2]stageBindings
	samplers map[int]*Sampler
	deleted  bool
}

// newProgram links shader stages. Exactly one vertex and one fragment
// stage must be supplied, the vertex stage's first output slot must be
// a 4-component float clip position, and every declared sampler must be
// non-nil; violations fail immediately.
func newProgram(r *Renderer, shaders ...render.Shader) (*Program, error) {
	p := &Program{
		renderer: r,
		samplers: make(map[int]*Sampler),
	}
	for _, s := range shaders {
		impl, ok := s.(Shader)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnknownShader, s)
		}
		switch impl.Stage() {
		case render.VertexShader:
			if p.vertex != nil {
				return nil, fmt.Errorf("softpipe: program has two vertex stages")
			}
			p.vertex = impl
		case render.FragmentShader:
			if p.fragment != nil {
				return nil, fmt.Errorf("softpipe: program has two fragment stages")
			}
			p.fragment = impl
		default:
			return nil, fmt.Errorf("%w: stage %v", ErrUnknownShader, impl.Stage())
		}
	}
	if p.vertex == nil {
		return nil, ErrMissingVertexStage
	}
	if p.fragment == nil {
		return nil, ErrMissingFragmentStage
	}

	vout := p.vertex.OutputFormat()
	if len(vout) == 0 || vout[0] != render.Floats(4) {
		return nil, fmt.Errorf("%w: got %v", ErrBadVertexOutput, vout)
	}
	for _, f := range vout {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: vertex output %v", ErrInvalidFormat, f)
		}
	}
	if len(p.fragment.OutputFormat()) == 0 {
		return nil, fmt.Errorf("%w: fragment stage declares no output", ErrInvalidFormat)
	}

	for i, stage := range [2]Shader{p.vertex, p.fragment} {
		b := &Bindings{
			uniforms: make(map[string]any),
			samplers: p.samplers,
		}
		stage.Declare(b)
		if err := b.err(); err != nil {
			return nil, fmt.Errorf("softpipe: link %v stage: %w", stage.Stage(), err)
		}
		p.stages[i] = stageBindings{shader: stage, uniforms: b.uniforms}
	}

	render.Logger().Debug("softpipe: program linked",
		slog.Int("uniforms", len(p.stages[0].uniforms)+len(p.stages[1].uniforms)),
		slog.Int("samplers", len(p.samplers)))
	return p, nil
}

// Use makes the program current and wires its samplers to the
// context's texture units. Using a deleted program is a program bug
// and panics.
func (p *Program) Use() {
	if p.deleted {
		panic("softpipe: use of deleted program")
	}
	p.renderer.useProgram(p)
}

// SetUniform assigns a named uniform in every stage that declared it.
// An unknown name is a soft no-op: a uniform absent from one stage may
// be present in another. A value of the wrong type is dropped with a
// warning.
func (p *Program) SetUniform(name string, value any) {
	found := false
	for _, st := range p.stages {
		ptr, ok := st.uniforms[name]
		if !ok {
			continue
		}
		found = true
		if !assignUniform(ptr, value) {
			render.Logger().Warn("softpipe: uniform type mismatch",
				slog.String("name", name),
				slog.String("stage", st.shader.Stage().String()),
				slog.Any("value", value))
		}
	}
	if !found {
		render.Logger().Debug("softpipe: unknown uniform", slog.String("name", name))
	}
}

// Delete releases the program; if it is current, the renderer is left
// without an active program.
func (p *Program) Delete() {
	if p.renderer.program == p {
		p.renderer.useProgram(nil)
	}
	p.deleted = true
}

// rewireSamplers points every declared sampler at the texture bound to
// its unit. Called when the program becomes current and whenever a
// texture unit binding changes while it is current.
func (p *Program) rewireSamplers() {
	for unit, s := range p.samplers {
		s.bind(p.renderer.textures[unit])
	}
}

// assignUniform stores value through the registered pointer, reporting
// whether the types matched. Scalars accept the common Go literal
// types; vectors and matrices require the exact array type.
func assignUniform(ptr, value any) bool {
	switch dst := ptr.(type) {
	case *float32:
		switch v := value.(type) {
		case float32:
			*dst = v
		case float64:
			*dst = float32(v)
		case int:
			*dst = float32(v)
		default:
			return false
		}
	case *int32:
		switch v := value.(type) {
		case int32:
			*dst = v
		case int:
			*dst = int32(v)
		default:
			return false
		}
	case *[2]float32:
		v, ok := value.([2]float32)
		if !ok {
			return false
		}
		*dst = v
	case *[3]float32:
		v, ok := value.([3]float32)
		if !ok {
			return false
		}
		*dst = v
	case *[4]float32:
		v, ok := value.([4]float32)
		if !ok {
			return false
		}
		*dst = v
	case *[9]float32:
		v, ok := value.([9]float32)
		if !ok {
			return false
		}
		*dst = v
	case *[16]float32:
		v, ok := value.([16]float32)
		if !ok {
			return false
		}
		*dst = v
	default:
		return false
	}
	return true
}
