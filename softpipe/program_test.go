package softpipe

import (
	"errors"
	"testing"

	"github.com/gogpu/render"
)

// passVertex forwards a 2D position as the clip position and carries one
// float varying through.
type passVertex struct {
	scale float32
}

func (*passVertex) Stage() render.ShaderType { return render.VertexShader }

func (*passVertex) OutputFormat() []render.DataFormat {
	return []render.DataFormat{render.Floats(4), render.Floats(1)}
}

func (s *passVertex) Declare(b *Bindings) {
	b.Uniform("scale", &s.scale)
}

func (s *passVertex) Main(in, out *ShaderBuffer) {
	pos := in.ReadVec2f()
	v := in.ReadFloat()
	out.WriteVec4f([4]float32{pos[0] * s.scale, pos[1] * s.scale, 0, 1})
	out.WriteFloat(v)
}

// flatFragment emits a uniform color, ignoring its inputs.
type flatFragment struct {
	color [4]float32
}

func (*flatFragment) Stage() render.ShaderType { return render.FragmentShader }

func (*flatFragment) OutputFormat() []render.DataFormat {
	return []render.DataFormat{render.Floats(4)}
}

func (s *flatFragment) Declare(b *Bindings) {
	b.Uniform("color", &s.color)
}

func (s *flatFragment) Main(in, out *ShaderBuffer) {
	out.WriteVec4f(s.color)
}

func newTestProgram(t *testing.T, r *Renderer, shaders ...render.Shader) *Program {
	t.Helper()
	p, err := newProgram(r, shaders...)
	if err != nil {
		t.Fatalf("newProgram() error = %v", err)
	}
	return p
}

func newTestRenderer(t *testing.T, w, h int) *Renderer {
	t.Helper()
	r, err := NewRenderer(w, h)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func TestProgramLink(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	p := newTestProgram(t, r, &passVertex{}, &flatFragment{})
	if p.vertex == nil || p.fragment == nil {
		t.Fatal("linked program is missing a stage")
	}
}

func TestProgramLinkMissingStage(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	if _, err := newProgram(r, &passVertex{}); !errors.Is(err, ErrMissingFragmentStage) {
		t.Errorf("vertex only: error = %v, want ErrMissingFragmentStage", err)
	}
	if _, err := newProgram(r, &flatFragment{}); !errors.Is(err, ErrMissingVertexStage) {
		t.Errorf("fragment only: error = %v, want ErrMissingVertexStage", err)
	}
}

func TestProgramLinkDuplicateStage(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	if _, err := newProgram(r, &passVertex{}, &passVertex{}, &flatFragment{}); err == nil {
		t.Error("two vertex stages should fail to link")
	}
}

// foreignShader satisfies render.Shader but is not a software shader.
type foreignShader struct{}

func (foreignShader) Stage() render.ShaderType { return render.VertexShader }

func TestProgramLinkForeignShader(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	if _, err := newProgram(r, foreignShader{}, &flatFragment{}); !errors.Is(err, ErrUnknownShader) {
		t.Errorf("error = %v, want ErrUnknownShader", err)
	}
}

// badVertex declares a vec3 first output slot instead of a clip position.
type badVertex struct{}

func (*badVertex) Stage() render.ShaderType { return render.VertexShader }
func (*badVertex) OutputFormat() []render.DataFormat {
	return []render.DataFormat{render.Floats(3)}
}
func (*badVertex) Declare(*Bindings)          {}
func (*badVertex) Main(in, out *ShaderBuffer) {}

func TestProgramLinkBadVertexOutput(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	if _, err := newProgram(r, &badVertex{}, &flatFragment{}); !errors.Is(err, ErrBadVertexOutput) {
		t.Errorf("error = %v, want ErrBadVertexOutput", err)
	}
}

// nilSamplerFragment declares a nil sampler, which must fail the link.
type nilSamplerFragment struct{ flatFragment }

func (*nilSamplerFragment) Declare(b *Bindings) {
	b.Sampler(nil)
}

func TestProgramLinkNilSampler(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	if _, err := newProgram(r, &passVertex{}, &nilSamplerFragment{}); !errors.Is(err, ErrNilSampler) {
		t.Errorf("error = %v, want ErrNilSampler", err)
	}
}

// twoSamplerFragment declares two samplers in order; they must land on
// units 0 and 1.
type twoSamplerFragment struct {
	flatFragment
	first  Sampler
	second Sampler
}

func (s *twoSamplerFragment) Declare(b *Bindings) {
	b.Sampler(&s.first)
	b.Sampler(&s.second)
}

func TestSamplerUnitsFollowDeclarationOrder(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	frag := &twoSamplerFragment{}
	p := newTestProgram(t, r, &passVertex{}, frag)

	if p.samplers[0] != &frag.first || p.samplers[1] != &frag.second {
		t.Error("samplers not assigned to sequential units in declaration order")
	}
}

// unitSamplerFragment pins its sampler to an explicit unit.
type unitSamplerFragment struct {
	flatFragment
	s Sampler
}

func (f *unitSamplerFragment) Declare(b *Bindings) {
	b.SamplerAt(3, &f.s)
}

func TestSamplerExplicitUnit(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	frag := &unitSamplerFragment{}
	p := newTestProgram(t, r, &passVertex{}, frag)
	if p.samplers[3] != &frag.s {
		t.Error("sampler not on explicit unit 3")
	}

	tex, err := NewTexture(2, 2, render.RGBA8)
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}
	p.Use()
	r.BindTexture(3, tex)
	if frag.s.Texture() != tex {
		t.Error("sampler did not observe the unit 3 binding")
	}
}

func TestSetUniform(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	vert := &passVertex{}
	frag := &flatFragment{}
	p := newTestProgram(t, r, vert, frag)

	p.SetUniform("scale", float32(2.5))
	if vert.scale != 2.5 {
		t.Errorf("scale = %v, want 2.5", vert.scale)
	}

	p.SetUniform("color", [4]float32{1, 0, 0, 1})
	if frag.color != [4]float32{1, 0, 0, 1} {
		t.Errorf("color = %v", frag.color)
	}

	// Unknown name and mismatched type are soft no-ops.
	p.SetUniform("missing", 1)
	p.SetUniform("scale", "not a number")
	if vert.scale != 2.5 {
		t.Errorf("scale changed by mismatched assignment: %v", vert.scale)
	}
}

func TestSetUniformScalarConversions(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	vert := &passVertex{}
	p := newTestProgram(t, r, vert, &flatFragment{})

	p.SetUniform("scale", 3) // int literal
	if vert.scale != 3 {
		t.Errorf("scale = %v, want 3", vert.scale)
	}
	p.SetUniform("scale", 0.5) // untyped float literal arrives as float64
	if vert.scale != 0.5 {
		t.Errorf("scale = %v, want 0.5", vert.scale)
	}
}

func TestProgramUseAfterDeletePanics(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	p := newTestProgram(t, r, &passVertex{}, &flatFragment{})
	p.Delete()
	defer func() {
		if recover() == nil {
			t.Error("Use() of a deleted program should panic")
		}
	}()
	p.Use()
}

func TestProgramDelete(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	p := newTestProgram(t, r, &passVertex{}, &flatFragment{})
	p.Use()
	if r.program != p {
		t.Fatal("Use() did not make the program current")
	}
	p.Delete()
	if r.program != nil {
		t.Error("Delete() left a deleted program current")
	}
}
