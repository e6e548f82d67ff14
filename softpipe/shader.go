package softpipe

import (
	"fmt"

	"github.com/gogpu/render"
)

// Shader is one pipeline stage of a software program. It is the CPU
// analog of a GLSL shader and the primary extension point of the
// backend: users implement it with plain Go types.
//
// A stage declares its output record layout once; for a vertex stage
// the first slot must be a 4-component float holding the clip-space
// position. Main is the single entry point, invoked per vertex or per
// fragment with the stage's input and output records.
type Shader interface {
	render.Shader

	// OutputFormat returns the stage's output slot layout.
	OutputFormat() []render.DataFormat

	// Declare registers the stage's uniform and sampler bindings.
	// It is called exactly once, when the program is linked; the
	// resulting tables are immutable afterwards. Stages without
	// uniforms or samplers implement it as a no-op.
	Declare(b *Bindings)

	// Main executes the stage: it reads attributes from in and the
	// stage's declared uniforms and samplers, and writes outputs to out
	// in declared-format order.
	Main(in, out *ShaderBuffer)
}

// Bindings collects a stage's uniform and sampler declarations at
// program link time. It replaces runtime field introspection with an
// explicit registration call: the stage hands over named pointers to
// its own fields, resolved once into a name-indexed and a unit-indexed
// table.
type Bindings struct {
	uniforms map[string]any
	samplers map[int]*Sampler
	errs     []error
}

// Uniform registers a named uniform backed by ptr. Supported pointer
// types: *float32, *int32, *[2]float32, *[3]float32, *[4]float32,
// *[9]float32 and *[16]float32. Registering the same name twice
// replaces the previous accessor.
func (b *Bindings) Uniform(name string, ptr any) {
	switch ptr.(type) {
	case *float32, *int32, *[2]float32, *[3]float32, *[4]float32, *[9]float32, *[16]float32:
	case nil:
		b.errs = append(b.errs, fmt.Errorf("softpipe: uniform %q has nil accessor", name))
		return
	default:
		b.errs = append(b.errs, fmt.Errorf("softpipe: uniform %q has unsupported type %T", name, ptr))
		return
	}
	b.uniforms[name] = ptr
}

// Sampler registers a sampler on the next free sequential unit: the
// unit is the sampler table's current size, i.e. assignment follows
// declaration order. Reordering declarations changes the default units;
// use SamplerAt when the unit must be stable.
func (b *Bindings) Sampler(s *Sampler) {
	b.SamplerAt(len(b.samplers), s)
}

// SamplerAt registers a sampler on an explicit texture unit.
// A nil sampler is a hard link failure.
func (b *Bindings) SamplerAt(unit int, s *Sampler) {
	if s == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: unit %d", ErrNilSampler, unit))
		return
	}
	if unit < 0 {
		b.errs = append(b.errs, fmt.Errorf("softpipe: negative sampler unit %d", unit))
		return
	}
	if _, taken := b.samplers[unit]; taken {
		b.errs = append(b.errs, fmt.Errorf("softpipe: sampler unit %d declared twice", unit))
		return
	}
	b.samplers[unit] = s
}

// err folds the collected declaration problems into one error.
func (b *Bindings) err() error {
	if len(b.errs) == 0 {
		return nil
	}
	err := b.errs[0]
	for _, e := range b.errs[1:] {
		err = fmt.Errorf("%w; %w", err, e)
	}
	return err
}
