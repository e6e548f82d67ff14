// Package softpipe implements the software rendering backend: a CPU
// emulation of a fixed-function-plus-shader pipeline.
//
// The pipeline is immediate mode and single threaded. A draw call runs
// the vertex stage once per vertex, assembles triangles, rasterizes
// them with barycentric interpolation, runs the fragment stage once per
// covered pixel, and writes color and depth into the bound target.
//
// # Shader stages
//
// Shader stages are ordinary Go types implementing Shader. A stage
// declares its output layout as a list of render.DataFormat descriptors
// and moves data through ShaderBuffer records:
//
//	type flatVertex struct {
//	    mvp [16]float32
//	}
//
//	func (*flatVertex) Stage() render.ShaderType { return render.VertexShader }
//
//	func (*flatVertex) OutputFormat() []render.DataFormat {
//	    return []render.DataFormat{render.Floats(4), render.Floats(2)}
//	}
//
//	func (v *flatVertex) Declare(b *softpipe.Bindings) {
//	    b.Uniform("mvp", &v.mvp)
//	}
//
//	func (v *flatVertex) Main(in, out *softpipe.ShaderBuffer) {
//	    pos := in.ReadVec4f()
//	    out.WriteVec4f(transform(v.mvp, pos))
//	    out.WriteVec2f(in.ReadVec2f()) // pass texcoord through
//	}
//
// Uniform and sampler bindings are declared once, at program link time,
// and are immutable afterwards. There is no reflection: a stage hands
// pointers to its fields to Bindings explicitly.
//
// # Data model
//
// ShaderBuffer stores one 32-bit word per attribute component; float
// components are stored as their bit pattern. The conversion primitives
// in this package (ToFloat, FromFloat, Pack, DenormalizeToShort) make
// every bit reinterpretation explicit.
package softpipe
