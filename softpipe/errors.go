package softpipe

import "errors"

// Package errors for the software pipeline. Misconfiguration is
// reported at the point of misuse; there are no retry or recovery
// semantics anywhere in this pipeline.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("softpipe: invalid dimensions")

	// ErrInvalidFormat is returned for an unusable data or texture format.
	ErrInvalidFormat = errors.New("softpipe: invalid format")

	// ErrDataSize is returned when supplied raw data does not match the
	// declared layout.
	ErrDataSize = errors.New("softpipe: data size does not match layout")

	// ErrUnknownShader is returned when a shader does not implement the
	// softpipe stage contract.
	ErrUnknownShader = errors.New("softpipe: unknown shader implementation")

	// ErrMissingVertexStage is returned when a program is linked without
	// a vertex stage.
	ErrMissingVertexStage = errors.New("softpipe: program has no vertex stage")

	// ErrMissingFragmentStage is returned when a program is linked
	// without a fragment stage.
	ErrMissingFragmentStage = errors.New("softpipe: program has no fragment stage")

	// ErrBadVertexOutput is returned when a vertex stage's first output
	// slot is not a 4-component float clip position.
	ErrBadVertexOutput = errors.New("softpipe: vertex output must start with a 4-component float position")

	// ErrNilSampler is returned when a stage declares a nil sampler field.
	ErrNilSampler = errors.New("softpipe: nil sampler declared")

	// ErrNoProgram is returned when drawing without an active program.
	ErrNoProgram = errors.New("softpipe: no active program")

	// ErrUnsupportedDrawMode is returned for draw modes other than
	// triangle lists.
	ErrUnsupportedDrawMode = errors.New("softpipe: unsupported draw mode")

	// ErrIndexOutOfRange is returned when an index references a vertex
	// past the end of the vertex data.
	ErrIndexOutOfRange = errors.New("softpipe: vertex index out of range")
)
