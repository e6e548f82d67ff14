// Package render provides a backend-agnostic 3D rendering API for Go.
//
// # Overview
//
// render defines a small common surface (Context, Program, Texture,
// FrameBuffer, VertexArray) that concrete backends implement. The
// repository ships one complete backend: a pure software rasterizer in
// package softpipe that runs the whole pipeline on the CPU — vertex
// stage, triangle rasterization with barycentric interpolation, depth
// testing and nearest-neighbor texture sampling.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/render"
//	    "github.com/gogpu/render/backend"
//	)
//
//	b, err := backend.InitDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	ctx, err := b.NewContext(640, 480)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx.SetClearColor(render.Color{R: 0, G: 0, B: 0, A: 1})
//	ctx.EnableCapability(render.CapDepthTest)
//
// Programs are built from shader stages written in Go. A stage declares
// its output layout as a list of DataFormat descriptors and reads and
// writes raw attribute records; see package softpipe for the stage
// contract.
//
// # Backends
//
// Backends register themselves by name in package backend. The software
// backend is always available; GPU backend names are reserved and
// selecting one that is not compiled in reports
// backend.ErrBackendNotAvailable.
package render
