// Package sketch implements an immediate-mode drawing pipeline for
// creative-coding canvases on the GPU.
//
// Callers record stateful drawing commands (set colors, transform the
// coordinate system, draw shapes) against a Canvas every frame. Flush
// replays the recorded commands once per frame, coalescing consecutive
// shapes that share a material and transform into single GPU meshes
// while preserving draw order.
//
// Basic use:
//
//	ctx := sketch.NewContext(registry, device)
//	cv, _ := ctx.CreateCanvas(800, 600)
//
//	ctx.BeginDraw(cv)
//	ctx.Record(cv, sketch.SetFill{Color: sketch.RGB(1, 0, 0)})
//	ctx.Record(cv, sketch.Rect{X: 10, Y: 10, W: 100, H: 50})
//	ctx.EndDraw(cv)
//
// The GPU device and the asset registry are external collaborators
// consumed through the Device and Registry interfaces; render.MemDevice
// and render.MemRegistry provide in-memory implementations for headless
// use, and backend/hal drives a real GPU through gogpu/wgpu.
package sketch
