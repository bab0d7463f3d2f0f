// Package gpu draws scatter points with gogpu/wgpu.
//
// This is an internal package used by the scatter library. It owns the
// device-side half of a plot: the instance buffer holding mapped point
// coordinates, the render pipeline that expands every point into a round
// quad, and the HAL adapter that turns both into hal calls.
//
// # Components
//
//   - InstanceBuffer: one record per point, reallocated only on growth
//   - PointPipeline: shader, uniforms and the per-frame draw, driven by an
//     explicit Uninitialized -> Ready -> Drawing -> Ready -> Disposed state
//     machine
//   - HALAdapter: gpucore.Adapter implemented on hal.Device and hal.Queue
//
// # Record layout
//
// Each point is 8 bytes: x and y as little-endian float32 in clip space.
// Color and size are shared by the whole plot and live in a 32-byte
// uniform block:
//
//	offset  0  color     vec4<f32>  (premultiplied)
//	offset 16  viewport  vec2<f32>  (pixels)
//	offset 24  size      f32        (pixels)
//	offset 28  padding
package gpu
