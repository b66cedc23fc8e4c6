// Package gpu renders Voronoi diagrams on a GPU through gogpu/wgpu.
//
// The full-screen quad from the voronoi package is drawn with a single
// indexed draw. The fragment shader in shaders/voronoi.wgsl scans every
// active seed for each covered pixel, the same kernel voronoi.Evaluator
// runs on the CPU, and the frame is copied back into a voronoi.Pixmap.
//
// # Seed Memory
//
// The packed seed buffer is uploaded unchanged into a uniform buffer
// managed by SeedMemory. Positions occupy the first capacity records and
// colors the next capacity records, so the shader declares two
// fixed-size arrays of vec4<f32>. Capacity is baked into the shader
// source at pipeline creation and is limited by the 64 KiB uniform
// binding size.
//
// # Devices
//
// Open creates a private Vulkan device. NewRenderer and
// SetDeviceProvider attach to a device owned by someone else. Builds
// with the nogpu tag exclude Vulkan and Open always fails.
//
// # Shader Compilation
//
// ShaderSource returns the WGSL for a capacity and CompileSPIRV
// compiles it with naga, for inspection and for tooling that consumes
// SPIR-V directly.
package gpu
