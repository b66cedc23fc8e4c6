// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/voronoi"
	"github.com/gogpu/wgpu/hal"
)

const (
	// Binding slots in group 0, matching shaders/voronoi.wgsl.
	paramsBinding = 0
	seedsBinding  = 1

	// copyPitchAlignment is the WebGPU row alignment for texture copies.
	copyPitchAlignment = 256

	submitTimeout = 5 * time.Second
)

// Renderer draws Voronoi frames on a GPU device. The full-screen quad is
// rasterized by the device and the fragment shader performs the
// nearest-seed scan against a uniform copy of the packed seed buffer.
//
// A Renderer is safe for concurrent use; frames are serialized.
type Renderer struct {
	mu sync.Mutex

	instance hal.Instance // non-nil only when opened by Open
	device   hal.Device
	queue    hal.Queue
	external bool

	capacity   int
	active     int
	uploaded   bool
	background voronoi.RGBA
	clear      voronoi.RGBA

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	paramsBuf  hal.Buffer
	bindGroup  hal.BindGroup
	seeds      *SeedMemory
	quad       *quadDriver
	target     renderTarget
}

// NewRenderer creates a renderer on an existing device and queue. The
// caller keeps ownership of both.
func NewRenderer(device hal.Device, queue hal.Queue, capacity int) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNotReady
	}
	if err := CheckCapacity(capacity); err != nil {
		return nil, err
	}
	r := &Renderer{
		device:     device,
		queue:      queue,
		external:   true,
		capacity:   capacity,
		background: voronoi.Black,
		clear:      voronoi.Black,
	}
	if err := r.createResources(); err != nil {
		r.destroyResources()
		return nil, err
	}
	return r, nil
}

// Capacity returns the seed capacity the pipeline was built for.
func (r *Renderer) Capacity() int {
	return r.capacity
}

// SetBackground sets the color drawn when there are no active seeds.
func (r *Renderer) SetBackground(c voronoi.RGBA) {
	r.mu.Lock()
	r.background = c
	r.mu.Unlock()
}

// SetClearColor sets the color of pixels the quad does not cover.
func (r *Renderer) SetClearColor(c voronoi.RGBA) {
	r.mu.Lock()
	r.clear = c
	r.mu.Unlock()
}

// SetDeviceProvider moves the renderer onto a device shared by an
// external provider. The provider must also expose HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue. Seeds must be
// uploaded again afterwards.
func (r *Renderer) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return ErrInvalidProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("%w: HalDevice is not hal.Device", ErrInvalidProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("%w: HalQueue is not hal.Queue", ErrInvalidProvider)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.destroyResources()
	r.releaseDevice()
	r.device = device
	r.queue = queue
	r.external = true

	if err := r.createResources(); err != nil {
		r.destroyResources()
		return fmt.Errorf("create pipeline on shared device: %w", err)
	}
	slogger().Info("gpu: switched to shared device")
	return nil
}

// Upload publishes the first active slots of buf to the device. The
// whole packed buffer is copied so unused slots stay zeroed. Frames
// rendered after Upload returns observe the new seeds.
func (r *Renderer) Upload(buf *voronoi.PackedBuffer, active int) error {
	if buf.Capacity() != r.capacity {
		return fmt.Errorf("%w: buffer capacity %d, pipeline capacity %d",
			voronoi.ErrInvalidCapacity, buf.Capacity(), r.capacity)
	}
	if active < 0 || active > buf.Capacity() {
		return fmt.Errorf("%w: %d not in [0, %d]", voronoi.ErrActiveCount, active, buf.Capacity())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pipeline == nil {
		return ErrNotReady
	}
	if err := r.seeds.Write(0, buf.Bytes()); err != nil {
		return err
	}
	r.active = active
	r.uploaded = true
	slogger().Debug("gpu: seeds uploaded", "active", active, "bytes", buf.Size())
	return nil
}

// Render draws one frame at res and reads it back.
func (r *Renderer) Render(res voronoi.Resolution) (*voronoi.Pixmap, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pipeline == nil || !r.uploaded {
		return nil, ErrNotReady
	}

	start := time.Now()
	w, h := uint32(res.Width), uint32(res.Height)
	if err := r.target.ensure(r.device, w, h); err != nil {
		return nil, err
	}

	params := frameParams{
		transform:   voronoi.QuadTransform(res),
		resolution:  res,
		activeCount: uint32(r.active),
		background:  r.background,
	}
	r.queue.WriteBuffer(r.paramsBuf, 0, params.marshal())

	dst := voronoi.NewPixmap(res.Width, res.Height)
	if err := r.encodeSubmitReadback(w, h, dst.Data()); err != nil {
		return nil, err
	}

	slogger().Debug("gpu: frame",
		"size", fmt.Sprintf("%dx%d", w, h),
		"seeds", r.active,
		"elapsed", time.Since(start))
	return dst, nil
}

// Destroy releases all GPU resources, and the device itself when the
// renderer opened it.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyResources()
	r.releaseDevice()
	r.device = nil
	r.queue = nil
}

func (r *Renderer) encodeSubmitReadback(w, h uint32, out []byte) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "voronoi_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("voronoi_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "voronoi_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    r.target.view,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(r.clear.R),
				G: float64(r.clear.G),
				B: float64(r.clear.B),
				A: float64(r.clear.A),
			},
		}},
	})
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.bindGroup, nil)
	r.quad.record(rp)
	rp.End()

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "voronoi_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(r.target.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.target.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmd)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmd}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := r.device.Wait(fence, 1, submitTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(staging, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	stripRowPadding(out, readback, bytesPerRow, alignedBytesPerRow, h)
	return nil
}

// stripRowPadding copies h rows of rowBytes from src, whose rows are
// pitch bytes apart, into the tightly packed dst.
func stripRowPadding(dst, src []byte, rowBytes, pitch, h uint32) {
	if rowBytes == pitch {
		copy(dst, src[:rowBytes*h])
		return
	}
	for row := uint32(0); row < h; row++ {
		copy(dst[row*rowBytes:(row+1)*rowBytes], src[row*pitch:row*pitch+rowBytes])
	}
}

func (r *Renderer) createResources() error {
	src, err := ShaderSource(r.capacity)
	if err != nil {
		return err
	}
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "voronoi_shader",
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return fmt.Errorf("compile voronoi shader: %w", err)
	}
	r.shader = shader

	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "voronoi_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    paramsBinding,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    seedsBinding,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "voronoi_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "voronoi_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: targetFormat, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}

	paramsBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "voronoi_params",
		Size:  frameParamsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		r.device.DestroyRenderPipeline(pipeline)
		return fmt.Errorf("create params buffer: %w", err)
	}
	r.paramsBuf = paramsBuf

	r.seeds = NewSeedMemory(r.device, r.queue)
	if err := r.seeds.Allocate(uint64(voronoi.PackedSize(r.capacity))); err != nil {
		r.device.DestroyRenderPipeline(pipeline)
		return err
	}
	seedsEntry, err := r.seeds.BindForRead(seedsBinding)
	if err != nil {
		r.device.DestroyRenderPipeline(pipeline)
		return err
	}

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "voronoi_bind_group",
		Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding:  paramsBinding,
				Resource: gputypes.BufferBinding{Buffer: r.paramsBuf.NativeHandle(), Offset: 0, Size: frameParamsSize},
			},
			seedsEntry,
		},
	})
	if err != nil {
		r.device.DestroyRenderPipeline(pipeline)
		return fmt.Errorf("create bind group: %w", err)
	}
	r.bindGroup = bindGroup

	quad, err := newQuadDriver(r.device, r.queue, voronoi.UnitQuad())
	if err != nil {
		r.device.DestroyRenderPipeline(pipeline)
		return err
	}
	r.quad = quad

	// Assigned last: a non-nil pipeline marks the renderer ready.
	r.pipeline = pipeline
	slogger().Debug("gpu: pipeline created", "capacity", r.capacity)
	return nil
}

func (r *Renderer) destroyResources() {
	if r.device == nil {
		return
	}
	r.target.destroy(r.device)
	if r.quad != nil {
		r.quad.destroy(r.device)
		r.quad = nil
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.seeds != nil {
		r.seeds.Destroy()
		r.seeds = nil
	}
	if r.paramsBuf != nil {
		r.device.DestroyBuffer(r.paramsBuf)
		r.paramsBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindLayout != nil {
		r.device.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	r.uploaded = false
	r.active = 0
}

// releaseDevice destroys the device and instance if this renderer owns them.
func (r *Renderer) releaseDevice() {
	if !r.external && r.device != nil {
		r.device.Destroy()
	}
	if r.instance != nil {
		r.instance.Destroy()
		r.instance = nil
	}
}
