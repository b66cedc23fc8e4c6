// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/voronoi"
	"github.com/gogpu/wgpu/hal"
)

// quadDriver owns the vertex and index buffers of the full-screen quad
// and records the indexed draw that invokes the fragment stage once per
// covered pixel.
type quadDriver struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	indexCount uint32
}

func newQuadDriver(device hal.Device, queue hal.Queue, q voronoi.Quad) (*quadDriver, error) {
	verts := q.VertexBytes()
	vertBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "voronoi_quad_vertices",
		Size:  uint64(len(verts)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create quad vertex buffer: %w", err)
	}
	queue.WriteBuffer(vertBuf, 0, verts)

	indices := q.IndexBytes()
	idxBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "voronoi_quad_indices",
		Size:  uint64(len(indices)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create quad index buffer: %w", err)
	}
	queue.WriteBuffer(idxBuf, 0, indices)

	return &quadDriver{
		vertBuf:    vertBuf,
		idxBuf:     idxBuf,
		indexCount: uint32(len(q.Indices)),
	}, nil
}

func (d *quadDriver) record(rp hal.RenderPassEncoder) {
	rp.SetVertexBuffer(0, d.vertBuf, 0)
	rp.SetIndexBuffer(d.idxBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(d.indexCount, 1, 0, 0, 0)
}

func (d *quadDriver) destroy(device hal.Device) {
	if d.idxBuf != nil {
		device.DestroyBuffer(d.idxBuf)
		d.idxBuf = nil
	}
	if d.vertBuf != nil {
		device.DestroyBuffer(d.vertBuf)
		d.vertBuf = nil
	}
}

// quadVertexLayout returns the vertex buffer layout: one vec2<f32>
// corner per vertex at location 0.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: voronoi.QuadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}
