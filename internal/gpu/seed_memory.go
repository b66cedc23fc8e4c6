// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyAlignment is the WebGPU alignment for buffer write offsets and sizes.
const copyAlignment = 4

// SeedMemory is the device-side home of a packed seed buffer: a single
// fixed-size uniform buffer that shaders read by slot.
//
// The expected sequence is Allocate once, Write the packed bytes, then
// BindForRead when building the bind group. Writes are queued on the
// device queue and are visible to every draw submitted after them.
type SeedMemory struct {
	device hal.Device
	queue  hal.Queue
	buf    hal.Buffer
	size   uint64
}

// NewSeedMemory creates an empty seed memory on device.
func NewSeedMemory(device hal.Device, queue hal.Queue) *SeedMemory {
	return &SeedMemory{device: device, queue: queue}
}

// Allocate creates the device buffer. Any previous allocation is released.
func (m *SeedMemory) Allocate(size uint64) error {
	if size == 0 || size%copyAlignment != 0 {
		return fmt.Errorf("%w: size %d", ErrMisaligned, size)
	}
	if size > maxUniformBindingSize {
		return fmt.Errorf("%w: %d bytes", ErrCapacityTooLarge, size)
	}
	m.Destroy()

	buf, err := m.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "voronoi_seeds",
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create seed buffer: %w", err)
	}
	m.buf = buf
	m.size = size
	slogger().Debug("gpu: seed memory allocated", "bytes", size)
	return nil
}

// Write queues a copy of data into the buffer at offset.
func (m *SeedMemory) Write(offset uint64, data []byte) error {
	if m.buf == nil {
		return ErrNotAllocated
	}
	n := uint64(len(data))
	if offset%copyAlignment != 0 || n%copyAlignment != 0 {
		return fmt.Errorf("%w: offset %d, size %d", ErrMisaligned, offset, n)
	}
	if offset+n > m.size {
		return fmt.Errorf("%w: [%d, %d) in %d bytes", ErrOutOfRange, offset, offset+n, m.size)
	}
	m.queue.WriteBuffer(m.buf, offset, data)
	return nil
}

// BindForRead returns the bind group entry exposing the whole buffer at
// the given binding slot.
func (m *SeedMemory) BindForRead(slot uint32) (gputypes.BindGroupEntry, error) {
	if m.buf == nil {
		return gputypes.BindGroupEntry{}, ErrNotAllocated
	}
	return gputypes.BindGroupEntry{
		Binding:  slot,
		Resource: gputypes.BufferBinding{Buffer: m.buf.NativeHandle(), Offset: 0, Size: m.size},
	}, nil
}

// Size returns the allocated size in bytes, or 0.
func (m *SeedMemory) Size() uint64 {
	return m.size
}

// Destroy releases the device buffer. Safe to call multiple times.
func (m *SeedMemory) Destroy() {
	if m.buf != nil {
		m.device.DestroyBuffer(m.buf)
		m.buf = nil
	}
	m.size = 0
}
