// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/voronoi"
)

// frameParamsSize is the byte size of the WGSL Params struct:
//
//	transform    mat4x4<f32>  offset  0, 64 bytes
//	resolution   vec2<f32>    offset 64,  8 bytes
//	active_count u32          offset 72,  4 bytes
//	_pad         u32          offset 76,  4 bytes
//	background   vec4<f32>    offset 80, 16 bytes
const frameParamsSize = 96

// frameParams is the per-frame uniform block.
type frameParams struct {
	transform   voronoi.Mat4
	resolution  voronoi.Resolution
	activeCount uint32
	background  voronoi.RGBA
}

func (p frameParams) marshal() []byte {
	buf := make([]byte, frameParamsSize)
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i, v := range p.transform {
		put(i*4, v)
	}
	put(64, float32(p.resolution.Width))
	put(68, float32(p.resolution.Height))
	binary.LittleEndian.PutUint32(buf[72:], p.activeCount)
	put(80, p.background.R)
	put(84, p.background.G)
	put(88, p.background.B)
	put(92, p.background.A)
	return buf
}
