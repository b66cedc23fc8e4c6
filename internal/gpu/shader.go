// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/voronoi"
)

//go:embed shaders/voronoi.wgsl
var voronoiShaderTemplate string

// capacityPlaceholder is replaced with the seed capacity in the template.
const capacityPlaceholder = "SEED_CAPACITY"

// maxUniformBindingSize is the WebGPU default limit for one uniform
// buffer binding. Both seed blocks must fit in it.
const maxUniformBindingSize = 64 << 10

// CheckCapacity reports ErrCapacityTooLarge if a packed buffer with the
// given capacity cannot be bound as one uniform buffer.
func CheckCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: %d", voronoi.ErrInvalidCapacity, capacity)
	}
	if size := voronoi.PackedSize(capacity); size > maxUniformBindingSize {
		return fmt.Errorf("%w: capacity %d needs %d bytes, limit %d",
			ErrCapacityTooLarge, capacity, size, maxUniformBindingSize)
	}
	return nil
}

// ShaderSource returns the WGSL source of the nearest-seed shader for
// the given seed capacity.
func ShaderSource(capacity int) (string, error) {
	if err := CheckCapacity(capacity); err != nil {
		return "", err
	}
	return strings.ReplaceAll(voronoiShaderTemplate, capacityPlaceholder, strconv.Itoa(capacity)), nil
}

// SPIRVBytes compiles the shader for the given capacity with naga and
// returns the little-endian SPIR-V byte stream, the format of a .spv file.
func SPIRVBytes(capacity int) ([]byte, error) {
	src, err := ShaderSource(capacity)
	if err != nil {
		return nil, err
	}
	out, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile voronoi shader: %w", err)
	}
	return out, nil
}

// CompileSPIRV compiles the shader for the given capacity to SPIR-V words.
func CompileSPIRV(capacity int) ([]uint32, error) {
	spirvBytes, err := SPIRVBytes(capacity)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
