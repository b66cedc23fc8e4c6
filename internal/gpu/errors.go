// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import "errors"

var (
	// ErrNotReady is returned when rendering before a device is attached
	// or seeds are uploaded.
	ErrNotReady = errors.New("gpu: renderer not ready")

	// ErrCapacityTooLarge is returned when the packed seed buffer does
	// not fit in a single uniform binding.
	ErrCapacityTooLarge = errors.New("gpu: seed capacity exceeds uniform binding limit")

	// ErrNoAdapter is returned by Open when no GPU adapter is available.
	ErrNoAdapter = errors.New("gpu: no adapter available")

	// ErrInvalidProvider is returned when a device provider does not
	// expose HAL device and queue handles.
	ErrInvalidProvider = errors.New("gpu: provider does not expose HAL types")

	// ErrOutOfRange is returned by SeedMemory.Write for writes past the
	// end of the allocation.
	ErrOutOfRange = errors.New("gpu: write out of range")

	// ErrMisaligned is returned by SeedMemory for offsets or sizes that
	// are not multiples of 4 bytes.
	ErrMisaligned = errors.New("gpu: offset and size must be 4-byte aligned")

	// ErrNotAllocated is returned when writing or binding seed memory
	// before Allocate.
	ErrNotAllocated = errors.New("gpu: seed memory not allocated")
)
