// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build nogpu

package gpu

// Open always fails in builds without GPU support.
func Open(int) (*Renderer, error) {
	return nil, ErrNoAdapter
}
