// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"log/slog"
	"sync/atomic"
)

// Renderer and SeedMemory log device setup, uploads and frames. Records
// carry a "backend" attribute so they can be told apart from the CPU
// renderer's when both share a handler.
var gpuLog atomic.Pointer[slog.Logger]

func init() {
	gpuLog.Store(discardLogger())
}

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// SetLogger routes GPU renderer logs to l. Pass nil to drop them, which
// is the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		gpuLog.Store(discardLogger())
		return
	}
	gpuLog.Store(l.With("backend", "gpu"))
}

func slogger() *slog.Logger { return gpuLog.Load() }
