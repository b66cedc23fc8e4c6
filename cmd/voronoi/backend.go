package main

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/internal/config"
	"github.com/gogpu/voronoi/internal/gpu"
)

// backend evaluates frames for a packed seed buffer.
type backend interface {
	Name() string
	Render(buf *voronoi.PackedBuffer, res voronoi.Resolution) (*voronoi.Pixmap, error)
	Close()
}

type cpuBackend struct {
	r *voronoi.Renderer
}

func (b *cpuBackend) Name() string { return "cpu" }

func (b *cpuBackend) Render(buf *voronoi.PackedBuffer, res voronoi.Resolution) (*voronoi.Pixmap, error) {
	return b.r.Render(buf, buf.ActiveCount(), res)
}

func (b *cpuBackend) Close() { b.r.Close() }

// gpuBackend uploads a buffer once and reuses it for every frame until
// a different buffer is passed.
type gpuBackend struct {
	r        *gpu.Renderer
	uploaded *voronoi.PackedBuffer
}

func (b *gpuBackend) Name() string { return "gpu" }

func (b *gpuBackend) Render(buf *voronoi.PackedBuffer, res voronoi.Resolution) (*voronoi.Pixmap, error) {
	if buf != b.uploaded {
		if err := b.r.Upload(buf, buf.ActiveCount()); err != nil {
			return nil, err
		}
		b.uploaded = buf
	}
	return b.r.Render(res)
}

func (b *gpuBackend) Close() { b.r.Destroy() }

// openBackend creates the backend cfg asks for. With BackendAuto a GPU
// failure falls back to the CPU.
func openBackend(cfg config.Config, opts ...voronoi.RenderOption) (backend, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}

	if cfg.Backend == config.BackendGPU || cfg.Backend == config.BackendAuto {
		r, err := gpu.Open(cfg.Capacity)
		if err == nil {
			r.SetBackground(bg)
			return &gpuBackend{r: r}, nil
		}
		if cfg.Backend == config.BackendGPU {
			return nil, fmt.Errorf("open gpu backend: %w", err)
		}
		slog.Warn("gpu unavailable, using cpu", "error", err)
	}

	opts = append([]voronoi.RenderOption{
		voronoi.WithWorkers(cfg.Workers),
		voronoi.WithBackground(bg),
	}, opts...)
	return &cpuBackend{r: voronoi.NewRenderer(opts...)}, nil
}
