package voronoi

import (
	"fmt"
	"time"

	"github.com/gogpu/voronoi/internal/parallel"
)

// Renderer evaluates the nearest-seed kernel for every pixel covered by
// the full-screen quad, on a pool of worker goroutines.
//
// Each pixel is a pure function of its UV coordinate and the published
// Evaluator, so bands of rows are evaluated concurrently without locks.
// Create one Renderer and reuse it; call Close to stop its workers.
type Renderer struct {
	pool *parallel.WorkerPool
	opts renderOptions
	quad Quad
}

// NewRenderer creates a CPU renderer.
func NewRenderer(opts ...RenderOption) *Renderer {
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		pool: parallel.NewWorkerPool(o.workers),
		opts: o,
		quad: UnitQuad(),
	}
}

// Workers returns the number of worker goroutines.
func (r *Renderer) Workers() int {
	return r.pool.Workers()
}

// Close stops the worker goroutines. Renders issued after Close still
// complete, sequentially on the calling goroutine.
func (r *Renderer) Close() {
	r.pool.Close()
}

// Render publishes the first active slots of buf and evaluates a frame
// of the given resolution.
func (r *Renderer) Render(buf *PackedBuffer, active int, res Resolution) (*Pixmap, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}
	eval, err := NewEvaluator(buf, active)
	if err != nil {
		return nil, err
	}
	dst := NewPixmap(res.Width, res.Height)
	r.RenderTo(dst, eval)
	return dst, nil
}

// RenderTo evaluates eval into dst. The mapping from pixels to UV space
// and the quad coverage are recomputed from dst's size on every call.
func (r *Renderer) RenderTo(dst *Pixmap, eval *Evaluator) {
	res := dst.Resolution()
	if res.Width <= 0 || res.Height <= 0 {
		return
	}
	eval = eval.WithBackground(r.opts.background)
	cov := r.quad.Rasterize(QuadTransform(res), res)

	start := time.Now()
	dst.Clear(r.opts.clear)
	r.pool.ForEachBand(res.Height, r.opts.bandHeight, func(b parallel.Band) {
		for row := b.Y0; row < b.Y1; row++ {
			cov.Row(row, func(col int) {
				uv := PixelToUV(FragCoord(col, row, res), res)
				dst.SetPixel(col, row, eval.Shade(uv))
			})
		}
		if r.opts.progress != nil {
			r.opts.progress(b.Rows())
		}
	})

	Logger().Debug("voronoi: cpu frame",
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"seeds", eval.ActiveCount(),
		"workers", r.pool.Workers(),
		"elapsed", time.Since(start))
}
