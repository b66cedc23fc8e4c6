package voronoi

// RenderOption configures a Renderer during creation.
//
// Example:
//
//	r := voronoi.NewRenderer(
//	    voronoi.WithWorkers(4),
//	    voronoi.WithBackground(voronoi.White),
//	)
type RenderOption func(*renderOptions)

type renderOptions struct {
	workers    int
	bandHeight int
	background RGBA
	clear      RGBA
	progress   func(rows int)
}

func defaultRenderOptions() renderOptions {
	return renderOptions{
		workers:    0, // GOMAXPROCS
		bandHeight: 0, // parallel.DefaultBandHeight
		background: Black,
		clear:      Black,
	}
}

// WithWorkers sets the number of goroutines evaluating pixels.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) RenderOption {
	return func(o *renderOptions) {
		o.workers = n
	}
}

// WithBandHeight sets how many pixel rows form one unit of parallel work.
func WithBandHeight(rows int) RenderOption {
	return func(o *renderOptions) {
		o.bandHeight = rows
	}
}

// WithBackground sets the color of covered pixels when there are no
// active seeds.
func WithBackground(c RGBA) RenderOption {
	return func(o *renderOptions) {
		o.background = c
	}
}

// WithClearColor sets the color of pixels the quad does not cover.
func WithClearColor(c RGBA) RenderOption {
	return func(o *renderOptions) {
		o.clear = c
	}
}

// WithProgress registers fn to be called after each band of rows is
// finished, with the number of rows in that band. fn is called from
// worker goroutines and must be safe for concurrent use.
func WithProgress(fn func(rows int)) RenderOption {
	return func(o *renderOptions) {
		o.progress = fn
	}
}
