package voronoi

import "fmt"

// Evaluator is the per-pixel nearest-seed kernel bound to one packed
// buffer and active count.
//
// Construction is the publish step: the active records are decoded once
// into read-only slices. After that an Evaluator is never mutated, so
// any number of goroutines may call Nearest and Shade concurrently.
type Evaluator struct {
	positions  []Vec2
	colors     []Color
	background RGBA
}

// NewEvaluator publishes the first active slots of buf for evaluation.
// active must be in [0, buf.Capacity()]; slots between buf.ActiveCount()
// and active hold zero records.
func NewEvaluator(buf *PackedBuffer, active int) (*Evaluator, error) {
	if active < 0 || active > buf.Capacity() {
		return nil, fmt.Errorf("%w: %d (capacity %d)", ErrActiveCount, active, buf.Capacity())
	}
	e := &Evaluator{
		positions:  make([]Vec2, active),
		colors:     make([]Color, active),
		background: Black,
	}
	for i := 0; i < active; i++ {
		e.positions[i] = buf.Position(i)
		e.colors[i] = buf.Color(i)
	}
	return e, nil
}

// WithBackground returns a copy of e that shades with c when there are
// no active seeds. The seed data is shared.
func (e *Evaluator) WithBackground(c RGBA) *Evaluator {
	cp := *e
	cp.background = c
	return &cp
}

// ActiveCount returns the number of seeds the evaluator scans.
func (e *Evaluator) ActiveCount() int {
	return len(e.positions)
}

// Nearest returns the index of the seed closest to uv. ok is false
// only when there are no active seeds.
//
// Seeds are scanned in ascending index order and replaced only on a
// strictly smaller distance, so among equidistant seeds the lowest
// index wins.
func (e *Evaluator) Nearest(uv Vec2) (index int, ok bool) {
	return nearest(uv, e.positions)
}

// Shade resolves uv to the color of its nearest seed with alpha 1, or
// to the background color when there are no active seeds.
func (e *Evaluator) Shade(uv Vec2) RGBA {
	i, ok := e.Nearest(uv)
	if !ok {
		return e.background
	}
	return e.colors[i].Opaque()
}

func nearest(uv Vec2, positions []Vec2) (int, bool) {
	if len(positions) == 0 {
		return -1, false
	}
	best := 0
	bestDist := uv.Dist(positions[0])
	for i := 1; i < len(positions); i++ {
		if d := uv.Dist(positions[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, true
}
