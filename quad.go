package voronoi

import (
	"encoding/binary"
	"image"
	"math"
)

// QuadVertexStride is the byte stride of one quad vertex: a vec2<f32>
// model-space corner at shader location 0.
const QuadVertexStride = 8

// Quad is the geometry that drives one evaluation per covered pixel:
// four corners and a two-triangle index list.
type Quad struct {
	Corners [4]Vec2
	Indices [6]uint16
}

// UnitQuad returns the square [-1, 1]^2 split along the diagonal from
// corner 2 to corner 0.
//
//	3 ---- 2
//	|    / |
//	|  /   |
//	0 ---- 1
func UnitQuad() Quad {
	return Quad{
		Corners: [4]Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
		Indices: [6]uint16{0, 1, 2, 2, 3, 0},
	}
}

// VertexBytes returns the corners as little-endian float32 pairs.
func (q Quad) VertexBytes() []byte {
	out := make([]byte, len(q.Corners)*QuadVertexStride)
	for i, c := range q.Corners {
		binary.LittleEndian.PutUint32(out[i*QuadVertexStride:], math.Float32bits(c.X))
		binary.LittleEndian.PutUint32(out[i*QuadVertexStride+4:], math.Float32bits(c.Y))
	}
	return out
}

// IndexBytes returns the indices as little-endian uint16 values. The
// result is 12 bytes, a multiple of the 4-byte copy alignment.
func (q Quad) IndexBytes() []byte {
	out := make([]byte, len(q.Indices)*2)
	for i, idx := range q.Indices {
		binary.LittleEndian.PutUint16(out[i*2:], idx)
	}
	return out
}

// subpixelBits is the fixed-point precision vertices are snapped to
// before coverage tests, as rasterizers do. Edge functions on the
// snapped grid are exact, so a shared edge is decided identically from
// both sides.
const (
	subpixelBits  = 8
	subpixelScale = 1 << subpixelBits
	subpixelHalf  = subpixelScale / 2
)

type fixedPoint struct {
	x, y int64
}

type triangle struct {
	v      [3]fixedPoint
	bounds image.Rectangle
}

// Coverage is the set of pixels a quad covers at one resolution.
//
// A pixel is covered when its centre lies inside one of the quad's
// triangles. Centres exactly on an edge shared by the two triangles
// belong to exactly one of them, so every covered pixel is visited once.
type Coverage struct {
	res  Resolution
	tris []triangle
}

// Rasterize projects q through transform and computes its coverage of
// a res-sized viewport. Rows are counted from the top.
func (q Quad) Rasterize(transform Mat4, res Resolution) *Coverage {
	var pts [4]fixedPoint
	for i, c := range q.Corners {
		nx, ny := transform.Apply(c.X, c.Y)
		px := (float64(nx) + 1) / 2 * float64(res.Width)
		py := (1 - float64(ny)) / 2 * float64(res.Height)
		pts[i] = fixedPoint{
			x: int64(math.Round(px * subpixelScale)),
			y: int64(math.Round(py * subpixelScale)),
		}
	}

	cov := &Coverage{res: res}
	for t := 0; t+2 < len(q.Indices); t += 3 {
		a, b, c := pts[q.Indices[t]], pts[q.Indices[t+1]], pts[q.Indices[t+2]]
		area := edge(a, b, c)
		if area == 0 {
			continue
		}
		if area < 0 {
			b, c = c, b
		}
		tri := triangle{v: [3]fixedPoint{a, b, c}}
		tri.bounds = tri.pixelBounds().Intersect(image.Rect(0, 0, res.Width, res.Height))
		if !tri.bounds.Empty() {
			cov.tris = append(cov.tris, tri)
		}
	}
	return cov
}

// Resolution returns the viewport size the coverage was computed for.
func (c *Coverage) Resolution() Resolution {
	return c.res
}

// Bounds returns a pixel rectangle containing every covered pixel. It is
// exact when the projected quad is axis-aligned.
func (c *Coverage) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, t := range c.tris {
		r = r.Union(t.bounds)
	}
	return r
}

// Row calls fn once for each covered pixel in row, in ascending column
// order within each triangle.
func (c *Coverage) Row(row int, fn func(col int)) {
	cy := int64(row)*subpixelScale + subpixelHalf
	for i := range c.tris {
		t := &c.tris[i]
		if row < t.bounds.Min.Y || row >= t.bounds.Max.Y {
			continue
		}
		for col := t.bounds.Min.X; col < t.bounds.Max.X; col++ {
			p := fixedPoint{x: int64(col)*subpixelScale + subpixelHalf, y: cy}
			if t.contains(p) {
				fn(col)
			}
		}
	}
}

// Count returns the number of covered pixels.
func (c *Coverage) Count() int {
	n := 0
	for row := 0; row < c.res.Height; row++ {
		c.Row(row, func(int) { n++ })
	}
	return n
}

// edge is twice the signed area of (a, b, p). With a positive-area
// triangle every interior point is positive for all three edges.
func edge(a, b, p fixedPoint) int64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// owns reports whether points exactly on edge a->b are inside. Of the
// two directions of any non-degenerate edge exactly one owns it.
func owns(a, b fixedPoint) bool {
	dy := b.y - a.y
	return dy > 0 || (dy == 0 && b.x < a.x)
}

func (t *triangle) contains(p fixedPoint) bool {
	for i := 0; i < 3; i++ {
		a, b := t.v[i], t.v[(i+1)%3]
		w := edge(a, b, p)
		if w < 0 || (w == 0 && !owns(a, b)) {
			return false
		}
	}
	return true
}

// pixelBounds returns the range of pixels whose centres lie inside the
// bounding box of t, edges included.
func (t *triangle) pixelBounds() image.Rectangle {
	minX, minY := t.v[0].x, t.v[0].y
	maxX, maxY := minX, minY
	for _, v := range t.v[1:] {
		minX, maxX = min(minX, v.x), max(maxX, v.x)
		minY, maxY = min(minY, v.y), max(maxY, v.y)
	}
	return image.Rect(
		int(ceilDiv(minX-subpixelHalf, subpixelScale)),
		int(ceilDiv(minY-subpixelHalf, subpixelScale)),
		int(floorDiv(maxX-subpixelHalf, subpixelScale))+1,
		int(floorDiv(maxY-subpixelHalf, subpixelScale))+1,
	)
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
