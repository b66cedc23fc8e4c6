package voronoi

import "fmt"

// Resolution is the size of the presentation surface in pixels.
type Resolution struct {
	Width, Height int
}

// Validate reports ErrInvalidResolution if either dimension is not positive.
func (r Resolution) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, r.Width, r.Height)
	}
	return nil
}

// AspectRatio returns Width / Height.
func (r Resolution) AspectRatio() float32 {
	return float32(r.Width) / float32(r.Height)
}

// FragCoord returns the fragment coordinate of the centre of the pixel
// in column col and row row, rows counted from the top of the image.
// The result has its origin at the bottom-left, like Seed positions.
func FragCoord(col, row int, res Resolution) Vec2 {
	return Vec2{
		X: float32(col) + 0.5,
		Y: float32(res.Height-row) - 0.5,
	}
}

// PixelToUV maps a fragment coordinate to UV space: frag / resolution.
//
// No aspect correction is applied. Distances between UV points are
// therefore stretched along the longer screen axis; this matches the
// space seeds are generated in and is what the evaluator measures.
func PixelToUV(frag Vec2, res Resolution) Vec2 {
	return Vec2{
		X: frag.X / float32(res.Width),
		Y: frag.Y / float32(res.Height),
	}
}

// Extents are the bounds of an orthographic view volume in the xy plane.
type Extents struct {
	Left, Right, Bottom, Top float32
}

// NDCExtents returns the orthographic extents used to place the
// full-screen quad: [-aspect, aspect] x [-1, 1].
func NDCExtents(res Resolution) Extents {
	a := res.AspectRatio()
	return Extents{Left: -a, Right: a, Bottom: -1, Top: 1}
}

// Mat4 is a 4x4 matrix in column-major order, the memory layout of
// WGSL mat4x4<f32>.
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection for the given extents mapping
// z in [near, far] to the [0, 1] depth range used by WebGPU.
func Ortho(e Extents, near, far float32) Mat4 {
	m := Identity4()
	m[0] = 2 / (e.Right - e.Left)
	m[5] = 2 / (e.Top - e.Bottom)
	m[10] = 1 / (far - near)
	m[12] = -(e.Right + e.Left) / (e.Right - e.Left)
	m[13] = -(e.Top + e.Bottom) / (e.Top - e.Bottom)
	m[14] = -near / (far - near)
	return m
}

// Scale4 returns a scaling matrix in x and y.
func Scale4(sx, sy float32) Mat4 {
	m := Identity4()
	m[0] = sx
	m[5] = sy
	return m
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Apply transforms the point (x, y, 0, 1) and returns its clip-space
// x and y after the perspective divide.
func (m Mat4) Apply(x, y float32) (float32, float32) {
	cx := m[0]*x + m[4]*y + m[12]
	cy := m[1]*x + m[5]*y + m[13]
	cw := m[3]*x + m[7]*y + m[15]
	return cx / cw, cy / cw
}

// QuadTransform returns the model-view-projection for the unit quad.
//
// The quad spans [-1, 1]^2 in model space and has no model transform; it
// is projected with NDCExtents only. On a viewport wider than it is tall
// the quad covers the centred square of side height, and the side bands
// keep the clear color. Otherwise it covers the whole viewport. The
// per-pixel UV used for distances is not derived from this transform;
// see PixelToUV.
func QuadTransform(res Resolution) Mat4 {
	return Ortho(NDCExtents(res), -1, 1).Mul(Identity4())
}
