package voronoi

import "math"

// DefaultCapacity is the number of seed slots in the reference packed
// buffer. Two blocks of DefaultCapacity 16-byte records fill exactly one
// 64 KiB uniform binding.
const DefaultCapacity = 2048

// Vec2 is a point in UV space. Both components are nominally in [0, 1]
// with the origin at the bottom-left corner of the viewport.
type Vec2 struct {
	X, Y float32
}

// V2 is shorthand for Vec2{X: x, Y: y}.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Dist returns the Euclidean distance between a and b.
func (a Vec2) Dist(b Vec2) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// Color is a seed color. Seeds carry three channels; alpha is implicit
// and always 1 when the color is resolved for a pixel.
type Color struct {
	R, G, B float32
}

// RGB is shorthand for Color{R: r, G: g, B: b}.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Seed is a single Voronoi site.
type Seed struct {
	Position Vec2
	Color    Color
}

// SeedSet is an ordered, capacity-bounded sequence of seeds.
//
// Index order matters: when two seeds are equally close to a pixel the
// one with the lower index wins.
type SeedSet struct {
	// Capacity is the number of slots the packed buffer reserves.
	Capacity int

	// Seeds holds the populated slots. len(Seeds) is the active count.
	Seeds []Seed
}

// NewSeedSet returns a set with the given capacity holding seeds.
// The seeds are not copied and not checked against capacity; Pack
// rejects sets that do not fit.
func NewSeedSet(capacity int, seeds ...Seed) SeedSet {
	return SeedSet{Capacity: capacity, Seeds: seeds}
}

// ActiveCount returns the number of populated seeds.
func (s SeedSet) ActiveCount() int {
	return len(s.Seeds)
}

// At returns seed i.
func (s SeedSet) At(i int) Seed {
	return s.Seeds[i]
}
