package voronoi

import (
	"fmt"
	"math/rand/v2"
)

// generatorSteps is the number of distinct values each generated
// component can take. Components are k/generatorSteps for k in
// [0, generatorSteps).
const generatorSteps = 100

// Generator produces seed sets from a pseudo-random source.
//
// The source is injected so callers (and tests) control reproducibility.
// A nil source falls back to the process-wide generator in math/rand/v2,
// which is seeded by the runtime and not reproducible across runs.
type Generator struct {
	rng      *rand.Rand
	capacity int
}

// NewGenerator creates a generator for buffers with the given capacity.
func NewGenerator(rng *rand.Rand, capacity int) (*Generator, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Generator{rng: rng, capacity: capacity}, nil
}

// Capacity returns the capacity of the sets the generator produces.
func (g *Generator) Capacity() int {
	return g.capacity
}

// Generate returns a set of count seeds.
//
// count is clamped to [0, Capacity()]; callers that need to know the
// effective count should read ActiveCount on the result. Per seed the
// draws happen in the order x, y, r, g, b.
func (g *Generator) Generate(count int) SeedSet {
	n := count
	switch {
	case n < 0:
		n = 0
	case n > g.capacity:
		n = g.capacity
	}
	if n != count {
		Logger().Warn("voronoi: seed count clamped",
			"requested", count, "effective", n, "capacity", g.capacity)
	}

	seeds := make([]Seed, n)
	for i := range seeds {
		seeds[i] = Seed{
			Position: Vec2{X: g.unit(), Y: g.unit()},
			Color:    Color{R: g.unit(), G: g.unit(), B: g.unit()},
		}
	}
	Logger().Debug("voronoi: generated seeds", "count", n, "capacity", g.capacity)
	return SeedSet{Capacity: g.capacity, Seeds: seeds}
}

// unit draws one quantized value in [0, 1).
func (g *Generator) unit() float32 {
	var k int
	if g.rng != nil {
		k = g.rng.IntN(generatorSteps)
	} else {
		k = rand.IntN(generatorSteps) //nolint:gosec // not security sensitive
	}
	return quantize(k)
}

// quantize returns k/generatorSteps rounded once to float32.
func quantize(k int) float32 {
	return float32(k) / generatorSteps
}
