package voronoi

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func mustEvaluator(t *testing.T, capacity int, seeds ...Seed) *Evaluator {
	t.Helper()
	buf, err := Pack(NewSeedSet(capacity, seeds...), capacity)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	e, err := NewEvaluator(buf, len(seeds))
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	return e
}

func TestNearestCorners(t *testing.T) {
	e := mustEvaluator(t, 4,
		Seed{Position: V2(0.1, 0.1), Color: RGB(1, 0, 0)},
		Seed{Position: V2(0.9, 0.1), Color: RGB(0, 1, 0)},
		Seed{Position: V2(0.1, 0.9), Color: RGB(0, 0, 1)},
		Seed{Position: V2(0.9, 0.9), Color: RGB(1, 1, 0)},
	)
	tests := []struct {
		uv   Vec2
		want int
	}{
		{V2(0, 0), 0},
		{V2(1, 1), 3},
		{V2(1, 0), 1},
		{V2(0, 1), 2},
	}
	for _, tt := range tests {
		got, ok := e.Nearest(tt.uv)
		if !ok || got != tt.want {
			t.Errorf("Nearest(%v) = %d, %v; want %d", tt.uv, got, ok, tt.want)
		}
	}
}

func TestNearestCoincidentSeedsLowestIndexWins(t *testing.T) {
	seeds := make([]Seed, 6)
	for i := range seeds {
		seeds[i] = Seed{Position: V2(0.05*float32(i), 0.95), Color: RGB(0, 0, 0)}
	}
	seeds[2] = Seed{Position: V2(0.5, 0.5), Color: RGB(1, 0, 0)}
	seeds[5] = Seed{Position: V2(0.5, 0.5), Color: RGB(0, 0, 1)}
	e := mustEvaluator(t, 8, seeds...)

	for _, uv := range []Vec2{V2(0.5, 0.5), V2(0.6, 0.4), V2(0.5, 0.1), V2(1, 0)} {
		if got, _ := e.Nearest(uv); got != 2 {
			t.Errorf("Nearest(%v) = %d, want 2", uv, got)
		}
	}
	if got := e.Shade(V2(0.5, 0.5)); got != (RGBA{R: 1, A: 1}) {
		t.Errorf("Shade = %+v, want opaque red", got)
	}
}

func TestNearestEquidistantLowestIndexWins(t *testing.T) {
	e := mustEvaluator(t, 2,
		Seed{Position: V2(0.75, 0.5)},
		Seed{Position: V2(0.25, 0.5)},
	)
	if got, _ := e.Nearest(V2(0.5, 0.5)); got != 0 {
		t.Errorf("Nearest(midpoint) = %d, want 0", got)
	}
}

func TestNearestSingleSeed(t *testing.T) {
	e := mustEvaluator(t, 16, Seed{Position: V2(0.3, 0.7), Color: RGB(0.2, 0.4, 0.6)})
	rng := rand.New(rand.NewPCG(1, 1))
	for range 100 {
		uv := V2(rng.Float32(), rng.Float32())
		if got, ok := e.Nearest(uv); !ok || got != 0 {
			t.Fatalf("Nearest(%v) = %d, %v; want 0", uv, got, ok)
		}
	}
}

// TestNearestIsMinimumWithLowestIndex checks the result against a
// direct scan: minimum distance, and no lower index at that distance.
func TestNearestIsMinimumWithLowestIndex(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 3))
	for trial := range 20 {
		capacity := 1 + rng.IntN(64)
		set := newTestGenerator(t, uint64(trial), capacity).Generate(1 + rng.IntN(capacity))
		buf, err := Pack(set, capacity)
		if err != nil {
			t.Fatal(err)
		}
		e, err := NewEvaluator(buf, set.ActiveCount())
		if err != nil {
			t.Fatal(err)
		}

		for range 200 {
			// Quantized query points make exact ties likely.
			uv := V2(float32(rng.IntN(101))*0.01, float32(rng.IntN(101))*0.01)
			got, ok := e.Nearest(uv)
			if !ok || got < 0 || got >= set.ActiveCount() {
				t.Fatalf("Nearest(%v) = %d, %v; out of range", uv, got, ok)
			}
			d := uv.Dist(set.Seeds[got].Position)
			for j, s := range set.Seeds {
				dj := uv.Dist(s.Position)
				if dj < d {
					t.Fatalf("Nearest(%v) = %d at %v, but seed %d is at %v", uv, got, d, j, dj)
				}
				if j < got && dj == d {
					t.Fatalf("Nearest(%v) = %d, but lower index %d is equally close", uv, got, j)
				}
			}
		}
	}
}

func TestEvaluatorFullCapacity(t *testing.T) {
	set := newTestGenerator(t, 4, DefaultCapacity).Generate(DefaultCapacity)
	// Put a unique seed in the last slot so it must be found.
	set.Seeds[DefaultCapacity-1] = Seed{Position: V2(0.123, 0.456), Color: RGB(0.5, 0.5, 0.5)}
	buf, err := Pack(set, DefaultCapacity)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEvaluator(buf, DefaultCapacity)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := e.Nearest(V2(0.123, 0.456)); got != DefaultCapacity-1 {
		t.Errorf("Nearest = %d, want %d", got, DefaultCapacity-1)
	}
}

func TestEvaluatorNoSeeds(t *testing.T) {
	buf, err := Pack(NewSeedSet(4), 4)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEvaluator(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Nearest(V2(0.5, 0.5)); ok {
		t.Error("Nearest reported a seed with none active")
	}
	if got := e.Shade(V2(0.5, 0.5)); got != Black {
		t.Errorf("Shade = %+v, want default background %+v", got, Black)
	}
	bg := RGBA{R: 0.2, G: 0.3, B: 0.4, A: 1}
	if got := e.WithBackground(bg).Shade(V2(0.5, 0.5)); got != bg {
		t.Errorf("Shade with background = %+v, want %+v", got, bg)
	}
}

func TestEvaluatorIgnoresInactiveSlots(t *testing.T) {
	buf, err := Pack(NewSeedSet(4,
		Seed{Position: V2(0.9, 0.9), Color: RGB(1, 0, 0)},
		Seed{Position: V2(0.1, 0.1), Color: RGB(0, 1, 0)},
	), 4)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEvaluator(buf, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := e.Nearest(V2(0.1, 0.1)); got != 0 {
		t.Errorf("Nearest = %d, want 0 (slot 1 is inactive)", got)
	}
}

func TestNewEvaluatorActiveCount(t *testing.T) {
	buf, err := Pack(NewSeedSet(4), 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, active := range []int{-1, 5} {
		if _, err := NewEvaluator(buf, active); !errors.Is(err, ErrActiveCount) {
			t.Errorf("NewEvaluator(active=%d) = %v, want ErrActiveCount", active, err)
		}
	}
}

func TestShadeForcesOpaque(t *testing.T) {
	e := mustEvaluator(t, 1, Seed{Position: V2(0.5, 0.5), Color: RGB(0.25, 0.5, 0.75)})
	want := RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1}
	if got := e.Shade(V2(0, 0)); got != want {
		t.Errorf("Shade = %+v, want %+v", got, want)
	}
}

func BenchmarkShade(b *testing.B) {
	g, _ := NewGenerator(rand.New(rand.NewPCG(1, 2)), DefaultCapacity)
	buf, _ := Pack(g.Generate(DefaultCapacity), DefaultCapacity)
	e, _ := NewEvaluator(buf, DefaultCapacity)
	uv := V2(0.37, 0.61)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = e.Shade(uv)
	}
}
