package place

import (
	"math"
	"testing"

	"github.com/matzehuels/facade/pkg/core/seed"
)

func TestSamplerZeroTotal(t *testing.T) {
	s := NewSampler([]float64{0, 1e-12, 0})
	if s.Total() != 0 {
		t.Errorf("Total() = %g, want 0", s.Total())
	}
	rng := seed.NewRand(1)
	before := rng.Uint64()
	rng = seed.NewRand(1)
	if _, ok := s.Pick(rng); ok {
		t.Fatal("Pick succeeded with zero total weight")
	}
	// A failed pick must not consume from the source.
	if got := rng.Uint64(); got != before {
		t.Error("Pick consumed a draw despite zero total weight")
	}
}

func TestSamplerSingleWeight(t *testing.T) {
	s := NewSampler([]float64{0, 5, 0})
	rng := seed.NewRand(2)
	for i := 0; i < 100; i++ {
		idx, ok := s.Pick(rng)
		if !ok {
			t.Fatal("Pick failed with nonzero weight")
		}
		if idx != 1 {
			t.Fatalf("Pick = %d, want 1", idx)
		}
	}
}

func TestSamplerProportional(t *testing.T) {
	s := NewSampler([]float64{1, 3})
	rng := seed.NewRand(3)

	counts := [2]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		idx, ok := s.Pick(rng)
		if !ok {
			t.Fatal("Pick failed")
		}
		counts[idx]++
	}

	frac := float64(counts[1]) / draws
	if math.Abs(frac-0.75) > 0.03 {
		t.Errorf("index 1 drawn %.3f of the time, want about 0.75", frac)
	}
}

func TestSamplerTotal(t *testing.T) {
	s := NewSampler([]float64{2, 3, 1e-12})
	if math.Abs(s.Total()-5) > 1e-9 {
		t.Errorf("Total() = %g, want 5", s.Total())
	}
}
