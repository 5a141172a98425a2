package place

import "math/rand/v2"

// weightEpsilon is the threshold below which an edge weight counts as
// zero. Guards against float dust keeping a degenerate edge samplable.
const weightEpsilon = 1e-9

// Sampler draws edge indices with probability proportional to their
// weights. Weights are fixed at construction.
type Sampler struct {
	cum   []float64
	total float64
}

// NewSampler builds a cumulative table over the given weights.
// Weights below weightEpsilon contribute nothing.
func NewSampler(weights []float64) *Sampler {
	s := &Sampler{cum: make([]float64, len(weights))}
	for i, w := range weights {
		if w < weightEpsilon {
			w = 0
		}
		s.total += w
		s.cum[i] = s.total
	}
	return s
}

// Total returns the sum of all effective weights.
func (s *Sampler) Total() float64 {
	return s.total
}

// Pick draws one edge index. It reports false when the total weight is
// zero, in which case no draw is consumed from the source.
func (s *Sampler) Pick(rng *rand.Rand) (int, bool) {
	if s.total < weightEpsilon {
		return 0, false
	}
	r := rng.Float64() * s.total
	for i, c := range s.cum {
		if r < c {
			return i, true
		}
	}
	// Float roundoff can push r to the very end of the table. Fall
	// back to the last index that carries weight.
	for i := len(s.cum) - 1; i > 0; i-- {
		if s.cum[i] > s.cum[i-1] {
			return i, true
		}
	}
	return 0, true
}
