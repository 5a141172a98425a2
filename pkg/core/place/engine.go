// Package place implements the collision-aware placement loop shared
// by all element generators. Elements live on the one-dimensional
// space of a footprint's edges: the engine samples an edge by length,
// draws a candidate position, and resolves collisions against an
// occupancy map by searching outward for the nearest free spot.
// Elements that find no spot within the retry budget are dropped, not
// fatal.
package place

import (
	"math/rand/v2"

	"github.com/matzehuels/facade/pkg/core/footprint"
)

// Placement defaults. Attempts bounds the retries per element,
// SearchStep is the granularity of the local search in meters.
const (
	DefaultAttempts   = 10
	DefaultSearchStep = 0.1
)

// Options configures one engine run.
type Options struct {
	// Count is the number of elements to place.
	Count int

	// Spacing is the reserved width per element in meters. It is
	// also the radius of the local search around a colliding
	// candidate.
	Spacing float64

	// EdgeSpacing keeps elements away from edge endpoints so they
	// never bleed into a corner.
	EdgeSpacing float64

	// MinUsable is the smallest usable length, after subtracting
	// EdgeSpacing on both ends, for an edge to receive elements at
	// all.
	MinUsable float64

	// Attempts and SearchStep fall back to the package defaults
	// when zero.
	Attempts   int
	SearchStep float64
}

func (o Options) withDefaults() Options {
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.SearchStep <= 0 {
		o.SearchStep = DefaultSearchStep
	}
	return o
}

// Placement is one successfully placed element.
type Placement struct {
	// Edge indexes the footprint edge the element sits on.
	Edge int

	// Offset is the element center in meters from the edge start.
	Offset float64

	// T is Offset normalized by the edge length.
	T float64

	// Index is the element's position in generation order. Indices
	// are stable across drops: when an earlier element is dropped,
	// later elements keep theirs.
	Index int
}

// Result collects the outcome of a run. Dropped counts elements that
// found no collision-free spot.
type Result struct {
	Placements []Placement
	Dropped    int
}

// Run places opts.Count elements on the footprint, reserving each
// successful placement in occ. Reservations already present in occ
// are honored, which is how one generator avoids another's elements.
func Run(fp *footprint.Footprint, rng *rand.Rand, occ Occupancy, opts Options) Result {
	opts = opts.withDefaults()
	if opts.Count <= 0 {
		return Result{}
	}

	edges := fp.Edges()
	weights := make([]float64, len(edges))
	for i, e := range edges {
		weights[i] = e.Length
	}
	sampler := NewSampler(weights)

	var res Result
	for idx := 0; idx < opts.Count; idx++ {
		p, ok := placeOne(edges, rng, sampler, occ, opts)
		if !ok {
			res.Dropped++
			continue
		}
		p.Index = idx
		occ.Reserve(p.Edge, p.Offset, opts.Spacing)
		res.Placements = append(res.Placements, p)
	}
	return res
}

// placeOne runs the retry loop for a single element.
func placeOne(edges []footprint.Edge, rng *rand.Rand, sampler *Sampler, occ Occupancy, opts Options) (Placement, bool) {
	for attempt := 0; attempt < opts.Attempts; attempt++ {
		ei, ok := sampler.Pick(rng)
		if !ok {
			// No edge carries any weight, retrying cannot help.
			return Placement{}, false
		}
		e := edges[ei]
		if e.Length < weightEpsilon {
			continue
		}
		// An edge too short to hold an element after endpoint
		// clearance costs the attempt and gets resampled.
		if e.Length < 2*opts.EdgeSpacing+opts.MinUsable {
			continue
		}
		lo := opts.EdgeSpacing
		hi := e.Length - opts.EdgeSpacing

		// Candidate positions are drawn in normalized edge space.
		t := lo/e.Length + rng.Float64()*(hi-lo)/e.Length
		pos := t * e.Length

		if !occ.Blocked(ei, pos, opts.Spacing) {
			return Placement{Edge: ei, Offset: pos, T: pos / e.Length}, true
		}
		if adj, ok := searchNearest(occ, ei, pos, lo, hi, opts); ok {
			return Placement{Edge: ei, Offset: adj, T: adj / e.Length}, true
		}
	}
	return Placement{}, false
}

// searchNearest walks outward from a colliding candidate in steps of
// opts.SearchStep, alternating directions, and returns the first free
// position. The search radius equals the element spacing, and
// positions outside [lo, hi] are skipped. The nearest free spot wins
// because displacement grows monotonically.
func searchNearest(occ Occupancy, edge int, pos, lo, hi float64, opts Options) (float64, bool) {
	steps := int(opts.Spacing / opts.SearchStep)
	for i := 0; i <= steps; i++ {
		for _, sign := range [2]float64{1, -1} {
			if i == 0 && sign < 0 {
				continue
			}
			cand := pos + sign*float64(i)*opts.SearchStep
			if cand < lo || cand > hi {
				continue
			}
			if !occ.Blocked(edge, cand, opts.Spacing) {
				return cand, true
			}
		}
	}
	return 0, false
}
