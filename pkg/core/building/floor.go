package building

import (
	"sync"

	"github.com/matzehuels/facade/pkg/core/footprint"
)

// Floor binds a footprint to its position in the building and holds
// the lazily computed element bundle. Seed and config are fixed at
// construction; the cache moves between exactly two states, empty and
// computed, and only Invalidate moves it back.
type Floor struct {
	fp     *footprint.Footprint
	index  int
	height float64
	baseZ  float64
	seed   int64
	cfg    Config

	mu     sync.Mutex
	bundle *Bundle // nil until first Elements call
}

// NewFloor creates a standalone floor. Buildings construct their
// floors internally; this constructor exists for single-floor use.
func NewFloor(fp *footprint.Footprint, index int, height, baseZ float64, seed int64, cfg Config) *Floor {
	return &Floor{fp: fp, index: index, height: height, baseZ: baseZ, seed: seed, cfg: cfg}
}

// Footprint returns the floor's outline.
func (f *Floor) Footprint() *footprint.Footprint { return f.fp }

// Index returns the floor index, 0 for the ground floor.
func (f *Floor) Index() int { return f.index }

// Height returns the floor height in meters.
func (f *Floor) Height() float64 { return f.height }

// BaseZ returns the Z of the floor's base, the sum of the heights
// below it.
func (f *Floor) BaseZ() float64 { return f.baseZ }

// TopZ returns the Z of the floor's ceiling.
func (f *Floor) TopZ() float64 { return f.baseZ + f.height }

// Elements returns the floor's element bundle, computing it on first
// call and serving the cached value afterwards. A cached bundle is
// never regenerated implicitly; callers share the returned pointer
// and must not mutate it.
func (f *Floor) Elements() (*Bundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bundle != nil {
		return f.bundle, nil
	}
	b, err := Generate(f.fp, f.index, f.seed, f.cfg)
	if err != nil {
		return nil, err
	}
	f.bundle = b
	return b, nil
}

// Invalidate clears the cached bundle. The next Elements call
// regenerates from scratch and, with unchanged seed and config,
// reproduces the identical bundle.
func (f *Floor) Invalidate() {
	f.mu.Lock()
	f.bundle = nil
	f.mu.Unlock()
}

// Computed reports whether a bundle is currently cached.
func (f *Floor) Computed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bundle != nil
}
