// Package seed derives deterministic child seeds from a parent seed
// and string identifiers. The derivation is a plain FNV-1a hash, so
// equal inputs produce equal seeds on every platform and every run.
package seed

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
)

// Branch identifiers for the element generators. Each generator draws
// from its own branch so the streams stay independent: changing the
// door density never perturbs window placement.
const (
	BranchDoors   = "doors"
	BranchWindows = "windows"
	BranchCorners = "corners"
)

// MaxSeed bounds derived seeds to the positive 31-bit range.
const MaxSeed = int64(1) << 31

// Derive maps a parent seed and an identifier path onto a child seed
// in [0, MaxSeed). Identifiers are separated by a unit separator byte
// so ("ab","c") and ("a","bc") hash differently.
func Derive(parent int64, ids ...string) int64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(parent))
	h.Write(buf[:])
	for _, id := range ids {
		h.Write([]byte{0x1f})
		h.Write([]byte(id))
	}
	return int64(h.Sum64() % uint64(MaxSeed))
}

// Element derives the seed for one element of a branch, identified by
// its kind and its index in generation order. Element seeds are
// position-stable: dropping an earlier element never shifts the seed
// of a later one.
func Element(parent int64, kind string, index int) int64 {
	return Derive(parent, kind, strconv.Itoa(index))
}

// NewRand returns a PCG-backed source for a derived seed. Both PCG
// state words come from the seed itself, so equal seeds replay
// identical streams.
func NewRand(s int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(s), uint64(s)^0xdeadbeef))
}

// Uniform draws a value from [min, max).
func Uniform(rng *rand.Rand, min, max float64) float64 {
	return min + (max-min)*rng.Float64()
}
