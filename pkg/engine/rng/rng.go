// Package rng provides the seedable random source threaded through board generation.
package rng

import (
	"fmt"
	"math/rand/v2"
)

// Sampler produces uniform integers in the half-open interval [min, max).
type Sampler interface {
	IntRange(min, max int) int
}

// Source is a deterministic Sampler backed by a PCG generator.
type Source struct {
	seed uint64
	r    *rand.Rand
}

// New returns a Source seeded with seed
func New(seed uint64) *Source {
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the source was created with
func (s *Source) Seed() uint64 {
	return s.seed
}

// IntRange returns a uniform integer in [min, max), or min when the interval is empty
func (s *Source) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.IntN(max-min)
}

// OneIn returns true with probability 1/n
func OneIn(s Sampler, n int) bool {
	if n <= 1 {
		return true
	}
	return s.IntRange(0, n) == 0
}

// Range is a closed-open [Min, Max) integer interval
type Range struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// Sample draws a value from the range
func (r Range) Sample(s Sampler) int {
	return s.IntRange(r.Min, r.Max)
}

// Contains reports whether v lies in [Min, Max)
func (r Range) Contains(v int) bool {
	return v >= r.Min && v < r.Max
}

// Largest returns the biggest value Sample can produce
func (r Range) Largest() int {
	return r.Max - 1
}

// Validate returns an error if the range cannot be sampled
func (r Range) Validate(name string) error {
	if r.Max <= r.Min {
		return fmt.Errorf("%s range [%d,%d) is empty", name, r.Min, r.Max)
	}
	return nil
}

// String returns the range in interval notation
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Min, r.Max)
}
