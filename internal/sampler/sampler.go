// Package sampler is the single source of randomness for the study engine.
package sampler

import (
	"math/rand"
	"sync"
	"time"
)

// Sampler is the randomness the trackers and the planner depend on.
// Tests inject a seeded or stubbed implementation.
type Sampler interface {
	// Shuffle permutes n elements in place through swap.
	Shuffle(n int, swap func(i, j int))
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

type randSampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Sampler backed by math/rand. A zero seed uses the clock.
func New(seed int64) Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randSampler{rnd: rand.New(rand.NewSource(seed))}
}

func (s *randSampler) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}

func (s *randSampler) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// Shuffled returns a shuffled copy of items.
func Shuffled[T any](s Sampler, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	s.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Sample returns up to k items drawn without replacement.
func Sample[T any](s Sampler, items []T, k int) []T {
	if k <= 0 {
		return []T{}
	}
	out := Shuffled(s, items)
	if k < len(out) {
		out = out[:k]
	}
	return out
}

// Chance reports true with probability p.
func Chance(s Sampler, p float64) bool {
	return s.Float64() < p
}

// Jitter returns a uniform value in [-spread, spread].
func Jitter(s Sampler, spread float64) float64 {
	return (s.Float64()*2 - 1) * spread
}
