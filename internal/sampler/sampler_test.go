package sampler_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mindforge/internal/sampler"
)

type fixed struct{ v float64 }

func (f fixed) Shuffle(int, func(i, j int)) {}
func (f fixed) Float64() float64            { return f.v }

func TestShuffled_IsPermutationAndDoesNotMutate(t *testing.T) {
	s := sampler.New(42)
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}

	out := sampler.Shuffled(s, in)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, in)
	sorted := append([]int(nil), out...)
	sort.Ints(sorted)
	assert.Equal(t, in, sorted)
}

func TestSample(t *testing.T) {
	s := sampler.New(7)
	in := []string{"a", "b", "c", "d"}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"fewer than available", 2, 2},
		{"exactly available", 4, 4},
		{"more than available", 10, 4},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampler.Sample(s, in, tt.k)
			require.Len(t, got, tt.want)
			seen := map[string]bool{}
			for _, v := range got {
				assert.False(t, seen[v], "duplicate %s", v)
				seen[v] = true
			}
		})
	}
}

func TestSeededSamplerIsDeterministic(t *testing.T) {
	a := sampler.Shuffled(sampler.New(99), []int{1, 2, 3, 4, 5, 6})
	b := sampler.Shuffled(sampler.New(99), []int{1, 2, 3, 4, 5, 6})
	assert.Equal(t, a, b)
}

func TestChance(t *testing.T) {
	assert.True(t, sampler.Chance(fixed{0.69}, 0.7))
	assert.False(t, sampler.Chance(fixed{0.7}, 0.7))
	assert.False(t, sampler.Chance(fixed{0}, 0))
}

func TestJitter(t *testing.T) {
	assert.InDelta(t, -0.75, sampler.Jitter(fixed{0}, 0.75), 1e-9)
	assert.InDelta(t, 0, sampler.Jitter(fixed{0.5}, 0.75), 1e-9)

	s := sampler.New(3)
	for i := 0; i < 100; i++ {
		j := sampler.Jitter(s, 0.75)
		assert.GreaterOrEqual(t, j, -0.75)
		assert.LessOrEqual(t, j, 0.75)
	}
}
