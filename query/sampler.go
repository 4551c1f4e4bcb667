package query

import (
	"math/rand/v2"
	"sort"
)

// DefaultSeed is the scatter sampling seed.
const DefaultSeed = 7

// Sampler picks k of n positions. Implementations must be deterministic
// for a given construction.
type Sampler interface {
	Sample(n, k int) []int
}

// SamplerFunc builds a Sampler from a seed.
type SamplerFunc func(seed uint64) Sampler

// PCGSampler draws a uniform sample without replacement with a partial
// Fisher-Yates shuffle: for i in [0, k) it swaps position i with a position
// drawn from [i, n) by a PCG generator seeded (seed, seed). The chosen
// positions are returned ascending.
type PCGSampler struct {
	seed uint64
}

// NewPCGSampler returns the default Sampler.
func NewPCGSampler(seed uint64) Sampler {
	return PCGSampler{seed: seed}
}

func (s PCGSampler) Sample(n, k int) []int {
	if k >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if k <= 0 {
		return []int{}
	}

	rng := rand.New(rand.NewPCG(s.seed, s.seed))
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	out := perm[:k]
	sort.Ints(out)
	return out
}
