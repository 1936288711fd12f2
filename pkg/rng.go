package toymc

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomSource wraps the single seeded generator used for an entire
// run. Reproducibility from a seed requires one call-order-
// deterministic sequence of draws, so no other component may create
// its own generator: the engine constructs one RandomSource and passes
// it into every generation call.
type RandomSource struct {
	src *rand.Rand
}

// NewRandomSource returns a generator seeded with the given value.
func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{src: rand.New(rand.NewSource(seed))}
}

// Uniform returns a draw uniform in [lo, hi).
func (r *RandomSource) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.src.Float64()
}

// UniformInt returns an integer draw uniform in [lo, hi).
func (r *RandomSource) UniformInt(lo, hi int64) int64 {
	return lo + r.src.Int63n(hi-lo)
}

// UniformInts returns n integer draws uniform in [lo, hi).
func (r *RandomSource) UniformInts(lo, hi int64, n int) []int64 {
	draws := make([]int64, n)
	for i := range draws {
		draws[i] = r.UniformInt(lo, hi)
	}
	return draws
}

// Exponential returns an exponential draw with the given scale (mean).
func (r *RandomSource) Exponential(scale float64) float64 {
	dist := distuv.Exponential{Rate: 1 / scale, Src: r.src}
	return dist.Rand()
}

// Poisson returns a Poisson draw with the given mean. A non-positive
// mean yields zero without consuming a draw.
func (r *RandomSource) Poisson(mean float64) int64 {
	if mean <= 0 {
		return 0
	}
	dist := distuv.Poisson{Lambda: mean, Src: r.src}
	return int64(dist.Rand())
}

// Choose returns one element of values, uniformly at random.
func (r *RandomSource) Choose(values []int) int {
	return values[r.src.Intn(len(values))]
}
