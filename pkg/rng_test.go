package toymc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSourceDeterminism(t *testing.T) {
	rng1 := NewRandomSource(7)
	rng2 := NewRandomSource(7)

	for i := 0; i < 100; i++ {
		assert.Equal(t, rng1.Uniform(0, 1), rng2.Uniform(0, 1))
		assert.Equal(t, rng1.UniformInt(0, 1000), rng2.UniformInt(0, 1000))
		assert.Equal(t, rng1.Exponential(50), rng2.Exponential(50))
		assert.Equal(t, rng1.Poisson(20), rng2.Poisson(20))
		assert.Equal(t, rng1.Choose([]int{1, 2, 3, 4}), rng2.Choose([]int{1, 2, 3, 4}))
	}
}

func TestRandomSourceUniformBounds(t *testing.T) {
	rng := NewRandomSource(1)
	for i := 0; i < 1000; i++ {
		v := rng.Uniform(1, 3.5)
		assert.GreaterOrEqual(t, v, 1.0)
		assert.Less(t, v, 3.5)
	}
}

func TestRandomSourceUniformIntBounds(t *testing.T) {
	rng := NewRandomSource(2)
	for i := 0; i < 1000; i++ {
		v := rng.UniformInt(15, 100)
		assert.GreaterOrEqual(t, v, int64(15))
		assert.Less(t, v, int64(100))
	}
}

func TestRandomSourceUniformIntsLength(t *testing.T) {
	rng := NewRandomSource(3)
	draws := rng.UniformInts(0, 1000000000, 50)
	require.Len(t, draws, 50)
	for _, v := range draws {
		assert.GreaterOrEqual(t, v, int64(0))
		assert.Less(t, v, int64(1000000000))
	}
}

func TestRandomSourcePoissonZeroMean(t *testing.T) {
	rng := NewRandomSource(4)
	assert.Equal(t, int64(0), rng.Poisson(0))
	assert.Equal(t, int64(0), rng.Poisson(-5))
}

func TestRandomSourceExponentialPositive(t *testing.T) {
	rng := NewRandomSource(5)
	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, rng.Exponential(28000), 0.0)
	}
}

func TestRandomSourceChooseMembership(t *testing.T) {
	rng := NewRandomSource(6)
	detectors := []int{1, 2, 3, 4}
	for i := 0; i < 100; i++ {
		assert.Contains(t, detectors, rng.Choose(detectors))
	}
}
