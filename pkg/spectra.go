package toymc

import "math"

// Spectrum samples one physical quantity (energy, nHit, ...) from the
// shared random source. Event types hold their spectra as struct
// fields so users can swap in custom distributions.
type Spectrum func(rng *RandomSource) float64

// IntSpectrum samples an integer-valued quantity.
type IntSpectrum func(rng *RandomSource) int

// PositionSpectrum samples a position in millimeters.
type PositionSpectrum func(rng *RandomSource) (x, y, z float64)

// DisplacedPositionSpectrum samples a position correlated with a
// previous one, e.g. a delayed event's position given the prompt's.
type DisplacedPositionSpectrum func(rng *RandomSource, fromX, fromY, fromZ float64) (x, y, z float64)

// UniformSpectrum returns a spectrum uniform in [lo, hi).
func UniformSpectrum(lo, hi float64) Spectrum {
	return func(rng *RandomSource) float64 {
		return rng.Uniform(lo, hi)
	}
}

// UniformIntSpectrum returns an integer spectrum uniform in [lo, hi).
func UniformIntSpectrum(lo, hi int64) IntSpectrum {
	return func(rng *RandomSource) int {
		return int(rng.UniformInt(lo, hi))
	}
}

// CylinderPositionSpectrum samples uniformly inside a cylinder of the
// given radius and height centered on the origin: (x, y) by rejection
// from the enclosing square, z independently.
func CylinderPositionSpectrum(radiusMM, heightMM float64) PositionSpectrum {
	return func(rng *RandomSource) (float64, float64, float64) {
		x, y := radiusMM, radiusMM
		for math.Hypot(x, y) > radiusMM {
			x = rng.Uniform(-radiusMM, radiusMM)
			y = rng.Uniform(-radiusMM, radiusMM)
		}
		z := rng.Uniform(-heightMM/2, heightMM/2)
		return x, y, z
	}
}

// ExponentialDisplacement samples a position displaced from a starting
// point by an independent positive exponential draw on each axis with
// the given mean separation. The whole displacement vector is
// resampled while the resulting radial distance exceeds the cylinder
// radius.
func ExponentialDisplacement(radiusMM, meanSeparationMM float64) DisplacedPositionSpectrum {
	return func(rng *RandomSource, fromX, fromY, fromZ float64) (float64, float64, float64) {
		for {
			x := fromX + rng.Exponential(meanSeparationMM)
			y := fromY + rng.Exponential(meanSeparationMM)
			z := fromZ + rng.Exponential(meanSeparationMM)
			if math.Hypot(x, y) <= radiusMM {
				return x, y, z
			}
		}
	}
}
