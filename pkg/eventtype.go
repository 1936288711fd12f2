package toymc

import "math"

// TriggerESumNHit is the trigger bitmask carried by regular events
// (ESUM and NHIT).
const TriggerESumNHit uint32 = 0x10001100

// PEsPerMeV converts energy to nominal charge.
const PEsPerMeV = 170

const defaultNHit = 192

// EventType is the contract every event generator satisfies. Built-in
// implementations are Single, Correlated and Muon; user-defined types
// plug into the engine through the same three operations.
type EventType interface {
	// Name returns the unique human-readable name for this instance.
	// Truth labels are derived from it, so it should use only
	// alphanumerics and underscores.
	Name() string

	// GenerateEvents returns the unsorted events whose primary
	// timestamps fall in [startS, startS+durationS). All randomness
	// must come from rng; no global state may be touched.
	GenerateEvents(rng *RandomSource, durationS float64, startS float64) ([]Event, error)

	// Labels enumerates every truth-label code this instance can
	// emit, keyed by code. Unset or negative codes are a
	// ConfigurationError.
	Labels() (map[int]string, error)
}

// CountModel converts a rate and a duration into an occurrence count.
type CountModel func(rng *RandomSource, durationS, rateHz float64) int

// PoissonCount is the default count model: a Poisson draw with mean
// durationS*rateHz. A zero rate or duration yields zero events without
// consuming a draw.
func PoissonCount(rng *RandomSource, durationS, rateHz float64) int {
	if durationS <= 0 || rateHz <= 0 {
		return 0
	}
	return int(rng.Poisson(durationS * rateHz))
}

// ExpectedCount is the legacy count model: the truncated expectation
// durationS*rateHz, with no randomness. Opt-in only; PoissonCount is
// the canonical policy.
func ExpectedCount(rng *RandomSource, durationS, rateHz float64) int {
	if durationS <= 0 || rateHz <= 0 {
		return 0
	}
	return int(durationS * rateHz)
}

// windowNs converts the run window to integer nanoseconds.
func windowNs(durationS, startS float64) (t0 int64, span int64) {
	t0 = int64(math.Round(startS * 1e9))
	span = int64(math.Round(durationS * 1e9))
	return t0, span
}

func checkFinite(eventType, quantity string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &SamplingError{EventType: eventType, Quantity: quantity, Value: v}
		}
	}
	return nil
}
