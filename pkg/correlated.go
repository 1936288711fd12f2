package toymc

// Correlated generates prompt/delayed pairs, e.g. IBD interactions.
// The pair occurrence rate is the rate of the underlying physical
// process; each occurrence emits exactly two events sharing detector,
// site and trigger type but carrying distinct truth codes.
type Correlated struct {
	name        string
	RateHz      float64
	Site        int
	Detector    int
	TriggerType uint32

	// CoincidenceNs is the mean prompt-delayed time separation in
	// nanoseconds.
	CoincidenceNs float64

	// PromptTruthCode and DelayedTruthCode must both be assigned
	// before the run; they stay -1 (unset) after construction.
	PromptTruthCode  int
	DelayedTruthCode int

	CountModel              CountModel
	PromptEnergySpectrum    Spectrum
	DelayedEnergySpectrum   Spectrum
	PromptPositionSpectrum  PositionSpectrum
	DelayedPositionSpectrum DisplacedPositionSpectrum
}

// NewCorrelated returns a Correlated pair generator with the default
// configuration: prompt energy uniform in [0.7, 4) MeV, delayed
// uniform in [7, 9) MeV, prompt positions uniform in a cylinder of
// radius 1500 mm, and delayed positions displaced from the prompt by
// an exponential step of mean 50 mm per axis.
func NewCorrelated(name string, site, detector int, rateHz, coincidenceNs float64) *Correlated {
	const defaultRadiusMM = 1500
	const defaultSeparationMM = 50
	return &Correlated{
		name:                    name,
		RateHz:                  rateHz,
		Site:                    site,
		Detector:                detector,
		TriggerType:             TriggerESumNHit,
		CoincidenceNs:           coincidenceNs,
		PromptTruthCode:         -1,
		DelayedTruthCode:        -1,
		CountModel:              PoissonCount,
		PromptEnergySpectrum:    UniformSpectrum(0.7, 4),
		DelayedEnergySpectrum:   UniformSpectrum(7, 9),
		PromptPositionSpectrum:  CylinderPositionSpectrum(defaultRadiusMM, 2*defaultRadiusMM),
		DelayedPositionSpectrum: ExponentialDisplacement(defaultRadiusMM, defaultSeparationMM),
	}
}

func (c *Correlated) Name() string {
	return c.name
}

func (c *Correlated) Labels() (map[int]string, error) {
	if c.PromptTruthCode < 0 {
		return nil, &ConfigurationError{Component: c.name, Field: "prompt_truth_code", Value: c.PromptTruthCode}
	}
	if c.DelayedTruthCode < 0 {
		return nil, &ConfigurationError{Component: c.name, Field: "delayed_truth_code", Value: c.DelayedTruthCode}
	}
	if c.PromptTruthCode == c.DelayedTruthCode {
		return nil, &ConfigurationError{Component: c.name, Field: "delayed_truth_code", Value: c.DelayedTruthCode}
	}
	return map[int]string{
		c.PromptTruthCode:  c.name + "_prompt",
		c.DelayedTruthCode: c.name + "_delayed",
	}, nil
}

func (c *Correlated) GenerateEvents(rng *RandomSource, durationS, startS float64) ([]Event, error) {
	pairs := c.CountModel(rng, durationS, c.RateHz)
	if pairs == 0 {
		return nil, nil
	}
	t0, span := windowNs(durationS, startS)
	promptTimes := rng.UniformInts(t0, t0+span, pairs)
	delays := make([]int64, pairs)
	for i := range delays {
		delays[i] = int64(rng.Exponential(c.CoincidenceNs))
	}
	events := make([]Event, 0, 2*pairs)
	for i, promptTime := range promptTimes {
		prompt, err := c.newPromptEvent(rng, promptTime)
		if err != nil {
			return nil, err
		}
		events = append(events, prompt)
		// Delayed timestamps may fall past the end of the run window;
		// they are kept as-is, never clamped or rejected.
		delayed, err := c.newDelayedEvent(rng, promptTime+delays[i], prompt.X, prompt.Y, prompt.Z)
		if err != nil {
			return nil, err
		}
		events = append(events, delayed)
	}
	return events, nil
}

func (c *Correlated) newPromptEvent(rng *RandomSource, timestamp int64) (Event, error) {
	energy := c.PromptEnergySpectrum(rng)
	if err := checkFinite(c.name, "prompt energy", energy); err != nil {
		return Event{}, err
	}
	x, y, z := c.PromptPositionSpectrum(rng)
	if err := checkFinite(c.name, "prompt position", x, y, z); err != nil {
		return Event{}, err
	}
	return c.pairEvent(c.PromptTruthCode, timestamp, energy, x, y, z), nil
}

func (c *Correlated) newDelayedEvent(rng *RandomSource, timestamp int64, promptX, promptY, promptZ float64) (Event, error) {
	energy := c.DelayedEnergySpectrum(rng)
	if err := checkFinite(c.name, "delayed energy", energy); err != nil {
		return Event{}, err
	}
	x, y, z := c.DelayedPositionSpectrum(rng, promptX, promptY, promptZ)
	if err := checkFinite(c.name, "delayed position", x, y, z); err != nil {
		return Event{}, err
	}
	return c.pairEvent(c.DelayedTruthCode, timestamp, energy, x, y, z), nil
}

func (c *Correlated) pairEvent(truthCode int, timestamp int64, energy, x, y, z float64) Event {
	return Event{
		TruthIndex:  truthCode,
		Timestamp:   timestamp,
		Detector:    c.Detector,
		TriggerType: c.TriggerType,
		Site:        c.Site,
		Energy:      energy,
		NHit:        defaultNHit,
		Charge:      energy * PEsPerMeV,
		X:           x,
		Y:           y,
		Z:           z,
		FMax:        0.1,
		FQuad:       0.1,
		FPSDT1:      0.99,
		FPSDT2:      0.99,
		F2inchMaxQ:  0,
	}
}
