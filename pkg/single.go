package toymc

// Single generates uncorrelated events occurring uniformly at random
// over the run window. Each occurrence emits exactly one event with a
// single truth code.
type Single struct {
	name        string
	RateHz      float64
	Site        int
	Detector    int
	TriggerType uint32

	// TruthCode must be assigned before the run; it stays -1 (unset)
	// after construction.
	TruthCode int

	CountModel       CountModel
	EnergySpectrum   Spectrum
	PositionSpectrum PositionSpectrum
}

// NewSingle returns a Single with the default configuration: Poisson
// counts, energy uniform in [1, 3.5) MeV and positions uniform in a
// cylinder of radius 2000 mm and height 4000 mm.
func NewSingle(name string, rateHz float64, site, detector int) *Single {
	const defaultRadiusMM = 2000
	return &Single{
		name:             name,
		RateHz:           rateHz,
		Site:             site,
		Detector:         detector,
		TriggerType:      TriggerESumNHit,
		TruthCode:        -1,
		CountModel:       PoissonCount,
		EnergySpectrum:   UniformSpectrum(1, 3.5),
		PositionSpectrum: CylinderPositionSpectrum(defaultRadiusMM, 2*defaultRadiusMM),
	}
}

func (s *Single) Name() string {
	return s.name
}

func (s *Single) Labels() (map[int]string, error) {
	if s.TruthCode < 0 {
		return nil, &ConfigurationError{Component: s.name, Field: "truth_code", Value: s.TruthCode}
	}
	return map[int]string{s.TruthCode: s.name + "_event"}, nil
}

func (s *Single) GenerateEvents(rng *RandomSource, durationS, startS float64) ([]Event, error) {
	count := s.CountModel(rng, durationS, s.RateHz)
	if count == 0 {
		return nil, nil
	}
	t0, span := windowNs(durationS, startS)
	timestamps := rng.UniformInts(t0, t0+span, count)
	events := make([]Event, 0, count)
	for _, timestamp := range timestamps {
		event, err := s.newEvent(rng, timestamp)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *Single) newEvent(rng *RandomSource, timestamp int64) (Event, error) {
	energy := s.EnergySpectrum(rng)
	if err := checkFinite(s.name, "energy", energy); err != nil {
		return Event{}, err
	}
	x, y, z := s.PositionSpectrum(rng)
	if err := checkFinite(s.name, "position", x, y, z); err != nil {
		return Event{}, err
	}
	return Event{
		TruthIndex:  s.TruthCode,
		Timestamp:   timestamp,
		Detector:    s.Detector,
		TriggerType: s.TriggerType,
		Site:        s.Site,
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
	}, nil
}
