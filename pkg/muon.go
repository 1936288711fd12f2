package toymc

// Muon generates the cosmic muon family: every occurrence hits the
// water pool (WP), and a configurable fraction also registers in an
// inner antineutrino detector (AD) as a regular or shower muon.
type Muon struct {
	name        string
	RateHz      float64
	Site        int
	WPDetector  int
	TriggerType uint32

	// ProbWPAndAD and ProbWPAndShower are the fractions of WP muons
	// that also produce an AD or shower muon event.
	ProbWPAndAD     float64
	ProbWPAndShower float64

	// FixedDelayNs separates an AD or shower event from its WP event.
	FixedDelayNs int64

	// WPTruthCode, ADTruthCode and ShowerTruthCode must all be
	// assigned before the run; they stay -1 (unset) after
	// construction.
	WPTruthCode     int
	ADTruthCode     int
	ShowerTruthCode int

	CountModel           CountModel
	WPNHitSpectrum       IntSpectrum
	ADEnergySpectrum     Spectrum
	ShowerEnergySpectrum Spectrum

	availADs []int
}

// NewMuon returns a Muon generator for the given site with the default
// configuration: 19.95% of WP muons also hit an AD, 0.05% shower, with
// a 50 ns fixed delay. Sites 1 and 2 host ADs 1-2; site 4 (EH3) hosts
// ADs 1-4. Any other site is a configuration error.
func NewMuon(name string, site int, rateHz float64) (*Muon, error) {
	var availADs []int
	switch site {
	case 1, 2:
		availADs = []int{1, 2}
	case 4:
		availADs = []int{1, 2, 3, 4}
	default:
		return nil, &ConfigurationError{Component: name, Field: "site", Value: site}
	}
	return &Muon{
		name:                 name,
		RateHz:               rateHz,
		Site:                 site,
		WPDetector:           6,
		TriggerType:          TriggerESumNHit,
		ProbWPAndAD:          0.1995,
		ProbWPAndShower:      0.0005,
		FixedDelayNs:         50,
		WPTruthCode:          -1,
		ADTruthCode:          -1,
		ShowerTruthCode:      -1,
		CountModel:           PoissonCount,
		WPNHitSpectrum:       UniformIntSpectrum(15, 100),
		ADEnergySpectrum:     UniformSpectrum(20, 2000),
		ShowerEnergySpectrum: UniformSpectrum(2500, 5000),
		availADs:             availADs,
	}, nil
}

func (m *Muon) Name() string {
	return m.name
}

func (m *Muon) Labels() (map[int]string, error) {
	checks := []struct {
		field string
		code  int
	}{
		{"wp_truth_code", m.WPTruthCode},
		{"ad_truth_code", m.ADTruthCode},
		{"shower_truth_code", m.ShowerTruthCode},
	}
	for _, check := range checks {
		if check.code < 0 {
			return nil, &ConfigurationError{Component: m.name, Field: check.field, Value: check.code}
		}
	}
	if m.WPTruthCode == m.ADTruthCode || m.WPTruthCode == m.ShowerTruthCode || m.ADTruthCode == m.ShowerTruthCode {
		return nil, &ConfigurationError{Component: m.name, Field: "truth codes", Value: "codes must be distinct"}
	}
	return map[int]string{
		m.WPTruthCode:     m.name + "_WP",
		m.ADTruthCode:     m.name + "_AD",
		m.ShowerTruthCode: m.name + "_shower",
	}, nil
}

func (m *Muon) GenerateEvents(rng *RandomSource, durationS, startS float64) ([]Event, error) {
	count := m.CountModel(rng, durationS, m.RateHz)
	if count == 0 {
		return nil, nil
	}
	// The AD and shower associations are deterministic slices of the
	// WP timestamp array: the first numADMuons occurrences get an AD
	// event, the next numShowerMuons get a shower event. Kept for
	// compatibility with existing analyses; an independent categorical
	// draw per muon would give different count variance.
	numADMuons := int(float64(count) * m.ProbWPAndAD)
	numShowerMuons := int(float64(count) * m.ProbWPAndShower)
	t0, span := windowNs(durationS, startS)
	wpTimes := rng.UniformInts(t0, t0+span, count)

	events := make([]Event, 0, count+numADMuons+numShowerMuons)
	for _, wpTime := range wpTimes {
		events = append(events, m.newWPEvent(rng, wpTime))
	}
	for _, wpTime := range wpTimes[:numADMuons] {
		event, err := m.newADEvent(rng, wpTime+m.FixedDelayNs)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	for _, wpTime := range wpTimes[numADMuons : numADMuons+numShowerMuons] {
		event, err := m.newShowerEvent(rng, wpTime+m.FixedDelayNs)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// newWPEvent builds a water pool trigger: nHit only, no energy or
// position reconstruction.
func (m *Muon) newWPEvent(rng *RandomSource, timestamp int64) Event {
	return Event{
		TruthIndex:  m.WPTruthCode,
		Timestamp:   timestamp,
		Detector:    m.WPDetector,
		TriggerType: m.TriggerType,
		Site:        m.Site,
		NHit:        m.WPNHitSpectrum(rng),
	}
}

func (m *Muon) newADEvent(rng *RandomSource, timestamp int64) (Event, error) {
	energy := m.ADEnergySpectrum(rng)
	if err := checkFinite(m.name, "AD muon energy", energy); err != nil {
		return Event{}, err
	}
	return m.adEvent(m.ADTruthCode, rng, timestamp, energy), nil
}

func (m *Muon) newShowerEvent(rng *RandomSource, timestamp int64) (Event, error) {
	energy := m.ShowerEnergySpectrum(rng)
	if err := checkFinite(m.name, "shower muon energy", energy); err != nil {
		return Event{}, err
	}
	return m.adEvent(m.ShowerTruthCode, rng, timestamp, energy), nil
}

// adEvent builds an AD-side muon event. Muon positions are not
// modeled, so x, y and z stay zero.
func (m *Muon) adEvent(truthCode int, rng *RandomSource, timestamp int64, energy float64) Event {
	return Event{
		TruthIndex:  truthCode,
		Timestamp:   timestamp,
		Detector:    rng.Choose(m.availADs),
		TriggerType: m.TriggerType,
		Site:        m.Site,
		Energy:      energy,
		NHit:        defaultNHit,
		Charge:      energy * PEsPerMeV,
		FMax:        0.1,
		FQuad:       0.1,
		FPSDT1:      0.99,
		FPSDT2:      0.99,
		F2inchMaxQ:  0,
	}
}
