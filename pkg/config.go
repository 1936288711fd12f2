package toymc

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Configuration describes a full run: output, window, seed, optional
// run catalog database and the event type roster.
type Configuration struct {
	FileOut    string            `json:"file_out"`
	DurationS  float64           `json:"duration_s"`
	StartS     float64           `json:"start_s"`
	Seed       int64             `json:"seed"` // negative means system-derived
	Verbosity  int               `json:"verbosity"`
	CountModel string            `json:"count_model"` // "poisson" (default) or "expected"
	NoDB       bool              `json:"no_db"`
	Host       string            `json:"host"`
	User       string            `json:"user"`
	Passwd     string            `json:"pass"`
	DBName     string            `json:"dbname"`
	EventTypes []EventTypeConfig `json:"event_types"`
}

// EventTypeConfig describes one event type instance. Type selects the
// variant; the truth code fields relevant to that variant are
// mandatory and must be unique across the whole roster.
type EventTypeConfig struct {
	Type          string  `json:"type"` // "single", "correlated" or "muon"
	Name          string  `json:"name"`
	RateHz        float64 `json:"rate_hz"`
	Site          int     `json:"site"`
	Detector      int     `json:"detector"`
	CoincidenceNs float64 `json:"coincidence_ns"`

	TruthCode        int `json:"truth_code"`
	PromptTruthCode  int `json:"prompt_truth_code"`
	DelayedTruthCode int `json:"delayed_truth_code"`
	WPTruthCode      int `json:"wp_truth_code"`
	ADTruthCode      int `json:"ad_truth_code"`
	ShowerTruthCode  int `json:"shower_truth_code"`

	// Optional overrides; zero values keep the variant defaults.
	EnergyRangeMeV        []float64 `json:"energy_range_mev"`
	PromptEnergyRangeMeV  []float64 `json:"prompt_energy_range_mev"`
	DelayedEnergyRangeMeV []float64 `json:"delayed_energy_range_mev"`
	SeparationMM          float64   `json:"separation_mm"`
	RadiusMM              float64   `json:"radius_mm"`
	ProbWPAndAD           *float64  `json:"prob_wp_and_ad"`
	ProbWPAndShower       *float64  `json:"prob_wp_and_shower"`
}

// LoadConfiguration reads a JSON configuration file on top of the
// defaults.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

// ValidateRunWindow checks the run window before any output resource
// is created: the duration must be a positive whole number of seconds
// and the start time non-negative.
func ValidateRunWindow(config Configuration) error {
	if config.DurationS <= 0 || config.DurationS != math.Trunc(config.DurationS) {
		return &ConfigurationError{Component: "toymc", Field: "duration_s", Value: config.DurationS}
	}
	if config.StartS < 0 {
		return &ConfigurationError{Component: "toymc", Field: "start_s", Value: config.StartS}
	}
	return nil
}

// DefaultConfiguration mirrors the standard demo roster: one single
// type, nGd and nH IBD pairs and one muon family, all in EH1, with
// consecutive truth codes.
func DefaultConfiguration() Configuration {
	ibdnH := EventTypeConfig{
		Type:                  "correlated",
		Name:                  "IBD_nH",
		RateHz:                0.006,
		Site:                  1,
		Detector:              1,
		CoincidenceNs:         150000,
		PromptTruthCode:       3,
		DelayedTruthCode:      4,
		DelayedEnergyRangeMeV: []float64{1.9, 2.3},
		SeparationMM:          100,
	}
	return Configuration{
		Seed:       -1,
		CountModel: "poisson",
		NoDB:       true,
		Host:       "dybdb.ihep.ac.cn",
		User:       "toymc",
		DBName:     "ToyMC",
		EventTypes: []EventTypeConfig{
			{Type: "single", Name: "Single", RateHz: 20, Site: 1, Detector: 1, TruthCode: 0},
			{Type: "correlated", Name: "IBD_nGd", RateHz: 0.007, Site: 1, Detector: 1,
				CoincidenceNs: 28000, PromptTruthCode: 1, DelayedTruthCode: 2},
			ibdnH,
			{Type: "muon", Name: "Muon", RateHz: 200, Site: 1,
				WPTruthCode: 5, ADTruthCode: 6, ShowerTruthCode: 7},
		},
	}
}

// BuildEventTypes constructs the event type instances described by the
// configuration, in roster order.
func BuildEventTypes(config Configuration) ([]EventType, error) {
	countModel, err := countModelByName(config.CountModel)
	if err != nil {
		return nil, err
	}
	eventTypes := make([]EventType, 0, len(config.EventTypes))
	for _, entry := range config.EventTypes {
		eventType, err := buildEventType(entry, countModel)
		if err != nil {
			return nil, err
		}
		eventTypes = append(eventTypes, eventType)
	}
	return eventTypes, nil
}

func countModelByName(name string) (CountModel, error) {
	switch name {
	case "", "poisson":
		return PoissonCount, nil
	case "expected":
		return ExpectedCount, nil
	default:
		return nil, &ConfigurationError{Component: "toymc", Field: "count_model", Value: name}
	}
}

func buildEventType(entry EventTypeConfig, countModel CountModel) (EventType, error) {
	switch entry.Type {
	case "single":
		single := NewSingle(entry.Name, entry.RateHz, entry.Site, entry.Detector)
		single.TruthCode = entry.TruthCode
		single.CountModel = countModel
		if len(entry.EnergyRangeMeV) == 2 {
			single.EnergySpectrum = UniformSpectrum(entry.EnergyRangeMeV[0], entry.EnergyRangeMeV[1])
		}
		if entry.RadiusMM > 0 {
			single.PositionSpectrum = CylinderPositionSpectrum(entry.RadiusMM, 2*entry.RadiusMM)
		}
		return single, nil
	case "correlated":
		correlated := NewCorrelated(entry.Name, entry.Site, entry.Detector, entry.RateHz, entry.CoincidenceNs)
		correlated.PromptTruthCode = entry.PromptTruthCode
		correlated.DelayedTruthCode = entry.DelayedTruthCode
		correlated.CountModel = countModel
		if len(entry.PromptEnergyRangeMeV) == 2 {
			correlated.PromptEnergySpectrum = UniformSpectrum(entry.PromptEnergyRangeMeV[0], entry.PromptEnergyRangeMeV[1])
		}
		if len(entry.DelayedEnergyRangeMeV) == 2 {
			correlated.DelayedEnergySpectrum = UniformSpectrum(entry.DelayedEnergyRangeMeV[0], entry.DelayedEnergyRangeMeV[1])
		}
		radius := entry.RadiusMM
		if radius <= 0 {
			radius = 1500
		}
		separation := entry.SeparationMM
		if separation <= 0 {
			separation = 50
		}
		if entry.RadiusMM > 0 {
			correlated.PromptPositionSpectrum = CylinderPositionSpectrum(radius, 2*radius)
		}
		// The delayed rejection loop must use the same radius as the
		// prompt volume, or prompts outside the smaller radius can
		// never yield an accepted displacement.
		if entry.RadiusMM > 0 || entry.SeparationMM > 0 {
			correlated.DelayedPositionSpectrum = ExponentialDisplacement(radius, separation)
		}
		return correlated, nil
	case "muon":
		muon, err := NewMuon(entry.Name, entry.Site, entry.RateHz)
		if err != nil {
			return nil, err
		}
		muon.WPTruthCode = entry.WPTruthCode
		muon.ADTruthCode = entry.ADTruthCode
		muon.ShowerTruthCode = entry.ShowerTruthCode
		muon.CountModel = countModel
		if entry.ProbWPAndAD != nil {
			muon.ProbWPAndAD = *entry.ProbWPAndAD
		}
		if entry.ProbWPAndShower != nil {
			muon.ProbWPAndShower = *entry.ProbWPAndShower
		}
		return muon, nil
	default:
		return nil, &ConfigurationError{Component: entry.Name, Field: "type", Value: entry.Type}
	}
}

// PrintConfiguration logs the run parameters through the package
// logger.
func PrintConfiguration(config Configuration) {
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Duration: %g s", config.DurationS), "config")
	logger.Info(fmt.Sprintf("Start: %g s", config.StartS), "config")
	logger.Info(fmt.Sprintf("Seed: %d", config.Seed), "config")
	logger.Info(fmt.Sprintf("Count model: %s", config.CountModel), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	for _, entry := range config.EventTypes {
		logger.Info(fmt.Sprintf("Event type %q (%s): %g Hz, site %d", entry.Name, entry.Type, entry.RateHz, entry.Site), "config")
	}
}
