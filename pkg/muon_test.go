package toymc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMuon(t *testing.T) *Muon {
	muon, err := NewMuon("Muon", 1, 200)
	require.NoError(t, err)
	muon.WPTruthCode = 5
	muon.ADTruthCode = 6
	muon.ShowerTruthCode = 7
	return muon
}

func TestNewMuonSiteValidation(t *testing.T) {
	for _, site := range []int{1, 2, 4} {
		_, err := NewMuon("Muon", site, 200)
		assert.NoError(t, err)
	}

	var confErr *ConfigurationError
	_, err := NewMuon("Muon", 3, 200)
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "site", confErr.Field)
}

func TestMuonADAssociationByPartition(t *testing.T) {
	muon := newTestMuon(t)
	muon.CountModel = func(*RandomSource, float64, float64) int { return 10 }
	muon.ProbWPAndAD = 0.5
	muon.ProbWPAndShower = 0

	events, err := muon.GenerateEvents(NewRandomSource(42), 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 15)

	wp, ad := events[:10], events[10:]
	for i, event := range ad {
		assert.Equal(t, 6, event.TruthIndex)
		assert.Equal(t, wp[i].Timestamp+muon.FixedDelayNs, event.Timestamp)
		assert.Contains(t, []int{1, 2}, event.Detector)
	}
}

func TestMuonShowerPartitionFollowsAD(t *testing.T) {
	muon := newTestMuon(t)
	muon.CountModel = func(*RandomSource, float64, float64) int { return 10 }
	muon.ProbWPAndAD = 0.3
	muon.ProbWPAndShower = 0.2

	events, err := muon.GenerateEvents(NewRandomSource(42), 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 15)

	wp, ad, shower := events[:10], events[10:13], events[13:]
	for i, event := range ad {
		assert.Equal(t, 6, event.TruthIndex)
		assert.Equal(t, wp[i].Timestamp+muon.FixedDelayNs, event.Timestamp)
	}
	for i, event := range shower {
		assert.Equal(t, 7, event.TruthIndex)
		assert.Equal(t, wp[3+i].Timestamp+muon.FixedDelayNs, event.Timestamp)
		assert.GreaterOrEqual(t, event.Energy, 2500.0)
		assert.Less(t, event.Energy, 5000.0)
	}
}

func TestMuonWPEventsHaveNoReconstruction(t *testing.T) {
	muon := newTestMuon(t)
	muon.CountModel = func(*RandomSource, float64, float64) int { return 20 }
	muon.ProbWPAndAD = 0
	muon.ProbWPAndShower = 0

	events, err := muon.GenerateEvents(NewRandomSource(42), 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 20)
	for _, event := range events {
		assert.Equal(t, 5, event.TruthIndex)
		assert.Equal(t, 6, event.Detector)
		assert.Zero(t, event.Energy)
		assert.Zero(t, event.X)
		assert.Zero(t, event.Y)
		assert.Zero(t, event.Z)
		assert.GreaterOrEqual(t, event.NHit, 15)
		assert.Less(t, event.NHit, 100)
	}
}

func TestMuonEH3UsesFourADs(t *testing.T) {
	muon, err := NewMuon("Muon", 4, 200)
	require.NoError(t, err)
	muon.WPTruthCode = 5
	muon.ADTruthCode = 6
	muon.ShowerTruthCode = 7
	muon.CountModel = func(*RandomSource, float64, float64) int { return 100 }
	muon.ProbWPAndAD = 1
	muon.ProbWPAndShower = 0

	events, err := muon.GenerateEvents(NewRandomSource(42), 1, 0)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, event := range events[100:] {
		seen[event.Detector] = true
		assert.Contains(t, []int{1, 2, 3, 4}, event.Detector)
	}
	assert.Len(t, seen, 4, "all four EH3 ADs should be drawn over 100 muons")
}

func TestMuonLabels(t *testing.T) {
	muon, err := NewMuon("Muon", 1, 200)
	require.NoError(t, err)

	var confErr *ConfigurationError
	_, err = muon.Labels()
	require.ErrorAs(t, err, &confErr, "unset codes must fail")
	assert.Equal(t, "wp_truth_code", confErr.Field, "unset codes are reported in a fixed order")

	muon.WPTruthCode = 5
	muon.ADTruthCode = 6
	_, err = muon.Labels()
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "shower_truth_code", confErr.Field)

	muon.ADTruthCode = 5
	muon.ShowerTruthCode = 7
	_, err = muon.Labels()
	require.ErrorAs(t, err, &confErr, "duplicate codes must fail")

	muon.ADTruthCode = 6
	labels, err := muon.Labels()
	require.NoError(t, err)
	assert.Equal(t, map[int]string{5: "Muon_WP", 6: "Muon_AD", 7: "Muon_shower"}, labels)
}

func TestMuonDeterminism(t *testing.T) {
	build := func() []Event {
		muon := newTestMuon(t)
		events, err := muon.GenerateEvents(NewRandomSource(42), 1, 0)
		require.NoError(t, err)
		return events
	}
	assert.Equal(t, build(), build())
}
