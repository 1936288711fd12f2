package toymc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySink captures everything the engine emits, in order.
type memorySink struct {
	events    []Event
	truth     []int
	lookup    *TruthLabelRegistry
	finalized bool

	writeErr error
}

func (s *memorySink) Write(event Event) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.events = append(s.events, event)
	return nil
}

func (s *memorySink) WriteTruth(truthIndex int) error {
	s.truth = append(s.truth, truthIndex)
	return nil
}

func (s *memorySink) WriteLookup(registry *TruthLabelRegistry) error {
	s.lookup = registry
	return nil
}

func (s *memorySink) Finalize() error {
	s.finalized = true
	return nil
}

func newTestRun(t *testing.T, sink Sink, seed uint64) *ToyMC {
	mc, err := NewToyMC(sink, 1, 0, seed)
	require.NoError(t, err)
	for _, eventType := range defaultRoster(t) {
		require.NoError(t, mc.AddEventType(eventType))
	}
	return mc
}

func TestNewToyMCValidation(t *testing.T) {
	var confErr *ConfigurationError

	_, err := NewToyMC(&memorySink{}, 0, 0, 42)
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "duration_s", confErr.Field)

	_, err = NewToyMC(&memorySink{}, 1, -1, 42)
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "start_s", confErr.Field)
}

func TestRunEmitsSortedNumberedStream(t *testing.T) {
	sink := &memorySink{}
	mc := newTestRun(t, sink, 42)
	require.NoError(t, mc.Run())

	require.NotEmpty(t, sink.events)
	assert.True(t, sink.finalized)
	assert.Equal(t, len(sink.events), mc.TotalEvents())
	require.NotNil(t, sink.lookup)
	assert.Equal(t, 8, sink.lookup.Len())

	require.Len(t, sink.truth, len(sink.events))
	for i, event := range sink.events {
		assert.Equal(t, i, event.TriggerNumber)
		assert.Equal(t, event.TruthIndex, sink.truth[i])
		if i > 0 {
			assert.GreaterOrEqual(t, event.Timestamp, sink.events[i-1].Timestamp)
		}
	}
}

func TestRunDeterministicForEqualSeeds(t *testing.T) {
	run := func() []Event {
		sink := &memorySink{}
		mc := newTestRun(t, sink, 42)
		require.NoError(t, mc.Run())
		return sink.events
	}
	assert.Equal(t, run(), run())
}

func TestRunDiffersAcrossSeeds(t *testing.T) {
	first := &memorySink{}
	require.NoError(t, newTestRun(t, first, 42).Run())
	second := &memorySink{}
	require.NoError(t, newTestRun(t, second, 43).Run())

	assert.NotEqual(t, first.events, second.events)
}

func TestRunIsTerminal(t *testing.T) {
	sink := &memorySink{}
	mc := newTestRun(t, sink, 42)
	require.NoError(t, mc.Run())

	var confErr *ConfigurationError
	require.ErrorAs(t, mc.Run(), &confErr)

	single := NewSingle("Late", 1, 1, 1)
	single.TruthCode = 99
	require.ErrorAs(t, mc.AddEventType(single), &confErr)
}

func TestRunAbortsBeforeWritesOnBadLookup(t *testing.T) {
	sink := &memorySink{}
	mc, err := NewToyMC(sink, 1, 0, 42)
	require.NoError(t, err)

	first := NewSingle("First", 20, 1, 1)
	first.TruthCode = 0
	second := NewSingle("Second", 20, 1, 1)
	second.TruthCode = 0 // collides with First
	require.NoError(t, mc.AddEventType(first))
	require.NoError(t, mc.AddEventType(second))

	var lookupErr *InvalidLookupError
	require.ErrorAs(t, mc.Run(), &lookupErr)
	assert.Empty(t, sink.events)
	assert.Empty(t, sink.truth)
	assert.Nil(t, sink.lookup)
	assert.False(t, sink.finalized)
	assert.Zero(t, mc.TotalEvents())
}

func TestRunPropagatesSinkErrors(t *testing.T) {
	sinkErr := errors.New("disk full")
	sink := &memorySink{writeErr: sinkErr}
	mc := newTestRun(t, sink, 42)

	err := mc.Run()
	require.ErrorIs(t, err, sinkErr)
	assert.False(t, sink.finalized)
	assert.Zero(t, mc.TotalEvents())
}

func TestRunEmptyRoster(t *testing.T) {
	sink := &memorySink{}
	mc, err := NewToyMC(sink, 1, 0, 42)
	require.NoError(t, err)

	require.NoError(t, mc.Run())
	assert.Empty(t, sink.events)
	require.NotNil(t, sink.lookup)
	assert.Zero(t, sink.lookup.Len())
	assert.True(t, sink.finalized)
}
