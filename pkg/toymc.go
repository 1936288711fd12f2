package toymc

import (
	"fmt"
	"sort"
)

// Sink persists the finalized event stream and its truth tables. The
// artifact is considered valid only after Finalize succeeds.
type Sink interface {
	// Write appends one event record.
	Write(event Event) error
	// WriteTruth appends the truth index aligned 1:1 with Write.
	WriteTruth(truthIndex int) error
	// WriteLookup persists the code<->label table, once per run.
	WriteLookup(registry *TruthLabelRegistry) error
	// Finalize flushes and closes the artifact.
	Finalize() error
}

// ToyMC drives a run: it owns the single RandomSource and the list of
// registered event types, generates and merges their events, validates
// the truth lookup and hands everything to the sink.
//
// A ToyMC has two states: while configuring, event types may be added;
// Run moves it to its terminal state and cannot be repeated.
type ToyMC struct {
	sink        Sink
	rng         *RandomSource
	durationS   float64
	startS      float64
	eventTypes  []EventType
	ran         bool
	totalEvents int
}

// NewToyMC returns a ToyMC generating durationS seconds of data
// starting at startS, with all randomness derived from seed.
func NewToyMC(sink Sink, durationS, startS float64, seed uint64) (*ToyMC, error) {
	if durationS <= 0 {
		return nil, &ConfigurationError{Component: "toymc", Field: "duration_s", Value: durationS}
	}
	if startS < 0 {
		return nil, &ConfigurationError{Component: "toymc", Field: "start_s", Value: startS}
	}
	return &ToyMC{
		sink:      sink,
		rng:       NewRandomSource(seed),
		durationS: durationS,
		startS:    startS,
	}, nil
}

// AddEventType registers an event type. Generation happens in
// registration order, which together with the seed fixes the output.
func (mc *ToyMC) AddEventType(eventType EventType) error {
	if mc.ran {
		return &ConfigurationError{Component: "toymc", Field: "state", Value: "cannot add event types after the run"}
	}
	mc.eventTypes = append(mc.eventTypes, eventType)
	return nil
}

// Run generates, merges, validates and emits the event stream, then
// finalizes the sink. Any error aborts before Finalize so that no
// partial artifact is ever considered complete. Run is terminal: a
// second call fails.
func (mc *ToyMC) Run() error {
	if mc.ran {
		return &ConfigurationError{Component: "toymc", Field: "state", Value: "run already completed"}
	}
	mc.ran = true

	var events []Event
	for _, eventType := range mc.eventTypes {
		generated, err := eventType.GenerateEvents(mc.rng, mc.durationS, mc.startS)
		if err != nil {
			return fmt.Errorf("generating events for %q: %w", eventType.Name(), err)
		}
		logger.Info(fmt.Sprintf("%s: generated %d events", eventType.Name(), len(generated)), "toymc")
		events = append(events, generated...)
	}

	// Stable sort: timestamp ties keep generation order (registration
	// order, then emission order within a generator).
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
	for i := range events {
		events[i].TriggerNumber = i
	}

	registry, err := BuildTruthLabelRegistry(mc.eventTypes)
	if err != nil {
		return err
	}

	if err := mc.sink.WriteLookup(registry); err != nil {
		return fmt.Errorf("writing truth lookup table: %w", err)
	}
	for _, event := range events {
		if err := mc.sink.Write(event); err != nil {
			return fmt.Errorf("writing event %d: %w", event.TriggerNumber, err)
		}
		if err := mc.sink.WriteTruth(event.TruthIndex); err != nil {
			return fmt.Errorf("writing truth index for event %d: %w", event.TriggerNumber, err)
		}
	}
	if err := mc.sink.Finalize(); err != nil {
		return fmt.Errorf("finalizing output: %w", err)
	}
	mc.totalEvents = len(events)
	logger.Info(fmt.Sprintf("run complete: %d events written", len(events)), "toymc")
	return nil
}

// TotalEvents returns the number of events written by a completed run.
func (mc *ToyMC) TotalEvents() int {
	return mc.totalEvents
}
