package toymc

import (
	"regexp"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Truth labels end up as column names in the output lookup table, so
// they are restricted to alphanumerics and underscores.
var labelPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// TruthLabelEntry is one row of the bidirectional code<->label table.
type TruthLabelEntry struct {
	Code  int
	Label string
}

// TruthLabelRegistry is the validated code<->label table for a run,
// built once from the labels of every registered event type.
type TruthLabelRegistry struct {
	byCode  map[int]string
	byLabel map[string]int
	entries []TruthLabelEntry
}

// BuildTruthLabelRegistry collects the labels of every event type and
// validates them: codes must be non-negative and globally unique,
// labels must be unique and alphanumeric-plus-underscore. The first
// violation aborts the build with an InvalidLookupError naming the
// offending event type, label and code.
func BuildTruthLabelRegistry(eventTypes []EventType) (*TruthLabelRegistry, error) {
	registry := &TruthLabelRegistry{
		byCode:  make(map[int]string),
		byLabel: make(map[string]int),
	}
	for _, eventType := range eventTypes {
		labels, err := eventType.Labels()
		if err != nil {
			return nil, err
		}
		codes := maps.Keys(labels)
		slices.Sort(codes)
		for _, code := range codes {
			label := labels[code]
			entry := InvalidLookupError{EventType: eventType.Name(), Label: label, Code: code}
			switch {
			case code < 0:
				entry.Reason = "code must be non-negative"
				return nil, &entry
			case !labelPattern.MatchString(label):
				entry.Reason = "label must contain only alphanumerics and underscores"
				return nil, &entry
			case hasCode(registry.byCode, code):
				entry.Reason = "code already used by label " + registry.byCode[code]
				return nil, &entry
			case hasLabel(registry.byLabel, label):
				entry.Reason = "label already in use"
				return nil, &entry
			}
			registry.byCode[code] = label
			registry.byLabel[label] = code
			registry.entries = append(registry.entries, TruthLabelEntry{Code: code, Label: label})
		}
	}
	slices.SortFunc(registry.entries, func(a, b TruthLabelEntry) int {
		return a.Code - b.Code
	})
	return registry, nil
}

func hasCode(byCode map[int]string, code int) bool {
	_, ok := byCode[code]
	return ok
}

func hasLabel(byLabel map[string]int, label string) bool {
	_, ok := byLabel[label]
	return ok
}

// Entries returns the table rows sorted by code.
func (r *TruthLabelRegistry) Entries() []TruthLabelEntry {
	return r.entries
}

// Label returns the label for a code.
func (r *TruthLabelRegistry) Label(code int) (string, bool) {
	label, ok := r.byCode[code]
	return label, ok
}

// Code returns the code for a label.
func (r *TruthLabelRegistry) Code(label string) (int, bool) {
	code, ok := r.byLabel[label]
	return code, ok
}

// Len returns the number of registered subtypes.
func (r *TruthLabelRegistry) Len() int {
	return len(r.entries)
}
