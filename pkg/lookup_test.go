package toymc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRoster(t *testing.T) []EventType {
	eventTypes, err := BuildEventTypes(DefaultConfiguration())
	require.NoError(t, err)
	return eventTypes
}

func TestBuildTruthLabelRegistry(t *testing.T) {
	registry, err := BuildTruthLabelRegistry(defaultRoster(t))
	require.NoError(t, err)
	require.Equal(t, 8, registry.Len())

	entries := registry.Entries()
	for i, entry := range entries {
		assert.Equal(t, i, entry.Code, "entries must be sorted by code")
	}

	label, ok := registry.Label(5)
	require.True(t, ok)
	assert.Equal(t, "Muon_WP", label)

	code, ok := registry.Code("IBD_nGd_prompt")
	require.True(t, ok)
	assert.Equal(t, 1, code)

	_, ok = registry.Label(99)
	assert.False(t, ok)
	_, ok = registry.Code("nonexistent")
	assert.False(t, ok)
}

func TestBuildTruthLabelRegistryDuplicateCode(t *testing.T) {
	first := NewSingle("First", 1, 1, 1)
	first.TruthCode = 1
	second := NewSingle("Second", 1, 1, 1)
	second.TruthCode = 1

	_, err := BuildTruthLabelRegistry([]EventType{first, second})
	var lookupErr *InvalidLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "Second", lookupErr.EventType)
	assert.Equal(t, 1, lookupErr.Code)
}

func TestBuildTruthLabelRegistryDuplicateLabel(t *testing.T) {
	first := NewSingle("Single", 1, 1, 1)
	first.TruthCode = 0
	second := NewSingle("Single", 1, 1, 1)
	second.TruthCode = 1

	_, err := BuildTruthLabelRegistry([]EventType{first, second})
	var lookupErr *InvalidLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "Single_event", lookupErr.Label)
}

func TestBuildTruthLabelRegistryBadLabelCharacters(t *testing.T) {
	single := NewSingle("Bad Name", 1, 1, 1)
	single.TruthCode = 0

	_, err := BuildTruthLabelRegistry([]EventType{single})
	var lookupErr *InvalidLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "Bad Name_event", lookupErr.Label)
}

func TestBuildTruthLabelRegistryUnsetCode(t *testing.T) {
	single := NewSingle("Single", 1, 1, 1)

	_, err := BuildTruthLabelRegistry([]EventType{single})
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "truth_code", confErr.Field)
}
