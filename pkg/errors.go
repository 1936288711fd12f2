package toymc

import "fmt"

// ConfigurationError reports an invalid construction parameter, such
// as an unknown site code or a non-positive runtime.
type ConfigurationError struct {
	Component string
	Field     string
	Value     any
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %q: field %q has value %v", e.Component, e.Field, e.Value)
}

// InvalidLookupError reports a truth-label violation found while
// building the lookup table: a negative or duplicate code, or a
// malformed or duplicate label.
type InvalidLookupError struct {
	EventType string
	Label     string
	Code      int
	Reason    string
}

func (e *InvalidLookupError) Error() string {
	return fmt.Sprintf("invalid truth lookup entry for event type %q: label %q, code %d: %s",
		e.EventType, e.Label, e.Code, e.Reason)
}

// SamplingError reports a configured spectrum or volume function
// returning an out-of-domain value (NaN or infinity).
type SamplingError struct {
	EventType string
	Quantity  string
	Value     float64
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("spectrum for %q returned non-finite %s: %v", e.EventType, e.Quantity, e.Value)
}

// ErrOpenFile represents an error when opening the output file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrCreateGroup represents an error when creating an HDF5 group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating an HDF5 table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}
