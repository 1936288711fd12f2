package toymc

import (
	"errors"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

// Writer is the HDF5 sink. The layout mirrors the experiment's file
// structure: reconstructed quantities under /Event/Rec, calibrated
// statistics under /Event/Data, truth indices under /MCTruth and the
// code<->label table under /MCTruthLookup. Run metadata is stored
// under /Run so the file is self-describing.
type Writer struct {
	File         *hdf5.File
	Filename     string
	EventGroup   *hdf5.Group
	RecGroup     *hdf5.Group
	DataGroup    *hdf5.Group
	TruthGroup   *hdf5.Group
	LookupGroup  *hdf5.Group
	RunGroup     *hdf5.Group
	RecoTable    *hdf5.Dataset
	CalibTable   *hdf5.Dataset
	TruthTable   *hdf5.Dataset
	LookupTable  *hdf5.Dataset
	RunInfoTable *hdf5.Dataset
	EvtCounter   int
	TruthCounter int

	runInfo    RunInfoHDF5
	hasRunInfo bool
}

type RecoEventHDF5 struct {
	site         int32
	trigger_type uint32
	energy       float32
	x            float32
	y            float32
	z            float32
}

type CalibEventHDF5 struct {
	trigger_number int32
	detector       int32
	timestamp_sec  int32
	timestamp_nsec int32
	nHit           int32
	charge         float32
	fQuad          float32
	fMax           float32
	fPSD_t1        float32
	fPSD_t2        float32
	f2inch_maxQ    float32
}

type TruthHDF5 struct {
	truth_index uint32
}

type LookupHDF5 struct {
	code  uint32
	label [STRLEN]byte
}

type RunInfoHDF5 struct {
	seed       int64
	duration_s float32
	start_s    float32
}

// NewWriter creates (or overwrites) the output file at filename and
// prepares every group and table.
func NewWriter(filename string) (*Writer, error) {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	writer := &Writer{Filename: filename}
	logger.Info(fmt.Sprintf("creating file %s", filename), "writer")

	var err error
	if writer.File, err = openFile(filename); err != nil {
		return nil, err
	}
	if writer.EventGroup, err = createGroup(writer.File, "Event"); err != nil {
		return nil, err
	}
	if writer.RecGroup, err = createSubGroup(writer.EventGroup, "Rec"); err != nil {
		return nil, err
	}
	if writer.DataGroup, err = createSubGroup(writer.EventGroup, "Data"); err != nil {
		return nil, err
	}
	if writer.TruthGroup, err = createGroup(writer.File, "MCTruth"); err != nil {
		return nil, err
	}
	if writer.LookupGroup, err = createGroup(writer.File, "MCTruthLookup"); err != nil {
		return nil, err
	}
	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return nil, err
	}
	if writer.RecoTable, err = createTable(writer.RecGroup, "events", RecoEventHDF5{}); err != nil {
		return nil, err
	}
	if writer.CalibTable, err = createTable(writer.DataGroup, "events", CalibEventHDF5{}); err != nil {
		return nil, err
	}
	if writer.TruthTable, err = createTable(writer.TruthGroup, "truth", TruthHDF5{}); err != nil {
		return nil, err
	}
	if writer.LookupTable, err = createTable(writer.LookupGroup, "lookup", LookupHDF5{}); err != nil {
		return nil, err
	}
	if writer.RunInfoTable, err = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{}); err != nil {
		return nil, err
	}
	return writer, nil
}

// SetRunInfo records the run metadata written to /Run/runInfo at
// finalize time.
func (w *Writer) SetRunInfo(seed uint64, durationS, startS float64) {
	w.runInfo = RunInfoHDF5{
		seed:       int64(seed),
		duration_s: float32(durationS),
		start_s:    float32(startS),
	}
	w.hasRunInfo = true
}

// Write appends one event, split across the reco and calib tables.
// The nanosecond timestamp is decomposed into seconds plus
// nanoseconds, as in the experiment's files.
func (w *Writer) Write(event Event) error {
	timestampSec := event.Timestamp / 1000000000
	timestampNanoSec := event.Timestamp % 1000000000

	reco := RecoEventHDF5{
		site:         int32(event.Site),
		trigger_type: event.TriggerType,
		energy:       float32(event.Energy),
		x:            float32(event.X),
		y:            float32(event.Y),
		z:            float32(event.Z),
	}
	calib := CalibEventHDF5{
		trigger_number: int32(event.TriggerNumber),
		detector:       int32(event.Detector),
		timestamp_sec:  int32(timestampSec),
		timestamp_nsec: int32(timestampNanoSec),
		nHit:           int32(event.NHit),
		charge:         float32(event.Charge),
		fQuad:          float32(event.FQuad),
		fMax:           float32(event.FMax),
		fPSD_t1:        float32(event.FPSDT1),
		fPSD_t2:        float32(event.FPSDT2),
		f2inch_maxQ:    float32(event.F2inchMaxQ),
	}

	if err := writeEntryToTable(w.RecoTable, reco, w.EvtCounter); err != nil {
		return fmt.Errorf("error writing reco entry: %w", err)
	}
	if err := writeEntryToTable(w.CalibTable, calib, w.EvtCounter); err != nil {
		return fmt.Errorf("error writing calib entry: %w", err)
	}
	w.EvtCounter++
	return nil
}

// WriteTruth appends one truth index, aligned with the event tables.
func (w *Writer) WriteTruth(truthIndex int) error {
	entry := TruthHDF5{truth_index: uint32(truthIndex)}
	if err := writeEntryToTable(w.TruthTable, entry, w.TruthCounter); err != nil {
		return fmt.Errorf("error writing truth entry: %w", err)
	}
	w.TruthCounter++
	return nil
}

// WriteLookup persists the full code<->label table in one append.
func (w *Writer) WriteLookup(registry *TruthLabelRegistry) error {
	entries := registry.Entries()
	rows := make([]LookupHDF5, len(entries))
	for i, entry := range entries {
		rows[i] = LookupHDF5{
			code:  uint32(entry.Code),
			label: convertToHdf5String(entry.Label),
		}
	}
	if err := writeArrayToTable(w.LookupTable, &rows, 0); err != nil {
		return fmt.Errorf("error writing truth lookup table: %w", err)
	}
	return nil
}

// Finalize writes the run metadata and closes every resource. The
// output file is complete only if Finalize returns nil.
func (w *Writer) Finalize() error {
	if w.hasRunInfo {
		if err := writeEntryToTable(w.RunInfoTable, w.runInfo, 0); err != nil {
			return fmt.Errorf("error writing run info: %w", err)
		}
	}
	return w.close()
}

func (w *Writer) close() error {
	logger.Info(fmt.Sprintf("closing file %s", w.Filename), "writer")
	var errs []error

	if err := w.RecoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing reco table: %w", err))
	}
	if err := w.CalibTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing calib table: %w", err))
	}
	if err := w.TruthTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing truth table: %w", err))
	}
	if err := w.LookupTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing lookup table: %w", err))
	}
	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.RecGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Rec group: %w", err))
	}
	if err := w.DataGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Data group: %w", err))
	}
	if err := w.EventGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Event group: %w", err))
	}
	if err := w.TruthGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing MCTruth group: %w", err))
	}
	if err := w.LookupGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing MCTruthLookup group: %w", err))
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Run group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
