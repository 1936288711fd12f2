package toymc

// Event is one simulated triggered readout. Events are plain values
// with no back-references; generators build them and never modify them
// afterwards. The field set matches the experiment's reconstructed and
// calibrated data trees.
type Event struct {
	// TruthIndex identifies the physical subtype that produced this
	// event. The meaning of each index is stored in the truth lookup
	// table written alongside the data.
	TruthIndex int
	// TriggerNumber is assigned sequentially in final emitted order.
	TriggerNumber int
	// Timestamp is the trigger time in integer nanoseconds since the
	// start of data taking.
	Timestamp int64
	// Detector is the sub-detector (AD 1-4, or 6 for the water pool).
	Detector int
	// TriggerType is the trigger bitmask. Regular events carry
	// 0x10001100 (ESUM and NHIT).
	TriggerType uint32
	// Site is the experimental hall (1, 2, or 4 for EH3).
	Site int
	// Energy is the reconstructed energy in MeV.
	Energy float64
	// NHit is the number of hit PMTs.
	NHit int
	// Charge is the nominal charge in photoelectrons.
	Charge float64
	// X, Y, Z are the reconstructed position in millimeters.
	X float64
	Y float64
	Z float64
	// FMax, FQuad, FPSDT1, FPSDT2 and F2inchMaxQ are calibration and
	// PSD placeholders carried through to the output unchanged.
	FMax       float64
	FQuad      float64
	FPSDT1     float64
	FPSDT2     float64
	F2inchMaxQ float64
}
