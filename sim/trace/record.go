// Package trace records process-state transitions and device assignments made
// during a simulation run. It has no dependency on sim/ and stores plain data.
package trace

// TransitionRecord captures one change of the process-state register.
type TransitionRecord struct {
	Index       int     // position of the instruction in the stream
	Instruction string  // script notation, e.g. "O(printer)5"
	From        string
	To          string
	Elapsed     float64 // seconds since the run's origin
}

// DeviceRecord captures one round-robin device unit assignment.
type DeviceRecord struct {
	Index  int
	Device string // "HDD" or "PRNTR"
	Unit   int
}
