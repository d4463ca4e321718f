package sim

// ProcessState is the lifecycle phase of the simulated process.
type ProcessState int

const (
	// StateNone is the implicit state before the first application start.
	StateNone ProcessState = iota
	StateStart
	StateReady
	StateRunning
	StateWaiting
	StateExit
)

var stateNames = map[ProcessState]string{
	StateNone:    "none",
	StateStart:   "start",
	StateReady:   "ready",
	StateRunning: "running",
	StateWaiting: "waiting",
	StateExit:    "exit",
}

func (s ProcessState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is expected from s.
func (s ProcessState) IsTerminal() bool {
	return s == StateExit
}
