package sim

import (
	"errors"
	"fmt"
	"math"
)

// MaxCostEntries is the historical limit on configured components.
const MaxCostEntries = 8

// Upper bounds on a cycle count and a per-cycle cost.
const (
	MaxCycles     = math.MaxInt32
	MaxMsPerCycle = math.MaxInt32
)

// Component names matched exactly by the Simulator.
const (
	ComponentProcessor = "Processor"
	ComponentMemory    = "Memory"
)

// Device descriptions that receive a round-robin unit suffix.
const (
	DeviceHardDrive = "hard drive"
	DevicePrinter   = "printer"
)

var (
	ErrTooManyComponents  = errors.New("too many cost entries")
	ErrDuplicateComponent = errors.New("duplicate component name")
)

// CostEntry maps a component name to its cost in milliseconds per cycle.
type CostEntry struct {
	Name       string `yaml:"name"`
	MsPerCycle int    `yaml:"ms_per_cycle"`
}

// CostTable is the ordered, name-keyed set of component cycle costs.
// The Simulator and parser only read it.
type CostTable struct {
	entries []CostEntry
}

// NewCostTable builds a table from entries in order.
func NewCostTable(entries ...CostEntry) (*CostTable, error) {
	t := &CostTable{}
	for _, e := range entries {
		if err := t.Add(e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustCostTable is NewCostTable for fixed tables in tests and defaults; it panics on error.
func MustCostTable(entries ...CostEntry) *CostTable {
	t, err := NewCostTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Add appends an entry. Names must be unique and the table holds at most MaxCostEntries.
func (t *CostTable) Add(e CostEntry) error {
	if len(t.entries) >= MaxCostEntries {
		return fmt.Errorf("%w: limit is %d, adding %q", ErrTooManyComponents, MaxCostEntries, e.Name)
	}
	if _, ok := t.Lookup(e.Name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateComponent, e.Name)
	}
	if e.MsPerCycle < 0 || e.MsPerCycle > MaxMsPerCycle {
		return fmt.Errorf("component %q: ms per cycle must be within [0, %d], got %d", e.Name, MaxMsPerCycle, e.MsPerCycle)
	}
	t.entries = append(t.entries, e)
	return nil
}

// Len returns the number of entries. Safe on a nil table.
func (t *CostTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the entries in configuration order.
func (t *CostTable) Entries() []CostEntry {
	if t == nil {
		return nil
	}
	out := make([]CostEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup finds the entry whose name equals name exactly.
func (t *CostTable) Lookup(name string) (CostEntry, bool) {
	if t == nil {
		return CostEntry{}, false
	}
	for _, e := range t.entries {
		if e.Name == name {
			return e, true
		}
	}
	return CostEntry{}, false
}

// MatchDevice returns every entry whose name matches an I/O description under
// DeviceNameMatches, in table order.
func (t *CostTable) MatchDevice(description string) []CostEntry {
	if t == nil {
		return nil
	}
	var matches []CostEntry
	for _, e := range t.entries {
		if DeviceNameMatches(e.Name, description) {
			matches = append(matches, e)
		}
	}
	return matches
}

// DeviceNameMatches compares a component name with an I/O description ignoring
// the first character of both, over the description's length. "Hard drive"
// matches "hard drive"; so does "Ward drive". Names sharing every character
// but the first are ambiguous and all match.
func DeviceNameMatches(name, description string) bool {
	if len(name) == 0 || len(description) == 0 {
		return false
	}
	end := min(len(name), 1+len(description))
	return name[1:end] == description[1:]
}

// CostMs returns cycles*MsPerCycle, saturating at math.MaxInt. Non-positive
// cycle counts cost nothing.
func (e CostEntry) CostMs(cycles int) int {
	if cycles <= 0 || e.MsPerCycle <= 0 {
		return 0
	}
	if cycles > math.MaxInt/e.MsPerCycle {
		return math.MaxInt
	}
	return cycles * e.MsPerCycle
}

// Duration converts cycles of the named component into simulated seconds.
func (e CostEntry) Duration(cycles int) float64 {
	return float64(e.CostMs(cycles)) / 1000.0
}
