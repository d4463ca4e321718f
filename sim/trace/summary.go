package trace

import (
	"fmt"
	"io"
	"sort"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTransitions int
	StateEntries     map[string]int // state -> times entered
	DeviceUses       map[string]int // "HDD 0" -> times assigned
	FinalState       string
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		StateEntries: make(map[string]int),
		DeviceUses:   make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalTransitions = len(st.Transitions)
	for _, r := range st.Transitions {
		summary.StateEntries[r.To]++
	}
	if n := len(st.Transitions); n > 0 {
		summary.FinalState = st.Transitions[n-1].To
	}
	for _, d := range st.Devices {
		summary.DeviceUses[fmt.Sprintf("%s %d", d.Device, d.Unit)]++
	}
	return summary
}

// Print writes the summary with keys in sorted order.
func (s *TraceSummary) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "=== Trace Summary ===")
	_, _ = fmt.Fprintf(w, "Transitions          : %d\n", s.TotalTransitions)
	_, _ = fmt.Fprintf(w, "Final State          : %s\n", s.FinalState)
	for _, k := range sortedKeys(s.StateEntries) {
		_, _ = fmt.Fprintf(w, "Entered %-12s : %d\n", k, s.StateEntries[k])
	}
	for _, k := range sortedKeys(s.DeviceUses) {
		_, _ = fmt.Fprintf(w, "Used %-15s : %d\n", k, s.DeviceUses[k])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
