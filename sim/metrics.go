// Computes the per-instruction cost report: how many milliseconds each timed
// instruction will take under the configured cycle costs.

package sim

import (
	"fmt"
	"io"
	"math"
)

// MetricEntry is the cost of one timed instruction against one component.
type MetricEntry struct {
	Instruction Instruction
	Component   string
	Ms          int
}

// Metrics aggregates the expected cost of an instruction stream.
type Metrics struct {
	Entries []MetricEntry
	TotalMs int
}

// ComputeMetrics prices every P, M, I and O instruction. I/O instructions get
// one entry per matching component, as the Simulator runs them.
func ComputeMetrics(instructions []Instruction, costs *CostTable) *Metrics {
	m := &Metrics{}
	for _, in := range instructions {
		var entries []CostEntry
		switch in.Code {
		case CodeProcess:
			if e, ok := costs.Lookup(ComponentProcessor); ok {
				entries = append(entries, e)
			}
		case CodeMemory:
			if e, ok := costs.Lookup(ComponentMemory); ok {
				entries = append(entries, e)
			}
		case CodeInput, CodeOutput:
			entries = costs.MatchDevice(in.Description)
		}
		for _, e := range entries {
			ms := e.CostMs(in.Cycles)
			m.Entries = append(m.Entries, MetricEntry{Instruction: in, Component: e.Name, Ms: ms})
			if m.TotalMs > math.MaxInt-ms {
				m.TotalMs = math.MaxInt
			} else {
				m.TotalMs += ms
			}
		}
	}
	return m
}

// WriteCostTable writes one "<name> = <ms> ms/cycle" line per entry.
func WriteCostTable(w io.Writer, costs *CostTable) error {
	for _, e := range costs.Entries() {
		if _, err := fmt.Fprintf(w, "%s = %d ms/cycle\n", e.Name, e.MsPerCycle); err != nil {
			return err
		}
	}
	return nil
}

// Print writes the "Meta-Data Metrics" section.
func (m *Metrics) Print(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Meta-Data Metrics"); err != nil {
		return err
	}
	for _, e := range m.Entries {
		if _, err := fmt.Fprintf(w, "%s - %d ms\n", e.Instruction, e.Ms); err != nil {
			return err
		}
	}
	return nil
}
