package trace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalTransitions)
	assert.Empty(t, summary.StateEntries)
	assert.Empty(t, summary.DeviceUses)
	assert.Equal(t, "", summary.FinalState)
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with two device operations on the same drive
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTransitions})
	st.RecordTransition(TransitionRecord{Index: 0, From: "none", To: "start"})
	st.RecordTransition(TransitionRecord{Index: 1, From: "start", To: "waiting"})
	st.RecordTransition(TransitionRecord{Index: 1, From: "waiting", To: "ready"})
	st.RecordTransition(TransitionRecord{Index: 2, From: "ready", To: "waiting"})
	st.RecordTransition(TransitionRecord{Index: 2, From: "waiting", To: "ready"})
	st.RecordTransition(TransitionRecord{Index: 3, From: "ready", To: "exit"})
	st.RecordDevice(DeviceRecord{Index: 1, Device: "HDD", Unit: 0})
	st.RecordDevice(DeviceRecord{Index: 2, Device: "HDD", Unit: 0})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts reflect every record
	assert.Equal(t, 6, summary.TotalTransitions)
	assert.Equal(t, 2, summary.StateEntries["waiting"])
	assert.Equal(t, 2, summary.StateEntries["ready"])
	assert.Equal(t, 2, summary.DeviceUses["HDD 0"])
	assert.Equal(t, "exit", summary.FinalState)
}

func TestTraceSummary_Print_SortedKeys(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTransitions})
	st.RecordTransition(TransitionRecord{To: "waiting"})
	st.RecordTransition(TransitionRecord{To: "ready"})

	var buf bytes.Buffer
	Summarize(st).Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "=== Trace Summary ===")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Entered ready")), bytes.Index(buf.Bytes(), []byte("Entered waiting")))
}
