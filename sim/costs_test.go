package sim

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceNameMatches(t *testing.T) {
	tests := []struct {
		name, description string
		want              bool
	}{
		{"Hard drive", "hard drive", true},
		{"Monitor", "monitor", true},
		{"Printer", "printer", true},
		{"Keyboard", "keyboard", true},
		// only the first character is ignored
		{"Ward drive", "hard drive", true},
		{"Hard drive", "hard drivE", false},
		// lengths must line up
		{"Hard drive", "hard", false},
		{"Hard", "hard drive", false},
		{"Monitor", "monitors", false},
		{"Monitors", "monitor", false},
		{"", "monitor", false},
		{"Monitor", "", false},
		// a single character description matches any single character name
		{"X", "y", true},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/%s", tc.name, tc.description), func(t *testing.T) {
			assert.Equal(t, tc.want, DeviceNameMatches(tc.name, tc.description))
		})
	}
}

func TestCostTable_MatchDevice_AmbiguousNamesAllMatch(t *testing.T) {
	// GIVEN two names differing only in their first character
	costs := MustCostTable(
		CostEntry{Name: "Mouse", MsPerCycle: 10},
		CostEntry{Name: "House", MsPerCycle: 20},
		CostEntry{Name: "Printer", MsPerCycle: 30},
	)

	// WHEN matching a description sharing that suffix
	matches := costs.MatchDevice("mouse")

	// THEN both entries match, in table order
	require.Len(t, matches, 2)
	assert.Equal(t, "Mouse", matches[0].Name)
	assert.Equal(t, "House", matches[1].Name)
}

func TestCostTable_Add_EnforcesLimit(t *testing.T) {
	costs := &CostTable{}
	for i := range MaxCostEntries {
		require.NoError(t, costs.Add(CostEntry{Name: fmt.Sprintf("C%d", i), MsPerCycle: 1}))
	}

	err := costs.Add(CostEntry{Name: "Extra", MsPerCycle: 1})

	assert.True(t, errors.Is(err, ErrTooManyComponents))
	assert.Equal(t, MaxCostEntries, costs.Len())
}

func TestCostTable_Add_RejectsDuplicatesAndNegatives(t *testing.T) {
	_, err := NewCostTable(CostEntry{Name: "Memory", MsPerCycle: 1}, CostEntry{Name: "Memory", MsPerCycle: 2})
	assert.True(t, errors.Is(err, ErrDuplicateComponent))

	_, err = NewCostTable(CostEntry{Name: "Memory", MsPerCycle: -1})
	assert.Error(t, err)

	_, err = NewCostTable(CostEntry{Name: "Memory", MsPerCycle: MaxMsPerCycle + 1})
	assert.ErrorContains(t, err, "ms per cycle must be within")
}

func TestCostTable_Lookup_ExactName(t *testing.T) {
	costs := MustCostTable(CostEntry{Name: "Processor", MsPerCycle: 20})

	e, ok := costs.Lookup("Processor")
	assert.True(t, ok)
	assert.Equal(t, 20, e.MsPerCycle)

	_, ok = costs.Lookup("processor")
	assert.False(t, ok)
}

func TestCostTable_NilSafe(t *testing.T) {
	var costs *CostTable

	assert.Equal(t, 0, costs.Len())
	assert.Nil(t, costs.Entries())
	assert.Nil(t, costs.MatchDevice("printer"))
	_, ok := costs.Lookup("Processor")
	assert.False(t, ok)
}

func TestCostTable_Entries_ReturnsCopy(t *testing.T) {
	costs := MustCostTable(CostEntry{Name: "Processor", MsPerCycle: 20})

	entries := costs.Entries()
	entries[0].MsPerCycle = 99

	e, _ := costs.Lookup("Processor")
	assert.Equal(t, 20, e.MsPerCycle)
}

func TestCostEntry_Duration(t *testing.T) {
	e := CostEntry{Name: "Processor", MsPerCycle: 20}

	assert.InDelta(t, 0.06, e.Duration(3), 1e-12)
	assert.Equal(t, 0.0, e.Duration(0))
}

func TestCostEntry_CostMs_Saturates(t *testing.T) {
	e := CostEntry{Name: "Processor", MsPerCycle: 10}

	assert.Equal(t, 110, e.CostMs(11))
	assert.Equal(t, 0, e.CostMs(-5))
	assert.Equal(t, math.MaxInt, e.CostMs(math.MaxInt/10+1))
	assert.Equal(t, math.MaxInt, e.CostMs(922337203685477581))
}

func TestCostEntry_Duration_HugeCyclesStayPositive(t *testing.T) {
	// GIVEN a cycle count whose millisecond cost overflows int
	e := CostEntry{Name: "Processor", MsPerCycle: 10}

	// WHEN converted to seconds
	d := e.Duration(922337203685477581)

	// THEN the result saturates instead of wrapping negative
	assert.Greater(t, d, 0.0)
	assert.Equal(t, 0.0, e.Duration(-3))
}
