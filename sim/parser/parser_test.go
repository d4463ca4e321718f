package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procsim/procsim/sim"
)

const banner = "Start Program Meta-Data Code:\n"

func testCosts() *sim.CostTable {
	return sim.MustCostTable(
		sim.CostEntry{Name: "Processor", MsPerCycle: 10},
		sim.CostEntry{Name: "Monitor", MsPerCycle: 20},
		sim.CostEntry{Name: "Hard drive", MsPerCycle: 15},
		sim.CostEntry{Name: "Printer", MsPerCycle: 25},
		sim.CostEntry{Name: "Keyboard", MsPerCycle: 50},
		sim.CostEntry{Name: "Memory", MsPerCycle: 30},
	)
}

func mustParse(t *testing.T, script string) *Result {
	t.Helper()
	res, err := Parse(script, testCosts())
	require.NoError(t, err)
	return res
}

func TestParse_SingleEntry_NoDiagnostics(t *testing.T) {
	// GIVEN a banner followed by one entry and the end marker
	res := mustParse(t, banner+"S(start), 10 E")

	// THEN exactly one instruction is produced and nothing is reported
	assert.Equal(t, []sim.Instruction{{Code: sim.CodeStart, Description: "start", Cycles: 10}}, res.Instructions)
	assert.Empty(t, res.Diagnostics)
	assert.True(t, res.Ended)
}

func TestParse_UnknownDescription_OneTypoDiagnostic(t *testing.T) {
	res := mustParse(t, banner+"S(begin), 10")

	assert.Empty(t, res.Instructions)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, DiagTypo, res.Diagnostics[0].Kind)
	assert.False(t, res.Ended)
}

func TestParse_FullScript_PreservesOrder(t *testing.T) {
	// GIVEN a script in the classic assignment layout
	script := banner +
		"S(start)0; A(start)0; P(run)11; M(allocate)2;\n" +
		"O(monitor)7; I(hard drive)8; I(keyboard)2; O(printer)5;\n" +
		"M(block)3; A(end)0; S(end)0.\n" +
		"End Program Meta-Data Code.\n"

	// WHEN parsed
	res := mustParse(t, script)

	// THEN every entry is produced in script order
	want := []sim.Instruction{
		{Code: sim.CodeStart, Description: "start", Cycles: 0},
		{Code: sim.CodeApp, Description: "start", Cycles: 0},
		{Code: sim.CodeProcess, Description: "run", Cycles: 11},
		{Code: sim.CodeMemory, Description: "allocate", Cycles: 2},
		{Code: sim.CodeOutput, Description: "monitor", Cycles: 7},
		{Code: sim.CodeInput, Description: "hard drive", Cycles: 8},
		{Code: sim.CodeInput, Description: "keyboard", Cycles: 2},
		{Code: sim.CodeOutput, Description: "printer", Cycles: 5},
		{Code: sim.CodeMemory, Description: "block", Cycles: 3},
		{Code: sim.CodeApp, Description: "end", Cycles: 0},
		{Code: sim.CodeStart, Description: "end", Cycles: 0},
	}
	assert.Equal(t, want, res.Instructions)
	assert.Empty(t, res.Diagnostics)
	assert.True(t, res.Ended)
}

func TestParse_RecoverableErrors_ContinueWithNextEntry(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind DiagnosticKind
		want     []sim.Instruction
	}{
		{
			name:     "typo in description",
			body:     "P(rnu)5; P(run)4; E",
			wantKind: DiagTypo,
			want:     []sim.Instruction{{Code: sim.CodeProcess, Description: "run", Cycles: 4}},
		},
		{
			name:     "unknown device",
			body:     "O(scanner)5; O(printer)2; E",
			wantKind: DiagTypo,
			want:     []sim.Instruction{{Code: sim.CodeOutput, Description: "printer", Cycles: 2}},
		},
		{
			name:     "negative cycles",
			body:     "P(run)-5; M(block)1; E",
			wantKind: DiagNegativeCycles,
			want:     []sim.Instruction{{Code: sim.CodeMemory, Description: "block", Cycles: 1}},
		},
		{
			name:     "missing cycles before next entry",
			body:     "P(run) M(block)1 E",
			wantKind: DiagMissingCycles,
			want:     []sim.Instruction{{Code: sim.CodeMemory, Description: "block", Cycles: 1}},
		},
		{
			name:     "missing description",
			body:     "A; A(start)0; E",
			wantKind: DiagTypo,
			want:     []sim.Instruction{{Code: sim.CodeApp, Description: "start", Cycles: 0}},
		},
		{
			name:     "unterminated description",
			body:     "A(start\nA(end)0 E",
			wantKind: DiagTypo,
			want:     []sim.Instruction{{Code: sim.CodeApp, Description: "end", Cycles: 0}},
		},
		{
			name:     "cycle count above 32 bits",
			body:     "P(run)2147483648; P(run)2147483647; E",
			wantKind: DiagInvalidCycles,
			want:     []sim.Instruction{{Code: sim.CodeProcess, Description: "run", Cycles: 2147483647}},
		},
		{
			name:     "int64-sized cycle count",
			body:     "P(run)922337203685477581; M(block)1; E",
			wantKind: DiagInvalidCycles,
			want:     []sim.Instruction{{Code: sim.CodeMemory, Description: "block", Cycles: 1}},
		},
		{
			name:     "semicolon before cycles",
			body:     "P(run); 5; M(block)1; E",
			wantKind: DiagMissingCycles,
			want:     []sim.Instruction{{Code: sim.CodeMemory, Description: "block", Cycles: 1}},
		},
		{
			name:     "cycle count overflow",
			body:     "P(run)99999999999999999999999; P(run)1; E",
			wantKind: DiagInvalidCycles,
			want:     []sim.Instruction{{Code: sim.CodeProcess, Description: "run", Cycles: 1}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := mustParse(t, banner+tc.body)

			require.Len(t, res.Diagnostics, 1, "diagnostics: %v", res.Diagnostics)
			assert.Equal(t, tc.wantKind, res.Diagnostics[0].Kind)
			assert.Equal(t, tc.want, res.Instructions)
			assert.True(t, res.Ended)
		})
	}
}

func TestParse_InvalidCode_DiscardsRemainder(t *testing.T) {
	// GIVEN a bad code between two valid entries
	res := mustParse(t, banner+"P(run)1; X(run)2; P(run)3; E")

	// THEN only the entry before it survives and the diagnostic is fatal
	assert.Equal(t, []sim.Instruction{{Code: sim.CodeProcess, Description: "run", Cycles: 1}}, res.Instructions)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, DiagInvalidCode, res.Diagnostics[0].Kind)
	assert.True(t, res.Diagnostics[0].Kind.Fatal())
	assert.False(t, res.Ended)
}

func TestParse_EndMarker_DiscardsTrailingContent(t *testing.T) {
	res := mustParse(t, banner+"P(run)1 E P(run)2 garbage (((")

	assert.Len(t, res.Instructions, 1)
	assert.Empty(t, res.Diagnostics)
}

func TestParse_CountMatchesValidEntriesBeforeEnd(t *testing.T) {
	// GIVEN three valid entries, two malformed ones and content after E
	body := "A(start)0; P(run)3; M(alloc)2; I(hard drive)-1; A(end)0; E; P(run)9"

	res := mustParse(t, banner+body)

	assert.Len(t, res.Instructions, 3)
	assert.Len(t, res.Diagnostics, 2)
}

func TestParse_DeviceValidation_UsesCostTable(t *testing.T) {
	// GIVEN a table without a printer entry
	costs := sim.MustCostTable(sim.CostEntry{Name: "Hard drive", MsPerCycle: 15})

	res, err := Parse(banner+"O(printer)2; O(hard drive)2; E", costs)
	require.NoError(t, err)

	assert.Equal(t, []sim.Instruction{{Code: sim.CodeOutput, Description: "hard drive", Cycles: 2}}, res.Instructions)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, DiagTypo, res.Diagnostics[0].Kind)
}

func TestParse_BannerOnly_NoInstructions(t *testing.T) {
	res := mustParse(t, "Start Program Meta-Data Code:")

	assert.Empty(t, res.Instructions)
	assert.Empty(t, res.Diagnostics)
}

func TestParse_EmptyScript_ReturnsError(t *testing.T) {
	_, err := Parse("  \n\t", testCosts())

	assert.True(t, errors.Is(err, ErrEmptyScript))
}

func TestParse_DiagnosticPosition(t *testing.T) {
	res := mustParse(t, banner+"P(run)1;\n  S(begin)0; E")

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, 3, d.Line)
	assert.Equal(t, 3, d.Col)
	assert.Contains(t, d.String(), "line 3:3")
	assert.Contains(t, d.String(), `"begin"`)
}

func TestParseFile_ReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mdf")
	require.NoError(t, os.WriteFile(path, []byte(banner+"A(start)0; A(end)0; E\n"), 0644))

	res, err := ParseFile(path, testCosts())

	require.NoError(t, err)
	assert.Len(t, res.Instructions, 2)
}

func TestParseFile_MissingFile_ReturnsError(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.mdf"), testCosts())

	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseFile_EmptyFile_ReturnsEmptyScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mdf")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := ParseFile(path, testCosts())

	assert.True(t, errors.Is(err, ErrEmptyScript))
}
