// Defines the Instruction type produced by the parser and consumed by the Simulator.

package sim

import "fmt"

// Code identifies the kind of operation an Instruction performs.
type Code byte

const (
	CodeStart   Code = 'S' // simulator start/end marker
	CodeApp     Code = 'A' // application (process) start/end
	CodeProcess Code = 'P' // CPU burst
	CodeMemory  Code = 'M' // memory allocate/block
	CodeInput   Code = 'I' // input device operation
	CodeOutput  Code = 'O' // output device operation
	CodeEnd     Code = 'E' // end-of-script marker, never emitted as an Instruction
)

// validCodes lists the codes that open a script entry.
var validCodes = map[Code]bool{
	CodeStart: true, CodeApp: true, CodeProcess: true,
	CodeMemory: true, CodeInput: true, CodeOutput: true,
}

// IsEntryCode reports whether c opens an entry that carries a description and cycle count.
func IsEntryCode(c Code) bool {
	return validCodes[c]
}

func (c Code) String() string {
	return string(rune(c))
}

// IsIO reports whether the code names a device operation.
func (c Code) IsIO() bool {
	return c == CodeInput || c == CodeOutput
}

// Instruction is one parsed script entry. Instructions are immutable once produced.
type Instruction struct {
	Code        Code
	Description string
	Cycles      int
}

// String renders the instruction in script notation, e.g. "P(run)11".
func (in Instruction) String() string {
	return fmt.Sprintf("%s(%s)%d", in.Code, in.Description, in.Cycles)
}
