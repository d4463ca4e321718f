package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/procsim/procsim/sim/trace"
)

// Action is the runtime behavior of one instruction.
// Execute advances the session and emits the instruction's events.
type Action interface {
	Execute(ctx context.Context, sim *Simulator, s *Session) error
}

// actionFor maps an instruction to its Action. S entries only bracket the
// script and have no runtime effect, so they map to nil.
func actionFor(idx int, in Instruction) Action {
	switch in.Code {
	case CodeApp:
		return &AppAction{idx: idx, in: in}
	case CodeProcess:
		return &ProcessAction{idx: idx, in: in}
	case CodeMemory:
		return &MemoryAction{idx: idx, in: in}
	case CodeInput, CodeOutput:
		return &DeviceAction{idx: idx, in: in}
	}
	return nil
}

// AppAction starts or removes the simulated process.
type AppAction struct {
	idx int
	in  Instruction
}

// Execute logs the OS-side lifecycle lines.
func (a *AppAction) Execute(_ context.Context, sim *Simulator, s *Session) error {
	switch a.in.Description {
	case "start":
		sim.transition(s, a.idx, a.in, StateStart)
		s.ProcessID++
		if err := sim.emit(s, "OS: preparing process %d", s.ProcessID); err != nil {
			return err
		}
		return sim.emit(s, "OS: starting process %d", s.ProcessID)
	case "end":
		sim.transition(s, a.idx, a.in, StateExit)
		return sim.emit(s, "OS: removing process %d", s.ProcessID)
	}
	return fmt.Errorf("unknown application action %q", a.in.Description)
}

// ProcessAction is a CPU burst timed against the Processor cost.
type ProcessAction struct {
	idx int
	in  Instruction
}

// Execute waits synchronously, holding the process in Waiting, then restores the prior state.
func (a *ProcessAction) Execute(_ context.Context, sim *Simulator, s *Session) error {
	entry, ok := sim.Costs.Lookup(ComponentProcessor)
	if !ok {
		logrus.Warnf("no %s cycle time configured; skipping %s", ComponentProcessor, a.in)
		return nil
	}
	prev := s.State
	sim.transition(s, a.idx, a.in, StateWaiting)
	if err := sim.emit(s, "Process %d: start processing action", s.ProcessID); err != nil {
		return err
	}
	sim.waitFor(s, entry, a.in.Cycles)
	if err := sim.emit(s, "Process %d: end processing action", s.ProcessID); err != nil {
		return err
	}
	sim.transition(s, a.idx, a.in, prev)
	return nil
}

// MemoryAction allocates or blocks memory, timed against the Memory cost.
type MemoryAction struct {
	idx int
	in  Instruction
}

// Execute waits synchronously between its two event lines.
func (a *MemoryAction) Execute(_ context.Context, sim *Simulator, s *Session) error {
	entry, ok := sim.Costs.Lookup(ComponentMemory)
	if !ok {
		logrus.Warnf("no %s cycle time configured; skipping %s", ComponentMemory, a.in)
		return nil
	}
	switch a.in.Description {
	case "allocate":
		sim.transition(s, a.idx, a.in, StateRunning)
		if err := sim.emit(s, "Process %d: allocating memory", s.ProcessID); err != nil {
			return err
		}
		sim.waitFor(s, entry, a.in.Cycles)
		address := s.Cursor
		s.Cursor = sim.Allocate(s.Cursor, sim.Resources.BlockSize, sim.Resources.SystemMemory)
		return sim.emit(s, "Process %d: memory allocated at 0x%08x", s.ProcessID, address)
	case "block":
		sim.transition(s, a.idx, a.in, StateReady)
		if err := sim.emit(s, "Process %d: start memory blocking", s.ProcessID); err != nil {
			return err
		}
		sim.waitFor(s, entry, a.in.Cycles)
		return sim.emit(s, "Process %d: end memory blocking", s.ProcessID)
	}
	return fmt.Errorf("unknown memory action %q", a.in.Description)
}

// DeviceAction is an input or output operation run on a timer task.
type DeviceAction struct {
	idx int
	in  Instruction
}

// Execute fires once per cost entry matching the description.
func (a *DeviceAction) Execute(ctx context.Context, sim *Simulator, s *Session) error {
	matches := sim.Costs.MatchDevice(a.in.Description)
	if len(matches) == 0 {
		logrus.Warnf("no cycle time matches device %q; skipping %s", a.in.Description, a.in)
		return nil
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		logrus.Warnf("device %q is ambiguous, matches %q; running once per match", a.in.Description, names)
	}
	direction := "output"
	if a.in.Code == CodeInput {
		direction = "input"
	}
	for _, entry := range matches {
		sim.transition(s, a.idx, a.in, StateWaiting)
		if err := sim.emit(s, "Process %d: start %s %s", s.ProcessID, a.in.Description, direction); err != nil {
			return err
		}
		launched := func() { sim.transition(s, a.idx, a.in, StateReady) }
		if err := sim.runTimer(ctx, s, entry, a.in.Cycles, launched); err != nil {
			return err
		}
		suffix, err := a.unitSuffix(sim, s)
		if err != nil {
			return err
		}
		if err := sim.emit(s, "Process %d: end %s %s%s", s.ProcessID, a.in.Description, direction, suffix); err != nil {
			return err
		}
	}
	return nil
}

// unitSuffix picks the next hard drive or printer unit for the end line.
func (a *DeviceAction) unitSuffix(sim *Simulator, s *Session) (string, error) {
	var (
		label string
		unit  int
		err   error
	)
	switch a.in.Description {
	case DeviceHardDrive:
		label = "HDD"
		unit, err = nextUnit(&s.NextHardDrive, sim.Resources.HardDrives, DeviceHardDrive)
	case DevicePrinter:
		label = "PRNTR"
		unit, err = nextUnit(&s.NextPrinter, sim.Resources.Printers, DevicePrinter)
	default:
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if sim.Trace != nil && sim.Trace.Config.Enabled() {
		sim.Trace.RecordDevice(trace.DeviceRecord{Index: a.idx, Device: label, Unit: unit})
	}
	return fmt.Sprintf(" on %s %d", label, unit), nil
}
