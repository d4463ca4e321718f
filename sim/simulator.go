// sim/simulator.go
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/procsim/procsim/sim/memory"
	"github.com/procsim/procsim/sim/trace"
)

// ErrTimerLaunch wraps failures to launch or join an I/O timer task.
var ErrTimerLaunch = errors.New("timer task failed")

// ErrNoDeviceUnits is returned when a device operation needs a unit but none are configured.
var ErrNoDeviceUnits = errors.New("no device units configured")

// AllocatorFunc advances the allocation cursor by one block.
type AllocatorFunc func(cursor, blockSize, systemSize uint32) uint32

// Resources are the configured device and memory quantities.
type Resources struct {
	HardDrives   int
	Printers     int
	SystemMemory uint32 // kbytes
	BlockSize    uint32 // kbytes
}

// Session is the mutable state of one simulation run. A fresh Session is
// created by every Run, so repeated runs are independent.
type Session struct {
	ID    uuid.UUID
	Clock SimClock
	State ProcessState
	// ProcessID is the 1-based application counter, incremented on A(start).
	ProcessID     int
	NextHardDrive int
	NextPrinter   int
	Cursor        uint32
	Events        []Event
}

func newSession() *Session {
	return &Session{
		ID:    uuid.New(),
		Clock: NewSimClock(),
		State: StateNone,
	}
}

// Simulator interprets an instruction stream against a cost table, performing
// real timed waits and emitting a timestamped event log.
type Simulator struct {
	Costs     *CostTable
	Resources Resources
	Allocate  AllocatorFunc
	// Trace collects transitions when non-nil and enabled.
	Trace *trace.SimulationTrace

	out io.Writer
	// gate bounds the number of I/O timer tasks in flight.
	gate *semaphore.Weighted
}

// NewSimulator creates a Simulator writing event lines to out (may be nil).
func NewSimulator(costs *CostTable, res Resources, out io.Writer) *Simulator {
	const ioSlots = 1
	return &Simulator{
		Costs:     costs,
		Resources: res,
		Allocate:  memory.Allocate,
		out:       out,
		gate:      semaphore.NewWeighted(ioSlots),
	}
}

// Run executes instructions in order and returns the finished session.
// On error the partial session is returned alongside it.
func (sim *Simulator) Run(ctx context.Context, instructions []Instruction) (*Session, error) {
	s := newSession()
	log := logrus.WithField("session", s.ID.String())
	log.Infof("Starting simulation of %d instructions with %d cost entries", len(instructions), sim.Costs.Len())

	if err := sim.emit(s, "Simulator program starting"); err != nil {
		return s, err
	}
	for i, in := range instructions {
		action := actionFor(i, in)
		if action == nil {
			log.Debugf("[%03d] %s has no runtime effect", i, in)
			continue
		}
		log.Debugf("[%03d] Executing %T for %s", i, action, in)
		if err := action.Execute(ctx, sim, s); err != nil {
			return s, fmt.Errorf("instruction %d %s: %w", i, in, err)
		}
	}
	log.Infof("Simulation ended in state %s after %s", s.State, FormatSeconds(s.Clock.Seconds()))
	return s, nil
}

// emit timestamps a message, records it on the session and writes it out.
func (sim *Simulator) emit(s *Session, format string, args ...any) error {
	ev := Event{Elapsed: s.Clock.Seconds(), Message: fmt.Sprintf(format, args...)}
	s.Events = append(s.Events, ev)
	if sim.out == nil {
		return nil
	}
	if _, err := fmt.Fprintln(sim.out, ev.String()); err != nil {
		return fmt.Errorf("writing event log: %w", err)
	}
	return nil
}

// transition moves the process-state register and records it when tracing.
func (sim *Simulator) transition(s *Session, idx int, in Instruction, to ProcessState) {
	if sim.Trace != nil && sim.Trace.Config.Enabled() {
		sim.Trace.RecordTransition(trace.TransitionRecord{
			Index:       idx,
			Instruction: in.String(),
			From:        s.State.String(),
			To:          to.String(),
			Elapsed:     s.Clock.Seconds(),
		})
	}
	s.State = to
}

// waitFor blocks the controlling flow for the simulated duration of cycles on entry.
func (sim *Simulator) waitFor(s *Session, entry CostEntry, cycles int) {
	target := deadline(s.Clock.Elapsed(), SecondsToDuration(entry.Duration(cycles)))
	WaitUntilElapsed(s.Clock.Origin(), target)
}

// runTimer launches the wait for entry on a TimerTask behind the gate, calls
// launched once the task is running, and joins it before returning.
func (sim *Simulator) runTimer(ctx context.Context, s *Session, entry CostEntry, cycles int, launched func()) error {
	if err := sim.gate.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: acquiring I/O gate: %v", ErrTimerLaunch, err)
	}
	defer sim.gate.Release(1)

	target := deadline(s.Clock.Elapsed(), SecondsToDuration(entry.Duration(cycles)))
	task := StartTimer(s.Clock.Origin(), target)
	launched()
	finished, err := task.Wait(ctx)
	if err != nil {
		return fmt.Errorf("%w: joining %s timer: %v", ErrTimerLaunch, entry.Name, err)
	}
	logrus.Debugf("%s timer finished at %s (target %s)", entry.Name, finished, target)
	return nil
}

// nextUnit returns the current round-robin unit and advances the counter modulo quantity.
func nextUnit(counter *int, quantity int, device string) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: %s quantity is %d", ErrNoDeviceUnits, device, quantity)
	}
	unit := *counter
	*counter = (*counter + 1) % quantity
	return unit, nil
}
