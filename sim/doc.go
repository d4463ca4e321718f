// Package sim provides the process-execution simulator: it runs a parsed
// meta-data instruction stream against a cost table, performing real timed
// waits and emitting one timestamped event line per step.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - instruction.go: Instruction codes (S, A, P, M, I, O, E) and notation
//   - action.go: what each code does to the process state and the event log
//   - simulator.go: the run loop, the Session register file and the I/O gate
//
// # Architecture
//
// The sim package defines the engine and its bridge types; supporting code
// lives in sub-packages:
//   - sim/parser/: tokenizer and validator for meta-data scripts
//   - sim/config/: legacy and YAML configuration loading
//   - sim/logsink/: console, file or dual event destination
//   - sim/memory/: block allocator
//   - sim/trace/: state-transition trace recording and summary
//
// # Timing
//
// Elapsed times are measured from a SimClock origin captured when a run
// starts. Waits sleep to within a millisecond of their deadline and then spin,
// so an event's timestamp is never earlier than its requested wait.
// I/O waits run as TimerTask goroutines admitted one at a time through a
// weighted semaphore and joined before the run continues.
package sim
