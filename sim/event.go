package sim

// Event is one timestamped line of the simulation log.
type Event struct {
	Elapsed float64 // seconds since the session's SimClock origin
	Message string
}

// String renders the line as "<elapsed> - <message>".
func (e Event) String() string {
	return FormatSeconds(e.Elapsed) + " - " + e.Message
}

// Messages strips timestamps, leaving the deterministic part of a log.
func Messages(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Message
	}
	return out
}
