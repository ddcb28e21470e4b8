package taxonomy

// Audit event kinds.
const (
	EventLookup   = "lookup"
	EventRegister = "register"
)

// Event records one registry operation for debugging.
type Event struct {
	Kind   string
	Input  string
	Result string
}

// AuditSink receives registry events. Implementations must be cheap; they
// are called on every lookup while auditing is enabled.
type AuditSink interface {
	Record(Event)
}

// MemorySink keeps the most recent events in memory, bounded so a
// long-running process cannot grow it without limit.
type MemorySink struct {
	max    int
	events []Event
}

// NewMemorySink creates a sink holding at most max events; older events
// are discarded first. max <= 0 means a default of 1024.
func NewMemorySink(max int) *MemorySink {
	if max <= 0 {
		max = 1024
	}
	return &MemorySink{max: max}
}

func (s *MemorySink) Record(ev Event) {
	if len(s.events) >= s.max {
		s.events = s.events[1:]
	}
	s.events = append(s.events, ev)
}

// Events returns a copy of the recorded events, oldest first.
func (s *MemorySink) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Clear drops all recorded events.
func (s *MemorySink) Clear() {
	s.events = s.events[:0]
}
