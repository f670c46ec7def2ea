package engine

// Event is one message in the log.
type Event struct {
	Seq     int64
	Kind    EventKind
	Message string
}

// EventKind classifies log messages.
type EventKind string

const (
	EventBuilt       EventKind = "built"
	EventResearched  EventKind = "researched"
	EventUpgraded    EventKind = "upgraded"
	EventAchievement EventKind = "achievement"
	EventPrestige    EventKind = "prestige"
	EventHazard      EventKind = "hazard"
	EventLoaded      EventKind = "loaded"
)

// eventLog is a bounded FIFO. Pushing onto a full log evicts the oldest
// entry.
type eventLog struct {
	buf   []Event
	head  int
	count int
}

func newEventLog(capacity int) *eventLog {
	if capacity < 1 {
		capacity = 1
	}
	return &eventLog{buf: make([]Event, capacity)}
}

// Push appends e, evicting the head if the log is full. It reports whether
// an entry was evicted.
func (l *eventLog) Push(e Event) bool {
	tail := (l.head + l.count) % len(l.buf)
	l.buf[tail] = e
	if l.count == len(l.buf) {
		l.head = (l.head + 1) % len(l.buf)
		return true
	}
	l.count++
	return false
}

// TryPop removes and returns the head.
// Returns (Event{}, false) if the log is empty.
func (l *eventLog) TryPop() (Event, bool) {
	if l.count == 0 {
		return Event{}, false
	}
	e := l.buf[l.head]
	l.buf[l.head] = Event{}
	l.head = (l.head + 1) % len(l.buf)
	l.count--
	return e, true
}

// Len returns the number of pending events.
func (l *eventLog) Len() int {
	return l.count
}

// Cap returns the capacity.
func (l *eventLog) Cap() int {
	return len(l.buf)
}
