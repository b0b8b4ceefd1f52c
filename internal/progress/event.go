// Package progress carries status events from background work to the UI.
package progress

import "time"

// Status indicates the state of a reported operation.
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is one status update.
type Event struct {
	Message   string
	Status    Status
	Timestamp time.Time
	Metadata  map[string]string // optional: category, operation
}

// ChanEmitter emits events to a channel the UI drains.
// It satisfies dashboard.StatusReporter and dashboard.ErrorLogger.
type ChanEmitter struct {
	Ch  chan<- Event
	Now func() time.Time
}

// Emit sends the event to the channel (non-blocking; drops if full).
func (e *ChanEmitter) Emit(ev Event) {
	if ev.Timestamp.IsZero() {
		if e.Now != nil {
			ev.Timestamp = e.Now()
		} else {
			ev.Timestamp = time.Now()
		}
	}
	select {
	case e.Ch <- ev:
	default:
		// Channel full; a dropped status line is preferable to blocking a load
	}
}

// StartStatus emits a running event.
func (e *ChanEmitter) StartStatus(msg string) {
	e.Emit(Event{Message: msg, Status: StatusRunning})
}

// EndStatus emits a done event.
func (e *ChanEmitter) EndStatus(msg string) {
	e.Emit(Event{Message: msg, Status: StatusDone})
}

// LogError emits an error event labelled with category and operation.
func (e *ChanEmitter) LogError(category, operation string, err error) {
	e.Emit(Event{
		Message:  operation + ": " + err.Error(),
		Status:   StatusError,
		Metadata: map[string]string{"category": category, "operation": operation},
	})
}
