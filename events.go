package patience

// Event names emitted by a session. A definition may add its own sample name.
const (
	EventDeal   = "deal"
	EventMove   = "move"
	EventDrop   = "drop"
	EventFill   = "fill"
	EventRedeal = "redeal"
	EventWin    = "win"
	EventAbort  = "abort"
)

// Event is a named trigger for sound or UI collaborators
type Event struct {
	Name  string `json:"name"`
	Stack int    `json:"stack"`
}

// EventSink receives events. Emit must not block.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to an EventSink
type EventSinkFunc func(Event)

func (f EventSinkFunc) Emit(e Event) {
	f(e)
}

type discardSink struct{}

func (discardSink) Emit(Event) {}
