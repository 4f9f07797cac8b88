package toasters

// EventSink is the interface for optional ECS integration. When set on a
// Field, respawn and deflection events are forwarded to it synchronously
// from Advance.
type EventSink interface {
	EmitEvent(event Event)
}

// EventType identifies a kind of field event.
type EventType uint8

const (
	EventRespawn EventType = iota // an entity left the screen and was moved back to its slot
	EventDeflect                  // a toaster's move was redirected by another toaster
)

func (t EventType) String() string {
	switch t {
	case EventRespawn:
		return "respawn"
	case EventDeflect:
		return "deflect"
	default:
		return "unknown"
	}
}

// Event describes one respawn or deflection.
type Event struct {
	Type  EventType
	Kind  Kind
	Index int // pool index of the entity
	Slot  int
	X, Y  int // committed position
	Tick  uint8
	// Blocker is the pool index of the toaster that caused an EventDeflect,
	// or -1.
	Blocker int
}

func (f *Field) emit(e Event) {
	switch e.Type {
	case EventRespawn:
		f.stats.respawns++
	case EventDeflect:
		f.stats.deflections++
	}
	if f.sink == nil {
		return
	}
	e.Tick = f.counter
	f.sink.EmitEvent(e)
}
