package ecs

import (
	"github.com/phanxgames/toasters"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FieldEventType is the Donburi event type for respawn and deflection
// events. Events are queued until ProcessEvents runs.
var FieldEventType = events.NewEventType[toasters.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns an EventSink that publishes every field event to
// FieldEventType in world.
func NewDonburiSink(world donburi.World) toasters.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event toasters.Event) {
	FieldEventType.Publish(s.world, event)
}

// TallyData counts processed field events.
type TallyData struct {
	ToasterRespawns int
	ToastRespawns   int
	Deflections     int
}

// Tally is the component NewTally attaches.
var Tally = donburi.NewComponentType[TallyData]()

// NewTally creates an entity holding a Tally and subscribes it to
// FieldEventType. Counts change as events are processed.
func NewTally(world donburi.World) donburi.Entity {
	e := world.Create(Tally)
	FieldEventType.Subscribe(world, func(w donburi.World, ev toasters.Event) {
		if !w.Valid(e) {
			return
		}
		t := Tally.Get(w.Entry(e))
		switch ev.Type {
		case toasters.EventDeflect:
			t.Deflections++
		case toasters.EventRespawn:
			if ev.Kind == toasters.KindToast {
				t.ToastRespawns++
			} else {
				t.ToasterRespawns++
			}
		}
	})
	return e
}
