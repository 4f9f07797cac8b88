package ecs

import (
	"math/rand/v2"
	"testing"

	"github.com/phanxgames/toasters"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink toasters.EventSink = NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []toasters.Event
	FieldEventType.Subscribe(world, func(w donburi.World, e toasters.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(toasters.Event{Type: toasters.EventRespawn, Kind: toasters.KindToast, Index: 3, Slot: 7, X: 100, Y: -64})
	sink.EmitEvent(toasters.Event{Type: toasters.EventDeflect, Kind: toasters.KindToaster, Index: 1, Blocker: 0})

	if len(received) != 0 {
		t.Fatalf("events delivered before processing: %d", len(received))
	}
	FieldEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("got %d events, want 2", len(received))
	}
	if e := received[0]; e.Type != toasters.EventRespawn || e.Slot != 7 || e.X != 100 || e.Y != -64 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != toasters.EventDeflect || e.Index != 1 || e.Blocker != 0 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	FieldEventType.Subscribe(world, func(w donburi.World, e toasters.Event) { count1++ })
	FieldEventType.Subscribe(world, func(w donburi.World, e toasters.Event) { count2++ })

	sink.EmitEvent(toasters.Event{Type: toasters.EventRespawn})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("got %d and %d calls, want 1 each", count1, count2)
	}
}

func TestTally_CountsByType(t *testing.T) {
	world := donburi.NewWorld()
	e := NewTally(world)
	sink := NewDonburiSink(world)

	sink.EmitEvent(toasters.Event{Type: toasters.EventRespawn, Kind: toasters.KindToaster})
	sink.EmitEvent(toasters.Event{Type: toasters.EventRespawn, Kind: toasters.KindToast})
	sink.EmitEvent(toasters.Event{Type: toasters.EventRespawn, Kind: toasters.KindToast})
	sink.EmitEvent(toasters.Event{Type: toasters.EventDeflect, Kind: toasters.KindToaster})
	FieldEventType.ProcessEvents(world)

	got := *Tally.Get(world.Entry(e))
	want := TallyData{ToasterRespawns: 1, ToastRespawns: 2, Deflections: 1}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTally_FromField(t *testing.T) {
	world := donburi.NewWorld()
	e := NewTally(world)

	f, err := toasters.NewField(toasters.FieldConfig{
		Width: 800, Height: 600, Toasters: 10, Toast: 6,
	}, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	f.SetEventSink(NewDonburiSink(world))

	// Every tick moves each entity at least one pixel left or down, and
	// no spawn point is more than 3*600+800+64 such pixels from leaving.
	for range 3000 {
		f.Advance()
	}
	FieldEventType.ProcessEvents(world)

	got := Tally.Get(world.Entry(e))
	if got.ToasterRespawns < 10 {
		t.Errorf("ToasterRespawns = %d, want >= 10", got.ToasterRespawns)
	}
	if got.ToastRespawns < 6 {
		t.Errorf("ToastRespawns = %d, want >= 6", got.ToastRespawns)
	}
}
