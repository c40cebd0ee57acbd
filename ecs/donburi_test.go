package ecs

import (
	"testing"

	"github.com/phanxgames/salinity"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []salinity.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e salinity.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(salinity.InteractionEvent{
		Type:     salinity.EventButtonDown,
		EntityID: 42,
		GlobalX:  100,
		GlobalY:  200,
		Button:   salinity.MouseButtonLeft,
	})
	store.EmitEvent(salinity.InteractionEvent{
		Type:   salinity.EventDrag,
		DeltaX: 3,
		DeltaY: -4,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != salinity.EventButtonDown || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.GlobalX != 100 || e0.GlobalY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.GlobalX, e0.GlobalY)
	}
	e1 := received[1]
	if e1.Type != salinity.EventDrag || e1.DeltaX != 3 || e1.DeltaY != -4 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e salinity.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e salinity.InteractionEvent) {
		count2++
	})

	store.EmitEvent(salinity.InteractionEvent{Type: salinity.EventDoubleClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestBind(t *testing.T) {
	world := donburi.NewWorld()
	box := salinity.NewBoxNode("box")

	e := Bind(world, box)
	if box.EntityID == 0 {
		t.Fatal("EntityID not set")
	}
	if box.EntityID != uint32(e.Id()) {
		t.Errorf("EntityID = %d, want %d", box.EntityID, e.Id())
	}
	if got := NodeOf(world.Entry(e)); got != box {
		t.Errorf("NodeOf = %v, want box", got)
	}
	if NodeOf(nil) != nil {
		t.Error("NodeOf(nil) should be nil")
	}
}
