package ecs

import (
	"github.com/phanxgames/salinity"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for salinity interaction
// events. Subscribe to it in ECS systems to receive pointer and drag events.
var InteractionEventType = events.NewEventType[salinity.InteractionEvent]()

// NodeData links an entity back to its scene node.
type NodeData struct {
	Node *salinity.Node
}

// NodeComponent stores the scene node of a bound entity.
var NodeComponent = donburi.NewComponentType[NodeData]()

// Bind creates an entity for n and sets n.EntityID to the entity's id.
func Bind(world donburi.World, n *salinity.Node) donburi.Entity {
	e := world.Create(NodeComponent)
	NodeComponent.SetValue(world.Entry(e), NodeData{Node: n})
	n.EntityID = uint32(e.Id())
	return e
}

// NodeOf returns the node bound to entry, or nil.
func NodeOf(entry *donburi.Entry) *salinity.Node {
	if entry == nil || !entry.HasComponent(NodeComponent) {
		return nil
	}
	return NodeComponent.Get(entry).Node
}

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) salinity.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event salinity.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
