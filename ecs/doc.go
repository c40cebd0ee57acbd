// Package ecs bridges salinity interaction events into a [Donburi] world.
//
// [NewDonburiStore] implements salinity.EntityStore: every interaction event
// on a node with a non-zero EntityID is published to [InteractionEventType].
// [Bind] creates an entity carrying a [NodeComponent] and stamps the node with
// the entity's id so its events reach the world.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	renderer.SetEntityStore(store)
//	ecs.Bind(world, box)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
