// Package ecs provides ECS adapters for grove's interaction signals.
//
// The primary adapter is [NewDonburiStore], which bridges target input
// signals, hover changes and drag lifecycle signals into a [Donburi] world as
// typed events. Subscribe to [InteractionEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	dispatcher.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
