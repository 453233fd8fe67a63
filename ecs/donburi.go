// Package ecs provides ECS adapters for grove.
package ecs

import (
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for grove interaction events.
// Subscribe to this in your ECS systems to receive input, hover and drag
// signals.
var InteractionEventType = events.NewEventType[grove.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) grove.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event grove.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
