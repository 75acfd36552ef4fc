package ecs_test

import (
	"fmt"

	"github.com/plus3/sparks/ecs"
)

// ExampleView looks up a single entity through a view. Get returns nil when
// the entity is gone or lacks a required component.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	storage := ecs.NewStorage(registry)

	spark := storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: -1, DY: 2})
	marker := storage.Spawn(Position{X: 0, Y: 0})

	kinematic := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	if item := kinematic.Get(spark); item != nil {
		fmt.Printf("spark at (%.0f, %.0f) moving (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, item.Velocity.DX, item.Velocity.DY)
	}
	fmt.Println("marker matches:", kinematic.Get(marker) != nil)

	storage.Despawn(spark)
	fmt.Println("spark after despawn:", kinematic.Get(spark) != nil)

	// Output:
	// spark at (3, 4) moving (-1, 2)
	// marker matches: false
	// spark after despawn: false
}

// ExampleView_All integrates every moving entity once. Archetypes are visited
// in the order they were created, entities in slot order.
func ExampleView_All() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 1})
	storage.Spawn(Position{X: 5, Y: 5}, Velocity{DX: 0, DY: -2}, Name{Value: "named"})
	storage.Spawn(Position{X: 9, Y: 9})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	seen := make(map[ecs.EntityId]bool)
	for id, item := range view.All() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
		seen[id] = true
		fmt.Printf("moved to (%.0f, %.0f)\n", item.Position.X, item.Position.Y)
	}
	fmt.Println("distinct ids:", len(seen), "matched:", view.Count())

	// Output:
	// moved to (1, 1)
	// moved to (5, 3)
	// distinct ids: 2 matched: 2
}

// ExampleView_optional renders a label only for entities that carry one.
func ExampleView_optional() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Name](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 1, Y: 2}, Name{Value: "origin marker"})
	storage.Spawn(Position{X: 3, Y: 4})

	view := ecs.NewView[struct {
		*Position
		Label *Name `ecs:"optional"`
	}](storage)

	for item := range view.Iter() {
		label := "(unlabelled)"
		if item.Label != nil {
			label = item.Label.Value
		}
		fmt.Printf("(%.0f, %.0f) %s\n", item.Position.X, item.Position.Y, label)
	}

	// Output:
	// (1, 2) origin marker
	// (3, 4) (unlabelled)
}
