package ecs_test

import (
	"fmt"

	"github.com/plus3/sparks/ecs"
)

// ExampleQuery shows that a Query is a snapshot taken by Execute. The
// Scheduler executes the queries of a system right before running it;
// standalone queries call Execute themselves.
func ExampleQuery() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 0}, Velocity{DX: 2})
	storage.Spawn(Position{X: 5})

	moving := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)
	moving.Execute()
	fmt.Println("moving:", moving.Len())

	storage.Spawn(Position{X: 7}, Velocity{DY: 1})
	fmt.Println("before Execute:", moving.Len())
	moving.Execute()
	fmt.Println("after Execute:", moving.Len())

	for id, item := range moving.All() {
		item.Position.X += item.Velocity.DX
		fmt.Printf("serial %d now at x=%.0f\n", id.Serial(), item.Position.X)
	}

	// Output:
	// moving: 1
	// before Execute: 1
	// after Execute: 2
	// serial 1 now at x=2
	// serial 2 now at x=7
}
