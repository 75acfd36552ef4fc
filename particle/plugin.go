// Package particle implements the particle effect: a batch of particles
// spawned at startup, one more emitted on every fixed tick, and a per-frame
// integrator that moves them and expires them after their lifetime.
package particle

import (
	"github.com/plus3/sparks/asset"
	"github.com/plus3/sparks/ecs"
)

// Plugin wires the particle systems into a scheduler.
type Plugin struct {
	Settings Settings
	Rand     Source
}

// Build registers the particle components, creates the asset stores and
// counters, and adds SetupSystem to Startup, SpawnSystem to FixedUpdate and
// UpdateSystem to Update.
func (p Plugin) Build(scheduler *ecs.Scheduler) {
	storage := scheduler.Storage()
	Register(storage.Registry())

	ecs.NewSingleton(storage, asset.NewAssets[asset.Mesh]())
	ecs.NewSingleton(storage, asset.NewAssets[asset.ColorMaterial]())
	ecs.NewSingleton[Visuals](storage)
	ecs.NewSingleton[Counters](storage)

	scheduler.AddSystem(ecs.Startup, &SetupSystem{Settings: p.Settings, Rand: p.Rand})
	scheduler.AddSystem(ecs.FixedUpdate, &SpawnSystem{Settings: p.Settings, Rand: p.Rand})
	scheduler.AddSystem(ecs.Update, &UpdateSystem{})
}
