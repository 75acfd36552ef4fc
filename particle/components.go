package particle

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/sparks/asset"
	"github.com/plus3/sparks/ecs"
)

// Transform places an entity in world space.
type Transform struct {
	Translation mgl32.Vec3
}

// Particle is the simulation state of one particle.
type Particle struct {
	Velocity mgl32.Vec3
	// TTL is the remaining lifetime in seconds.
	TTL float32
	// Gravity is subtracted from Velocity.Y every second.
	Gravity float32
	// Damping scales Velocity by (1 - Damping*dt) every step.
	Damping float32
}

// Sprite is the visual representation of a particle.
type Sprite struct {
	Mesh     asset.Handle[asset.Mesh]
	Material asset.Handle[asset.ColorMaterial]
}

// Camera2D marks the entity whose Transform is the centre of the view.
type Camera2D struct {
	// Scale is screen pixels per world unit.
	Scale float32
}

// Visuals holds the shared asset handles allocated by SetupSystem.
type Visuals struct {
	Circle  asset.Handle[asset.Mesh]
	Initial asset.Handle[asset.ColorMaterial]
	Spawned asset.Handle[asset.ColorMaterial]
}

// Counters tracks particle totals since startup.
type Counters struct {
	Spawned uint64
	Expired uint64
}

// Live returns how many particles should currently exist.
func (c Counters) Live() uint64 {
	return c.Spawned - c.Expired
}

// Register adds every particle component type to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Particle](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Camera2D](registry)
}
