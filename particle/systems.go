package particle

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/sparks/asset"
	"github.com/plus3/sparks/ecs"
)

// Source is the random number source used for spawn velocities.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float32() float32
}

// UpdateSystem moves every particle by the frame delta and despawns the ones
// whose lifetime has run out.
type UpdateSystem struct {
	Particles ecs.Query[struct {
		Id ecs.EntityId
		*Transform
		*Particle
	}]
	Counters ecs.Singleton[Counters]
}

func (s *UpdateSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	counters := s.Counters.Get()

	for item := range s.Particles.Iter() {
		if !Step(item.Transform, item.Particle, dt) {
			continue
		}
		frame.Commands.Despawn(item.Id)
		if counters != nil {
			counters.Expired++
		}
	}
}

// SpawnSystem emits one particle per invocation from SpawnOrigin in a
// uniformly random direction in the XY plane.
type SpawnSystem struct {
	Settings Settings
	Rand     Source

	Visuals  ecs.Singleton[Visuals]
	Counters ecs.Singleton[Counters]
}

// Velocity returns the spawn velocity for an angle in radians.
func (s *SpawnSystem) Velocity(angle float64) mgl32.Vec3 {
	dist := float64(s.Settings.SpawnDistance)
	return mgl32.Vec3{
		float32(dist * math.Cos(angle)),
		float32(dist * math.Sin(angle)),
		0,
	}
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	angle := float64(s.Rand.Float32()) * 2 * math.Pi

	var sprite Sprite
	if visuals := s.Visuals.Get(); visuals != nil {
		sprite = Sprite{Mesh: visuals.Circle, Material: visuals.Spawned}
	}

	frame.Commands.Spawn(
		Transform{Translation: SpawnOrigin},
		s.Settings.New(s.Velocity(angle)),
		sprite,
	)

	if counters := s.Counters.Get(); counters != nil {
		counters.Spawned++
	}
}

// SetupSystem allocates the shared mesh and materials, spawns the camera and
// the initial batch of particles.
type SetupSystem struct {
	Settings Settings
	Rand     Source

	Meshes    ecs.Singleton[asset.Assets[asset.Mesh]]
	Materials ecs.Singleton[asset.Assets[asset.ColorMaterial]]
	Visuals   ecs.Singleton[Visuals]
	Counters  ecs.Singleton[Counters]
}

func (s *SetupSystem) Execute(frame *ecs.UpdateFrame) {
	visuals := s.Visuals.Get()
	*visuals = Visuals{
		Circle:  s.Meshes.Get().Add(asset.Circle(s.Settings.Radius)),
		Initial: s.Materials.Get().Add(asset.ColorMaterial{Color: asset.Purple}),
		Spawned: s.Materials.Get().Add(asset.ColorMaterial{Color: asset.Red}),
	}

	frame.Commands.Spawn(Camera2D{Scale: 1}, Transform{})

	sprite := Sprite{Mesh: visuals.Circle, Material: visuals.Initial}
	for range s.Settings.InitialCount {
		velocity := mgl32.Vec3{
			s.Rand.Float32() * s.Settings.InitialSpeed,
			s.Rand.Float32() * s.Settings.InitialSpeed,
			0,
		}
		frame.Commands.Spawn(Transform{Translation: SpawnOrigin}, s.Settings.New(velocity), sprite)
	}

	s.Counters.Get().Spawned += uint64(s.Settings.InitialCount)
}
