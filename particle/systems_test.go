package particle_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/sparks/asset"
	"github.com/plus3/sparks/ecs"
	"github.com/plus3/sparks/particle"
	"github.com/stretchr/testify/assert"
)

// sequence replays fixed values in [0, 1).
type sequence struct {
	values []float32
	next   int
}

func (s *sequence) Float32() float32 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func newWorld() (*ecs.Storage, *ecs.Scheduler) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	return storage, ecs.NewScheduler(storage)
}

type particleView = struct {
	Id ecs.EntityId
	*particle.Transform
	*particle.Particle
	Sprite *particle.Sprite `ecs:"optional"`
}

func particles(storage *ecs.Storage) []particleView {
	var out []particleView
	for item := range ecs.NewView[particleView](storage).Iter() {
		out = append(out, item)
	}
	return out
}

func TestUpdateSystemEndToEnd(t *testing.T) {
	storage, scheduler := newWorld()
	particle.Register(storage.Registry())
	counters := ecs.NewSingleton[particle.Counters](storage)
	scheduler.Register(&particle.UpdateSystem{})

	id := storage.Spawn(
		particle.Transform{},
		particle.Particle{Velocity: mgl32.Vec3{10, 0, 0}, TTL: 2},
	)

	scheduler.Once(1)
	transform := ecs.ReadComponent[particle.Transform](storage, id)
	assert.NotNil(t, transform)
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, transform.Translation)
	assert.Equal(t, float32(1), ecs.ReadComponent[particle.Particle](storage, id).TTL)

	scheduler.Once(1)
	assert.False(t, storage.Alive(id))
	assert.Equal(t, 0, storage.Len())
	assert.Equal(t, uint64(1), counters.Get().Expired)
}

func TestUpdateSystemExpiresOnlyDueParticles(t *testing.T) {
	storage, scheduler := newWorld()
	particle.Register(storage.Registry())
	scheduler.Register(&particle.UpdateSystem{})

	short := storage.Spawn(particle.Transform{}, particle.Particle{TTL: 0.5})
	exact := storage.Spawn(particle.Transform{}, particle.Particle{TTL: 1})
	long := storage.Spawn(particle.Transform{}, particle.Particle{TTL: 1.5})
	camera := storage.Spawn(particle.Camera2D{Scale: 1}, particle.Transform{})

	scheduler.Once(1)

	assert.False(t, storage.Alive(short))
	assert.False(t, storage.Alive(exact), "ttl <= dt is removed")
	assert.True(t, storage.Alive(long))
	assert.True(t, storage.Alive(camera), "non-particles are untouched")
	assert.Equal(t, float32(0.5), ecs.ReadComponent[particle.Particle](storage, long).TTL)
}

func TestSpawnSystem(t *testing.T) {
	storage, _ := newWorld()
	particle.Register(storage.Registry())

	source := rand.New(rand.NewPCG(1, 2))
	spawner := &particle.SpawnSystem{Settings: particle.DefaultSettings(), Rand: source}
	spawner.Visuals.Init(storage)
	spawner.Counters.Init(storage)

	const n = 50
	frame := &ecs.UpdateFrame{Commands: &ecs.Commands{}, Storage: storage}
	for range n {
		spawner.Execute(frame)
	}
	assert.Equal(t, 0, storage.Len(), "spawns are deferred")

	frame.Commands.Flush(storage)
	got := particles(storage)
	assert.Len(t, got, n)

	for _, item := range got {
		assert.Equal(t, particle.SpawnOrigin, item.Transform.Translation)
		assert.InDelta(t, 200, item.Particle.Velocity.Len(), 1e-3)
		assert.Zero(t, item.Particle.Velocity.Z())
		assert.Equal(t, float32(2), item.Particle.TTL)
		assert.Equal(t, float32(0.01), item.Particle.Damping)
		assert.Zero(t, item.Particle.Gravity)
	}
}

func TestSpawnSystemVelocity(t *testing.T) {
	spawner := &particle.SpawnSystem{Settings: particle.DefaultSettings()}

	assertVec(t, mgl32.Vec3{200, 0, 0}, spawner.Velocity(0))
	assertVec(t, mgl32.Vec3{0, 200, 0}, spawner.Velocity(math.Pi/2))
	assertVec(t, mgl32.Vec3{-200, 0, 0}, spawner.Velocity(math.Pi))
}

func TestSpawnSystemUsesInjectedSource(t *testing.T) {
	storage, _ := newWorld()
	particle.Register(storage.Registry())

	spawner := &particle.SpawnSystem{
		Settings: particle.DefaultSettings(),
		Rand:     &sequence{values: []float32{0, 0.25, 0.5}},
	}
	frame := &ecs.UpdateFrame{Commands: &ecs.Commands{}, Storage: storage}
	for range 3 {
		spawner.Execute(frame)
	}
	frame.Commands.Flush(storage)

	var velocities []mgl32.Vec3
	for _, item := range particles(storage) {
		velocities = append(velocities, item.Particle.Velocity)
	}
	assert.Len(t, velocities, 3)
	assertVec(t, mgl32.Vec3{200, 0, 0}, velocities[0])
	assertVec(t, mgl32.Vec3{0, 200, 0}, velocities[1])
	assertVec(t, mgl32.Vec3{-200, 0, 0}, velocities[2])
}

func TestSetupSystem(t *testing.T) {
	storage, scheduler := newWorld()
	particle.Plugin{
		Settings: particle.DefaultSettings(),
		Rand:     rand.New(rand.NewPCG(7, 7)),
	}.Build(scheduler)

	scheduler.Startup()

	got := particles(storage)
	assert.Len(t, got, 100)

	var visuals *particle.Visuals
	assert.True(t, storage.ReadSingleton(&visuals))
	assert.True(t, visuals.Circle.Valid())

	var materials *asset.Assets[asset.ColorMaterial]
	assert.True(t, storage.ReadSingleton(&materials))
	assert.Equal(t, 2, materials.Len())
	purple, ok := materials.Get(visuals.Initial)
	assert.True(t, ok)
	assert.Equal(t, asset.Purple, purple.Color)

	var meshes *asset.Assets[asset.Mesh]
	assert.True(t, storage.ReadSingleton(&meshes))
	circle, ok := meshes.Get(visuals.Circle)
	assert.True(t, ok)
	assert.Equal(t, asset.Circle(10), *circle)

	for _, item := range got {
		assert.Equal(t, particle.SpawnOrigin, item.Transform.Translation)
		v := item.Particle.Velocity
		assert.True(t, v.X() >= 0 && v.X() < 100, "x in [0, 100): %v", v.X())
		assert.True(t, v.Y() >= 0 && v.Y() < 100, "y in [0, 100): %v", v.Y())
		assert.Zero(t, v.Z())
		assert.Equal(t, float32(2), item.Particle.TTL)
		assert.NotNil(t, item.Sprite)
		assert.Equal(t, visuals.Initial, item.Sprite.Material)
	}

	cameras := ecs.NewView[struct{ *particle.Camera2D }](storage)
	assert.Equal(t, 1, cameras.Count())

	var counters *particle.Counters
	storage.ReadSingleton(&counters)
	assert.Equal(t, uint64(100), counters.Spawned)
}

func TestPlugin(t *testing.T) {
	storage, scheduler := newWorld()
	scheduler.SetFixedRate(4)
	particle.Plugin{
		Settings: particle.DefaultSettings(),
		Rand:     rand.New(rand.NewPCG(1, 2)),
	}.Build(scheduler)

	var counters *particle.Counters
	assert.True(t, storage.ReadSingleton(&counters))

	// 100 from setup and one from the fixed tick, all moved by the update
	// pass; nothing has expired yet.
	scheduler.Once(0.25)
	assert.Equal(t, uint64(101), counters.Spawned)
	assert.Equal(t, uint64(0), counters.Expired)
	assert.Len(t, particles(storage), 101)

	var visuals *particle.Visuals
	storage.ReadSingleton(&visuals)
	red := 0
	for _, item := range particles(storage) {
		if item.Sprite.Material == visuals.Spawned {
			red++
			assert.InDelta(t, 0.25*200, item.Transform.Translation.Len(), 1)
		}
	}
	assert.Equal(t, 1, red)

	// The initial batch and the first emitted particle reach ttl 0 on the
	// eighth frame.
	for range 6 {
		scheduler.Once(0.25)
	}
	assert.Equal(t, uint64(0), counters.Expired)
	scheduler.Once(0.25)
	assert.Equal(t, uint64(101), counters.Expired)
	assert.Equal(t, uint64(108), counters.Spawned)
	assert.Equal(t, int(counters.Live()), len(particles(storage)))
}

func TestPluginDeterministic(t *testing.T) {
	run := func() []mgl32.Vec3 {
		storage, scheduler := newWorld()
		particle.Plugin{
			Settings: particle.DefaultSettings(),
			Rand:     rand.New(rand.NewPCG(42, 42)),
		}.Build(scheduler)
		for range 10 {
			scheduler.Once(1.0 / 60)
		}

		var out []mgl32.Vec3
		for _, item := range particles(storage) {
			out = append(out, item.Transform.Translation)
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestPluginStorageStats(t *testing.T) {
	storage, scheduler := newWorld()
	particle.Plugin{
		Settings: particle.DefaultSettings(),
		Rand:     rand.New(rand.NewPCG(3, 4)),
	}.Build(scheduler)
	scheduler.SetFixedRate(4)

	scheduler.Once(0.25)

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount, "camera and particles")
	assert.Equal(t, 1+101, stats.TotalEntityCount)
	assert.Equal(t, 4, stats.SingletonCount)
	assert.Contains(t, stats.SingletonTypes, "particle.Counters")
	assert.Contains(t, stats.SingletonTypes, "particle.Visuals")
}
