package particle

import "github.com/go-gl/mathgl/mgl32"

// SpawnOrigin is where every particle starts.
var SpawnOrigin = mgl32.Vec3{0, 0, 0}

// Settings are the tunable constants of the effect.
type Settings struct {
	// InitialCount particles are spawned by SetupSystem.
	InitialCount int `yaml:"initial_count"`
	// InitialSpeed bounds each velocity component of the initial batch: [0, InitialSpeed).
	InitialSpeed float32 `yaml:"initial_speed"`
	// SpawnDistance is the speed of particles created by SpawnSystem.
	SpawnDistance float32 `yaml:"spawn_distance"`
	TTL           float32 `yaml:"ttl"`
	Damping       float32 `yaml:"damping"`
	Gravity       float32 `yaml:"gravity"`
	// Radius of the circle mesh, in world units.
	Radius float32 `yaml:"radius"`
}

// DefaultSettings returns the stock effect.
func DefaultSettings() Settings {
	return Settings{
		InitialCount:  100,
		InitialSpeed:  100,
		SpawnDistance: 200,
		TTL:           2.0,
		Damping:       0.01,
		Gravity:       0.0,
		Radius:        10,
	}
}

// New returns a particle with the given velocity and the lifetime constants of s.
func (s Settings) New(velocity mgl32.Vec3) Particle {
	return Particle{
		Velocity: velocity,
		TTL:      s.TTL,
		Gravity:  s.Gravity,
		Damping:  s.Damping,
	}
}
