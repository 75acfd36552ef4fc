package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sparks/config"
	"github.com/plus3/sparks/ecs"
	"github.com/plus3/sparks/particle"
	"github.com/plus3/sparks/render"
	"github.com/tanema/gween/ease"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Built-in defaults are used when empty.")
	seed := flag.Uint64("seed", 0, "Random seed; overrides the config file when non-zero.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	log.Printf("Starting sparks (seed %d, %.0f Hz spawn rate)", cfg.Seed, cfg.FixedHz)

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.SetFixedRate(cfg.FixedHz)

	particle.Plugin{
		Settings: cfg.Particles,
		Rand:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
	}.Build(scheduler)

	renderer := &render.Renderer{
		Lifetime: cfg.Particles.TTL,
		Fade:     ease.InQuad,
	}
	scheduler.AddSystem(ecs.Draw, renderer)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := &Game{
		Storage:   storage,
		Scheduler: scheduler,
		Renderer:  renderer,
		Counters:  ecs.NewSingleton[particle.Counters](storage),
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game loop failed: %v", err)
	}

	counters := game.Counters.Get()
	log.Printf("Exited after %d frames: %d particles spawned, %d expired",
		scheduler.GetStats().Frames, counters.Spawned, counters.Expired)
}
