package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/sparks/config"
	"github.com/plus3/sparks/ecs"
	"github.com/plus3/sparks/particle"
)

// defaultSeed keeps unseeded stress runs reproducible.
const defaultSeed = 1

// resolveSeed picks the seed for a run: an explicit -seed flag wins, then the
// config file, then defaultSeed.
func resolveSeed(configSeed, flagSeed uint64, flagSet bool) uint64 {
	switch {
	case flagSet:
		return flagSeed
	case configSeed != 0:
		return configSeed
	default:
		return defaultSeed
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the run should last.")
	configPath := flag.String("config", "", "Path to a YAML config file. Built-in defaults are used when empty.")
	seed := flag.Uint64("seed", defaultSeed, "Random seed for particle velocities; overrides the config file when set.")
	initial := flag.Int("initial", -1, "Override the initial particle count when non-negative.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	cfg.Seed = resolveSeed(cfg.Seed, *seed, seedSet)
	if *initial >= 0 {
		cfg.Particles.InitialCount = *initial
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Println("Starting particle stress run...")

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.SetFixedRate(cfg.FixedHz)
	particle.Plugin{
		Settings: cfg.Particles,
		Rand:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
	}.Build(scheduler)
	counters := ecs.NewSingleton[particle.Counters](storage)

	report := &Report{
		Duration:       *duration,
		Seed:           cfg.Seed,
		FixedHz:        cfg.FixedHz,
		InitialCount:   cfg.Particles.InitialCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			if live := counters.Get().Live(); live > report.PeakParticles {
				report.PeakParticles = live
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Scheduler = scheduler.GetStats()
	report.Counters = *counters.Get()
	report.Storage = storage.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Run Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
