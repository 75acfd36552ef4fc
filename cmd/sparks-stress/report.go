package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/sparks/ecs"
	"github.com/plus3/sparks/particle"
)

type Report struct {
	// Configuration
	Duration     time.Duration
	Seed         uint64
	FixedHz      float64
	InitialCount int

	// Results
	TotalTime      time.Duration
	UpdateTime     Stats
	PeakParticles  uint64
	Counters       particle.Counters
	Scheduler      *ecs.SchedulerStats
	Storage        *ecs.StorageStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Particle Stress Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Spawn Rate:** {{printf "%.1f" .FixedHz}} Hz
- **Initial Particles:** {{.InitialCount}}

## Simulation
- **Frames:** {{.Scheduler.Frames}}
- **Fixed Steps:** {{.Scheduler.FixedSteps}}
- **Spawned:** {{.Counters.Spawned}}
- **Expired:** {{.Counters.Expired}}
- **Live at End:** {{.Counters.Live}}
- **Peak Live:** {{.PeakParticles}}
- **Entities in Storage:** {{.Storage.TotalEntityCount}} across {{.Storage.ArchetypeCount}} archetypes

## Frame Time
- **Avg:** {{.UpdateTime.Avg}}
- **Min:** {{.UpdateTime.Min}}
- **Max:** {{.UpdateTime.Max}}

## Systems
{{range .Scheduler.Systems}}- {{.Name}} ({{.Schedule}}): {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (MiB)
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Sys Memory:  {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
