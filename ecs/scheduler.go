package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	FixedSteps      int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Schedule       Schedule
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

// executor is implemented by Query fields; the scheduler refreshes them before each run.
type executor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executor
	stats   *systemStatsInternal
}

type schedulePass struct {
	systems []*registeredSystem
	elapsed float64
	ticks   uint64
}

// Scheduler runs systems grouped into schedules.
//
// Once(dt) drives one frame: Startup on the first call, then as many
// FixedUpdate steps as the accumulated time allows, then Update. Commands
// queued by systems are flushed after every FixedUpdate step and after each
// Startup/Update/Draw pass.
type Scheduler struct {
	storage    *Storage
	schedules  [scheduleCount]schedulePass
	order      []*registeredSystem
	started    bool
	fixedStep  float64
	accum      float64
	fixedSteps int64
	frames     int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:   storage,
		fixedStep: 1.0 / DefaultFixedRate,
	}
}

// Storage returns the storage the scheduler drives.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// SetFixedRate sets the FixedUpdate frequency in Hz. Non-positive rates are ignored.
func (s *Scheduler) SetFixedRate(hz float64) {
	if hz <= 0 {
		return
	}
	s.fixedStep = 1.0 / hz
}

// FixedStep returns the FixedUpdate step in seconds.
func (s *Scheduler) FixedStep() float64 {
	return s.fixedStep
}

// Register adds a system to the Update schedule.
func (s *Scheduler) Register(system System) {
	s.AddSystem(Update, system)
}

// AddSystem adds a system to a schedule and initializes its Query and Singleton fields.
// Systems in a schedule run in the order they were added.
func (s *Scheduler) AddSystem(schedule Schedule, system System) {
	rs := &registeredSystem{
		system:  system,
		queries: s.initializeFields(system),
		stats: &systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		},
	}
	s.schedules[schedule].systems = append(s.schedules[schedule].systems, rs)
	s.order = append(s.order, rs)
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

// initializeFields calls Init on every Query and Singleton field of the system
// and returns the queries so they can be refreshed before each run.
func (s *Scheduler) initializeFields(system System) []executor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []executor
	systemType := systemValue.Type()
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + systemType.Field(i).Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})

		if isQuery {
			queries = append(queries, field.Addr().Interface().(executor))
		}
	}
	return queries
}

// RunSchedule runs every system of one schedule once with the given delta time
// and flushes the commands they queued.
func (s *Scheduler) RunSchedule(schedule Schedule, dt float64) {
	pass := &s.schedules[schedule]
	pass.elapsed += dt
	pass.ticks++

	frame := newUpdateFrame(schedule, dt, s.storage)
	frame.Elapsed = pass.elapsed
	frame.Tick = pass.ticks

	for _, rs := range pass.systems {
		for _, q := range rs.queries {
			q.Execute()
		}

		start := time.Now()
		rs.system.Execute(frame)
		rs.stats.record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
}

// Startup runs the Startup schedule if it has not run yet.
func (s *Scheduler) Startup() {
	if s.started {
		return
	}
	s.started = true
	s.RunSchedule(Startup, 0)
}

// Once advances the world by one frame of dt seconds.
func (s *Scheduler) Once(dt float64) {
	s.Startup()

	if dt > 0 {
		s.accum += min(dt, MaxFixedDelta)
	}
	for s.accum >= s.fixedStep {
		s.accum -= s.fixedStep
		s.fixedSteps++
		s.RunSchedule(FixedUpdate, s.fixedStep)
	}

	s.frames++
	s.RunSchedule(Update, dt)
}

// Run executes frames repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.order),
		FixedSteps:  s.fixedSteps,
		Frames:      s.frames,
		Systems:     make([]SystemStats, 0, len(s.order)),
	}

	for schedule := range scheduleCount {
		for _, rs := range s.schedules[schedule].systems {
			internal := rs.stats
			avgDuration := time.Duration(0)
			if internal.executionCount > 0 {
				avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			}

			stats.Systems = append(stats.Systems, SystemStats{
				Name:           internal.name,
				Schedule:       schedule,
				ExecutionCount: internal.executionCount,
				MinDuration:    internal.minDuration,
				MaxDuration:    internal.maxDuration,
				AvgDuration:    avgDuration,
				LastDuration:   internal.lastDuration,
				TotalDuration:  internal.totalDuration,
			})
			stats.TotalExecutions += internal.executionCount
		}
	}

	return stats
}
