package ecs

// UpdateFrame is handed to every system invocation.
type UpdateFrame struct {
	// DeltaTime is the elapsed time in seconds covered by this pass. For
	// FixedUpdate systems it is always the fixed step.
	DeltaTime float64
	// Elapsed is the total time in seconds seen by this schedule so far.
	Elapsed  float64
	Tick     uint64
	Schedule Schedule
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(schedule Schedule, dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Schedule:  schedule,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
