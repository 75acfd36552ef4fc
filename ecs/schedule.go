package ecs

// Schedule identifies a phase of the frame that systems can be added to.
type Schedule int

const (
	// Startup systems run once, before the first frame.
	Startup Schedule = iota
	// FixedUpdate systems run zero or more times per frame at a fixed logical rate.
	FixedUpdate
	// Update systems run once per frame with the frame's delta time.
	Update
	// Draw systems run when the host renders; they are driven by RunSchedule.
	Draw

	scheduleCount
)

func (s Schedule) String() string {
	switch s {
	case Startup:
		return "Startup"
	case FixedUpdate:
		return "FixedUpdate"
	case Update:
		return "Update"
	case Draw:
		return "Draw"
	default:
		return "Schedule(?)"
	}
}

const (
	// DefaultFixedRate is the FixedUpdate frequency in Hz used by NewScheduler.
	DefaultFixedRate = 64.0
	// MaxFixedDelta caps how much frame time one Once call feeds the fixed
	// accumulator, so a stalled frame cannot trigger an unbounded catch-up.
	MaxFixedDelta = 0.25
)
