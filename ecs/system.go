package ecs

// System represents a behavior that operates on entities with specific components.
// Systems are structs; exported Query and Singleton fields are wired up by the
// Scheduler when the system is added, and any other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
// Function systems have no Query fields and use frame.Storage directly.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
