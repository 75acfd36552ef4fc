package ecs

// Commands buffers structural changes made while systems run. The Scheduler
// flushes the buffer after each schedule pass, so systems never observe an
// entity appearing or disappearing mid-iteration. The zero value is ready to use.
type Commands struct {
	spawns   [][]any
	despawns []EntityId
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Despawn queues removal of an entity. Ids that are already dead when the
// buffer is flushed are ignored.
func (c *Commands) Despawn(entity EntityId) {
	c.despawns = append(c.despawns, entity)
}

// Defer queues a function to run after all spawns and despawns are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.despawns) + len(c.defers)
}

// Flush applies despawns, then spawns, then deferred functions to storage and
// resets the buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.despawns {
		storage.Despawn(id)
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.defers = c.defers[:0]
}
