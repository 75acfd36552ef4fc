package ecs

// EntityId encodes the archetype ID (upper 32 bits) and a per-archetype serial
// number (lower 32 bits). Serials are never reused, so an id stays dead after
// its entity is despawned even when the slot holding its components is
// recycled. The zero value never refers to a live entity.
type EntityId uint64

// NewEntityId creates an EntityId from an archetype ID and serial number
func NewEntityId(archetypeId uint32, serial uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(serial))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Serial extracts the per-archetype serial number from the entity ID
func (e EntityId) Serial() uint32 {
	return uint32(e & 0xFFFFFFFF)
}
