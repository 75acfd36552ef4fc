package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

// Storage owns every entity and singleton of one world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	// ordered holds archetypes in creation order so iteration is deterministic.
	ordered    []*Archetype
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// GetArchetype returns the archetype holding exactly the given component values' types, if any.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[hashTypesToUint32(extractComponentTypes(components))]
}

// Archetypes returns every archetype in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.ordered
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
		s.ordered = append(s.ordered, archetype)
	}
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	return archetype.Spawn(components)
}

// Despawn removes the entity and all of its components.
// It reports false if the entity was not alive.
func (s *Storage) Despawn(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.Delete(id)
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Alive(id)
}

// Len returns the number of live entities across all archetypes.
func (s *Storage) Len() int {
	n := 0
	for _, archetype := range s.ordered {
		n += archetype.Len()
	}
	return n
}

// GetComponent returns a pointer to the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Alive(id) {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type, replacing any previous
// value in place so existing Singleton accessors stay valid.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{
		typ:     typ,
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *target at the singleton of type T, where target is a **T.
// It reports false if no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	out := reflect.ValueOf(target)
	if out.Kind() != reflect.Ptr || out.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.getSingletonEntry(out.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	out.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components are value types: structs or named primitives.
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a non-zero FNV-1a hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		addr := typeAddr(t)
		val := uint32(addr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(addr) >> 32)
		}

		h ^= val
		h *= prime
	}

	if h == 0 {
		h = 1
	}
	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the T component of the entity, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
