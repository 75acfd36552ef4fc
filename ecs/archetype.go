package ecs

import (
	"iter"
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores every entity that has exactly one particular set of component types.
// Slots freed by Delete are reused by later spawns; the entity ids that pointed
// at them are not.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	// slots maps each live entity to its slot.
	slots *intmap.Map[EntityId, uint32]
	// ids holds the entity occupying each slot, 0 when the slot is free.
	ids    []EntityId
	free   []uint32
	serial uint32
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		slots:   intmap.New[EntityId, uint32](64),
	}
	for idx, typ := range types {
		a.columns[idx] = registry.newColumn(typ)
	}
	return a
}

// Spawn stores the components in a free slot and returns the new entity's id.
func (a *Archetype) Spawn(components []any) EntityId {
	var slot uint32
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		slot = uint32(len(a.ids))
		a.ids = append(a.ids, 0)
	}

	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx == -1 || !a.columns[idx].set(int(slot), comp) {
			a.free = append(a.free, slot)
			panic("component " + componentType(comp).String() + " does not belong to archetype")
		}
	}

	a.serial++
	id := NewEntityId(a.id, a.serial)
	a.ids[slot] = id
	a.slots.Put(id, slot)
	return id
}

// Delete removes the entity and clears its slot. It reports false if the
// entity was not alive.
func (a *Archetype) Delete(id EntityId) bool {
	slot, ok := a.slots.Get(id)
	if !ok {
		return false
	}
	for _, col := range a.columns {
		col.clear(int(slot))
	}
	a.slots.Del(id)
	a.ids[slot] = 0
	a.free = append(a.free, slot)
	return true
}

// Alive reports whether id refers to a live entity of this archetype.
func (a *Archetype) Alive(id EntityId) bool {
	return a.slots.Has(id)
}

func (a *Archetype) slot(id EntityId) (uint32, bool) {
	return a.slots.Get(id)
}

// GetComponent returns a pointer to the component of the given type, or nil.
func (a *Archetype) GetComponent(id EntityId, compType reflect.Type) any {
	idx := a.columnIndex(compType)
	if idx == -1 {
		return nil
	}
	slot, ok := a.slots.Get(id)
	if !ok {
		return nil
	}
	return a.columns[idx].get(int(slot))
}

func (a *Archetype) componentPointer(column int, index uint32) unsafe.Pointer {
	return a.columns[column].pointer(int(index))
}

func (a *Archetype) columnIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.slots.Len()
}

// Iter yields the EntityId and slot of every live entity in slot order.
func (a *Archetype) Iter() iter.Seq2[EntityId, uint32] {
	return func(yield func(EntityId, uint32) bool) {
		for slot, id := range a.ids {
			if id == 0 {
				continue
			}
			if !yield(id, uint32(slot)) {
				return
			}
		}
	}
}
