package ecs

import (
	"reflect"
	"unsafe"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &pagedColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// column is type-erased storage for one component type of one archetype.
// Liveness of a slot is tracked by the owning Archetype, not the column.
type column interface {
	set(index int, item any) bool
	clear(index int)
	get(index int) any
	pointer(index int) unsafe.Pointer
}

const pageSize = 64

// pagedColumn stores components in fixed-size pages that are never moved, so
// pointers handed out by get stay valid while the column grows.
type pagedColumn[T any] struct {
	pages []*[pageSize]T
}

func (c *pagedColumn[T]) set(index int, item any) bool {
	var value T
	if ptr, ok := item.(*T); ok {
		value = *ptr
	} else if v, ok := item.(T); ok {
		value = v
	} else {
		return false
	}

	page := index / pageSize
	for page >= len(c.pages) {
		c.pages = append(c.pages, new([pageSize]T))
	}
	c.pages[page][index%pageSize] = value
	return true
}

func (c *pagedColumn[T]) clear(index int) {
	page := index / pageSize
	if index < 0 || page >= len(c.pages) {
		return
	}
	var zero T
	c.pages[page][index%pageSize] = zero
}

func (c *pagedColumn[T]) get(index int) any {
	page := index / pageSize
	if index < 0 || page >= len(c.pages) {
		return nil
	}
	return &c.pages[page][index%pageSize]
}

func (c *pagedColumn[T]) pointer(index int) unsafe.Pointer {
	page := index / pageSize
	if index < 0 || page >= len(c.pages) {
		return nil
	}
	return unsafe.Pointer(&c.pages[page][index%pageSize])
}
