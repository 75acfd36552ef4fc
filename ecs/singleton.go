package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for world-wide state such
// as asset stores, counters or configuration.
type Singleton[T any] struct {
	storage      *Storage
	componentPtr unsafe.Pointer
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If the singleton doesn't exist yet it is created from initializer, or the
// zero value when no initializer is given.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the Singleton to a storage.
// This is called automatically by the Scheduler when a system is added.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentPtr = nil
	s.updateCache()
}

// Get returns a pointer to the singleton component, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return (*T)(s.componentPtr)
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.componentPtr = entry.dataPtr
	}
}
