package ecs

import "iter"

// Query wraps a View with caching for repeated iteration inside systems.
// The set of matching archetypes is cached until a new archetype appears,
// and the entity/component arrays are rebuilt by Execute, which the
// Scheduler calls before every invocation of the owning system.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds or re-binds the Query to a storage.
// Called by the Scheduler when a system is added.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the entity and component caches from the current storage state.
func (q *Query[T]) Execute() {
	if count := len(q.storage.ordered); count != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.ordered {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = count
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]
	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

// Len returns the number of entities captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// All returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) All() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.All() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Iter returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
