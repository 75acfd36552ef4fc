// Package asset allocates typed handles for shared resources such as meshes
// and materials. Stores live in ecs singletons; entities refer to assets only
// through handles.
package asset

// Handle identifies an asset of type T inside an Assets[T] store.
// The zero Handle is never returned by Add.
type Handle[T any] struct {
	id uint32
}

// ID returns the raw handle value.
func (h Handle[T]) ID() uint32 {
	return h.id
}

// Valid reports whether h was issued by a store.
func (h Handle[T]) Valid() bool {
	return h.id != 0
}

// Assets is an append-only store of T values addressed by Handle[T].
type Assets[T any] struct {
	items []T
}

// NewAssets creates an empty store.
func NewAssets[T any]() Assets[T] {
	return Assets[T]{}
}

// Add stores value and returns its handle.
func (a *Assets[T]) Add(value T) Handle[T] {
	a.items = append(a.items, value)
	return Handle[T]{id: uint32(len(a.items))}
}

// Get returns the asset for h. The pointer is valid until the next Add.
func (a *Assets[T]) Get(h Handle[T]) (*T, bool) {
	if h.id == 0 || int(h.id) > len(a.items) {
		return nil, false
	}
	return &a.items[h.id-1], true
}

// Len returns the number of stored assets.
func (a *Assets[T]) Len() int {
	return len(a.items)
}
