package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// viewField describes one field of a view struct.
type viewField struct {
	offset    uintptr
	component reflect.Type // nil for an EntityId field
	optional  bool
}

// View represents a query for entities with a specific combination of components.
// The type T should be a struct whose fields are pointers to component types:
//   - embedded pointer fields are always required
//   - named pointer fields may be marked optional with the `ecs:"optional"` tag
//     and are nil when the entity lacks the component
//   - a field of type EntityId receives the entity's id
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, viewField{offset: field.Offset})
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				optional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		fields = append(fields, viewField{
			offset:    field.Offset,
			component: field.Type.Elem(),
			optional:  optional,
		})
	}

	return &View[T]{
		storage: storage,
		fields:  fields,
	}
}

// matchesArchetype checks if an archetype contains every required component type of the view
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for _, f := range v.fields {
		if f.component == nil || f.optional {
			continue
		}
		if !archetype.HasComponent(f.component) {
			return false
		}
	}
	return true
}

// columnIndices maps each view field to a column of the archetype, -1 when absent.
func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.fields))
	for i, f := range v.fields {
		indices[i] = -1
		if f.component != nil {
			indices[i] = archetype.columnIndex(f.component)
		}
	}
	return indices
}

// populate writes the component pointers of one slot into the struct at dst.
// Callers must have checked the archetype with matchesArchetype.
func (v *View[T]) populate(dst unsafe.Pointer, archetype *Archetype, id EntityId, slot uint32, columns []int) {
	for i, f := range v.fields {
		fieldPtr := unsafe.Add(dst, f.offset)

		if f.component == nil {
			*(*EntityId)(fieldPtr) = id
			continue
		}

		if columns[i] == -1 {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = archetype.componentPointer(columns[i], slot)
	}
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is not alive or is missing any required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !v.matchesArchetype(archetype) {
		return false
	}
	slot, ok := archetype.slot(id)
	if !ok {
		return false
	}

	v.populate(unsafe.Pointer(ptr), archetype, id, slot, v.columnIndices(archetype))
	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// iterArchetype yields every live entity of a single matching archetype.
func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		columns := v.columnIndices(archetype)

		var result T
		for id, slot := range archetype.Iter() {
			v.populate(unsafe.Pointer(&result), archetype, id, slot, columns)
			if !yield(id, result) {
				return
			}
		}
	}
}

// All returns an iterator over (EntityId, view struct) pairs for every entity that has
// the required components. Archetypes are visited in creation order and entities in slot order.
func (v *View[T]) All() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.ordered {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Iter returns an iterator over just the view structs.
// Include an EntityId field in T when the id is needed.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.All() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count returns the number of entities the view currently matches.
func (v *View[T]) Count() int {
	n := 0
	for _, archetype := range v.storage.ordered {
		if v.matchesArchetype(archetype) {
			n += archetype.Len()
		}
	}
	return n
}
