package ecs

import (
	"reflect"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeAddr returns the address of the runtime type descriptor behind t.
// It is unique per type for the lifetime of the process.
func typeAddr(t reflect.Type) uintptr {
	return uintptr((*iface)(unsafe.Pointer(&t)).data)
}
