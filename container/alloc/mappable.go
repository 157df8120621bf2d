package alloc

import (
	"fmt"
	"reflect"
)

// checkMappable rejects element types that cannot live outside the Go heap:
// anything the garbage collector would need to scan, and zero-size types.
func checkMappable[T any]() error {
	typ := reflect.TypeFor[T]()
	if typ.Size() == 0 {
		return fmt.Errorf("%w: zero-size element type %s", ErrNotSupported, typ)
	}
	if hasPointers(typ) {
		return fmt.Errorf("%w: element type %s contains pointers", ErrNotSupported, typ)
	}
	return nil
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
