package rxstate

import (
	"fmt"
	"reflect"
	"sort"
)

// Partial is a subset of a state record's fields, keyed by exported Go
// field name. Merging a Partial replaces exactly the named fields; nested
// values are replaced wholesale. A nil value sets the field to its zero
// value. Fields promoted through an embedded pointer cannot be merged, since
// writing them would mutate the record shared with earlier snapshots.
type Partial map[string]any

// merge returns a shallow copy of cur with p applied. On error cur is
// returned unchanged.
func merge[T any](cur T, p Partial) (T, error) {
	if len(p) == 0 {
		return cur, nil
	}

	next := cur
	rv := reflect.ValueOf(&next).Elem()

	// Sorted so the reported error does not depend on map order.
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sf, ok := rv.Type().FieldByName(name)
		if !ok || !sf.IsExported() {
			return cur, fmt.Errorf("%w %q", ErrUnknownField, name)
		}
		if viaPointer(rv.Type(), sf.Index) {
			return cur, fmt.Errorf("%w %q: promoted through an embedded pointer", ErrUnknownField, name)
		}
		f := rv.FieldByIndex(sf.Index)

		val := p[name]
		if val == nil {
			f.Set(reflect.Zero(f.Type()))
			continue
		}
		v := reflect.ValueOf(val)
		if !v.Type().AssignableTo(f.Type()) {
			return cur, fmt.Errorf("%w: field %q is %s, got %s", ErrFieldType, name, f.Type(), v.Type())
		}
		f.Set(v)
	}
	return next, nil
}

// viaPointer reports whether the field path index crosses a pointer.
func viaPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		t = t.Field(i).Type
		if t.Kind() == reflect.Pointer {
			return true
		}
	}
	return false
}

func mustBeRecord[T any]() {
	var zero T
	if t := reflect.TypeOf(zero); t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("rxstate: state type must be a struct, got %T", zero))
	}
}
