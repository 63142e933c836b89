package destructure

import "reflect"

// Identical reports whether a and b are the same value under shallow
// reference equality, the relation used both by the recomputation gates
// and by the update short circuit. Comparable dynamic types use ==,
// slices compare by data pointer and length, maps by header pointer.
// Funcs are never identical, two values of incomparable types are never
// identical. Identical never panics.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Slice:
		if va.Len() != vb.Len() {
			return false
		}
		return va.Len() == 0 || va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return false
	}

	// Value-level comparability: a struct with interface fields is a
	// comparable type but panics under == when a field holds an
	// incomparable dynamic value.
	if !va.Comparable() {
		return false
	}
	return a == b
}

// setterIdentity identifies a setter by its code pointer. Two closures
// created by the same func literal share a code pointer, so this is only
// a sound identity while each cache is fed by a single call site, which
// is already a requirement for position and key stability.
func setterIdentity(set Setter) uintptr {
	return reflect.ValueOf(set).Pointer()
}
