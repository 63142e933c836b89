package destructure

import (
	"hash/fnv"
	"reflect"
)

// recordFingerprint digests the field-name set of a record composite:
// per-name FNV-1a digests folded with XOR, so the result does not depend
// on iteration order. Adding or removing a field changes the fingerprint,
// permuting fields does not, and field values never contribute. Empty
// field names are rejected here, before any cache state is touched.
func recordFingerprint(v reflect.Value) (uint64, error) {
	var fp uint64

	switch v.Kind() {
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			name := iter.Key().String()
			if name == "" {
				return 0, ErrEmptyFieldName
			}
			fp ^= nameDigest(name)
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if field := t.Field(i); field.IsExported() {
				fp ^= nameDigest(field.Name)
			}
		}
	default:
		panic(ErrUnreachable)
	}

	return fp, nil
}

func nameDigest(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}
