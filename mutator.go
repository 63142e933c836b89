package destructure

import (
	"fmt"
	"reflect"
)

// A Mutator updates a single element or field of a composite value. It
// never mutates the composite it was derived from: calling Set commits a
// Transform that shallow-copies the previous composite with the one slot
// replaced, so late application always starts from the value current at
// commit time.
//
// Mutators are handed out as pointers and reused across derivations while
// their position or field persists, so == on two derived mutators tells
// whether they are the same binding.
type Mutator struct {
	commit   Setter
	kind     Kind
	position int
	key      string
}

// Position returns the bound element position, or -1 for a field mutator.
func (m *Mutator) Position() int {
	if m.kind != Sequence {
		return -1
	}
	return m.position
}

// Field returns the bound field name, or "" for an element mutator.
func (m *Mutator) Field() string {
	return m.key
}

// Set commits a replacement for the mutator's slot. update is either a
// literal new value or a transform of the previous one: any non-variadic
// function with exactly one parameter and one result is invoked with the
// slot's value at commit time. To store such a function itself, commit a
// transform that returns it.
//
// Set panics with an error wrapping ErrUsage when the update cannot be
// assigned to the slot. A slot that no longer exists at commit time, and
// a previous value that is no longer a composite of the expected kind,
// both leave the previous value untouched.
func (m *Mutator) Set(update any) {
	next := resolveUpdate(update)

	switch m.kind {
	case Sequence:
		m.commit(Transform(func(prev any) any {
			return replaceAtPosition(prev, m.position, next)
		}))
	case Record:
		m.commit(Transform(func(prev any) any {
			return replaceField(prev, m.key, next)
		}))
	default:
		panic(ErrUnreachable)
	}
}

// A Remover deletes a single element of a variable-length sequence,
// committing a Transform like a Mutator does. Removers share the identity
// guarantee of mutators.
type Remover struct {
	commit   Setter
	position int
}

// Position returns the bound element position.
func (r *Remover) Position() int {
	return r.position
}

// Remove commits the removal of the remover's element. A position that is
// out of range at commit time leaves the previous value untouched.
func (r *Remover) Remove() {
	r.commit(Transform(func(prev any) any {
		return removePosition(prev, r.position)
	}))
}

// An updater produces the replacement value for a slot from the slot's
// current value and type. It panics with a wrapped usage error when the
// replacement is not assignable.
type updater func(old reflect.Value, slot reflect.Type) reflect.Value

// resolveUpdate decides once, at Set time, whether update replaces the
// slot or transforms its previous value.
func resolveUpdate(update any) updater {
	if fn := reflect.ValueOf(update); fn.Kind() == reflect.Func && !fn.IsNil() {
		if t := fn.Type(); t.NumIn() == 1 && t.NumOut() == 1 && !t.IsVariadic() {
			return func(old reflect.Value, slot reflect.Type) reflect.Value {
				in := old
				if !in.IsValid() {
					in = reflect.Zero(slot)
				}
				if in.Kind() == reflect.Interface && !in.Type().AssignableTo(t.In(0)) {
					in = in.Elem()
				}
				if !in.IsValid() || !in.Type().AssignableTo(t.In(0)) {
					panic(fmt.Errorf("%w: %s cannot be applied to a %s slot", ErrBadTransform, t, slot))
				}
				return assignableTo(fn.Call([]reflect.Value{in})[0], slot, ErrBadTransform)
			}
		}
	}

	return func(_ reflect.Value, slot reflect.Type) reflect.Value {
		return assignableTo(reflect.ValueOf(update), slot, ErrBadUpdate)
	}
}

// assignableTo returns v adjusted for assignment into a slot of type t,
// unwrapping interfaces and mapping nil to t's zero value where t permits
// nil. It panics with sentinel otherwise.
func assignableTo(v reflect.Value, t reflect.Type, sentinel error) reflect.Value {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			v = reflect.Value{}
		} else if !v.Type().AssignableTo(t) {
			v = v.Elem()
		}
	}

	if !v.IsValid() {
		if canBeNil(t) {
			return reflect.Zero(t)
		}
		panic(fmt.Errorf("%w: nil is not assignable to %s", sentinel, t))
	}
	if !v.Type().AssignableTo(t) {
		panic(fmt.Errorf("%w: %s is not assignable to %s", sentinel, v.Type(), t))
	}
	return v
}

func canBeNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// replaceAtPosition returns prev with the element at position replaced,
// or prev itself when prev is not a sequence, the position is out of
// range, or the replacement is identical to the current element.
func replaceAtPosition(prev any, position int, next updater) any {
	v := reflect.ValueOf(prev)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return prev
	}
	if position < 0 || position >= v.Len() {
		return prev
	}

	old := v.Index(position)
	candidate := next(old, v.Type().Elem())
	if Identical(old.Interface(), candidate.Interface()) {
		return prev
	}

	out := copySequence(v)
	out.Index(position).Set(candidate)
	return out.Interface()
}

// replaceField returns prev with the field replaced, adding it when a map
// record does not contain it. prev is returned untouched when it is not a
// record, when a struct record has no settable field of that name, or
// when the replacement is identical to the current field value.
func replaceField(prev any, key string, next updater) any {
	v := reflect.ValueOf(prev)

	switch v.Kind() {
	case reflect.Map:
		t := v.Type()
		if t.Key().Kind() != reflect.String {
			return prev
		}
		keyv := reflect.ValueOf(key)
		if keyv.Type() != t.Key() {
			keyv = keyv.Convert(t.Key())
		}

		old := v.MapIndex(keyv)
		candidate := next(old, t.Elem())
		if old.IsValid() && Identical(old.Interface(), candidate.Interface()) {
			return prev
		}

		out := reflect.MakeMapWithSize(t, v.Len()+1)
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		out.SetMapIndex(keyv, candidate)
		return out.Interface()

	case reflect.Struct:
		field, ok := v.Type().FieldByName(key)
		if !ok || len(field.Index) != 1 || !field.IsExported() {
			return prev
		}

		old := v.Field(field.Index[0])
		candidate := next(old, field.Type)
		if Identical(old.Interface(), candidate.Interface()) {
			return prev
		}

		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		out.Field(field.Index[0]).Set(candidate)
		return out.Interface()

	default:
		return prev
	}
}

// removePosition returns prev without the element at position, or prev
// itself when prev is not a variable-length sequence or the position is
// out of range.
func removePosition(prev any, position int) any {
	v := reflect.ValueOf(prev)
	if v.Kind() != reflect.Slice {
		return prev
	}
	if position < 0 || position >= v.Len() {
		return prev
	}

	out := reflect.MakeSlice(v.Type(), v.Len()-1, v.Len()-1)
	reflect.Copy(out, v.Slice(0, position))
	reflect.Copy(out.Slice(position, out.Len()), v.Slice(position+1, v.Len()))
	return out.Interface()
}

// copySequence makes a shallow copy of a slice or array value.
func copySequence(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(out, v)
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		return out
	default:
		panic(ErrUnreachable)
	}
}
