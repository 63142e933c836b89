package destructure

// A TypedSlot pairs one element of a typed slice with its derived
// accessors. Remove is never nil: slices are variable-length sequences.
type TypedSlot[E any] struct {
	Value  E
	Set    *Mutator
	Remove *Remover
}

// Slice derives slot accessors for a slice composite. It is a typed
// wrapper around Derive and shares accessor identity with it: deriving
// the same cache through Slice and Derive hands out the same pointers.
// Slice panics on a nil cache or nil setter, the only usage errors a
// slice composite can produce.
func Slice[E any](c *Cache, items []E, set Setter) []TypedSlot[E] {
	bindings, err := Derive(c, items, set)
	if err != nil {
		panic(err)
	}

	slots := make([]TypedSlot[E], len(bindings.Slots))
	for i, slot := range bindings.Slots {
		// comma-ok: a nil interface element asserts to the zero value
		value, _ := slot.Value.(E)
		slots[i] = TypedSlot[E]{
			Value:  value,
			Set:    slot.Set,
			Remove: slot.Remove,
		}
	}
	return slots
}

// Map derives field mutators for a string-keyed map composite, keyed by
// accessor name. It fails on a nil setter and on empty map keys.
func Map[V any](c *Cache, fields map[string]V, set Setter) (map[string]*Mutator, error) {
	bindings, err := Derive(c, fields, set)
	if err != nil {
		return nil, err
	}
	return bindings.Fields, nil
}
