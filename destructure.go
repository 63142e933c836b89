// Package destructure derives, from a composite value and a single
// whole-container setter, one mutator per element or field. Each mutator
// updates only its own slot, immutably: committing through it replaces
// the composite instead of modifying it. Sequence composites additionally
// get one remover per element.
//
// Derivation is cached per call site: as long as an element keeps its
// position, or a field its name, repeated derivations through the same
// Cache return the same accessor pointers, so hosts that compare bindings
// with == see unchanged slots as unchanged. Element identity is
// positional; sites that reorder elements and need value-keyed identity
// must key their caches themselves.
package destructure

// A Setter commits an update of the whole composite value. The update is
// either the next composite or a Transform to resolve against the value
// current at commit time. Accessors derived through one cache must all be
// committed by the same setter; deriving with a different setter resets
// accessor identity.
type Setter func(update any)

// A Transform produces the next composite value from the previous one.
// Mutators and removers always commit Transforms, never snapshots, so
// hosts that queue updates apply each one to the value left by the update
// before it.
type Transform func(prev any) any

// A Slot pairs one sequence element with its derived accessors. Remove is
// nil for fixed-length sequences.
type Slot struct {
	Value  any
	Set    *Mutator
	Remove *Remover
}

// Bindings is the result of a derivation. Kind tells which side is
// populated: Slots for sequence composites, Fields for record composites.
// Fields is keyed by accessor name, see AccessorName.
type Bindings struct {
	Kind   Kind
	Slots  []Slot
	Fields map[string]*Mutator
}

// Derive classifies composite and returns its per-slot accessors,
// reconciling them against the accessors cached in c from previous calls.
// Accepted composites are slices and arrays (sequences), string-keyed
// maps and structs with exported fields (records). Anything else,
// including nil and pointers, is rejected with an error wrapping
// ErrUsage; a failed derivation leaves the cache untouched.
func Derive(c *Cache, composite any, set Setter) (Bindings, error) {
	if c == nil {
		return Bindings{}, ErrNilCache
	}
	if set == nil {
		return Bindings{}, ErrNilSetter
	}

	sh, err := classify(composite)
	if err != nil {
		return Bindings{}, err
	}

	switch sh.kind {
	case Sequence:
		c.adopt(sh)
		return Bindings{Kind: Sequence, Slots: c.deriveSequence(composite, sh, set)}, nil
	case Record:
		fp, err := recordFingerprint(sh.value)
		if err != nil {
			return Bindings{}, err
		}
		c.adopt(sh)
		return Bindings{Kind: Record, Fields: c.deriveRecord(sh, set, fp)}, nil
	default:
		panic(ErrUnreachable)
	}
}
