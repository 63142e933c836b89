package destructure

// slotAccessors is the cached accessor pair of one sequence position.
type slotAccessors struct {
	set    *Mutator
	remove *Remover // nil for fixed-length sequences
}

// sequenceSlots is the cached derivation state of a sequence composite:
// position-aligned accessors plus the memo of the previous call.
type sequenceSlots struct {
	entries []slotAccessors

	// memo of the previous derivation. prev holds the composite itself
	// so its identity cannot be recycled while the memo is alive.
	prev   any
	setter uintptr
	fixed  bool
	output []Slot
	valid  bool
}

// deriveSequence reconciles the cached accessors against the sequence in
// sh and returns one Slot per element. Accessors are reused by position:
// an element that keeps its position across derivations keeps its mutator
// and remover. When neither the composite reference nor the setter
// changed since the previous call, the previous output is returned as-is.
func (c *Cache) deriveSequence(composite any, sh shape, set Setter) []Slot {
	if c.seq == nil {
		c.seq = &sequenceSlots{fixed: sh.fixed}
	}
	s := c.seq
	sid := setterIdentity(set)

	if s.valid && s.setter == sid && s.fixed == sh.fixed && Identical(s.prev, composite) {
		return s.output
	}

	dropped := 0

	// accessors bound to another setter or to the other sequence flavor
	// cannot be reused
	if s.fixed != sh.fixed || (s.valid && s.setter != sid) {
		dropped = len(s.entries)
		for i := range s.entries {
			s.entries[i] = slotAccessors{}
		}
		s.entries = s.entries[:0]
	}

	length := sh.value.Len()

	if len(s.entries) > length {
		dropped += len(s.entries) - length
		// zero the tail before reslicing so dropped accessors do not
		// stay reachable through the backing array
		for i := length; i < len(s.entries); i++ {
			s.entries[i] = slotAccessors{}
		}
		s.entries = s.entries[:length]
	}

	reused := len(s.entries)
	for i := range s.entries {
		s.entries[i].set.commit = set
		if s.entries[i].remove != nil {
			s.entries[i].remove.commit = set
		}
	}

	created := length - len(s.entries)
	for i := len(s.entries); i < length; i++ {
		entry := slotAccessors{
			set: &Mutator{commit: set, kind: Sequence, position: i},
		}
		if !sh.fixed {
			entry.remove = &Remover{commit: set, position: i}
		}
		s.entries = append(s.entries, entry)
	}

	output := make([]Slot, length)
	for i := 0; i < length; i++ {
		output[i] = Slot{
			Value:  sh.value.Index(i).Interface(),
			Set:    s.entries[i].set,
			Remove: s.entries[i].remove,
		}
	}

	s.prev = composite
	s.setter = sid
	s.fixed = sh.fixed
	s.output = output
	s.valid = true

	c.logger.Debug().
		Int("reused", reused).
		Int("created", created).
		Int("dropped", dropped).
		Msg("reconciled sequence slots")

	return output
}
