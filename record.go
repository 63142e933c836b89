package destructure

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// fieldEntries is the cached derivation state of a record composite: one
// mutator per field name plus the memo of the previous call. Both maps
// are rebuilt wholesale on every reconciliation, so a field that left the
// composite never pins its mutator through the cache.
type fieldEntries struct {
	fields map[string]*Mutator // by field name
	fp     uint64
	setter uintptr
	output map[string]*Mutator // by accessor name
	valid  bool
}

// deriveRecord reconciles the cached mutators against the record in sh
// and returns them keyed by accessor name. Mutators are reused by field
// name: a field that persists across derivations keeps its mutator. When
// neither the field-name set nor the setter changed since the previous
// call, the previous output map is returned as-is. Field values never
// invalidate the memo, only names do.
func (c *Cache) deriveRecord(sh shape, set Setter, fp uint64) map[string]*Mutator {
	if c.rec == nil {
		c.rec = &fieldEntries{}
	}
	r := c.rec
	sid := setterIdentity(set)

	if r.valid && r.setter == sid && r.fp == fp {
		return r.output
	}

	reusable := r.fields
	if r.setter != sid {
		reusable = nil
	}

	size := recordSize(sh.value)
	fields := make(map[string]*Mutator, size)
	output := make(map[string]*Mutator, size)
	reused, created := 0, 0

	forEachFieldName(sh.value, func(name string) {
		m := reusable[name]
		if m != nil {
			m.commit = set
			reused++
		} else {
			m = &Mutator{commit: set, kind: Record, key: name}
			created++
		}
		fields[name] = m
		output[AccessorName(name)] = m
	})

	dropped := len(r.fields) - reused

	r.fields = fields
	r.fp = fp
	r.setter = sid
	r.output = output
	r.valid = true

	c.logger.Debug().
		Int("reused", reused).
		Int("created", created).
		Int("dropped", dropped).
		Msg("reconciled record fields")

	return output
}

// AccessorName returns the name under which a field's mutator is
// published: "set" followed by the field name with its first rune upper
// cased. Field names that differ only in the case of their first rune
// collide ("url" and "Url" both publish "setUrl"), the collision is not
// detected.
func AccessorName(field string) string {
	if field == "" {
		return "set"
	}
	r, size := utf8.DecodeRuneInString(field)
	return "set" + string(unicode.ToUpper(r)) + field[size:]
}

func forEachFieldName(v reflect.Value, visit func(name string)) {
	switch v.Kind() {
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			visit(iter.Key().String())
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if field := t.Field(i); field.IsExported() {
				visit(field.Name)
			}
		}
	default:
		panic(ErrUnreachable)
	}
}

func recordSize(v reflect.Value) int {
	if v.Kind() == reflect.Map {
		return v.Len()
	}
	return v.NumField()
}
