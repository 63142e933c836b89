package destructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func TestDeriveRecord(t *testing.T) {

	t.Run("one mutator per field, keyed by accessor name", func(t *testing.T) {
		h := &testHost{value: map[string]int{"width": 1, "height": 2}}
		fields := deriveFields(t, &Cache{}, h)

		names := maps.Keys(fields)
		slices.Sort(names)
		assert.Equal(t, []string{"setHeight", "setWidth"}, names)
	})

	t.Run("a fresh map with the same keys holds the gate", func(t *testing.T) {
		c := &Cache{}
		set := func(update any) {}

		first, err := Derive(c, map[string]int{"a": 1, "b": 2}, set)
		require.NoError(t, err)
		second, err := Derive(c, map[string]int{"a": 100, "b": -2}, set)
		require.NoError(t, err)

		assert.True(t, Identical(first.Fields, second.Fields), "the previous output map should be returned as-is")
	})

	t.Run("mutators keep their identity while their field persists", func(t *testing.T) {
		c := &Cache{}
		h := &testHost{value: map[string]string{"title": "old"}}

		before := deriveFields(t, c, h)
		before["setTitle"].Set("new")
		after := deriveFields(t, c, h)

		assert.Same(t, before["setTitle"], after["setTitle"])
	})

	t.Run("an added field gets a new mutator, the others are reused", func(t *testing.T) {
		c := &Cache{}
		h := &testHost{value: map[string]int{"a": 1}}

		before := deriveFields(t, c, h)
		h.value = map[string]int{"a": 1, "b": 2}
		after := deriveFields(t, c, h)

		require.Len(t, after, 2)
		assert.Same(t, before["setA"], after["setA"])
		assert.NotNil(t, after["setB"])
	})

	t.Run("a removed field drops its mutator from the cache", func(t *testing.T) {
		c := &Cache{}
		h := &testHost{value: map[string]int{"a": 1, "b": 2}}

		before := deriveFields(t, c, h)
		dropped := before["setB"]

		h.value = map[string]int{"a": 1}
		after := deriveFields(t, c, h)

		require.Len(t, after, 1)
		assert.Nil(t, after["setB"])
		assert.Len(t, c.rec.fields, 1, "the cache should not pin mutators of removed fields")

		h.value = map[string]int{"a": 1, "b": 2}
		again := deriveFields(t, c, h)
		assert.NotSame(t, dropped, again["setB"], "the dropped mutator should not come back")
	})

	t.Run("a different setter resets mutator identity", func(t *testing.T) {
		c := &Cache{}
		record := map[string]int{"a": 1}

		first, err := Derive(c, record, func(update any) {})
		require.NoError(t, err)
		second, err := Derive(c, record, func(update any) { _ = update })
		require.NoError(t, err)

		assert.NotSame(t, first.Fields["setA"], second.Fields["setA"])
	})

	t.Run("a failed derivation leaves the previous cache intact", func(t *testing.T) {
		c := &Cache{}
		h := &testHost{value: map[string]int{"a": 1}}

		before := deriveFields(t, c, h)

		_, err := Derive(c, map[string]int{"": 1}, h.setter())
		assert.ErrorIs(t, err, ErrEmptyFieldName)

		after := deriveFields(t, c, h)
		assert.Same(t, before["setA"], after["setA"])
	})

	t.Run("an empty map derives zero fields", func(t *testing.T) {
		h := &testHost{value: map[string]int{}}
		fields := deriveFields(t, &Cache{}, h)
		assert.Empty(t, fields)
	})

	t.Run("field names that differ only in first-rune case collide", func(t *testing.T) {
		h := &testHost{value: map[string]int{"url": 1, "Url": 2}}
		fields := deriveFields(t, &Cache{}, h)

		assert.Len(t, fields, 1)
		assert.NotNil(t, fields["setUrl"])
	})
}

func TestDeriveStructRecord(t *testing.T) {

	type server struct {
		Host string
		Port int
		mu   int
	}

	t.Run("exported fields only", func(t *testing.T) {
		h := &testHost{value: server{Host: "localhost", Port: 80}}
		fields := deriveFields(t, &Cache{}, h)

		names := maps.Keys(fields)
		slices.Sort(names)
		assert.Equal(t, []string{"setHost", "setPort"}, names)
	})

	t.Run("derivations over changing struct values hold the gate", func(t *testing.T) {
		c := &Cache{}
		set := func(update any) {}

		first, err := Derive(c, server{Host: "a"}, set)
		require.NoError(t, err)
		second, err := Derive(c, server{Host: "b", Port: 99}, set)
		require.NoError(t, err)

		assert.True(t, Identical(first.Fields, second.Fields))
	})

	t.Run("mutating a struct field through its accessor", func(t *testing.T) {
		h := &testHost{value: server{Host: "localhost", Port: 80}}
		fields := deriveFields(t, &Cache{}, h)

		fields["setPort"].Set(8080)

		assert.Equal(t, server{Host: "localhost", Port: 8080}, h.value)
	})
}

func TestAccessorName(t *testing.T) {
	assert.Equal(t, "setName", AccessorName("name"))
	assert.Equal(t, "setName", AccessorName("Name"))
	assert.Equal(t, "setX", AccessorName("x"))
	assert.Equal(t, "set_private", AccessorName("_private"))
	assert.Equal(t, "setÉmile", AccessorName("émile"))
	assert.Equal(t, "set", AccessorName(""))
}
