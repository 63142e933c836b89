package destructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentical(t *testing.T) {

	t.Run("nil is only identical to nil", func(t *testing.T) {
		assert.True(t, Identical(nil, nil))
		assert.False(t, Identical(nil, 0))
		assert.False(t, Identical("", nil))
	})

	t.Run("comparable values use ==", func(t *testing.T) {
		assert.True(t, Identical(1, 1))
		assert.True(t, Identical("a", "a"))
		assert.False(t, Identical(1, 2))
		assert.False(t, Identical(1, int64(1)))

		x, y := new(int), new(int)
		assert.True(t, Identical(x, x))
		assert.False(t, Identical(x, y))
	})

	t.Run("a slice is identical to itself and to a full reslice of itself", func(t *testing.T) {
		s := []int{1, 2, 3}
		assert.True(t, Identical(s, s))
		assert.True(t, Identical(s, s[:]))
		assert.True(t, Identical(s, s[0:3]))
	})

	t.Run("slices with the same elements but different backing arrays are not identical", func(t *testing.T) {
		a := []int{1, 2, 3}
		b := []int{1, 2, 3}
		assert.False(t, Identical(a, b))
	})

	t.Run("a prefix of a slice is not identical to the slice", func(t *testing.T) {
		s := []int{1, 2, 3}
		assert.False(t, Identical(s, s[:2]))
	})

	t.Run("empty slices of one type are identical regardless of backing", func(t *testing.T) {
		a := make([]int, 0, 8)
		b := make([]int, 0)
		assert.True(t, Identical(a, b))
		assert.True(t, Identical([]int(nil), b))
	})

	t.Run("a map is only identical to itself", func(t *testing.T) {
		a := map[string]int{"x": 1}
		b := map[string]int{"x": 1}
		assert.True(t, Identical(a, a))
		assert.False(t, Identical(a, b))
	})

	t.Run("funcs are never identical, not even to themselves", func(t *testing.T) {
		f := func() {}
		assert.False(t, Identical(f, f))
	})

	t.Run("comparable arrays and structs compare by value", func(t *testing.T) {
		assert.True(t, Identical([2]int{1, 2}, [2]int{1, 2}))
		assert.False(t, Identical([2]int{1, 2}, [2]int{1, 3}))

		type point struct{ X, Y int }
		assert.True(t, Identical(point{1, 2}, point{1, 2}))
	})

	t.Run("values of incomparable types are never identical", func(t *testing.T) {
		type holder struct{ Items []int }
		h := holder{Items: []int{1}}
		assert.False(t, Identical(h, h))
	})

	t.Run("comparable types holding incomparable values never panic", func(t *testing.T) {
		type box struct{ X any }
		b := box{X: []int{1}}
		assert.False(t, Identical(b, b))
	})
}
