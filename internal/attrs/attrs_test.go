package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/bali/internal/name"
)

func Test_Empty_hasNoEntriesAndNoPrevious(t *testing.T) {
	e := Empty()
	assert.Equal(t, 0, e.Len())
	assert.Nil(t, e.Previous())
}

func Test_New_exposesEntriesInOrder(t *testing.T) {
	s := New([]Entry{
		{Name: 1, Value: "a"},
		{Name: 2, Value: "b"},
	}, Empty())

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, name.Code(1), s.NameAt(0))
	assert.Equal(t, "a", s.ValueAt(0))
	assert.Equal(t, name.Code(2), s.NameAt(1))
	assert.Equal(t, "b", s.ValueAt(1))
}

func Test_New_chainsToPrevious(t *testing.T) {
	outer := New([]Entry{{Name: 1, Value: "outer"}}, Empty())
	inner := New([]Entry{{Name: 2, Value: "inner"}}, outer)

	assert.Same(t, outer, inner.Previous())
	assert.Equal(t, 1, inner.Len())
	assert.Equal(t, 1, inner.Previous().Len())
}

func Test_Pop_returnsPrevious(t *testing.T) {
	outer := New([]Entry{{Name: 1, Value: "outer"}}, Empty())
	inner := New([]Entry{{Name: 2, Value: "inner"}}, outer)

	assert.Same(t, outer, Pop(inner))
	assert.Nil(t, Pop(outer).Previous())
}

func Test_NilSet_behavesAsEmpty(t *testing.T) {
	var s *Set
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Previous())
}
