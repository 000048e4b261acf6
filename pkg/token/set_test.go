package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	var empty Set
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, "{}", empty.String())

	s := NewSet(Pipe, Identifier, Quote, Invalid)
	assert.False(t, s.Empty())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(Identifier))
	assert.False(t, s.Has(Invalid))
	assert.False(t, s.Has(Comma))

	// Declaration order, not insertion order.
	assert.Equal(t, []Category{Identifier, Quote, Pipe}, s.Slice())
	assert.Equal(t, "{identifier, quote, pipe}", s.String())

	s = s.Remove(Quote)
	assert.Equal(t, []string{"identifier", "pipe"}, s.Strings())

	u := s.Union(NewSet(Comma))
	assert.True(t, u.Has(Comma))
	assert.False(t, s.Has(Comma), "union does not mutate")

	assert.Equal(t, s, s.Add(NumCategories))
}
