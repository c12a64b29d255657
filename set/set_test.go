package set_test

import (
	"testing"

	"github.com/lanternworks/lantern-common/set"
	"github.com/stretchr/testify/assert"
)

func TestAddRemoveContains(t *testing.T) {
	t.Parallel()

	s := set.New(1, 2, 3)
	assert.Equal(t, 3, s.Size())
	assert.True(t, s.Contains(2))

	s.Add(2)
	assert.Equal(t, 3, s.Size())

	s.Remove(2)
	assert.False(t, s.Contains(2))
	assert.Equal(t, 2, s.Size())

	s.Remove(99)
	assert.Equal(t, 2, s.Size())
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := set.New("a", "b")
	s.Clear()
	assert.Equal(t, 0, s.Size())
	assert.Empty(t, s.Entries())
}

func TestEntries(t *testing.T) {
	t.Parallel()

	s := set.New(5, 10)
	assert.ElementsMatch(t, []int{5, 10}, s.Entries())
}

func TestUnion(t *testing.T) {
	t.Parallel()

	a := set.New(1, 2)
	b := set.New(2, 3)

	union := a.Union(b)
	assert.ElementsMatch(t, []int{1, 2, 3}, union.Entries())

	// Inputs are untouched.
	assert.Equal(t, 2, a.Size())
	assert.Equal(t, 2, b.Size())

	assert.ElementsMatch(t, []int{1, 2}, a.Union(nil).Entries())
}

func TestIntersection(t *testing.T) {
	t.Parallel()

	a := set.New(1, 2, 3)
	b := set.New(2, 3, 4)

	assert.ElementsMatch(t, []int{2, 3}, a.Intersection(b).Entries())
	assert.Empty(t, a.Intersection(set.New[int]()).Entries())
	assert.Empty(t, a.Intersection(nil).Entries())
}

func TestStringsSorted(t *testing.T) {
	t.Parallel()

	s := set.NewStrings("menu", "level10", "level2", "credits")

	assert.Equal(t,
		[]string{"credits", "level10", "level2", "menu"},
		s.SortedEntries())

	assert.Equal(t,
		[]string{"credits", "level2", "level10", "menu"},
		s.NaturalSortedEntries())
}
