package sliceutils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tymeless/legacychat/internal/sliceutils"
)

func TestCut(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{2, 3}, sliceutils.Cut(s, 1, 3))
	assert.Equal(t, []int{4, 5}, sliceutils.Cut(s, -2, len(s)))
	assert.Equal(t, []int{1, 2, 3, 4}, sliceutils.Cut(s, 0, -1))
	assert.Equal(t, s, sliceutils.Cut(s, -10, 10))
	assert.Empty(t, sliceutils.Cut([]int{}, 0, 3))
}

func TestTail(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{4, 5}, sliceutils.Tail(s, 2))
	assert.Equal(t, s, sliceutils.Tail(s, 10))
	assert.Empty(t, sliceutils.Tail(s, 0))
}
