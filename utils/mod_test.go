package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	t.Run("finding the first occurrence", func(t *testing.T) {
		require.Equal(t, 1, FindIndex([]int{4, 2, 2}, 2))
	})

	t.Run("missing items", func(t *testing.T) {
		require.Equal(t, -1, FindIndex([]string{"a"}, "b"))
		require.Equal(t, -1, FindIndex(nil, 0))
	})
}

func TestMapAndCount(t *testing.T) {
	t.Run("mapping keeps order and length", func(t *testing.T) {
		require.Equal(t, []string{"1", "2", "3"}, Map([]int{1, 2, 3}, strconv.Itoa))
		require.Empty(t, Map([]int(nil), strconv.Itoa))
	})

	t.Run("counting matches", func(t *testing.T) {
		require.Equal(t, 2, Count([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 }))
	})
}
