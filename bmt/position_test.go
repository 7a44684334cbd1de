package bmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionHeight(t *testing.T) {
	cases := []struct {
		pos  Position
		want uint
	}{
		{0, 0}, {1, 1}, {2, 0}, {3, 2}, {4, 0}, {5, 1}, {6, 0}, {7, 3},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.pos.Height(), "height(%d)", c.pos)
	}
}

func TestPositionIsLeaf(t *testing.T) {
	require.True(t, Position(0).IsLeaf())
	require.True(t, Position(2).IsLeaf())
	require.False(t, Position(1).IsLeaf())
	require.False(t, Position(3).IsLeaf())
}

func TestPositionChildrenAndParentRoundTrip(t *testing.T) {
	for _, parent := range []Position{1, 3, 5, 7} {
		left := parent.LeftChild()
		right := parent.RightChild()
		require.Equal(t, parent, left.Parent())
		require.Equal(t, parent, right.Parent())
		require.Equal(t, right, left.Sibling())
		require.Equal(t, left, right.Sibling())
	}
}

func TestPositionLeavesCount(t *testing.T) {
	require.Equal(t, uint64(1), Position(0).LeavesCount())
	require.Equal(t, uint64(2), Position(1).LeavesCount())
	require.Equal(t, uint64(4), Position(3).LeavesCount())
	require.Equal(t, uint64(8), Position(7).LeavesCount())
}
