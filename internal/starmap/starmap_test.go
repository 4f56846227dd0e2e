package starmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

func TestGenerateIsDeterministic(t *testing.T) {
	c1 := state.New()
	hw1, err := starmap.Generate(c1, 4, 42)
	require.NoError(t, err)

	c2 := state.New()
	hw2, err := starmap.Generate(c2, 4, 42)
	require.NoError(t, err)

	require.Equal(t, hw1, hw2)
	require.Equal(t, len(c1.Systems), len(c2.Systems))
}

func TestGenerateRejectsBadPlayerCount(t *testing.T) {
	c := state.New()
	_, err := starmap.Generate(c, 1, 1)
	require.Error(t, err)
	_, err = starmap.Generate(c, 13, 1)
	require.Error(t, err)
}

func TestShortestPathSelfIsTrivial(t *testing.T) {
	c := state.New()
	homeworlds, err := starmap.Generate(c, 3, 7)
	require.NoError(t, err)
	require.Len(t, homeworlds, 3)

	path, ok := starmap.ShortestPath(c, homeworlds[0], homeworlds[0])
	require.True(t, ok)
	require.Len(t, path, 1)
	require.Equal(t, homeworlds[0], path[0])
}

func TestShortestPathIsSymmetricDistance(t *testing.T) {
	c := state.New()
	homeworlds, err := starmap.Generate(c, 4, 99)
	require.NoError(t, err)

	dAB := starmap.Distance(c, homeworlds[0], homeworlds[1])
	dBA := starmap.Distance(c, homeworlds[1], homeworlds[0])
	require.Equal(t, dAB, dBA)
	require.GreaterOrEqual(t, dAB, 0)
}
