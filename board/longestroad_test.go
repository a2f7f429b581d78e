package board

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rosshamish/catan/hexgrid"
)

func TestLongestRoadChain(t *testing.T) {
	b := New()
	require.Zero(t, b.LongestRoad(0))

	require.NoError(t, b.PlaceSettlement(v(0, 0, hexgrid.North), 0, true))
	chain := []hexgrid.Edge{
		e(0, 0, hexgrid.NorthEast),
		e(0, 0, hexgrid.East),
		e(0, 1, hexgrid.NorthEast),
		e(1, 0, hexgrid.SouthEast),
		e(1, 1, hexgrid.NorthEast),
	}
	for i, edge := range chain {
		require.NoError(t, b.PlaceRoad(edge, 0))
		require.Equal(t, i+1, b.LongestRoad(0), "after %d chained roads", i+1)
	}
	require.Zero(t, b.LongestRoad(1), "owner 1 has no roads")
}

func TestLongestRoadBranching(t *testing.T) {
	b := New()
	require.NoError(t, b.PlaceSettlement(v(0, 0, hexgrid.North), 0, true))
	for _, edge := range []hexgrid.Edge{
		e(0, 0, hexgrid.NorthEast),
		e(0, 0, hexgrid.East),
		e(0, 1, hexgrid.NorthEast),
		e(0, 0, hexgrid.SouthEast),
	} {
		require.NoError(t, b.PlaceRoad(edge, 0))
	}
	require.Equal(t, 3, b.LongestRoad(0),
		"a fork walks the trunk plus one branch, edges used once")
}

func TestLongestRoadCutByOpponent(t *testing.T) {
	b := New()
	require.NoError(t, b.PlaceSettlement(v(0, 0, hexgrid.North), 0, true))
	for _, edge := range []hexgrid.Edge{
		e(0, 0, hexgrid.NorthEast),
		e(0, 0, hexgrid.East),
		e(0, 1, hexgrid.NorthEast),
		e(1, 0, hexgrid.SouthEast),
		e(1, 1, hexgrid.NorthEast),
	} {
		require.NoError(t, b.PlaceRoad(edge, 0))
	}
	require.Equal(t, 5, b.LongestRoad(0))

	mid := v(0, 1, hexgrid.North)
	require.NoError(t, b.PlaceSettlement(mid, 1, true))
	require.Equal(t, 3, b.LongestRoad(0),
		"the opposing settlement splits the chain; the longer side keeps three")

	require.NoError(t, b.RemoveSettlement(mid))
	require.NoError(t, b.PlaceSettlement(mid, 0, true))
	require.Equal(t, 5, b.LongestRoad(0), "an own settlement does not cut the trail")
}

func TestLongestRoadLoopWithTail(t *testing.T) {
	b := New()
	require.NoError(t, b.PlaceSettlement(v(0, 0, hexgrid.North), 0, true))

	// ring around the center tile, then one tail off its north vertex
	for _, edge := range []hexgrid.Edge{
		e(0, 0, hexgrid.NorthEast),
		e(0, 0, hexgrid.East),
		e(0, 0, hexgrid.SouthEast),
		e(-1, 1, hexgrid.NorthEast),
		e(-1, 0, hexgrid.East),
		e(0, -1, hexgrid.SouthEast),
	} {
		require.NoError(t, b.PlaceRoad(edge, 0))
	}
	require.Equal(t, 6, b.LongestRoad(0), "a closed ring counts all six edges")

	require.NoError(t, b.PlaceRoad(e(0, -1, hexgrid.East), 0))
	require.Equal(t, 7, b.LongestRoad(0),
		"the trail enters at the junction and walks the whole ring")
}
