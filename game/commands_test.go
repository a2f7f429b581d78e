package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rosshamish/catan/board"
	"github.com/rosshamish/catan/hexgrid"
	"github.com/rosshamish/catan/ledger"
)

func TestBuildRoadMainPhase(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)
	forceMainPhase(g)

	require.ErrorIs(t, g.BuildRoad(e(0, 0, hexgrid.East)), ledger.ErrInsufficientResources,
		"red holds no brick yet")
	require.Equal(t, 1, g.Ledger().Count(0, board.Wood), "a failed buy must not charge")

	giveResources(t, g, 0, ledger.Bundle{board.Brick: 1})
	require.ErrorIs(t, g.BuildRoad(e(5, 5, hexgrid.NorthEast)), board.ErrIllegalPlacement,
		"edge off the board")
	require.ErrorIs(t, g.BuildRoad(e(-1, -1, hexgrid.NorthEast)), board.ErrIllegalPlacement,
		"edge not touching red's network")
	require.Equal(t, 1, g.Ledger().Count(0, board.Brick), "failed placements must not charge")

	before := g.Hash()
	require.NoError(t, g.BuildRoad(e(0, 0, hexgrid.East)), "edge continues red's first road")
	require.Equal(t, 0, g.Ledger().Count(0, board.Wood), "road costs one wood")
	require.Equal(t, 0, g.Ledger().Count(0, board.Brick), "road costs one brick")
	_, placed := g.Board().RoadAt(e(0, 0, hexgrid.East))
	require.True(t, placed)

	require.NoError(t, g.Undo())
	require.Equal(t, before, g.Hash(), "undo must refund and clear the road")
}

func TestBuildSettlementMainPhase(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)
	forceMainPhase(g)
	giveResources(t, g, 0, ledger.Bundle{board.Wood: 1, board.Brick: 2})

	require.ErrorIs(t, g.BuildSettlement(v(1, -1, hexgrid.South)), board.ErrIllegalPlacement,
		"vertex within one edge of red's settlement")
	require.ErrorIs(t, g.BuildSettlement(v(0, 1, hexgrid.North)), board.ErrIllegalPlacement,
		"vertex not on red's network")

	require.NoError(t, g.BuildRoad(e(0, 0, hexgrid.East)))
	require.NoError(t, g.BuildSettlement(v(0, 1, hexgrid.North)),
		"two edges away and connected by the new road")
	require.Equal(t, 3, g.VictoryPoints(0))
	require.Empty(t, g.Ledger().Hand(0), "road and settlement spend the whole hand")

	require.NoError(t, g.Undo())
	require.Equal(t, 2, g.VictoryPoints(0), "undo removes the settlement point")
	require.Equal(t, 1, g.Ledger().Count(0, board.Sheep), "undo refunds the settlement")
}

func TestBuildCity(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)
	forceMainPhase(g)
	giveResources(t, g, 0, ledger.Bundle{board.Wheat: 2, board.Ore: 3})

	require.ErrorIs(t, g.BuildCity(v(-2, 0, hexgrid.North)), board.ErrIllegalPlacement,
		"blue's settlement is not upgradable by red")
	require.ErrorIs(t, g.BuildCity(v(1, 0, hexgrid.South)), board.ErrIllegalPlacement,
		"empty vertex")

	require.NoError(t, g.BuildCity(v(0, 0, hexgrid.North)))
	require.Equal(t, 3, g.VictoryPoints(0), "a city scores two")
	bld, ok := g.Board().BuildingAt(v(0, 0, hexgrid.North))
	require.True(t, ok)
	require.Equal(t, board.City, bld.Kind)
	_, settlements, cities := g.PiecesRemaining(0)
	require.Equal(t, 4, settlements, "the settlement piece returns to supply")
	require.Equal(t, 3, cities)

	require.NoError(t, g.Undo())
	bld, ok = g.Board().BuildingAt(v(0, 0, hexgrid.North))
	require.True(t, ok)
	require.Equal(t, board.Settlement, bld.Kind, "undo downgrades the city")
	require.Equal(t, 3, g.Ledger().Count(0, board.Ore), "undo refunds the ore")
}

func TestRollDice(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)

	require.ErrorIs(t, g.EndTurn(), ErrWrongPhase, "the turn cannot end before the roll")

	require.NoError(t, g.RollDice())
	total := g.LastRoll()
	require.GreaterOrEqual(t, total, 2)
	require.LessOrEqual(t, total, 12)
	if total == 7 {
		require.Contains(t, []Phase{Discard, MoveRobberPending}, g.Phase())
	} else {
		require.Equal(t, PostRollMain, g.Phase())
	}
	require.ErrorIs(t, g.RollDice(), ErrWrongPhase, "one roll per turn")

	after := g.Hash()
	require.NoError(t, g.Undo())
	require.Equal(t, PreRoll, g.Phase())
	require.Equal(t, 0, g.LastRoll())
	require.NoError(t, g.Redo())
	require.Equal(t, total, g.LastRoll(), "redo must replay the recorded dice, not reroll")
	require.Equal(t, after, g.Hash())
}

func TestProductionPayout(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)

	injectRoll(t, g, 5, 6)
	require.Equal(t, PostRollMain, g.Phase())
	require.Equal(t, ledger.Bundle{board.Wood: 2, board.Brick: 1, board.Sheep: 1, board.Wheat: 1},
		g.Ledger().Hand(0), "both elevens pay red: hills at (0 0), forest at (0 2)")
	require.Equal(t, ledger.Bundle{board.Sheep: 1, board.Brick: 1},
		g.Ledger().Hand(1), "blue touches no eleven")

	require.NoError(t, g.Undo())
	require.Equal(t, ledger.Bundle{board.Wood: 1, board.Sheep: 1, board.Wheat: 1},
		g.Ledger().Hand(0), "undo returns the payout to the bank")
	require.Equal(t, PreRoll, g.Phase())
}

func TestRobberBlocksProduction(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)

	injectRoll(t, g, 3, 4)
	require.Equal(t, MoveRobberPending, g.Phase(), "no hand exceeds the limit")
	require.NoError(t, g.MoveRobber(tl(0, 0)))
	require.Equal(t, PostRollMain, g.Phase(), "only red borders the hills, so nobody can be robbed")
	require.NoError(t, g.EndTurn())

	injectRoll(t, g, 5, 6)
	require.Equal(t, ledger.Bundle{board.Wood: 2, board.Sheep: 1, board.Wheat: 1},
		g.Ledger().Hand(0), "the robber silences the hills but not the forest")
}

func TestSevenDiscardRobberSteal(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)
	giveResources(t, g, 0, ledger.Bundle{board.Wood: 5})
	base := g.Hash()

	injectRoll(t, g, 3, 4)
	require.Equal(t, Discard, g.Phase())
	require.Equal(t, map[int]int{0: 4}, g.PendingDiscards(), "eight cards discard half, rounded down")

	require.ErrorIs(t, g.RollDice(), ErrWrongPhase, "the robber flow gates the next roll")
	require.ErrorIs(t, g.DiscardCards(1, ledger.Bundle{board.Sheep: 1}), ErrWrongPhase,
		"blue owes nothing")
	require.ErrorIs(t, g.DiscardCards(0, ledger.Bundle{board.Wood: 1}), ledger.ErrInsufficientResources,
		"the discard must be exactly half")

	require.NoError(t, g.DiscardCards(0, ledger.Bundle{board.Wood: 4}))
	require.Equal(t, MoveRobberPending, g.Phase())
	require.Equal(t, 4, g.Ledger().HandSize(0))

	require.ErrorIs(t, g.MoveRobber(tl(-2, 1)), board.ErrIllegalPlacement,
		"the robber must change tiles")
	require.NoError(t, g.MoveRobber(tl(2, 0)))
	require.Equal(t, Steal, g.Phase(), "blue borders the robber with cards in hand")
	require.Equal(t, []int{1}, g.StealCandidates())

	require.ErrorIs(t, g.Steal(0), ledger.ErrNothingToSteal, "the mover cannot rob themselves")
	require.NoError(t, g.Steal(1))
	require.Equal(t, PostRollMain, g.Phase())
	require.Equal(t, 5, g.Ledger().HandSize(0))
	require.Equal(t, 1, g.Ledger().HandSize(1))

	stolen := g.Ledger().Hand(0)
	after := g.Hash()
	require.NoError(t, g.Undo())
	require.NoError(t, g.Redo())
	require.Equal(t, stolen, g.Ledger().Hand(0), "redo must move the same recorded card")
	require.Equal(t, after, g.Hash())

	for i := 0; i < 4; i++ {
		require.NoError(t, g.Undo())
	}
	require.Equal(t, base, g.Hash(), "the whole robber flow must unwind exactly")
}

func TestDevelopmentCards(t *testing.T) {
	t.Run("cards wait a turn and the deck can empty", func(t *testing.T) {
		g := newTestGame(t, 2, WithDeck([]ledger.Card{ledger.Knight}))
		setupTwoPlayers(t, g)
		forceMainPhase(g)
		giveResources(t, g, 0, ledger.Bundle{board.Ore: 1})

		require.NoError(t, g.BuyDevelopmentCard())
		require.Equal(t, 0, g.Ledger().DeckRemaining())
		require.ErrorIs(t, g.BuyDevelopmentCard(), ledger.ErrDeckEmpty)
		require.ErrorIs(t, g.PlayKnight(tl(0, -2), -1), ErrCardNotPlayable,
			"a card cannot be played the turn it was bought")

		g.turn++
		require.NoError(t, g.PlayKnight(tl(0, -2), -1))
		require.Equal(t, tl(0, -2), g.Board().Robber())
		require.Equal(t, 1, g.KnightsPlayed(0))
		require.Equal(t, 0, g.Ledger().CountCard(0, ledger.Knight), "the played card is gone")
		require.ErrorIs(t, g.PlayKnight(tl(0, 0), -1), ErrCardNotPlayable,
			"one development card per turn")

		require.NoError(t, g.Undo())
		require.Equal(t, tl(-2, 1), g.Board().Robber(), "undo returns the robber")
		require.Equal(t, 0, g.KnightsPlayed(0))
		require.Equal(t, 1, g.Ledger().CountCard(0, ledger.Knight), "undo returns the card")
	})

	t.Run("knight robs a victim at the new tile", func(t *testing.T) {
		g := newTestGame(t, 2, WithDeck([]ledger.Card{ledger.Knight}))
		setupTwoPlayers(t, g)
		forceMainPhase(g)
		giveResources(t, g, 0, ledger.Bundle{board.Ore: 1})
		require.NoError(t, g.BuyDevelopmentCard())
		g.turn++

		require.ErrorIs(t, g.PlayKnight(tl(-2, 1), 1), board.ErrIllegalPlacement,
			"the robber must leave its tile")
		require.ErrorIs(t, g.PlayKnight(tl(2, 0), -1), ledger.ErrNothingToSteal,
			"a victim must be chosen when one exists")
		require.ErrorIs(t, g.PlayKnight(tl(2, 0), 0), ledger.ErrNothingToSteal,
			"the mover is not a victim")

		require.NoError(t, g.PlayKnight(tl(2, 0), 1))
		require.Equal(t, 2, g.Ledger().HandSize(0), "red gains the stolen card")
		require.Equal(t, 1, g.Ledger().HandSize(1))

		require.NoError(t, g.Undo())
		require.Equal(t, 1, g.Ledger().HandSize(0))
		require.Equal(t, 2, g.Ledger().HandSize(1), "undo returns the stolen card")
	})

	t.Run("road building chains two free roads", func(t *testing.T) {
		g := newTestGame(t, 2, WithDeck([]ledger.Card{ledger.RoadBuilding}))
		setupTwoPlayers(t, g)
		forceMainPhase(g)
		giveResources(t, g, 0, ledger.Bundle{board.Ore: 1})
		require.NoError(t, g.BuyDevelopmentCard())
		g.turn++

		require.ErrorIs(t, g.PlayRoadBuilding(e(0, 0, hexgrid.East), e(0, 0, hexgrid.East)),
			board.ErrIllegalPlacement, "two distinct edges required")
		require.ErrorIs(t, g.PlayRoadBuilding(e(0, 0, hexgrid.East), e(-1, 2, hexgrid.NorthEast)),
			board.ErrIllegalPlacement, "the second road must join the network or the first road")

		hand := g.Ledger().Hand(0)
		require.NoError(t, g.PlayRoadBuilding(e(0, 0, hexgrid.East), e(0, 1, hexgrid.NorthEast)),
			"the second edge chains off the first")
		require.Equal(t, hand, g.Ledger().Hand(0), "road building is free")
		require.Equal(t, 3, g.Board().LongestRoad(0))

		require.NoError(t, g.Undo())
		_, placed := g.Board().RoadAt(e(0, 0, hexgrid.East))
		require.False(t, placed, "undo removes both roads")
		require.Equal(t, 1, g.Ledger().CountCard(0, ledger.RoadBuilding))
	})

	t.Run("monopoly drains every opponent", func(t *testing.T) {
		g := newTestGame(t, 3, WithDeck([]ledger.Card{ledger.Monopoly}))
		g.phase = PostRollMain
		g.turn = 1
		giveResources(t, g, 0, ledger.Bundle{board.Sheep: 1, board.Wheat: 1, board.Ore: 1})
		require.NoError(t, g.BuyDevelopmentCard())
		g.turn++
		giveResources(t, g, 1, ledger.Bundle{board.Sheep: 2, board.Brick: 1})
		giveResources(t, g, 2, ledger.Bundle{board.Sheep: 3})

		require.NoError(t, g.PlayMonopoly(board.Sheep))
		require.Equal(t, 5, g.Ledger().Count(0, board.Sheep), "red takes all five sheep")
		require.Equal(t, 0, g.Ledger().Count(1, board.Sheep))
		require.Equal(t, 1, g.Ledger().Count(1, board.Brick), "other resources stay put")
		require.Equal(t, 0, g.Ledger().Count(2, board.Sheep))

		require.NoError(t, g.Undo())
		require.Equal(t, 0, g.Ledger().Count(0, board.Sheep))
		require.Equal(t, 2, g.Ledger().Count(1, board.Sheep), "undo returns each victim's cards")
		require.Equal(t, 3, g.Ledger().Count(2, board.Sheep))

		require.NoError(t, g.Redo())
		require.Equal(t, 5, g.Ledger().Count(0, board.Sheep), "redo repeats the same takes")
	})

	t.Run("year of plenty respects the bank", func(t *testing.T) {
		g := newTestGame(t, 2, WithDeck([]ledger.Card{ledger.YearOfPlenty}))
		g.phase = PostRollMain
		g.turn = 1
		giveResources(t, g, 0, ledger.Bundle{board.Sheep: 1, board.Wheat: 1, board.Ore: 1})
		require.NoError(t, g.BuyDevelopmentCard())
		g.turn++

		bankOre := g.Ledger().BankCount(board.Ore)
		giveResources(t, g, 1, ledger.Bundle{board.Ore: bankOre - 1})
		require.ErrorIs(t, g.PlayYearOfPlenty(board.Ore, board.Ore), ledger.ErrInsufficientResources,
			"the bank holds a single ore")

		require.NoError(t, g.PlayYearOfPlenty(board.Ore, board.Wood))
		require.Equal(t, 1, g.Ledger().Count(0, board.Ore))
		require.Equal(t, 1, g.Ledger().Count(0, board.Wood))
		require.Equal(t, 0, g.Ledger().BankCount(board.Ore))

		require.NoError(t, g.Undo())
		require.Equal(t, 1, g.Ledger().BankCount(board.Ore), "undo returns the draw")
		require.Equal(t, 1, g.Ledger().CountCard(0, ledger.YearOfPlenty))
	})

	t.Run("victory point cards end the game at the threshold", func(t *testing.T) {
		deck := []ledger.Card{ledger.VictoryPoint, ledger.VictoryPoint, ledger.VictoryPoint}
		g := newTestGame(t, 2, WithDeck(deck), WithVictoryThreshold(5))
		setupTwoPlayers(t, g)
		forceMainPhase(g)
		giveResources(t, g, 0, ledger.Bundle{board.Sheep: 2, board.Wheat: 2, board.Ore: 3})

		require.NoError(t, g.BuyDevelopmentCard())
		require.NoError(t, g.BuyDevelopmentCard())
		_, over := g.Winner()
		require.False(t, over, "four points is one short")

		require.NoError(t, g.BuyDevelopmentCard())
		winner, over := g.Winner()
		require.True(t, over)
		require.Equal(t, 0, winner)
		require.Equal(t, GameOver, g.Phase())
		require.Equal(t, 2, g.VictoryPoints(0), "hidden cards stay out of the public score")

		require.ErrorIs(t, g.RollDice(), ErrGameOver)
		require.ErrorIs(t, g.EndTurn(), ErrGameOver)
		require.ErrorIs(t, g.BuildRoad(e(0, 0, hexgrid.East)), ErrGameOver)

		require.NoError(t, g.Undo(), "undo still works after the game ends")
		_, over = g.Winner()
		require.False(t, over, "taking back the last buy reopens the game")
		require.Equal(t, PostRollMain, g.Phase())

		require.NoError(t, g.Redo())
		winner, over = g.Winner()
		require.True(t, over)
		require.Equal(t, 0, winner)
	})
}

func TestLongestRoadAward(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)
	forceMainPhase(g)
	giveResources(t, g, 0, ledger.Bundle{board.Wood: 3, board.Brick: 4})

	chain := []hexgrid.Edge{
		e(0, 0, hexgrid.East),
		e(0, 1, hexgrid.NorthEast),
		e(1, 0, hexgrid.SouthEast),
		e(1, 1, hexgrid.NorthEast),
	}
	for i, edge := range chain {
		require.NoError(t, g.BuildRoad(edge), "chain edge %d", i)
		if i < len(chain)-1 {
			_, held := g.LongestRoadHolder()
			require.False(t, held, "four roads do not reach the minimum")
		}
	}
	holder, held := g.LongestRoadHolder()
	require.True(t, held, "five connected roads take the award")
	require.Equal(t, 0, holder)
	require.Equal(t, 4, g.VictoryPoints(0), "two settlements plus the bonus")

	require.NoError(t, g.Undo())
	_, held = g.LongestRoadHolder()
	require.False(t, held, "undoing the fifth road retracts the award")

	require.NoError(t, g.Redo())
	holder, held = g.LongestRoadHolder()
	require.True(t, held)
	require.Equal(t, 0, holder)

	t.Run("an opposing settlement can sever the road", func(t *testing.T) {
		require.NoError(t, g.Board().PlaceSettlement(v(0, 1, hexgrid.North), 1, true))
		g.recomputeLongestRoad()
		_, held := g.LongestRoadHolder()
		require.False(t, held, "the cut leaves no five-length road")
		require.Equal(t, 3, g.Board().LongestRoad(0))

		require.NoError(t, g.Board().RemoveSettlement(v(0, 1, hexgrid.North)))
		g.recomputeLongestRoad()
		holder, held := g.LongestRoadHolder()
		require.True(t, held, "the uncut road requalifies")
		require.Equal(t, 0, holder)
	})
}

// staircase places a settlement at the north corner of (q,r) and a connected
// run of n roads descending the q column, alternating NE and E sides.
func staircase(t *testing.T, g *Game, seat, q, r, n int) {
	t.Helper()
	require.NoError(t, g.Board().PlaceSettlement(v(q, r, hexgrid.North), seat, true))
	for i := 0; i < n; i++ {
		edge := e(q, r+i/2, hexgrid.NorthEast)
		if i%2 == 1 {
			edge = e(q, r+i/2, hexgrid.East)
		}
		require.NoError(t, g.Board().PlaceRoad(edge, seat), "seat %d edge %d", seat, i)
	}
}

func TestLongestRoadSetAsideOnTiedCut(t *testing.T) {
	g := newTestGame(t, 3)

	staircase(t, g, 0, -2, 0, 6)
	g.recomputeLongestRoad()
	holder, held := g.LongestRoadHolder()
	require.True(t, held)
	require.Equal(t, 0, holder)

	staircase(t, g, 1, 0, -2, 6)
	staircase(t, g, 2, 2, -2, 6)
	g.recomputeLongestRoad()
	holder, held = g.LongestRoadHolder()
	require.True(t, held, "matching the holder's length moves nothing")
	require.Equal(t, 0, holder)

	// blue settles on red's path, splitting six roads into five and one
	require.NoError(t, g.Board().PlaceSettlement(v(-1, 1, hexgrid.South), 1, true))
	g.recomputeLongestRoad()
	require.Equal(t, 5, g.Board().LongestRoad(0))
	_, held = g.LongestRoadHolder()
	require.False(t, held,
		"two six-length roads above the cut holder set the award aside")

	require.NoError(t, g.Board().PlaceRoad(e(0, 1, hexgrid.NorthEast), 1))
	g.recomputeLongestRoad()
	holder, held = g.LongestRoadHolder()
	require.True(t, held, "a sole longest road reclaims the set-aside award")
	require.Equal(t, 1, holder)
}

func TestLargestArmyMovement(t *testing.T) {
	g := newTestGame(t, 3)

	g.knights = []int{2, 0, 0}
	g.recomputeLargestArmy()
	_, held := g.LargestArmyHolder()
	require.False(t, held, "two knights miss the minimum")

	g.knights[0] = 3
	g.recomputeLargestArmy()
	holder, held := g.LargestArmyHolder()
	require.True(t, held)
	require.Equal(t, 0, holder)

	g.knights[1] = 3
	g.recomputeLargestArmy()
	holder, _ = g.LargestArmyHolder()
	require.Equal(t, 0, holder, "a tie keeps the current holder")

	g.knights[1] = 4
	g.recomputeLargestArmy()
	holder, _ = g.LargestArmyHolder()
	require.Equal(t, 1, holder, "a strictly larger army takes the award")

	g.knights[0] = 4
	g.recomputeLargestArmy()
	holder, _ = g.LargestArmyHolder()
	require.Equal(t, 1, holder, "matching the holder is not enough")

	require.Equal(t, 2, g.VictoryPoints(1), "the award is worth two points")
}

func TestMaritimeTrade(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)
	forceMainPhase(g)
	giveResources(t, g, 0, ledger.Bundle{board.Wheat: 3})

	require.Equal(t, 4, g.Board().PortRatio(0, board.Wheat), "red settled away from every port")
	require.Error(t, g.MaritimeTrade(board.Wheat, board.Wheat), "a resource cannot buy itself")
	require.ErrorIs(t, g.MaritimeTrade(board.Brick, board.Ore), ledger.ErrInsufficientResources,
		"four brick needed, none held")

	require.NoError(t, g.MaritimeTrade(board.Wheat, board.Ore))
	require.Equal(t, 0, g.Ledger().Count(0, board.Wheat))
	require.Equal(t, 1, g.Ledger().Count(0, board.Ore))

	require.NoError(t, g.Undo())
	require.Equal(t, 4, g.Ledger().Count(0, board.Wheat), "undo restores the four wheat")
	require.Equal(t, 0, g.Ledger().Count(0, board.Ore))

	bankOre := g.Ledger().BankCount(board.Ore)
	giveResources(t, g, 1, ledger.Bundle{board.Ore: bankOre})
	require.ErrorIs(t, g.MaritimeTrade(board.Wheat, board.Ore), ledger.ErrInsufficientResources,
		"the bank is out of ore")
}

func TestEndTurnRotation(t *testing.T) {
	g := newTestGame(t, 2)
	setupTwoPlayers(t, g)
	forceMainPhase(g)
	g.devCardPlayed = true

	require.NoError(t, g.EndTurn())
	require.Equal(t, 1, g.CurrentSeat())
	require.Equal(t, 2, g.Turn())
	require.Equal(t, PreRoll, g.Phase())
	require.Equal(t, 0, g.LastRoll())
	require.False(t, g.devCardPlayed, "the card-played flag resets each turn")

	forceMainPhase(g)
	require.NoError(t, g.EndTurn())
	require.Equal(t, 0, g.CurrentSeat(), "play wraps back to the first seat")
	require.Equal(t, 3, g.Turn())

	require.NoError(t, g.Undo())
	require.Equal(t, 1, g.CurrentSeat())
	require.NoError(t, g.Undo())
	require.Equal(t, 0, g.CurrentSeat())
	require.True(t, g.devCardPlayed, "undo restores the turn flags")
}
