package game

import (
	"github.com/rosshamish/catan/board"
	"github.com/rosshamish/catan/ledger"
)

// VictoryPoints returns the seat's public score: one per settlement, two per
// city, plus the bonus awards. Victory point cards stay hidden until they
// end the game.
func (g *Game) VictoryPoints(seat int) int {
	pts := 0
	for _, bld := range g.board.Buildings() {
		if bld.Owner != seat {
			continue
		}
		if bld.Kind == board.City {
			pts += 2
		} else {
			pts++
		}
	}
	if g.longestRoadSeat == seat {
		pts += BonusPoints
	}
	if g.largestArmySeat == seat {
		pts += BonusPoints
	}
	return pts
}

// totalScore adds the seat's hidden victory point cards to the public score.
func (g *Game) totalScore(seat int) int {
	return g.VictoryPoints(seat) + g.ledger.CountCard(seat, ledger.VictoryPoint)
}

// checkVictory ends the game when the current player reaches the threshold.
// Only the active player can win; another seat crossing the line mid-turn
// (say, by inheriting the longest road) waits for its own turn, which
// matches the tabletop rule.
func (g *Game) checkVictory() {
	if g.phase == GameOver {
		return
	}
	if g.totalScore(g.current) >= g.threshold {
		g.winner = g.current
		g.phase = GameOver
	}
}

// recomputeLongestRoad re-derives the longest road award from scratch. The
// holder keeps the award on ties; it moves only to a single strictly longer
// road. When a cut road leaves the holder behind several tied longer roads,
// or drops it under the minimum with no unique successor, the award is set
// aside until one seat holds the longest road alone.
func (g *Game) recomputeLongestRoad() {
	lengths := make([]int, len(g.players))
	for seat := range g.players {
		lengths[seat] = g.board.LongestRoad(seat)
	}

	cur := g.longestRoadSeat
	if cur >= 0 && lengths[cur] >= LongestRoadMinimum {
		seat, ties := bestAbove(lengths, lengths[cur], cur)
		switch {
		case ties == 1:
			g.longestRoadSeat = seat
		case ties > 1:
			g.longestRoadSeat = -1
		}
		return
	}
	if seat, ties := bestAbove(lengths, LongestRoadMinimum-1, -1); ties == 1 {
		g.longestRoadSeat = seat
	} else {
		g.longestRoadSeat = -1
	}
}

// recomputeLargestArmy re-derives the largest army award. Same movement
// rules as the longest road; armies never shrink, so the set-aside case
// cannot arise here.
func (g *Game) recomputeLargestArmy() {
	cur := g.largestArmySeat
	if cur >= 0 {
		if seat, ties := bestAbove(g.knights, g.knights[cur], cur); ties == 1 {
			g.largestArmySeat = seat
		}
		return
	}
	if seat, ties := bestAbove(g.knights, LargestArmyMinimum-1, -1); ties == 1 {
		g.largestArmySeat = seat
	}
}

// bestAbove returns the seat other than skip holding the maximum value above
// floor, along with how many seats share that maximum.
func bestAbove(values []int, floor, skip int) (seat, ties int) {
	best := floor
	seat = -1
	for i, v := range values {
		if i == skip || v <= floor {
			continue
		}
		switch {
		case v > best:
			best, seat, ties = v, i, 1
		case v == best:
			ties++
		}
	}
	return seat, ties
}
