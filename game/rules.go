package game

import (
	"github.com/rosshamish/catan/board"
	"github.com/rosshamish/catan/ledger"
)

// Standard game numbers.
const (
	DefaultVictoryThreshold = 10

	// HandLimit is the largest hand safe from a rolled seven; bigger hands
	// discard half, rounded down.
	HandLimit = 7

	// LongestRoadMinimum and LargestArmyMinimum are the qualifying sizes for
	// the two bonus awards. Each award is worth two points and moves only to
	// a strictly better claim; a tie keeps the current holder.
	LongestRoadMinimum = 5
	LargestArmyMinimum = 3

	BonusPoints = 2

	// Per-seat piece supplies.
	MaxRoads       = 15
	MaxSettlements = 5
	MaxCities      = 4

	MinPlayers = 2
	MaxPlayers = 4
)

// Build and buy costs, paid to the bank.
var (
	RoadCost       = ledger.Bundle{board.Wood: 1, board.Brick: 1}
	SettlementCost = ledger.Bundle{board.Wood: 1, board.Brick: 1, board.Sheep: 1, board.Wheat: 1}
	CityCost       = ledger.Bundle{board.Wheat: 2, board.Ore: 3}
	DevCardCost    = ledger.Bundle{board.Sheep: 1, board.Wheat: 1, board.Ore: 1}
)
