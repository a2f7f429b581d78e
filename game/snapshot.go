package game

import (
	"github.com/google/uuid"

	"github.com/rosshamish/catan/board"
	"github.com/rosshamish/catan/hexgrid"
	"github.com/rosshamish/catan/ledger"
	"github.com/rosshamish/catan/trade"
)

// PlayerSnapshot is one seat's standing: public score and pieces plus the
// private hand. Callers showing a single player's view should hide the
// other hands themselves.
type PlayerSnapshot struct {
	Seat            int
	Name            string
	Color           string
	VictoryPoints   int
	Hand            ledger.Bundle
	DevCards        []ledger.HeldCard
	KnightsPlayed   int
	RoadsLeft       int
	SettlementsLeft int
	CitiesLeft      int
	LongestRoad     int
	HasLongestRoad  bool
	HasLargestArmy  bool
}

// TradeSnapshot describes the open trade session, if any.
type TradeSnapshot struct {
	ID          uuid.UUID
	Initiator   int
	Respondents []int
	Offer       trade.Offer
	Accepting   []int
}

// Snapshot is a point-in-time copy of the observable game state. Mutating
// it does not affect the game.
type Snapshot struct {
	Phase           Phase
	Turn            int
	Current         int
	LastRoll        int
	Robber          hexgrid.Tile
	Players         []PlayerSnapshot
	Bank            ledger.Bundle
	DeckRemaining   int
	PendingDiscards map[int]int
	Trade           *TradeSnapshot
	// Winner is -1 until the game ends.
	Winner int
}

// Snapshot captures the current state for display or automation.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:           g.phase,
		Turn:            g.turn,
		Current:         g.current,
		LastRoll:        g.lastRoll,
		Robber:          g.board.Robber(),
		DeckRemaining:   g.ledger.DeckRemaining(),
		PendingDiscards: g.PendingDiscards(),
		Winner:          g.winner,
	}

	snap.Bank = ledger.Bundle{}
	for _, r := range board.Resources {
		if n := g.ledger.BankCount(r); n > 0 {
			snap.Bank[r] = n
		}
	}

	snap.Players = make([]PlayerSnapshot, len(g.players))
	for seat, p := range g.players {
		roads, settlements, cities := g.PiecesRemaining(seat)
		snap.Players[seat] = PlayerSnapshot{
			Seat:            seat,
			Name:            p.Name,
			Color:           p.Color,
			VictoryPoints:   g.VictoryPoints(seat),
			Hand:            g.ledger.Hand(seat),
			DevCards:        g.ledger.HeldCards(seat),
			KnightsPlayed:   g.knights[seat],
			RoadsLeft:       roads,
			SettlementsLeft: settlements,
			CitiesLeft:      cities,
			LongestRoad:     g.board.LongestRoad(seat),
			HasLongestRoad:  g.longestRoadSeat == seat,
			HasLargestArmy:  g.largestArmySeat == seat,
		}
	}

	if s := g.openTrade; s != nil {
		offer := s.Offer()
		snap.Trade = &TradeSnapshot{
			ID:          s.ID(),
			Initiator:   s.Initiator(),
			Respondents: s.Respondents(),
			Offer:       trade.Offer{Giving: offer.Giving.Clone(), Getting: offer.Getting.Clone()},
			Accepting:   s.Accepting(),
		}
	}
	return snap
}
