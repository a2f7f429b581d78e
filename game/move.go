package game

import (
	"fmt"

	"github.com/rosshamish/catan/board"
	"github.com/rosshamish/catan/hexgrid"
	"github.com/rosshamish/catan/ledger"
)

// ActionKind names one of the flat, enumerable moves. Peer trade
// negotiation is not enumerable this way; it runs through the session
// intents instead.
type ActionKind int

const (
	ActionRollDice ActionKind = iota
	ActionBuildSettlement
	ActionBuildRoad
	ActionBuildCity
	ActionBuyDevCard
	ActionDiscard
	ActionMoveRobber
	ActionSteal
	ActionPlayKnight
	ActionPlayRoadBuilding
	ActionPlayMonopoly
	ActionPlayYearOfPlenty
	ActionMaritimeTrade
	ActionEndTurn
)

func (k ActionKind) String() string {
	switch k {
	case ActionRollDice:
		return "roll"
	case ActionBuildSettlement:
		return "build settlement"
	case ActionBuildRoad:
		return "build road"
	case ActionBuildCity:
		return "build city"
	case ActionBuyDevCard:
		return "buy dev card"
	case ActionDiscard:
		return "discard"
	case ActionMoveRobber:
		return "move robber"
	case ActionSteal:
		return "steal"
	case ActionPlayKnight:
		return "play knight"
	case ActionPlayRoadBuilding:
		return "play road building"
	case ActionPlayMonopoly:
		return "play monopoly"
	case ActionPlayYearOfPlenty:
		return "play year of plenty"
	case ActionMaritimeTrade:
		return "maritime trade"
	case ActionEndTurn:
		return "end turn"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is one move in flat form, for drivers that enumerate and apply
// moves mechanically. Only the fields the Kind needs are meaningful.
type Action struct {
	Kind      ActionKind
	Seat      int
	Vertex    hexgrid.Vertex
	Edge      hexgrid.Edge
	Edge2     hexgrid.Edge
	Tile      hexgrid.Tile
	Victim    int
	Resource  board.Resource
	Resource2 board.Resource
	Discard   ledger.Bundle
}

// IsStochastic reports whether applying the action consumes randomness.
// Replaying a stochastic action reuses its recorded outcome.
func (a Action) IsStochastic() bool {
	switch a.Kind {
	case ActionRollDice, ActionSteal, ActionBuyDevCard:
		return true
	case ActionPlayKnight:
		return a.Victim >= 0
	default:
		return false
	}
}

// Apply routes a flat action to the matching intent.
func (g *Game) Apply(a Action) error {
	if a.Kind != ActionDiscard && a.Seat != g.current {
		return fmt.Errorf("seat %d acting on seat %d's turn: %w", a.Seat, g.current, ErrNotCurrentPlayer)
	}
	switch a.Kind {
	case ActionRollDice:
		return g.RollDice()
	case ActionBuildSettlement:
		return g.BuildSettlement(a.Vertex)
	case ActionBuildRoad:
		return g.BuildRoad(a.Edge)
	case ActionBuildCity:
		return g.BuildCity(a.Vertex)
	case ActionBuyDevCard:
		return g.BuyDevelopmentCard()
	case ActionDiscard:
		return g.DiscardCards(a.Seat, a.Discard)
	case ActionMoveRobber:
		return g.MoveRobber(a.Tile)
	case ActionSteal:
		return g.Steal(a.Victim)
	case ActionPlayKnight:
		return g.PlayKnight(a.Tile, a.Victim)
	case ActionPlayRoadBuilding:
		return g.PlayRoadBuilding(a.Edge, a.Edge2)
	case ActionPlayMonopoly:
		return g.PlayMonopoly(a.Resource)
	case ActionPlayYearOfPlenty:
		return g.PlayYearOfPlenty(a.Resource, a.Resource2)
	case ActionMaritimeTrade:
		return g.MaritimeTrade(a.Resource, a.Resource2)
	case ActionEndTurn:
		return g.EndTurn()
	default:
		return fmt.Errorf("unknown action kind %d", int(a.Kind))
	}
}
