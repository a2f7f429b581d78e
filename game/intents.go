package game

import (
	"github.com/google/uuid"

	"github.com/rosshamish/catan/board"
	"github.com/rosshamish/catan/hexgrid"
	"github.com/rosshamish/catan/journal"
	"github.com/rosshamish/catan/ledger"
	"github.com/rosshamish/catan/trade"
)

// do runs a command through the journal and logs the transcript line on
// success.
func (g *Game) do(cmd journal.Command) error {
	if err := g.journal.Do(cmd); err != nil {
		return err
	}
	g.log.Debug().Msg(cmd.String())
	return nil
}

// BuildSettlement places a settlement for the current player. During setup
// it is the free placement for the round; afterwards it costs resources and
// must connect to the player's roads.
func (g *Game) BuildSettlement(v hexgrid.Vertex) error {
	return g.do(&buildSettlementCmd{g: g, seat: g.current, vertex: v})
}

// BuildRoad places a road for the current player. During setup it must touch
// the settlement placed this round; afterwards it costs resources.
func (g *Game) BuildRoad(e hexgrid.Edge) error {
	return g.do(&buildRoadCmd{g: g, seat: g.current, edge: e})
}

// BuildCity upgrades one of the current player's settlements.
func (g *Game) BuildCity(v hexgrid.Vertex) error {
	return g.do(&buildCityCmd{g: g, seat: g.current, vertex: v})
}

// BuyDevelopmentCard draws the top card of the deck for the current player.
func (g *Game) BuyDevelopmentCard() error {
	return g.do(&buyDevCardCmd{g: g, seat: g.current})
}

// RollDice rolls for the current player and applies the outcome: production
// on most rolls, the robber sequence on a seven.
func (g *Game) RollDice() error {
	return g.do(&rollDiceCmd{g: g, seat: g.current})
}

// DiscardCards pays the seat's share of a seven. Any seat that owes a
// discard may act, not just the roller.
func (g *Game) DiscardCards(seat int, discard ledger.Bundle) error {
	return g.do(&discardCmd{g: g, seat: seat, bundle: discard.Clone()})
}

// MoveRobber places the robber on a new tile for the current player.
func (g *Game) MoveRobber(t hexgrid.Tile) error {
	return g.do(&moveRobberCmd{g: g, seat: g.current, tile: t})
}

// Steal takes one random card from a victim adjacent to the robber.
func (g *Game) Steal(victim int) error {
	return g.do(&stealCmd{g: g, seat: g.current, victim: victim})
}

// PlayKnight plays a knight card: the robber moves to t and the current
// player robs victim. Pass victim -1 when no opponent is adjacent.
func (g *Game) PlayKnight(t hexgrid.Tile, victim int) error {
	return g.do(&playKnightCmd{g: g, seat: g.current, tile: t, victim: victim})
}

// PlayRoadBuilding plays a road building card, placing two free roads. The
// second edge may chain off the first.
func (g *Game) PlayRoadBuilding(e1, e2 hexgrid.Edge) error {
	return g.do(&playRoadBuildingCmd{g: g, seat: g.current, e1: e1, e2: e2})
}

// PlayMonopoly plays a monopoly card, taking every opponent's cards of one
// resource.
func (g *Game) PlayMonopoly(r board.Resource) error {
	return g.do(&playMonopolyCmd{g: g, seat: g.current, resource: r})
}

// PlayYearOfPlenty plays a year of plenty card, drawing two resources of the
// player's choice from the bank. The two may be the same.
func (g *Game) PlayYearOfPlenty(r1, r2 board.Resource) error {
	return g.do(&playYearOfPlentyCmd{g: g, seat: g.current, r1: r1, r2: r2})
}

// ProposeTrade opens a trade session from the current player to the named
// respondents and returns its ID. Only one session may be open at a time.
func (g *Game) ProposeTrade(respondents []int, offer trade.Offer) (uuid.UUID, error) {
	resp := make([]int, len(respondents))
	copy(resp, respondents)
	cmd := &proposeTradeCmd{
		g:           g,
		seat:        g.current,
		respondents: resp,
		offer:       trade.Offer{Giving: offer.Giving.Clone(), Getting: offer.Getting.Clone()},
	}
	if err := g.do(cmd); err != nil {
		return uuid.Nil, err
	}
	return cmd.session.ID(), nil
}

// RespondTrade records a respondent's answer to the open session. A counter
// offer is read from the initiator's point of view.
func (g *Game) RespondTrade(seat int, id uuid.UUID, kind trade.Response, counter trade.Offer) error {
	return g.do(&respondTradeCmd{
		g:       g,
		seat:    seat,
		id:      id,
		kind:    kind,
		counter: trade.Offer{Giving: counter.Giving.Clone(), Getting: counter.Getting.Clone()},
	})
}

// ResolveTrade settles the open session with one accepting partner, moving
// the offered resources both ways. Responses from other seats are implicitly
// declined.
func (g *Game) ResolveTrade(id uuid.UUID, partner int) error {
	return g.do(&resolveTradeCmd{g: g, seat: g.current, id: id, partner: partner})
}

// CancelTrade withdraws the current player's open session.
func (g *Game) CancelTrade(id uuid.UUID) error {
	return g.do(&cancelTradeCmd{g: g, seat: g.current, id: id})
}

// MaritimeTrade trades with the bank at the best ratio the current player's
// ports allow: four to one by default, three or two to one with a port.
func (g *Game) MaritimeTrade(give, get board.Resource) error {
	return g.do(&maritimeTradeCmd{g: g, seat: g.current, give: give, get: get})
}

// EndTurn passes play to the next seat, cancelling any open trade.
func (g *Game) EndTurn() error {
	return g.do(&endTurnCmd{g: g, seat: g.current})
}
