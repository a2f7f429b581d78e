package game

import (
	"slices"

	"github.com/rosshamish/catan/board"
	"github.com/rosshamish/catan/hexgrid"
	"github.com/rosshamish/catan/ledger"
)

// LegalActions enumerates the flat actions available in the current state,
// in a deterministic order. During the discard phase it proposes one
// canonical bundle per owing seat rather than every combination. Peer trade
// moves are not enumerated; drivers negotiate those through the session
// intents.
func (g *Game) LegalActions() []Action {
	switch g.phase {
	case SetupRoundOne, SetupRoundTwo:
		return g.legalSetup()
	case PreRoll:
		return []Action{{Kind: ActionRollDice, Seat: g.current}}
	case Discard:
		return g.legalDiscards()
	case MoveRobberPending:
		return g.legalRobberMoves()
	case Steal:
		return g.legalSteals()
	case PostRollMain:
		return g.legalMain()
	default:
		return nil
	}
}

func (g *Game) legalSetup() []Action {
	var out []Action
	if !g.hasSetupPlaced {
		for _, v := range boardVertices(g.board) {
			if g.board.CanPlaceSettlement(v, g.current, true) {
				out = append(out, Action{Kind: ActionBuildSettlement, Seat: g.current, Vertex: v})
			}
		}
		return out
	}
	for _, e := range g.setupPlaced.Edges() {
		if g.board.CanPlaceRoad(e, g.current) {
			out = append(out, Action{Kind: ActionBuildRoad, Seat: g.current, Edge: e})
		}
	}
	return out
}

func (g *Game) legalDiscards() []Action {
	seats := make([]int, 0, len(g.pendingDiscards))
	for seat := range g.pendingDiscards {
		seats = append(seats, seat)
	}
	slices.Sort(seats)
	out := make([]Action, 0, len(seats))
	for _, seat := range seats {
		bundle := greedyDiscard(g.ledger.Hand(seat), g.pendingDiscards[seat])
		out = append(out, Action{Kind: ActionDiscard, Seat: seat, Discard: bundle})
	}
	return out
}

func (g *Game) legalRobberMoves() []Action {
	var out []Action
	for _, t := range g.board.Tiles() {
		if g.board.CanMoveRobber(t) {
			out = append(out, Action{Kind: ActionMoveRobber, Seat: g.current, Tile: t})
		}
	}
	return out
}

func (g *Game) legalSteals() []Action {
	candidates := g.StealCandidates()
	out := make([]Action, 0, len(candidates))
	for _, victim := range candidates {
		out = append(out, Action{Kind: ActionSteal, Seat: g.current, Victim: victim})
	}
	return out
}

func (g *Game) legalMain() []Action {
	var out []Action
	seat := g.current
	roads, settlements, cities := g.PiecesRemaining(seat)

	if roads > 0 && g.canAfford(seat, RoadCost) {
		for _, e := range boardEdges(g.board) {
			if g.board.CanPlaceRoad(e, seat) {
				out = append(out, Action{Kind: ActionBuildRoad, Seat: seat, Edge: e})
			}
		}
	}
	if settlements > 0 && g.canAfford(seat, SettlementCost) {
		for _, v := range boardVertices(g.board) {
			if g.board.CanPlaceSettlement(v, seat, false) {
				out = append(out, Action{Kind: ActionBuildSettlement, Seat: seat, Vertex: v})
			}
		}
	}
	if cities > 0 && g.canAfford(seat, CityCost) {
		for _, v := range boardVertices(g.board) {
			if g.board.CanPlaceCity(v, seat) {
				out = append(out, Action{Kind: ActionBuildCity, Seat: seat, Vertex: v})
			}
		}
	}
	if g.ledger.DeckRemaining() > 0 && g.canAfford(seat, DevCardCost) {
		out = append(out, Action{Kind: ActionBuyDevCard, Seat: seat})
	}
	if !g.devCardPlayed {
		out = append(out, g.legalDevPlays()...)
	}
	out = append(out, g.legalMaritime()...)
	out = append(out, Action{Kind: ActionEndTurn, Seat: seat})
	return out
}

func (g *Game) legalDevPlays() []Action {
	var out []Action
	seat := g.current

	if g.ledger.HasPlayableCard(seat, ledger.Knight, g.turn) {
		for _, t := range g.board.Tiles() {
			if !g.board.CanMoveRobber(t) {
				continue
			}
			candidates := g.stealCandidatesAt(t)
			if len(candidates) == 0 {
				out = append(out, Action{Kind: ActionPlayKnight, Seat: seat, Tile: t, Victim: -1})
				continue
			}
			for _, victim := range candidates {
				out = append(out, Action{Kind: ActionPlayKnight, Seat: seat, Tile: t, Victim: victim})
			}
		}
	}

	if roads, _, _ := g.PiecesRemaining(seat); roads >= 2 &&
		g.ledger.HasPlayableCard(seat, ledger.RoadBuilding, g.turn) {
		legal := legalRoadEdges(g.board, seat)
		for i, e1 := range legal {
			for _, e2 := range legal[i+1:] {
				out = append(out, Action{Kind: ActionPlayRoadBuilding, Seat: seat, Edge: e1, Edge2: e2})
			}
			for _, e2 := range e1.Adjacent() {
				if !g.board.HasEdge(e2) || slices.Contains(legal, e2) {
					continue
				}
				if _, occupied := g.board.RoadAt(e2); occupied {
					continue
				}
				out = append(out, Action{Kind: ActionPlayRoadBuilding, Seat: seat, Edge: e1, Edge2: e2})
			}
		}
	}

	if g.ledger.HasPlayableCard(seat, ledger.Monopoly, g.turn) {
		for _, r := range board.Resources {
			out = append(out, Action{Kind: ActionPlayMonopoly, Seat: seat, Resource: r})
		}
	}

	if g.ledger.HasPlayableCard(seat, ledger.YearOfPlenty, g.turn) {
		for i, r1 := range board.Resources {
			for _, r2 := range board.Resources[i:] {
				need := 1
				if r1 == r2 {
					need = 2
				}
				if g.ledger.BankCount(r1) >= need && g.ledger.BankCount(r2) >= 1 {
					out = append(out, Action{Kind: ActionPlayYearOfPlenty, Seat: seat, Resource: r1, Resource2: r2})
				}
			}
		}
	}
	return out
}

func (g *Game) legalMaritime() []Action {
	var out []Action
	seat := g.current
	for _, give := range board.Resources {
		ratio := g.board.PortRatio(seat, give)
		if g.ledger.Count(seat, give) < ratio {
			continue
		}
		for _, get := range board.Resources {
			if get == give || g.ledger.BankCount(get) < 1 {
				continue
			}
			out = append(out, Action{Kind: ActionMaritimeTrade, Seat: seat, Resource: give, Resource2: get})
		}
	}
	return out
}

func (g *Game) canAfford(seat int, cost ledger.Bundle) bool {
	for r, n := range cost {
		if g.ledger.Count(seat, r) < n {
			return false
		}
	}
	return true
}

// greedyDiscard builds one discard bundle of the required size, taking
// resources in canonical order.
func greedyDiscard(hand ledger.Bundle, required int) ledger.Bundle {
	out := ledger.Bundle{}
	left := required
	for _, r := range board.Resources {
		if left == 0 {
			break
		}
		n := min(hand[r], left)
		if n > 0 {
			out[r] = n
			left -= n
		}
	}
	return out
}

func legalRoadEdges(b *board.Board, seat int) []hexgrid.Edge {
	var out []hexgrid.Edge
	for _, e := range boardEdges(b) {
		if b.CanPlaceRoad(e, seat) {
			out = append(out, e)
		}
	}
	return out
}

// boardVertices lists the board's vertices once each, sorted.
func boardVertices(b *board.Board) []hexgrid.Vertex {
	seen := make(map[hexgrid.Vertex]bool)
	var out []hexgrid.Vertex
	for _, t := range b.Tiles() {
		for _, v := range t.Vertices() {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	slices.SortFunc(out, compareVertices)
	return out
}

// boardEdges lists the board's edges once each, sorted.
func boardEdges(b *board.Board) []hexgrid.Edge {
	seen := make(map[hexgrid.Edge]bool)
	var out []hexgrid.Edge
	for _, t := range b.Tiles() {
		for _, e := range t.Edges() {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	slices.SortFunc(out, compareEdges)
	return out
}

func compareVertices(a, b hexgrid.Vertex) int {
	if a.Tile.Q != b.Tile.Q {
		return a.Tile.Q - b.Tile.Q
	}
	if a.Tile.R != b.Tile.R {
		return a.Tile.R - b.Tile.R
	}
	return int(a.Corner) - int(b.Corner)
}

func compareEdges(a, b hexgrid.Edge) int {
	if a.Tile.Q != b.Tile.Q {
		return a.Tile.Q - b.Tile.Q
	}
	if a.Tile.R != b.Tile.R {
		return a.Tile.R - b.Tile.R
	}
	return int(a.Side) - int(b.Side)
}
