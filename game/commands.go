package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/rosshamish/catan/board"
	"github.com/rosshamish/catan/hexgrid"
	"github.com/rosshamish/catan/ledger"
	"github.com/rosshamish/catan/trade"
)

// Commands follow a shared discipline: Apply validates everything first,
// captures the turn state, then mutates. A failed validation leaves the
// game untouched, so the journal can drop the command without cleanup.
// Randomness is realized on the first Apply and replayed from the stored
// outcome on redo.

// formatBundle renders a bundle for transcript lines, resources in
// canonical order.
func formatBundle(b ledger.Bundle) string {
	parts := make([]string, 0, len(b))
	for _, r := range board.Resources {
		if n := b[r]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, r))
		}
	}
	if len(parts) == 0 {
		return "[nothing]"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// startingResources is the bundle granted for a second-round setup
// settlement: one of each resource produced by the touched tiles.
func startingResources(b *board.Board, v hexgrid.Vertex) ledger.Bundle {
	grant := ledger.Bundle{}
	for _, t := range v.Tiles() {
		tile, ok := b.TileAt(t)
		if !ok {
			continue
		}
		if r, ok := tile.Terrain.Resource(); ok {
			grant[r]++
		}
	}
	return grant
}

// sharesVertex reports whether two edges meet at an endpoint.
func sharesVertex(a, b hexgrid.Edge) bool {
	for _, v := range a.Vertices() {
		for _, w := range b.Vertices() {
			if v == w {
				return true
			}
		}
	}
	return false
}

type buildSettlementCmd struct {
	g      *Game
	seat   int
	vertex hexgrid.Vertex
	prev   turnState
	setup  bool
	grant  ledger.Bundle
}

func (c *buildSettlementCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(SetupRoundOne, SetupRoundTwo, PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	setup := g.phase != PostRollMain
	if setup && g.hasSetupPlaced {
		return fmt.Errorf("setup settlement already placed this turn: %w", ErrWrongPhase)
	}
	if _, settlements, _ := g.PiecesRemaining(c.seat); settlements <= 0 {
		return fmt.Errorf("no settlement pieces left: %w", board.ErrIllegalPlacement)
	}
	if !g.board.CanPlaceSettlement(c.vertex, c.seat, setup) {
		return fmt.Errorf("settlement at %v: %w", c.vertex, board.ErrIllegalPlacement)
	}

	var grant ledger.Bundle
	if g.phase == SetupRoundTwo {
		grant = startingResources(g.board, c.vertex)
		for r, n := range grant {
			if held := g.ledger.BankCount(r); held < n {
				grant[r] = held
			}
		}
	}

	c.prev = g.captureTurnState()
	c.setup = setup
	c.grant = grant

	if !setup {
		if err := g.ledger.PayCost(c.seat, SettlementCost); err != nil {
			return err
		}
	}
	if err := g.board.PlaceSettlement(c.vertex, c.seat, setup); err != nil {
		return err
	}
	if setup {
		g.setupPlaced = c.vertex
		g.hasSetupPlaced = true
		if grant.Total() > 0 {
			if err := g.ledger.DrawFromBank(c.seat, grant); err != nil {
				return err
			}
		}
		return nil
	}
	// A new settlement can sever an opponent's road through its vertex.
	g.recomputeLongestRoad()
	g.checkVictory()
	return nil
}

func (c *buildSettlementCmd) Revert() error {
	g := c.g
	if c.grant.Total() > 0 {
		if err := g.ledger.PayCost(c.seat, c.grant); err != nil {
			return err
		}
	}
	if err := g.board.RemoveSettlement(c.vertex); err != nil {
		return err
	}
	if !c.setup {
		if err := g.ledger.RefundCost(c.seat, SettlementCost); err != nil {
			return err
		}
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *buildSettlementCmd) String() string {
	if c.setup {
		return fmt.Sprintf("%s builds settlement at %v", c.g.colorOf(c.seat), c.vertex)
	}
	return fmt.Sprintf("%s buys settlement, builds at %v", c.g.colorOf(c.seat), c.vertex)
}

type buildRoadCmd struct {
	g     *Game
	seat  int
	edge  hexgrid.Edge
	prev  turnState
	setup bool
}

func (c *buildRoadCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(SetupRoundOne, SetupRoundTwo, PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	setup := g.phase != PostRollMain
	if setup {
		if !g.hasSetupPlaced {
			return fmt.Errorf("setup settlement must come before the road: %w", ErrWrongPhase)
		}
		ends := c.edge.Vertices()
		if !slices.Contains(ends[:], g.setupPlaced) {
			return fmt.Errorf("setup road at %v must touch the settlement at %v: %w",
				c.edge, g.setupPlaced, board.ErrIllegalPlacement)
		}
	}
	if roads, _, _ := g.PiecesRemaining(c.seat); roads <= 0 {
		return fmt.Errorf("no road pieces left: %w", board.ErrIllegalPlacement)
	}
	if !g.board.CanPlaceRoad(c.edge, c.seat) {
		return fmt.Errorf("road at %v: %w", c.edge, board.ErrIllegalPlacement)
	}

	c.prev = g.captureTurnState()
	c.setup = setup

	if !setup {
		if err := g.ledger.PayCost(c.seat, RoadCost); err != nil {
			return err
		}
	}
	if err := g.board.PlaceRoad(c.edge, c.seat); err != nil {
		return err
	}
	if setup {
		g.advanceSetup()
		return nil
	}
	g.recomputeLongestRoad()
	g.checkVictory()
	return nil
}

func (c *buildRoadCmd) Revert() error {
	g := c.g
	if err := g.board.RemoveRoad(c.edge); err != nil {
		return err
	}
	if !c.setup {
		if err := g.ledger.RefundCost(c.seat, RoadCost); err != nil {
			return err
		}
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *buildRoadCmd) String() string {
	if c.setup {
		return fmt.Sprintf("%s builds road at %v", c.g.colorOf(c.seat), c.edge)
	}
	return fmt.Sprintf("%s buys road, builds at %v", c.g.colorOf(c.seat), c.edge)
}

type buildCityCmd struct {
	g      *Game
	seat   int
	vertex hexgrid.Vertex
	prev   turnState
}

func (c *buildCityCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if _, _, cities := g.PiecesRemaining(c.seat); cities <= 0 {
		return fmt.Errorf("no city pieces left: %w", board.ErrIllegalPlacement)
	}
	if !g.board.CanPlaceCity(c.vertex, c.seat) {
		return fmt.Errorf("city at %v: %w", c.vertex, board.ErrIllegalPlacement)
	}

	c.prev = g.captureTurnState()

	if err := g.ledger.PayCost(c.seat, CityCost); err != nil {
		return err
	}
	if err := g.board.UpgradeToCity(c.vertex, c.seat); err != nil {
		return err
	}
	g.checkVictory()
	return nil
}

func (c *buildCityCmd) Revert() error {
	g := c.g
	if err := g.board.DowngradeToSettlement(c.vertex); err != nil {
		return err
	}
	if err := g.ledger.RefundCost(c.seat, CityCost); err != nil {
		return err
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *buildCityCmd) String() string {
	return fmt.Sprintf("%s buys city, builds at %v", c.g.colorOf(c.seat), c.vertex)
}

type buyDevCardCmd struct {
	g    *Game
	seat int
	prev turnState
	card ledger.Card
}

func (c *buyDevCardCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if g.ledger.DeckRemaining() == 0 {
		return fmt.Errorf("buy development card: %w", ledger.ErrDeckEmpty)
	}

	c.prev = g.captureTurnState()

	if err := g.ledger.PayCost(c.seat, DevCardCost); err != nil {
		return err
	}
	card, err := g.ledger.DrawDevelopmentCard(c.seat, g.turn)
	if err != nil {
		return err
	}
	c.card = card
	// Victory point cards count the moment they are held.
	g.checkVictory()
	return nil
}

func (c *buyDevCardCmd) Revert() error {
	g := c.g
	if err := g.ledger.ReturnDrawnCard(c.seat); err != nil {
		return err
	}
	if err := g.ledger.RefundCost(c.seat, DevCardCost); err != nil {
		return err
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *buyDevCardCmd) String() string {
	return fmt.Sprintf("%s buys dev card", c.g.colorOf(c.seat))
}

type rollDiceCmd struct {
	g      *Game
	seat   int
	prev   turnState
	d1, d2 int
	rolled bool
	gains  []ledger.Gain
}

func (c *rollDiceCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PreRoll); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}

	c.prev = g.captureTurnState()

	if !c.rolled {
		c.d1 = g.rng.Intn(6) + 1
		c.d2 = g.rng.Intn(6) + 1
		c.rolled = true
	}
	total := c.d1 + c.d2
	g.lastRoll = total

	if total == 7 {
		c.gains = nil
		pending := make(map[int]int)
		for seat := range g.players {
			if size := g.ledger.HandSize(seat); size > HandLimit {
				pending[seat] = size / 2
			}
		}
		g.pendingDiscards = pending
		if len(pending) > 0 {
			g.phase = Discard
		} else {
			g.phase = MoveRobberPending
		}
		return nil
	}

	gains, err := g.ledger.DistributeProduction(g.board, total)
	if err != nil {
		g.restoreTurnState(c.prev)
		return err
	}
	c.gains = gains
	g.phase = PostRollMain
	return nil
}

func (c *rollDiceCmd) Revert() error {
	g := c.g
	if len(c.gains) > 0 {
		if err := g.ledger.UndoGains(c.gains); err != nil {
			return err
		}
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *rollDiceCmd) String() string {
	return fmt.Sprintf("%s rolls %d", c.g.colorOf(c.seat), c.d1+c.d2)
}

type discardCmd struct {
	g      *Game
	seat   int
	bundle ledger.Bundle
	prev   turnState
}

func (c *discardCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(Discard); err != nil {
		return err
	}
	required, ok := g.pendingDiscards[c.seat]
	if !ok {
		return fmt.Errorf("seat %d owes no discard: %w", c.seat, ErrWrongPhase)
	}
	if got := c.bundle.Total(); got != required {
		return fmt.Errorf("seat %d must discard %d cards, got %d: %w",
			c.seat, required, got, ledger.ErrInsufficientResources)
	}

	c.prev = g.captureTurnState()

	if err := g.ledger.PayCost(c.seat, c.bundle); err != nil {
		return err
	}
	delete(g.pendingDiscards, c.seat)
	if len(g.pendingDiscards) == 0 {
		g.phase = MoveRobberPending
	}
	return nil
}

func (c *discardCmd) Revert() error {
	g := c.g
	if err := g.ledger.RefundCost(c.seat, c.bundle); err != nil {
		return err
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *discardCmd) String() string {
	return fmt.Sprintf("%s discards %d cards", c.g.colorOf(c.seat), c.bundle.Total())
}

type moveRobberCmd struct {
	g        *Game
	seat     int
	tile     hexgrid.Tile
	prevTile hexgrid.Tile
	prev     turnState
}

func (c *moveRobberCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(MoveRobberPending); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if !g.board.CanMoveRobber(c.tile) {
		return fmt.Errorf("robber to %v: %w", c.tile, board.ErrIllegalPlacement)
	}

	c.prev = g.captureTurnState()

	prevTile, err := g.board.MoveRobber(c.tile)
	if err != nil {
		return err
	}
	c.prevTile = prevTile
	if len(g.stealCandidatesAt(c.tile)) > 0 {
		g.phase = Steal
	} else {
		g.phase = PostRollMain
	}
	return nil
}

func (c *moveRobberCmd) Revert() error {
	g := c.g
	if _, err := g.board.MoveRobber(c.prevTile); err != nil {
		return err
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *moveRobberCmd) String() string {
	return fmt.Sprintf("%s moves robber to %v", c.g.colorOf(c.seat), c.tile)
}

type stealCmd struct {
	g        *Game
	seat     int
	victim   int
	prev     turnState
	resource board.Resource
	stolen   bool
}

func (c *stealCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(Steal); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if !slices.Contains(g.StealCandidates(), c.victim) {
		return fmt.Errorf("seat %d cannot be robbed: %w", c.victim, ledger.ErrNothingToSteal)
	}

	c.prev = g.captureTurnState()

	if !c.stolen {
		res, err := g.ledger.StealRandomCard(c.victim, c.seat)
		if err != nil {
			return err
		}
		c.resource = res
		c.stolen = true
	} else {
		if err := g.ledger.MoveResource(c.victim, c.seat, c.resource, 1); err != nil {
			return err
		}
	}
	g.phase = PostRollMain
	return nil
}

func (c *stealCmd) Revert() error {
	g := c.g
	if err := g.ledger.MoveResource(c.seat, c.victim, c.resource, 1); err != nil {
		return err
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *stealCmd) String() string {
	return fmt.Sprintf("%s steals from %s", c.g.colorOf(c.seat), c.g.colorOf(c.victim))
}

type playKnightCmd struct {
	g        *Game
	seat     int
	tile     hexgrid.Tile
	victim   int
	prev     turnState
	prevTile hexgrid.Tile
	boughtAt int
	resource board.Resource
	stolen   bool
}

func (c *playKnightCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if g.devCardPlayed {
		return fmt.Errorf("a development card was already played this turn: %w", ErrCardNotPlayable)
	}
	if !g.ledger.HasPlayableCard(c.seat, ledger.Knight, g.turn) {
		return fmt.Errorf("no playable knight: %w", ErrCardNotPlayable)
	}
	if !g.board.CanMoveRobber(c.tile) {
		return fmt.Errorf("robber to %v: %w", c.tile, board.ErrIllegalPlacement)
	}
	candidates := g.stealCandidatesAt(c.tile)
	if c.victim >= 0 && !slices.Contains(candidates, c.victim) {
		return fmt.Errorf("seat %d cannot be robbed at %v: %w", c.victim, c.tile, ledger.ErrNothingToSteal)
	}
	if c.victim < 0 && len(candidates) > 0 {
		return fmt.Errorf("a victim must be chosen from %v: %w", candidates, ledger.ErrNothingToSteal)
	}

	c.prev = g.captureTurnState()

	boughtAt, err := g.ledger.TakeCard(c.seat, ledger.Knight, g.turn)
	if err != nil {
		return err
	}
	c.boughtAt = boughtAt
	prevTile, err := g.board.MoveRobber(c.tile)
	if err != nil {
		return err
	}
	c.prevTile = prevTile
	if c.victim >= 0 {
		if !c.stolen {
			res, err := g.ledger.StealRandomCard(c.victim, c.seat)
			if err != nil {
				return err
			}
			c.resource = res
			c.stolen = true
		} else {
			if err := g.ledger.MoveResource(c.victim, c.seat, c.resource, 1); err != nil {
				return err
			}
		}
	}
	g.knights[c.seat]++
	g.devCardPlayed = true
	g.recomputeLargestArmy()
	g.checkVictory()
	return nil
}

func (c *playKnightCmd) Revert() error {
	g := c.g
	g.knights[c.seat]--
	if c.victim >= 0 {
		if err := g.ledger.MoveResource(c.seat, c.victim, c.resource, 1); err != nil {
			return err
		}
	}
	if _, err := g.board.MoveRobber(c.prevTile); err != nil {
		return err
	}
	g.ledger.UntakeCard(c.seat, ledger.Knight, c.boughtAt)
	g.restoreTurnState(c.prev)
	return nil
}

func (c *playKnightCmd) String() string {
	if c.victim >= 0 {
		return fmt.Sprintf("%s plays knight, moves robber to %v, steals from %s",
			c.g.colorOf(c.seat), c.tile, c.g.colorOf(c.victim))
	}
	return fmt.Sprintf("%s plays knight, moves robber to %v", c.g.colorOf(c.seat), c.tile)
}

type playRoadBuildingCmd struct {
	g        *Game
	seat     int
	e1, e2   hexgrid.Edge
	prev     turnState
	boughtAt int
}

func (c *playRoadBuildingCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if g.devCardPlayed {
		return fmt.Errorf("a development card was already played this turn: %w", ErrCardNotPlayable)
	}
	if !g.ledger.HasPlayableCard(c.seat, ledger.RoadBuilding, g.turn) {
		return fmt.Errorf("no playable road building card: %w", ErrCardNotPlayable)
	}
	if c.e1 == c.e2 {
		return fmt.Errorf("road building needs two distinct edges: %w", board.ErrIllegalPlacement)
	}
	if roads, _, _ := g.PiecesRemaining(c.seat); roads < 2 {
		return fmt.Errorf("road building needs two road pieces, %d left: %w", roads, board.ErrIllegalPlacement)
	}
	if !g.board.CanPlaceRoad(c.e1, c.seat) {
		return fmt.Errorf("road at %v: %w", c.e1, board.ErrIllegalPlacement)
	}
	// The second road may chain off the first before it exists.
	_, occupied := g.board.RoadAt(c.e2)
	chainable := g.board.HasEdge(c.e2) && !occupied && sharesVertex(c.e1, c.e2)
	if !g.board.CanPlaceRoad(c.e2, c.seat) && !chainable {
		return fmt.Errorf("road at %v: %w", c.e2, board.ErrIllegalPlacement)
	}

	c.prev = g.captureTurnState()

	boughtAt, err := g.ledger.TakeCard(c.seat, ledger.RoadBuilding, g.turn)
	if err != nil {
		return err
	}
	c.boughtAt = boughtAt
	if err := g.board.PlaceRoad(c.e1, c.seat); err != nil {
		return err
	}
	if err := g.board.PlaceRoad(c.e2, c.seat); err != nil {
		return err
	}
	g.devCardPlayed = true
	g.recomputeLongestRoad()
	g.checkVictory()
	return nil
}

func (c *playRoadBuildingCmd) Revert() error {
	g := c.g
	if err := g.board.RemoveRoad(c.e2); err != nil {
		return err
	}
	if err := g.board.RemoveRoad(c.e1); err != nil {
		return err
	}
	g.ledger.UntakeCard(c.seat, ledger.RoadBuilding, c.boughtAt)
	g.restoreTurnState(c.prev)
	return nil
}

func (c *playRoadBuildingCmd) String() string {
	return fmt.Sprintf("%s plays road building, builds at %v and %v", c.g.colorOf(c.seat), c.e1, c.e2)
}

type monopolyTake struct {
	seat  int
	count int
}

type playMonopolyCmd struct {
	g        *Game
	seat     int
	resource board.Resource
	prev     turnState
	boughtAt int
	takes    []monopolyTake
}

func (c *playMonopolyCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if g.devCardPlayed {
		return fmt.Errorf("a development card was already played this turn: %w", ErrCardNotPlayable)
	}
	if !g.ledger.HasPlayableCard(c.seat, ledger.Monopoly, g.turn) {
		return fmt.Errorf("no playable monopoly card: %w", ErrCardNotPlayable)
	}

	c.prev = g.captureTurnState()

	boughtAt, err := g.ledger.TakeCard(c.seat, ledger.Monopoly, g.turn)
	if err != nil {
		return err
	}
	c.boughtAt = boughtAt
	c.takes = c.takes[:0]
	for seat := range g.players {
		if seat == c.seat {
			continue
		}
		n := g.ledger.Count(seat, c.resource)
		if n == 0 {
			continue
		}
		if err := g.ledger.MoveResource(seat, c.seat, c.resource, n); err != nil {
			return err
		}
		c.takes = append(c.takes, monopolyTake{seat: seat, count: n})
	}
	g.devCardPlayed = true
	return nil
}

func (c *playMonopolyCmd) Revert() error {
	g := c.g
	for i := len(c.takes) - 1; i >= 0; i-- {
		take := c.takes[i]
		if err := g.ledger.MoveResource(c.seat, take.seat, c.resource, take.count); err != nil {
			return err
		}
	}
	g.ledger.UntakeCard(c.seat, ledger.Monopoly, c.boughtAt)
	g.restoreTurnState(c.prev)
	return nil
}

func (c *playMonopolyCmd) String() string {
	total := 0
	for _, take := range c.takes {
		total += take.count
	}
	return fmt.Sprintf("%s plays monopoly on %s, takes %d", c.g.colorOf(c.seat), c.resource, total)
}

type playYearOfPlentyCmd struct {
	g        *Game
	seat     int
	r1, r2   board.Resource
	prev     turnState
	boughtAt int
}

func (c *playYearOfPlentyCmd) bundle() ledger.Bundle {
	b := ledger.Bundle{}
	b[c.r1]++
	b[c.r2]++
	return b
}

func (c *playYearOfPlentyCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if g.devCardPlayed {
		return fmt.Errorf("a development card was already played this turn: %w", ErrCardNotPlayable)
	}
	if !g.ledger.HasPlayableCard(c.seat, ledger.YearOfPlenty, g.turn) {
		return fmt.Errorf("no playable year of plenty card: %w", ErrCardNotPlayable)
	}
	bundle := c.bundle()
	for r, n := range bundle {
		if g.ledger.BankCount(r) < n {
			return fmt.Errorf("bank holds %d %s: %w", g.ledger.BankCount(r), r, ledger.ErrInsufficientResources)
		}
	}

	c.prev = g.captureTurnState()

	boughtAt, err := g.ledger.TakeCard(c.seat, ledger.YearOfPlenty, g.turn)
	if err != nil {
		return err
	}
	c.boughtAt = boughtAt
	if err := g.ledger.DrawFromBank(c.seat, bundle); err != nil {
		return err
	}
	g.devCardPlayed = true
	return nil
}

func (c *playYearOfPlentyCmd) Revert() error {
	g := c.g
	if err := g.ledger.PayCost(c.seat, c.bundle()); err != nil {
		return err
	}
	g.ledger.UntakeCard(c.seat, ledger.YearOfPlenty, c.boughtAt)
	g.restoreTurnState(c.prev)
	return nil
}

func (c *playYearOfPlentyCmd) String() string {
	return fmt.Sprintf("%s plays year of plenty, takes %s and %s", c.g.colorOf(c.seat), c.r1, c.r2)
}

type proposeTradeCmd struct {
	g           *Game
	seat        int
	respondents []int
	offer       trade.Offer
	prev        turnState
	session     *trade.Session
}

func (c *proposeTradeCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if g.openTrade != nil {
		return fmt.Errorf("a trade session is already open: %w", ErrWrongPhase)
	}
	if len(c.respondents) == 0 {
		return fmt.Errorf("trade needs at least one respondent: %w", trade.ErrUnauthorizedRespondent)
	}
	seen := make(map[int]bool, len(c.respondents))
	for _, r := range c.respondents {
		if r < 0 || r >= len(g.players) || r == c.seat || seen[r] {
			return fmt.Errorf("respondent seat %d: %w", r, trade.ErrUnauthorizedRespondent)
		}
		seen[r] = true
	}

	c.prev = g.captureTurnState()

	// The session survives undo so a redo reopens the same ID.
	if c.session == nil {
		c.session = trade.NewSession(c.seat, c.respondents, c.offer)
	}
	g.openTrade = c.session
	return nil
}

func (c *proposeTradeCmd) Revert() error {
	c.g.restoreTurnState(c.prev)
	return nil
}

func (c *proposeTradeCmd) String() string {
	names := make([]string, len(c.respondents))
	for i, r := range c.respondents {
		names[i] = c.g.colorOf(r)
	}
	return fmt.Sprintf("%s proposes trade to %s: give %s for %s",
		c.g.colorOf(c.seat), strings.Join(names, ", "),
		formatBundle(c.offer.Giving), formatBundle(c.offer.Getting))
}

type respondTradeCmd struct {
	g       *Game
	seat    int
	id      uuid.UUID
	kind    trade.Response
	counter trade.Offer
	prev    turnState
	session *trade.Session
}

func (c *respondTradeCmd) Apply() error {
	g := c.g
	if g.phase == GameOver {
		return fmt.Errorf("respond to trade: %w", ErrGameOver)
	}
	s := g.openTrade
	if s == nil || s.ID() != c.id {
		return fmt.Errorf("trade session %s: %w", c.id, trade.ErrNoSuchSession)
	}

	c.prev = g.captureTurnState()

	if err := s.Respond(c.seat, c.kind, c.counter); err != nil {
		return err
	}
	c.session = s
	return nil
}

func (c *respondTradeCmd) Revert() error {
	if err := c.session.RetractResponse(c.seat); err != nil {
		return err
	}
	c.g.restoreTurnState(c.prev)
	return nil
}

func (c *respondTradeCmd) String() string {
	switch c.kind {
	case trade.Accepted:
		return fmt.Sprintf("%s accepts trade", c.g.colorOf(c.seat))
	case trade.Rejected:
		return fmt.Sprintf("%s rejects trade", c.g.colorOf(c.seat))
	default:
		return fmt.Sprintf("%s counters: give %s for %s", c.g.colorOf(c.seat),
			formatBundle(c.counter.Giving), formatBundle(c.counter.Getting))
	}
}

type resolveTradeCmd struct {
	g       *Game
	seat    int
	id      uuid.UUID
	partner int
	prev    turnState
	session *trade.Session
	offer   trade.Offer
}

func (c *resolveTradeCmd) Apply() error {
	g := c.g
	if g.phase == GameOver {
		return fmt.Errorf("resolve trade: %w", ErrGameOver)
	}
	s := g.openTrade
	if s == nil || s.ID() != c.id {
		return fmt.Errorf("trade session %s: %w", c.id, trade.ErrNoSuchSession)
	}
	if s.Initiator() != c.seat {
		return fmt.Errorf("seat %d did not open the trade: %w", c.seat, ErrNotCurrentPlayer)
	}
	answer, ok := s.Answer(c.partner)
	if !ok || answer.Kind != trade.Accepted {
		return fmt.Errorf("seat %d has not accepted: %w", c.partner, trade.ErrUnauthorizedRespondent)
	}
	offer := s.Offer()

	c.prev = g.captureTurnState()

	if err := g.ledger.Exchange(c.seat, c.partner, offer.Giving, offer.Getting); err != nil {
		return err
	}
	if err := s.Resolve(c.partner); err != nil {
		return err
	}
	c.session = s
	c.offer = offer
	g.openTrade = nil
	return nil
}

func (c *resolveTradeCmd) Revert() error {
	g := c.g
	if err := g.ledger.Exchange(c.seat, c.partner, c.offer.Getting, c.offer.Giving); err != nil {
		return err
	}
	if err := c.session.Reopen(); err != nil {
		return err
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *resolveTradeCmd) String() string {
	return fmt.Sprintf("%s trades %s to %s for %s", c.g.colorOf(c.seat),
		formatBundle(c.offer.Giving), c.g.colorOf(c.partner), formatBundle(c.offer.Getting))
}

type cancelTradeCmd struct {
	g       *Game
	seat    int
	id      uuid.UUID
	prev    turnState
	session *trade.Session
}

func (c *cancelTradeCmd) Apply() error {
	g := c.g
	if g.phase == GameOver {
		return fmt.Errorf("cancel trade: %w", ErrGameOver)
	}
	s := g.openTrade
	if s == nil || s.ID() != c.id {
		return fmt.Errorf("trade session %s: %w", c.id, trade.ErrNoSuchSession)
	}
	if s.Initiator() != c.seat {
		return fmt.Errorf("seat %d did not open the trade: %w", c.seat, ErrNotCurrentPlayer)
	}

	c.prev = g.captureTurnState()

	if err := s.Cancel(); err != nil {
		return err
	}
	c.session = s
	g.openTrade = nil
	return nil
}

func (c *cancelTradeCmd) Revert() error {
	if err := c.session.Reopen(); err != nil {
		return err
	}
	c.g.restoreTurnState(c.prev)
	return nil
}

func (c *cancelTradeCmd) String() string {
	return fmt.Sprintf("%s cancels trade", c.g.colorOf(c.seat))
}

type maritimeTradeCmd struct {
	g         *Game
	seat      int
	give, get board.Resource
	ratio     int
	prev      turnState
}

func (c *maritimeTradeCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}
	if c.give == c.get {
		return fmt.Errorf("maritime trade of %s for itself: %w", c.give, ledger.ErrInsufficientResources)
	}
	ratio := g.board.PortRatio(c.seat, c.give)
	if g.ledger.Count(c.seat, c.give) < ratio {
		return fmt.Errorf("maritime trade needs %d %s: %w", ratio, c.give, ledger.ErrInsufficientResources)
	}
	if g.ledger.BankCount(c.get) < 1 {
		return fmt.Errorf("bank is out of %s: %w", c.get, ledger.ErrInsufficientResources)
	}

	c.prev = g.captureTurnState()
	c.ratio = ratio

	if err := g.ledger.PayCost(c.seat, ledger.Bundle{c.give: ratio}); err != nil {
		return err
	}
	if err := g.ledger.DrawFromBank(c.seat, ledger.Bundle{c.get: 1}); err != nil {
		return err
	}
	return nil
}

func (c *maritimeTradeCmd) Revert() error {
	g := c.g
	if err := g.ledger.PayCost(c.seat, ledger.Bundle{c.get: 1}); err != nil {
		return err
	}
	if err := g.ledger.RefundCost(c.seat, ledger.Bundle{c.give: c.ratio}); err != nil {
		return err
	}
	g.restoreTurnState(c.prev)
	return nil
}

func (c *maritimeTradeCmd) String() string {
	return fmt.Sprintf("%s trades %d %s to the bank for 1 %s",
		c.g.colorOf(c.seat), c.ratio, c.give, c.get)
}

type endTurnCmd struct {
	g         *Game
	seat      int
	prev      turnState
	cancelled *trade.Session
}

func (c *endTurnCmd) Apply() error {
	g := c.g
	if err := g.requirePhase(PostRollMain); err != nil {
		return err
	}
	if err := g.requireTurn(c.seat); err != nil {
		return err
	}

	c.prev = g.captureTurnState()

	c.cancelled = nil
	if g.openTrade != nil {
		if err := g.openTrade.Cancel(); err != nil {
			return err
		}
		c.cancelled = g.openTrade
		g.openTrade = nil
	}
	g.devCardPlayed = false
	g.lastRoll = 0
	g.turn++
	g.current = (g.current + 1) % len(g.players)
	g.phase = PreRoll
	return nil
}

func (c *endTurnCmd) Revert() error {
	if c.cancelled != nil {
		if err := c.cancelled.Reopen(); err != nil {
			return err
		}
	}
	c.g.restoreTurnState(c.prev)
	return nil
}

func (c *endTurnCmd) String() string {
	return fmt.Sprintf("%s ends turn", c.g.colorOf(c.seat))
}
