// Package game is the turn and phase state machine tying the board, the
// resource ledger, and trade sessions together behind an intent surface.
// Every mutation runs as a journaled command with an exact inverse, so any
// run of legal actions can be undone and redone; commands that realize
// random outcomes (dice, drawn cards, steals) record them on first
// application and replay them thereafter.
package game

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/rosshamish/catan/board"
	"github.com/rosshamish/catan/catanlog"
	"github.com/rosshamish/catan/hexgrid"
	"github.com/rosshamish/catan/journal"
	"github.com/rosshamish/catan/ledger"
	"github.com/rosshamish/catan/trade"
)

var (
	// ErrWrongPhase reports an intent the current phase does not accept.
	ErrWrongPhase = errors.New("wrong phase")
	// ErrNotCurrentPlayer reports an intent by a seat out of turn.
	ErrNotCurrentPlayer = errors.New("not the current player")
	// ErrCardNotPlayable reports playing a development card the seat cannot
	// play this turn.
	ErrCardNotPlayable = errors.New("development card not playable")
	// ErrGameOver reports any intent other than undo after the game ended.
	ErrGameOver = errors.New("game is over")
)

// StateHash identifies a full game state; equal hashes mean equal states
// within one game instance.
type StateHash uint64

// Game is the aggregate root. All access is single-goroutine; callers
// serialize externally if they must share one instance.
type Game struct {
	players    []Player
	board      *board.Board
	ledger     *ledger.Ledger
	journal    *journal.Journal
	rng        *rand.Rand
	log        zerolog.Logger
	threshold  int
	startedAt  time.Time
	ledgerOpts []ledger.Option

	phase           Phase
	current         int
	turn            int
	lastRoll        int
	devCardPlayed   bool
	setupIndex      int
	setupPlaced     hexgrid.Vertex
	hasSetupPlaced  bool
	pendingDiscards map[int]int
	openTrade       *trade.Session
	knights         []int
	longestRoadSeat int
	largestArmySeat int
	winner          int
}

// Option configures a new game.
type Option func(*Game)

// WithRand injects the random source for the development deck shuffle, dice,
// and steals. Fixed seeds give reproducible games.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the game's logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) { g.log = logger }
}

// WithVictoryThreshold overrides the points needed to win.
func WithVictoryThreshold(points int) Option {
	return func(g *Game) { g.threshold = points }
}

// WithBoard injects a prepared board instead of the beginner layout.
func WithBoard(b *board.Board) Option {
	return func(g *Game) { g.board = b }
}

// WithDeck fixes the development deck order, top of the deck last. Useful
// for scenario fixtures.
func WithDeck(deck []ledger.Card) Option {
	return func(g *Game) { g.ledgerOpts = append(g.ledgerOpts, ledger.WithDeck(deck)) }
}

// New starts a game in the first setup round. Seat order is the order of
// players.
func New(players []Player, opts ...Option) (*Game, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, fmt.Errorf("game needs %d to %d players, got %d", MinPlayers, MaxPlayers, len(players))
	}
	g := &Game{
		players:         append([]Player(nil), players...),
		journal:         journal.New(),
		log:             zerolog.Nop(),
		threshold:       DefaultVictoryThreshold,
		startedAt:       time.Now(),
		phase:           SetupRoundOne,
		pendingDiscards: map[int]int{},
		knights:         make([]int, len(players)),
		longestRoadSeat: -1,
		largestArmySeat: -1,
		winner:          -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if g.board == nil {
		g.board = board.New()
	}
	g.ledger = ledger.New(len(g.players), g.rng, g.ledgerOpts...)
	return g, nil
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// CurrentSeat returns the seat whose turn it is.
func (g *Game) CurrentSeat() int { return g.current }

// Turn returns the one-based turn counter; zero during setup.
func (g *Game) Turn() int { return g.turn }

// LastRoll returns this turn's dice total, zero before the roll.
func (g *Game) LastRoll() int { return g.lastRoll }

// Winner returns the winning seat once the game is over.
func (g *Game) Winner() (int, bool) {
	if g.winner < 0 {
		return 0, false
	}
	return g.winner, true
}

// Players returns the roster in seat order.
func (g *Game) Players() []Player {
	out := make([]Player, len(g.players))
	copy(out, g.players)
	return out
}

// Board exposes the board for reads. Mutate only through intents; direct
// writes bypass the journal and break undo.
func (g *Game) Board() *board.Board { return g.board }

// Ledger exposes the ledger for reads. Mutate only through intents.
func (g *Game) Ledger() *ledger.Ledger { return g.ledger }

// PendingDiscards returns the seats that still owe a discard and how much.
func (g *Game) PendingDiscards() map[int]int {
	out := make(map[int]int, len(g.pendingDiscards))
	for seat, n := range g.pendingDiscards {
		out[seat] = n
	}
	return out
}

// OpenTrade returns the open trade session, if any.
func (g *Game) OpenTrade() *trade.Session { return g.openTrade }

// KnightsPlayed returns how many knights the seat has played.
func (g *Game) KnightsPlayed(seat int) int { return g.knights[seat] }

// LongestRoadHolder returns the seat holding the longest road award.
func (g *Game) LongestRoadHolder() (int, bool) {
	return g.longestRoadSeat, g.longestRoadSeat >= 0
}

// LargestArmyHolder returns the seat holding the largest army award.
func (g *Game) LargestArmyHolder() (int, bool) {
	return g.largestArmySeat, g.largestArmySeat >= 0
}

// UndoDepth returns how many committed actions can be undone.
func (g *Game) UndoDepth() int { return g.journal.Len() }

// RedoDepth returns how many undone actions can be redone.
func (g *Game) RedoDepth() int { return g.journal.RedoLen() }

// Undo takes back the most recent committed action, whatever the phase.
// It is the one intent that works after the game is over.
func (g *Game) Undo() error {
	last, ok := g.journal.Last()
	if err := g.journal.Undo(); err != nil {
		return err
	}
	if ok {
		g.log.Debug().Msgf("undo: %s", last)
	}
	return nil
}

// Redo reapplies the most recently undone action, replaying its recorded
// outcome rather than re-sampling randomness.
func (g *Game) Redo() error {
	if err := g.journal.Redo(); err != nil {
		return err
	}
	if last, ok := g.journal.Last(); ok {
		g.log.Debug().Msgf("redo: %s", last)
	}
	return nil
}

// PiecesRemaining returns how many roads, settlements, and cities the seat
// still has in supply. Upgrading to a city returns the settlement piece.
func (g *Game) PiecesRemaining(seat int) (roads, settlements, cities int) {
	s, c := 0, 0
	for _, bld := range g.board.Buildings() {
		if bld.Owner != seat {
			continue
		}
		if bld.Kind == board.Settlement {
			s++
		} else {
			c++
		}
	}
	return MaxRoads - g.board.RoadCount(seat), MaxSettlements - s, MaxCities - c
}

// StealCandidates returns the seats the current player may rob at the
// robber's tile: owners of adjacent buildings, other than the mover, with at
// least one card in hand.
func (g *Game) StealCandidates() []int {
	return g.stealCandidatesAt(g.board.Robber())
}

func (g *Game) stealCandidatesAt(t hexgrid.Tile) []int {
	var out []int
	for _, owner := range g.board.OwnersAdjacentToTile(t) {
		if owner != g.current && g.ledger.HandSize(owner) > 0 {
			out = append(out, owner)
		}
	}
	return out
}

// turnState is everything a command must restore besides board and ledger
// contents. Commands capture it before mutating and put it back on revert.
type turnState struct {
	phase           Phase
	current         int
	turn            int
	lastRoll        int
	devCardPlayed   bool
	setupIndex      int
	setupPlaced     hexgrid.Vertex
	hasSetupPlaced  bool
	pendingDiscards map[int]int
	openTrade       *trade.Session
	longestRoadSeat int
	largestArmySeat int
	winner          int
}

func (g *Game) captureTurnState() turnState {
	pending := make(map[int]int, len(g.pendingDiscards))
	for seat, n := range g.pendingDiscards {
		pending[seat] = n
	}
	return turnState{
		phase:           g.phase,
		current:         g.current,
		turn:            g.turn,
		lastRoll:        g.lastRoll,
		devCardPlayed:   g.devCardPlayed,
		setupIndex:      g.setupIndex,
		setupPlaced:     g.setupPlaced,
		hasSetupPlaced:  g.hasSetupPlaced,
		pendingDiscards: pending,
		openTrade:       g.openTrade,
		longestRoadSeat: g.longestRoadSeat,
		largestArmySeat: g.largestArmySeat,
		winner:          g.winner,
	}
}

// restoreTurnState copies out of ts so later mutations cannot corrupt a
// snapshot that a command may restore again.
func (g *Game) restoreTurnState(ts turnState) {
	pending := make(map[int]int, len(ts.pendingDiscards))
	for seat, n := range ts.pendingDiscards {
		pending[seat] = n
	}
	g.phase = ts.phase
	g.current = ts.current
	g.turn = ts.turn
	g.lastRoll = ts.lastRoll
	g.devCardPlayed = ts.devCardPlayed
	g.setupIndex = ts.setupIndex
	g.setupPlaced = ts.setupPlaced
	g.hasSetupPlaced = ts.hasSetupPlaced
	g.pendingDiscards = pending
	g.openTrade = ts.openTrade
	g.longestRoadSeat = ts.longestRoadSeat
	g.largestArmySeat = ts.largestArmySeat
	g.winner = ts.winner
}

// requirePhase checks the phase gate; after the game ends everything fails
// with ErrGameOver.
func (g *Game) requirePhase(want ...Phase) error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	for _, p := range want {
		if g.phase == p {
			return nil
		}
	}
	return fmt.Errorf("in %s: %w", g.phase, ErrWrongPhase)
}

func (g *Game) requireTurn(seat int) error {
	if seat != g.current {
		return fmt.Errorf("seat %d moved on seat %d's turn: %w", seat, g.current, ErrNotCurrentPlayer)
	}
	return nil
}

// seatForSetup maps a snake-draft position to a seat: forward through the
// roster, then backward.
func (g *Game) seatForSetup(i int) int {
	n := len(g.players)
	if i < n {
		return i
	}
	return 2*n - 1 - i
}

// advanceSetup moves to the next snake-draft position, or starts play.
func (g *Game) advanceSetup() {
	g.setupIndex++
	g.hasSetupPlaced = false
	n := len(g.players)
	switch {
	case g.setupIndex >= 2*n:
		g.phase = PreRoll
		g.current = 0
		g.turn = 1
	case g.setupIndex >= n:
		g.phase = SetupRoundTwo
		g.current = g.seatForSetup(g.setupIndex)
	default:
		g.current = g.seatForSetup(g.setupIndex)
	}
}

// colorOf names a seat the way transcripts do.
func (g *Game) colorOf(seat int) string {
	return g.players[seat].Color
}

// WriteTranscript rebuilds the whole transcript from the committed journal:
// header, one line per action, and the winner line when the game is over.
// Undone actions never appear.
func (g *Game) WriteTranscript(w io.Writer) error {
	cl := catanlog.New(w)
	infos := make([]catanlog.PlayerInfo, len(g.players))
	for i, p := range g.players {
		infos[i] = catanlog.PlayerInfo{Seat: i, Name: p.Name, Color: p.Color}
	}
	if err := cl.WriteHeader(g.startedAt, infos, g.board); err != nil {
		return err
	}
	for _, cmd := range g.journal.Commands() {
		if err := cl.WriteLine(cmd.String()); err != nil {
			return err
		}
	}
	if g.winner >= 0 {
		return cl.WriteLine(fmt.Sprintf("%s wins", g.colorOf(g.winner)))
	}
	return nil
}

// Hash fingerprints the complete game state. Undoing and redoing any run of
// actions must land on the hash it started from.
func (g *Game) Hash() StateHash {
	h := fnv.New64a()
	fmt.Fprintf(h, "phase=%d current=%d turn=%d roll=%d dev=%t setup=%d,%t,%v winner=%d lr=%d la=%d\n",
		g.phase, g.current, g.turn, g.lastRoll, g.devCardPlayed,
		g.setupIndex, g.hasSetupPlaced, g.setupPlaced,
		g.winner, g.longestRoadSeat, g.largestArmySeat)

	seats := make([]int, 0, len(g.pendingDiscards))
	for seat := range g.pendingDiscards {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	for _, seat := range seats {
		fmt.Fprintf(h, "discard %d=%d\n", seat, g.pendingDiscards[seat])
	}

	fmt.Fprintf(h, "robber=%v\n", g.board.Robber())
	for _, coord := range g.board.Tiles() {
		tile, _ := g.board.TileAt(coord)
		fmt.Fprintf(h, "tile %v %d %d\n", coord, tile.Terrain, tile.Number)
	}

	buildings := g.board.Buildings()
	bkeys := make([]string, 0, len(buildings))
	byVertex := make(map[string]string, len(buildings))
	for v, bld := range buildings {
		k := v.String()
		bkeys = append(bkeys, k)
		byVertex[k] = fmt.Sprintf("%d/%d", bld.Kind, bld.Owner)
	}
	sort.Strings(bkeys)
	for _, k := range bkeys {
		fmt.Fprintf(h, "bld %s %s\n", k, byVertex[k])
	}

	roads := g.board.Roads()
	rkeys := make([]string, 0, len(roads))
	byEdge := make(map[string]int, len(roads))
	for e, r := range roads {
		k := e.String()
		rkeys = append(rkeys, k)
		byEdge[k] = r.Owner
	}
	sort.Strings(rkeys)
	for _, k := range rkeys {
		fmt.Fprintf(h, "road %s %d\n", k, byEdge[k])
	}

	for seat := range g.players {
		fmt.Fprintf(h, "hand %d:", seat)
		for _, r := range board.Resources {
			fmt.Fprintf(h, " %d", g.ledger.Count(seat, r))
		}
		held := g.ledger.HeldCards(seat)
		sort.Slice(held, func(i, j int) bool {
			if held[i].Card != held[j].Card {
				return held[i].Card < held[j].Card
			}
			return held[i].Turn < held[j].Turn
		})
		for _, hc := range held {
			fmt.Fprintf(h, " [%d@%d]", hc.Card, hc.Turn)
		}
		fmt.Fprintf(h, " knights=%d\n", g.knights[seat])
	}
	fmt.Fprintf(h, "bank:")
	for _, r := range board.Resources {
		fmt.Fprintf(h, " %d", g.ledger.BankCount(r))
	}
	// the deck order is fixed at construction, so the remaining count pins
	// its contents
	fmt.Fprintf(h, " deck=%d\n", g.ledger.DeckRemaining())

	if g.openTrade != nil {
		s := g.openTrade
		fmt.Fprintf(h, "trade %s %d %v %d\n", s.ID(), s.Initiator(), s.Respondents(), s.Status())
		for _, seat := range allSeats(len(g.players)) {
			if a, ok := s.Answer(seat); ok {
				fmt.Fprintf(h, "answer %d %d\n", seat, a.Kind)
			}
		}
	}
	return StateHash(h.Sum64())
}

func allSeats(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
