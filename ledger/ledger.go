// Package ledger tracks every resource card and development card in a game:
// per-seat hands, the bank, and the shuffled development deck. Operations are
// all-or-nothing and each has an exact inverse, so the action journal can
// unwind them. The ledger enforces conservation (cards move, they are never
// created or destroyed) and bank limits; turn rules live in the game layer.
package ledger

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/rosshamish/catan/board"
)

var (
	// ErrInsufficientResources reports a debit larger than the source holds.
	ErrInsufficientResources = errors.New("insufficient resources")
	// ErrDeckEmpty reports a draw from an exhausted development deck.
	ErrDeckEmpty = errors.New("development deck empty")
	// ErrNothingToSteal reports a steal from an empty hand.
	ErrNothingToSteal = errors.New("nothing to steal")
	// ErrNoSuchCard reports removing a development card the hand lacks.
	ErrNoSuchCard = errors.New("no such development card")
)

// bankPerResource is how many of each resource the bank starts with.
const bankPerResource = 19

// Bundle is a multiset of resources.
type Bundle map[board.Resource]int

// Total returns the number of cards in the bundle.
func (b Bundle) Total() int {
	n := 0
	for _, c := range b {
		n += c
	}
	return n
}

// Clone returns an independent copy without zero entries.
func (b Bundle) Clone() Bundle {
	out := make(Bundle, len(b))
	for r, c := range b {
		if c != 0 {
			out[r] = c
		}
	}
	return out
}

// Card is a development card kind.
type Card int

const (
	Knight Card = iota
	VictoryPoint
	RoadBuilding
	Monopoly
	YearOfPlenty
)

func (c Card) String() string {
	switch c {
	case Knight:
		return "knight"
	case VictoryPoint:
		return "victory point"
	case RoadBuilding:
		return "road building"
	case Monopoly:
		return "monopoly"
	case YearOfPlenty:
		return "year of plenty"
	default:
		return fmt.Sprintf("card(%d)", int(c))
	}
}

// HeldCard is a development card in a hand, marked with the turn it was
// bought so the game can refuse to play it the same turn.
type HeldCard struct {
	Card Card
	Turn int
}

// Gain is one seat receiving cards of one resource from the bank.
type Gain struct {
	Seat     int
	Resource board.Resource
	Count    int
}

// Ledger is the single owner of resource and development cards. Construct
// with New.
type Ledger struct {
	hands []Bundle
	held  [][]HeldCard
	bank  Bundle
	deck  []Card // top of the deck is the last element
	rng   *rand.Rand
}

// Option adjusts a new ledger.
type Option func(*Ledger)

// WithDeck replaces the shuffled development deck with an exact order, top
// of the deck last. Scenario fixtures and replays use this.
func WithDeck(deck []Card) Option {
	return func(l *Ledger) {
		l.deck = make([]Card, len(deck))
		copy(l.deck, deck)
	}
}

// New returns a ledger for the given number of seats: full bank, empty
// hands, and a development deck shuffled once through rng. The same rng
// serves later random steals.
func New(seats int, rng *rand.Rand, opts ...Option) *Ledger {
	l := &Ledger{
		hands: make([]Bundle, seats),
		held:  make([][]HeldCard, seats),
		bank:  make(Bundle, len(board.Resources)),
		deck:  standardDeck(),
		rng:   rng,
	}
	for i := range l.hands {
		l.hands[i] = make(Bundle)
	}
	for _, r := range board.Resources {
		l.bank[r] = bankPerResource
	}
	rng.Shuffle(len(l.deck), func(i, j int) {
		l.deck[i], l.deck[j] = l.deck[j], l.deck[i]
	})
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// standardDeck is the official 25-card mix.
func standardDeck() []Card {
	deck := make([]Card, 0, 25)
	for _, p := range []struct {
		c Card
		n int
	}{
		{Knight, 14}, {VictoryPoint, 5}, {RoadBuilding, 2}, {Monopoly, 2}, {YearOfPlenty, 2},
	} {
		for i := 0; i < p.n; i++ {
			deck = append(deck, p.c)
		}
	}
	return deck
}

// Hand returns a copy of the seat's resource hand.
func (l *Ledger) Hand(seat int) Bundle {
	return l.hands[seat].Clone()
}

// HandSize returns how many resource cards the seat holds.
func (l *Ledger) HandSize(seat int) int {
	return l.hands[seat].Total()
}

// Count returns how many of r the seat holds.
func (l *Ledger) Count(seat int, r board.Resource) int {
	return l.hands[seat][r]
}

// BankCount returns how many of r remain in the bank.
func (l *Ledger) BankCount(r board.Resource) int {
	return l.bank[r]
}

// DeckRemaining returns how many development cards remain undrawn.
func (l *Ledger) DeckRemaining() int {
	return len(l.deck)
}

// HeldCards returns a copy of the seat's development cards.
func (l *Ledger) HeldCards(seat int) []HeldCard {
	out := make([]HeldCard, len(l.held[seat]))
	copy(out, l.held[seat])
	return out
}

// CountCard returns how many of card the seat holds.
func (l *Ledger) CountCard(seat int, card Card) int {
	n := 0
	for _, h := range l.held[seat] {
		if h.Card == card {
			n++
		}
	}
	return n
}

// HasPlayableCard reports whether the seat holds card bought before turn.
func (l *Ledger) HasPlayableCard(seat int, card Card, turn int) bool {
	for _, h := range l.held[seat] {
		if h.Card == card && h.Turn < turn {
			return true
		}
	}
	return false
}

// holds reports whether the seat's hand covers the bundle.
func (l *Ledger) holds(seat int, b Bundle) bool {
	for r, c := range b {
		if l.hands[seat][r] < c {
			return false
		}
	}
	return true
}

// bankHolds reports whether the bank covers the bundle.
func (l *Ledger) bankHolds(b Bundle) bool {
	for r, c := range b {
		if l.bank[r] < c {
			return false
		}
	}
	return true
}

// PayCost moves the bundle from the seat's hand to the bank. Nothing moves
// unless the hand covers all of it.
func (l *Ledger) PayCost(seat int, cost Bundle) error {
	if !l.holds(seat, cost) {
		return fmt.Errorf("seat %d pays %v: %w", seat, cost, ErrInsufficientResources)
	}
	for r, c := range cost {
		l.hands[seat][r] -= c
		l.bank[r] += c
	}
	return nil
}

// RefundCost is the inverse of PayCost.
func (l *Ledger) RefundCost(seat int, cost Bundle) error {
	if !l.bankHolds(cost) {
		return fmt.Errorf("bank refunds %v: %w", cost, ErrInsufficientResources)
	}
	for r, c := range cost {
		l.bank[r] -= c
		l.hands[seat][r] += c
	}
	return nil
}

// DrawFromBank moves the bundle from the bank to the seat's hand. Nothing
// moves unless the bank covers all of it.
func (l *Ledger) DrawFromBank(seat int, b Bundle) error {
	if !l.bankHolds(b) {
		return fmt.Errorf("bank grants %v: %w", b, ErrInsufficientResources)
	}
	for r, c := range b {
		l.bank[r] -= c
		l.hands[seat][r] += c
	}
	return nil
}

// MoveResource moves n cards of r from one hand to another.
func (l *Ledger) MoveResource(from, to int, r board.Resource, n int) error {
	if l.hands[from][r] < n {
		return fmt.Errorf("seat %d gives %d %v: %w", from, n, r, ErrInsufficientResources)
	}
	l.hands[from][r] -= n
	l.hands[to][r] += n
	return nil
}

// Exchange swaps bundles between two hands. Both hands are validated before
// anything moves; on error neither hand changes.
func (l *Ledger) Exchange(a, b int, aGives, bGives Bundle) error {
	if !l.holds(a, aGives) {
		return fmt.Errorf("seat %d gives %v: %w", a, aGives, ErrInsufficientResources)
	}
	if !l.holds(b, bGives) {
		return fmt.Errorf("seat %d gives %v: %w", b, bGives, ErrInsufficientResources)
	}
	for r, c := range aGives {
		l.hands[a][r] -= c
		l.hands[b][r] += c
	}
	for r, c := range bGives {
		l.hands[b][r] -= c
		l.hands[a][r] += c
	}
	return nil
}

// DrawDevelopmentCard draws the top card for the seat, marking the turn.
func (l *Ledger) DrawDevelopmentCard(seat, turn int) (Card, error) {
	if len(l.deck) == 0 {
		return 0, ErrDeckEmpty
	}
	c := l.deck[len(l.deck)-1]
	l.deck = l.deck[:len(l.deck)-1]
	l.held[seat] = append(l.held[seat], HeldCard{Card: c, Turn: turn})
	return c, nil
}

// ReturnDrawnCard is the inverse of DrawDevelopmentCard: the seat's newest
// card goes back on top of the deck.
func (l *Ledger) ReturnDrawnCard(seat int) error {
	held := l.held[seat]
	if len(held) == 0 {
		return fmt.Errorf("seat %d returns a card: %w", seat, ErrNoSuchCard)
	}
	top := held[len(held)-1]
	l.held[seat] = held[:len(held)-1]
	l.deck = append(l.deck, top.Card)
	return nil
}

// TakeCard removes the seat's oldest instance of card bought before turn,
// returning the turn it was bought so an undo can restore it exactly.
func (l *Ledger) TakeCard(seat int, card Card, turn int) (int, error) {
	at := -1
	for i, h := range l.held[seat] {
		if h.Card == card && h.Turn < turn && (at == -1 || h.Turn < l.held[seat][at].Turn) {
			at = i
		}
	}
	if at == -1 {
		return 0, fmt.Errorf("seat %d plays %v: %w", seat, card, ErrNoSuchCard)
	}
	bought := l.held[seat][at].Turn
	l.held[seat] = append(l.held[seat][:at], l.held[seat][at+1:]...)
	return bought, nil
}

// UntakeCard is the inverse of TakeCard.
func (l *Ledger) UntakeCard(seat int, card Card, boughtAtTurn int) {
	l.held[seat] = append(l.held[seat], HeldCard{Card: card, Turn: boughtAtTurn})
}

// StealRandomCard moves one uniformly random card from the victim's hand to
// the thief's.
func (l *Ledger) StealRandomCard(victim, thief int) (board.Resource, error) {
	total := l.hands[victim].Total()
	if total == 0 {
		return 0, fmt.Errorf("seat %d robs seat %d: %w", thief, victim, ErrNothingToSteal)
	}
	pick := l.rng.Intn(total)
	for _, r := range board.Resources {
		pick -= l.hands[victim][r]
		if pick < 0 {
			if err := l.MoveResource(victim, thief, r, 1); err != nil {
				return 0, err
			}
			return r, nil
		}
	}
	// unreachable: pick < total and the counts sum to total
	return 0, ErrNothingToSteal
}

// DistributeProduction pays out one roll: every numbered tile not holding
// the robber yields one of its resource per adjacent settlement and two per
// city. When the bank cannot cover every claim on a resource, nobody
// receives that resource, unless all its claimants are a single seat, who
// takes what remains. Returns the realized gains, ordered by resource then
// seat, so the caller can journal and undo them.
func (l *Ledger) DistributeProduction(b *board.Board, roll int) ([]Gain, error) {
	claims := make(map[board.Resource]map[int]int)
	for _, coord := range b.Tiles() {
		tile, _ := b.TileAt(coord)
		if tile.Number != roll || coord == b.Robber() {
			continue
		}
		res, ok := tile.Terrain.Resource()
		if !ok {
			continue
		}
		for _, v := range coord.Vertices() {
			bld, ok := b.BuildingAt(v)
			if !ok {
				continue
			}
			n := 1
			if bld.Kind == board.City {
				n = 2
			}
			if claims[res] == nil {
				claims[res] = make(map[int]int)
			}
			claims[res][bld.Owner] += n
		}
	}

	var gains []Gain
	for _, res := range board.Resources {
		bySeat := claims[res]
		if len(bySeat) == 0 {
			continue
		}
		total := 0
		for _, n := range bySeat {
			total += n
		}
		if l.bank[res] < total {
			if len(bySeat) > 1 {
				continue
			}
			total = l.bank[res]
			if total == 0 {
				continue
			}
			for seat := range bySeat {
				bySeat[seat] = total
			}
		}
		seats := make([]int, 0, len(bySeat))
		for seat := range bySeat {
			seats = append(seats, seat)
		}
		sort.Ints(seats)
		for _, seat := range seats {
			gains = append(gains, Gain{Seat: seat, Resource: res, Count: bySeat[seat]})
		}
	}

	for _, g := range gains {
		if err := l.DrawFromBank(g.Seat, Bundle{g.Resource: g.Count}); err != nil {
			return nil, err
		}
	}
	return gains, nil
}

// UndoGains is the inverse of DistributeProduction's payout.
func (l *Ledger) UndoGains(gains []Gain) error {
	for i := len(gains) - 1; i >= 0; i-- {
		g := gains[i]
		if err := l.PayCost(g.Seat, Bundle{g.Resource: g.Count}); err != nil {
			return err
		}
	}
	return nil
}
