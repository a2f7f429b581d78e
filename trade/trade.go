// Package trade models one peer trade negotiation: an initiator proposes an
// offer to named respondents, respondents answer independently, and the
// initiator settles with one accepting seat or cancels. A session holds only
// the negotiation record; moving the cards is the caller's job, which keeps
// settlement atomic with its own hand validation. Bank and port trades never
// pass through here.
package trade

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/rosshamish/catan/ledger"
)

var (
	// ErrNoSuchSession reports an unknown or already settled session.
	ErrNoSuchSession = errors.New("no such trade session")
	// ErrUnauthorizedRespondent reports a response from a seat the offer did
	// not name, a seat that already responded, or settling with a seat that
	// did not accept.
	ErrUnauthorizedRespondent = errors.New("unauthorized respondent")
)

// Offer is what the initiator gives and gets, from their point of view.
type Offer struct {
	Giving  ledger.Bundle
	Getting ledger.Bundle
}

// Response is a respondent's answer to an offer.
type Response int

const (
	Accepted Response = iota
	Rejected
	Countered
)

func (r Response) String() string {
	switch r {
	case Accepted:
		return "accept"
	case Rejected:
		return "reject"
	case Countered:
		return "counter"
	default:
		return fmt.Sprintf("response(%d)", int(r))
	}
}

// Status is a session's lifecycle state.
type Status int

const (
	Proposed Status = iota
	Resolved
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Proposed:
		return "proposed"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Answer is one respondent's recorded response; Counter is meaningful only
// when Kind is Countered.
type Answer struct {
	Kind    Response
	Counter Offer
}

// Session is a single negotiation. It moves Proposed to Resolved or
// Cancelled exactly once; both moves can be taken back with Reopen so the
// action journal can unwind them.
type Session struct {
	id          uuid.UUID
	initiator   int
	respondents []int
	offer       Offer
	answers     map[int]Answer
	status      Status
	partner     int
}

// NewSession opens a negotiation from initiator to the named respondents.
func NewSession(initiator int, respondents []int, offer Offer) *Session {
	resp := make([]int, len(respondents))
	copy(resp, respondents)
	return &Session{
		id:          uuid.New(),
		initiator:   initiator,
		respondents: resp,
		offer:       offer,
		answers:     make(map[int]Answer),
		status:      Proposed,
		partner:     -1,
	}
}

// ID returns the session's identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Initiator returns the proposing seat.
func (s *Session) Initiator() int { return s.initiator }

// Respondents returns the seats the offer names.
func (s *Session) Respondents() []int {
	out := make([]int, len(s.respondents))
	copy(out, s.respondents)
	return out
}

// Offer returns the proposed exchange.
func (s *Session) Offer() Offer { return s.offer }

// Status returns the session's lifecycle state.
func (s *Session) Status() Status { return s.status }

// Partner returns the seat the initiator settled with, if resolved.
func (s *Session) Partner() (int, bool) {
	if s.status != Resolved {
		return 0, false
	}
	return s.partner, true
}

// Answer returns the seat's recorded response, if any.
func (s *Session) Answer(seat int) (Answer, bool) {
	a, ok := s.answers[seat]
	return a, ok
}

func (s *Session) named(seat int) bool {
	for _, r := range s.respondents {
		if r == seat {
			return true
		}
	}
	return false
}

// Respond records one seat's answer. Each named respondent answers at most
// once while the session is open.
func (s *Session) Respond(seat int, kind Response, counter Offer) error {
	if s.status != Proposed {
		return fmt.Errorf("session %s is %s: %w", s.id, s.status, ErrNoSuchSession)
	}
	if !s.named(seat) {
		return fmt.Errorf("seat %d was not offered the trade: %w", seat, ErrUnauthorizedRespondent)
	}
	if _, dup := s.answers[seat]; dup {
		return fmt.Errorf("seat %d already responded: %w", seat, ErrUnauthorizedRespondent)
	}
	s.answers[seat] = Answer{Kind: kind, Counter: counter}
	return nil
}

// RetractResponse removes a recorded answer; it is the inverse of Respond.
func (s *Session) RetractResponse(seat int) error {
	if _, ok := s.answers[seat]; !ok {
		return fmt.Errorf("seat %d has not responded: %w", seat, ErrUnauthorizedRespondent)
	}
	delete(s.answers, seat)
	return nil
}

// Accepting returns the seats that accepted, ascending.
func (s *Session) Accepting() []int {
	var out []int
	for seat, a := range s.answers {
		if a.Kind == Accepted {
			out = append(out, seat)
		}
	}
	sort.Ints(out)
	return out
}

// Resolve settles the session with one accepting seat. Every other response
// is implicitly declined.
func (s *Session) Resolve(partner int) error {
	if s.status != Proposed {
		return fmt.Errorf("session %s is %s: %w", s.id, s.status, ErrNoSuchSession)
	}
	if a, ok := s.answers[partner]; !ok || a.Kind != Accepted {
		return fmt.Errorf("seat %d did not accept: %w", partner, ErrUnauthorizedRespondent)
	}
	s.status = Resolved
	s.partner = partner
	return nil
}

// Cancel closes the session without settling.
func (s *Session) Cancel() error {
	if s.status != Proposed {
		return fmt.Errorf("session %s is %s: %w", s.id, s.status, ErrNoSuchSession)
	}
	s.status = Cancelled
	return nil
}

// Reopen is the inverse of Resolve and Cancel: the session returns to
// Proposed with its recorded answers intact.
func (s *Session) Reopen() error {
	if s.status == Proposed {
		return fmt.Errorf("session %s is open: %w", s.id, ErrNoSuchSession)
	}
	s.status = Proposed
	s.partner = -1
	return nil
}
