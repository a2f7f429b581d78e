// Package engine drives complete games for simulation and soak testing. A
// Runner repeatedly applies a uniformly random legal action through the
// game's intent surface until someone wins or the action cap trips, and can
// interleave undo/redo bursts to verify the journal restores state exactly.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/rosshamish/catan/game"
)

// MaxActions caps a single simulated game; random play that has not won by
// then is called a draw.
const MaxActions = 10000

// GameRecord summarizes one finished simulation.
type GameRecord struct {
	ID         int
	Seed       uint64
	Winner     int // seat, -1 on a draw
	WinnerName string
	Turns      int
	Actions    int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// ActionRecord is one applied action, in commit order.
type ActionRecord struct {
	Game   int
	Step   int
	Seat   int
	Phase  string
	Action string
}

// Runner plays games with a random policy. Construct with New.
type Runner struct {
	rng        *rand.Rand
	maxActions int
	stormEvery int
}

// Option configures a Runner.
type Option func(*Runner)

// WithMaxActions overrides the per-game action cap.
func WithMaxActions(n int) Option {
	return func(r *Runner) { r.maxActions = n }
}

// WithUndoStorm makes the runner undo and redo a random burst of actions
// every n applied actions, checking that the state hash lands back where it
// started. Zero disables storms.
func WithUndoStorm(every int) Option {
	return func(r *Runner) { r.stormEvery = every }
}

// New builds a Runner around the given policy source. The source decides
// which legal action is played next; it is independent of the game's own
// source, which realizes dice and draws.
func New(rng *rand.Rand, opts ...Option) *Runner {
	r := &Runner{rng: rng, maxActions: MaxActions}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays g to completion and returns what happened. The game should be
// freshly constructed; the runner owns it until Run returns.
func (r *Runner) Run(id int, g *game.Game) (GameRecord, []ActionRecord, error) {
	rec := GameRecord{ID: id, Winner: -1, StartTime: time.Now()}
	var actions []ActionRecord

	for step := 1; step <= r.maxActions; step++ {
		if _, over := g.Winner(); over {
			break
		}
		legal := g.LegalActions()
		if len(legal) == 0 {
			return rec, actions, fmt.Errorf("game %d: no legal actions in phase %s", id, g.Phase())
		}
		a := legal[r.rng.Intn(len(legal))]
		if err := g.Apply(a); err != nil {
			return rec, actions, fmt.Errorf("game %d step %d: apply %s: %w", id, step, a.Kind, err)
		}
		actions = append(actions, ActionRecord{
			Game:   id,
			Step:   step,
			Seat:   a.Seat,
			Phase:  g.Phase().String(),
			Action: a.Kind.String(),
		})
		if r.stormEvery > 0 && step%r.stormEvery == 0 {
			if err := r.storm(g); err != nil {
				return rec, actions, fmt.Errorf("game %d step %d: %w", id, step, err)
			}
		}
	}

	rec.EndTime = time.Now()
	rec.Duration = rec.EndTime.Sub(rec.StartTime)
	rec.Turns = g.Turn()
	rec.Actions = len(actions)
	if seat, over := g.Winner(); over {
		rec.Winner = seat
		rec.WinnerName = g.Players()[seat].Name
		log.Info().Msgf("game %d: %s wins on turn %d after %d actions", id, rec.WinnerName, rec.Turns, rec.Actions)
	} else {
		log.Info().Msgf("game %d: no winner after %d actions", id, rec.Actions)
	}
	return rec, actions, nil
}

// storm undoes a random burst of committed actions, redoes it, and checks
// the state hash round-trips.
func (r *Runner) storm(g *game.Game) error {
	before := g.Hash()
	depth := g.UndoDepth()
	if depth == 0 {
		return nil
	}
	burst := 1 + r.rng.Intn(min(depth, 8))
	for i := 0; i < burst; i++ {
		if err := g.Undo(); err != nil {
			return fmt.Errorf("undo storm: %w", err)
		}
	}
	for i := 0; i < burst; i++ {
		if err := g.Redo(); err != nil {
			return fmt.Errorf("undo storm redo: %w", err)
		}
	}
	if after := g.Hash(); after != before {
		return fmt.Errorf("undo storm: hash %x became %x after %d undo/redo", before, after, burst)
	}
	return nil
}
