package game

import "fmt"

// Phase is the state machine's current position in the turn cycle.
type Phase int

const (
	// SetupRoundOne and SetupRoundTwo are the snake-draft placement rounds:
	// each seat places a settlement then an adjoining road, order reversing
	// in the second round.
	SetupRoundOne Phase = iota
	SetupRoundTwo
	// PreRoll waits for the current player to roll.
	PreRoll
	// PostRollMain is the current player's build/trade/play window.
	PostRollMain
	// Discard waits for every seat over the hand limit to discard half.
	Discard
	// MoveRobberPending waits for the current player to place the robber.
	MoveRobberPending
	// Steal waits for the current player to pick a victim at the robber.
	Steal
	// GameOver is terminal; only undo leaves it.
	GameOver
)

func (p Phase) String() string {
	switch p {
	case SetupRoundOne:
		return "setup round one"
	case SetupRoundTwo:
		return "setup round two"
	case PreRoll:
		return "pre-roll"
	case PostRollMain:
		return "main"
	case Discard:
		return "discard"
	case MoveRobberPending:
		return "move robber"
	case Steal:
		return "steal"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}
