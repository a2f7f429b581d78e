// Package journal provides a reversible action history: a do/undo/redo stack
// of commands. The journal knows nothing about what commands do; it only
// guarantees ordering. Commands carry their own state and inverses, and a
// command whose first application realized a random outcome must replay that
// outcome when reapplied, never re-sample it.
package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToUndo reports an undo on an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo reports a redo with no undone commands.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Command is one reversible action. Apply performs it, Revert exactly
// undoes it, and String renders its transcript line. Apply after Revert
// must reproduce the original effect.
type Command interface {
	Apply() error
	Revert() error
	fmt.Stringer
}

// Journal is the ordered history of committed commands plus the redo stack.
// The zero value is ready to use.
type Journal struct {
	done   []Command
	undone []Command
}

// New returns an empty journal.
func New() *Journal {
	return &Journal{}
}

// Do applies cmd and commits it. A new committed command invalidates the
// redo stack. If Apply fails nothing is recorded.
func (j *Journal) Do(cmd Command) error {
	if err := cmd.Apply(); err != nil {
		return err
	}
	j.done = append(j.done, cmd)
	j.undone = j.undone[:0]
	return nil
}

// Undo reverts the most recent committed command and moves it to the redo
// stack. On Revert failure the history is unchanged.
func (j *Journal) Undo() error {
	if len(j.done) == 0 {
		return ErrNothingToUndo
	}
	cmd := j.done[len(j.done)-1]
	if err := cmd.Revert(); err != nil {
		return err
	}
	j.done = j.done[:len(j.done)-1]
	j.undone = append(j.undone, cmd)
	return nil
}

// Redo reapplies the most recently undone command.
func (j *Journal) Redo() error {
	if len(j.undone) == 0 {
		return ErrNothingToRedo
	}
	cmd := j.undone[len(j.undone)-1]
	if err := cmd.Apply(); err != nil {
		return err
	}
	j.undone = j.undone[:len(j.undone)-1]
	j.done = append(j.done, cmd)
	return nil
}

// Len returns the number of committed commands.
func (j *Journal) Len() int {
	return len(j.done)
}

// Last returns the most recent committed command.
func (j *Journal) Last() (Command, bool) {
	if len(j.done) == 0 {
		return nil, false
	}
	return j.done[len(j.done)-1], true
}

// RedoLen returns the number of undone commands available to redo.
func (j *Journal) RedoLen() int {
	return len(j.undone)
}

// Commands returns the committed history in order, oldest first. Undone
// commands are not included, so a transcript rebuilt from this slice never
// shows actions that were taken back.
func (j *Journal) Commands() []Command {
	out := make([]Command, len(j.done))
	copy(out, j.done)
	return out
}
