// Package catanlog writes human-readable game transcripts: a header naming
// the players and the board layout, then one line per committed action. The
// game layer rebuilds the transcript from its action journal whenever one is
// requested, so actions that were undone never appear.
package catanlog

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rosshamish/catan/board"
)

// Version tags the transcript format.
const Version = "1.0.0"

// PlayerInfo is one header entry.
type PlayerInfo struct {
	Seat  int
	Name  string
	Color string
}

// Log formats a transcript onto a writer.
type Log struct {
	w io.Writer
}

// New returns a log writing to w.
func New(w io.Writer) *Log {
	return &Log{w: w}
}

// WriteHeader writes the version line, timestamp, player roster, and board
// layout (terrain, numbers, ports, all in layout order).
func (l *Log) WriteHeader(ts time.Time, players []PlayerInfo, b *board.Board) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "catanlog v%s\n", Version)
	fmt.Fprintf(&sb, "timestamp: %s\n", ts.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "players: %d\n", len(players))
	for _, p := range players {
		fmt.Fprintf(&sb, "name: %s, color: %s, seat: %d\n", p.Name, p.Color, p.Seat)
	}

	terrain := make([]string, 0, 19)
	numbers := make([]string, 0, 19)
	for _, coord := range b.Tiles() {
		tile, _ := b.TileAt(coord)
		terrain = append(terrain, tile.Terrain.String())
		if tile.Number == 0 {
			numbers = append(numbers, "None")
		} else {
			numbers = append(numbers, strconv.Itoa(tile.Number))
		}
	}
	fmt.Fprintf(&sb, "terrain: %s\n", strings.Join(terrain, " "))
	fmt.Fprintf(&sb, "numbers: %s\n", strings.Join(numbers, " "))

	ports := make([]string, 0, len(b.Ports()))
	for _, p := range b.Ports() {
		ports = append(ports, fmt.Sprintf("%s%s", p.Kind, p.Edge))
	}
	fmt.Fprintf(&sb, "ports: %s\n", strings.Join(ports, " "))
	sb.WriteString("...CATAN!\n")

	_, err := io.WriteString(l.w, sb.String())
	return err
}

// WriteLine writes one action line.
func (l *Log) WriteLine(line string) error {
	_, err := fmt.Fprintln(l.w, line)
	return err
}
