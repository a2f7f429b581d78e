package engine

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer exports simulation records as CSV files under a timestamped
// directory.
type Writer struct {
	baseDir string
}

// NewWriter creates the target directory, one subfolder per invocation.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create stats directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the directory the writer exports into.
func (w *Writer) Dir() string { return w.baseDir }

// WriteGameRecords stores one row per simulated game.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "seed", "winner", "winner_name", "turns", "actions", "start_time", "end_time", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write game records header: %w", err)
	}
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Winner),
			record.WinnerName,
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Actions),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write game record row: %w", err)
		}
	}
	return nil
}

// WriteActionRecords stores one row per applied action, in commit order.
func (w *Writer) WriteActionRecords(records []ActionRecord) error {
	path := filepath.Join(w.baseDir, "actions.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create action records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "step", "seat", "phase", "action"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write action records header: %w", err)
	}
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Seat),
			record.Phase,
			record.Action,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write action record row: %w", err)
		}
	}
	return nil
}
