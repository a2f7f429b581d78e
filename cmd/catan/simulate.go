package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/rosshamish/catan/engine"
	"github.com/rosshamish/catan/game"
)

var rosterNames = []string{"ross", "anna", "bert", "carl"}

func newSimulateCommand(cfg *config) *cobra.Command {
	var (
		games      int
		threshold  int
		transcript string
		undoStorm  int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play randomly policied games to completion",
		Long: `Simulate full games with a uniformly random policy over legal actions.
Each game gets its own seed derived from the base seed, so a fixed
CATAN_SEED replays the whole batch exactly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Players < game.MinPlayers || cfg.Players > game.MaxPlayers {
				return fmt.Errorf("players must be %d to %d, got %d", game.MinPlayers, game.MaxPlayers, cfg.Players)
			}
			seed := cfg.Seed
			if seed == 0 {
				var err error
				if seed, err = engine.NewSeed(); err != nil {
					return err
				}
			}
			log.Info().Msgf("simulating %d game(s) of %d players, base seed %d", games, cfg.Players, seed)

			var gameRecords []engine.GameRecord
			var actionRecords []engine.ActionRecord
			for i := 0; i < games; i++ {
				gameSeed := seed + uint64(i)
				g, err := game.New(
					game.StandardPlayers(rosterNames[:cfg.Players]...),
					game.WithRand(rand.New(rand.NewSource(gameSeed))),
					game.WithVictoryThreshold(threshold),
					game.WithLogger(log.Logger),
				)
				if err != nil {
					return err
				}
				runner := engine.New(
					rand.New(rand.NewSource(gameSeed^0x9e3779b97f4a7c15)),
					engine.WithUndoStorm(undoStorm),
				)
				rec, actions, err := runner.Run(i+1, g)
				if err != nil {
					return err
				}
				rec.Seed = gameSeed
				gameRecords = append(gameRecords, rec)
				actionRecords = append(actionRecords, actions...)

				if transcript != "" {
					if err := writeTranscript(g, transcript, i+1, games); err != nil {
						return err
					}
				}
			}

			if cfg.StatsDir != "" {
				w, err := engine.NewWriter(cfg.StatsDir)
				if err != nil {
					return err
				}
				if err := w.WriteGameRecords(gameRecords); err != nil {
					return err
				}
				if err := w.WriteActionRecords(actionRecords); err != nil {
					return err
				}
				log.Info().Msgf("stored records under %s", w.Dir())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&games, "games", 1, "number of games to simulate")
	cmd.Flags().IntVar(&cfg.Players, "players", cfg.Players, "number of seats")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "base seed (0 draws a random one)")
	cmd.Flags().IntVar(&threshold, "threshold", game.DefaultVictoryThreshold, "victory points needed to win")
	cmd.Flags().StringVar(&transcript, "transcript", "", "write each game's transcript to this path")
	cmd.Flags().StringVar(&cfg.StatsDir, "stats-dir", cfg.StatsDir, "export CSV records under this directory")
	cmd.Flags().IntVar(&undoStorm, "undo-storm", 0, "undo/redo burst every N actions (0 disables)")
	return cmd
}

// writeTranscript stores one game's transcript, suffixing the game number
// when the batch has more than one.
func writeTranscript(g *game.Game, path string, id, total int) error {
	if total > 1 {
		path = fmt.Sprintf("%s.%d", path, id)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create transcript file: %w", err)
	}
	defer f.Close()
	if err := g.WriteTranscript(f); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
