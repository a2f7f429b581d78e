// Command catan simulates games of Settlers of Catan through the rules
// engine, exporting transcripts and CSV statistics.
package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// config carries environment defaults; flags override them.
type config struct {
	Seed     uint64 `env:"CATAN_SEED"`
	Players  int    `env:"CATAN_PLAYERS" envDefault:"4"`
	LogLevel string `env:"CATAN_LOG_LEVEL" envDefault:"info"`
	StatsDir string `env:"CATAN_STATS_DIR"`
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("catan failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:           "catan",
		Short:         "Settlers of Catan rules engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
			return nil
		},
	}
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("parse environment")
	}
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level (trace..error)")
	cmd.AddCommand(newSimulateCommand(&cfg))
	return cmd
}
