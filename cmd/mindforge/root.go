package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/mindforge/internal/app"
	"github.com/vytor/mindforge/internal/config"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/services"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mindforge",
		Short:         "Study engine: question bank, flashcards and weekly study plan",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logger.SetDefault(logger.New(
				logger.WithLevel(logger.ParseLevel(level)),
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithColors(false),
			))
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH env var)")
	root.PersistentFlags().String("log-level", "WARN", "Log level written to stderr")

	root.AddCommand(newStatsCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newSubjectsCmd())
	root.AddCommand(newPlanCmd())
	return root
}

// openApp loads the configuration, letting --db take precedence over
// DB_PATH, and opens the application.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return a, nil
}

// confirmerFor approves at once with --yes and otherwise asks on stdin.
func confirmerFor(cmd *cobra.Command) services.Confirmer {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return services.Confirmed
	}
	return promptConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
}

type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, action string) bool {
	fmt.Fprintf(p.out, "%s? [y/N] ", action)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}
