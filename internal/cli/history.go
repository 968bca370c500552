package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
)

type historyOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:          "history",
		Short:        "List recently finished matches",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "number of matches to show")

	return cmd
}

func runHistory(cmd *cobra.Command, rootOpts *RootOptions, opts *historyOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if opts.Limit < 1 {
		return fmt.Errorf("%w: --limit %d", apperror.ErrInvalidLimit, opts.Limit)
	}

	conf, err := config.Load(rootOpts.ConfigPath)
	if err != nil {
		return err
	}

	db, err := storage.NewSQLite(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}
	defer db.Close()

	if err = db.Init(ctx); err != nil {
		return err
	}

	matchRepo := repository.NewMatchRepository(db.Connection)

	matches, err := matchRepo.ListRecent(ctx, opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to list matches: %w", err)
	}

	for _, match := range matches {
		fmt.Fprintf(out, "%s %s human=%s result=%s moves=%d\n",
			match.FinishedAt.UTC().Format(time.RFC3339),
			match.GameID,
			match.HumanMark,
			matchResult(match),
			len(match.Moves),
		)
	}

	stats, err := matchRepo.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	fmt.Fprintf(out, "total %d: human %d, bot %d, draws %d\n", stats.Total, stats.HumanWins, stats.BotWins, stats.Draws)

	return nil
}

func matchResult(match *entity.Match) string {
	switch match.Winner {
	case entity.OutcomeDraw:
		return "draw"
	case entity.Outcome(match.HumanMark):
		return "human"
	default:
		return "bot"
	}
}
