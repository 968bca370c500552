package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

// NewWarmCommand creates the warm command.
func NewWarmCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "warm",
		Short:        "Fill the Redis solution cache with every reachable position",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWarm(cmd, rootOpts)
		},
	}

	return cmd
}

func runWarm(cmd *cobra.Command, rootOpts *RootOptions) error {
	ctx := cmd.Context()

	conf, err := config.Load(rootOpts.ConfigPath)
	if err != nil {
		return err
	}

	logger := newLogger(conf.LogLevel, cmd.ErrOrStderr())

	client, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}
	defer client.Close()

	solutionRepo := repository.NewSolutionRepository(client)

	stored, err := service.NewSolverService(logger, solutionRepo).Warm(ctx)
	if err != nil {
		return err
	}

	total, err := solutionRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count cached solutions: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "stored %d positions, cache holds %d solutions\n", stored, total)

	return nil
}
