package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// NewSelfPlayCommand creates the selfplay command.
func NewSelfPlayCommand(_ *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "selfplay",
		Short:        "Let the engine play both sides from the empty board",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelfPlay(cmd)
		},
	}

	return cmd
}

func runSelfPlay(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	solver := service.NewSolverService(newLogger("error", cmd.ErrOrStderr()), nil)

	board := entity.InitialState()
	for turn := 1; !tictactoe.IsTerminal(board); turn++ {
		player := tictactoe.ActivePlayer(board)

		solution, err := solver.Solve(cmd.Context(), board)
		if err != nil {
			return fmt.Errorf("failed to solve turn %d: %w", turn, err)
		}

		board, err = tictactoe.ApplyAction(board, solution.Action)
		if err != nil {
			return fmt.Errorf("failed to apply turn %d: %w", turn, err)
		}

		fmt.Fprintf(out, "%d. %s %s value %d\n", turn, player, solution.Action, solution.Value)
	}

	printBoard(out, board)
	fmt.Fprintf(out, "result: %s\n", describeOutcome(tictactoe.OutcomeOf(board)))

	return nil
}
