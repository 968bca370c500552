package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// NewSolveCommand creates the solve command.
func NewSolveCommand(_ *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <board>",
		Short: "Print the optimal move for a board",
		Long: `Print the optimal move for a board given in row-major form.

Cells are X, O or "." for empty; "/", "|" and spaces are ignored,
so "XX./.O./..." and "XX. .O. ..." name the same board.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, strings.Join(args, " "))
		},
	}

	return cmd
}

func runSolve(cmd *cobra.Command, input string) error {
	out := cmd.OutOrStdout()

	board, err := entity.ParseBoard(input)
	if err != nil {
		return err
	}

	if err = tictactoe.Validate(board); err != nil {
		return err
	}

	solver := service.NewSolverService(newLogger("error", cmd.ErrOrStderr()), nil)

	printBoard(out, board)

	solution, err := solver.Solve(cmd.Context(), board)
	if errors.Is(err, apperror.ErrTerminalBoard) {
		fmt.Fprintf(out, "outcome: %s\n", describeOutcome(tictactoe.OutcomeOf(board)))
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to solve board: %w", err)
	}

	printSolution(out, tictactoe.ActivePlayer(board), solution)

	return nil
}

func printSolution(w io.Writer, player entity.Mark, solution entity.Solution) {
	fmt.Fprintf(w, "player: %s\n", player)
	fmt.Fprintf(w, "move: %s\n", solution.Action)
	fmt.Fprintf(w, "value: %d\n", solution.Value)
}
