package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var errInputClosed = errors.New("input closed before the game finished")

type playOptions struct {
	Mark string
}

// NewPlayCommand creates the play command.
func NewPlayCommand(_ *RootOptions) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against the engine in the terminal",
		Long: `Play against the engine in the terminal.

Moves are entered as "row col", both counted from 0.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, entity.Mark(opts.Mark))
		},
	}

	cmd.Flags().StringVar(&opts.Mark, "mark", "X", "your mark (X|O), X moves first")

	return cmd
}

func runPlay(cmd *cobra.Command, human entity.Mark) error {
	if !human.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, human)
	}

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	solver := service.NewSolverService(newLogger("error", cmd.ErrOrStderr()), nil)

	board := entity.InitialState()
	for !tictactoe.IsTerminal(board) {
		if tictactoe.ActivePlayer(board) != human {
			solution, err := solver.Solve(cmd.Context(), board)
			if err != nil {
				return fmt.Errorf("failed to pick bot move: %w", err)
			}

			if board, err = tictactoe.ApplyAction(board, solution.Action); err != nil {
				return fmt.Errorf("failed to apply bot move: %w", err)
			}

			fmt.Fprintf(out, "bot plays %s\n", solution.Action)
			continue
		}

		printBoard(out, board)
		fmt.Fprint(out, "your move (row col): ")

		if !in.Scan() {
			fmt.Fprintln(out)
			if err := in.Err(); err != nil {
				return fmt.Errorf("failed to read move: %w", err)
			}
			return errInputClosed
		}

		var action entity.Action
		if _, err := fmt.Sscanf(in.Text(), "%d %d", &action.Row, &action.Col); err != nil {
			fmt.Fprintln(out, "invalid move: expected two numbers")
			continue
		}

		next, err := tictactoe.ApplyAction(board, action)
		if err != nil {
			fmt.Fprintf(out, "invalid move: %v\n", err)
			continue
		}

		board = next
	}

	printBoard(out, board)
	fmt.Fprintf(out, "result: %s\n", describeOutcome(tictactoe.OutcomeOf(board)))

	return nil
}
