package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Search bounds, kept outside the utility range [-1, 1].
const (
	negInf = -2
	posInf = 2
)

// Result of a full search from one board.
type Result struct {
	Action entity.Action
	Value  int
	Nodes  int
}

// OptimalAction - returns the best action for the player to move, assuming optimal play
// from both sides. Terminal boards fail with apperror.ErrTerminalBoard.
func OptimalAction(board entity.Board) (entity.Action, error) {
	result, err := Search(board)
	if err != nil {
		return entity.Action{}, err
	}

	return result.Action, nil
}

// Search - runs minimax with alpha-beta pruning below every root action. Each root child is
// searched with a full window, and ties keep the first action in row-major order.
func Search(board entity.Board) (Result, error) {
	if IsTerminal(board) {
		return Result{}, fmt.Errorf("%w: %s", apperror.ErrTerminalBoard, board.Key())
	}

	s := &searcher{}

	maximizing := ActivePlayer(board) == entity.PlayerX
	actions := LegalActions(board)

	best := Result{Action: actions[0], Value: posInf}
	if maximizing {
		best.Value = negInf
	}

	for _, action := range actions {
		child, err := ApplyAction(board, action)
		if err != nil {
			return Result{}, fmt.Errorf("failed to apply root action: %w", err)
		}

		value := s.value(child, negInf, posInf)

		if (maximizing && value > best.Value) || (!maximizing && value < best.Value) {
			best.Action = action
			best.Value = value
		}
	}

	best.Nodes = s.nodes

	return best, nil
}

type searcher struct {
	nodes int
}

func (that *searcher) value(board entity.Board, alpha, beta int) int {
	that.nodes++

	if IsTerminal(board) {
		return Utility(board)
	}

	if ActivePlayer(board) == entity.PlayerX {
		return that.maxValue(board, alpha, beta)
	}

	return that.minValue(board, alpha, beta)
}

func (that *searcher) maxValue(board entity.Board, alpha, beta int) int {
	best := negInf
	for _, action := range LegalActions(board) {
		value := that.value(place(board, action, entity.PlayerX), alpha, beta)
		best = max(best, value)
		if best >= beta {
			return best
		}
		alpha = max(alpha, value)
	}

	return best
}

func (that *searcher) minValue(board entity.Board, alpha, beta int) int {
	best := posInf
	for _, action := range LegalActions(board) {
		value := that.value(place(board, action, entity.PlayerO), alpha, beta)
		best = min(best, value)
		if best <= alpha {
			return best
		}
		beta = min(beta, value)
	}

	return best
}

// place - puts mark on a cell taken from LegalActions. The board is an array,
// so the caller's copy is untouched.
func place(board entity.Board, action entity.Action, mark entity.Mark) entity.Board {
	board[action.Row][action.Col] = mark
	return board
}
