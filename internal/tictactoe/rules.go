package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// lines lists rows, then columns, then the main and anti diagonal.
var lines = [8][3]entity.Action{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// ActivePlayer - returns the player to move. X moves when both players have made the same
// number of moves. The board is assumed to come from alternating play.
func ActivePlayer(board entity.Board) entity.Mark {
	if board.Count(entity.PlayerX) == board.Count(entity.PlayerO) {
		return entity.PlayerX
	}

	return entity.PlayerO
}

// LegalActions - returns one action per empty cell in row-major order.
func LegalActions(board entity.Board) []entity.Action {
	actions := make([]entity.Action, 0, entity.Size*entity.Size)
	for i, row := range board {
		for j, cell := range row {
			if cell == entity.EmptyCell {
				actions = append(actions, entity.Action{Row: i, Col: j})
			}
		}
	}

	return actions
}

// ApplyAction - returns the board after the active player marks the action's cell.
// The input board is left untouched.
func ApplyAction(board entity.Board, action entity.Action) (entity.Board, error) {
	if !action.Valid() {
		return board, fmt.Errorf("%w: %s", apperror.ErrInvalidCoordinate, action)
	}

	if !isLegal(board, action) {
		return board, fmt.Errorf("%w: cell %s is occupied", apperror.ErrInvalidAction, action)
	}

	next, err := board.With(action, ActivePlayer(board))
	if err != nil {
		return board, err
	}

	return next, nil
}

func isLegal(board entity.Board, action entity.Action) bool {
	for _, legal := range LegalActions(board) {
		if legal == action {
			return true
		}
	}

	return false
}

// Winner - returns the owner of the first complete line found.
func Winner(board entity.Board) (entity.Mark, bool) {
	for _, line := range lines {
		a := board[line[0].Row][line[0].Col]
		b := board[line[1].Row][line[1].Col]
		c := board[line[2].Row][line[2].Col]

		if a != entity.EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return entity.EmptyCell, false
}

func IsTerminal(board entity.Board) bool {
	if _, ok := Winner(board); ok {
		return true
	}

	return len(LegalActions(board)) == 0
}

// Utility - returns +1 if X won, -1 if O won and 0 otherwise.
// Only meaningful on terminal boards.
func Utility(board entity.Board) int {
	switch winner, _ := Winner(board); winner {
	case entity.PlayerX:
		return 1
	case entity.PlayerO:
		return -1
	default:
		return 0
	}
}

func OutcomeOf(board entity.Board) entity.Outcome {
	switch winner, _ := Winner(board); winner {
	case entity.PlayerX:
		return entity.OutcomeXWins
	case entity.PlayerO:
		return entity.OutcomeOWins
	}

	if len(LegalActions(board)) == 0 {
		return entity.OutcomeDraw
	}

	return entity.OutcomeOngoing
}

// Validate - checks that the board can arise from alternating legal play starting with X.
func Validate(board entity.Board) error {
	xCount, oCount := board.Count(entity.PlayerX), board.Count(entity.PlayerO)

	if diff := xCount - oCount; diff != 0 && diff != 1 {
		return fmt.Errorf("%w: %d X against %d O", apperror.ErrUnreachableBoard, xCount, oCount)
	}

	xWins, oWins := hasLine(board, entity.PlayerX), hasLine(board, entity.PlayerO)

	switch {
	case xWins && oWins:
		return fmt.Errorf("%w: both players have a line", apperror.ErrUnreachableBoard)
	case xWins && xCount != oCount+1:
		return fmt.Errorf("%w: X has a line but O moved after it", apperror.ErrUnreachableBoard)
	case oWins && xCount != oCount:
		return fmt.Errorf("%w: O has a line but X moved after it", apperror.ErrUnreachableBoard)
	}

	return nil
}

func hasLine(board entity.Board, mark entity.Mark) bool {
	for _, line := range lines {
		if board[line[0].Row][line[0].Col] == mark &&
			board[line[1].Row][line[1].Col] == mark &&
			board[line[2].Row][line[2].Col] == mark {
			return true
		}
	}

	return false
}

// ReachablePositions - returns every distinct board reachable from the initial state,
// terminal boards included, in breadth-first order.
func ReachablePositions() []entity.Board {
	start := entity.InitialState()
	seen := map[entity.Board]struct{}{start: {}}
	queue := []entity.Board{start}

	for i := 0; i < len(queue); i++ {
		board := queue[i]
		if IsTerminal(board) {
			continue
		}

		for _, action := range LegalActions(board) {
			next, err := ApplyAction(board, action)
			if err != nil {
				continue
			}

			if _, ok := seen[next]; ok {
				continue
			}

			seen[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	return queue
}
