package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const Size = 3

// Mark is the content of a cell. PlayerX and PlayerO double as the two players.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// Opponent returns the other player. Empty stays empty.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Action identifies the cell to fill.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) Valid() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a row-major 3x3 grid. It is an array, so assignment copies it.
type Board [Size][Size]Mark

// InitialState - returns the empty board.
func InitialState() Board {
	return Board{}
}

func (that Board) Cell(row, col int) (Mark, error) {
	if !(Action{Row: row, Col: col}).Valid() {
		return EmptyCell, fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCoordinate, row, col)
	}

	return that[row][col], nil
}

// With - returns a copy of the board with the cell at action set to mark.
func (that Board) With(action Action, mark Mark) (Board, error) {
	if !action.Valid() {
		return that, fmt.Errorf("%w: %s", apperror.ErrInvalidCoordinate, action)
	}

	next := that
	next[action.Row][action.Col] = mark

	return next, nil
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}

// Key - returns the 9-character row-major form, "." for empty cells.
func (that Board) Key() string {
	var sb strings.Builder
	sb.Grow(Size * Size)

	for _, row := range that {
		for _, cell := range row {
			sb.WriteByte(cellByte(cell))
		}
	}

	return sb.String()
}

func (that Board) String() string {
	var sb strings.Builder

	for i, row := range that {
		if i > 0 {
			sb.WriteString("-+-+-\n")
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte('|')
			}
			if cell == EmptyCell {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte(cellByte(cell))
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// ParseBoard - parses the Key form. Separators "/", "|", "," and whitespace are ignored,
// "_" and "-" are accepted as empty cells.
func ParseBoard(s string) (Board, error) {
	var board Board

	n := 0
	for _, r := range s {
		var mark Mark
		switch r {
		case '/', '|', ',', ' ', '\t', '\n', '\r':
			continue
		case 'X', 'x':
			mark = PlayerX
		case 'O', 'o':
			mark = PlayerO
		case '.', '_', '-':
			mark = EmptyCell
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", apperror.ErrInvalidBoard, r)
		}

		if n >= Size*Size {
			return Board{}, fmt.Errorf("%w: more than %d cells", apperror.ErrInvalidBoard, Size*Size)
		}

		board[n/Size][n%Size] = mark
		n++
	}

	if n != Size*Size {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", apperror.ErrInvalidBoard, n, Size*Size)
	}

	return board, nil
}

func cellByte(cell Mark) byte {
	switch cell {
	case PlayerX:
		return 'X'
	case PlayerO:
		return 'O'
	default:
		return '.'
	}
}
