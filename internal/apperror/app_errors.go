package apperror

import "errors"

var (
	ErrInvalidAction     = errors.New("invalid action")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrTerminalBoard     = errors.New("board is terminal, no action available")

	ErrInvalidBoard     = errors.New("invalid board")
	ErrUnreachableBoard = errors.New("board is not reachable by legal play")
	ErrInvalidMark      = errors.New("invalid player mark")

	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrGameNotFound     = errors.New("game not found")
	ErrSolutionNotFound = errors.New("solution not found")
	ErrInvalidLimit     = errors.New("limit must be positive")
)
