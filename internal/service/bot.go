package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var ErrNotBotTurn = errors.New("it's not the bot's turn")

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Action, error)
}

type botService struct {
	solver SolverService
}

func NewBotService(solver SolverService) BotService {
	return &botService{
		solver: solver,
	}
}

// MakeTurn - plays the optimal move for the bot on the game board.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Action, error) {
	if tictactoe.ActivePlayer(game.Board) != game.BotMark() {
		return entity.Action{}, ErrNotBotTurn
	}

	solution, err := that.solver.Solve(ctx, game.Board)
	if err != nil {
		return entity.Action{}, fmt.Errorf("failed to solve board: %w", err)
	}

	board, err := tictactoe.ApplyAction(game.Board, solution.Action)
	if err != nil {
		return entity.Action{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	game.Board = board
	game.Moves = append(game.Moves, solution.Action)

	return solution.Action, nil
}
