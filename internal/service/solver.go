package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type SolverService interface {
	Solve(ctx context.Context, board entity.Board) (entity.Solution, error)
	Warm(ctx context.Context) (int, error)
}

type solutionRepo interface {
	Save(ctx context.Context, board entity.Board, solution entity.Solution) error
	Get(ctx context.Context, board entity.Board) (entity.Solution, error)
}

type solverService struct {
	logger *slog.Logger
	cache  solutionRepo
}

// NewSolverService - cache may be nil, then every call runs a fresh search.
func NewSolverService(logger *slog.Logger, cache solutionRepo) SolverService {
	return &solverService{
		logger: logger.With("component", "solver"),
		cache:  cache,
	}
}

func (that *solverService) Solve(ctx context.Context, board entity.Board) (entity.Solution, error) {
	log := that.logger.With("method", "Solve", "board", board.Key())

	if tictactoe.IsTerminal(board) {
		return entity.Solution{}, apperror.ErrTerminalBoard
	}

	if that.cache != nil {
		solution, err := that.cache.Get(ctx, board)
		switch {
		case err == nil:
			log.Debug("solution cache hit")
			return solution, nil
		case !errors.Is(err, apperror.ErrSolutionNotFound):
			log.Warn("failed to read solution cache", "error", err)
		}
	}

	result, err := tictactoe.Search(board)
	if err != nil {
		return entity.Solution{}, fmt.Errorf("failed to search board: %w", err)
	}

	log.Debug("board solved", "action", result.Action.String(), "value", result.Value, "nodes", result.Nodes)

	solution := entity.Solution{Action: result.Action, Value: result.Value}

	if that.cache != nil {
		if err = that.cache.Save(ctx, board, solution); err != nil {
			log.Warn("failed to write solution cache", "error", err)
		}
	}

	return solution, nil
}

// Warm - solves every reachable non-terminal board so later calls hit the cache.
func (that *solverService) Warm(ctx context.Context) (int, error) {
	log := that.logger.With("method", "Warm")

	if that.cache == nil {
		return 0, nil
	}

	stored := 0
	for _, board := range tictactoe.ReachablePositions() {
		if err := ctx.Err(); err != nil {
			return stored, fmt.Errorf("warm interrupted: %w", err)
		}

		if tictactoe.IsTerminal(board) {
			continue
		}

		result, err := tictactoe.Search(board)
		if err != nil {
			return stored, fmt.Errorf("failed to search board %s: %w", board.Key(), err)
		}

		solution := entity.Solution{Action: result.Action, Value: result.Value}
		if err = that.cache.Save(ctx, board, solution); err != nil {
			return stored, fmt.Errorf("failed to cache board %s: %w", board.Key(), err)
		}

		stored++
	}

	log.Info("solution cache warmed", "stored", stored)

	return stored, nil
}
