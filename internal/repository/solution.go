package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// SolutionRepository caches solved positions keyed by entity.Board.Key.
// Solutions never change, so entries are stored without expiry.
type SolutionRepository interface {
	Save(ctx context.Context, board entity.Board, solution entity.Solution) error
	Get(ctx context.Context, board entity.Board) (entity.Solution, error)
	Count(ctx context.Context) (int, error)
}

type dbSolution struct {
	client *redis.Client
}

func NewSolutionRepository(client *redis.Client) SolutionRepository {
	return &dbSolution{
		client: client,
	}
}

func (that *dbSolution) Save(ctx context.Context, board entity.Board, solution entity.Solution) error {
	solutionJSON, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("could not marshal solution: %w", err)
	}

	if err = that.client.Set(ctx, solutionKey(board), solutionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set solution: %w", err)
	}

	return nil
}

func (that *dbSolution) Get(ctx context.Context, board entity.Board) (entity.Solution, error) {
	response, err := that.client.Get(ctx, solutionKey(board)).Result()
	if errors.Is(err, redis.Nil) {
		return entity.Solution{}, apperror.ErrSolutionNotFound
	}

	if err != nil {
		return entity.Solution{}, fmt.Errorf("failed to get solution: %w", err)
	}

	var solution entity.Solution
	if err = json.Unmarshal([]byte(response), &solution); err != nil {
		return entity.Solution{}, fmt.Errorf("failed to unmarshal solution: %w", err)
	}

	return solution, nil
}

// Count - returns the number of cached solutions.
func (that *dbSolution) Count(ctx context.Context) (int, error) {
	count := 0

	iter := that.client.Scan(ctx, 0, "solution:*", 1000).Iterator()
	for iter.Next(ctx) {
		count++
	}

	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan solutions: %w", err)
	}

	return count, nil
}

func solutionKey(board entity.Board) string {
	return "solution:" + board.Key()
}
