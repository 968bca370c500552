package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type matchRepo interface {
	Save(ctx context.Context, match *entity.Match) error
	Stats(ctx context.Context) (entity.MatchStats, error)
}

type solver interface {
	Solve(ctx context.Context, board entity.Board) (entity.Solution, error)
}

type bot interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Action, error)
}

// GameManager runs human-vs-bot games stored in Redis and records finished ones.
type GameManager struct {
	logger *slog.Logger

	gameRepo  gameRepo
	matchRepo matchRepo
	solver    solver
	bot       bot

	now func() time.Time
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, matchRepo matchRepo, solver solver, bot bot) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:  gameRepo,
		matchRepo: matchRepo,
		solver:    solver,
		bot:       bot,

		now: time.Now,
	}
}

// NewGame - starts a game. When the human plays O the bot opens.
func (that *GameManager) NewGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error) {
	if !humanMark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, humanMark)
	}

	game := entity.NewGame(uuid.NewString(), humanMark)

	if game.BotMark() == entity.PlayerX {
		if _, err := that.bot.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "humanMark", humanMark)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human's action and, unless the game ended, the bot's reply.
func (that *GameManager) MakeTurn(ctx context.Context, id string, action entity.Action) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	// a finished game is only still stored when its match could not be recorded
	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	if tictactoe.ActivePlayer(game.Board) != game.HumanMark {
		return game, apperror.ErrNotYourTurn
	}

	board, err := tictactoe.ApplyAction(game.Board, action)
	if err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	game.Board = board
	game.Moves = append(game.Moves, action)

	if !tictactoe.IsTerminal(game.Board) {
		if _, err = that.bot.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if tictactoe.IsTerminal(game.Board) {
		game.Finish(tictactoe.OutcomeOf(game.Board))
		that.finishGame(ctx, game)

		return game, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// Hint - returns the optimal action for the human in an ongoing game.
func (that *GameManager) Hint(ctx context.Context, id string) (entity.Solution, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return entity.Solution{}, err
	}

	if game.IsFinished() {
		return entity.Solution{}, apperror.ErrGameFinished
	}

	solution, err := that.solver.Solve(ctx, game.Board)
	if err != nil {
		return entity.Solution{}, fmt.Errorf("failed to solve board: %w", err)
	}

	return solution, nil
}

func (that *GameManager) Stats(ctx context.Context) (entity.MatchStats, error) {
	stats, err := that.matchRepo.Stats(ctx)
	if err != nil {
		return entity.MatchStats{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

// finishGame - records the match and removes the live game. Failures are only logged,
// the caller already has the final state. If the match can't be recorded the finished game
// stays in Redis until its TTL runs out.
func (that *GameManager) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	match := &entity.Match{
		GameID:     game.ID,
		HumanMark:  game.HumanMark,
		Winner:     game.Winner,
		Moves:      game.Moves,
		FinishedAt: that.now().UTC(),
	}

	if err := that.matchRepo.Save(ctx, match); err != nil {
		log.Error("failed to save match", "error", err)

		if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
			log.Error("failed to keep finished game", "error", err)
		}

		return
	}

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
	}

	log.Info("game finished", "winner", game.Winner)
}
