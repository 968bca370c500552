package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	errStorageIsFull = errors.New("storage is full")
	errRedisDown     = errors.New("redis down")
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)

	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockMatchRepo struct {
	mock.Mock
}

func (that *mockMatchRepo) Save(ctx context.Context, match *entity.Match) error {
	args := that.Called(ctx, match)
	return args.Error(0)
}

func (that *mockMatchRepo) Stats(ctx context.Context) (entity.MatchStats, error) {
	args := that.Called(ctx)
	return args.Get(0).(entity.MatchStats), args.Error(1)
}

func newManager(gameRepo *mockGameRepo, matchRepo *mockMatchRepo) *GameManager {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	solver := service.NewSolverService(logger, nil)

	manager := NewGameManager(logger, gameRepo, matchRepo, solver, service.NewBotService(solver))
	manager.now = func() time.Time {
		return time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	}

	return manager
}

func mustParse(t *testing.T, s string) entity.Board {
	t.Helper()

	board, err := entity.ParseBoard(s)
	require.NoError(t, err)

	return board
}

func TestGameManager_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Human as X starts on the empty board", func(t *testing.T) {
		// Given: a repository accepting the new game
		gameRepo := &mockGameRepo{}
		gameRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		// When: the human picks X
		game, err := manager.NewGame(ctx, entity.PlayerX)

		// Then: the board is empty and the game has an id
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.InitialState(), game.Board)
		assert.True(t, game.IsOngoing())
		gameRepo.AssertExpectations(t)
	})

	t.Run("Bot opens when the human picks O", func(t *testing.T) {
		gameRepo := &mockGameRepo{}
		gameRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		game, err := manager.NewGame(ctx, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, 1, game.Board.Count(entity.PlayerX))
		assert.Equal(t, []entity.Action{{Row: 0, Col: 0}}, game.Moves)
	})

	t.Run("Error on invalid mark", func(t *testing.T) {
		manager := newManager(&mockGameRepo{}, &mockMatchRepo{})

		_, err := manager.NewGame(ctx, entity.EmptyCell)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Error when storage fails", func(t *testing.T) {
		gameRepo := &mockGameRepo{}
		gameRepo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(errStorageIsFull).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		game, err := manager.NewGame(ctx, entity.PlayerX)

		require.ErrorIs(t, err, errStorageIsFull)
		assert.Nil(t, game)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Human move is answered by the bot", func(t *testing.T) {
		// Given: a fresh game where the human is X
		game := entity.NewGame("g1", entity.PlayerX)

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()
		gameRepo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		// When: the human takes the center
		updated, err := manager.MakeTurn(ctx, "g1", entity.Action{Row: 1, Col: 1})

		// Then: the bot replied and it is the human's turn again
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, updated.Board[1][1])
		assert.Equal(t, 1, updated.Board.Count(entity.PlayerO))
		assert.Len(t, updated.Moves, 2)
		assert.True(t, updated.IsOngoing())
		gameRepo.AssertExpectations(t)
	})

	t.Run("Finished game is recorded and removed", func(t *testing.T) {
		// Given: the human (X) can only fill the last cell, ending in a draw
		game := entity.NewGame("g2", entity.PlayerX)
		game.Board = mustParse(t, "XOX XOO OX.")

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g2").Return(game, nil).Once()
		gameRepo.On("DeleteByID", mock.Anything, "g2").Return(nil).Once()

		matchRepo := &mockMatchRepo{}
		matchRepo.On("Save", mock.Anything, mock.MatchedBy(func(match *entity.Match) bool {
			return match.GameID == "g2" && match.Winner == entity.OutcomeDraw
		})).Return(nil).Once()

		manager := newManager(gameRepo, matchRepo)

		// When: the human plays the last cell
		updated, err := manager.MakeTurn(ctx, "g2", entity.Action{Row: 2, Col: 2})

		// Then: the game is finished as a draw
		require.NoError(t, err)
		assert.True(t, updated.IsFinished())
		assert.Equal(t, entity.OutcomeDraw, updated.Winner)
		gameRepo.AssertExpectations(t)
		matchRepo.AssertExpectations(t)
	})

	t.Run("Bot wins when the human ignores a threat", func(t *testing.T) {
		// Given: the bot (O) threatens the middle row
		game := entity.NewGame("g3", entity.PlayerX)
		game.Board = mustParse(t, "X.. OO. X..")

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g3").Return(game, nil).Once()
		gameRepo.On("DeleteByID", mock.Anything, "g3").Return(nil).Once()

		matchRepo := &mockMatchRepo{}
		matchRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		manager := newManager(gameRepo, matchRepo)

		// When: the human plays elsewhere
		updated, err := manager.MakeTurn(ctx, "g3", entity.Action{Row: 0, Col: 1})

		// Then: the bot completes the row
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeOWins, updated.Winner)
		assert.Equal(t, entity.PlayerO, updated.Board[1][2])
	})

	t.Run("Failed match save keeps the finished game", func(t *testing.T) {
		// Given: match history storage that rejects writes
		game := entity.NewGame("g4", entity.PlayerX)
		game.Board = mustParse(t, "XOX XOO OX.")

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g4").Return(game, nil).Once()
		gameRepo.On("CreateOrUpdate", mock.Anything, mock.MatchedBy(func(g *entity.Game) bool {
			return g.ID == "g4" && g.IsFinished()
		})).Return(nil).Once()

		matchRepo := &mockMatchRepo{}
		matchRepo.On("Save", mock.Anything, mock.Anything).Return(errStorageIsFull).Once()

		manager := newManager(gameRepo, matchRepo)

		// When: the last move is played
		updated, err := manager.MakeTurn(ctx, "g4", entity.Action{Row: 2, Col: 2})

		// Then: the turn succeeds and the finished game is stored instead of deleted
		require.NoError(t, err)
		assert.True(t, updated.IsFinished())
		gameRepo.AssertExpectations(t)
		gameRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)

		// When: another turn is attempted on the kept game
		gameRepo.On("GetByID", mock.Anything, "g4").Return(updated, nil).Once()
		_, err = manager.MakeTurn(ctx, "g4", entity.Action{Row: 0, Col: 0})

		// Then: it is rejected as finished
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Delete failure on finish is only logged", func(t *testing.T) {
		game := entity.NewGame("g4", entity.PlayerX)
		game.Board = mustParse(t, "XOX XOO OX.")

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g4").Return(game, nil).Once()
		gameRepo.On("DeleteByID", mock.Anything, "g4").Return(errRedisDown).Once()

		matchRepo := &mockMatchRepo{}
		matchRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		manager := newManager(gameRepo, matchRepo)

		updated, err := manager.MakeTurn(ctx, "g4", entity.Action{Row: 2, Col: 2})

		require.NoError(t, err)
		assert.True(t, updated.IsFinished())
		gameRepo.AssertExpectations(t)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		game := entity.NewGame("g5", entity.PlayerX)
		game.Board = mustParse(t, "XO. ... ...")

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g5").Return(game, nil).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		_, err := manager.MakeTurn(ctx, "g5", entity.Action{Row: 0, Col: 1})

		require.ErrorIs(t, err, apperror.ErrInvalidAction)
		gameRepo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Error on out of bounds coordinate", func(t *testing.T) {
		game := entity.NewGame("g6", entity.PlayerX)

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g6").Return(game, nil).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		_, err := manager.MakeTurn(ctx, "g6", entity.Action{Row: 3, Col: 0})

		require.ErrorIs(t, err, apperror.ErrInvalidCoordinate)
	})

	t.Run("Error when it is not the human's turn", func(t *testing.T) {
		game := entity.NewGame("g7", entity.PlayerO)

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g7").Return(game, nil).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		_, err := manager.MakeTurn(ctx, "g7", entity.Action{Row: 1, Col: 1})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		game := entity.NewGame("g8", entity.PlayerX)
		game.Finish(entity.OutcomeDraw)

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g8").Return(game, nil).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		_, err := manager.MakeTurn(ctx, "g8", entity.Action{Row: 1, Col: 1})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Error on unknown game", func(t *testing.T) {
		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "missing").Return(nil, apperror.ErrGameNotFound).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		_, err := manager.MakeTurn(ctx, "missing", entity.Action{Row: 1, Col: 1})

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameManager_Hint(t *testing.T) {
	ctx := context.Background()

	t.Run("Suggests the blocking move", func(t *testing.T) {
		// Given: the human (O) must block the top row
		game := entity.NewGame("g1", entity.PlayerO)
		game.Board = mustParse(t, "XX. .O. ...")

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		// When: asking for a hint
		hint, err := manager.Hint(ctx, "g1")

		// Then: the blocking cell is suggested
		require.NoError(t, err)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, hint.Action)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		game := entity.NewGame("g2", entity.PlayerO)
		game.Finish(entity.OutcomeXWins)

		gameRepo := &mockGameRepo{}
		gameRepo.On("GetByID", mock.Anything, "g2").Return(game, nil).Once()

		manager := newManager(gameRepo, &mockMatchRepo{})

		_, err := manager.Hint(ctx, "g2")

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGameManager_Stats(t *testing.T) {
	matchRepo := &mockMatchRepo{}
	matchRepo.On("Stats", mock.Anything).Return(entity.MatchStats{Total: 2, Draws: 2}, nil).Once()

	manager := newManager(&mockGameRepo{}, matchRepo)

	stats, err := manager.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entity.MatchStats{Total: 2, Draws: 2}, stats)
}
