package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type solverService interface {
	Solve(ctx context.Context, board entity.Board) (entity.Solution, error)
}

type statsUseCase interface {
	Stats(ctx context.Context) (entity.MatchStats, error)
}

type Handlers struct {
	logger *slog.Logger
	solver solverService
	stats  statsUseCase
}

func NewHandlers(logger *slog.Logger, solver solverService, stats statsUseCase) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest_handlers"),
		solver: solver,
		stats:  stats,
	}
}

type solveRequest struct {
	Board string `json:"board"`
}

type solveResponse struct {
	Board   string         `json:"board"`
	Player  entity.Mark    `json:"player"`
	Action  entity.Action  `json:"action"`
	Value   int            `json:"value"`
	Outcome entity.Outcome `json:"outcome,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// Solve - returns the optimal action for the board in the request body.
func (that *Handlers) Solve(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Solve")

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	board, err := entity.ParseBoard(req.Board)
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err = tictactoe.Validate(board); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	solution, err := that.solver.Solve(r.Context(), board)
	if errors.Is(err, apperror.ErrTerminalBoard) {
		that.writeJSON(w, http.StatusConflict, solveResponse{
			Board:   board.Key(),
			Value:   tictactoe.Utility(board),
			Outcome: tictactoe.OutcomeOf(board),
		})
		return
	}

	if err != nil {
		log.Error("failed to solve board", "board", board.Key(), "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to solve board"})
		return
	}

	that.writeJSON(w, http.StatusOK, solveResponse{
		Board:  board.Key(),
		Player: tictactoe.ActivePlayer(board),
		Action: solution.Action,
		Value:  solution.Value,
	})
}

func (that *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.stats.Stats(r.Context())
	if err != nil {
		that.logger.Error("failed to get stats", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get stats"})
		return
	}

	that.writeJSON(w, http.StatusOK, stats)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
