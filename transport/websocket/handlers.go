package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errCellRequired   = errors.New("row and col are required")
)

func (that *Server) handleNewGame(ctx context.Context, payload *RequestPayload) (ResponsePayload, error) {
	mark := payload.Mark
	if mark == entity.EmptyCell {
		mark = entity.PlayerX
	}

	game, err := that.uGame.NewGame(ctx, mark)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to create game: %w", err)
	}

	return ResponsePayload{Game: game}, nil
}

func (that *Server) handleGetGame(ctx context.Context, payload *RequestPayload) (ResponsePayload, error) {
	if payload.GameID == "" {
		return ResponsePayload{}, errGameIDRequired
	}

	game, err := that.uGame.GetGame(ctx, payload.GameID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to get game: %w", err)
	}

	return ResponsePayload{Game: game}, nil
}

func (that *Server) handleTurn(ctx context.Context, payload *RequestPayload) (ResponsePayload, error) {
	if payload.GameID == "" {
		return ResponsePayload{}, errGameIDRequired
	}

	if payload.Row == nil || payload.Col == nil {
		return ResponsePayload{}, errCellRequired
	}

	action := entity.Action{Row: *payload.Row, Col: *payload.Col}

	game, err := that.uGame.MakeTurn(ctx, payload.GameID, action)
	if err != nil {
		// the current game state is still useful to the client
		return ResponsePayload{Game: game}, fmt.Errorf("failed to make turn: %w", err)
	}

	return ResponsePayload{Game: game}, nil
}

func (that *Server) handleHint(ctx context.Context, payload *RequestPayload) (ResponsePayload, error) {
	if payload.GameID == "" {
		return ResponsePayload{}, errGameIDRequired
	}

	hint, err := that.uGame.Hint(ctx, payload.GameID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to get hint: %w", err)
	}

	return ResponsePayload{Hint: &hint}, nil
}
