package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID string      `json:"game_id,omitempty"`
	Mark   entity.Mark `json:"mark,omitempty"`
	Row    *int        `json:"row,omitempty"`
	Col    *int        `json:"col,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.Game     `json:"game,omitempty"`
	Hint  *entity.Solution `json:"hint,omitempty"`
	Error string           `json:"error,omitempty"`
}

const (
	actionNewGame = "game:new"
	actionGetGame = "game:get"
	actionTurn    = "game:turn"
	actionHint    = "game:hint"
	actionError   = "error"
)
