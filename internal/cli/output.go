package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level

	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func describeOutcome(outcome entity.Outcome) string {
	switch outcome {
	case entity.OutcomeXWins:
		return "X wins"
	case entity.OutcomeOWins:
		return "O wins"
	case entity.OutcomeDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

func printBoard(w io.Writer, board entity.Board) {
	fmt.Fprint(w, board.String())
}
