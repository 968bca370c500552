package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type MatchRepository interface {
	Save(ctx context.Context, match *entity.Match) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Match, error)
	Stats(ctx context.Context) (entity.MatchStats, error)
}

type matchRepository struct {
	conn *sql.DB
}

func NewMatchRepository(conn *sql.DB) MatchRepository {
	return &matchRepository{
		conn: conn,
	}
}

func (that *matchRepository) Save(ctx context.Context, match *entity.Match) error {
	query := `INSERT OR REPLACE INTO matches (game_id, human_mark, winner, moves, finished_at) VALUES (?, ?, ?, ?, ?)`

	moves, err := json.Marshal(match.Moves)
	if err != nil {
		return fmt.Errorf("can't marshal moves: %w", err)
	}

	_, err = that.conn.ExecContext(ctx, query,
		match.GameID, string(match.HumanMark), string(match.Winner), string(moves), match.FinishedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("can't save match: %w", err)
	}

	return nil
}

func (that *matchRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Match, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidLimit, limit)
	}

	query := `SELECT game_id, human_mark, winner, moves, finished_at FROM matches ORDER BY finished_at DESC, game_id LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*entity.Match, 0, limit)
	for rows.Next() {
		var (
			match      entity.Match
			humanMark  string
			winner     string
			moves      string
			finishedAt int64
		)

		if err = rows.Scan(&match.GameID, &humanMark, &winner, &moves, &finishedAt); err != nil {
			return nil, fmt.Errorf("can't scan match: %w", err)
		}

		if err = json.Unmarshal([]byte(moves), &match.Moves); err != nil {
			return nil, fmt.Errorf("can't unmarshal moves: %w", err)
		}

		match.HumanMark = entity.Mark(humanMark)
		match.Winner = entity.Outcome(winner)
		match.FinishedAt = time.UnixMilli(finishedAt).UTC()

		matches = append(matches, &match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate matches: %w", err)
	}

	return matches, nil
}

func (that *matchRepository) Stats(ctx context.Context) (entity.MatchStats, error) {
	query := `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN winner = human_mark THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN winner <> human_mark AND winner <> ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0)
	FROM matches`

	var stats entity.MatchStats

	draw := string(entity.OutcomeDraw)
	err := that.conn.QueryRowContext(ctx, query, draw, draw).Scan(&stats.Total, &stats.HumanWins, &stats.BotWins, &stats.Draws)
	if err != nil {
		return entity.MatchStats{}, fmt.Errorf("can't count matches: %w", err)
	}

	return stats, nil
}
