package entity

import "time"

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Outcome of a board from player X's point of view.
type Outcome string

const (
	OutcomeOngoing Outcome = ""
	OutcomeXWins   Outcome = "X"
	OutcomeOWins   Outcome = "O"
	OutcomeDraw    Outcome = "-"
)

// Solution is the optimal action for a board together with its minimax value.
type Solution struct {
	Action Action `json:"action"`
	Value  int    `json:"value"`
}

// Game is a human-vs-bot session.
type Game struct {
	ID        string   `json:"id"`
	Board     Board    `json:"board"`
	HumanMark Mark     `json:"human_mark"`
	Status    string   `json:"status"`
	Winner    Outcome  `json:"winner,omitempty"`
	Moves     []Action `json:"moves,omitempty"`
}

func NewGame(id string, humanMark Mark) *Game {
	return &Game{
		ID:        id,
		Board:     InitialState(),
		HumanMark: humanMark,
		Status:    StatusOngoing,
	}
}

func (that *Game) BotMark() Mark {
	return that.HumanMark.Opponent()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// Finish - marks the game finished with the given outcome.
func (that *Game) Finish(outcome Outcome) {
	that.Status = StatusFinished
	that.Winner = outcome
}

// Match is the record of a finished game.
type Match struct {
	GameID     string    `json:"game_id"`
	HumanMark  Mark      `json:"human_mark"`
	Winner     Outcome   `json:"winner"`
	Moves      []Action  `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

// MatchStats counts finished matches by result.
type MatchStats struct {
	Total     int `json:"total"`
	HumanWins int `json:"human_wins"`
	BotWins   int `json:"bot_wins"`
	Draws     int `json:"draws"`
}
