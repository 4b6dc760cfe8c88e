package domain

import "time"

// ─── Mini-Game Types ────────────────────────────────────────────────────────

// GameType identifies one of the four cognitive mini-games.
type GameType string

const (
	GameSequence    GameType = "sequence"
	GameAssociation GameType = "association"
	GameReaction    GameType = "reaction"
	GameCardMatch   GameType = "cardmatch"
)

// AllGameTypes lists every game in display order.
func AllGameTypes() []GameType {
	return []GameType{GameSequence, GameAssociation, GameReaction, GameCardMatch}
}

// Valid reports whether g names a known game.
func (g GameType) Valid() bool {
	switch g {
	case GameSequence, GameAssociation, GameReaction, GameCardMatch:
		return true
	}
	return false
}

// Difficulty bounds and adjustment thresholds.
// Score >= LevelUpScore raises the level by one (capped), score below
// LevelDownScore lowers it by one (floored).
const (
	MinLevel       = 1
	MaxLevel       = 10
	LevelUpScore   = 80
	LevelDownScore = 40
)

// GameResultsLimit caps the stored result ring buffer.
const GameResultsLimit = 50

// AvgScoreWindow is how many recent results feed the rolling mean.
const AvgScoreWindow = 10

// GameStats carries the raw per-game numbers behind a score.
type GameStats struct {
	CorrectAnswers    int     `json:"correct_answers"`
	TotalQuestions    int     `json:"total_questions"`
	AverageReactionMs float64 `json:"average_reaction_ms,omitempty"`
	TimeSpentSec      int     `json:"time_spent_sec"`
}

// GameResult is one completed game, append-only.
type GameResult struct {
	ID        string    `json:"id"`
	GameType  GameType  `json:"game_type"`
	Score     int       `json:"score"` // 0-100
	Level     int       `json:"level"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Timestamp time.Time `json:"timestamp"`
	Stats     GameStats `json:"stats"`
}

// TestResult is one completed cognitive assessment (4 phases).
type TestResult struct {
	ID          string    `json:"id"`
	PhaseScores [4]int    `json:"phase_scores"`
	TotalScore  int       `json:"total_score"`
	TakenAt     time.Time `json:"taken_at"`
}
