package games

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memoclarity/memoclarity/internal/domain"
	"github.com/memoclarity/memoclarity/internal/infra/metrics"
	"github.com/memoclarity/memoclarity/internal/infra/sqlite"
)

// Service persists game results, maintains the rolling average, and adjusts
// per-game difficulty.
type Service struct {
	db *sqlite.DB
}

// NewService creates a game result service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Save records a completed game: appends to the result ring buffer (newest
// 50 kept), refreshes the rolling mean of the last 10 scores, and moves the
// game's difficulty level up (score >= 80, capped at 10) or down
// (score < 40, floored at 1).
func (s *Service) Save(now time.Time, game domain.GameType, score int, stats domain.GameStats) (*domain.GameResult, error) {
	if !game.Valid() {
		return nil, domain.ErrUnknownGame
	}
	if score < 0 || score > 100 {
		return nil, domain.ErrInvalidScore
	}

	level, err := s.Level(game)
	if err != nil {
		return nil, err
	}

	result := domain.GameResult{
		ID:        uuid.NewString(),
		GameType:  game,
		Score:     score,
		Level:     level,
		Date:      domain.Day(now),
		Timestamp: now,
		Stats:     stats,
	}

	if err := s.db.InsertGameResult(result); err != nil {
		return nil, fmt.Errorf("insert game result: %w", err)
	}
	if err := s.db.TrimGameResults(domain.GameResultsLimit); err != nil {
		return nil, fmt.Errorf("trim game results: %w", err)
	}

	if err := s.refreshAverage(); err != nil {
		return nil, err
	}
	if err := s.adjustLevel(game, level, score); err != nil {
		return nil, err
	}

	metrics.GamesPlayed.WithLabelValues(string(game)).Inc()
	metrics.GameScores.WithLabelValues(string(game)).Observe(float64(score))

	return &result, nil
}

// refreshAverage recomputes the rolling mean of the last 10 scores.
// With no games played yet the previous stored average stands.
func (s *Service) refreshAverage() error {
	scores, err := s.db.RecentGameScores(domain.AvgScoreWindow)
	if err != nil {
		return fmt.Errorf("recent scores: %w", err)
	}
	if len(scores) == 0 {
		return nil
	}

	sum := 0
	for _, sc := range scores {
		sum += sc
	}
	avg := float64(sum) / float64(len(scores))
	if err := s.db.SetStateFloat("avg_game_score", avg); err != nil {
		return fmt.Errorf("save avg_game_score: %w", err)
	}
	return nil
}

// adjustLevel moves the stored difficulty one step per game played.
func (s *Service) adjustLevel(game domain.GameType, level, score int) error {
	next := level
	switch {
	case score >= domain.LevelUpScore && level < domain.MaxLevel:
		next = level + 1
	case score < domain.LevelDownScore && level > domain.MinLevel:
		next = level - 1
	}
	if next == level {
		return nil
	}
	if err := s.db.SetStateInt(levelKey(game), next); err != nil {
		return fmt.Errorf("save level: %w", err)
	}
	return nil
}

// Level returns a game's current difficulty (1-10, default 1).
func (s *Service) Level(game domain.GameType) (int, error) {
	level, err := s.db.GetStateInt(levelKey(game))
	if err != nil {
		return 0, fmt.Errorf("get level: %w", err)
	}
	if level < domain.MinLevel {
		level = domain.MinLevel
	}
	if level > domain.MaxLevel {
		level = domain.MaxLevel
	}
	return level, nil
}

// Levels returns all games' current difficulty levels.
func (s *Service) Levels() (map[domain.GameType]int, error) {
	levels := make(map[domain.GameType]int, len(domain.AllGameTypes()))
	for _, g := range domain.AllGameTypes() {
		level, err := s.Level(g)
		if err != nil {
			return nil, err
		}
		levels[g] = level
	}
	return levels, nil
}

// Recent returns the newest stored results.
func (s *Service) Recent(limit int) ([]domain.GameResult, error) {
	if limit <= 0 || limit > domain.GameResultsLimit {
		limit = domain.GameResultsLimit
	}
	return s.db.ListGameResults(limit)
}

// AverageScore returns the rolling mean of the last 10 scores.
func (s *Service) AverageScore() (float64, error) {
	return s.db.GetStateFloat("avg_game_score")
}

func levelKey(game domain.GameType) string {
	return "level_" + string(game)
}
