// Package score implements the cognitive score calculator.
// The score blends streak length, recent game performance, and weekly
// listening minutes into a single bounded metric.
package score

import (
	"fmt"
	"math"

	"github.com/memoclarity/memoclarity/internal/domain"
	"github.com/memoclarity/memoclarity/internal/infra/metrics"
	"github.com/memoclarity/memoclarity/internal/infra/sqlite"
)

// Compute blends the three inputs into an integer score clamped to [0,100].
// There is no time decay: weeklyMinutes is whatever the accumulator holds
// when the score is computed.
func Compute(currentStreak int, avgGameScore float64, weeklyMinutes int) int {
	raw := float64(currentStreak)*domain.StreakWeight +
		avgGameScore*domain.GameWeight +
		float64(weeklyMinutes)*domain.FrequencyWeight

	s := int(math.Round(raw))
	if s > 100 {
		s = 100
	}
	if s < 0 {
		s = 0
	}
	return s
}

// Service recomputes and persists the cognitive score.
// Recompute is explicit and idempotent: callers invoke it deliberately
// after every input-mutating event (check-in, game completion, listening
// minutes), never as an implicit side effect.
type Service struct {
	db *sqlite.DB
}

// NewService creates a score service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Recompute reads the three inputs from state, computes the score, and
// stores it. Returns the new score.
func (s *Service) Recompute() (int, error) {
	currentStreak, err := s.db.GetStateInt("streak_current")
	if err != nil {
		return 0, fmt.Errorf("get streak_current: %w", err)
	}
	avgGame, err := s.db.GetStateFloat("avg_game_score")
	if err != nil {
		return 0, fmt.Errorf("get avg_game_score: %w", err)
	}
	weeklyMinutes, err := s.db.GetStateInt("weekly_minutes")
	if err != nil {
		return 0, fmt.Errorf("get weekly_minutes: %w", err)
	}

	cognitive := Compute(currentStreak, avgGame, weeklyMinutes)
	if err := s.db.SetStateInt("cognitive_score", cognitive); err != nil {
		return 0, fmt.Errorf("save cognitive_score: %w", err)
	}

	metrics.CognitiveScore.Set(float64(cognitive))
	return cognitive, nil
}

// Current loads the persisted score.
func (s *Service) Current() (int, error) {
	return s.db.GetStateInt("cognitive_score")
}
