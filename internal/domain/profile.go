package domain

// ─── Profile / Score Types ──────────────────────────────────────────────────

// UserProfile aggregates the derived wellness state.
// Invariants: MaxStreak >= CurrentStreak, CognitiveScore in [0,100].
type UserProfile struct {
	CurrentStreak          int              `json:"current_streak"`
	MaxStreak              int              `json:"max_streak"`
	CognitiveScore         int              `json:"cognitive_score"`
	AvgGameScore           float64          `json:"avg_game_score"`
	WeeklyFrequencyMinutes int              `json:"weekly_frequency_minutes"`
	GameLevels             map[GameType]int `json:"game_levels"`
	Badges                 []Badge          `json:"badges"`
}

// Cognitive score blend weights. The raw score is
// streak*StreakWeight + avgGame*GameWeight + weeklyMinutes*FrequencyWeight,
// rounded and clamped to [0,100].
const (
	StreakWeight    = 0.8
	GameWeight      = 0.5
	FrequencyWeight = 0.1
)
