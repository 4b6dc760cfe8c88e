// Package tracker owns the application state and its mutations.
// Every state change goes through an explicit Tracker method — check-in,
// game result, listening minutes — which wires streak → badges → tickets →
// cognitive score in one synchronous pass. Handlers get the Tracker by
// dependency passing; there is no ambient lookup.
package tracker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memoclarity/memoclarity/internal/app/score"
	"github.com/memoclarity/memoclarity/internal/app/streak"
	"github.com/memoclarity/memoclarity/internal/app/tickets"
	"github.com/memoclarity/memoclarity/internal/domain"
	"github.com/memoclarity/memoclarity/internal/infra/metrics"
	"github.com/memoclarity/memoclarity/internal/infra/sqlite"

	gamesvc "github.com/memoclarity/memoclarity/internal/app/games"
)

// Tracker is the application-state aggregate.
type Tracker struct {
	db      *sqlite.DB
	Streak  *streak.Service
	Score   *score.Service
	Tickets *tickets.Service
	Games   *gamesvc.Service
}

// New wires a tracker over one database.
func New(db *sqlite.DB) *Tracker {
	return &Tracker{
		db:      db,
		Streak:  streak.NewService(db),
		Score:   score.NewService(db),
		Tickets: tickets.NewService(db),
		Games:   gamesvc.NewService(db),
	}
}

// CheckInResult is everything one check-in produced.
type CheckInResult struct {
	Entry            domain.CheckInEntry   `json:"entry"`
	AlreadyCheckedIn bool                  `json:"already_checked_in"`
	Streak           domain.StreakSummary  `json:"streak"`
	NewBadges        []domain.Badge        `json:"new_badges,omitempty"`
	Tickets          []domain.TicketAction `json:"tickets,omitempty"`
	CognitiveScore   int                   `json:"cognitive_score"`
}

// CheckIn records today's check-in and runs the full update chain:
// streak recompute, milestone badges, ticket awards (daily check-in,
// milestone testimony bonus, perfect week), cognitive score recompute.
// A repeat check-in on the same date changes nothing.
func (t *Tracker) CheckIn(now time.Time, testimony string, isPublic bool) (*CheckInResult, error) {
	if err := t.Rollover(now); err != nil {
		return nil, err
	}

	entry, inserted, err := t.Streak.Record(now, testimony, isPublic)
	if err != nil {
		return nil, err
	}

	result := &CheckInResult{Entry: entry}

	if !inserted {
		result.AlreadyCheckedIn = true
		if result.Streak, err = t.Streak.Current(); err != nil {
			return nil, err
		}
		if result.CognitiveScore, err = t.Score.Current(); err != nil {
			return nil, err
		}
		return result, nil
	}

	if result.Streak, err = t.Streak.Recompute(now); err != nil {
		return nil, err
	}
	if result.NewBadges, err = t.Streak.MintBadges(result.Streak.Current, now); err != nil {
		return nil, err
	}

	if a, err := t.Tickets.Award(domain.ActionCheckin, now, "Daily check-in"); err != nil {
		return nil, err
	} else if a != nil {
		result.Tickets = append(result.Tickets, *a)
	}

	// Testimony bonus only counts on a milestone day.
	if testimony != "" && domain.IsMilestone(result.Streak.Current) {
		desc := fmt.Sprintf("Testimony on %d-day milestone", result.Streak.Current)
		if a, err := t.Tickets.Award(domain.ActionTestimony, now, desc); err != nil {
			return nil, err
		} else if a != nil {
			result.Tickets = append(result.Tickets, *a)
		}
	}

	eligible, err := t.Tickets.PerfectWeekEligible(now)
	if err != nil {
		return nil, err
	}
	if eligible {
		if a, err := t.Tickets.Award(domain.ActionPerfectWeek, now, "Perfect week of check-ins"); err != nil {
			return nil, err
		} else if a != nil {
			result.Tickets = append(result.Tickets, *a)
		}
	}

	if result.CognitiveScore, err = t.Score.Recompute(); err != nil {
		return nil, err
	}
	return result, nil
}

// AddListeningMinutes credits an audio session: accumulates the weekly
// minutes, awards the day's frequency ticket, and recomputes the score.
// Returns the week's running total.
func (t *Tracker) AddListeningMinutes(now time.Time, minutes int) (int, error) {
	if minutes <= 0 {
		return 0, domain.ErrInvalidMinutes
	}
	if err := t.Rollover(now); err != nil {
		return 0, err
	}

	total, err := t.db.GetStateInt("weekly_minutes")
	if err != nil {
		return 0, fmt.Errorf("get weekly_minutes: %w", err)
	}
	total += minutes
	if err := t.db.SetStateInt("weekly_minutes", total); err != nil {
		return 0, fmt.Errorf("save weekly_minutes: %w", err)
	}
	metrics.ListeningMinutes.Add(float64(minutes))

	desc := fmt.Sprintf("Audio session (%d min)", minutes)
	if _, err := t.Tickets.Award(domain.ActionFrequency, now, desc); err != nil {
		return 0, err
	}
	if _, err := t.Score.Recompute(); err != nil {
		return 0, err
	}
	return total, nil
}

// SaveGameResult stores a finished mini-game, awards the day's game ticket,
// and recomputes the score.
func (t *Tracker) SaveGameResult(now time.Time, game domain.GameType, gameScore int, stats domain.GameStats) (*domain.GameResult, error) {
	if err := t.Rollover(now); err != nil {
		return nil, err
	}

	result, err := t.Games.Save(now, game, gameScore, stats)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Played %s", game)
	if _, err := t.Tickets.Award(domain.ActionGame, now, desc); err != nil {
		return nil, err
	}
	if _, err := t.Score.Recompute(); err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitTestResult stores a cognitive assessment (4 phase scores + total).
func (t *Tracker) SubmitTestResult(now time.Time, phaseScores [4]int, total int) (*domain.TestResult, error) {
	result := domain.TestResult{
		ID:          uuid.NewString(),
		PhaseScores: phaseScores,
		TotalScore:  total,
		TakenAt:     now,
	}
	if err := t.db.InsertTestResult(result); err != nil {
		return nil, fmt.Errorf("insert test result: %w", err)
	}
	return &result, nil
}

// TestResults returns assessments newest first.
func (t *Tracker) TestResults(limit int) ([]domain.TestResult, error) {
	if limit <= 0 {
		limit = 50
	}
	return t.db.ListTestResults(limit)
}

// Testimonies returns public check-in testimonies, newest first.
func (t *Tracker) Testimonies(limit int) ([]domain.CheckInEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return t.db.ListPublicTestimonies(limit)
}

// Rollover runs the calendar transitions: the monthly ticket reset and the
// ISO-week listening-minutes reset. Safe to call before every mutation.
func (t *Tracker) Rollover(now time.Time) error {
	if err := t.Tickets.Rollover(now); err != nil {
		return err
	}

	week := isoWeek(now)
	last, err := t.db.GetState("week_iso")
	if err != nil {
		return fmt.Errorf("get week_iso: %w", err)
	}
	if last == week {
		return nil
	}
	if last != "" {
		if err := t.db.SetStateInt("weekly_minutes", 0); err != nil {
			return fmt.Errorf("reset weekly_minutes: %w", err)
		}
		if _, err := t.Score.Recompute(); err != nil {
			return err
		}
	}
	return t.db.SetState("week_iso", week)
}

// Profile assembles the derived state aggregate.
func (t *Tracker) Profile() (domain.UserProfile, error) {
	var p domain.UserProfile
	var err error

	summary, err := t.Streak.Current()
	if err != nil {
		return p, err
	}
	p.CurrentStreak = summary.Current
	p.MaxStreak = summary.Max

	if p.CognitiveScore, err = t.Score.Current(); err != nil {
		return p, err
	}
	if p.AvgGameScore, err = t.Games.AverageScore(); err != nil {
		return p, err
	}
	if p.WeeklyFrequencyMinutes, err = t.db.GetStateInt("weekly_minutes"); err != nil {
		return p, err
	}
	if p.GameLevels, err = t.Games.Levels(); err != nil {
		return p, err
	}
	if p.Badges, err = t.Streak.Badges(); err != nil {
		return p, err
	}
	return p, nil
}

// Summary is the one-shot dashboard aggregate.
type Summary struct {
	Date            string               `json:"date"`
	CheckedInToday  bool                 `json:"checked_in_today"`
	Streak          domain.StreakSummary `json:"streak"`
	CognitiveScore  int                  `json:"cognitive_score"`
	AvgGameScore    float64              `json:"avg_game_score"`
	WeeklyMinutes   int                  `json:"weekly_minutes"`
	MonthTickets    int                  `json:"month_tickets"`
	LifetimeTickets int                  `json:"lifetime_tickets"`
	Badges          []domain.Badge       `json:"badges"`
	GameLevels      map[domain.GameType]int `json:"game_levels"`
}

// Summarize builds the dashboard view for a point in time.
func (t *Tracker) Summarize(now time.Time) (Summary, error) {
	var s Summary
	s.Date = domain.Day(now)

	profile, err := t.Profile()
	if err != nil {
		return s, err
	}
	s.Streak = domain.StreakSummary{Current: profile.CurrentStreak, Max: profile.MaxStreak}
	s.CognitiveScore = profile.CognitiveScore
	s.AvgGameScore = profile.AvgGameScore
	s.WeeklyMinutes = profile.WeeklyFrequencyMinutes
	s.Badges = profile.Badges
	s.GameLevels = profile.GameLevels

	entry, err := t.db.GetCheckIn(s.Date)
	if err != nil {
		return s, err
	}
	s.CheckedInToday = entry != nil && entry.Completed

	if s.MonthTickets, err = t.db.GetStateInt("tickets_month"); err != nil {
		return s, err
	}
	if s.LifetimeTickets, err = t.db.GetStateInt("tickets_lifetime"); err != nil {
		return s, err
	}
	return s, nil
}

// Settings loads the preference flags, falling back to defaults.
func (t *Tracker) Settings() (domain.Settings, error) {
	raw, err := t.db.GetState("settings")
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if raw == "" {
		return domain.DefaultSettings(), nil
	}

	var s domain.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.DefaultSettings(), nil // Corrupt bucket — defaults
	}
	return s, nil
}

// UpdateSettings persists the preference flags.
func (t *Tracker) UpdateSettings(s domain.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := t.db.SetState("settings", string(raw)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// isoWeek returns "YYYY-Www" for the given time.
func isoWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
