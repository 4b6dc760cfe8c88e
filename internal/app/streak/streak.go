// Package streak implements the MemoClarity streak engine.
// A streak is the count of consecutive calendar days, ending today, with a
// completed check-in. Today without a check-in means the current streak is 0
// even if yesterday was checked — the chain must reach today.
package streak

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/memoclarity/memoclarity/internal/domain"
	"github.com/memoclarity/memoclarity/internal/infra/metrics"
	"github.com/memoclarity/memoclarity/internal/infra/sqlite"
)

// Calculate derives the current and longest streak from check-in history.
// Current walks backward day by day from today and stops at the first gap.
// Max is the longest run of dates each exactly one day apart, and is never
// less than current.
func Calculate(entries []domain.CheckInEntry, today time.Time) domain.StreakSummary {
	completed := make(map[string]bool)
	var dates []string
	for _, e := range entries {
		if e.Completed && !completed[e.Date] {
			completed[e.Date] = true
			dates = append(dates, e.Date)
		}
	}
	if len(dates) == 0 {
		return domain.StreakSummary{}
	}

	current := 0
	for i := 0; ; i++ {
		day := domain.Day(today.AddDate(0, 0, -i))
		if !completed[day] {
			break
		}
		current++
	}

	// YYYY-MM-DD sorts lexicographically, so string sort is date sort.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	max, run := 1, 1
	for i := 1; i < len(dates); i++ {
		prev, errPrev := time.Parse(domain.DayFormat, dates[i-1])
		cur, errCur := time.Parse(domain.DayFormat, dates[i])
		if errPrev == nil && errCur == nil && prev.Sub(cur) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > max {
			max = run
		}
	}
	if current > max {
		max = current
	}

	return domain.StreakSummary{Current: current, Max: max}
}

// Service manages check-ins, the persisted streak state, and milestone
// badges.
type Service struct {
	db *sqlite.DB
}

// NewService creates a streak service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Record writes today's check-in entry. Returns the stored entry and
// whether it was newly inserted — a repeat check-in on the same date is a
// no-op and returns the existing entry.
func (s *Service) Record(now time.Time, testimony string, isPublic bool) (domain.CheckInEntry, bool, error) {
	entry := domain.CheckInEntry{
		Date:      domain.Day(now),
		Completed: true,
		Testimony: testimony,
		IsPublic:  isPublic,
		CreatedAt: now,
	}

	inserted, err := s.db.InsertCheckIn(entry)
	if err != nil {
		return entry, false, fmt.Errorf("insert check-in: %w", err)
	}
	if !inserted {
		existing, err := s.db.GetCheckIn(entry.Date)
		if err != nil {
			return entry, false, err
		}
		if existing != nil {
			entry = *existing
		}
		return entry, false, nil
	}

	metrics.CheckIns.Inc()
	return entry, true, nil
}

// Recompute recalculates the streak from stored history and persists it.
func (s *Service) Recompute(now time.Time) (domain.StreakSummary, error) {
	entries, err := s.db.ListCheckIns()
	if err != nil {
		return domain.StreakSummary{}, fmt.Errorf("list check-ins: %w", err)
	}

	summary := Calculate(entries, now)

	if err := s.db.SetStateInt("streak_current", summary.Current); err != nil {
		return summary, fmt.Errorf("save streak_current: %w", err)
	}
	if err := s.db.SetStateInt("streak_max", summary.Max); err != nil {
		return summary, fmt.Errorf("save streak_max: %w", err)
	}

	metrics.CurrentStreak.Set(float64(summary.Current))
	return summary, nil
}

// Current loads the persisted streak state.
func (s *Service) Current() (domain.StreakSummary, error) {
	current, err := s.db.GetStateInt("streak_current")
	if err != nil {
		return domain.StreakSummary{}, fmt.Errorf("get streak_current: %w", err)
	}
	max, err := s.db.GetStateInt("streak_max")
	if err != nil {
		return domain.StreakSummary{}, fmt.Errorf("get streak_max: %w", err)
	}
	return domain.StreakSummary{Current: current, Max: max}, nil
}

// MintBadges mints the badge for the milestone the streak just reached.
// Insert-if-absent keyed by milestone: repeat recomputes at the same streak
// value never mint twice. Returns newly earned badges only.
func (s *Service) MintBadges(currentStreak int, at time.Time) ([]domain.Badge, error) {
	if !domain.IsMilestone(currentStreak) {
		return nil, nil
	}

	badge := domain.BadgeForMilestone(currentStreak)
	isNew, err := s.db.InsertBadge(badge, at)
	if err != nil {
		return nil, fmt.Errorf("insert badge: %w", err)
	}
	if !isNew {
		return nil, nil
	}

	badge.EarnedAt = at
	metrics.BadgesEarned.WithLabelValues(strconv.Itoa(badge.Milestone)).Inc()
	return []domain.Badge{badge}, nil
}

// Badges returns all earned badges.
func (s *Service) Badges() ([]domain.Badge, error) {
	return s.db.ListBadges()
}
