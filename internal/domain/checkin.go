// Package domain holds the core MemoClarity types.
// Check-ins, streaks, badges, tickets, game results, chat — pure data,
// no infrastructure dependency.
package domain

import "time"

// DayFormat is the canonical calendar-day key (one check-in per day).
const DayFormat = "2006-01-02"

// MonthFormat keys monthly ticket stats.
const MonthFormat = "2006-01"

// Day returns the calendar-day key for a time.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// Month returns the calendar-month key for a time.
func Month(t time.Time) string {
	return t.Format(MonthFormat)
}

// CheckInEntry is one day's check-in. Immutable once written for a date;
// re-checking in on the same day is a no-op.
type CheckInEntry struct {
	Date      string    `json:"date"` // YYYY-MM-DD, unique
	Completed bool      `json:"completed"`
	Testimony string    `json:"testimony,omitempty"`
	IsPublic  bool      `json:"is_public,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StreakSummary is the derived streak state.
// Invariant: Max >= Current.
type StreakSummary struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Milestones are the streak lengths that mint a one-time badge.
var Milestones = []int{7, 30, 60, 90}

// IsMilestone reports whether a streak length is a badge milestone.
func IsMilestone(days int) bool {
	for _, m := range Milestones {
		if days == m {
			return true
		}
	}
	return false
}

// Badge is a one-time milestone reward. At most one badge per milestone
// ever exists.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Milestone   int       `json:"milestone"`
	EarnedAt    time.Time `json:"earned_at"`
}

// BadgeForMilestone returns the badge definition for a milestone value.
// EarnedAt is left zero; the store stamps it on insert.
func BadgeForMilestone(days int) Badge {
	switch days {
	case 7:
		return Badge{ID: "streak_7", Name: "One Week Strong", Milestone: 7,
			Description: "Checked in every day for a full week"}
	case 30:
		return Badge{ID: "streak_30", Name: "Monthly Milestone", Milestone: 30,
			Description: "30 consecutive days of check-ins"}
	case 60:
		return Badge{ID: "streak_60", Name: "Habit Builder", Milestone: 60,
			Description: "60 consecutive days of check-ins"}
	case 90:
		return Badge{ID: "streak_90", Name: "Memory Champion", Milestone: 90,
			Description: "90 consecutive days of check-ins"}
	}
	return Badge{}
}
