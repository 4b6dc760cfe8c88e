package domain

import "time"

// ─── Ticket Economy Types ───────────────────────────────────────────────────

// ActionType categorizes how raffle tickets were earned.
type ActionType string

const (
	ActionCheckin     ActionType = "checkin"
	ActionFrequency   ActionType = "frequency"
	ActionGame        ActionType = "game"
	ActionTestimony   ActionType = "testimony"
	ActionPerfectWeek ActionType = "perfect_week"
)

// IsBonus reports whether this action type is exempt from the daily cap
// and the once-per-type-per-day rule.
func (a ActionType) IsBonus() bool {
	return a == ActionTestimony || a == ActionPerfectWeek
}

// Ticket amounts. Regular actions earn 1 ticket each, at most once per
// type per day, at most DailyRegularCap per day. Bonus amounts are fixed.
const (
	RegularTicketValue    = 1
	TestimonyBonusTickets = 3
	PerfectWeekTickets    = 5
	DailyRegularCap       = 3
)

// TicketHistoryLimit caps the ledger length (oldest evicted first).
const TicketHistoryLimit = 100

// TicketAction is one append-only ledger entry.
type TicketAction struct {
	ID          string     `json:"id"`
	Type        ActionType `json:"type"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Tickets     int        `json:"tickets"`
	Description string     `json:"description"`
	Timestamp   time.Time  `json:"timestamp"`
}

// DailyActions tracks which regular actions were credited on one day.
// TicketsEarned counts regular tickets only — bonus tickets never feed
// the daily cap.
type DailyActions struct {
	Checkin       bool `json:"checkin"`
	Frequency     bool `json:"frequency"`
	Game          bool `json:"game"`
	TicketsEarned int  `json:"tickets_earned"`
}

// Credited reports whether the given regular action was already credited.
func (d DailyActions) Credited(a ActionType) bool {
	switch a {
	case ActionCheckin:
		return d.Checkin
	case ActionFrequency:
		return d.Frequency
	case ActionGame:
		return d.Game
	}
	return false
}

// MonthStats is the archived total for a closed month.
type MonthStats struct {
	TotalTickets int `json:"total_tickets"`
	Actions      int `json:"actions"`
}

// UserTicketData aggregates the full ticket state for display.
type UserTicketData struct {
	CurrentMonthTickets  int                     `json:"current_month_tickets"`
	TotalLifetimeTickets int                     `json:"total_lifetime_tickets"`
	TicketHistory        []TicketAction          `json:"ticket_history"`
	DailyActions         map[string]DailyActions `json:"daily_actions"`
	MonthlyStats         map[string]MonthStats   `json:"monthly_stats"`
}
