// Package tickets implements the raffle ticket economy.
// Regular actions (checkin, frequency, game) earn 1 ticket each, at most
// once per type per day and at most 3 per day in total. Bonus actions
// (testimony, perfect_week) carry fixed amounts and bypass both limits.
// Awards that violate the rules fail closed: silent no-op, state unchanged.
package tickets

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memoclarity/memoclarity/internal/domain"
	"github.com/memoclarity/memoclarity/internal/infra/metrics"
	"github.com/memoclarity/memoclarity/internal/infra/sqlite"
)

// Service manages the ticket ledger and monthly totals.
type Service struct {
	db *sqlite.DB
}

// NewService creates a ticket service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Award credits tickets for an action occurring at now.
// Returns (nil, nil) when the award is silently dropped by the daily rules —
// callers that need to distinguish must inspect the ledger.
func (s *Service) Award(action domain.ActionType, now time.Time, description string) (*domain.TicketAction, error) {
	date := domain.Day(now)

	var amount int
	switch action {
	case domain.ActionCheckin, domain.ActionFrequency, domain.ActionGame:
		da, err := s.db.GetDailyActions(date)
		if err != nil {
			return nil, fmt.Errorf("get daily actions: %w", err)
		}
		if da.TicketsEarned >= domain.DailyRegularCap {
			metrics.TicketsRejected.WithLabelValues(string(action), "daily_cap").Inc()
			return nil, nil
		}
		if da.Credited(action) {
			metrics.TicketsRejected.WithLabelValues(string(action), "already_credited").Inc()
			return nil, nil
		}

		amount = domain.RegularTicketValue
		switch action {
		case domain.ActionCheckin:
			da.Checkin = true
		case domain.ActionFrequency:
			da.Frequency = true
		case domain.ActionGame:
			da.Game = true
		}
		da.TicketsEarned += amount
		if err := s.db.SetDailyActions(date, da); err != nil {
			return nil, fmt.Errorf("set daily actions: %w", err)
		}

	case domain.ActionTestimony:
		amount = domain.TestimonyBonusTickets

	case domain.ActionPerfectWeek:
		amount = domain.PerfectWeekTickets
		// Stamp the guard so day 8 of an unbroken run doesn't re-trigger.
		if err := s.db.SetState("perfect_week_last", date); err != nil {
			return nil, fmt.Errorf("save perfect_week_last: %w", err)
		}

	default:
		return nil, fmt.Errorf("award tickets: unknown action type %q", action)
	}

	a := domain.TicketAction{
		ID:          uuid.NewString(),
		Type:        action,
		Date:        date,
		Tickets:     amount,
		Description: description,
		Timestamp:   now,
	}

	if err := s.db.InsertTicketAction(a); err != nil {
		return nil, fmt.Errorf("insert ticket action: %w", err)
	}
	if err := s.db.TrimTicketHistory(domain.TicketHistoryLimit); err != nil {
		return nil, fmt.Errorf("trim ticket history: %w", err)
	}

	monthTotal, err := s.db.GetStateInt("tickets_month")
	if err != nil {
		return nil, fmt.Errorf("get tickets_month: %w", err)
	}
	lifetime, err := s.db.GetStateInt("tickets_lifetime")
	if err != nil {
		return nil, fmt.Errorf("get tickets_lifetime: %w", err)
	}
	if err := s.db.SetStateInt("tickets_month", monthTotal+amount); err != nil {
		return nil, fmt.Errorf("save tickets_month: %w", err)
	}
	if err := s.db.SetStateInt("tickets_lifetime", lifetime+amount); err != nil {
		return nil, fmt.Errorf("save tickets_lifetime: %w", err)
	}

	metrics.TicketsAwarded.WithLabelValues(string(action)).Add(float64(amount))
	metrics.MonthTickets.Set(float64(monthTotal + amount))

	return &a, nil
}

// Rollover archives the previous month's total and resets the running
// counter when the calendar month has changed since the last run.
// Call on startup and before mutations.
func (s *Service) Rollover(now time.Time) error {
	month := domain.Month(now)

	last, err := s.db.GetState("tickets_month_key")
	if err != nil {
		return fmt.Errorf("get tickets_month_key: %w", err)
	}
	if last == month {
		return nil
	}

	if last != "" {
		total, err := s.db.GetStateInt("tickets_month")
		if err != nil {
			return fmt.Errorf("get tickets_month: %w", err)
		}
		actions, err := s.db.CountActionsInMonth(last)
		if err != nil {
			return fmt.Errorf("count month actions: %w", err)
		}
		if err := s.db.SetMonthStats(last, domain.MonthStats{
			TotalTickets: total,
			Actions:      actions,
		}); err != nil {
			return fmt.Errorf("archive month %s: %w", last, err)
		}
		if err := s.db.SetStateInt("tickets_month", 0); err != nil {
			return fmt.Errorf("reset tickets_month: %w", err)
		}
		metrics.MonthTickets.Set(0)
	}

	return s.db.SetState("tickets_month_key", month)
}

// PerfectWeekEligible reports whether the 7 calendar days ending today all
// have a credited check-in, with no bonus awarded in the last 7 days.
// Strict consecutive run — any gap disqualifies.
func (s *Service) PerfectWeekEligible(now time.Time) (bool, error) {
	lastStr, err := s.db.GetState("perfect_week_last")
	if err != nil {
		return false, fmt.Errorf("get perfect_week_last: %w", err)
	}
	if lastStr != "" {
		last, err := time.Parse(domain.DayFormat, lastStr)
		if err == nil && now.Sub(last) < 7*24*time.Hour {
			return false, nil
		}
	}

	for i := 0; i < 7; i++ {
		date := domain.Day(now.AddDate(0, 0, -i))
		da, err := s.db.GetDailyActions(date)
		if err != nil {
			return false, fmt.Errorf("get daily actions %s: %w", date, err)
		}
		if !da.Checkin {
			return false, nil
		}
	}
	return true, nil
}

// Data assembles the full ticket state for display.
func (s *Service) Data() (domain.UserTicketData, error) {
	var data domain.UserTicketData
	var err error

	if data.CurrentMonthTickets, err = s.db.GetStateInt("tickets_month"); err != nil {
		return data, fmt.Errorf("get tickets_month: %w", err)
	}
	if data.TotalLifetimeTickets, err = s.db.GetStateInt("tickets_lifetime"); err != nil {
		return data, fmt.Errorf("get tickets_lifetime: %w", err)
	}
	if data.TicketHistory, err = s.db.ListTicketHistory(domain.TicketHistoryLimit); err != nil {
		return data, fmt.Errorf("list ticket history: %w", err)
	}
	// Two months of daily flags is enough for any cap or perfect-week view.
	if data.DailyActions, err = s.db.ListDailyActions(62); err != nil {
		return data, fmt.Errorf("list daily actions: %w", err)
	}
	if data.MonthlyStats, err = s.db.ListMonthlyStats(); err != nil {
		return data, fmt.Errorf("list monthly stats: %w", err)
	}
	return data, nil
}

// History returns the newest ledger entries.
func (s *Service) History(limit int) ([]domain.TicketAction, error) {
	if limit <= 0 || limit > domain.TicketHistoryLimit {
		limit = domain.TicketHistoryLimit
	}
	return s.db.ListTicketHistory(limit)
}
