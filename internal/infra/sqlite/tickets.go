package sqlite

import (
	"database/sql"
	"time"

	"github.com/memoclarity/memoclarity/internal/domain"
)

// ─── Ticket Ledger ──────────────────────────────────────────────────────────

// InsertTicketAction appends a ledger entry.
func (d *DB) InsertTicketAction(a domain.TicketAction) error {
	_, err := d.db.Exec(
		`INSERT INTO ticket_ledger (id, type, date, tickets, description, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, string(a.Type), a.Date, a.Tickets, a.Description, a.Timestamp.UnixNano(),
	)
	return err
}

// TrimTicketHistory drops the oldest entries beyond limit (FIFO eviction).
func (d *DB) TrimTicketHistory(limit int) error {
	_, err := d.db.Exec(
		`DELETE FROM ticket_ledger WHERE id NOT IN (
			SELECT id FROM ticket_ledger ORDER BY timestamp DESC LIMIT ?
		)`, limit,
	)
	return err
}

// ListTicketHistory returns ledger entries newest first.
func (d *DB) ListTicketHistory(limit int) ([]domain.TicketAction, error) {
	rows, err := d.db.Query(
		`SELECT id, type, date, tickets, description, timestamp
		 FROM ticket_ledger ORDER BY timestamp DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []domain.TicketAction
	for rows.Next() {
		var a domain.TicketAction
		var actionType string
		var ts int64
		if err := rows.Scan(&a.ID, &actionType, &a.Date, &a.Tickets, &a.Description, &ts); err != nil {
			return nil, err
		}
		a.Type = domain.ActionType(actionType)
		a.Timestamp = time.Unix(0, ts)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// CountTicketHistory returns the ledger length.
func (d *DB) CountTicketHistory() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM ticket_ledger`).Scan(&count)
	return count, err
}

// CountActionsInMonth counts ledger entries dated in a month ("YYYY-MM").
func (d *DB) CountActionsInMonth(month string) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM ticket_ledger WHERE date LIKE ? || '-%'`, month,
	).Scan(&count)
	return count, err
}

// ─── Daily Actions ──────────────────────────────────────────────────────────

// GetDailyActions returns the action flags for a date (zero value if unset).
func (d *DB) GetDailyActions(date string) (domain.DailyActions, error) {
	var da domain.DailyActions
	err := d.db.QueryRow(
		`SELECT checkin, frequency, game, tickets_earned
		 FROM daily_actions WHERE date = ?`, date,
	).Scan(&da.Checkin, &da.Frequency, &da.Game, &da.TicketsEarned)
	if err == sql.ErrNoRows {
		return domain.DailyActions{}, nil
	}
	return da, err
}

// SetDailyActions upserts the action flags for a date.
func (d *DB) SetDailyActions(date string, da domain.DailyActions) error {
	_, err := d.db.Exec(
		`INSERT INTO daily_actions (date, checkin, frequency, game, tickets_earned)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			checkin=excluded.checkin,
			frequency=excluded.frequency,
			game=excluded.game,
			tickets_earned=excluded.tickets_earned`,
		date, da.Checkin, da.Frequency, da.Game, da.TicketsEarned,
	)
	return err
}

// ListDailyActions returns the newest per-day action records.
func (d *DB) ListDailyActions(limit int) (map[string]domain.DailyActions, error) {
	rows, err := d.db.Query(
		`SELECT date, checkin, frequency, game, tickets_earned
		 FROM daily_actions ORDER BY date DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.DailyActions)
	for rows.Next() {
		var date string
		var da domain.DailyActions
		if err := rows.Scan(&date, &da.Checkin, &da.Frequency, &da.Game, &da.TicketsEarned); err != nil {
			return nil, err
		}
		out[date] = da
	}
	return out, rows.Err()
}

// ─── Monthly Stats ──────────────────────────────────────────────────────────

// SetMonthStats archives a closed month's totals.
func (d *DB) SetMonthStats(month string, s domain.MonthStats) error {
	_, err := d.db.Exec(
		`INSERT INTO monthly_stats (month, total_tickets, actions)
		 VALUES (?, ?, ?)
		 ON CONFLICT(month) DO UPDATE SET
			total_tickets=excluded.total_tickets,
			actions=excluded.actions`,
		month, s.TotalTickets, s.Actions,
	)
	return err
}

// GetMonthStats returns a month's archived totals (zero value if unset).
func (d *DB) GetMonthStats(month string) (domain.MonthStats, error) {
	var s domain.MonthStats
	err := d.db.QueryRow(
		`SELECT total_tickets, actions FROM monthly_stats WHERE month = ?`, month,
	).Scan(&s.TotalTickets, &s.Actions)
	if err == sql.ErrNoRows {
		return domain.MonthStats{}, nil
	}
	return s, err
}

// ListMonthlyStats returns all archived months.
func (d *DB) ListMonthlyStats() (map[string]domain.MonthStats, error) {
	rows, err := d.db.Query(`SELECT month, total_tickets, actions FROM monthly_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.MonthStats)
	for rows.Next() {
		var month string
		var s domain.MonthStats
		if err := rows.Scan(&month, &s.TotalTickets, &s.Actions); err != nil {
			return nil, err
		}
		out[month] = s
	}
	return out, rows.Err()
}
