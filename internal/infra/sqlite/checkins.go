package sqlite

import (
	"database/sql"
	"time"

	"github.com/memoclarity/memoclarity/internal/domain"
)

// ─── Check-In Repository ────────────────────────────────────────────────────

// InsertCheckIn records a check-in for a date.
// Returns false if the date already has an entry (immutable — re-check-in
// on the same day is a no-op).
func (d *DB) InsertCheckIn(e domain.CheckInEntry) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO checkins (date, completed, testimony, is_public, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Date, e.Completed, e.Testimony, e.IsPublic, e.CreatedAt.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// GetCheckIn retrieves the entry for a date, or nil if absent.
func (d *DB) GetCheckIn(date string) (*domain.CheckInEntry, error) {
	row := d.db.QueryRow(
		`SELECT date, completed, testimony, is_public, created_at
		 FROM checkins WHERE date = ?`, date,
	)
	return scanCheckIn(row)
}

// ListCheckIns returns all check-ins ordered by date descending.
func (d *DB) ListCheckIns() ([]domain.CheckInEntry, error) {
	rows, err := d.db.Query(
		`SELECT date, completed, testimony, is_public, created_at
		 FROM checkins ORDER BY date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CheckInEntry
	for rows.Next() {
		e, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ListPublicTestimonies returns check-ins carrying a shareable testimony,
// newest first.
func (d *DB) ListPublicTestimonies(limit int) ([]domain.CheckInEntry, error) {
	rows, err := d.db.Query(
		`SELECT date, completed, testimony, is_public, created_at
		 FROM checkins
		 WHERE is_public = 1 AND testimony != ''
		 ORDER BY date DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CheckInEntry
	for rows.Next() {
		e, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// CountCheckIns returns the total number of recorded check-ins.
func (d *DB) CountCheckIns() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM checkins`).Scan(&count)
	return count, err
}

func scanCheckIn(s scanner) (*domain.CheckInEntry, error) {
	var e domain.CheckInEntry
	var createdAt int64

	err := s.Scan(&e.Date, &e.Completed, &e.Testimony, &e.IsPublic, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	e.CreatedAt = time.Unix(createdAt, 0)
	return &e, nil
}

// ─── Badge Repository ───────────────────────────────────────────────────────

// InsertBadge mints a milestone badge.
// Returns false if the milestone already has a badge (idempotent —
// insert-if-absent keyed by milestone).
func (d *DB) InsertBadge(b domain.Badge, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO badges (milestone, id, name, description, earned_at)
		 VALUES (?, ?, ?, ?, ?)`,
		b.Milestone, b.ID, b.Name, b.Description, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly earned
}

// ListBadges returns all earned badges ordered by milestone ascending.
func (d *DB) ListBadges() ([]domain.Badge, error) {
	rows, err := d.db.Query(
		`SELECT milestone, id, name, description, earned_at
		 FROM badges ORDER BY milestone ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.Badge
	for rows.Next() {
		var b domain.Badge
		var earnedAt int64
		if err := rows.Scan(&b.Milestone, &b.ID, &b.Name, &b.Description, &earnedAt); err != nil {
			return nil, err
		}
		b.EarnedAt = time.Unix(earnedAt, 0)
		badges = append(badges, b)
	}
	return badges, rows.Err()
}
