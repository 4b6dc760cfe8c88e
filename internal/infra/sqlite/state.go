package sqlite

import (
	"database/sql"
	"strconv"
)

// ─── State Key-Value ────────────────────────────────────────────────────────
// The state table is the app's local bucket store: profile fields, game
// levels, settings JSON, chat history JSON, rollover markers.

// SetState stores a key-value pair.
func (d *DB) SetState(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetState retrieves a value by key.
// Returns "" if key not found.
func (d *DB) GetState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// GetStateInt retrieves an integer value, defaulting to 0 when unset.
func (d *DB) GetStateInt(key string) (int, error) {
	v, err := d.GetState(key)
	if err != nil || v == "" {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil // Unparseable legacy value — fall back to default
	}
	return n, nil
}

// SetStateInt stores an integer value.
func (d *DB) SetStateInt(key string, n int) error {
	return d.SetState(key, strconv.Itoa(n))
}

// GetStateFloat retrieves a float value, defaulting to 0 when unset.
func (d *DB) GetStateFloat(key string) (float64, error) {
	v, err := d.GetState(key)
	if err != nil || v == "" {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, nil
	}
	return f, nil
}

// SetStateFloat stores a float value.
func (d *DB) SetStateFloat(key string, f float64) error {
	return d.SetState(key, strconv.FormatFloat(f, 'f', -1, 64))
}
