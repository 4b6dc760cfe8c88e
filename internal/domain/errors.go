package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.
// Capped ticket awards are deliberately NOT errors: they are silent no-ops.

var (
	// Game errors
	ErrUnknownGame   = errors.New("unknown game type")
	ErrInvalidLevel  = errors.New("game level out of range (1-10)")
	ErrInvalidScore  = errors.New("game score out of range (0-100)")

	// Input errors
	ErrInvalidDate    = errors.New("date must be YYYY-MM-DD")
	ErrInvalidMinutes = errors.New("listening minutes must be positive")
	ErrEmptyMessage   = errors.New("chat message is empty")
)
