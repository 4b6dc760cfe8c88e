// Package games implements the four cognitive mini-games: round generation
// for the client to render, and deterministic scoring from the recorded
// input. No shared state between games beyond the saved result.
package games

import (
	"math"
	"math/rand"
)

// ─── Sequence-Repeat ────────────────────────────────────────────────────────
// The client shows a generated symbol sequence one at a time, then the
// player reproduces it with ordered taps. A round is all-or-nothing: it
// either completes fully correct or ends on the first wrong tap.

// SymbolPalette is the fixed set sequences are drawn from.
var SymbolPalette = []string{"🍎", "🌙", "⭐", "🌸", "🐢", "🔔", "🌊", "🍀"}

// Sequence timing (client render hints), in milliseconds.
const (
	SequenceShowMs = 800
	SequenceHideMs = 300
)

// DefaultSequenceRounds is the number of rounds in a standard game.
const DefaultSequenceRounds = 5

// MaxSequenceLength caps how long a sequence grows with level.
const MaxSequenceLength = 8

// MaxSequencePhases caps the standalone endless variant.
const MaxSequencePhases = 10

// SequenceLength returns the sequence length for a level: 3 + level,
// capped at 8.
func SequenceLength(level int) int {
	n := 3 + level
	if n > MaxSequenceLength {
		n = MaxSequenceLength
	}
	return n
}

// NewSequence generates a random symbol sequence for a level.
func NewSequence(level int, rng *rand.Rand) []string {
	n := SequenceLength(level)
	seq := make([]string, n)
	for i := range seq {
		seq[i] = SymbolPalette[rng.Intn(len(SymbolPalette))]
	}
	return seq
}

// ScoreSequence scores a standard game: round(correctRounds/totalRounds*100).
func ScoreSequence(correctRounds, totalRounds int) int {
	if totalRounds <= 0 {
		return 0
	}
	if correctRounds > totalRounds {
		correctRounds = totalRounds
	}
	if correctRounds < 0 {
		correctRounds = 0
	}
	return int(math.Round(float64(correctRounds) / float64(totalRounds) * 100))
}

// SequencePhaseScore scores the standalone endless variant: the raw phase
// count reached before the first mistake, capped at 10.
func SequencePhaseScore(phases int) int {
	if phases < 0 {
		return 0
	}
	if phases > MaxSequencePhases {
		return MaxSequencePhases
	}
	return phases
}
