package games

import (
	"math"
	"math/rand"
)

// ─── Word/Symbol Association ────────────────────────────────────────────────
// Pairs are shown together for a memorize window, then shuffled into two
// independent pools. The player clicks a word, then its matching symbol.
// A wrong combination just clears the selection — no penalty, no
// termination — so only matched pairs advance the game.

// WordPair is one word↔symbol association.
type WordPair struct {
	Word   string `json:"word"`
	Symbol string `json:"symbol"`
}

// associationPool is the fixed corpus rounds are drawn from.
var associationPool = []WordPair{
	{"sun", "☀️"}, {"rain", "🌧️"}, {"tree", "🌳"}, {"house", "🏠"},
	{"heart", "❤️"}, {"music", "🎵"}, {"book", "📖"}, {"clock", "⏰"},
	{"flower", "🌷"}, {"moon", "🌙"}, {"fish", "🐟"}, {"key", "🔑"},
	{"cup", "☕"}, {"star", "⭐"}, {"boat", "⛵"}, {"bell", "🔔"},
}

// AssociationMemorizeMs is the window the pairs stay visible together.
const AssociationMemorizeMs = 5000

// MaxAssociationPairs caps how many pairs a round can hold.
const MaxAssociationPairs = 12

// AssociationPairCount returns the pair count for a level: 6 + level/2,
// capped at 12.
func AssociationPairCount(level int) int {
	n := 6 + level/2
	if n > MaxAssociationPairs {
		n = MaxAssociationPairs
	}
	return n
}

// NewAssociationRound draws a random pair set for a level.
func NewAssociationRound(level int, rng *rand.Rand) []WordPair {
	n := AssociationPairCount(level)
	if n > len(associationPool) {
		n = len(associationPool)
	}

	shuffled := make([]WordPair, len(associationPool))
	copy(shuffled, associationPool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

// ScoreAssociation scores a round: round(correctMatches/totalPairs*100).
func ScoreAssociation(correctMatches, totalPairs int) int {
	if totalPairs <= 0 {
		return 0
	}
	if correctMatches > totalPairs {
		correctMatches = totalPairs
	}
	if correctMatches < 0 {
		correctMatches = 0
	}
	return int(math.Round(float64(correctMatches) / float64(totalPairs) * 100))
}
