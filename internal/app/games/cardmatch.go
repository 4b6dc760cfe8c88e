package games

import "math/rand"

// ─── Card-Match (Memory) ────────────────────────────────────────────────────
// Classic pairs-matching on a shuffled deck. Two cards reveal per turn and
// auto-hide after a short delay on mismatch; the game ends when every pair
// is matched. The score penalizes extra moves and elapsed time linearly,
// never dropping below a floor.

// Card is one face in the shuffled deck.
type Card struct {
	Index int    `json:"index"`
	Face  string `json:"face"`
}

// cardFaces is the pool decks are built from (MaxCardPairs faces).
var cardFaces = []string{
	"🐘", "🦋", "🌻", "🍇", "🎈", "🚲", "🪁", "🎁",
	"🧩", "🎻", "🍋", "⛺",
}

// CardMismatchDelayMs is how long a mismatched pair stays revealed.
const CardMismatchDelayMs = 900

// Card pair bounds and the score floor.
const (
	MinCardPairs       = 6
	MaxCardPairs       = 12
	CardMatchScoreFloor = 10
)

// CardPairCount returns the deck size in pairs for a level: 6 + level/2,
// capped at 12.
func CardPairCount(level int) int {
	n := MinCardPairs + level/2
	if n > MaxCardPairs {
		n = MaxCardPairs
	}
	return n
}

// NewDeck builds a shuffled deck of pairs*2 cards.
func NewDeck(pairs int, rng *rand.Rand) []Card {
	if pairs < 1 {
		pairs = 1
	}
	if pairs > len(cardFaces) {
		pairs = len(cardFaces)
	}

	deck := make([]Card, 0, pairs*2)
	for _, face := range cardFaces[:pairs] {
		deck = append(deck, Card{Face: face}, Card{Face: face})
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	for i := range deck {
		deck[i].Index = i
	}
	return deck
}

// ScoreCardMatch scores a finished game from total moves, deck pairs, and
// elapsed seconds: max(10, 100 - (moves-pairs)*5 - seconds*2), capped at 100.
// Perfect play is moves == pairs.
func ScoreCardMatch(moves, pairs, seconds int) int {
	extra := moves - pairs
	if extra < 0 {
		extra = 0
	}
	if seconds < 0 {
		seconds = 0
	}

	s := 100 - extra*5 - seconds*2
	if s < CardMatchScoreFloor {
		s = CardMatchScoreFloor
	}
	return s
}
