package games

import (
	"math/rand"

	"github.com/memoclarity/memoclarity/internal/domain"
)

// Session is a generated round for the client to render. Only the fields
// for the session's game type are populated.
type Session struct {
	GameType domain.GameType `json:"game_type"`
	Level    int             `json:"level"`
	Seed     int64           `json:"seed"`

	// sequence
	Sequence []string `json:"sequence,omitempty"`
	Rounds   int      `json:"rounds,omitempty"`
	ShowMs   int      `json:"show_ms,omitempty"`
	HideMs   int      `json:"hide_ms,omitempty"`

	// association
	Pairs      []WordPair `json:"pairs,omitempty"`
	MemorizeMs int        `json:"memorize_ms,omitempty"`

	// reaction
	Targets    []ReactionTarget `json:"targets,omitempty"`
	DurationMs int              `json:"duration_ms,omitempty"`

	// cardmatch
	Deck            []Card `json:"deck,omitempty"`
	MismatchDelayMs int    `json:"mismatch_delay_ms,omitempty"`
}

// NewSession generates a deterministic round from a seed.
func NewSession(game domain.GameType, level int, seed int64) (Session, error) {
	if !game.Valid() {
		return Session{}, domain.ErrUnknownGame
	}
	if level < domain.MinLevel || level > domain.MaxLevel {
		return Session{}, domain.ErrInvalidLevel
	}

	rng := rand.New(rand.NewSource(seed))
	s := Session{GameType: game, Level: level, Seed: seed}

	switch game {
	case domain.GameSequence:
		s.Sequence = NewSequence(level, rng)
		s.Rounds = DefaultSequenceRounds
		s.ShowMs = SequenceShowMs
		s.HideMs = SequenceHideMs
	case domain.GameAssociation:
		s.Pairs = NewAssociationRound(level, rng)
		s.MemorizeMs = AssociationMemorizeMs
	case domain.GameReaction:
		s.Targets = NewReactionSchedule(level, rng)
		s.DurationMs = ReactionDurationMs
	case domain.GameCardMatch:
		s.Deck = NewDeck(CardPairCount(level), rng)
		s.MismatchDelayMs = CardMismatchDelayMs
	}

	return s, nil
}

// ScoreFor computes the 0-100 score for a finished game from its raw stats.
// Stats field meaning per game:
//   - sequence:    CorrectAnswers = rounds fully reproduced, TotalQuestions = rounds played
//   - association: CorrectAnswers = pairs matched, TotalQuestions = pairs shown
//   - reaction:    CorrectAnswers = hits, TotalQuestions = correct targets shown,
//     AverageReactionMs = mean hit latency
//   - cardmatch:   CorrectAnswers = deck pairs, TotalQuestions = moves taken,
//     TimeSpentSec = elapsed seconds
func ScoreFor(game domain.GameType, stats domain.GameStats) (int, error) {
	switch game {
	case domain.GameSequence:
		return ScoreSequence(stats.CorrectAnswers, stats.TotalQuestions), nil
	case domain.GameAssociation:
		return ScoreAssociation(stats.CorrectAnswers, stats.TotalQuestions), nil
	case domain.GameReaction:
		return ScoreReaction(stats.CorrectAnswers, stats.TotalQuestions, stats.AverageReactionMs), nil
	case domain.GameCardMatch:
		return ScoreCardMatch(stats.TotalQuestions, stats.CorrectAnswers, stats.TimeSpentSec), nil
	}
	return 0, domain.ErrUnknownGame
}
