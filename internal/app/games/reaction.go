package games

import (
	"math"
	"math/rand"
)

// ─── Reaction ───────────────────────────────────────────────────────────────
// Targets appear at random positions for a fixed game duration. Each is
// either correct or a distractor; uncollected targets expire after a
// lifetime. Clicking a correct target is a hit and records the reaction
// time; clicking a distractor or letting a correct target expire is a miss.

// ReactionTarget is one scheduled target for the client to render.
// X and Y are fractions of the play area.
type ReactionTarget struct {
	AppearAtMs int     `json:"appear_at_ms"`
	LifetimeMs int     `json:"lifetime_ms"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Distractor bool    `json:"distractor"`
}

// ReactionDurationMs is the fixed game duration (30 seconds).
const ReactionDurationMs = 30000

// reactionIntervalMs is the spacing between scheduled targets.
const reactionIntervalMs = 900

// ReactionTargetLifetimeMs returns how long a target stays clickable.
// Shrinks with level, floored at 800 ms.
func ReactionTargetLifetimeMs(level int) int {
	ms := 1600 - 80*level
	if ms < 800 {
		ms = 800
	}
	return ms
}

// DistractorChance returns the per-target distractor probability,
// scaling with level and capped at 0.55.
func DistractorChance(level int) float64 {
	p := 0.15 + 0.04*float64(level)
	if p > 0.55 {
		p = 0.55
	}
	return p
}

// NewReactionSchedule generates the target schedule for a level.
func NewReactionSchedule(level int, rng *rand.Rand) []ReactionTarget {
	lifetime := ReactionTargetLifetimeMs(level)
	chance := DistractorChance(level)

	var targets []ReactionTarget
	for at := reactionIntervalMs; at+lifetime <= ReactionDurationMs; at += reactionIntervalMs {
		targets = append(targets, ReactionTarget{
			AppearAtMs: at,
			LifetimeMs: lifetime,
			X:          rng.Float64(),
			Y:          rng.Float64(),
			Distractor: rng.Float64() < chance,
		})
	}
	return targets
}

// SpeedScore maps an average reaction time to 0-100: full marks at 250 ms
// or faster, falling linearly to 0 at 1250 ms.
func SpeedScore(avgReactionMs float64) int {
	if avgReactionMs <= 0 {
		return 0 // No hits recorded
	}
	s := int(math.Round((1250 - avgReactionMs) / 10))
	if s > 100 {
		s = 100
	}
	if s < 0 {
		s = 0
	}
	return s
}

// ScoreReaction blends accuracy over the correct targets with the speed
// score, averaged.
func ScoreReaction(hits, totalCorrectTargets int, avgReactionMs float64) int {
	if totalCorrectTargets <= 0 {
		return 0
	}
	if hits > totalCorrectTargets {
		hits = totalCorrectTargets
	}
	if hits < 0 {
		hits = 0
	}

	accuracy := float64(hits) / float64(totalCorrectTargets) * 100
	speed := float64(SpeedScore(avgReactionMs))
	return int(math.Round((accuracy + speed) / 2))
}
