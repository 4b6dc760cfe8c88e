// Package metrics provides Prometheus metrics for MemoClarity.
// Counters, gauges, histograms for check-ins, tickets, games, and the
// cognitive score, exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Check-Ins ──────────────────────────────────────────────────────────────

// CheckIns tracks recorded daily check-ins.
var CheckIns = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "memoclarity",
	Name:      "checkins_total",
	Help:      "Total daily check-ins recorded.",
})

// CurrentStreak tracks the current consecutive-day streak.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "memoclarity",
	Name:      "streak_current_days",
	Help:      "Current consecutive-day check-in streak.",
})

// BadgesEarned tracks milestone badges minted.
var BadgesEarned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "memoclarity",
	Name:      "badges_earned_total",
	Help:      "Milestone badges earned.",
}, []string{"milestone"})

// ─── Tickets ────────────────────────────────────────────────────────────────

// TicketsAwarded tracks raffle tickets credited by action type.
var TicketsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "memoclarity",
	Name:      "tickets_awarded_total",
	Help:      "Raffle tickets credited.",
}, []string{"type"})

// TicketsRejected tracks award attempts dropped by the daily rules.
var TicketsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "memoclarity",
	Name:      "tickets_rejected_total",
	Help:      "Ticket awards silently dropped (cap reached or type already credited).",
}, []string{"type", "reason"})

// MonthTickets tracks the running current-month ticket total.
var MonthTickets = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "memoclarity",
	Name:      "tickets_month_current",
	Help:      "Tickets earned in the current calendar month.",
})

// ─── Games ──────────────────────────────────────────────────────────────────

// GamesPlayed tracks completed mini-games by type.
var GamesPlayed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "memoclarity",
	Name:      "games_played_total",
	Help:      "Completed mini-games.",
}, []string{"game"})

// GameScores tracks the score distribution per game.
var GameScores = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "memoclarity",
	Name:      "game_score",
	Help:      "Mini-game scores (0-100).",
	Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
}, []string{"game"})

// ─── Score / Chat ───────────────────────────────────────────────────────────

// CognitiveScore tracks the current blended cognitive score.
var CognitiveScore = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "memoclarity",
	Name:      "cognitive_score",
	Help:      "Current cognitive score (0-100).",
})

// ListeningMinutes tracks accumulated audio-session minutes.
var ListeningMinutes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "memoclarity",
	Name:      "listening_minutes_total",
	Help:      "Total audio-session minutes recorded.",
})

// ChatQuestions tracks FAQ bot questions answered.
var ChatQuestions = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "memoclarity",
	Name:      "chat_questions_total",
	Help:      "FAQ bot questions answered.",
})
