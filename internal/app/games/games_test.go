package games

import (
	"math/rand"
	"testing"
	"time"

	"github.com/memoclarity/memoclarity/internal/domain"
	"github.com/memoclarity/memoclarity/internal/infra/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─── Scoring ────────────────────────────────────────────────────────────────

func TestScoreSequence(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{5, 5, 100},
		{0, 5, 0},
		{3, 5, 60},
		{1, 3, 33},
		{7, 5, 100}, // over-reporting clamps
		{-1, 5, 0},
		{2, 0, 0},
	}
	for _, tt := range tests {
		if got := ScoreSequence(tt.correct, tt.total); got != tt.want {
			t.Errorf("ScoreSequence(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestScoreAssociation(t *testing.T) {
	if got := ScoreAssociation(6, 8); got != 75 {
		t.Errorf("ScoreAssociation(6, 8) = %d, want 75", got)
	}
	if got := ScoreAssociation(0, 0); got != 0 {
		t.Errorf("ScoreAssociation(0, 0) = %d, want 0", got)
	}
}

func TestScoreReaction(t *testing.T) {
	// 100% accuracy at 250 ms: perfect on both halves.
	if got := ScoreReaction(10, 10, 250); got != 100 {
		t.Errorf("fast perfect game = %d, want 100", got)
	}
	// All hits but glacial: accuracy 100, speed 0 → 50.
	if got := ScoreReaction(10, 10, 1250); got != 50 {
		t.Errorf("slow perfect game = %d, want 50", got)
	}
	// No hits at all.
	if got := ScoreReaction(0, 10, 0); got != 0 {
		t.Errorf("no hits = %d, want 0", got)
	}
	if got := ScoreReaction(5, 0, 300); got != 0 {
		t.Errorf("no targets = %d, want 0", got)
	}
}

func TestSpeedScore(t *testing.T) {
	if got := SpeedScore(750); got != 50 {
		t.Errorf("SpeedScore(750) = %d, want 50", got)
	}
	if got := SpeedScore(100); got != 100 {
		t.Errorf("SpeedScore(100) = %d, want 100 (fast clamps high)", got)
	}
	if got := SpeedScore(2000); got != 0 {
		t.Errorf("SpeedScore(2000) = %d, want 0 (slow clamps low)", got)
	}
}

func TestScoreCardMatch(t *testing.T) {
	// Perfect play, instant.
	if got := ScoreCardMatch(6, 6, 0); got != 100 {
		t.Errorf("perfect instant game = %d, want 100", got)
	}
	// Penalties apply linearly.
	if got := ScoreCardMatch(10, 6, 5); got != 70 {
		t.Errorf("ScoreCardMatch(10, 6, 5) = %d, want 70", got)
	}
	// Floor at 10 no matter how badly it goes.
	if got := ScoreCardMatch(100, 6, 600); got != 10 {
		t.Errorf("terrible game = %d, want floor 10", got)
	}
}

func TestScoreCardMatch_MoreMovesNeverScoreHigher(t *testing.T) {
	prev := 101
	for moves := 6; moves <= 60; moves++ {
		got := ScoreCardMatch(moves, 6, 10)
		if got > prev {
			t.Fatalf("score rose from %d to %d at %d moves", prev, got, moves)
		}
		prev = got
	}
}

// ─── Generation ─────────────────────────────────────────────────────────────

func TestSequenceLength(t *testing.T) {
	if got := SequenceLength(1); got != 4 {
		t.Errorf("SequenceLength(1) = %d, want 4", got)
	}
	if got := SequenceLength(10); got != MaxSequenceLength {
		t.Errorf("SequenceLength(10) = %d, want cap %d", got, MaxSequenceLength)
	}
}

func TestNewDeck(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	deck := NewDeck(6, rng)
	if len(deck) != 12 {
		t.Fatalf("deck size = %d, want 12", len(deck))
	}

	faces := make(map[string]int)
	for i, c := range deck {
		if c.Index != i {
			t.Errorf("card %d has index %d", i, c.Index)
		}
		faces[c.Face]++
	}
	for face, n := range faces {
		if n != 2 {
			t.Errorf("face %s appears %d times, want 2", face, n)
		}
	}
}

func TestNewReactionSchedule_FitsDuration(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	targets := NewReactionSchedule(5, rng)
	if len(targets) == 0 {
		t.Fatal("empty schedule")
	}
	for _, tgt := range targets {
		if tgt.AppearAtMs+tgt.LifetimeMs > ReactionDurationMs {
			t.Errorf("target at %d ms outlives the game", tgt.AppearAtMs)
		}
		if tgt.X < 0 || tgt.X > 1 || tgt.Y < 0 || tgt.Y > 1 {
			t.Errorf("target position (%v, %v) outside unit square", tgt.X, tgt.Y)
		}
	}
}

func TestNewSession_Deterministic(t *testing.T) {
	for _, g := range domain.AllGameTypes() {
		a, err := NewSession(g, 3, 42)
		if err != nil {
			t.Fatalf("NewSession(%s) error: %v", g, err)
		}
		b, err := NewSession(g, 3, 42)
		if err != nil {
			t.Fatalf("NewSession(%s) error: %v", g, err)
		}

		switch g {
		case domain.GameSequence:
			if len(a.Sequence) == 0 {
				t.Errorf("%s: empty sequence", g)
			}
			for i := range a.Sequence {
				if a.Sequence[i] != b.Sequence[i] {
					t.Errorf("%s: same seed produced different sequences", g)
					break
				}
			}
		case domain.GameAssociation:
			if len(a.Pairs) == 0 {
				t.Errorf("%s: empty pairs", g)
			}
		case domain.GameReaction:
			if len(a.Targets) == 0 {
				t.Errorf("%s: empty targets", g)
			}
		case domain.GameCardMatch:
			if len(a.Deck) != len(b.Deck) {
				t.Errorf("%s: same seed produced different decks", g)
			}
			for i := range a.Deck {
				if a.Deck[i].Face != b.Deck[i].Face {
					t.Errorf("%s: same seed produced different decks", g)
					break
				}
			}
		}
	}
}

func TestNewSession_Validation(t *testing.T) {
	if _, err := NewSession("tetris", 1, 1); err != domain.ErrUnknownGame {
		t.Errorf("unknown game error = %v, want ErrUnknownGame", err)
	}
	if _, err := NewSession(domain.GameSequence, 0, 1); err != domain.ErrInvalidLevel {
		t.Errorf("level 0 error = %v, want ErrInvalidLevel", err)
	}
	if _, err := NewSession(domain.GameSequence, 11, 1); err != domain.ErrInvalidLevel {
		t.Errorf("level 11 error = %v, want ErrInvalidLevel", err)
	}
}

// ─── Result Service ─────────────────────────────────────────────────────────

func TestService_Save(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	result, err := svc.Save(now, domain.GameSequence, 85, domain.GameStats{
		CorrectAnswers: 5, TotalQuestions: 5,
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if result.Level != 1 {
		t.Errorf("result level = %d, want starting level 1", result.Level)
	}

	avg, err := svc.AverageScore()
	if err != nil {
		t.Fatalf("AverageScore() error: %v", err)
	}
	if avg != 85 {
		t.Errorf("average = %v, want 85", avg)
	}
}

func TestService_Save_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	if _, err := svc.Save(time.Now(), "tetris", 50, domain.GameStats{}); err != domain.ErrUnknownGame {
		t.Errorf("unknown game error = %v, want ErrUnknownGame", err)
	}
	if _, err := svc.Save(time.Now(), domain.GameSequence, 101, domain.GameStats{}); err != domain.ErrInvalidScore {
		t.Errorf("score 101 error = %v, want ErrInvalidScore", err)
	}
	if _, err := svc.Save(time.Now(), domain.GameSequence, -1, domain.GameStats{}); err != domain.ErrInvalidScore {
		t.Errorf("score -1 error = %v, want ErrInvalidScore", err)
	}
}

func TestService_LevelAdjustment(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	now := time.Now()

	// High score moves the level up.
	svc.Save(now, domain.GameReaction, 90, domain.GameStats{})
	level, _ := svc.Level(domain.GameReaction)
	if level != 2 {
		t.Errorf("level after 90 = %d, want 2", level)
	}

	// Low score moves it back down.
	svc.Save(now, domain.GameReaction, 20, domain.GameStats{})
	level, _ = svc.Level(domain.GameReaction)
	if level != 1 {
		t.Errorf("level after 20 = %d, want 1", level)
	}

	// Middling scores hold.
	svc.Save(now, domain.GameReaction, 60, domain.GameStats{})
	level, _ = svc.Level(domain.GameReaction)
	if level != 1 {
		t.Errorf("level after 60 = %d, want 1", level)
	}
}

func TestService_LevelFloor(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	svc.Save(time.Now(), domain.GameCardMatch, 10, domain.GameStats{})
	level, _ := svc.Level(domain.GameCardMatch)
	if level != domain.MinLevel {
		t.Errorf("level = %d, want floor %d", level, domain.MinLevel)
	}
}

func TestService_LevelCap(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	now := time.Now()

	for i := 0; i < 15; i++ {
		svc.Save(now, domain.GameSequence, 95, domain.GameStats{})
	}
	level, _ := svc.Level(domain.GameSequence)
	if level != domain.MaxLevel {
		t.Errorf("level = %d, want cap %d", level, domain.MaxLevel)
	}
}

func TestService_ResultsRingBuffer(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < domain.GameResultsLimit+10; i++ {
		if _, err := svc.Save(start.Add(time.Duration(i)*time.Minute), domain.GameSequence, 50, domain.GameStats{}); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	results, err := svc.Recent(domain.GameResultsLimit)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(results) != domain.GameResultsLimit {
		t.Errorf("results = %d, want %d", len(results), domain.GameResultsLimit)
	}
}

func TestService_AverageWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	// Ten old scores of 20, then ten of 60: the window holds only the 60s.
	for i := 0; i < 10; i++ {
		svc.Save(start.Add(time.Duration(i)*time.Minute), domain.GameSequence, 20, domain.GameStats{})
	}
	for i := 10; i < 20; i++ {
		svc.Save(start.Add(time.Duration(i)*time.Minute), domain.GameSequence, 60, domain.GameStats{})
	}

	avg, err := svc.AverageScore()
	if err != nil {
		t.Fatalf("AverageScore() error: %v", err)
	}
	if avg != 60 {
		t.Errorf("average = %v, want 60", avg)
	}
}
