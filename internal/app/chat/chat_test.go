package chat

import (
	"fmt"
	"strings"
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

func TestAsk_MatchesFAQ(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, 0)

	reply, err := svc.Ask("How do I earn tickets?", time.Now())
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if !strings.Contains(reply, "ticket") {
		t.Errorf("reply %q should mention tickets", reply)
	}
	if reply == fallbackAnswer {
		t.Error("a direct corpus question should not fall back")
	}
}

func TestAsk_FuzzyMatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, 0)

	// Misspelled and reworded, close enough for the bigram matcher.
	reply, err := svc.Ask("wat is a streek", time.Now())
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if !strings.Contains(reply, "consecutive") {
		t.Errorf("reply %q should be the streak answer", reply)
	}
}

func TestAsk_EmptyMessage(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, 0)

	if _, err := svc.Ask("   ", time.Now()); err != domain.ErrEmptyMessage {
		t.Errorf("Ask(blank) error = %v, want ErrEmptyMessage", err)
	}
}

func TestAsk_AppendsHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, 0)
	now := time.Now()

	if _, err := svc.Ask("what are badges", now); err != nil {
		t.Fatalf("Ask() error: %v", err)
	}

	history, err := svc.History()
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2 (question + answer)", len(history))
	}
	if history[0].Role != domain.RoleUser {
		t.Errorf("first message role = %s, want user", history[0].Role)
	}
	if history[1].Role != domain.RoleBot {
		t.Errorf("second message role = %s, want bot", history[1].Role)
	}
}

func TestAsk_HistoryCapped(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, 10)
	now := time.Now()

	for i := 0; i < 20; i++ {
		if _, err := svc.Ask(fmt.Sprintf("question number %d", i), now); err != nil {
			t.Fatalf("Ask() error: %v", err)
		}
	}

	history, err := svc.History()
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(history) != 10 {
		t.Errorf("history length = %d, want cap 10", len(history))
	}
	// The newest exchange survives at the tail.
	if history[len(history)-2].Text != "question number 19" {
		t.Errorf("tail question = %q, want the last one asked", history[len(history)-2].Text)
	}
}

func TestHistory_CorruptStateStartsFresh(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, 0)

	if err := db.SetState("chat_history", "{not json"); err != nil {
		t.Fatal(err)
	}

	history, err := svc.History()
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if history != nil {
		t.Errorf("corrupt history should read as empty, got %d messages", len(history))
	}
}
