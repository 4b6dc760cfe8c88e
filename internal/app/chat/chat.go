// Package chat implements the FAQ bot: fuzzy question matching over a
// fixed corpus, with a persisted conversation capped at 50 messages.
package chat

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/closestmatch"

	"github.com/memoclarity/memoclarity/internal/domain"
	"github.com/memoclarity/memoclarity/internal/infra/metrics"
	"github.com/memoclarity/memoclarity/internal/infra/sqlite"
)

// FAQ is one question/answer entry in the bot's corpus.
type FAQ struct {
	Question string
	Answer   string
}

// fallbackAnswer is returned when nothing in the corpus matches.
const fallbackAnswer = "I don't have an answer for that yet. Try asking about " +
	"check-ins, streaks, tickets, badges, the games, or your cognitive score."

// DefaultFAQ is the built-in corpus.
func DefaultFAQ() []FAQ {
	return []FAQ{
		{"how do i check in", "Tap the daily check-in button once per day. Each day can only be checked in once — repeats are ignored."},
		{"what is a streak", "Your streak counts consecutive calendar days, ending today, with a completed check-in. Miss a day and it resets to zero."},
		{"how do i earn tickets", "You earn 1 raffle ticket each for your daily check-in, an audio session, and a game — at most 3 regular tickets per day."},
		{"what are bonus tickets", "Sharing a testimony on a milestone day earns 3 bonus tickets, and a perfect week of check-ins earns 5. Bonuses don't count against the daily cap."},
		{"what is the raffle", "Tickets you earn enter you into the monthly prize raffle. Your ticket count resets when a new month starts, but past months stay in your stats."},
		{"what are badges", "Badges mark streak milestones: 7, 30, 60, and 90 days. Each badge can only be earned once."},
		{"what is the cognitive score", "It blends your streak, your recent game scores, and your weekly listening minutes into a single 0-100 number."},
		{"how do game levels work", "Score 80 or more and the game's difficulty goes up a level (max 10). Score under 40 and it drops one (min 1)."},
		{"what games are there", "Four mini-games: sequence repeat, word association, reaction, and card match. Each saves a 0-100 score."},
		{"how do audio sessions count", "Minutes from your listening sessions accumulate for the week and feed your cognitive score. Stopping a session also credits the day's frequency ticket."},
		{"what is a testimony", "An optional note you attach to a check-in. Mark it public to share it with the community."},
		{"when does my ticket count reset", "At the start of each calendar month. The closed month's total is archived in your monthly stats."},
	}
}

// Service answers questions and maintains the capped chat history.
type Service struct {
	db      *sqlite.DB
	cm      *closestmatch.ClosestMatch
	answers map[string]string
	limit   int
}

// NewService builds the bot over the default corpus.
func NewService(db *sqlite.DB, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = domain.ChatHistoryLimit
	}

	faqs := DefaultFAQ()
	questions := make([]string, len(faqs))
	answers := make(map[string]string, len(faqs))
	for i, f := range faqs {
		questions[i] = f.Question
		answers[f.Question] = f.Answer
	}

	return &Service{
		db:      db,
		cm:      closestmatch.New(questions, []int{2, 3}),
		answers: answers,
		limit:   historyLimit,
	}
}

// Ask answers a question and appends both sides to the history.
func (s *Service) Ask(message string, now time.Time) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.ErrEmptyMessage
	}

	reply := fallbackAnswer
	if match := s.cm.Closest(strings.ToLower(message)); match != "" {
		if answer, ok := s.answers[match]; ok {
			reply = answer
		}
	}

	history, err := s.History()
	if err != nil {
		return "", err
	}
	history = append(history,
		domain.ChatMessage{ID: uuid.NewString(), Role: domain.RoleUser, Text: message, CreatedAt: now},
		domain.ChatMessage{ID: uuid.NewString(), Role: domain.RoleBot, Text: reply, CreatedAt: now},
	)
	if len(history) > s.limit {
		history = history[len(history)-s.limit:]
	}
	if err := s.saveHistory(history); err != nil {
		return "", err
	}

	metrics.ChatQuestions.Inc()
	return reply, nil
}

// History loads the persisted conversation.
func (s *Service) History() ([]domain.ChatMessage, error) {
	raw, err := s.db.GetState("chat_history")
	if err != nil {
		return nil, fmt.Errorf("get chat_history: %w", err)
	}
	if raw == "" {
		return nil, nil
	}

	var history []domain.ChatMessage
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, nil // Corrupt history — start fresh
	}
	return history, nil
}

func (s *Service) saveHistory(history []domain.ChatMessage) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal chat history: %w", err)
	}
	if err := s.db.SetState("chat_history", string(raw)); err != nil {
		return fmt.Errorf("save chat_history: %w", err)
	}
	return nil
}
