package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/memoclarity/memoclarity/internal/app/games"
	"github.com/memoclarity/memoclarity/internal/domain"
)

// ─── Check-In / Streak / Score ──────────────────────────────────────────────

type checkInRequest struct {
	Testimony string `json:"testimony"`
	IsPublic  bool   `json:"is_public"`
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := s.tracker.CheckIn(time.Now(), req.Testimony, req.IsPublic)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	summary, err := s.tracker.Streak.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	profile, err := s.tracker.Profile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cognitive_score": profile.CognitiveScore,
		"avg_game_score":  profile.AvgGameScore,
		"weekly_minutes":  profile.WeeklyFrequencyMinutes,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.tracker.Summarize(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type listeningRequest struct {
	Minutes int `json:"minutes"`
}

func (s *Server) handleListening(w http.ResponseWriter, r *http.Request) {
	var req listeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := s.tracker.AddListeningMinutes(time.Now(), req.Minutes)
	if err == domain.ErrInvalidMinutes {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"weekly_minutes": total})
}

// ─── Tickets ────────────────────────────────────────────────────────────────

func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	data, err := s.tracker.Tickets.Data()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleTicketHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.tracker.Tickets.History(queryInt(r, "limit", domain.TicketHistoryLimit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (s *Server) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	data, err := s.tracker.Tickets.Data()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current_month": data.CurrentMonthTickets,
		"monthly_stats": data.MonthlyStats,
	})
}

// ─── Games ──────────────────────────────────────────────────────────────────

type gameSessionRequest struct {
	GameType domain.GameType `json:"game_type"`
	Level    int             `json:"level,omitempty"`
}

func (s *Server) handleGameSession(w http.ResponseWriter, r *http.Request) {
	var req gameSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	level := req.Level
	if level == 0 {
		stored, err := s.tracker.Games.Level(req.GameType)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		level = stored
	}

	session, err := games.NewSession(req.GameType, level, time.Now().UnixNano())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type gameResultRequest struct {
	GameType domain.GameType  `json:"game_type"`
	Score    *int             `json:"score,omitempty"` // Omitted: computed from stats
	Stats    domain.GameStats `json:"stats"`
}

func (s *Server) handleGameResult(w http.ResponseWriter, r *http.Request) {
	var req gameResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	gameScore := 0
	if req.Score != nil {
		gameScore = *req.Score
	} else {
		computed, err := games.ScoreFor(req.GameType, req.Stats)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		gameScore = computed
	}

	result, err := s.tracker.SaveGameResult(time.Now(), req.GameType, gameScore, req.Stats)
	switch err {
	case nil:
	case domain.ErrUnknownGame, domain.ErrInvalidScore:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGameResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.tracker.Games.Recent(queryInt(r, "limit", domain.GameResultsLimit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleGameLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.tracker.Games.Levels()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"levels": levels})
}

// ─── Testimonies / Tests ────────────────────────────────────────────────────

func (s *Server) handleTestimonies(w http.ResponseWriter, r *http.Request) {
	entries, err := s.tracker.Testimonies(queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"testimonies": entries})
}

type submitTestRequest struct {
	PhaseScores [4]int `json:"phase_scores"`
	TotalScore  int    `json:"total_score"`
}

func (s *Server) handleSubmitTest(w http.ResponseWriter, r *http.Request) {
	var req submitTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.tracker.SubmitTestResult(time.Now(), req.PhaseScores, req.TotalScore)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListTests(w http.ResponseWriter, r *http.Request) {
	results, err := s.tracker.TestResults(queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// ─── Chat / Settings ────────────────────────────────────────────────────────

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := s.chat.Ask(req.Message, time.Now())
	if err == domain.ErrEmptyMessage {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.chat.History()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": history})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.tracker.Settings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.tracker.UpdateSettings(settings); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
