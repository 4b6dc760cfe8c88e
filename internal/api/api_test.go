package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/memoclarity/memoclarity/internal/app/chat"
	"github.com/memoclarity/memoclarity/internal/app/tracker"
	"github.com/memoclarity/memoclarity/internal/infra/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	trk := tracker.New(db)
	srv := NewServer(trk, chat.NewService(db, 0))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

// ─── Core Endpoints ─────────────────────────────────────────────────────────

func TestHealth_NoChecker(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := doJSON(t, http.MethodGet, ts.URL+"/health", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/status", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestCheckIn_EndToEnd(t *testing.T) {
	ts := newTestServer(t)

	var result struct {
		AlreadyCheckedIn bool `json:"already_checked_in"`
		Streak           struct {
			Current int `json:"current"`
		} `json:"streak"`
	}
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/checkin",
		map[string]any{"testimony": "", "is_public": false}, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if result.AlreadyCheckedIn {
		t.Error("first check-in flagged as repeat")
	}
	if result.Streak.Current != 1 {
		t.Errorf("streak = %d, want 1", result.Streak.Current)
	}

	// Second call the same day reports the repeat.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/checkin", nil, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("repeat status = %d, want 200", resp.StatusCode)
	}
	if !result.AlreadyCheckedIn {
		t.Error("repeat check-in not flagged")
	}
}

func TestListening_Validation(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/listening",
		map[string]int{"minutes": -3}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestListening_AccumulatesAndSummary(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]int
	doJSON(t, http.MethodPost, ts.URL+"/api/listening", map[string]int{"minutes": 20}, &body)
	doJSON(t, http.MethodPost, ts.URL+"/api/listening", map[string]int{"minutes": 10}, &body)
	if body["weekly_minutes"] != 30 {
		t.Errorf("weekly_minutes = %d, want 30", body["weekly_minutes"])
	}

	var summary struct {
		WeeklyMinutes int `json:"weekly_minutes"`
	}
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/summary", nil, &summary)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status = %d, want 200", resp.StatusCode)
	}
	if summary.WeeklyMinutes != 30 {
		t.Errorf("summary weekly_minutes = %d, want 30", summary.WeeklyMinutes)
	}
}

// ─── Games ──────────────────────────────────────────────────────────────────

func TestGameSession_Generates(t *testing.T) {
	ts := newTestServer(t)

	var session struct {
		GameType string   `json:"game_type"`
		Level    int      `json:"level"`
		Sequence []string `json:"sequence"`
	}
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/games/session",
		map[string]any{"game_type": "sequence"}, &session)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if session.Level != 1 {
		t.Errorf("level = %d, want stored default 1", session.Level)
	}
	if len(session.Sequence) != 4 {
		t.Errorf("sequence length = %d, want 4 at level 1", len(session.Sequence))
	}
}

func TestGameSession_UnknownGame(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/games/session",
		map[string]any{"game_type": "chess"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGameResult_ScoreComputedFromStats(t *testing.T) {
	ts := newTestServer(t)

	var result struct {
		Score int `json:"score"`
	}
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/games/result", map[string]any{
		"game_type": "sequence",
		"stats":     map[string]any{"correct_answers": 4, "total_questions": 5},
	}, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if result.Score != 80 {
		t.Errorf("score = %d, want computed 80", result.Score)
	}

	var levels struct {
		Levels map[string]int `json:"levels"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/api/games/levels", nil, &levels)
	if levels.Levels["sequence"] != 2 {
		t.Errorf("sequence level = %d, want 2 after a score of 80", levels.Levels["sequence"])
	}
}

// ─── Chat / Settings ────────────────────────────────────────────────────────

func TestChat_AskAndHistory(t *testing.T) {
	ts := newTestServer(t)

	var reply map[string]string
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/chat",
		map[string]string{"message": "what is a streak"}, &reply)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if reply["reply"] == "" {
		t.Error("empty reply")
	}

	var history struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/api/chat/history", nil, &history)
	if len(history.Messages) != 2 {
		t.Errorf("history = %d messages, want 2", len(history.Messages))
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/chat",
		map[string]string{"message": "  "}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	ts := newTestServer(t)

	var settings map[string]any
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/settings", nil, &settings)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/settings", map[string]any{
		"general": map[string]any{"language": "es", "sound": false},
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d, want 200", resp.StatusCode)
	}

	var updated struct {
		General struct {
			Language string `json:"language"`
		} `json:"general"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/api/settings", nil, &updated)
	if updated.General.Language != "es" {
		t.Errorf("language = %q, want es", updated.General.Language)
	}
}

// ─── Tests / Tickets ────────────────────────────────────────────────────────

func TestSubmitAndListTests(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/tests", map[string]any{
		"phase_scores": [4]int{20, 25, 15, 22},
		"total_score":  82,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var list struct {
		Results []struct {
			TotalScore int `json:"total_score"`
		} `json:"results"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/api/tests", nil, &list)
	if len(list.Results) != 1 || list.Results[0].TotalScore != 82 {
		t.Errorf("results = %+v, want one with total 82", list.Results)
	}
}

func TestTickets_AfterCheckIn(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/checkin", nil, nil)

	var data struct {
		CurrentMonthTickets int `json:"current_month_tickets"`
	}
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/tickets", nil, &data)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if data.CurrentMonthTickets != 1 {
		t.Errorf("month tickets = %d, want 1", data.CurrentMonthTickets)
	}

	var history struct {
		History []struct {
			Type string `json:"type"`
		} `json:"history"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/api/tickets/history", nil, &history)
	if len(history.History) != 1 || history.History[0].Type != "checkin" {
		t.Errorf("history = %+v, want one checkin entry", history.History)
	}
}
