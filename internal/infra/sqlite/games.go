package sqlite

import (
	"time"

	"github.com/memoclarity/memoclarity/internal/domain"
)

// ─── Game Results ───────────────────────────────────────────────────────────

// InsertGameResult appends a completed game.
func (d *DB) InsertGameResult(r domain.GameResult) error {
	_, err := d.db.Exec(
		`INSERT INTO game_results
			(id, game_type, score, level, date, timestamp,
			 correct_answers, total_questions, avg_reaction_ms, time_spent_sec)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.GameType), r.Score, r.Level, r.Date, r.Timestamp.UnixNano(),
		r.Stats.CorrectAnswers, r.Stats.TotalQuestions,
		r.Stats.AverageReactionMs, r.Stats.TimeSpentSec,
	)
	return err
}

// TrimGameResults drops the oldest results beyond limit.
func (d *DB) TrimGameResults(limit int) error {
	_, err := d.db.Exec(
		`DELETE FROM game_results WHERE id NOT IN (
			SELECT id FROM game_results ORDER BY timestamp DESC LIMIT ?
		)`, limit,
	)
	return err
}

// ListGameResults returns results newest first.
func (d *DB) ListGameResults(limit int) ([]domain.GameResult, error) {
	rows, err := d.db.Query(
		`SELECT id, game_type, score, level, date, timestamp,
			correct_answers, total_questions, avg_reaction_ms, time_spent_sec
		 FROM game_results ORDER BY timestamp DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.GameResult
	for rows.Next() {
		var r domain.GameResult
		var gameType string
		var ts int64
		if err := rows.Scan(&r.ID, &gameType, &r.Score, &r.Level, &r.Date, &ts,
			&r.Stats.CorrectAnswers, &r.Stats.TotalQuestions,
			&r.Stats.AverageReactionMs, &r.Stats.TimeSpentSec); err != nil {
			return nil, err
		}
		r.GameType = domain.GameType(gameType)
		r.Timestamp = time.Unix(0, ts)
		results = append(results, r)
	}
	return results, rows.Err()
}

// RecentGameScores returns the last n scores, newest first.
func (d *DB) RecentGameScores(n int) ([]int, error) {
	rows, err := d.db.Query(
		`SELECT score FROM game_results ORDER BY timestamp DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

// CountGameResults returns the stored result count.
func (d *DB) CountGameResults() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM game_results`).Scan(&count)
	return count, err
}

// ─── Test Results ───────────────────────────────────────────────────────────

// InsertTestResult appends a cognitive assessment result.
func (d *DB) InsertTestResult(r domain.TestResult) error {
	_, err := d.db.Exec(
		`INSERT INTO test_results (id, phase1, phase2, phase3, phase4, total, taken_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.PhaseScores[0], r.PhaseScores[1], r.PhaseScores[2], r.PhaseScores[3],
		r.TotalScore, r.TakenAt.Unix(),
	)
	return err
}

// ListTestResults returns assessments newest first.
func (d *DB) ListTestResults(limit int) ([]domain.TestResult, error) {
	rows, err := d.db.Query(
		`SELECT id, phase1, phase2, phase3, phase4, total, taken_at
		 FROM test_results ORDER BY taken_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TestResult
	for rows.Next() {
		var r domain.TestResult
		var takenAt int64
		if err := rows.Scan(&r.ID, &r.PhaseScores[0], &r.PhaseScores[1],
			&r.PhaseScores[2], &r.PhaseScores[3], &r.TotalScore, &takenAt); err != nil {
			return nil, err
		}
		r.TakenAt = time.Unix(takenAt, 0)
		results = append(results, r)
	}
	return results, rows.Err()
}
