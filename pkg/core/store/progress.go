package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QuizRecord is one graded quiz attempt.
type QuizRecord struct {
	QuizID    string    `json:"quiz_id"`
	Topic     string    `json:"topic"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	Percent   float64   `json:"percent"`
	TakenAt   time.Time `json:"taken_at"`
	SessionID string    `json:"session_id,omitempty"`
}

// ProgressSummary aggregates a user's quiz history.
type ProgressSummary struct {
	UserID         string       `json:"user_id"`
	QuizzesTaken   int          `json:"quizzes_taken"`
	AveragePercent float64      `json:"average_percent"`
	BestPercent    float64      `json:"best_percent"`
	Records        []QuizRecord `json:"records"`
}

// ProgressStore persists quiz attempts per user. Same hybrid layout as
// SessionStore: Postgres when a pool is supplied, one JSON file per user
// otherwise.
type ProgressStore struct {
	pool    *pgxpool.Pool
	fileDir string
}

func NewProgressStore(pool *pgxpool.Pool, dir string) *ProgressStore {
	if pool == nil && dir == "" {
		dir = filepath.Join(".data", "progress")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check ProgressStore dir: %v\n", err)
		}
	}
	return &ProgressStore{pool: pool, fileDir: dir}
}

// Record stores a graded quiz attempt for the user.
func (p *ProgressStore) Record(ctx context.Context, userID string, rec QuizRecord) error {
	if rec.TakenAt.IsZero() {
		rec.TakenAt = time.Now().UTC()
	}

	if p.pool != nil {
		query := `
			INSERT INTO quiz_attempts (user_id, quiz_id, topic, score, total, percent, session_id, taken_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := p.pool.Exec(ctx, query,
			userID, rec.QuizID, rec.Topic, rec.Score, rec.Total, rec.Percent, rec.SessionID, rec.TakenAt)
		if err != nil {
			return fmt.Errorf("failed to record quiz attempt: %w", err)
		}
		return nil
	}

	records, _ := p.loadRecords(userID)
	records = append(records, rec)
	return p.writeRecords(userID, records)
}

// Summary computes aggregate progress for a user.
func (p *ProgressStore) Summary(ctx context.Context, userID string) (*ProgressSummary, error) {
	var records []QuizRecord

	if p.pool != nil {
		query := `
			SELECT quiz_id, topic, score, total, percent, session_id, taken_at
			FROM quiz_attempts
			WHERE user_id = $1
			ORDER BY taken_at ASC
		`
		rows, err := p.pool.Query(ctx, query, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load quiz attempts: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var rec QuizRecord
			if err := rows.Scan(&rec.QuizID, &rec.Topic, &rec.Score, &rec.Total, &rec.Percent, &rec.SessionID, &rec.TakenAt); err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	} else {
		var err error
		records, err = p.loadRecords(userID)
		if err != nil {
			return nil, err
		}
	}

	summary := &ProgressSummary{UserID: userID, Records: records, QuizzesTaken: len(records)}
	if len(records) == 0 {
		return summary, nil
	}

	var sum float64
	for _, rec := range records {
		sum += rec.Percent
		if rec.Percent > summary.BestPercent {
			summary.BestPercent = rec.Percent
		}
	}
	summary.AveragePercent = math.Round(sum/float64(len(records))*100) / 100
	return summary, nil
}

// Internal file helpers

func (p *ProgressStore) progressPath(userID string) string {
	if userID == "" {
		userID = "anonymous"
	}
	return filepath.Join(p.fileDir, userID+".json")
}

func (p *ProgressStore) loadRecords(userID string) ([]QuizRecord, error) {
	bytes, err := os.ReadFile(p.progressPath(userID))
	if err != nil {
		return nil, nil // Not found
	}
	var records []QuizRecord
	if err := json.Unmarshal(bytes, &records); err != nil {
		return nil, fmt.Errorf("failed to parse progress file: %w", err)
	}
	return records, nil
}

func (p *ProgressStore) writeRecords(userID string, records []QuizRecord) error {
	bytes, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := os.WriteFile(p.progressPath(userID), bytes, 0644); err != nil {
		return fmt.Errorf("failed to save progress file: %w", err)
	}
	return nil
}
