package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatMessage is one turn of a conversation. Role is "user" or "assistant".
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is one learner conversation with its accumulated history.
type Session struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Messages  []ChatMessage `json:"messages"`
}

// LastMessages returns up to n most recent messages, oldest first.
func (s *Session) LastMessages(n int) []ChatMessage {
	if n <= 0 || len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// SessionStore persists sessions.
// If pool is nil it falls back to JSON files under fileDir.
type SessionStore struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewSessionStore creates a session store. With a nil pool and empty dir it
// defaults to .data/sessions.
func NewSessionStore(pool *pgxpool.Pool, dir string) *SessionStore {
	if pool == nil && dir == "" {
		dir = filepath.Join(".data", "sessions")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check SessionStore dir: %v\n", err)
		}
	}
	return &SessionStore{pool: pool, fileDir: dir}
}

// Create starts a new session with a fresh UUID.
func (s *SessionStore) Create(ctx context.Context, userID string) (*Session, error) {
	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []ChatMessage{},
	}

	if s.pool != nil {
		query := `
			INSERT INTO sessions (id, user_id, messages, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		msgJSON, _ := json.Marshal(session.Messages)
		if _, err := s.pool.Exec(ctx, query, session.ID, session.UserID, msgJSON, now, now); err != nil {
			return nil, fmt.Errorf("failed to create session in db: %w", err)
		}
		return session, nil
	}

	if err := s.writeFile(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session by ID. A missing session returns (nil, nil).
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if s.pool != nil {
		query := `
			SELECT id, user_id, messages, created_at, updated_at
			FROM sessions
			WHERE id = $1
			LIMIT 1
		`
		var session Session
		var msgJSON []byte
		err := s.pool.QueryRow(ctx, query, id).Scan(
			&session.ID, &session.UserID, &msgJSON, &session.CreatedAt, &session.UpdatedAt)
		if err != nil {
			return nil, nil // Miss
		}
		if err := json.Unmarshal(msgJSON, &session.Messages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session messages: %w", err)
		}
		return &session, nil
	}

	if s.fileDir != "" {
		return s.loadFile(id)
	}
	return nil, nil
}

// GetOrCreate loads the session, creating a new one when the ID is empty
// or unknown.
func (s *SessionStore) GetOrCreate(ctx context.Context, id string, userID string) (*Session, error) {
	if id != "" {
		session, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if session != nil {
			return session, nil
		}
	}
	return s.Create(ctx, userID)
}

// AppendMessage adds a turn to the session history and persists it.
func (s *SessionStore) AppendMessage(ctx context.Context, session *Session, role string, content string) error {
	now := time.Now().UTC()
	session.Messages = append(session.Messages, ChatMessage{Role: role, Content: content, CreatedAt: now})
	session.UpdatedAt = now

	if s.pool != nil {
		query := `
			UPDATE sessions
			SET messages = $2, updated_at = $3
			WHERE id = $1
		`
		msgJSON, err := json.Marshal(session.Messages)
		if err != nil {
			return fmt.Errorf("failed to marshal session messages: %w", err)
		}
		if _, err := s.pool.Exec(ctx, query, session.ID, msgJSON, now); err != nil {
			return fmt.Errorf("failed to update session in db: %w", err)
		}
		return nil
	}

	return s.writeFile(session)
}

// ListByUser returns a user's sessions, newest first. File mode scans the
// directory, which is fine for local use.
func (s *SessionStore) ListByUser(ctx context.Context, userID string) ([]*Session, error) {
	if s.pool != nil {
		query := `
			SELECT id, user_id, messages, created_at, updated_at
			FROM sessions
			WHERE user_id = $1
			ORDER BY updated_at DESC
		`
		rows, err := s.pool.Query(ctx, query, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		defer rows.Close()

		var sessions []*Session
		for rows.Next() {
			var session Session
			var msgJSON []byte
			if err := rows.Scan(&session.ID, &session.UserID, &msgJSON, &session.CreatedAt, &session.UpdatedAt); err != nil {
				return nil, err
			}
			if err := json.Unmarshal(msgJSON, &session.Messages); err != nil {
				continue
			}
			sessions = append(sessions, &session)
		}
		return sessions, rows.Err()
	}

	entries, err := os.ReadDir(s.fileDir)
	if err != nil {
		return nil, nil
	}
	var sessions []*Session
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		session, err := s.loadFile(e.Name()[:len(e.Name())-len(".json")])
		if err != nil || session == nil {
			continue
		}
		if userID == "" || session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

// Internal file helpers

func (s *SessionStore) sessionPath(id string) string {
	return filepath.Join(s.fileDir, id+".json")
}

func (s *SessionStore) writeFile(session *Session) error {
	bytes, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(s.sessionPath(session.ID), bytes, 0644); err != nil {
		return fmt.Errorf("failed to save session file: %w", err)
	}
	return nil
}

func (s *SessionStore) loadFile(id string) (*Session, error) {
	bytes, err := os.ReadFile(s.sessionPath(id))
	if err != nil {
		return nil, nil // Not found
	}
	var session Session
	if err := json.Unmarshal(bytes, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return &session, nil
}
