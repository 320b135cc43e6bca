package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"fintutor/pkg/core/quiz"
)

// QuizCache holds generated quizzes between the generate and grade calls.
// The answer key never leaves the server, so grading needs the original
// quiz back.
type QuizCache interface {
	Put(ctx context.Context, q *quiz.Quiz, ttl time.Duration) error
	Fetch(ctx context.Context, quizID string) (*quiz.Quiz, error)
}

// ============================================================
// Redis implementation
// ============================================================

type RedisQuizCache struct {
	client *redis.Client
}

// NewRedisQuizCache connects using REDIS_URL (e.g. redis://localhost:6379/0).
func NewRedisQuizCache() (*RedisQuizCache, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable not set")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	return &RedisQuizCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisQuizCache) Put(ctx context.Context, q *quiz.Quiz, ttl time.Duration) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz: %w", err)
	}
	if err := c.client.Set(ctx, quizKey(q.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache quiz: %w", err)
	}
	return nil
}

func (c *RedisQuizCache) Fetch(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	data, err := c.client.Get(ctx, quizKey(quizID)).Bytes()
	if err == redis.Nil {
		return nil, nil // Miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz: %w", err)
	}
	var q quiz.Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached quiz: %w", err)
	}
	return &q, nil
}

func quizKey(id string) string {
	return "fintutor:quiz:" + id
}

// ============================================================
// In-memory implementation (local dev, tests)
// ============================================================

type memoryQuizEntry struct {
	quiz      *quiz.Quiz
	expiresAt time.Time
}

type MemoryQuizCache struct {
	mu      sync.RWMutex
	entries map[string]memoryQuizEntry
}

func NewMemoryQuizCache() *MemoryQuizCache {
	return &MemoryQuizCache{entries: make(map[string]memoryQuizEntry)}
}

func (c *MemoryQuizCache) Put(ctx context.Context, q *quiz.Quiz, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[q.ID] = memoryQuizEntry{quiz: q, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *MemoryQuizCache) Fetch(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[quizID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.quiz, nil
}
