// Package quiz exposes quiz generation and grading. The answer key never
// leaves the server: generated quizzes go to the client without answer
// indices and are held in the cache until submission.
package quiz

import (
	"encoding/json"
	"net/http"
	"time"

	"fintutor/pkg/api/auth"
	corequiz "fintutor/pkg/core/quiz"
	"fintutor/pkg/core/store"
)

// quizTTL is how long a generated quiz stays gradeable.
const quizTTL = 2 * time.Hour

// Handler holds dependencies for quiz endpoints.
type Handler struct {
	generator *corequiz.Generator
	cache     store.QuizCache
	progress  *store.ProgressStore
}

func NewHandler(generator *corequiz.Generator, cache store.QuizCache, progress *store.ProgressStore) *Handler {
	return &Handler{generator: generator, cache: cache, progress: progress}
}

type GenerateRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}

// clientQuestion is a question with the answer key stripped.
type clientQuestion struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

type GenerateResponse struct {
	QuizID    string           `json:"quiz_id"`
	Topic     string           `json:"topic"`
	Questions []clientQuestion `json:"questions"`
}

type SubmitRequest struct {
	QuizID    string `json:"quiz_id"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Answers   []int  `json:"answers"`
}

// HandleGenerate creates a quiz on a topic and caches it for grading.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	quiz, err := h.generator.Generate(r.Context(), req.Topic, req.NumQuestions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if err := h.cache.Put(r.Context(), quiz, quizTTL); err != nil {
		http.Error(w, "failed to store quiz", http.StatusInternalServerError)
		return
	}

	resp := GenerateResponse{QuizID: quiz.ID, Topic: quiz.Topic}
	for _, q := range quiz.Questions {
		resp.Questions = append(resp.Questions, clientQuestion{Question: q.Question, Choices: q.Choices})
	}
	json.NewEncoder(w).Encode(resp)
}

// HandleSubmit grades a submission against the cached quiz and records the
// attempt in the learner's progress.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	quiz, err := h.cache.Fetch(r.Context(), req.QuizID)
	if err != nil {
		http.Error(w, "failed to load quiz", http.StatusInternalServerError)
		return
	}
	if quiz == nil {
		http.Error(w, "quiz not found or expired", http.StatusNotFound)
		return
	}

	report, err := corequiz.Grade(quiz, corequiz.Submission{QuizID: req.QuizID, Answers: req.Answers})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID := req.UserID
	if u := auth.UserID(r); u != "" {
		userID = u
	}

	if h.progress != nil {
		rec := store.QuizRecord{
			QuizID:    quiz.ID,
			Topic:     quiz.Topic,
			Score:     report.Score,
			Total:     report.Total,
			Percent:   report.Percent,
			SessionID: req.SessionID,
		}
		if err := h.progress.Record(r.Context(), userID, rec); err != nil {
			// Grading already succeeded; report the result anyway.
			w.Header().Set("X-Progress-Recorded", "false")
		}
	}

	json.NewEncoder(w).Encode(report)
}
