// Package chat exposes the conversational endpoint.
package chat

import (
	"encoding/json"
	"net/http"

	"fintutor/pkg/api/auth"
	"fintutor/pkg/core/pipeline"
	"fintutor/pkg/core/store"
)

// Handler holds dependencies for the chat endpoint.
type Handler struct {
	orchestrator *pipeline.Orchestrator
	sessions     *store.SessionStore
}

func NewHandler(orchestrator *pipeline.Orchestrator, sessions *store.SessionStore) *Handler {
	return &Handler{orchestrator: orchestrator, sessions: sessions}
}

// Request is one chat turn. SessionID empty means start a new session.
type Request struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Message   string `json:"message"`
}

// HandleChat processes a chat message and returns the pipeline response.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	userID := req.UserID
	if u := auth.UserID(r); u != "" {
		userID = u
	}

	session, err := h.sessions.GetOrCreate(r.Context(), req.SessionID, userID)
	if err != nil {
		http.Error(w, "failed to open session", http.StatusInternalServerError)
		return
	}

	resp, err := h.orchestrator.HandleMessage(r.Context(), session, req.Message)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(resp)
}

// HandleSessions lists a user's sessions, newest first.
func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if u := auth.UserID(r); u != "" {
		userID = u
	}

	sessions, err := h.sessions.ListByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []*store.Session{}
	}

	json.NewEncoder(w).Encode(sessions)
}

// HandleHistory returns the stored messages for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	session, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}
	if session == nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(session)
}
