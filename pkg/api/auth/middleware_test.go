package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(UserID(r)))
}

func TestAuthenticateOpenMode(t *testing.T) {
	t.Setenv("AUTH_TOKENS", "")

	rec := httptest.NewRecorder()
	Authenticate(echoUser)(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("open mode should pass, got %d", rec.Code)
	}
	if rec.Body.String() != "" {
		t.Errorf("open mode has no authenticated user, got %q", rec.Body.String())
	}
}

func TestAuthenticateResolvesUser(t *testing.T) {
	t.Setenv("AUTH_TOKENS", "tok-alice:alice,tok-bob:bob")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer tok-bob")
	rec := httptest.NewRecorder()
	Authenticate(echoUser)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("valid token should pass, got %d", rec.Code)
	}
	if rec.Body.String() != "bob" {
		t.Errorf("token should resolve to bob, got %q", rec.Body.String())
	}
}

func TestAuthenticateAcceptsAPIKeyHeader(t *testing.T) {
	t.Setenv("AUTH_TOKENS", "tok-alice:alice")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-API-Key", "tok-alice")
	rec := httptest.NewRecorder()
	Authenticate(echoUser)(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "alice" {
		t.Errorf("X-API-Key fallback failed: %d %q", rec.Code, rec.Body.String())
	}
}

func TestAuthenticateRejectsUnknownToken(t *testing.T) {
	t.Setenv("AUTH_TOKENS", "tok-alice:alice")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	Authenticate(echoUser)(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown token should 401, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	t.Setenv("AUTH_TOKENS", "tok-alice:alice")

	rec := httptest.NewRecorder()
	Authenticate(echoUser)(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token should 401, got %d", rec.Code)
	}
}

func TestAuthenticateAllowsPreflight(t *testing.T) {
	t.Setenv("AUTH_TOKENS", "tok-alice:alice")

	rec := httptest.NewRecorder()
	Authenticate(echoUser)(rec, httptest.NewRequest("OPTIONS", "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS should bypass auth, got %d", rec.Code)
	}
}

func TestParseTokenMapSkipsMalformedEntries(t *testing.T) {
	tokens := parseTokenMap("tok:alice,garbage,:noname,notoken:")
	if len(tokens) != 1 || tokens["tok"] != "alice" {
		t.Errorf("expected only the well-formed entry, got %v", tokens)
	}
}
