// Package fakepanel is an in-memory stand-in for the panel REST API used by tests.
package fakepanel

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

const (
	APIPrefix = "/api/v1"

	DefaultUsername     = "admin"
	DefaultPassword     = "password123"
	DefaultAccessToken  = "access-token-1"
	DefaultRefreshToken = "refresh-token-1"
)

// RecordedRequest is what the server saw for one call.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	RequestID     string
	Body          map[string]any
}

type Server struct {
	*httptest.Server
	router *mux.Router

	mu           sync.Mutex
	Username     string
	Password     string
	AccessToken  string
	RefreshToken string
	Admin        map[string]any
	MeStatus     int // when non-zero, GET /auth/me answers with this status
	revoked      bool
	requests     []RecordedRequest

	users    *collection
	nodes    *collection
	inbounds *collection
	admins   *collection
}

// New starts a fake panel and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		router:       mux.NewRouter(),
		Username:     DefaultUsername,
		Password:     DefaultPassword,
		AccessToken:  DefaultAccessToken,
		RefreshToken: DefaultRefreshToken,
		Admin: map[string]any{
			"id":          float64(1),
			"username":    DefaultUsername,
			"is_sudo":     true,
			"is_active":   true,
			"roles":       []any{"superadmin"},
			"mfa_enabled": false,
			"created_at":  "2025-01-01T00:00:00",
			"updated_at":  "2025-01-01T00:00:00",
		},
		users:    newCollection(),
		nodes:    newCollection(),
		inbounds: newCollection(),
		admins:   newCollection(),
	}
	s.initRoutes()
	s.Server = httptest.NewServer(s)
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to hand to client.New.
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	s.router.ServeHTTP(w, r)
}

// Revoke makes the current access token invalid so every protected call gets a 401.
func (s *Server) Revoke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = true
}

// SetTokens changes the pair issued by POST /auth/login.
func (s *Server) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AccessToken = access
	s.RefreshToken = refresh
}

// SetMeStatus forces GET /auth/me to fail with status (0 restores normal behaviour).
func (s *Server) SetMeStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MeStatus = status
}

// Requests returns a copy of everything recorded so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Count returns how many requests hit method + path (path without the API prefix).
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == APIPrefix+path {
			n++
		}
	}
	return n
}

// Last returns the most recent request.
func (s *Server) Last() RecordedRequest {
	requests := s.Requests()
	if len(requests) == 0 {
		return RecordedRequest{}
	}
	return requests[len(requests)-1]
}

// SeedUser stores a user object and returns its id.
func (s *Server) SeedUser(user map[string]any) int {
	return s.users.create(user)
}

func (s *Server) SeedNode(node map[string]any) int {
	return s.nodes.create(node)
}

func (s *Server) SeedInbound(inbound map[string]any) int {
	return s.inbounds.create(inbound)
}

func (s *Server) record(r *http.Request) {
	rec := RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.Query(),
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("X-Request-ID"),
	}
	if r.Body != nil && r.ContentLength != 0 {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			rec.Body = body
		}
		r.Body = jsonBody(body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	s.mu.Unlock()
}

// requireAuth answers 401 unless the bearer token matches the issued access token.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		expected := "Bearer " + s.AccessToken
		revoked := s.revoked
		s.mu.Unlock()

		if revoked || r.Header.Get("Authorization") != expected {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func readJSON(r *http.Request) map[string]any {
	body := map[string]any{}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	return body
}

func jsonBody(body map[string]any) *readCloser {
	raw, _ := json.Marshal(body)
	return &readCloser{Reader: strings.NewReader(string(raw))}
}

type readCloser struct {
	*strings.Reader
}

func (readCloser) Close() error { return nil }
