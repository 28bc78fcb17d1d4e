// Package web serves the dashboard HTTP API. Responses use the
// {code, message, data} envelope the front end expects, with code 0 on
// success; authentication is a bearer token exchanged for the
// dashboard password at /api/login.
package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coopco/renewdash/internal/logbuf"
	"github.com/coopco/renewdash/internal/notify"
	"github.com/coopco/renewdash/internal/settings"
)

// ActionRunner executes check-in and renewal actions for an account.
// The actual execution (browser automation, upstream API calls) lives
// outside this module; the server only routes ids to it.
type ActionRunner interface {
	Checkin(ctx context.Context, acc settings.Account) (string, error)
	Renew(ctx context.Context, acc settings.Account) (string, error)
}

type Server struct {
	store      *settings.Store
	dispatcher *notify.Dispatcher
	runner     ActionRunner
	password   string
	logs       *logbuf.Buffer
	flusher    *logbuf.Poller

	mu     sync.Mutex
	tokens map[string]struct{}

	now func() time.Time
}

type Options struct {
	Store      *settings.Store
	Dispatcher *notify.Dispatcher
	Runner     ActionRunner
	Password   string
	Logs       *logbuf.Buffer
	// LogPath, when set, receives a periodic snapshot of the log
	// buffer while the server runs.
	LogPath string
}

func NewServer(opts Options) *Server {
	s := &Server{
		store:      opts.Store,
		dispatcher: opts.Dispatcher,
		runner:     opts.Runner,
		password:   opts.Password,
		logs:       opts.Logs,
		tokens:     make(map[string]struct{}),
		now:        time.Now,
	}
	if s.dispatcher == nil {
		s.dispatcher = notify.NewDispatcher()
	}
	if s.runner == nil {
		s.runner = &LoggingRunner{Store: s.store, Dispatcher: s.dispatcher}
	}
	if opts.Logs != nil && opts.LogPath != "" {
		path := opts.LogPath
		s.flusher = logbuf.NewPoller(2*time.Second, func() {
			_ = opts.Logs.WriteFile(path)
		})
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", s.handleLogin)

	mux.Handle("GET /api/accounts", s.auth(s.handleListAccounts))
	mux.Handle("POST /api/accounts", s.auth(s.handleCreateAccount))
	mux.Handle("PUT /api/accounts/{id}", s.auth(s.handleUpdateAccount))
	mux.Handle("DELETE /api/accounts/{id}", s.auth(s.handleDeleteAccount))

	mux.Handle("POST /api/actions/checkin", s.auth(s.handleCheckinAll))
	mux.Handle("POST /api/actions/checkin/{id}", s.auth(s.handleCheckinOne))
	mux.Handle("POST /api/actions/renew", s.auth(s.handleRenewAll))
	mux.Handle("POST /api/actions/renew/{id}", s.auth(s.handleRenewOne))

	mux.Handle("GET /api/system/settings", s.auth(s.handleGetSettings))
	mux.Handle("PUT /api/system/settings", s.auth(s.handleUpdateSettings))
	mux.Handle("GET /api/system/schedule/preview", s.auth(s.handleSchedulePreview))
	mux.Handle("POST /api/system/notify/test", s.auth(s.handleNotifyTest))
	mux.Handle("GET /api/system/notify/channels", s.auth(s.handleListChannels))
	mux.Handle("POST /api/system/notify/channels", s.auth(s.handleSaveChannel))
	mux.Handle("DELETE /api/system/notify/channels/{id}", s.auth(s.handleDeleteChannel))

	mux.Handle("GET /api/logs", s.auth(s.handleLogs))
	return mux
}

// StartLogFlush begins the periodic log snapshot; starting twice never
// stacks a second timer.
func (s *Server) StartLogFlush() {
	if s.flusher != nil {
		s.flusher.Start()
	}
}

func (s *Server) StopLogFlush() {
	if s.flusher != nil {
		s.flusher.Stop()
	}
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Code: 0, Message: "ok", Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Code: 1, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	if s.password == "" || req.Password != s.password {
		writeError(w, http.StatusUnauthorized, "密码错误")
		return
	}
	token := newToken()
	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()
	writeSuccess(w, map[string]string{"token": token})
}

// auth guards a handler behind bearer-token authentication. With no
// password configured the dashboard runs open, for deployments behind
// a trusted proxy.
func (s *Server) auth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.password != "" {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			s.mu.Lock()
			_, ok := s.tokens[token]
			s.mu.Unlock()
			if token == "" || !ok {
				writeError(w, http.StatusUnauthorized, "未授权")
				return
			}
		}
		next(w, r)
	})
}

func newToken() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
