// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

// Package server exposes the webhook endpoints: it verifies delivery
// signatures, dispatches payloads into the relay core, and renders the
// per-remote JSON status summary.
package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/anybox/anyrepo/internal/core/config"
	"github.com/anybox/anyrepo/internal/core/relay"
)

// Server routes configured hook endpoints to their provider handler.
type Server struct {
	mux    *http.ServeMux
	engine *relay.Engine
	logger *slog.Logger
}

// New builds the hook server from the configured hooks. Each hook
// endpoint gets the handler for its provider kind, closed over its
// secret.
func New(cfg *config.Config, engine *relay.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mux:    http.NewServeMux(),
		engine: engine,
		logger: logger,
	}

	s.mux.HandleFunc("/healthz", s.handleHealth)

	for _, hook := range cfg.Hooks {
		switch hook.Kind {
		case config.KindGitHub:
			s.mux.HandleFunc(hook.Endpoint, s.githubHook(hook.Secret))
		case config.KindGitLab:
			s.mux.HandleFunc(hook.Endpoint, s.gitlabHook(hook.Secret))
		}
		logger.Info("registered hook", "kind", hook.Kind, "endpoint", hook.Endpoint)
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// githubHook verifies and dispatches GitHub deliveries.
func (s *Server) githubHook(secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		delivery := r.Header.Get("X-GitHub-Delivery")
		if delivery == "" {
			delivery = uuid.NewString()
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.logger.Warn("failed to read request body", "delivery", delivery, "err", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if herr := verifyGitHub(body, r.Header.Get("X-Hub-Signature"), r.Header.Get("User-Agent"), secret); herr != nil {
			s.logger.Warn("rejected github delivery", "delivery", delivery, "reason", herr.reason)
			http.Error(w, herr.reason, herr.code)
			return
		}

		eventType := r.Header.Get("X-GitHub-Event")
		if eventType == "" {
			eventType = "ping"
		}

		switch eventType {
		case "ping":
			s.writeJSON(w, map[string]string{"msg": "pong"})
		case "issues":
			s.dispatch(w, r, delivery, body, relay.NormalizeGitHubIssues)
		case "issue_comment":
			s.dispatch(w, r, delivery, body, relay.NormalizeGitHubIssueComment)
		default:
			s.writeJSON(w, relay.Status{Status: "skipped"})
		}
	}
}

// gitlabHook verifies and dispatches GitLab deliveries.
func (s *Server) gitlabHook(secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		delivery := uuid.NewString()

		if herr := verifyGitLab(r.Header.Get("X-Gitlab-Token"), secret); herr != nil {
			s.logger.Warn("rejected gitlab delivery", "delivery", delivery, "reason", herr.reason)
			http.Error(w, herr.reason, herr.code)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.logger.Warn("failed to read request body", "delivery", delivery, "err", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		eventType := r.Header.Get("X-Gitlab-Event")
		if eventType == "" {
			eventType = "ping"
		}

		switch eventType {
		case "ping":
			s.writeJSON(w, map[string]string{"msg": "pong"})
		case "Issue Hook":
			s.dispatch(w, r, delivery, body, relay.NormalizeGitLabIssue)
		case "Note Hook":
			s.dispatch(w, r, delivery, body, relay.NormalizeGitLabNote)
		default:
			s.writeJSON(w, relay.Status{Status: "skipped"})
		}
	}
}

// dispatch normalizes the payload and runs the reconciliation pass.
// Parse failures are downgraded to an error status with HTTP 200 so
// the provider does not disable the hook over repeated 5xx responses.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, delivery string, body []byte, normalize func([]byte) (*relay.Event, error)) {
	ev, err := normalize(body)
	if err != nil {
		s.logger.Error("failed to normalize payload", "delivery", delivery, "err", err)
		s.writeJSON(w, relay.Status{Status: relay.StatusError})
		return
	}
	if ev == nil {
		// Valid payload that carries nothing to relay, such as a note
		// on a merge request.
		s.writeJSON(w, relay.Status{Status: "skipped"})
		return
	}

	result := s.engine.Relay(r.Context(), ev)
	s.writeJSON(w, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}
