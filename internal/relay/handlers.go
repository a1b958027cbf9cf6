package relay

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mcp-probe/internal/probe"
	"mcp-probe/internal/store"
)

type probeRequest struct {
	Prompt    string `json:"prompt,omitempty"`
	Model     string `json:"model,omitempty"`
	Verbosity string `json:"verbosity,omitempty"`
	Effort    string `json:"effort,omitempty"`
}

func validLevel(v string) bool {
	switch v {
	case "low", "medium", "high":
		return true
	}
	return false
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	var in probeRequest
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "read_body", err.Error())
		return
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_error", "invalid_json", err.Error())
			return
		}
	}

	cfg := s.cfg
	if v := strings.TrimSpace(in.Prompt); v != "" {
		cfg.Prompt = v
	}
	if v := strings.TrimSpace(in.Model); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(in.Verbosity); v != "" {
		if !validLevel(v) {
			writeError(w, http.StatusBadRequest, "invalid_request_error", "invalid_verbosity", "verbosity must be low, medium, or high")
			return
		}
		cfg.Verbosity = v
	}
	if v := strings.TrimSpace(in.Effort); v != "" {
		if !validLevel(v) {
			writeError(w, http.StatusBadRequest, "invalid_request_error", "invalid_effort", "effort must be low, medium, or high")
			return
		}
		cfg.Effort = v
	}

	start := time.Now()
	req := probe.Build(cfg)
	body, status, err := probe.Dispatch(r.Context(), s.up, req)
	s.observe(r, cfg.Model, len(cfg.Prompt), status, len(body), time.Since(start), err)

	if err != nil && status == 0 {
		writeError(w, http.StatusBadGateway, "api_error", "upstream_unreachable", err.Error())
		return
	}

	// Upstream body and status are relayed verbatim, errors included.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "api_error", "audit_disabled", "audit store not configured")
		return
	}
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	logs, err := s.store.RecentProbeLogs(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "api_error", "audit_query", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(logs),
		"items": logs,
	})
}

func (s *Server) observe(r *http.Request, model string, promptBytes, status, respBytes int, dur time.Duration, err error) {
	if s.metrics != nil {
		s.metrics.ObserveProbe("relay", status, dur)
	}
	if s.store == nil {
		return
	}
	entry := store.ProbeLog{
		ID:            r.Header.Get("X-Request-ID"),
		Mode:          "relay",
		Model:         model,
		PromptBytes:   promptBytes,
		Status:        status,
		LatencyMs:     dur.Milliseconds(),
		ResponseBytes: respBytes,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if ierr := s.store.InsertProbeLog(r.Context(), entry); ierr != nil {
		log.Printf("relay: audit insert failed: %v", ierr)
	}
}
