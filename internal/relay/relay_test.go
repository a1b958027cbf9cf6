package relay

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mcp-probe/internal/config"
	"mcp-probe/internal/proto/responses"
	"mcp-probe/internal/provider/openai"
)

func relayConfig() config.Config {
	return config.Config{
		Model:           "gpt-5",
		Prompt:          "Please test all mcp tools",
		Verbosity:       "medium",
		Effort:          "medium",
		MCPLabel:        "ftp",
		MCPURL:          "https://ftpmcp.example.com/mcp",
		MCPAllowedTools: append([]string(nil), config.DefaultAllowedTools...),
		Store:           true,
		Include:         append([]string(nil), config.DefaultInclude...),
	}
}

func TestHealthz(t *testing.T) {
	srv := New(relayConfig(), openai.Upstream{BaseURL: "http://unused"}, nil, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status: %d", rec.Code)
	}
}

func TestProbeForwardsOverridesAndRelaysBody(t *testing.T) {
	const upstreamBody = `{"id":"resp_relay","object":"response"}`
	var got responses.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Errorf("request not json: %v", err)
		}
		_, _ = w.Write([]byte(upstreamBody))
	}))
	defer ts.Close()

	srv := New(relayConfig(), openai.Upstream{BaseURL: ts.URL, APIKey: "sk-test"}, nil, nil)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"prompt":"List /","model":"gpt-5-mini","effort":"low"}`)
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/probe", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("relay status: %d body: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != upstreamBody {
		t.Fatalf("body not relayed verbatim: %q", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
	if got.Model != "gpt-5-mini" || got.Reasoning.Effort != "low" {
		t.Fatalf("overrides not forwarded: %#v", got)
	}
	if got.Input[0].Content[0].Text != "List /" {
		t.Fatalf("prompt override not forwarded: %q", got.Input[0].Content[0].Text)
	}
	if got.Text.Verbosity != "medium" {
		t.Fatalf("unset override should keep configured value, got %q", got.Text.Verbosity)
	}
}

func TestProbeRelaysUpstreamErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer ts.Close()

	srv := New(relayConfig(), openai.Upstream{BaseURL: ts.URL, APIKey: "sk-test"}, nil, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/probe", strings.NewReader(`{}`)))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("upstream status not relayed: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rate limited") {
		t.Fatalf("upstream error body not relayed: %q", rec.Body.String())
	}
}

func TestProbeRejectsInvalidLevels(t *testing.T) {
	srv := New(relayConfig(), openai.Upstream{BaseURL: "http://unused"}, nil, nil)
	for _, body := range []string{`{"verbosity":"extreme"}`, `{"effort":"max"}`} {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/probe", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
	}
}

func TestProbeUnreachableUpstreamIsBadGateway(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close()

	srv := New(relayConfig(), openai.Upstream{BaseURL: ts.URL, APIKey: "sk-test"}, nil, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/probe", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Type string `json:"type"`
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("error envelope not json: %v", err)
	}
	if envelope.Error.Code != "upstream_unreachable" {
		t.Fatalf("unexpected error code: %q", envelope.Error.Code)
	}
}

func TestLogsWithoutStoreIsNotImplemented(t *testing.T) {
	srv := New(relayConfig(), openai.Upstream{BaseURL: "http://unused"}, nil, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}
