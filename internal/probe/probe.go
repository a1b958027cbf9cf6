package probe

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"mcp-probe/internal/config"
	"mcp-probe/internal/metrics"
	"mcp-probe/internal/proto/responses"
	"mcp-probe/internal/provider/openai"
	"mcp-probe/internal/store"
)

// Build assembles the one probe request. Every field is taken verbatim from
// the configuration; nothing is reordered, deduplicated, or defaulted here.
func Build(cfg config.Config) responses.Request {
	return responses.Request{
		Model: cfg.Model,
		Input: []responses.InputMessage{{
			Role: "user",
			Content: []responses.ContentPart{{
				Type: "input_text",
				Text: cfg.Prompt,
			}},
		}},
		Text: &responses.TextConfig{
			Format:    &responses.TextFormat{Type: "text"},
			Verbosity: cfg.Verbosity,
		},
		Reasoning: &responses.ReasoningConfig{Effort: cfg.Effort},
		Tools: []responses.Tool{{
			Type:            "mcp",
			ServerLabel:     cfg.MCPLabel,
			ServerURL:       cfg.MCPURL,
			Authorization:   cfg.MCPAuthorization,
			AllowedTools:    cfg.MCPAllowedTools,
			RequireApproval: "never",
		}},
		Store:   cfg.Store,
		Include: cfg.Include,
	}
}

// Runner dispatches built requests. Metrics and Store are optional; a nil
// field disables that surface.
type Runner struct {
	Upstream openai.Upstream
	Metrics  *metrics.Metrics
	Store    *store.Store
	Out      io.Writer
}

// Run performs the one-shot probe: build, send, print the raw body. On
// failure nothing is written to Out.
func (r *Runner) Run(ctx context.Context, cfg config.Config) error {
	start := time.Now()
	req := Build(cfg)
	body, status, err := Dispatch(ctx, r.Upstream, req)
	r.observe(ctx, "oneshot", cfg, status, len(body), time.Since(start), err)
	if err != nil {
		return err
	}
	if _, werr := r.Out.Write(body); werr != nil {
		return fmt.Errorf("write response: %w", werr)
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, _ = io.WriteString(r.Out, "\n")
	}
	return nil
}

func (r *Runner) observe(ctx context.Context, mode string, cfg config.Config, status int, respBytes int, dur time.Duration, err error) {
	if r.Metrics != nil {
		r.Metrics.ObserveProbe(mode, status, dur)
	}
	if r.Store == nil {
		return
	}
	entry := store.ProbeLog{
		ID:            uuid.NewString(),
		Mode:          mode,
		Model:         cfg.Model,
		PromptBytes:   len(cfg.Prompt),
		Status:        status,
		LatencyMs:     dur.Milliseconds(),
		ResponseBytes: respBytes,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if ierr := r.Store.InsertProbeLog(ctx, entry); ierr != nil {
		log.Printf("probe: audit insert failed: %v", ierr)
	}
}
