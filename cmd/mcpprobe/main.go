package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"mcp-probe/internal/config"
	"mcp-probe/internal/metrics"
	"mcp-probe/internal/probe"
	"mcp-probe/internal/provider/openai"
	"mcp-probe/internal/relay"
	"mcp-probe/internal/store"
)

func main() {
	args := os.Args[1:]
	serve := len(args) > 0 && args[0] == "serve"
	if serve {
		args = args[1:]
	}

	fs := flag.NewFlagSet("mcpprobe", flag.ExitOnError)
	var (
		model     = fs.String("model", "", "model override (default MCPPROBE_MODEL)")
		prompt    = fs.String("prompt", "", "prompt override (default MCPPROBE_PROMPT)")
		verbosity = fs.String("verbosity", "", "text verbosity: low|medium|high")
		effort    = fs.String("effort", "", "reasoning effort: low|medium|high")
		listen    = fs.String("listen", "", "listen address for serve mode (default LISTEN_ADDR)")
	)
	_ = fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if strings.TrimSpace(*model) != "" {
		cfg.Model = strings.TrimSpace(*model)
	}
	if strings.TrimSpace(*prompt) != "" {
		cfg.Prompt = strings.TrimSpace(*prompt)
	}
	if strings.TrimSpace(*verbosity) != "" {
		cfg.Verbosity = strings.TrimSpace(*verbosity)
	}
	if strings.TrimSpace(*effort) != "" {
		cfg.Effort = strings.TrimSpace(*effort)
	}
	if strings.TrimSpace(*listen) != "" {
		cfg.ListenAddr = strings.TrimSpace(*listen)
	}

	up := openai.Upstream{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey}

	var st *store.Store
	if cfg.MySQLDSN != "" {
		st, err = store.Open(cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("store open: %v", err)
		}
		defer st.Close()
	}

	if serve {
		m := metrics.New()
		srv := relay.New(cfg, up, m, st)
		log.Printf("relay listening on %s (upstream %s, key %s)", cfg.ListenAddr, cfg.BaseURL, config.Redact(cfg.APIKey))
		if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
			log.Fatalf("serve: %v", err)
		}
		return
	}

	runner := &probe.Runner{Upstream: up, Store: st, Out: os.Stdout}
	if err := runner.Run(context.Background(), cfg); err != nil {
		log.Fatalf("probe: %v", err)
	}
}
