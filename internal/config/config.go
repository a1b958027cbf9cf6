package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mcp-probe/internal/crypto"
)

const (
	DefaultBaseURL   = "https://api.openai.com"
	DefaultModel     = "gpt-5"
	DefaultPrompt    = "Please test all mcp tools"
	DefaultVerbosity = "medium"
	DefaultEffort    = "medium"
	DefaultMCPLabel  = "ftp"
	DefaultMCPURL    = "https://ftpmcp.azurewebsites.net/mcp"
)

// DefaultAllowedTools is the FTP tool allow-list sent when
// MCPPROBE_MCP_ALLOWED_TOOLS is unset. Order matters and is preserved on
// the wire. "ftp_retreiveFile" is spelled the way the remote server
// registers it.
var DefaultAllowedTools = []string{
	"ftp_makeDirectory",
	"ftp_getModifiedTime",
	"ftp_removeDirectory",
	"ftp_uploadFile",
	"ftp_getFileSize",
	"ftp_writeFile",
	"ftp_deleteFile",
	"ftp_retreiveFile",
	"ftp_rename",
	"ftp_listDirectory",
}

var DefaultInclude = []string{
	"reasoning.encrypted_content",
	"web_search_call.action.sources",
}

type Config struct {
	APIKey  string
	BaseURL string

	Model     string
	Prompt    string
	Verbosity string
	Effort    string

	MCPLabel         string
	MCPURL           string
	MCPAuthorization string
	MCPAllowedTools  []string

	Store   bool
	Include []string

	MySQLDSN   string
	ListenAddr string
}

// Load reads the whole configuration from the environment once. The only
// required value is the API key; everything else falls back to the fixed
// probe literals.
func Load() (Config, error) {
	key := firstEnv("OPENAI_API_KEY", "MCPPROBE_API_KEY")
	if key == "" {
		return Config{}, errors.New("missing OPENAI_API_KEY")
	}

	auth := strings.TrimSpace(os.Getenv("MCPPROBE_MCP_AUTHORIZATION"))
	if enc := strings.TrimSpace(os.Getenv("MCPPROBE_AUTH_ENC")); enc != "" {
		dec, err := decryptAuth(enc, os.Getenv("MCPPROBE_ENC_KEY"))
		if err != nil {
			return Config{}, fmt.Errorf("decrypt MCPPROBE_AUTH_ENC: %w", err)
		}
		auth = dec
	}

	cfg := Config{
		APIKey:  key,
		BaseURL: getenvDefault("OPENAI_BASE_URL", DefaultBaseURL),

		Model:     getenvDefault("MCPPROBE_MODEL", DefaultModel),
		Prompt:    getenvDefault("MCPPROBE_PROMPT", DefaultPrompt),
		Verbosity: getenvDefault("MCPPROBE_VERBOSITY", DefaultVerbosity),
		Effort:    getenvDefault("MCPPROBE_EFFORT", DefaultEffort),

		MCPLabel:         getenvDefault("MCPPROBE_MCP_LABEL", DefaultMCPLabel),
		MCPURL:           getenvDefault("MCPPROBE_MCP_URL", DefaultMCPURL),
		MCPAuthorization: auth,
		MCPAllowedTools:  splitList(getenvDefault("MCPPROBE_MCP_ALLOWED_TOOLS", "")),

		Store:   os.Getenv("MCPPROBE_NO_STORE") != "1",
		Include: append([]string(nil), DefaultInclude...),

		MySQLDSN:   strings.TrimSpace(os.Getenv("MCPPROBE_MYSQL_DSN")),
		ListenAddr: getenvDefault("LISTEN_ADDR", ":8080"),
	}
	if len(cfg.MCPAllowedTools) == 0 {
		cfg.MCPAllowedTools = append([]string(nil), DefaultAllowedTools...)
	}
	return cfg, nil
}

func decryptAuth(encB64, keyB64 string) (string, error) {
	if strings.TrimSpace(keyB64) == "" {
		return "", errors.New("MCPPROBE_ENC_KEY not set")
	}
	box, err := crypto.NewAESGCMFromBase64Key(strings.TrimSpace(keyB64))
	if err != nil {
		return "", err
	}
	return box.DecryptBase64(encB64)
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
