package config

// Redact masks secrets (the API key, the MCP authorization blob) before they
// can reach a log line. It keeps just enough of the value to correlate
// configurations without exposing the credential.
func Redact(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-2:]
}
