package responses

type Request struct {
	Model     string           `json:"model"`
	Input     []InputMessage   `json:"input"`
	Text      *TextConfig      `json:"text,omitempty"`
	Reasoning *ReasoningConfig `json:"reasoning,omitempty"`
	Tools     []Tool           `json:"tools,omitempty"`
	Store     bool             `json:"store"`
	Include   []string         `json:"include,omitempty"`
}

type InputMessage struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type TextConfig struct {
	Format    *TextFormat `json:"format,omitempty"`
	Verbosity string      `json:"verbosity,omitempty"`
}

type TextFormat struct {
	Type string `json:"type"`
}

type ReasoningConfig struct {
	Effort string `json:"effort,omitempty"`
}

// Tool is the "mcp" descriptor variant: it names a remote tool server the
// model may delegate to, an allow-list of the tools it may invoke there, and
// an opaque authorization blob forwarded uninterpreted.
type Tool struct {
	Type            string   `json:"type"`
	ServerLabel     string   `json:"server_label,omitempty"`
	ServerURL       string   `json:"server_url,omitempty"`
	Authorization   string   `json:"authorization,omitempty"`
	AllowedTools    []string `json:"allowed_tools,omitempty"`
	RequireApproval string   `json:"require_approval,omitempty"`
}
