package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mcp-probe/internal/proto/responses"
	"mcp-probe/internal/provider/openai"
)

// Dispatch marshals the request, sends it upstream, and reads the full body.
// The body is returned verbatim; it is only inspected when building the
// error for a non-2xx status. There is no retry and no local timeout.
func Dispatch(ctx context.Context, up openai.Upstream, req responses.Request) ([]byte, int, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := openai.DoResponses(ctx, up, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("responses call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp.StatusCode, fmt.Errorf("upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, resp.StatusCode, nil
}
