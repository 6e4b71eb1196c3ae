// client.go - HTTP client for a remote verification service.

package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient talks to a verification service over HTTP. It implements Client;
// any transport or protocol failure is returned as an error and never interpreted
// as a verification verdict.
type HTTPClient struct {
	url  string
	http *http.Client
}

// NewHTTPClient creates a client for the verify endpoint at url.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Verify implements Client.
func (c *HTTPClient) Verify(ctx context.Context, req *VerifyRequest) (bool, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return false, fmt.Errorf("encoding verify request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("building verify request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("verification service request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("verification service returned status %d", resp.StatusCode)
	}

	var out VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decoding verify response: %w", err)
	}
	return out.Verifies, nil
}
