package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/usecase/interfaces"
)

const apiPrefix = "/api"

// ProposalsClient talks to the proposals backend over HTTP. It performs
// exactly one request per call and never retries.
type ProposalsClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.IProposalBackend = (*ProposalsClient)(nil)

// NewProposalsClient builds a client rooted at baseURL (for example
// http://localhost:5000). A zero timeout leaves requests bounded only by the
// caller's context.
func NewProposalsClient(baseURL string, timeout time.Duration) *ProposalsClient {
	return &ProposalsClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Do sends payload (when non-empty) as the JSON body and returns the backend
// status and raw body. Any status is a successful call; only transport
// failures return an error.
func (c *ProposalsClient) Do(ctx context.Context, method, path string, payload json.RawMessage) (entities.BackendResponse, error) {
	url := c.baseURL + apiPrefix + path

	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return entities.BackendResponse{}, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[proposal][backend] %s %s transport error: %v", method, url, err)
		return entities.BackendResponse{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[proposal][backend] %s %s read body error status=%d: %v", method, url, resp.StatusCode, err)
		return entities.BackendResponse{}, fmt.Errorf("read response body: %w", err)
	}

	log.Printf("[proposal][backend] %s %s status=%d body_len=%d", method, url, resp.StatusCode, len(raw))
	return entities.BackendResponse{StatusCode: resp.StatusCode, Body: raw}, nil
}
