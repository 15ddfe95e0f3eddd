package interfaces

import (
	"context"
	"encoding/json"

	"proposal_gateway/internal/domain/entities"
)

// IProposalBackend abstracts the external proposals service.
//
// Do sends exactly one request and returns whatever status/body came back.
// A non-nil error means the call itself failed (connection refused, context
// cancelled, unreadable body); HTTP error statuses are not errors here.
type IProposalBackend interface {
	Do(ctx context.Context, method, path string, payload json.RawMessage) (entities.BackendResponse, error)
}

// IBodySanitizer cleans backend-supplied HTML before it is relayed to browsers.
type IBodySanitizer interface {
	SanitizeHTML(html string) string
}

// IProxyMetrics records proxy traffic. Implementations must be nil-safe.
type IProxyMetrics interface {
	ObserveBackendCall(operation string, statusCode int, seconds float64)
	ObserveSubmission(outcome string)
}
