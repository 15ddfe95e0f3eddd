package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/usecase/interfaces"
)

var (
	ErrMissingRequiredFields    = errors.New("missing required fields")
	ErrInvalidProposalPayload   = errors.New("invalid proposal payload")
	ErrInvalidProposalID        = errors.New("invalid proposal id")
	ErrBackendUnavailable       = errors.New("proposals backend unavailable")
	ErrMalformedBackendResponse = errors.New("malformed proposals backend response")
)

// BackendRejectionError is a non-2xx answer from the proposals backend.
// StatusCode and Message are relayed to the caller unchanged.
type BackendRejectionError struct {
	StatusCode int
	Message    string
}

func (e *BackendRejectionError) Error() string {
	return fmt.Sprintf("proposals backend rejected request: status=%d error=%q", e.StatusCode, e.Message)
}

const (
	proposalsPath      = "/proposals"
	proposalRawBodyKey = "proposalRawBody"
)

var deleteSuccessBody = json.RawMessage(`{"success":true}`)

// IProposalUseCase is the CRUD proxy in front of the proposals backend.
//
// Every operation issues exactly one backend call and never retries.
type IProposalUseCase interface {
	List(ctx context.Context) (entities.ProxyResult, error)
	Get(ctx context.Context, id string) (entities.ProxyResult, error)
	Create(ctx context.Context, payload json.RawMessage) (entities.ProxyResult, error)
	Update(ctx context.Context, id string, payload json.RawMessage) (entities.ProxyResult, error)
	Delete(ctx context.Context, id string) (entities.ProxyResult, error)
}

type ProposalUseCase struct {
	backend   interfaces.IProposalBackend
	sanitizer interfaces.IBodySanitizer
	metrics   interfaces.IProxyMetrics
}

var _ IProposalUseCase = (*ProposalUseCase)(nil)

// NewProposalUseCase wires the proxy. sanitizer and metrics may be nil.
func NewProposalUseCase(backend interfaces.IProposalBackend, sanitizer interfaces.IBodySanitizer, metrics interfaces.IProxyMetrics) *ProposalUseCase {
	return &ProposalUseCase{backend: backend, sanitizer: sanitizer, metrics: metrics}
}

// proxyOperation describes one forwarded call.
type proxyOperation struct {
	name                string
	method              string
	path                string
	requireClientFields bool
	failureMessage      string
	sanitizeSuccess     bool
	discardSuccessBody  bool
	successAsOK         bool // answer 200 for any 2xx from the backend
}

func (u *ProposalUseCase) List(ctx context.Context) (entities.ProxyResult, error) {
	return u.forward(ctx, proxyOperation{
		name:            "list",
		method:          http.MethodGet,
		path:            proposalsPath,
		failureMessage:  "Failed to fetch proposals",
		sanitizeSuccess: true,
		successAsOK:     true,
	}, nil)
}

func (u *ProposalUseCase) Get(ctx context.Context, id string) (entities.ProxyResult, error) {
	path, err := proposalPath(id)
	if err != nil {
		return entities.ProxyResult{}, err
	}
	return u.forward(ctx, proxyOperation{
		name:            "get",
		method:          http.MethodGet,
		path:            path,
		failureMessage:  "Failed to fetch proposal",
		sanitizeSuccess: true,
		successAsOK:     true,
	}, nil)
}

func (u *ProposalUseCase) Create(ctx context.Context, payload json.RawMessage) (entities.ProxyResult, error) {
	return u.forward(ctx, proxyOperation{
		name:                "create",
		method:              http.MethodPost,
		path:                proposalsPath,
		requireClientFields: true,
		failureMessage:      "Failed to create proposal",
	}, payload)
}

func (u *ProposalUseCase) Update(ctx context.Context, id string, payload json.RawMessage) (entities.ProxyResult, error) {
	path, err := proposalPath(id)
	if err != nil {
		return entities.ProxyResult{}, err
	}
	return u.forward(ctx, proxyOperation{
		name:                "update",
		method:              http.MethodPut,
		path:                path,
		requireClientFields: true,
		failureMessage:      "Failed to update proposal",
	}, payload)
}

func (u *ProposalUseCase) Delete(ctx context.Context, id string) (entities.ProxyResult, error) {
	path, err := proposalPath(id)
	if err != nil {
		return entities.ProxyResult{}, err
	}
	return u.forward(ctx, proxyOperation{
		name:               "delete",
		method:             http.MethodDelete,
		path:               path,
		failureMessage:     "Failed to delete proposal",
		discardSuccessBody: true,
	}, nil)
}

// forward is the single relay path shared by every operation: pre-check,
// one backend call, then relay of the backend status and JSON.
func (u *ProposalUseCase) forward(ctx context.Context, op proxyOperation, payload json.RawMessage) (entities.ProxyResult, error) {
	log.Printf("[proposal][usecase] %s start method=%s path=%s payload_len=%d", op.name, op.method, op.path, len(payload))

	if op.requireClientFields {
		if err := checkRequiredFields(payload); err != nil {
			log.Printf("[proposal][usecase] %s rejected before backend call err=%v", op.name, err)
			return entities.ProxyResult{}, err
		}
	}

	started := time.Now()
	resp, err := u.backend.Do(ctx, op.method, op.path, payload)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		u.observeBackendCall(op.name, 0, elapsed)
		log.Printf("[proposal][usecase] %s backend call failed err=%v", op.name, err)
		return entities.ProxyResult{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	u.observeBackendCall(op.name, resp.StatusCode, elapsed)

	if !resp.OK() {
		message, err := rejectionMessage(resp.Body, op.failureMessage)
		if err != nil {
			log.Printf("[proposal][usecase] %s backend error body unreadable status=%d err=%v", op.name, resp.StatusCode, err)
			return entities.ProxyResult{}, err
		}
		log.Printf("[proposal][usecase] %s backend rejected status=%d error=%q", op.name, resp.StatusCode, message)
		return entities.ProxyResult{}, &BackendRejectionError{StatusCode: resp.StatusCode, Message: message}
	}

	if op.discardSuccessBody {
		log.Printf("[proposal][usecase] %s success status=%d", op.name, resp.StatusCode)
		return entities.ProxyResult{StatusCode: http.StatusOK, Body: deleteSuccessBody}, nil
	}

	if !json.Valid(resp.Body) {
		log.Printf("[proposal][usecase] %s backend success body is not json status=%d body_len=%d", op.name, resp.StatusCode, len(resp.Body))
		return entities.ProxyResult{}, ErrMalformedBackendResponse
	}

	body := json.RawMessage(resp.Body)
	if op.sanitizeSuccess && u.sanitizer != nil {
		body = u.sanitizeBody(body)
	}
	status := resp.StatusCode
	if op.successAsOK {
		status = http.StatusOK
	}
	log.Printf("[proposal][usecase] %s success status=%d backend_status=%d body_len=%d", op.name, status, resp.StatusCode, len(body))
	return entities.ProxyResult{StatusCode: status, Body: body}, nil
}

func (u *ProposalUseCase) observeBackendCall(operation string, statusCode int, seconds float64) {
	if u.metrics == nil {
		return
	}
	u.metrics.ObserveBackendCall(operation, statusCode, seconds)
}

func proposalPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidProposalID
	}
	return proposalsPath + "/" + url.PathEscape(id), nil
}

// checkRequiredFields is the proxy's only payload rule: the three client
// contact fields must be present. The payload itself is forwarded untouched.
func checkRequiredFields(payload json.RawMessage) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return ErrInvalidProposalPayload
	}
	var contact struct {
		ClientName  string `json:"clientName"`
		ClientPhone string `json:"clientPhone"`
		ClientEmail string `json:"clientEmail"`
	}
	if err := json.Unmarshal(payload, &contact); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProposalPayload, err)
	}
	if strings.TrimSpace(contact.ClientName) == "" ||
		strings.TrimSpace(contact.ClientPhone) == "" ||
		strings.TrimSpace(contact.ClientEmail) == "" {
		return ErrMissingRequiredFields
	}
	return nil
}

// rejectionMessage pulls the `error` string out of a backend error body,
// falling back to the operation's generic message when it is absent, empty
// or not a string. A body that is not JSON is itself a failure.
func rejectionMessage(body []byte, fallback string) (string, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedBackendResponse, err)
	}
	if decoded == nil {
		return "", ErrMalformedBackendResponse
	}
	if obj, ok := decoded.(map[string]any); ok {
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return msg, nil
		}
	}
	return fallback, nil
}

// sanitizeBody rewrites proposalRawBody in an object or in each object of an
// array. Bodies of any other shape are returned unchanged.
func (u *ProposalUseCase) sanitizeBody(body json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return body
	}
	switch trimmed[0] {
	case '{':
		if out, ok := u.sanitizeObject(trimmed); ok {
			return out
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return body
		}
		changed := false
		for i := range items {
			if out, ok := u.sanitizeObject(items[i]); ok {
				items[i] = out
				changed = true
			}
		}
		if !changed {
			return body
		}
		out, err := json.Marshal(items)
		if err != nil {
			log.Printf("[proposal][usecase] sanitize marshal failed err=%v", err)
			return body
		}
		return out
	}
	return body
}

func (u *ProposalUseCase) sanitizeObject(raw json.RawMessage) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	field, ok := obj[proposalRawBodyKey]
	if !ok {
		return nil, false
	}
	var html string
	if err := json.Unmarshal(field, &html); err != nil {
		return nil, false
	}
	clean, err := json.Marshal(u.sanitizer.SanitizeHTML(html))
	if err != nil {
		return nil, false
	}
	obj[proposalRawBodyKey] = clean
	out, err := json.Marshal(obj)
	if err != nil {
		return nil, false
	}
	return out, true
}
