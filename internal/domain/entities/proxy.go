package entities

import "encoding/json"

// BackendResponse is what the proposals backend answered, untouched.
type BackendResponse struct {
	StatusCode int
	Body       []byte
}

func (r BackendResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ProxyResult is what the gateway relays to its caller.
type ProxyResult struct {
	StatusCode int
	Body       json.RawMessage
}
