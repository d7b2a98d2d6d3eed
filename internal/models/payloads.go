package models

// These structs define the JSON payloads returned by the service outside of
// the document bodies themselves.

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// APIErrorBody is the JSON error shape returned by the generic REST backend.
// Servers disagree on the key, so all common ones are accepted.
type APIErrorBody struct {
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Text returns the first non-empty message carried by the body.
func (b APIErrorBody) Text() string {
	switch {
	case b.Detail != "":
		return b.Detail
	case b.Message != "":
		return b.Message
	default:
		return b.Error
	}
}
