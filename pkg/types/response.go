// Package types holds the JSON envelopes shared by every endpoint.
package types

// SuccessEnvelope wraps all successful responses as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Details is only populated
// for codes whose metadata allows exposing it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps all failed responses as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
