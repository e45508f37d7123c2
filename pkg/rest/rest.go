// Package rest defines the uniform response envelope and the client error
// kind shared by all API operations.
package rest

import "net/http"

// Response is the envelope returned by every API operation. StatusCode is
// mirrored as the transport status when the envelope is serialized.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// NewResponse builds a success envelope.
func NewResponse(statusCode int, message string, data interface{}) *Response {
	return &Response{StatusCode: statusCode, Message: message, Data: data}
}

// Error is a deliberate client-facing error raised at validation
// checkpoints. Anything that is not a *rest.Error is treated as an
// unexpected server fault by the HTTP layer.
type Error struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a client error with an explicit status.
func NewError(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

// BadRequest builds a 400 client error.
func BadRequest(message string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: message}
}
