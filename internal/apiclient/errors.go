package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a request the remote API rejected. Auth failures and server
// failures are not told apart.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Rejected builds an Error for a response that reported failure in its body
func Rejected(statusCode int, message string) *Error {
	if message == "" {
		message = "API error"
	}
	return &Error{StatusCode: statusCode, Message: message}
}

func newError(statusCode int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	msg := fmt.Sprintf("request failed with status code %d", statusCode)
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			msg = payload.Message
		case payload.Error != "":
			msg = payload.Error
		}
	}

	return &Error{StatusCode: statusCode, Message: msg}
}

// StatusCode returns the HTTP status of a rejected request, or 0 when err did
// not come from a response (network failure, cancellation, decoding).
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
