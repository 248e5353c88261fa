package produs

import (
	"encoding/json"
	"fmt"

	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// The error sentinel and type live at the port boundary so driving adapters
// can match them without importing this package; they are re-exported here for
// callers that already hold a *Client.
var ErrSessionExpired = driven.ErrSessionExpired

// RequestError aliases the port-level error type.
type RequestError = driven.RequestError

// newRequestError builds a RequestError from a response body, tolerating
// bodies that are empty or not JSON.
func newRequestError(status int, body []byte) *RequestError {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	detail := payload.Detail
	if detail == "" {
		detail = payload.Message
	}
	if detail == "" {
		detail = fmt.Sprintf("Error %d", status)
	}

	return &RequestError{Status: status, Detail: detail}
}
