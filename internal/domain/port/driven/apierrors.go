package driven

import "errors"

// ErrSessionExpired is returned by Backend operations once an authorization
// failure could not be recovered by the refresh flow. Local credentials have
// already been cleared when a caller sees it; the only remedy is a new login.
var ErrSessionExpired = errors.New("session expired")

// RequestError is any non-2xx Backend response that is not a recoverable 401.
// Detail carries the server-supplied "detail" or "message" field when present,
// or a generic "Error <status>" fallback.
type RequestError struct {
	Status int
	Detail string
}

// Error returns the server-supplied detail or the generic fallback.
func (e *RequestError) Error() string {
	return e.Detail
}
