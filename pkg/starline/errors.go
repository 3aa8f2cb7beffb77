package starline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates the caller omitted a token or user id that an operation requires.
	ErrInvalidParams = errors.New("incorrect param values")
	// ErrEmptyCode indicates FetchToken was called without an application code.
	ErrEmptyCode = errors.New("application code is empty")
)

// ResponseError indicates the server answered but the answer could not be used: the status was
// not 200, the body was empty, or an expected field or cookie was missing. The same Message was
// passed to the Client's Logger.
type ResponseError struct {
	Method     string
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Message)
}

// IsResponseError returns true if err is, or wraps, a *ResponseError.
func IsResponseError(err error) bool {
	var rspErr *ResponseError
	return errors.As(err, &rspErr)
}
