package adapter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Sentinel errors for adapter operations.
var (
	// ErrNotSupported is returned by operations the REST protocol has no
	// endpoint for. No request is made.
	ErrNotSupported = errors.New("not supported")
	// ErrMissingID is returned when an operation addresses a single record
	// but no id was given.
	ErrMissingID = errors.New("record id is required")
	// ErrUnknownModel is returned when a model has not been defined.
	ErrUnknownModel = errors.New("model not defined")
)

// HTTPError is returned when the remote API answers with a non-2xx status.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	// Code is the machine-readable error code from the response body, if any.
	Code string
	// Message is the human-readable message from the response body, if any.
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// IsNotFound reports whether err is an HTTPError with status 404.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

// newHTTPError builds an HTTPError from a response. Both
// {"code","message"} and {"error","message"} bodies are understood.
func newHTTPError(method, path string, status int, body []byte) *HTTPError {
	e := &HTTPError{Method: method, Path: path, StatusCode: status}
	if !gjson.ValidBytes(body) {
		return e
	}
	res := gjson.GetManyBytes(body, "code", "error", "message")
	e.Code = res[0].String()
	if e.Code == "" {
		e.Code = res[1].String()
	}
	e.Message = res[2].String()
	return e
}
