package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrMissingToken = errors.New("token response carries no access_token")
var ErrIncompleteIdentity = errors.New("identity record is missing id or username")

// FailureResponse is the part of a backend reply the normalizer inspects.
type FailureResponse struct {
	Status int
	Body   []byte
}

// RequestFailure is returned by the HTTP client adapter for every failed call.
//   - Response != nil: the server answered with a non-2xx status.
//   - Response == nil && RequestSent: the request left but nothing came back.
//   - otherwise the request could not be built.
type RequestFailure struct {
	Op          string
	Response    *FailureResponse
	RequestSent bool
	Err         error
}

func (f *RequestFailure) Error() string {
	switch {
	case f.Response != nil:
		return fmt.Sprintf("%s: status %d", f.Op, f.Response.Status)
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Op, f.Err)
	default:
		return f.Op + ": request failed"
	}
}

func (f *RequestFailure) Unwrap() error {
	return f.Err
}

// StatusOf returns the HTTP status carried by err, if a response was received.
func StatusOf(err error) (int, bool) {
	var rf *RequestFailure
	if errors.As(err, &rf) && rf.Response != nil {
		return rf.Response.Status, true
	}
	return 0, false
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == 401
}

// ValidationError is a form validation failure detected before any request.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, strings.Join(e.Fields[k], "; "))
	}
	return strings.Join(msgs, "; ")
}

// UiError is the canonical, backend-shape-independent error value rendered by
// the console. Status and Code are zero when unknown.
type UiError struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Status  int                 `json:"status,omitempty"`
	Code    string              `json:"code,omitempty"`
	Raw     any                 `json:"raw,omitempty"`
}

func (e UiError) Error() string {
	return e.Message
}
