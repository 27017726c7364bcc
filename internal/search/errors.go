package search

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Kind classifies a failed search.
type Kind string

const (
	KindInvalidRequest Kind = "invalid_request"
	KindUpstreamStatus Kind = "upstream_status"
	KindTransport      Kind = "transport"
	KindDecode         Kind = "decode"
)

// Client-facing messages.
const (
	MsgTitleRequired   = "Title is required"
	MsgTitleTooLong    = "The title's length is too big (over 500 characters)"
	MsgUpstreamStatus  = "External API error"
	msgTransportPrefix = "Upstream request failed: "
	msgDecodePrefix    = "Failed to parse upstream response: "
)

// Error is the single failure type produced by this package. Status is the
// HTTP status the failure maps to and Message is safe to show to callers;
// Cause carries the diagnostic detail and is only meant for logs.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var searchErr *Error
	if errors.As(err, &searchErr) && searchErr != nil {
		return searchErr, true
	}
	return nil, false
}

// IsKind reports whether err is a search error of the given kind.
func IsKind(err error, kind Kind) bool {
	searchErr, ok := AsError(err)
	return ok && searchErr.Kind == kind
}

func invalidRequestError(message string, cause error) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Status:  http.StatusBadRequest,
		Message: message,
		Cause:   cause,
	}
}

// upstreamStatusError mirrors the upstream status. Codes that are not client
// or server errors (an unfollowed redirect, say) become 502.
func upstreamStatusError(status int) *Error {
	mirrored := status
	if mirrored < 400 || mirrored > 599 {
		mirrored = http.StatusBadGateway
	}
	return &Error{
		Kind:    KindUpstreamStatus,
		Status:  mirrored,
		Message: MsgUpstreamStatus,
		Cause:   fmt.Errorf("upstream returned HTTP %d", status),
	}
}

// transportError strips the request URL from net/http errors so the message
// never echoes the upstream query back to the caller.
func transportError(err error) *Error {
	detail := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		detail = urlErr.Err
	}
	return &Error{
		Kind:    KindTransport,
		Status:  http.StatusBadGateway,
		Message: msgTransportPrefix + detail.Error(),
		Cause:   err,
	}
}

func decodeError(err error) *Error {
	return &Error{
		Kind:    KindDecode,
		Status:  http.StatusBadGateway,
		Message: msgDecodePrefix + err.Error(),
		Cause:   err,
	}
}
