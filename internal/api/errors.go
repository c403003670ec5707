package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// FailureKind tags every Gateway failure with exactly one category.
type FailureKind string

const (
	FailureBadRequest   FailureKind = "bad_request"   // 400
	FailureUnauthorized FailureKind = "unauthorized"  // 401
	FailureForbidden    FailureKind = "forbidden"     // 403
	FailureNotFound     FailureKind = "not_found"     // 404
	FailureServer       FailureKind = "server_error"  // 500+
	FailureNetwork      FailureKind = "network_error" // no response (DNS, timeout, offline)
	FailureUnknown      FailureKind = "unknown_error"
)

// Error is the single failure type the Gateway surfaces to callers.
// Message is always non-empty and safe to show to the operator as-is.
// HTTPStatus is 0 when no response was received.
type Error struct {
	Kind       FailureKind
	Message    string
	HTTPStatus int
	// Detail carries the server's own message when it sent one.
	Detail string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Detail) != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// AsError unwraps err into the Gateway's tagged failure, if it is one.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// translateStatus maps an HTTP status to a tagged failure. The mapping is
// total: every status produces a kind and a non-empty message.
func translateStatus(status int, serverMsg string) *Error {
	e := &Error{HTTPStatus: status, Detail: strings.TrimSpace(serverMsg)}
	switch {
	case status == 400:
		e.Kind = FailureBadRequest
		e.Message = "Invalid request"
	case status == 401:
		e.Kind = FailureUnauthorized
		e.Message = "Unauthorized access"
	case status == 403:
		e.Kind = FailureForbidden
		e.Message = "Access denied"
	case status == 404:
		e.Kind = FailureNotFound
		e.Message = "Resource not found"
	case status >= 500:
		e.Kind = FailureServer
		e.Message = "Server error. Please try again later."
	default:
		e.Kind = FailureUnknown
		e.Message = fmt.Sprintf("Request failed (HTTP %d)", status)
	}
	return e
}

// translateTransport maps a request-never-completed error (timeouts included)
// to a tagged failure.
func translateTransport(err error) *Error {
	if err == nil {
		return &Error{Kind: FailureUnknown, Message: "Request failed"}
	}
	var ne net.Error
	if errors.As(err, &ne) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: FailureNetwork, Message: "Network error. Please check your connection.", Detail: err.Error()}
	}
	// url.Error wraps most transport failures; without a response they are all
	// network-shaped from the operator's point of view.
	if strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "no such host") ||
		strings.Contains(err.Error(), "Client.Timeout") {
		return &Error{Kind: FailureNetwork, Message: "Network error. Please check your connection.", Detail: err.Error()}
	}
	return &Error{Kind: FailureUnknown, Message: "Request failed", Detail: err.Error()}
}
