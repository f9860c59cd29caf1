package graphql

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies gateway failures so callers can branch without matching
// on message text.
type Kind int

const (
	// KindConfig means the gateway itself is misconfigured (bad endpoint,
	// malformed query document). Fatal at startup, never produced mid-request.
	KindConfig Kind = iota + 1

	// KindTransport covers network and timeout failures reaching the upstream.
	KindTransport

	// KindUpstreamHTTP means the upstream answered with a non-2xx status.
	KindUpstreamHTTP

	// KindUpstreamGraphQL means the response carried a non-empty errors array.
	KindUpstreamGraphQL

	// KindDecode means the response body was not valid JSON.
	KindDecode

	// KindNotFound means an expected top-level field was absent from an
	// otherwise successful response.
	KindNotFound

	// KindUnknownTool means the tool dispatcher was given an unrecognized name.
	KindUnknownTool
)

// String returns a short identifier for the kind.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindUpstreamHTTP:
		return "upstream_http"
	case KindUpstreamGraphQL:
		return "upstream_graphql"
	case KindDecode:
		return "decode"
	case KindNotFound:
		return "not_found"
	case KindUnknownTool:
		return "unknown_tool"
	default:
		return "unknown"
	}
}

// Error is the structured failure type shared by the executor and the
// operation handlers.
type Error struct {
	Kind    Kind
	Message string
	Status  int   // upstream HTTP status, set for KindUpstreamHTTP only
	Err     error // wrapped cause, when one exists
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindUpstreamHTTP && e.Status != 0 {
		return fmt.Sprintf("HTTP error %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain, or 0 when the error
// did not originate in this package.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}

// TransportError wraps a network-level failure talking to the upstream.
func TransportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: fmt.Sprintf("Network connection error: %v", err),
		Err:     err,
	}
}

// HTTPError reports a non-success upstream status with the response body.
func HTTPError(status int, body string) *Error {
	return &Error{
		Kind:    KindUpstreamHTTP,
		Message: body,
		Status:  status,
	}
}

// QueryError joins the upstream GraphQL error messages with "; ".
func QueryError(messages []string) *Error {
	return &Error{
		Kind:    KindUpstreamGraphQL,
		Message: "GraphQL API error: " + strings.Join(messages, "; "),
	}
}

// DecodeError wraps a malformed upstream response body.
func DecodeError(err error) *Error {
	return &Error{
		Kind:    KindDecode,
		Message: fmt.Sprintf("Invalid JSON response from Unraid API: %v", err),
		Err:     err,
	}
}

// NotFound reports an expected top-level field missing from the response.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// UnknownTool reports a tool-dispatch miss.
func UnknownTool(name string) *Error {
	return &Error{Kind: KindUnknownTool, Message: "Unknown tool: " + name}
}

// ConfigError reports a gateway misconfiguration.
func ConfigError(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}
