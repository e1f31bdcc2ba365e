package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Kinds are disjoint.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidIPv6
	KindInvalidIPv4
	KindInvalidPort
	KindInvalidProtocol
	KindInvalidHost
	KindUnsupportedMethod
	KindConflictingBody
	KindInvalidHeader
	KindMalformedJSONInput
	KindNetwork
	KindHTTP
	KindMalformedJSONResponse
)

var kindNames = map[Kind]string{
	KindUnknown:               "Unknown",
	KindInvalidIPv6:           "InvalidIPv6",
	KindInvalidIPv4:           "InvalidIPv4",
	KindInvalidPort:           "InvalidPort",
	KindInvalidProtocol:       "InvalidProtocol",
	KindInvalidHost:           "InvalidHost",
	KindUnsupportedMethod:     "UnsupportedMethod",
	KindConflictingBody:       "ConflictingBody",
	KindInvalidHeader:         "InvalidHeader",
	KindMalformedJSONInput:    "MalformedJSONInput",
	KindNetwork:               "NetworkError",
	KindHTTP:                  "HTTPError",
	KindMalformedJSONResponse: "MalformedJSONResponse",
}

// String returns the kind name.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrInvalidIPv6           = &Error{Kind: KindInvalidIPv6}
	ErrInvalidIPv4           = &Error{Kind: KindInvalidIPv4}
	ErrInvalidPort           = &Error{Kind: KindInvalidPort}
	ErrInvalidProtocol       = &Error{Kind: KindInvalidProtocol}
	ErrInvalidHost           = &Error{Kind: KindInvalidHost}
	ErrUnsupportedMethod     = &Error{Kind: KindUnsupportedMethod}
	ErrConflictingBody       = &Error{Kind: KindConflictingBody}
	ErrInvalidHeader         = &Error{Kind: KindInvalidHeader}
	ErrMalformedJSONInput    = &Error{Kind: KindMalformedJSONInput}
	ErrNetwork               = &Error{Kind: KindNetwork}
	ErrHTTP                  = &Error{Kind: KindHTTP}
	ErrMalformedJSONResponse = &Error{Kind: KindMalformedJSONResponse}
)

// Error is a user-facing failure of one invocation.
type Error struct {
	Kind Kind

	// Status is the HTTP status code for KindHTTP.
	Status int

	// Detail adds context to the fixed message (parser detail, offending value).
	Detail string

	// Snippet is the start of the response body for KindHTTP.
	Snippet string

	// Err is the underlying cause, if any.
	Err error
}

// NewError creates an Error of the given kind.
func NewError(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: cause}
}

// Error returns the message shown to the user.
func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidIPv6:
		return "The URL contains an invalid IPv6 address."
	case KindInvalidIPv4:
		return "The URL contains an invalid IPv4 address."
	case KindInvalidPort:
		return "The URL contains an invalid port number."
	case KindInvalidProtocol:
		return "The URL does not have a valid base protocol."
	case KindInvalidHost:
		return "The URL does not contain a host."
	case KindUnsupportedMethod:
		return withDetail("Unsupported HTTP method", e.Detail, ".")
	case KindConflictingBody:
		return "-d and --json cannot be used together."
	case KindInvalidHeader:
		return withDetail("Invalid header", e.Detail, "")
	case KindMalformedJSONInput:
		return withDetail("Invalid JSON", e.Detail, "")
	case KindNetwork:
		return "Unable to connect to the server. Perhaps the network is offline or the server hostname cannot be resolved."
	case KindHTTP:
		return fmt.Sprintf("Request failed with status code: %d", e.Status)
	case KindMalformedJSONResponse:
		return withDetail("Invalid JSON in response body", e.Detail, "")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func withDetail(msg, detail, fallbackSuffix string) string {
	if detail == "" {
		return msg + fallbackSuffix
	}
	return msg + ": " + detail
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
