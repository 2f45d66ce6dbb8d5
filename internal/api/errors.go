package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind buckets every way a backend call can fail. Callers branch on the
// kind, not on raw status codes.
type Kind string

const (
	// KindAuthExpired is a 401. The stored token has already been cleared
	// by the time the caller sees this.
	KindAuthExpired Kind = "auth_expired"
	// KindForbidden is a 403: authenticated but not allowed.
	KindForbidden Kind = "forbidden"
	// KindConflict is a 409, e.g. registering an email twice.
	KindConflict Kind = "conflict"
	// KindValidation covers 400/422 responses and client-side input
	// rejections that never reach the network.
	KindValidation Kind = "validation"
	// KindServer covers 5xx responses.
	KindServer Kind = "server"
	// KindNetwork is a transport failure before any response arrived.
	KindNetwork Kind = "network"
	// KindUnexpectedShape is a 2xx whose body failed the local shape check.
	KindUnexpectedShape Kind = "unexpected_shape"
)

// Error is the failure type every Client method returns.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == kind
}

// validationErr builds a client-side rejection that skips the network.
func validationErr(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func shapeErr(format string, args ...any) *Error {
	return &Error{Kind: KindUnexpectedShape, Message: fmt.Sprintf(format, args...)}
}

// fastapiDetail mirrors a FastAPI validation failure entry.
type fastapiDetail struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// classify maps a non-2xx response to an Error. The body is parsed on a
// best-effort basis; an unreadable body still produces a usable message.
func classify(status int, body []byte) *Error {
	switch {
	case status == 401:
		return &Error{Kind: KindAuthExpired, Status: status,
			Message: "your session has expired, please login again"}
	case status == 403:
		return &Error{Kind: KindForbidden, Status: status,
			Message: "you do not have permission to access this resource"}
	case status == 409:
		return &Error{Kind: KindConflict, Status: status, Message: detailMessage(body, "conflict")}
	case status == 400 || status == 422:
		return &Error{Kind: KindValidation, Status: status, Message: detailMessage(body, "invalid request")}
	case status == 502:
		return &Error{Kind: KindServer, Status: status,
			Message: "the server is currently unavailable, please try again later"}
	case status >= 500:
		return &Error{Kind: KindServer, Status: status, Message: detailMessage(body, fmt.Sprintf("server error: %d", status))}
	default:
		return &Error{Kind: KindServer, Status: status, Message: detailMessage(body, fmt.Sprintf("unexpected status: %d", status))}
	}
}

// detailMessage extracts the `detail` field FastAPI puts in error bodies.
// A string detail is used verbatim; a list of validation entries is walked
// into one "field: msg" joined message.
func detailMessage(body []byte, fallback string) string {
	var withString struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &withString); err == nil && withString.Detail != "" {
		return withString.Detail
	}

	var withList struct {
		Detail []fastapiDetail `json:"detail"`
	}
	if err := json.Unmarshal(body, &withList); err == nil && len(withList.Detail) > 0 {
		parts := make([]string, 0, len(withList.Detail))
		for _, d := range withList.Detail {
			msg := d.Msg
			if msg == "" {
				msg = "invalid data"
			}
			if field := locField(d.Loc); field != "" {
				msg = field + ": " + msg
			}
			parts = append(parts, msg)
		}
		return strings.Join(parts, ", ")
	}

	return fallback
}

// locField returns the second loc element, which FastAPI uses for the
// offending field name ("body" comes first).
func locField(loc []json.RawMessage) string {
	if len(loc) < 2 {
		return ""
	}
	var s string
	if err := json.Unmarshal(loc[1], &s); err != nil {
		return ""
	}
	return s
}
