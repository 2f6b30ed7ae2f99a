package usecase

import "fmt"

type ErrorCode string

const (
	ErrorUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrorInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrorUpstream covers transient provider failures: timeouts, rate
	// limits, network errors, 5xx responses, blank completions.
	ErrorUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrorProvider covers fatal provider failures: rejected requests,
	// invalid or missing credentials.
	ErrorProvider ErrorCode = "PROVIDER_ERROR"
	ErrorInternal ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
