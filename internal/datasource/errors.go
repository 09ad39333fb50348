package datasource

import "errors"

// Error represents errors from data source operations
type Error struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e Error) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap returns the underlying error.
func (e Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's code.
func (e Error) Is(target error) bool {
	return codeSentinels[e.Code] == target
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
)

// Sentinels matched by errors.Is against an Error's code
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("data not found")
	ErrInvalidData       = errors.New("invalid data format")
	ErrNetworkError      = errors.New("network error")
	ErrServerError       = errors.New("server error")
)

var codeSentinels = map[string]error{
	ErrCodeRateLimitExceeded: ErrRateLimitExceeded,
	ErrCodeNotFound:          ErrNotFound,
	ErrCodeInvalidData:       ErrInvalidData,
	ErrCodeNetworkError:      ErrNetworkError,
	ErrCodeServerError:       ErrServerError,
}

// NewError creates a new data source error
func NewError(source, code, message string, err error) Error {
	return Error{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
