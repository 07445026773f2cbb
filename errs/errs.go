package errs

import (
	"errors"
	"strings"
)

var (
	// ErrMissingAPIKey indicates that a client was used without an API key.
	ErrMissingAPIKey = errors.New("missing api key")
	// ErrAPI is matched by every error payload returned by the Data API.
	ErrAPI = errors.New("youtube api error")
	// ErrInvalidStatistic indicates a statistics counter that is not an integer.
	ErrInvalidStatistic = errors.New("invalid statistic")
)

// Reason values reported by the Data API in error.errors[].reason.
const (
	ReasonQuotaExceeded = "quotaExceeded"
	ReasonKeyInvalid    = "keyInvalid"
	ReasonBadRequest    = "badRequest"
)

// APIError carries an error payload returned by the Data API.
type APIError struct {
	Code    int
	Message string
	Reasons []string
}

// Error returns the upstream message unchanged.
func (e *APIError) Error() string {
	return e.Message
}

// Is reports whether target is ErrAPI.
func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// HasReason reports whether the upstream error lists the given reason.
func (e *APIError) HasReason(reason string) bool {
	for _, r := range e.Reasons {
		if strings.EqualFold(r, reason) {
			return true
		}
	}
	return false
}

// IsQuotaExceeded returns true if err is an APIError caused by an exhausted quota.
func IsQuotaExceeded(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.HasReason(ReasonQuotaExceeded)
}

// IsKeyInvalid returns true if err is an APIError caused by a rejected API key.
func IsKeyInvalid(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.HasReason(ReasonKeyInvalid)
}
