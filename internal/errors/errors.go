package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthentication is returned when credentials cannot be validated.
	ErrAuthentication = errors.New("could not validate credentials")
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrInvalidToken is returned for any other token malformation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound is returned when a user lookup finds nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrInactiveUser is returned when a deactivated account authenticates.
	ErrInactiveUser = errors.New("user account is inactive")
	// ErrInsufficientPermissions is returned when the token lacks a required role.
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	// ErrEmailAlreadyExists is returned when registering an existing email.
	ErrEmailAlreadyExists = errors.New("email already registered")
	// ErrMemberNotFound is returned when a member profile is missing.
	ErrMemberNotFound = errors.New("member not found")
	// ErrMemberAlreadyExists is returned when promoting a user that already has a profile.
	ErrMemberAlreadyExists = errors.New("member already exists")
	// ErrRehearsalNotFound is returned when a rehearsal lookup finds nothing.
	ErrRehearsalNotFound = errors.New("rehearsal not found")
	// ErrDueNotFound is returned when a due lookup finds nothing.
	ErrDueNotFound = errors.New("due not found")
	// ErrEventNotFound is returned when a public event lookup finds nothing.
	ErrEventNotFound = errors.New("event not found")
	// ErrPageNotFound is returned for unknown static page slugs.
	ErrPageNotFound = errors.New("page not found")
	// ErrFileNotFound is returned when a stored file lookup finds nothing.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidAmount is returned when a due amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic 500 so internals never leak to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrAuthentication):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "AUTHENTICATION_FAILED")
	case errors.Is(err, ErrInactiveUser):
		return NewHTTPError(http.StatusForbidden, err.Error(), "INACTIVE_USER")
	case errors.Is(err, ErrInsufficientPermissions):
		return NewHTTPError(http.StatusForbidden, err.Error(), "INSUFFICIENT_PERMISSIONS")
	case errors.Is(err, ErrEmailAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_ALREADY_EXISTS")
	case errors.Is(err, ErrMemberAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MEMBER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMemberNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEMBER_NOT_FOUND")
	case errors.Is(err, ErrRehearsalNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REHEARSAL_NOT_FOUND")
	case errors.Is(err, ErrDueNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DUE_NOT_FOUND")
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EVENT_NOT_FOUND")
	case errors.Is(err, ErrPageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PAGE_NOT_FOUND")
	case errors.Is(err, ErrFileNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "FILE_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
