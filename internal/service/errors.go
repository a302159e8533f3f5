package service

import "errors"

// Sentinel errors surfaced by the service layer. Handlers map these onto
// HTTP status codes; anything else is treated as an internal error.
var (
	ErrNotFound             = errors.New("record not found")
	ErrValidation           = errors.New("validation failed")
	ErrConflict             = errors.New("conflict")
	ErrImmutableField       = errors.New("field cannot be changed")
	ErrNothingToUpdate      = errors.New("nothing to update")
	ErrForbidden            = errors.New("operation not allowed for this user")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserInactive         = errors.New("user is inactive")
	ErrEmailExists          = errors.New("email already registered")
	ErrPlacaExists          = errors.New("plate already registered")
	ErrDuplicateOferta      = errors.New("carrier already has an offer on this load")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrTokenInvalid         = errors.New("token invalid or expired")
	ErrTokenUsed            = errors.New("token already used")
	ErrWeakPassword         = errors.New("password does not meet policy")
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha configuration invalid")
	ErrQueueUnavailable     = errors.New("queue unavailable")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)

// fieldError attaches a field name and message to a sentinel, so handlers can
// report which input failed while errors.Is still matches the sentinel.
type fieldError struct {
	sentinel error
	field    string
	message  string
}

func (e fieldError) Error() string {
	if e.field == "" {
		return e.message
	}
	return e.field + ": " + e.message
}

func (e fieldError) Is(target error) bool {
	return target == e.sentinel
}

// Field reports the offending input field, if known.
func (e fieldError) Field() string {
	return e.field
}

func validationError(field, message string) error {
	return fieldError{sentinel: ErrValidation, field: field, message: message}
}

func immutableError(field string) error {
	return fieldError{sentinel: ErrImmutableField, field: field, message: "field cannot be changed after creation"}
}
