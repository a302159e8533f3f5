package public

import (
	"errors"

	"github.com/fretehub/fretehub/internal/http/response"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates the service sentinels into API responses.
// Validation-style errors echo the service message so the caller learns
// which field failed; unknown errors stay opaque.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "record not found", nil)
	case errors.Is(err, service.ErrForbidden):
		respondError(c, response.CodeForbidden, "operation not allowed", nil)
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrNothingToUpdate):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrImmutableField):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(c, response.CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrDuplicateOferta):
		respondError(c, response.CodeConflict, "you already have an offer on this load", nil)
	case errors.Is(err, service.ErrPlacaExists):
		respondError(c, response.CodeConflict, "plate already registered", nil)
	case errors.Is(err, service.ErrEmailExists):
		respondError(c, response.CodeConflict, "email already registered", nil)
	case errors.Is(err, service.ErrConflict):
		respondError(c, response.CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
	case errors.Is(err, service.ErrUserInactive):
		respondError(c, response.CodeForbidden, "account is inactive", nil)
	case errors.Is(err, service.ErrTokenInvalid):
		respondError(c, response.CodeBadRequest, "token invalid or expired", nil)
	case errors.Is(err, service.ErrTokenUsed):
		respondError(c, response.CodeBadRequest, "token already used", nil)
	case errors.Is(err, service.ErrCaptchaRequired):
		respondError(c, response.CodeBadRequest, "captcha required", nil)
	case errors.Is(err, service.ErrCaptchaInvalid):
		respondError(c, response.CodeBadRequest, "captcha invalid", nil)
	default:
		respondError(c, response.CodeInternal, "internal error", err)
	}
}
