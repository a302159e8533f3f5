package public

import (
	"github.com/fretehub/fretehub/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CaptchaConfig tells the client whether login needs a captcha.
func (h *Handler) CaptchaConfig(c *gin.Context) {
	response.Success(c, gin.H{
		"login_required": h.CaptchaService.RequiredForLogin(),
	})
}

// GenerateCaptcha issues a fresh image challenge.
func (h *Handler) GenerateCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, challenge)
}
