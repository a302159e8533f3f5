package public

import (
	"github.com/fretehub/fretehub/internal/http/response"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterUsuarioRequest carries the shared registration fields.
type RegisterUsuarioRequest struct {
	Email         string `json:"email" binding:"required"`
	Senha         string `json:"senha" binding:"required"`
	Nome          string `json:"nome" binding:"required"`
	Telefone      string `json:"telefone"`
	Documento     string `json:"documento" binding:"required"`
	DocumentoTipo string `json:"documento_tipo" binding:"required"`
}

func (r RegisterUsuarioRequest) toServiceInput() service.RegisterUsuarioInput {
	return service.RegisterUsuarioInput{
		Email:         r.Email,
		Senha:         r.Senha,
		Nome:          r.Nome,
		Telefone:      r.Telefone,
		Documento:     r.Documento,
		DocumentoTipo: r.DocumentoTipo,
	}
}

// RegisterEmbarcadorRequest registers a shipper account.
type RegisterEmbarcadorRequest struct {
	RegisterUsuarioRequest
	RazaoSocial            string `json:"razao_social"`
	NomeFantasia           string `json:"nome_fantasia"`
	InscricaoEstadual      string `json:"inscricao_estadual"`
	Segmento               string `json:"segmento"`
	Site                   string `json:"site"`
	QuantidadeFuncionarios *int   `json:"quantidade_funcionarios"`
	VolumeMedioCargas      *int   `json:"volume_medio_cargas"`
}

// RegisterEmbarcador creates a shipper account with its profile.
func (h *Handler) RegisterEmbarcador(c *gin.Context) {
	var req RegisterEmbarcadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	embarcador, err := h.CadastroService.RegisterEmbarcador(service.RegisterEmbarcadorInput{
		RegisterUsuarioInput:   req.toServiceInput(),
		RazaoSocial:            req.RazaoSocial,
		NomeFantasia:           req.NomeFantasia,
		InscricaoEstadual:      req.InscricaoEstadual,
		Segmento:               req.Segmento,
		Site:                   req.Site,
		QuantidadeFuncionarios: req.QuantidadeFuncionarios,
		VolumeMedioCargas:      req.VolumeMedioCargas,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, embarcador)
}

// RegisterTransportadorRequest registers a carrier account.
type RegisterTransportadorRequest struct {
	RegisterUsuarioRequest
	RazaoSocial       string `json:"razao_social"`
	NomeFantasia      string `json:"nome_fantasia"`
	InscricaoEstadual string `json:"inscricao_estadual"`
	ANTT              string `json:"antt"`
	TipoTransportador string `json:"tipo_transportador"`
	AnosExperiencia   *int   `json:"anos_experiencia"`
	PossuiFrota       bool   `json:"possui_frota"`
}

// RegisterTransportador creates a carrier account with its profile.
func (h *Handler) RegisterTransportador(c *gin.Context) {
	var req RegisterTransportadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	transportador, err := h.CadastroService.RegisterTransportador(service.RegisterTransportadorInput{
		RegisterUsuarioInput: req.toServiceInput(),
		RazaoSocial:          req.RazaoSocial,
		NomeFantasia:         req.NomeFantasia,
		InscricaoEstadual:    req.InscricaoEstadual,
		ANTT:                 req.ANTT,
		TipoTransportador:    req.TipoTransportador,
		AnosExperiencia:      req.AnosExperiencia,
		PossuiFrota:          req.PossuiFrota,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, transportador)
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Email       string `json:"email" binding:"required"`
	Senha       string `json:"senha" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// Login authenticates and returns the access token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.CaptchaService.VerifyLogin(service.CaptchaVerifyPayload{
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	}); err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := h.UsuarioService.Login(req.Email, req.Senha)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"usuario":    result.Usuario,
	})
}

// Logout closes the current session.
func (h *Handler) Logout(c *gin.Context) {
	sessionToken := ""
	if value, ok := c.Get("session_token"); ok {
		if token, ok := value.(string); ok {
			sessionToken = token
		}
	}
	if err := h.UsuarioService.Logout(sessionToken); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// VerifyEmail confirms an account by the mailed token.
func (h *Handler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondError(c, response.CodeBadRequest, "token is required", nil)
		return
	}
	if err := h.UsuarioService.VerifyEmail(token); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"verified": true})
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword mails the reset link. The response never reveals whether
// the address exists.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.UsuarioService.RequestPasswordReset(req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Token string `json:"token" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// ResetPassword sets a new password by reset token.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.UsuarioService.ResetPassword(req.Token, req.Senha); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"reset": true})
}
