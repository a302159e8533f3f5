package public

import (
	"errors"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/http/response"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated account with its role profile attached.
func (h *Handler) Me(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	usuario, err := h.UsuarioService.GetByID(usuarioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := gin.H{"usuario": usuario}
	switch usuario.TipoUsuario {
	case constants.TipoUsuarioEmbarcador:
		embarcador, err := h.PerfilService.GetEmbarcadorByUsuario(usuarioID)
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			respondServiceError(c, err)
			return
		}
		data["embarcador"] = embarcador
	case constants.TipoUsuarioTransportador:
		transportador, err := h.PerfilService.GetTransportadorByUsuario(usuarioID)
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			respondServiceError(c, err)
			return
		}
		data["transportador"] = transportador
	}
	response.Success(c, data)
}

// UpdateMeRequest carries the mutable account fields.
type UpdateMeRequest struct {
	Nome       *string `json:"nome"`
	Telefone   *string `json:"telefone"`
	FotoPerfil *string `json:"foto_perfil"`
}

// UpdateMe updates the authenticated account.
func (h *Handler) UpdateMe(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	usuario, err := h.UsuarioService.UpdateProfile(usuarioID, service.UpdateProfileInput{
		Nome:       req.Nome,
		Telefone:   req.Telefone,
		FotoPerfil: req.FotoPerfil,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, usuario)
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	SenhaAtual string `json:"senha_atual" binding:"required"`
	SenhaNova  string `json:"senha_nova" binding:"required"`
}

// ChangePassword rotates the password and closes every open session.
func (h *Handler) ChangePassword(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.UsuarioService.ChangePassword(usuarioID, req.SenhaAtual, req.SenhaNova); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"changed": true})
}

// UpdateEmbarcadorRequest carries the mutable shipper profile fields.
type UpdateEmbarcadorRequest struct {
	RazaoSocial            *string `json:"razao_social"`
	NomeFantasia           *string `json:"nome_fantasia"`
	InscricaoEstadual      *string `json:"inscricao_estadual"`
	Segmento               *string `json:"segmento"`
	Site                   *string `json:"site"`
	QuantidadeFuncionarios *int    `json:"quantidade_funcionarios"`
	VolumeMedioCargas      *int    `json:"volume_medio_cargas"`
}

// UpdateEmbarcadorPerfil updates the authenticated shipper's profile.
func (h *Handler) UpdateEmbarcadorPerfil(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	var req UpdateEmbarcadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	embarcador, err := h.PerfilService.UpdateEmbarcador(usuarioID, service.UpdateEmbarcadorInput{
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

// UpdateTransportadorRequest carries the mutable carrier profile fields.
type UpdateTransportadorRequest struct {
	RazaoSocial       *string `json:"razao_social"`
	NomeFantasia      *string `json:"nome_fantasia"`
	InscricaoEstadual *string `json:"inscricao_estadual"`
	ANTT              *string `json:"antt"`
	AnosExperiencia   *int    `json:"anos_experiencia"`
	PossuiFrota       *bool   `json:"possui_frota"`
}

// UpdateTransportadorPerfil updates the authenticated carrier's profile.
func (h *Handler) UpdateTransportadorPerfil(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	var req UpdateTransportadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	transportador, err := h.PerfilService.UpdateTransportador(usuarioID, service.UpdateTransportadorInput{
		RazaoSocial:       req.RazaoSocial,
		NomeFantasia:      req.NomeFantasia,
		InscricaoEstadual: req.InscricaoEstadual,
		ANTT:              req.ANTT,
		AnosExperiencia:   req.AnosExperiencia,
		PossuiFrota:       req.PossuiFrota,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, transportador)
}
