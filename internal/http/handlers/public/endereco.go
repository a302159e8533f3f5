package public

import (
	"github.com/fretehub/fretehub/internal/http/response"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateEnderecoRequest carries the address fields.
type CreateEnderecoRequest struct {
	Tipo        string `json:"tipo"`
	CEP         string `json:"cep" binding:"required"`
	Logradouro  string `json:"logradouro" binding:"required"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade" binding:"required"`
	Estado      string `json:"estado" binding:"required"`
	Principal   bool   `json:"principal"`
	Observacoes string `json:"observacoes"`
}

// CreateEndereco adds an address to the authenticated user's book.
func (h *Handler) CreateEndereco(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	var req CreateEnderecoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	endereco, err := h.EnderecoService.Create(service.CreateEnderecoInput{
		UsuarioID:   usuarioID,
		Tipo:        req.Tipo,
		CEP:         req.CEP,
		Logradouro:  req.Logradouro,
		Numero:      req.Numero,
		Complemento: req.Complemento,
		Bairro:      req.Bairro,
		Cidade:      req.Cidade,
		Estado:      req.Estado,
		Principal:   req.Principal,
		Observacoes: req.Observacoes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, endereco)
}

// ListEnderecos lists the authenticated user's addresses, primary first.
func (h *Handler) ListEnderecos(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	enderecos, err := h.EnderecoService.ListByUsuario(usuarioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, enderecos)
}

// GetEndereco fetches one address of the authenticated user.
func (h *Handler) GetEndereco(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	endereco, err := h.EnderecoService.GetByID(id, usuarioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, endereco)
}

// UpdateEnderecoRequest carries the mutable address fields.
type UpdateEnderecoRequest struct {
	Tipo        *string `json:"tipo"`
	CEP         *string `json:"cep"`
	Logradouro  *string `json:"logradouro"`
	Numero      *string `json:"numero"`
	Complemento *string `json:"complemento"`
	Bairro      *string `json:"bairro"`
	Cidade      *string `json:"cidade"`
	Estado      *string `json:"estado"`
	Principal   *bool   `json:"principal"`
	Observacoes *string `json:"observacoes"`
}

// UpdateEndereco updates one address of the authenticated user.
func (h *Handler) UpdateEndereco(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateEnderecoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	endereco, err := h.EnderecoService.Update(id, usuarioID, service.UpdateEnderecoInput{
		Tipo:        req.Tipo,
		CEP:         req.CEP,
		Logradouro:  req.Logradouro,
		Numero:      req.Numero,
		Complemento: req.Complemento,
		Bairro:      req.Bairro,
		Cidade:      req.Cidade,
		Estado:      req.Estado,
		Principal:   req.Principal,
		Observacoes: req.Observacoes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, endereco)
}

// SetEnderecoPrincipal promotes an address to primary.
func (h *Handler) SetEnderecoPrincipal(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	endereco, err := h.EnderecoService.SetAsPrincipal(id, usuarioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, endereco)
}

// DeleteEndereco removes one address of the authenticated user.
func (h *Handler) DeleteEndereco(c *gin.Context) {
	usuarioID, ok := getUsuarioID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.EnderecoService.Delete(id, usuarioID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
