package public

import (
	"github.com/fretehub/fretehub/internal/http/response"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateVeiculoRequest carries the vehicle fields.
type CreateVeiculoRequest struct {
	Placa          string   `json:"placa" binding:"required"`
	Renavam        string   `json:"renavam"`
	Tipo           string   `json:"tipo"`
	Marca          string   `json:"marca"`
	Modelo         string   `json:"modelo"`
	Ano            int      `json:"ano"`
	CapacidadeKg   *float64 `json:"capacidade_kg"`
	CapacidadeM3   *float64 `json:"capacidade_m3"`
	TipoCarroceria string   `json:"tipo_carroceria"`
	Rastreado      bool     `json:"rastreado"`
	SeguroCarga    bool     `json:"seguro_carga"`
	Observacoes    string   `json:"observacoes"`
}

// CreateVeiculo registers a vehicle in the carrier's fleet.
func (h *Handler) CreateVeiculo(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	var req CreateVeiculoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	veiculo, err := h.VeiculoService.Create(service.CreateVeiculoInput{
		TransportadorID: transportadorID,
		Placa:           req.Placa,
		Renavam:         req.Renavam,
		Tipo:            req.Tipo,
		Marca:           req.Marca,
		Modelo:          req.Modelo,
		Ano:             req.Ano,
		CapacidadeKg:    req.CapacidadeKg,
		CapacidadeM3:    req.CapacidadeM3,
		TipoCarroceria:  req.TipoCarroceria,
		Rastreado:       req.Rastreado,
		SeguroCarga:     req.SeguroCarga,
		Observacoes:     req.Observacoes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, veiculo)
}

// ListVeiculos lists the carrier's active vehicles.
func (h *Handler) ListVeiculos(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	veiculos, err := h.VeiculoService.ListByTransportador(transportadorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, veiculos)
}

// GetVeiculo fetches one vehicle from the carrier's fleet.
func (h *Handler) GetVeiculo(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	veiculo, err := h.VeiculoService.GetByID(id, transportadorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, veiculo)
}

// UpdateVeiculoRequest carries the mutable vehicle fields.
type UpdateVeiculoRequest struct {
	Renavam        *string  `json:"renavam"`
	Tipo           *string  `json:"tipo"`
	Marca          *string  `json:"marca"`
	Modelo         *string  `json:"modelo"`
	Ano            *int     `json:"ano"`
	CapacidadeKg   *float64 `json:"capacidade_kg"`
	CapacidadeM3   *float64 `json:"capacidade_m3"`
	TipoCarroceria *string  `json:"tipo_carroceria"`
	Rastreado      *bool    `json:"rastreado"`
	SeguroCarga    *bool    `json:"seguro_carga"`
	Observacoes    *string  `json:"observacoes"`
}

// UpdateVeiculo updates one vehicle from the carrier's fleet.
func (h *Handler) UpdateVeiculo(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateVeiculoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	veiculo, err := h.VeiculoService.Update(id, transportadorID, service.UpdateVeiculoInput{
		Renavam:        req.Renavam,
		Tipo:           req.Tipo,
		Marca:          req.Marca,
		Modelo:         req.Modelo,
		Ano:            req.Ano,
		CapacidadeKg:   req.CapacidadeKg,
		CapacidadeM3:   req.CapacidadeM3,
		TipoCarroceria: req.TipoCarroceria,
		Rastreado:      req.Rastreado,
		SeguroCarga:    req.SeguroCarga,
		Observacoes:    req.Observacoes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, veiculo)
}

// DeleteVeiculo retires a vehicle, freeing its plate.
func (h *Handler) DeleteVeiculo(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.VeiculoService.Deactivate(id, transportadorID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
