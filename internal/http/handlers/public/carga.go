package public

import (
	"strconv"
	"time"

	"github.com/fretehub/fretehub/internal/http/response"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCargaRequest carries the listing fields.
type CreateCargaRequest struct {
	Titulo            string        `json:"titulo" binding:"required"`
	Descricao         string        `json:"descricao"`
	TipoMercadoria    string        `json:"tipo_mercadoria" binding:"required"`
	Peso              float64       `json:"peso" binding:"required"`
	Volume            *float64      `json:"volume"`
	ValorMercadoria   *models.Money `json:"valor_mercadoria"`
	ValorFrete        *models.Money `json:"valor_frete"`
	OrigemCEP         string        `json:"origem_cep" binding:"required"`
	OrigemCidade      string        `json:"origem_cidade" binding:"required"`
	OrigemEstado      string        `json:"origem_estado" binding:"required"`
	DestinoCEP        string        `json:"destino_cep" binding:"required"`
	DestinoCidade     string        `json:"destino_cidade" binding:"required"`
	DestinoEstado     string        `json:"destino_estado" binding:"required"`
	DataColeta        time.Time     `json:"data_coleta" binding:"required"`
	DataEntrega       time.Time     `json:"data_entrega" binding:"required"`
	RequisitosVeiculo string        `json:"requisitos_veiculo"`
}

// CreateCarga posts a new load for the authenticated shipper.
func (h *Handler) CreateCarga(c *gin.Context) {
	embarcadorID, ok := getEmbarcadorID(c)
	if !ok {
		return
	}
	var req CreateCargaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	carga, err := h.CargaService.Create(service.CreateCargaInput{
		EmbarcadorID:      embarcadorID,
		Titulo:            req.Titulo,
		Descricao:         req.Descricao,
		TipoMercadoria:    req.TipoMercadoria,
		Peso:              req.Peso,
		Volume:            req.Volume,
		ValorMercadoria:   req.ValorMercadoria,
		ValorFrete:        req.ValorFrete,
		OrigemCEP:         req.OrigemCEP,
		OrigemCidade:      req.OrigemCidade,
		OrigemEstado:      req.OrigemEstado,
		DestinoCEP:        req.DestinoCEP,
		DestinoCidade:     req.DestinoCidade,
		DestinoEstado:     req.DestinoEstado,
		DataColeta:        req.DataColeta,
		DataEntrega:       req.DataEntrega,
		RequisitosVeiculo: req.RequisitosVeiculo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, carga)
}

// GetCarga returns the full composition of a load.
func (h *Handler) GetCarga(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	full, err := h.CargaService.GetFull(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, full)
}

// ListMinhasCargas lists the authenticated shipper's loads.
func (h *Handler) ListMinhasCargas(c *gin.Context) {
	embarcadorID, ok := getEmbarcadorID(c)
	if !ok {
		return
	}
	input := parseCargaFilters(c)
	input.EmbarcadorID = embarcadorID
	cargas, total, err := h.CargaService.List(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, cargas, response.NewPagination(input.Page, input.PageSize, total))
}

// ListCargasDisponiveis lists loads open for quoting.
func (h *Handler) ListCargasDisponiveis(c *gin.Context) {
	if _, ok := getTransportadorID(c); !ok {
		return
	}
	input := parseCargaFilters(c)
	cargas, total, err := h.CargaService.ListOpenForQuoting(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, cargas, response.NewPagination(input.Page, input.PageSize, total))
}

// ListCargasAtribuidas lists loads bound to the authenticated carrier.
func (h *Handler) ListCargasAtribuidas(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	input := parseCargaFilters(c)
	input.TransportadorID = transportadorID
	cargas, total, err := h.CargaService.List(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, cargas, response.NewPagination(input.Page, input.PageSize, total))
}

// UpdateCargaRequest carries the mutable listing fields.
type UpdateCargaRequest struct {
	EmbarcadorID      *uint         `json:"embarcador_id"`
	Titulo            *string       `json:"titulo"`
	Descricao         *string       `json:"descricao"`
	TipoMercadoria    *string       `json:"tipo_mercadoria"`
	Peso              *float64      `json:"peso"`
	Volume            *float64      `json:"volume"`
	ValorMercadoria   *models.Money `json:"valor_mercadoria"`
	ValorFrete        *models.Money `json:"valor_frete"`
	OrigemCEP         *string       `json:"origem_cep"`
	OrigemCidade      *string       `json:"origem_cidade"`
	OrigemEstado      *string       `json:"origem_estado"`
	DestinoCEP        *string       `json:"destino_cep"`
	DestinoCidade     *string       `json:"destino_cidade"`
	DestinoEstado     *string       `json:"destino_estado"`
	DataColeta        *time.Time    `json:"data_coleta"`
	DataEntrega       *time.Time    `json:"data_entrega"`
	RequisitosVeiculo *string       `json:"requisitos_veiculo"`
}

// UpdateCarga updates a load the shipper owns.
func (h *Handler) UpdateCarga(c *gin.Context) {
	embarcadorID, ok := getEmbarcadorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCargaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	carga, err := h.CargaService.Update(id, embarcadorID, service.UpdateCargaInput{
		EmbarcadorID:      req.EmbarcadorID,
		Titulo:            req.Titulo,
		Descricao:         req.Descricao,
		TipoMercadoria:    req.TipoMercadoria,
		Peso:              req.Peso,
		Volume:            req.Volume,
		ValorMercadoria:   req.ValorMercadoria,
		ValorFrete:        req.ValorFrete,
		OrigemCEP:         req.OrigemCEP,
		OrigemCidade:      req.OrigemCidade,
		OrigemEstado:      req.OrigemEstado,
		DestinoCEP:        req.DestinoCEP,
		DestinoCidade:     req.DestinoCidade,
		DestinoEstado:     req.DestinoEstado,
		DataColeta:        req.DataColeta,
		DataEntrega:       req.DataEntrega,
		RequisitosVeiculo: req.RequisitosVeiculo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, carga)
}

// CancelCarga withdraws a load the shipper owns.
func (h *Handler) CancelCarga(c *gin.Context) {
	embarcadorID, ok := getEmbarcadorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	carga, err := h.CargaService.Cancel(id, embarcadorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, carga)
}

// SetCargaStatusRequest moves transport forward.
type SetCargaStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetCargaStatus lets the bound carrier report transport progress.
func (h *Handler) SetCargaStatus(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetCargaStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	carga, err := h.CargaService.SetStatus(id, transportadorID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, carga)
}

func parseCargaFilters(c *gin.Context) service.ListCargasInput {
	page, pageSize := parsePagination(c)
	input := service.ListCargasInput{
		Page:          page,
		PageSize:      pageSize,
		Status:        c.Query("status"),
		OrigemEstado:  c.Query("origem_estado"),
		DestinoEstado: c.Query("destino_estado"),
		DataColetaMin: parseTimeQuery(c, "data_coleta_min"),
		DataColetaMax: parseTimeQuery(c, "data_coleta_max"),
		PesoMin:       parseFloatQuery(c, "peso_min"),
		PesoMax:       parseFloatQuery(c, "peso_max"),
	}
	return input
}

func parseTimeQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

func parseFloatQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return &v
	}
	return nil
}
