package public

import (
	"strconv"
	"time"

	"github.com/fretehub/fretehub/internal/http/response"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOfertaRequest carries a carrier's bid.
type CreateOfertaRequest struct {
	CargaID      uint         `json:"carga_id" binding:"required"`
	Valor        models.Money `json:"valor" binding:"required"`
	PrazoEntrega *time.Time   `json:"prazo_entrega"`
	Observacoes  string       `json:"observacoes"`
}

// CreateOferta places a bid on a load.
func (h *Handler) CreateOferta(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	var req CreateOfertaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	oferta, err := h.OfertaService.Create(service.CreateOfertaInput{
		CargaID:         req.CargaID,
		TransportadorID: transportadorID,
		Valor:           req.Valor,
		PrazoEntrega:    req.PrazoEntrega,
		Observacoes:     req.Observacoes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, oferta)
}

// GetOferta returns the full composition of a bid.
func (h *Handler) GetOferta(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	full, err := h.OfertaService.GetFull(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, full)
}

// ListOfertasByCarga lists the bids on a load the shipper owns, best price first.
func (h *Handler) ListOfertasByCarga(c *gin.Context) {
	embarcadorID, ok := getEmbarcadorID(c)
	if !ok {
		return
	}
	cargaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	carga, err := h.CargaService.GetByID(cargaID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if carga.EmbarcadorID != embarcadorID {
		respondServiceError(c, service.ErrForbidden)
		return
	}
	ofertas, err := h.OfertaService.ListByCarga(cargaID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, ofertas)
}

// ListMinhasOfertas lists the authenticated carrier's bids, newest first.
func (h *Handler) ListMinhasOfertas(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	ofertas, total, err := h.OfertaService.ListByTransportador(transportadorID, c.Query("status"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, ofertas, response.NewPagination(page, pageSize, total))
}

// ListOfertasRecebidas lists bids received across the shipper's loads.
func (h *Handler) ListOfertasRecebidas(c *gin.Context) {
	embarcadorID, ok := getEmbarcadorID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	var cargaID uint
	if raw := c.Query("carga_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid carga_id")
			return
		}
		cargaID = uint(parsed)
	}
	ofertas, total, err := h.OfertaService.ListByEmbarcador(embarcadorID, c.Query("status"), cargaID, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, ofertas, response.NewPagination(page, pageSize, total))
}

// AcceptOferta accepts a bid and closes the load to the other bidders.
func (h *Handler) AcceptOferta(c *gin.Context) {
	embarcadorID, ok := getEmbarcadorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	oferta, err := h.OfertaService.Accept(id, embarcadorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, oferta)
}

// RejectOferta turns a bid down.
func (h *Handler) RejectOferta(c *gin.Context) {
	embarcadorID, ok := getEmbarcadorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	oferta, err := h.OfertaService.Reject(id, embarcadorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, oferta)
}

// CancelOferta withdraws the carrier's own pending bid.
func (h *Handler) CancelOferta(c *gin.Context) {
	transportadorID, ok := getTransportadorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	oferta, err := h.OfertaService.Cancel(id, transportadorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, oferta)
}
