package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/logger"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/queue"
	"github.com/fretehub/fretehub/internal/repository"

	"gorm.io/gorm"
)

// CargaService manages freight listings and their status machine.
type CargaService struct {
	cargaRepo         repository.CargaRepository
	ofertaRepo        repository.OfertaRepository
	embarcadorRepo    repository.EmbarcadorRepository
	transportadorRepo repository.TransportadorRepository
	queueClient       *queue.Client
}

// NewCargaService creates the load service.
func NewCargaService(
	cargaRepo repository.CargaRepository,
	ofertaRepo repository.OfertaRepository,
	embarcadorRepo repository.EmbarcadorRepository,
	transportadorRepo repository.TransportadorRepository,
	queueClient *queue.Client,
) *CargaService {
	return &CargaService{
		cargaRepo:         cargaRepo,
		ofertaRepo:        ofertaRepo,
		embarcadorRepo:    embarcadorRepo,
		transportadorRepo: transportadorRepo,
		queueClient:       queueClient,
	}
}

var allowedCargaTransitions = map[string]map[string]bool{
	constants.CargaStatusAberta: {
		constants.CargaStatusEmNegociacao: true,
		constants.CargaStatusCancelada:    true,
	},
	constants.CargaStatusEmNegociacao: {
		constants.CargaStatusAberta:    true,
		constants.CargaStatusAceita:    true,
		constants.CargaStatusCancelada: true,
	},
	constants.CargaStatusAceita: {
		constants.CargaStatusEmTransporte: true,
		constants.CargaStatusCancelada:    true,
	},
	constants.CargaStatusEmTransporte: {
		constants.CargaStatusEntregue: true,
	},
}

// CreateCargaInput carries the listing fields.
type CreateCargaInput struct {
	EmbarcadorID      uint
	Titulo            string
	Descricao         string
	TipoMercadoria    string
	Peso              float64
	Volume            *float64
	ValorMercadoria   *models.Money
	ValorFrete        *models.Money
	OrigemCEP         string
	OrigemCidade      string
	OrigemEstado      string
	DestinoCEP        string
	DestinoCidade     string
	DestinoEstado     string
	DataColeta        time.Time
	DataEntrega       time.Time
	RequisitosVeiculo string
}

// UpdateCargaInput carries the mutable listing fields. A non-nil
// EmbarcadorID is always rejected: ownership never moves.
type UpdateCargaInput struct {
	EmbarcadorID      *uint
	Titulo            *string
	Descricao         *string
	TipoMercadoria    *string
	Peso              *float64
	Volume            *float64
	ValorMercadoria   *models.Money
	ValorFrete        *models.Money
	OrigemCEP         *string
	OrigemCidade      *string
	OrigemEstado      *string
	DestinoCEP        *string
	DestinoCidade     *string
	DestinoEstado     *string
	DataColeta        *time.Time
	DataEntrega       *time.Time
	RequisitosVeiculo *string
}

// Create posts a listing. Every new load starts open regardless of what the
// caller sends.
func (s *CargaService) Create(input CreateCargaInput) (*models.Carga, error) {
	if input.EmbarcadorID == 0 {
		return nil, validationError("embarcador_id", "embarcador_id is required")
	}
	embarcador, err := s.embarcadorRepo.GetByID(input.EmbarcadorID)
	if err != nil {
		return nil, err
	}
	if embarcador == nil {
		return nil, ErrNotFound
	}

	if strings.TrimSpace(input.Titulo) == "" {
		return nil, validationError("titulo", "titulo is required")
	}
	if strings.TrimSpace(input.TipoMercadoria) == "" {
		return nil, validationError("tipo_mercadoria", "tipo_mercadoria is required")
	}
	if input.Peso <= 0 {
		return nil, validationError("peso", "peso must be positive")
	}
	if input.Volume != nil && *input.Volume <= 0 {
		return nil, validationError("volume", "volume must be positive")
	}
	origemCEP, err := normalizeCEP(input.OrigemCEP)
	if err != nil {
		return nil, validationError("origem_cep", "cep must have 8 digits")
	}
	destinoCEP, err := normalizeCEP(input.DestinoCEP)
	if err != nil {
		return nil, validationError("destino_cep", "cep must have 8 digits")
	}
	origemEstado, err := normalizeEstado(input.OrigemEstado)
	if err != nil {
		return nil, validationError("origem_estado", "estado must be a 2-letter UF code")
	}
	destinoEstado, err := normalizeEstado(input.DestinoEstado)
	if err != nil {
		return nil, validationError("destino_estado", "estado must be a 2-letter UF code")
	}
	if strings.TrimSpace(input.OrigemCidade) == "" || strings.TrimSpace(input.DestinoCidade) == "" {
		return nil, validationError("cidade", "origem_cidade and destino_cidade are required")
	}
	if input.DataColeta.IsZero() || input.DataEntrega.IsZero() {
		return nil, validationError("datas", "data_coleta and data_entrega are required")
	}
	if input.DataEntrega.Before(input.DataColeta) {
		return nil, validationError("data_entrega", "data_entrega cannot precede data_coleta")
	}

	now := time.Now()
	carga := &models.Carga{
		EmbarcadorID:      input.EmbarcadorID,
		Titulo:            strings.TrimSpace(input.Titulo),
		Descricao:         strings.TrimSpace(input.Descricao),
		TipoMercadoria:    strings.TrimSpace(input.TipoMercadoria),
		Peso:              input.Peso,
		Volume:            input.Volume,
		ValorMercadoria:   input.ValorMercadoria,
		ValorFrete:        input.ValorFrete,
		OrigemCEP:         origemCEP,
		OrigemCidade:      strings.TrimSpace(input.OrigemCidade),
		OrigemEstado:      origemEstado,
		DestinoCEP:        destinoCEP,
		DestinoCidade:     strings.TrimSpace(input.DestinoCidade),
		DestinoEstado:     destinoEstado,
		DataColeta:        input.DataColeta,
		DataEntrega:       input.DataEntrega,
		RequisitosVeiculo: strings.TrimSpace(input.RequisitosVeiculo),
		Status:            constants.CargaStatusAberta,
		DataCriacao:       now,
		DataAtualizacao:   now,
	}
	if err := s.cargaRepo.Create(carga); err != nil {
		return nil, err
	}
	return carga, nil
}

// GetByID fetches a load or ErrNotFound.
func (s *CargaService) GetByID(id uint) (*models.Carga, error) {
	carga, err := s.cargaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if carga == nil {
		return nil, ErrNotFound
	}
	return carga, nil
}

// GetFull composes the load with shipper/carrier summaries and its offers
// ranked cheapest first.
func (s *CargaService) GetFull(id uint) (*models.CargaCompleta, error) {
	carga, err := s.cargaRepo.GetWithOfertas(id)
	if err != nil {
		return nil, err
	}
	if carga == nil {
		return nil, ErrNotFound
	}

	full := &models.CargaCompleta{Carga: *carga}

	embarcador, err := s.embarcadorRepo.GetByID(carga.EmbarcadorID)
	if err != nil {
		return nil, err
	}
	if embarcador != nil {
		full.Embarcador = ResumoFromEmbarcador(embarcador)
	}
	if carga.TransportadorID != nil {
		transportador, err := s.transportadorRepo.GetByID(*carga.TransportadorID)
		if err != nil {
			return nil, err
		}
		if transportador != nil {
			resumo := ResumoFromTransportador(transportador)
			full.Transportador = &resumo
		}
	}
	return full, nil
}

// ListCargasInput mirrors the listing filters.
type ListCargasInput struct {
	Page            int
	PageSize        int
	EmbarcadorID    uint
	TransportadorID uint
	Status          string
	OrigemEstado    string
	DestinoEstado   string
	DataColetaMin   *time.Time
	DataColetaMax   *time.Time
	PesoMin         *float64
	PesoMax         *float64
}

// List queries loads. Canceled ones only show up when asked for by status.
func (s *CargaService) List(input ListCargasInput) ([]models.Carga, int64, error) {
	if input.Status != "" && !isValidCargaStatus(input.Status) {
		return nil, 0, validationError("status", "unknown status")
	}
	return s.cargaRepo.List(repository.CargaListFilter{
		Page:            input.Page,
		PageSize:        input.PageSize,
		EmbarcadorID:    input.EmbarcadorID,
		TransportadorID: input.TransportadorID,
		Status:          input.Status,
		OrigemEstado:    strings.ToUpper(strings.TrimSpace(input.OrigemEstado)),
		DestinoEstado:   strings.ToUpper(strings.TrimSpace(input.DestinoEstado)),
		DataColetaMin:   input.DataColetaMin,
		DataColetaMax:   input.DataColetaMax,
		PesoMin:         input.PesoMin,
		PesoMax:         input.PesoMax,
	})
}

// ListOpenForQuoting lists loads a carrier can still bid on.
func (s *CargaService) ListOpenForQuoting(input ListCargasInput) ([]models.Carga, int64, error) {
	return s.cargaRepo.List(repository.CargaListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Status:   constants.CargaStatusAberta,
		OrigemEstado:  strings.ToUpper(strings.TrimSpace(input.OrigemEstado)),
		DestinoEstado: strings.ToUpper(strings.TrimSpace(input.DestinoEstado)),
		DataColetaMin: input.DataColetaMin,
		DataColetaMax: input.DataColetaMax,
		PesoMin:       input.PesoMin,
		PesoMax:       input.PesoMax,
	})
}

// Update applies a partial update to a listing the shipper owns. Only open
// or under-negotiation loads can change, and ownership is immutable.
func (s *CargaService) Update(id, embarcadorID uint, input UpdateCargaInput) (*models.Carga, error) {
	carga, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if carga.EmbarcadorID != embarcadorID {
		return nil, ErrForbidden
	}
	if input.EmbarcadorID != nil {
		return nil, immutableError("embarcador_id")
	}
	if carga.Status != constants.CargaStatusAberta && carga.Status != constants.CargaStatusEmNegociacao {
		return nil, fmt.Errorf("%w: carga is %s", ErrInvalidTransition, carga.Status)
	}

	updates := map[string]interface{}{}
	if input.Titulo != nil {
		if strings.TrimSpace(*input.Titulo) == "" {
			return nil, validationError("titulo", "titulo is required")
		}
		updates["titulo"] = strings.TrimSpace(*input.Titulo)
	}
	if input.Descricao != nil {
		updates["descricao"] = strings.TrimSpace(*input.Descricao)
	}
	if input.TipoMercadoria != nil {
		if strings.TrimSpace(*input.TipoMercadoria) == "" {
			return nil, validationError("tipo_mercadoria", "tipo_mercadoria is required")
		}
		updates["tipo_mercadoria"] = strings.TrimSpace(*input.TipoMercadoria)
	}
	if input.Peso != nil {
		if *input.Peso <= 0 {
			return nil, validationError("peso", "peso must be positive")
		}
		updates["peso"] = *input.Peso
	}
	if input.Volume != nil {
		if *input.Volume <= 0 {
			return nil, validationError("volume", "volume must be positive")
		}
		updates["volume"] = *input.Volume
	}
	if input.ValorMercadoria != nil {
		updates["valor_mercadoria"] = *input.ValorMercadoria
	}
	if input.ValorFrete != nil {
		updates["valor_frete"] = *input.ValorFrete
	}
	if input.OrigemCEP != nil {
		cep, err := normalizeCEP(*input.OrigemCEP)
		if err != nil {
			return nil, validationError("origem_cep", "cep must have 8 digits")
		}
		updates["origem_cep"] = cep
	}
	if input.OrigemCidade != nil {
		updates["origem_cidade"] = strings.TrimSpace(*input.OrigemCidade)
	}
	if input.OrigemEstado != nil {
		estado, err := normalizeEstado(*input.OrigemEstado)
		if err != nil {
			return nil, validationError("origem_estado", "estado must be a 2-letter UF code")
		}
		updates["origem_estado"] = estado
	}
	if input.DestinoCEP != nil {
		cep, err := normalizeCEP(*input.DestinoCEP)
		if err != nil {
			return nil, validationError("destino_cep", "cep must have 8 digits")
		}
		updates["destino_cep"] = cep
	}
	if input.DestinoCidade != nil {
		updates["destino_cidade"] = strings.TrimSpace(*input.DestinoCidade)
	}
	if input.DestinoEstado != nil {
		estado, err := normalizeEstado(*input.DestinoEstado)
		if err != nil {
			return nil, validationError("destino_estado", "estado must be a 2-letter UF code")
		}
		updates["destino_estado"] = estado
	}
	dataColeta := carga.DataColeta
	dataEntrega := carga.DataEntrega
	if input.DataColeta != nil {
		dataColeta = *input.DataColeta
		updates["data_coleta"] = *input.DataColeta
	}
	if input.DataEntrega != nil {
		dataEntrega = *input.DataEntrega
		updates["data_entrega"] = *input.DataEntrega
	}
	if dataEntrega.Before(dataColeta) {
		return nil, validationError("data_entrega", "data_entrega cannot precede data_coleta")
	}
	if input.RequisitosVeiculo != nil {
		updates["requisitos_veiculo"] = strings.TrimSpace(*input.RequisitosVeiculo)
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}
	updates["data_atualizacao"] = time.Now()

	if err := s.cargaRepo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// SetStatus moves the assigned carrier's load forward: aceita to
// em_transporte, em_transporte to entregue.
func (s *CargaService) SetStatus(id, transportadorID uint, newStatus string) (*models.Carga, error) {
	carga, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if carga.TransportadorID == nil || *carga.TransportadorID != transportadorID {
		return nil, ErrForbidden
	}
	if newStatus != constants.CargaStatusEmTransporte && newStatus != constants.CargaStatusEntregue {
		return nil, fmt.Errorf("%w: carrier cannot set %s", ErrInvalidTransition, newStatus)
	}
	if !allowedCargaTransitions[carga.Status][newStatus] {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, carga.Status, newStatus)
	}

	if err := s.cargaRepo.Update(id, map[string]interface{}{
		"status":           newStatus,
		"data_atualizacao": time.Now(),
	}); err != nil {
		return nil, err
	}
	s.notifyCargaStatus(carga, newStatus)
	return s.GetByID(id)
}

// Cancel withdraws a listing. Only the owner may cancel, transport in
// progress or finished cannot be, and every pending offer is rejected in the
// same transaction.
func (s *CargaService) Cancel(id, embarcadorID uint) (*models.Carga, error) {
	carga, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if carga.EmbarcadorID != embarcadorID {
		return nil, ErrForbidden
	}
	if !allowedCargaTransitions[carga.Status][constants.CargaStatusCancelada] {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, carga.Status, constants.CargaStatusCancelada)
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cargaRepo := s.cargaRepo.WithTx(tx)
		ofertaRepo := s.ofertaRepo.WithTx(tx)
		if err := cargaRepo.Update(id, map[string]interface{}{
			"status":           constants.CargaStatusCancelada,
			"data_atualizacao": now,
		}); err != nil {
			return err
		}
		return ofertaRepo.RejectSiblings(id, 0, now)
	})
	if err != nil {
		return nil, err
	}
	s.notifyCargaStatus(carga, constants.CargaStatusCancelada)
	return s.GetByID(id)
}

func (s *CargaService) notifyCargaStatus(carga *models.Carga, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueCargaStatusEmail(queue.CargaStatusEmailPayload{
		CargaID: carga.ID,
		Status:  status,
	}); err != nil {
		logger.Errorw("carga_status_enqueue_failed",
			"carga_id", carga.ID,
			"status", status,
			"error", err,
		)
	}
}

func isValidCargaStatus(status string) bool {
	switch status {
	case constants.CargaStatusAberta,
		constants.CargaStatusEmNegociacao,
		constants.CargaStatusAceita,
		constants.CargaStatusEmTransporte,
		constants.CargaStatusEntregue,
		constants.CargaStatusCancelada:
		return true
	}
	return false
}

// ResumoFromEmbarcador builds the shipper summary used in compositions.
func ResumoFromEmbarcador(e *models.Embarcador) models.ResumoEmbarcador {
	resumo := models.ResumoEmbarcador{ID: e.ID, Empresa: e.NomeFantasia}
	if resumo.Empresa == "" {
		resumo.Empresa = e.RazaoSocial
	}
	if e.Usuario != nil {
		resumo.Nome = e.Usuario.Nome
	}
	return resumo
}

// ResumoFromTransportador builds the carrier summary used in compositions.
func ResumoFromTransportador(t *models.Transportador) models.ResumoTransportador {
	resumo := models.ResumoTransportador{ID: t.ID, Empresa: t.NomeFantasia}
	if resumo.Empresa == "" {
		resumo.Empresa = t.RazaoSocial
	}
	if t.Usuario != nil {
		resumo.Nome = t.Usuario.Nome
	}
	return resumo
}
