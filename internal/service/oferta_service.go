package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/logger"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/queue"
	"github.com/fretehub/fretehub/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OfertaService manages carrier bids and the accept cascade.
type OfertaService struct {
	ofertaRepo        repository.OfertaRepository
	cargaRepo         repository.CargaRepository
	transportadorRepo repository.TransportadorRepository
	queueClient       *queue.Client
}

// NewOfertaService creates the offer service.
func NewOfertaService(
	ofertaRepo repository.OfertaRepository,
	cargaRepo repository.CargaRepository,
	transportadorRepo repository.TransportadorRepository,
	queueClient *queue.Client,
) *OfertaService {
	return &OfertaService{
		ofertaRepo:        ofertaRepo,
		cargaRepo:         cargaRepo,
		transportadorRepo: transportadorRepo,
		queueClient:       queueClient,
	}
}

// CreateOfertaInput carries the bid fields.
type CreateOfertaInput struct {
	CargaID         uint
	TransportadorID uint
	Valor           models.Money
	PrazoEntrega    *time.Time
	Observacoes     string
}

// Create places a bid. One bid per carrier per load; the first bid on an
// open load moves it to em_negociacao in the same transaction.
func (s *OfertaService) Create(input CreateOfertaInput) (*models.Oferta, error) {
	if input.CargaID == 0 {
		return nil, validationError("carga_id", "carga_id is required")
	}
	if input.TransportadorID == 0 {
		return nil, validationError("transportador_id", "transportador_id is required")
	}
	if !input.Valor.Decimal.GreaterThan(decimal.Zero) {
		return nil, validationError("valor", "valor must be positive")
	}

	transportador, err := s.transportadorRepo.GetByID(input.TransportadorID)
	if err != nil {
		return nil, err
	}
	if transportador == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	oferta := &models.Oferta{
		CargaID:         input.CargaID,
		TransportadorID: input.TransportadorID,
		Valor:           input.Valor,
		PrazoEntrega:    input.PrazoEntrega,
		Observacoes:     input.Observacoes,
		Status:          constants.OfertaStatusPendente,
		DataOferta:      now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		ofertaRepo := s.ofertaRepo.WithTx(tx)
		cargaRepo := s.cargaRepo.WithTx(tx)

		carga, err := cargaRepo.GetByID(input.CargaID)
		if err != nil {
			return err
		}
		if carga == nil {
			return ErrNotFound
		}
		if carga.Status != constants.CargaStatusAberta && carga.Status != constants.CargaStatusEmNegociacao {
			return fmt.Errorf("%w: carga is %s", ErrInvalidTransition, carga.Status)
		}

		existing, err := ofertaRepo.GetByCargaAndTransportador(input.CargaID, input.TransportadorID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateOferta
		}

		if err := ofertaRepo.Create(oferta); err != nil {
			return err
		}
		if carga.Status == constants.CargaStatusAberta {
			return cargaRepo.Update(carga.ID, map[string]interface{}{
				"status":           constants.CargaStatusEmNegociacao,
				"data_atualizacao": now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyOfertaStatus(oferta.ID, constants.OfertaStatusPendente)
	return oferta, nil
}

// GetByID fetches an offer or ErrNotFound.
func (s *OfertaService) GetByID(id uint) (*models.Oferta, error) {
	oferta, err := s.ofertaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if oferta == nil {
		return nil, ErrNotFound
	}
	return oferta, nil
}

// GetFull composes the offer with its load context and carrier summary.
func (s *OfertaService) GetFull(id uint) (*models.OfertaCompleta, error) {
	oferta, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	full := &models.OfertaCompleta{Oferta: *oferta}
	if oferta.Carga != nil {
		full.CargaTitulo = oferta.Carga.Titulo
		full.CargaStatus = oferta.Carga.Status
	}
	if oferta.Transportador != nil {
		full.Transportador = ResumoFromTransportador(oferta.Transportador)
	}
	return full, nil
}

// ListByCarga lists a load's offers cheapest first, oldest breaking ties.
func (s *OfertaService) ListByCarga(cargaID uint) ([]models.Oferta, error) {
	if _, err := s.requireCarga(cargaID); err != nil {
		return nil, err
	}
	return s.ofertaRepo.ListByCarga(cargaID)
}

// ListByTransportador lists a carrier's own bids, newest first.
func (s *OfertaService) ListByTransportador(transportadorID uint, status string, page, pageSize int) ([]models.Oferta, int64, error) {
	return s.ofertaRepo.List(repository.OfertaListFilter{
		Page:            page,
		PageSize:        pageSize,
		TransportadorID: transportadorID,
		Status:          status,
	})
}

// ListByEmbarcador lists offers received across a shipper's loads, newest first.
func (s *OfertaService) ListByEmbarcador(embarcadorID uint, status string, cargaID uint, page, pageSize int) ([]models.Oferta, int64, error) {
	return s.ofertaRepo.ListByEmbarcador(embarcadorID, status, cargaID, page, pageSize)
}

// errOfertaJaAceita aborts the accept transaction when the same offer was
// already accepted, so the caller can turn the lost race into a no-op.
var errOfertaJaAceita = errors.New("oferta already accepted")

// Accept closes the deal: the offer is accepted, the load binds the carrier,
// and every sibling pending offer is rejected, all in one transaction. The
// updates carry a status predicate so a concurrent accept cannot cascade
// twice; accepting an already accepted offer is a no-op.
func (s *OfertaService) Accept(id, embarcadorID uint) (*models.Oferta, error) {
	oferta, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	carga, err := s.requireCarga(oferta.CargaID)
	if err != nil {
		return nil, err
	}
	if carga.EmbarcadorID != embarcadorID {
		return nil, ErrForbidden
	}
	if oferta.Status == constants.OfertaStatusAceita {
		return oferta, nil
	}
	if oferta.Status != constants.OfertaStatusPendente {
		return nil, fmt.Errorf("%w: oferta is %s", ErrInvalidTransition, oferta.Status)
	}
	if carga.Status != constants.CargaStatusEmNegociacao {
		return nil, fmt.Errorf("%w: carga is %s", ErrInvalidTransition, carga.Status)
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		ofertaRepo := s.ofertaRepo.WithTx(tx)
		cargaRepo := s.cargaRepo.WithTx(tx)

		changed, err := ofertaRepo.UpdateIfStatus(oferta.ID, constants.OfertaStatusPendente, map[string]interface{}{
			"status":        constants.OfertaStatusAceita,
			"data_resposta": now,
		})
		if err != nil {
			return err
		}
		if !changed {
			current, err := ofertaRepo.GetByID(oferta.ID)
			if err != nil {
				return err
			}
			if current != nil && current.Status == constants.OfertaStatusAceita {
				return errOfertaJaAceita
			}
			return fmt.Errorf("%w: oferta is no longer pendente", ErrInvalidTransition)
		}

		changed, err = cargaRepo.UpdateIfStatus(carga.ID, constants.CargaStatusEmNegociacao, map[string]interface{}{
			"status":           constants.CargaStatusAceita,
			"transportador_id": oferta.TransportadorID,
			"data_atualizacao": now,
		})
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("%w: carga is no longer em_negociacao", ErrInvalidTransition)
		}
		return ofertaRepo.RejectSiblings(carga.ID, oferta.ID, now)
	})
	if errors.Is(err, errOfertaJaAceita) {
		return s.GetByID(id)
	}
	if err != nil {
		return nil, err
	}

	s.notifyOfertaStatus(oferta.ID, constants.OfertaStatusAceita)
	return s.GetByID(id)
}

// Reject declines a pending offer. When it was the last pending one and the
// load is still under negotiation, the load reopens.
func (s *OfertaService) Reject(id, embarcadorID uint) (*models.Oferta, error) {
	oferta, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	carga, err := s.requireCarga(oferta.CargaID)
	if err != nil {
		return nil, err
	}
	if carga.EmbarcadorID != embarcadorID {
		return nil, ErrForbidden
	}
	if oferta.Status != constants.OfertaStatusPendente {
		return nil, fmt.Errorf("%w: oferta is %s", ErrInvalidTransition, oferta.Status)
	}

	if err := s.closeOferta(oferta, carga, constants.OfertaStatusRecusada); err != nil {
		return nil, err
	}
	s.notifyOfertaStatus(oferta.ID, constants.OfertaStatusRecusada)
	return s.GetByID(id)
}

// Cancel lets the carrier withdraw its own pending offer. When it was the
// last pending one and the load is still under negotiation, the load reopens.
func (s *OfertaService) Cancel(id, transportadorID uint) (*models.Oferta, error) {
	oferta, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if oferta.TransportadorID != transportadorID {
		return nil, ErrForbidden
	}
	carga, err := s.requireCarga(oferta.CargaID)
	if err != nil {
		return nil, err
	}
	if oferta.Status != constants.OfertaStatusPendente {
		return nil, fmt.Errorf("%w: oferta is %s", ErrInvalidTransition, oferta.Status)
	}

	if err := s.closeOferta(oferta, carga, constants.OfertaStatusCancelada); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// closeOferta finishes a pending offer and reopens the load when no pending
// sibling remains. Both updates carry a status predicate so a concurrent
// transition cannot be overwritten.
func (s *OfertaService) closeOferta(oferta *models.Oferta, carga *models.Carga, status string) error {
	now := time.Now()
	return models.DB.Transaction(func(tx *gorm.DB) error {
		ofertaRepo := s.ofertaRepo.WithTx(tx)
		cargaRepo := s.cargaRepo.WithTx(tx)

		changed, err := ofertaRepo.UpdateIfStatus(oferta.ID, constants.OfertaStatusPendente, map[string]interface{}{
			"status":        status,
			"data_resposta": now,
		})
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("%w: oferta is no longer pendente", ErrInvalidTransition)
		}

		if carga.Status != constants.CargaStatusEmNegociacao {
			return nil
		}
		remaining, err := ofertaRepo.CountPendentes(carga.ID, oferta.ID)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		_, err = cargaRepo.UpdateIfStatus(carga.ID, constants.CargaStatusEmNegociacao, map[string]interface{}{
			"status":           constants.CargaStatusAberta,
			"data_atualizacao": now,
		})
		return err
	})
}

func (s *OfertaService) requireCarga(cargaID uint) (*models.Carga, error) {
	carga, err := s.cargaRepo.GetByID(cargaID)
	if err != nil {
		return nil, err
	}
	if carga == nil {
		return nil, ErrNotFound
	}
	return carga, nil
}

func (s *OfertaService) notifyOfertaStatus(ofertaID uint, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOfertaStatusEmail(queue.OfertaStatusEmailPayload{
		OfertaID: ofertaID,
		Status:   status,
	}); err != nil {
		logger.Errorw("oferta_status_enqueue_failed",
			"oferta_id", ofertaID,
			"status", status,
			"error", err,
		)
	}
}
