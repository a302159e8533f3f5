package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/logger"
	"github.com/fretehub/fretehub/internal/provider"
	"github.com/fretehub/fretehub/internal/queue"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles the queued notification tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOfertaStatusEmail, c.handleOfertaStatusEmail)
	mux.HandleFunc(queue.TaskCargaStatusEmail, c.handleCargaStatusEmail)
}

// handleOfertaStatusEmail mails the party affected by an offer event: the
// shipper when a bid arrives, the carrier when a bid is answered.
func (c *Consumer) handleOfertaStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OfertaStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_oferta_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OfertaID == 0 {
		return nil
	}

	oferta, err := c.OfertaRepo.GetByID(payload.OfertaID)
	if err != nil {
		logger.Warnw("worker_oferta_status_email_fetch_failed", "oferta_id", payload.OfertaID, "error", err)
		return err
	}
	if oferta == nil || oferta.Carga == nil {
		logger.Debugw("worker_oferta_status_email_skip_missing", "oferta_id", payload.OfertaID)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = oferta.Status
	}

	var receiverEmail string
	switch status {
	case constants.OfertaStatusPendente:
		embarcador, err := c.EmbarcadorRepo.GetByID(oferta.Carga.EmbarcadorID)
		if err != nil {
			logger.Warnw("worker_oferta_status_email_fetch_embarcador_failed", "oferta_id", oferta.ID, "error", err)
			return err
		}
		if embarcador != nil && embarcador.Usuario != nil {
			receiverEmail = strings.TrimSpace(embarcador.Usuario.Email)
		}
	default:
		if oferta.Transportador != nil && oferta.Transportador.Usuario != nil {
			receiverEmail = strings.TrimSpace(oferta.Transportador.Usuario.Email)
		}
	}
	if receiverEmail == "" {
		logger.Debugw("worker_oferta_status_email_skip_empty_receiver", "oferta_id", oferta.ID, "status", status)
		return nil
	}
	if c.EmailService == nil {
		return nil
	}

	input := service.OfertaStatusEmailInput{
		CargaTitulo: oferta.Carga.Titulo,
		Origem:      rotaPonto(oferta.Carga.OrigemCidade, oferta.Carga.OrigemEstado),
		Destino:     rotaPonto(oferta.Carga.DestinoCidade, oferta.Carga.DestinoEstado),
		Valor:       oferta.Valor,
		Status:      status,
	}
	if oferta.Transportador != nil && oferta.Transportador.Usuario != nil {
		input.Transportador = oferta.Transportador.Usuario.Nome
	}

	if err := c.EmailService.SendOfertaStatusEmail(receiverEmail, input); err != nil {
		logger.Warnw("worker_oferta_status_email_send_failed",
			"oferta_id", oferta.ID,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

// handleCargaStatusEmail mails the counterpart of a load status change: the
// shipper for transport progress, the bound carrier for a cancellation.
func (c *Consumer) handleCargaStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CargaStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_carga_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.CargaID == 0 {
		return nil
	}

	carga, err := c.CargaRepo.GetByID(payload.CargaID)
	if err != nil {
		logger.Warnw("worker_carga_status_email_fetch_failed", "carga_id", payload.CargaID, "error", err)
		return err
	}
	if carga == nil {
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = carga.Status
	}

	var receiverEmail string
	if status == constants.CargaStatusCancelada {
		if carga.TransportadorID != nil {
			transportador, err := c.TransportadorRepo.GetByID(*carga.TransportadorID)
			if err != nil {
				logger.Warnw("worker_carga_status_email_fetch_transportador_failed", "carga_id", carga.ID, "error", err)
				return err
			}
			if transportador != nil && transportador.Usuario != nil {
				receiverEmail = strings.TrimSpace(transportador.Usuario.Email)
			}
		}
	} else {
		embarcador, err := c.EmbarcadorRepo.GetByID(carga.EmbarcadorID)
		if err != nil {
			logger.Warnw("worker_carga_status_email_fetch_embarcador_failed", "carga_id", carga.ID, "error", err)
			return err
		}
		if embarcador != nil && embarcador.Usuario != nil {
			receiverEmail = strings.TrimSpace(embarcador.Usuario.Email)
		}
	}
	if receiverEmail == "" {
		logger.Debugw("worker_carga_status_email_skip_empty_receiver", "carga_id", carga.ID, "status", status)
		return nil
	}
	if c.EmailService == nil {
		return nil
	}

	input := service.CargaStatusEmailInput{
		CargaTitulo: carga.Titulo,
		Origem:      rotaPonto(carga.OrigemCidade, carga.OrigemEstado),
		Destino:     rotaPonto(carga.DestinoCidade, carga.DestinoEstado),
		Status:      status,
	}
	if err := c.EmailService.SendCargaStatusEmail(receiverEmail, input); err != nil {
		logger.Warnw("worker_carga_status_email_send_failed",
			"carga_id", carga.ID,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func rotaPonto(cidade, estado string) string {
	return fmt.Sprintf("%s/%s", cidade, estado)
}
