package queue

import (
	"encoding/json"

	"github.com/fretehub/fretehub/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOfertaStatusEmail notifies shipper or carrier about an offer event.
	TaskOfertaStatusEmail = constants.TaskOfertaStatusEmail
	// TaskCargaStatusEmail notifies the counterpart about a load status change.
	TaskCargaStatusEmail = constants.TaskCargaStatusEmail
)

// OfertaStatusEmailPayload is the offer notification task payload.
type OfertaStatusEmailPayload struct {
	OfertaID uint   `json:"oferta_id"`
	Status   string `json:"status"`
}

// CargaStatusEmailPayload is the load notification task payload.
type CargaStatusEmailPayload struct {
	CargaID uint   `json:"carga_id"`
	Status  string `json:"status"`
}

// NewOfertaStatusEmailTask builds the offer notification task.
func NewOfertaStatusEmailTask(payload OfertaStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOfertaStatusEmail, body), nil
}

// NewCargaStatusEmailTask builds the load notification task.
func NewCargaStatusEmailTask(payload CargaStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCargaStatusEmail, body), nil
}
