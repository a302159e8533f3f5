package service

import (
	"strings"
	"time"

	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/repository"

	"gorm.io/gorm"
)

// VeiculoService manages a carrier's fleet. Plates stay unique across all
// active vehicles; removal is a soft deactivation.
type VeiculoService struct {
	veiculoRepo       repository.VeiculoRepository
	transportadorRepo repository.TransportadorRepository
}

// NewVeiculoService creates the vehicle service.
func NewVeiculoService(veiculoRepo repository.VeiculoRepository, transportadorRepo repository.TransportadorRepository) *VeiculoService {
	return &VeiculoService{veiculoRepo: veiculoRepo, transportadorRepo: transportadorRepo}
}

// CreateVeiculoInput carries the vehicle fields.
type CreateVeiculoInput struct {
	TransportadorID uint
	Placa           string
	Renavam         string
	Tipo            string
	Marca           string
	Modelo          string
	Ano             int
	CapacidadeKg    *float64
	CapacidadeM3    *float64
	TipoCarroceria  string
	Rastreado       bool
	SeguroCarga     bool
	Observacoes     string
}

// UpdateVeiculoInput carries the mutable vehicle fields. The plate is fixed
// after registration.
type UpdateVeiculoInput struct {
	Renavam        *string
	Tipo           *string
	Marca          *string
	Modelo         *string
	Ano            *int
	CapacidadeKg   *float64
	CapacidadeM3   *float64
	TipoCarroceria *string
	Rastreado      *bool
	SeguroCarga    *bool
	Observacoes    *string
}

// Create registers a vehicle, rejecting a plate already active in the fleet
// of any carrier.
func (s *VeiculoService) Create(input CreateVeiculoInput) (*models.Veiculo, error) {
	if input.TransportadorID == 0 {
		return nil, validationError("transportador_id", "transportador_id is required")
	}
	placa, err := normalizePlaca(input.Placa)
	if err != nil {
		return nil, err
	}
	if input.Ano != 0 && (input.Ano < 1950 || input.Ano > time.Now().Year()+1) {
		return nil, validationError("ano", "ano out of range")
	}

	transportador, err := s.transportadorRepo.GetByID(input.TransportadorID)
	if err != nil {
		return nil, err
	}
	if transportador == nil {
		return nil, ErrNotFound
	}

	veiculo := &models.Veiculo{
		TransportadorID: input.TransportadorID,
		Placa:           placa,
		Renavam:         strings.TrimSpace(input.Renavam),
		Tipo:            strings.TrimSpace(input.Tipo),
		Marca:           strings.TrimSpace(input.Marca),
		Modelo:          strings.TrimSpace(input.Modelo),
		Ano:             input.Ano,
		CapacidadeKg:    input.CapacidadeKg,
		CapacidadeM3:    input.CapacidadeM3,
		TipoCarroceria:  strings.TrimSpace(input.TipoCarroceria),
		Rastreado:       input.Rastreado,
		SeguroCarga:     input.SeguroCarga,
		Observacoes:     strings.TrimSpace(input.Observacoes),
		Ativo:           true,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.veiculoRepo.WithTx(tx)
		existing, err := repo.GetByPlaca(placa)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrPlacaExists
		}
		return repo.Create(veiculo)
	})
	if err != nil {
		return nil, err
	}
	return veiculo, nil
}

// GetByID fetches an active vehicle owned by the carrier.
func (s *VeiculoService) GetByID(id, transportadorID uint) (*models.Veiculo, error) {
	veiculo, err := s.veiculoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if veiculo == nil || !veiculo.Ativo || veiculo.TransportadorID != transportadorID {
		return nil, ErrNotFound
	}
	return veiculo, nil
}

// ListByTransportador lists the carrier's active vehicles.
func (s *VeiculoService) ListByTransportador(transportadorID uint) ([]models.Veiculo, error) {
	return s.veiculoRepo.ListByTransportador(transportadorID, true)
}

// Update applies a partial update to a vehicle.
func (s *VeiculoService) Update(id, transportadorID uint, input UpdateVeiculoInput) (*models.Veiculo, error) {
	if _, err := s.GetByID(id, transportadorID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Renavam != nil {
		updates["renavam"] = strings.TrimSpace(*input.Renavam)
	}
	if input.Tipo != nil {
		updates["tipo"] = strings.TrimSpace(*input.Tipo)
	}
	if input.Marca != nil {
		updates["marca"] = strings.TrimSpace(*input.Marca)
	}
	if input.Modelo != nil {
		updates["modelo"] = strings.TrimSpace(*input.Modelo)
	}
	if input.Ano != nil {
		if *input.Ano < 1950 || *input.Ano > time.Now().Year()+1 {
			return nil, validationError("ano", "ano out of range")
		}
		updates["ano"] = *input.Ano
	}
	if input.CapacidadeKg != nil {
		updates["capacidade_kg"] = *input.CapacidadeKg
	}
	if input.CapacidadeM3 != nil {
		updates["capacidade_m3"] = *input.CapacidadeM3
	}
	if input.TipoCarroceria != nil {
		updates["tipo_carroceria"] = strings.TrimSpace(*input.TipoCarroceria)
	}
	if input.Rastreado != nil {
		updates["rastreado"] = *input.Rastreado
	}
	if input.SeguroCarga != nil {
		updates["seguro_carga"] = *input.SeguroCarga
	}
	if input.Observacoes != nil {
		updates["observacoes"] = strings.TrimSpace(*input.Observacoes)
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	if err := s.veiculoRepo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.GetByID(id, transportadorID)
}

// Deactivate retires a vehicle, freeing its plate for re-registration.
func (s *VeiculoService) Deactivate(id, transportadorID uint) error {
	if _, err := s.GetByID(id, transportadorID); err != nil {
		return err
	}
	return s.veiculoRepo.Update(id, map[string]interface{}{"ativo": false})
}

func normalizePlaca(raw string) (string, error) {
	placa := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", ""))
	if len(placa) < 7 || len(placa) > 8 {
		return "", validationError("placa", "placa must have 7 characters")
	}
	return placa, nil
}
