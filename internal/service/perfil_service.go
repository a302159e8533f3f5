package service

import (
	"strings"

	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/repository"
)

// PerfilService reads and updates the role profiles attached to an account.
type PerfilService struct {
	embarcadorRepo    repository.EmbarcadorRepository
	transportadorRepo repository.TransportadorRepository
}

// NewPerfilService creates the profile service.
func NewPerfilService(embarcadorRepo repository.EmbarcadorRepository, transportadorRepo repository.TransportadorRepository) *PerfilService {
	return &PerfilService{embarcadorRepo: embarcadorRepo, transportadorRepo: transportadorRepo}
}

// GetEmbarcadorByUsuario resolves a user's shipper profile.
func (s *PerfilService) GetEmbarcadorByUsuario(usuarioID uint) (*models.Embarcador, error) {
	embarcador, err := s.embarcadorRepo.GetByUsuarioID(usuarioID)
	if err != nil {
		return nil, err
	}
	if embarcador == nil {
		return nil, ErrNotFound
	}
	return embarcador, nil
}

// GetTransportadorByUsuario resolves a user's carrier profile.
func (s *PerfilService) GetTransportadorByUsuario(usuarioID uint) (*models.Transportador, error) {
	transportador, err := s.transportadorRepo.GetByUsuarioID(usuarioID)
	if err != nil {
		return nil, err
	}
	if transportador == nil {
		return nil, ErrNotFound
	}
	return transportador, nil
}

// UpdateEmbarcadorInput carries the mutable shipper profile fields.
type UpdateEmbarcadorInput struct {
	RazaoSocial            *string
	NomeFantasia           *string
	InscricaoEstadual      *string
	Segmento               *string
	Site                   *string
	QuantidadeFuncionarios *int
	VolumeMedioCargas      *int
}

// UpdateEmbarcador applies a partial update to the user's shipper profile.
func (s *PerfilService) UpdateEmbarcador(usuarioID uint, input UpdateEmbarcadorInput) (*models.Embarcador, error) {
	embarcador, err := s.GetEmbarcadorByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.RazaoSocial != nil {
		updates["razao_social"] = strings.TrimSpace(*input.RazaoSocial)
	}
	if input.NomeFantasia != nil {
		updates["nome_fantasia"] = strings.TrimSpace(*input.NomeFantasia)
	}
	if input.InscricaoEstadual != nil {
		updates["inscricao_estadual"] = strings.TrimSpace(*input.InscricaoEstadual)
	}
	if input.Segmento != nil {
		updates["segmento"] = strings.TrimSpace(*input.Segmento)
	}
	if input.Site != nil {
		updates["site"] = strings.TrimSpace(*input.Site)
	}
	if input.QuantidadeFuncionarios != nil {
		if *input.QuantidadeFuncionarios < 0 {
			return nil, validationError("quantidade_funcionarios", "must not be negative")
		}
		updates["quantidade_funcionarios"] = *input.QuantidadeFuncionarios
	}
	if input.VolumeMedioCargas != nil {
		if *input.VolumeMedioCargas < 0 {
			return nil, validationError("volume_medio_cargas", "must not be negative")
		}
		updates["volume_medio_cargas"] = *input.VolumeMedioCargas
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	if err := s.embarcadorRepo.Update(embarcador.ID, updates); err != nil {
		return nil, err
	}
	return s.GetEmbarcadorByUsuario(usuarioID)
}

// UpdateTransportadorInput carries the mutable carrier profile fields.
type UpdateTransportadorInput struct {
	RazaoSocial       *string
	NomeFantasia      *string
	InscricaoEstadual *string
	ANTT              *string
	AnosExperiencia   *int
	PossuiFrota       *bool
}

// UpdateTransportador applies a partial update to the user's carrier profile.
func (s *PerfilService) UpdateTransportador(usuarioID uint, input UpdateTransportadorInput) (*models.Transportador, error) {
	transportador, err := s.GetTransportadorByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.RazaoSocial != nil {
		updates["razao_social"] = strings.TrimSpace(*input.RazaoSocial)
	}
	if input.NomeFantasia != nil {
		updates["nome_fantasia"] = strings.TrimSpace(*input.NomeFantasia)
	}
	if input.InscricaoEstadual != nil {
		updates["inscricao_estadual"] = strings.TrimSpace(*input.InscricaoEstadual)
	}
	if input.ANTT != nil {
		updates["antt"] = strings.TrimSpace(*input.ANTT)
	}
	if input.AnosExperiencia != nil {
		if *input.AnosExperiencia < 0 {
			return nil, validationError("anos_experiencia", "must not be negative")
		}
		updates["anos_experiencia"] = *input.AnosExperiencia
	}
	if input.PossuiFrota != nil {
		updates["possui_frota"] = *input.PossuiFrota
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	if err := s.transportadorRepo.Update(transportador.ID, updates); err != nil {
		return nil, err
	}
	return s.GetTransportadorByUsuario(usuarioID)
}
