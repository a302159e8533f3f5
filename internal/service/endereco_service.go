package service

import (
	"strings"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/repository"

	"gorm.io/gorm"
)

// EnderecoService manages a user's address book. At most one address per
// user carries the principal flag.
type EnderecoService struct {
	enderecoRepo repository.EnderecoRepository
}

// NewEnderecoService creates the address service.
func NewEnderecoService(enderecoRepo repository.EnderecoRepository) *EnderecoService {
	return &EnderecoService{enderecoRepo: enderecoRepo}
}

// CreateEnderecoInput carries the address fields.
type CreateEnderecoInput struct {
	UsuarioID   uint
	Tipo        string
	CEP         string
	Logradouro  string
	Numero      string
	Complemento string
	Bairro      string
	Cidade      string
	Estado      string
	Principal   bool
	Observacoes string
}

// UpdateEnderecoInput carries the mutable address fields.
type UpdateEnderecoInput struct {
	Tipo        *string
	CEP         *string
	Logradouro  *string
	Numero      *string
	Complemento *string
	Bairro      *string
	Cidade      *string
	Estado      *string
	Principal   *bool
	Observacoes *string
}

// Create adds an address. The first address of a user always becomes the
// primary one; a request for primary demotes the current holder in the same
// transaction.
func (s *EnderecoService) Create(input CreateEnderecoInput) (*models.Endereco, error) {
	if input.UsuarioID == 0 {
		return nil, validationError("usuario_id", "usuario_id is required")
	}
	cep, err := normalizeCEP(input.CEP)
	if err != nil {
		return nil, err
	}
	estado, err := normalizeEstado(input.Estado)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Logradouro) == "" {
		return nil, validationError("logradouro", "logradouro is required")
	}
	if strings.TrimSpace(input.Cidade) == "" {
		return nil, validationError("cidade", "cidade is required")
	}
	tipo := strings.TrimSpace(input.Tipo)
	if tipo == "" {
		tipo = constants.EnderecoTipoOutro
	}

	endereco := &models.Endereco{
		UsuarioID:   input.UsuarioID,
		Tipo:        tipo,
		CEP:         cep,
		Logradouro:  strings.TrimSpace(input.Logradouro),
		Numero:      strings.TrimSpace(input.Numero),
		Complemento: strings.TrimSpace(input.Complemento),
		Bairro:      strings.TrimSpace(input.Bairro),
		Cidade:      strings.TrimSpace(input.Cidade),
		Estado:      estado,
		Principal:   input.Principal,
		Observacoes: strings.TrimSpace(input.Observacoes),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.enderecoRepo.WithTx(tx)
		total, err := repo.CountByUsuario(input.UsuarioID)
		if err != nil {
			return err
		}
		if total == 0 {
			endereco.Principal = true
		} else if endereco.Principal {
			if err := repo.ClearPrincipal(input.UsuarioID); err != nil {
				return err
			}
		}
		return repo.Create(endereco)
	})
	if err != nil {
		return nil, err
	}
	return endereco, nil
}

// GetByID fetches an address owned by the user.
func (s *EnderecoService) GetByID(id, usuarioID uint) (*models.Endereco, error) {
	endereco, err := s.enderecoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if endereco == nil || endereco.UsuarioID != usuarioID {
		return nil, ErrNotFound
	}
	return endereco, nil
}

// ListByUsuario lists a user's addresses, primary first.
func (s *EnderecoService) ListByUsuario(usuarioID uint) ([]models.Endereco, error) {
	return s.enderecoRepo.ListByUsuario(usuarioID)
}

// Update applies a partial update. Promoting an address to primary demotes
// the current holder in the same transaction; demoting the only primary is
// rejected so the invariant holds.
func (s *EnderecoService) Update(id, usuarioID uint, input UpdateEnderecoInput) (*models.Endereco, error) {
	endereco, err := s.GetByID(id, usuarioID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Tipo != nil {
		updates["tipo"] = strings.TrimSpace(*input.Tipo)
	}
	if input.CEP != nil {
		cep, err := normalizeCEP(*input.CEP)
		if err != nil {
			return nil, err
		}
		updates["cep"] = cep
	}
	if input.Logradouro != nil {
		if strings.TrimSpace(*input.Logradouro) == "" {
			return nil, validationError("logradouro", "logradouro is required")
		}
		updates["logradouro"] = strings.TrimSpace(*input.Logradouro)
	}
	if input.Numero != nil {
		updates["numero"] = strings.TrimSpace(*input.Numero)
	}
	if input.Complemento != nil {
		updates["complemento"] = strings.TrimSpace(*input.Complemento)
	}
	if input.Bairro != nil {
		updates["bairro"] = strings.TrimSpace(*input.Bairro)
	}
	if input.Cidade != nil {
		if strings.TrimSpace(*input.Cidade) == "" {
			return nil, validationError("cidade", "cidade is required")
		}
		updates["cidade"] = strings.TrimSpace(*input.Cidade)
	}
	if input.Estado != nil {
		estado, err := normalizeEstado(*input.Estado)
		if err != nil {
			return nil, err
		}
		updates["estado"] = estado
	}
	if input.Observacoes != nil {
		updates["observacoes"] = strings.TrimSpace(*input.Observacoes)
	}

	promote := input.Principal != nil && *input.Principal && !endereco.Principal
	if input.Principal != nil && !*input.Principal && endereco.Principal {
		return nil, validationError("principal", "cannot unset the primary address directly; promote another one")
	}

	if len(updates) == 0 && !promote {
		return nil, ErrNothingToUpdate
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.enderecoRepo.WithTx(tx)
		if promote {
			if err := repo.ClearPrincipal(usuarioID); err != nil {
				return err
			}
			updates["principal"] = true
		}
		return repo.Update(id, updates)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id, usuarioID)
}

// SetAsPrincipal promotes an address to primary, demoting the current one.
func (s *EnderecoService) SetAsPrincipal(id, usuarioID uint) (*models.Endereco, error) {
	endereco, err := s.GetByID(id, usuarioID)
	if err != nil {
		return nil, err
	}
	if endereco.Principal {
		return endereco, nil
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.enderecoRepo.WithTx(tx)
		if err := repo.ClearPrincipal(usuarioID); err != nil {
			return err
		}
		return repo.Update(id, map[string]interface{}{"principal": true})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id, usuarioID)
}

// Delete removes an address. When the primary is removed, the remaining
// address with the lowest id is promoted so the user keeps a primary.
func (s *EnderecoService) Delete(id, usuarioID uint) error {
	endereco, err := s.GetByID(id, usuarioID)
	if err != nil {
		return err
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.enderecoRepo.WithTx(tx)
		if err := repo.Delete(id); err != nil {
			return err
		}
		if !endereco.Principal {
			return nil
		}
		oldest, err := repo.GetOldestByUsuario(usuarioID)
		if err != nil {
			return err
		}
		if oldest == nil {
			return nil
		}
		return repo.Update(oldest.ID, map[string]interface{}{"principal": true})
	})
}

func normalizeCEP(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 8 {
		return "", validationError("cep", "cep must have 8 digits")
	}
	return digits.String(), nil
}

func normalizeEstado(raw string) (string, error) {
	estado := strings.ToUpper(strings.TrimSpace(raw))
	if len(estado) != 2 {
		return "", validationError("estado", "estado must be a 2-letter UF code")
	}
	return estado, nil
}
