package repository

import (
	"errors"

	"github.com/fretehub/fretehub/internal/models"

	"gorm.io/gorm"
)

// TransportadorRepository is the carrier profile data access interface.
type TransportadorRepository interface {
	Create(transportador *models.Transportador) error
	GetByID(id uint) (*models.Transportador, error)
	GetByUsuarioID(usuarioID uint) (*models.Transportador, error)
	Update(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormTransportadorRepository
}

// GormTransportadorRepository is the GORM implementation.
type GormTransportadorRepository struct {
	db *gorm.DB
}

// NewTransportadorRepository creates the carrier profile repository.
func NewTransportadorRepository(db *gorm.DB) *GormTransportadorRepository {
	return &GormTransportadorRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormTransportadorRepository) WithTx(tx *gorm.DB) *GormTransportadorRepository {
	if tx == nil {
		return r
	}
	return &GormTransportadorRepository{db: tx}
}

// Create inserts a carrier profile.
func (r *GormTransportadorRepository) Create(transportador *models.Transportador) error {
	return r.db.Create(transportador).Error
}

// GetByID fetches a carrier profile with its user.
func (r *GormTransportadorRepository) GetByID(id uint) (*models.Transportador, error) {
	var transportador models.Transportador
	if err := r.db.Preload("Usuario").First(&transportador, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transportador, nil
}

// GetByUsuarioID fetches the carrier profile owned by a user.
func (r *GormTransportadorRepository) GetByUsuarioID(usuarioID uint) (*models.Transportador, error) {
	var transportador models.Transportador
	if err := r.db.Preload("Usuario").Where("usuario_id = ?", usuarioID).First(&transportador).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transportador, nil
}

// Update applies a partial update by ID.
func (r *GormTransportadorRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Transportador{}).Where("id = ?", id).Updates(updates).Error
}
