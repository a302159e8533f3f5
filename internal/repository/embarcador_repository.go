package repository

import (
	"errors"

	"github.com/fretehub/fretehub/internal/models"

	"gorm.io/gorm"
)

// EmbarcadorRepository is the shipper profile data access interface.
type EmbarcadorRepository interface {
	Create(embarcador *models.Embarcador) error
	GetByID(id uint) (*models.Embarcador, error)
	GetByUsuarioID(usuarioID uint) (*models.Embarcador, error)
	Update(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormEmbarcadorRepository
}

// GormEmbarcadorRepository is the GORM implementation.
type GormEmbarcadorRepository struct {
	db *gorm.DB
}

// NewEmbarcadorRepository creates the shipper profile repository.
func NewEmbarcadorRepository(db *gorm.DB) *GormEmbarcadorRepository {
	return &GormEmbarcadorRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormEmbarcadorRepository) WithTx(tx *gorm.DB) *GormEmbarcadorRepository {
	if tx == nil {
		return r
	}
	return &GormEmbarcadorRepository{db: tx}
}

// Create inserts a shipper profile.
func (r *GormEmbarcadorRepository) Create(embarcador *models.Embarcador) error {
	return r.db.Create(embarcador).Error
}

// GetByID fetches a shipper profile with its user.
func (r *GormEmbarcadorRepository) GetByID(id uint) (*models.Embarcador, error) {
	var embarcador models.Embarcador
	if err := r.db.Preload("Usuario").First(&embarcador, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &embarcador, nil
}

// GetByUsuarioID fetches the shipper profile owned by a user.
func (r *GormEmbarcadorRepository) GetByUsuarioID(usuarioID uint) (*models.Embarcador, error) {
	var embarcador models.Embarcador
	if err := r.db.Preload("Usuario").Where("usuario_id = ?", usuarioID).First(&embarcador).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &embarcador, nil
}

// Update applies a partial update by ID.
func (r *GormEmbarcadorRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Embarcador{}).Where("id = ?", id).Updates(updates).Error
}
