package repository

import (
	"errors"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/models"

	"gorm.io/gorm"
)

// CargaRepository is the load data access interface.
type CargaRepository interface {
	Create(carga *models.Carga) error
	GetByID(id uint) (*models.Carga, error)
	GetWithOfertas(id uint) (*models.Carga, error)
	List(filter CargaListFilter) ([]models.Carga, int64, error)
	Update(id uint, updates map[string]interface{}) error
	UpdateIfStatus(id uint, status string, updates map[string]interface{}) (bool, error)
	WithTx(tx *gorm.DB) *GormCargaRepository
}

// GormCargaRepository is the GORM implementation.
type GormCargaRepository struct {
	db *gorm.DB
}

// NewCargaRepository creates the load repository.
func NewCargaRepository(db *gorm.DB) *GormCargaRepository {
	return &GormCargaRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCargaRepository) WithTx(tx *gorm.DB) *GormCargaRepository {
	if tx == nil {
		return r
	}
	return &GormCargaRepository{db: tx}
}

// Create inserts a load.
func (r *GormCargaRepository) Create(carga *models.Carga) error {
	return r.db.Create(carga).Error
}

// GetByID fetches a load by ID.
func (r *GormCargaRepository) GetByID(id uint) (*models.Carga, error) {
	var carga models.Carga
	if err := r.db.First(&carga, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &carga, nil
}

// GetWithOfertas fetches a load with its offers ranked cheapest and oldest first.
func (r *GormCargaRepository) GetWithOfertas(id uint) (*models.Carga, error) {
	var carga models.Carga
	query := r.db.Preload("Ofertas", func(db *gorm.DB) *gorm.DB {
		return db.Order("valor asc, data_oferta asc")
	})
	if err := query.First(&carga, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &carga, nil
}

// List queries loads by filter. Canceled loads are excluded unless the filter
// asks for them by status or sets IncludeCanceled. Count and page share the
// same conditions.
func (r *GormCargaRepository) List(filter CargaListFilter) ([]models.Carga, int64, error) {
	query := r.db.Model(&models.Carga{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	} else if !filter.IncludeCanceled {
		query = query.Where("status <> ?", constants.CargaStatusCancelada)
	}
	if filter.EmbarcadorID != 0 {
		query = query.Where("embarcador_id = ?", filter.EmbarcadorID)
	}
	if filter.TransportadorID != 0 {
		query = query.Where("transportador_id = ?", filter.TransportadorID)
	}
	if filter.OrigemEstado != "" {
		query = query.Where("origem_estado = ?", filter.OrigemEstado)
	}
	if filter.DestinoEstado != "" {
		query = query.Where("destino_estado = ?", filter.DestinoEstado)
	}
	if filter.DataColetaMin != nil {
		query = query.Where("data_coleta >= ?", *filter.DataColetaMin)
	}
	if filter.DataColetaMax != nil {
		query = query.Where("data_coleta <= ?", *filter.DataColetaMax)
	}
	if filter.PesoMin != nil {
		query = query.Where("peso >= ?", *filter.PesoMin)
	}
	if filter.PesoMax != nil {
		query = query.Where("peso <= ?", *filter.PesoMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var cargas []models.Carga
	if err := query.Order("data_criacao desc, id desc").Find(&cargas).Error; err != nil {
		return nil, 0, err
	}
	return cargas, total, nil
}

// Update applies a partial update by ID.
func (r *GormCargaRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Carga{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateIfStatus applies a partial update only while the load still has the
// expected status, reporting whether a row changed.
func (r *GormCargaRepository) UpdateIfStatus(id uint, status string, updates map[string]interface{}) (bool, error) {
	result := r.db.Model(&models.Carga{}).
		Where("id = ? AND status = ?", id, status).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
