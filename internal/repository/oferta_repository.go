package repository

import (
	"errors"
	"time"

	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/models"

	"gorm.io/gorm"
)

// OfertaRepository is the offer data access interface.
type OfertaRepository interface {
	Create(oferta *models.Oferta) error
	GetByID(id uint) (*models.Oferta, error)
	GetByCargaAndTransportador(cargaID, transportadorID uint) (*models.Oferta, error)
	ListByCarga(cargaID uint) ([]models.Oferta, error)
	List(filter OfertaListFilter) ([]models.Oferta, int64, error)
	ListByEmbarcador(embarcadorID uint, status string, cargaID uint, page, pageSize int) ([]models.Oferta, int64, error)
	CountPendentes(cargaID, excludeID uint) (int64, error)
	Update(id uint, updates map[string]interface{}) error
	UpdateIfStatus(id uint, status string, updates map[string]interface{}) (bool, error)
	RejectSiblings(cargaID, acceptedID uint, respondedAt time.Time) error
	WithTx(tx *gorm.DB) *GormOfertaRepository
}

// GormOfertaRepository is the GORM implementation.
type GormOfertaRepository struct {
	db *gorm.DB
}

// NewOfertaRepository creates the offer repository.
func NewOfertaRepository(db *gorm.DB) *GormOfertaRepository {
	return &GormOfertaRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOfertaRepository) WithTx(tx *gorm.DB) *GormOfertaRepository {
	if tx == nil {
		return r
	}
	return &GormOfertaRepository{db: tx}
}

// Create inserts an offer.
func (r *GormOfertaRepository) Create(oferta *models.Oferta) error {
	return r.db.Create(oferta).Error
}

// GetByID fetches an offer with its load and carrier.
func (r *GormOfertaRepository) GetByID(id uint) (*models.Oferta, error) {
	var oferta models.Oferta
	if err := r.db.Preload("Carga").Preload("Transportador").Preload("Transportador.Usuario").
		First(&oferta, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &oferta, nil
}

// GetByCargaAndTransportador fetches a carrier's offer on a load, if any.
func (r *GormOfertaRepository) GetByCargaAndTransportador(cargaID, transportadorID uint) (*models.Oferta, error) {
	var oferta models.Oferta
	if err := r.db.Where("carga_id = ? AND transportador_id = ?", cargaID, transportadorID).
		First(&oferta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &oferta, nil
}

// ListByCarga lists a load's offers ranked cheapest first, oldest breaking ties.
func (r *GormOfertaRepository) ListByCarga(cargaID uint) ([]models.Oferta, error) {
	var ofertas []models.Oferta
	if err := r.db.Preload("Transportador").Preload("Transportador.Usuario").
		Where("carga_id = ?", cargaID).
		Order("valor asc, data_oferta asc").
		Find(&ofertas).Error; err != nil {
		return nil, err
	}
	return ofertas, nil
}

// List queries offers by filter, newest first.
func (r *GormOfertaRepository) List(filter OfertaListFilter) ([]models.Oferta, int64, error) {
	query := r.db.Model(&models.Oferta{})

	if filter.CargaID != 0 {
		query = query.Where("carga_id = ?", filter.CargaID)
	}
	if filter.TransportadorID != 0 {
		query = query.Where("transportador_id = ?", filter.TransportadorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var ofertas []models.Oferta
	if err := query.Preload("Carga").Order("data_oferta desc, id desc").Find(&ofertas).Error; err != nil {
		return nil, 0, err
	}
	return ofertas, total, nil
}

// ListByEmbarcador lists offers across all of a shipper's loads, newest first.
func (r *GormOfertaRepository) ListByEmbarcador(embarcadorID uint, status string, cargaID uint, page, pageSize int) ([]models.Oferta, int64, error) {
	base := r.db.Model(&models.Oferta{}).
		Joins("JOIN cargas ON cargas.id = ofertas.carga_id").
		Where("cargas.embarcador_id = ?", embarcadorID)
	if status != "" {
		base = base.Where("ofertas.status = ?", status)
	}
	if cargaID != 0 {
		base = base.Where("ofertas.carga_id = ?", cargaID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applyPagination(base, page, pageSize)

	var ofertas []models.Oferta
	if err := query.Preload("Carga").Preload("Transportador").Preload("Transportador.Usuario").
		Order("ofertas.data_oferta desc, ofertas.id desc").
		Find(&ofertas).Error; err != nil {
		return nil, 0, err
	}
	return ofertas, total, nil
}

// CountPendentes counts the pending offers on a load, optionally leaving one out.
func (r *GormOfertaRepository) CountPendentes(cargaID, excludeID uint) (int64, error) {
	query := r.db.Model(&models.Oferta{}).
		Where("carga_id = ? AND status = ?", cargaID, constants.OfertaStatusPendente)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update applies a partial update by ID.
func (r *GormOfertaRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Oferta{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateIfStatus applies a partial update only while the offer still has the
// expected status, reporting whether a row changed. The status predicate
// makes concurrent state transitions lose instead of overwriting each other.
func (r *GormOfertaRepository) UpdateIfStatus(id uint, status string, updates map[string]interface{}) (bool, error) {
	result := r.db.Model(&models.Oferta{}).
		Where("id = ? AND status = ?", id, status).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RejectSiblings marks every other pending offer on the load as rejected.
func (r *GormOfertaRepository) RejectSiblings(cargaID, acceptedID uint, respondedAt time.Time) error {
	return r.db.Model(&models.Oferta{}).
		Where("carga_id = ? AND id <> ? AND status = ?", cargaID, acceptedID, constants.OfertaStatusPendente).
		Updates(map[string]interface{}{
			"status":        constants.OfertaStatusRecusada,
			"data_resposta": respondedAt,
		}).Error
}
