package repository

import (
	"errors"

	"github.com/fretehub/fretehub/internal/models"

	"gorm.io/gorm"
)

// EnderecoRepository is the address data access interface.
type EnderecoRepository interface {
	Create(endereco *models.Endereco) error
	GetByID(id uint) (*models.Endereco, error)
	ListByUsuario(usuarioID uint) ([]models.Endereco, error)
	CountByUsuario(usuarioID uint) (int64, error)
	Update(id uint, updates map[string]interface{}) error
	ClearPrincipal(usuarioID uint) error
	GetOldestByUsuario(usuarioID uint) (*models.Endereco, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormEnderecoRepository
}

// GormEnderecoRepository is the GORM implementation.
type GormEnderecoRepository struct {
	db *gorm.DB
}

// NewEnderecoRepository creates the address repository.
func NewEnderecoRepository(db *gorm.DB) *GormEnderecoRepository {
	return &GormEnderecoRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormEnderecoRepository) WithTx(tx *gorm.DB) *GormEnderecoRepository {
	if tx == nil {
		return r
	}
	return &GormEnderecoRepository{db: tx}
}

// Create inserts an address.
func (r *GormEnderecoRepository) Create(endereco *models.Endereco) error {
	return r.db.Create(endereco).Error
}

// GetByID fetches an address by ID.
func (r *GormEnderecoRepository) GetByID(id uint) (*models.Endereco, error) {
	var endereco models.Endereco
	if err := r.db.First(&endereco, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &endereco, nil
}

// ListByUsuario lists a user's addresses, primary first then insertion order.
func (r *GormEnderecoRepository) ListByUsuario(usuarioID uint) ([]models.Endereco, error) {
	var enderecos []models.Endereco
	if err := r.db.Where("usuario_id = ?", usuarioID).
		Order("principal desc, id asc").
		Find(&enderecos).Error; err != nil {
		return nil, err
	}
	return enderecos, nil
}

// CountByUsuario counts a user's addresses.
func (r *GormEnderecoRepository) CountByUsuario(usuarioID uint) (int64, error) {
	var total int64
	if err := r.db.Model(&models.Endereco{}).Where("usuario_id = ?", usuarioID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update applies a partial update by ID.
func (r *GormEnderecoRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Endereco{}).Where("id = ?", id).Updates(updates).Error
}

// ClearPrincipal unsets the primary flag on all of a user's addresses.
func (r *GormEnderecoRepository) ClearPrincipal(usuarioID uint) error {
	return r.db.Model(&models.Endereco{}).
		Where("usuario_id = ? AND principal = ?", usuarioID, true).
		Update("principal", false).Error
}

// GetOldestByUsuario fetches the user's lowest-id address, if any.
func (r *GormEnderecoRepository) GetOldestByUsuario(usuarioID uint) (*models.Endereco, error) {
	var endereco models.Endereco
	if err := r.db.Where("usuario_id = ?", usuarioID).
		Order("id asc").
		First(&endereco).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &endereco, nil
}

// Delete removes an address.
func (r *GormEnderecoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Endereco{}, id).Error
}
