package repository

import (
	"errors"

	"github.com/fretehub/fretehub/internal/models"

	"gorm.io/gorm"
)

// VeiculoRepository is the vehicle data access interface.
type VeiculoRepository interface {
	Create(veiculo *models.Veiculo) error
	GetByID(id uint) (*models.Veiculo, error)
	GetByPlaca(placa string) (*models.Veiculo, error)
	ListByTransportador(transportadorID uint, onlyActive bool) ([]models.Veiculo, error)
	Update(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormVeiculoRepository
}

// GormVeiculoRepository is the GORM implementation.
type GormVeiculoRepository struct {
	db *gorm.DB
}

// NewVeiculoRepository creates the vehicle repository.
func NewVeiculoRepository(db *gorm.DB) *GormVeiculoRepository {
	return &GormVeiculoRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormVeiculoRepository) WithTx(tx *gorm.DB) *GormVeiculoRepository {
	if tx == nil {
		return r
	}
	return &GormVeiculoRepository{db: tx}
}

// Create inserts a vehicle.
func (r *GormVeiculoRepository) Create(veiculo *models.Veiculo) error {
	return r.db.Create(veiculo).Error
}

// GetByID fetches a vehicle by ID.
func (r *GormVeiculoRepository) GetByID(id uint) (*models.Veiculo, error) {
	var veiculo models.Veiculo
	if err := r.db.First(&veiculo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &veiculo, nil
}

// GetByPlaca fetches an active vehicle by plate, regardless of owner.
func (r *GormVeiculoRepository) GetByPlaca(placa string) (*models.Veiculo, error) {
	var veiculo models.Veiculo
	if err := r.db.Where("placa = ? AND ativo = ?", placa, true).First(&veiculo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &veiculo, nil
}

// ListByTransportador lists a carrier's vehicles.
func (r *GormVeiculoRepository) ListByTransportador(transportadorID uint, onlyActive bool) ([]models.Veiculo, error) {
	var veiculos []models.Veiculo
	query := r.db.Where("transportador_id = ?", transportadorID)
	if onlyActive {
		query = query.Where("ativo = ?", true)
	}
	if err := query.Order("id asc").Find(&veiculos).Error; err != nil {
		return nil, err
	}
	return veiculos, nil
}

// Update applies a partial update by ID.
func (r *GormVeiculoRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Veiculo{}).Where("id = ?", id).Updates(updates).Error
}
