package repository

import (
	"errors"

	"github.com/fretehub/fretehub/internal/models"

	"gorm.io/gorm"
)

// UsuarioRepository is the user data access interface.
type UsuarioRepository interface {
	Create(usuario *models.Usuario) error
	GetByID(id uint) (*models.Usuario, error)
	GetByEmail(email string) (*models.Usuario, error)
	GetByTokenVerificacao(token string) (*models.Usuario, error)
	Update(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormUsuarioRepository
}

// GormUsuarioRepository is the GORM implementation.
type GormUsuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository creates the user repository.
func NewUsuarioRepository(db *gorm.DB) *GormUsuarioRepository {
	return &GormUsuarioRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormUsuarioRepository) WithTx(tx *gorm.DB) *GormUsuarioRepository {
	if tx == nil {
		return r
	}
	return &GormUsuarioRepository{db: tx}
}

// Create inserts a user.
func (r *GormUsuarioRepository) Create(usuario *models.Usuario) error {
	return r.db.Create(usuario).Error
}

// GetByID fetches a user by ID.
func (r *GormUsuarioRepository) GetByID(id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := r.db.First(&usuario, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

// GetByEmail fetches a user by email.
func (r *GormUsuarioRepository) GetByEmail(email string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := r.db.Where("email = ?", email).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

// GetByTokenVerificacao fetches a user by pending verification token.
func (r *GormUsuarioRepository) GetByTokenVerificacao(token string) (*models.Usuario, error) {
	if token == "" {
		return nil, nil
	}
	var usuario models.Usuario
	if err := r.db.Where("token_verificacao = ?", token).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

// Update applies a partial update by ID.
func (r *GormUsuarioRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Usuario{}).Where("id = ?", id).Updates(updates).Error
}
