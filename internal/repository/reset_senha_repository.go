package repository

import (
	"errors"
	"time"

	"github.com/fretehub/fretehub/internal/models"

	"gorm.io/gorm"
)

// ResetSenhaRepository is the password reset token data access interface.
type ResetSenhaRepository interface {
	Create(reset *models.ResetSenha) error
	GetByToken(token string) (*models.ResetSenha, error)
	MarkUsed(id uint) error
	InvalidateByUsuario(usuarioID uint) error
	DeleteExpired(now time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormResetSenhaRepository
}

// GormResetSenhaRepository is the GORM implementation.
type GormResetSenhaRepository struct {
	db *gorm.DB
}

// NewResetSenhaRepository creates the reset token repository.
func NewResetSenhaRepository(db *gorm.DB) *GormResetSenhaRepository {
	return &GormResetSenhaRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormResetSenhaRepository) WithTx(tx *gorm.DB) *GormResetSenhaRepository {
	if tx == nil {
		return r
	}
	return &GormResetSenhaRepository{db: tx}
}

// Create inserts a reset token.
func (r *GormResetSenhaRepository) Create(reset *models.ResetSenha) error {
	return r.db.Create(reset).Error
}

// GetByToken fetches a reset token.
func (r *GormResetSenhaRepository) GetByToken(token string) (*models.ResetSenha, error) {
	if token == "" {
		return nil, nil
	}
	var reset models.ResetSenha
	if err := r.db.Where("token = ?", token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reset, nil
}

// MarkUsed consumes a reset token.
func (r *GormResetSenhaRepository) MarkUsed(id uint) error {
	return r.db.Model(&models.ResetSenha{}).Where("id = ?", id).Update("usado", true).Error
}

// InvalidateByUsuario consumes every outstanding token of a user.
func (r *GormResetSenhaRepository) InvalidateByUsuario(usuarioID uint) error {
	return r.db.Model(&models.ResetSenha{}).
		Where("usuario_id = ? AND usado = ?", usuarioID, false).
		Update("usado", true).Error
}

// DeleteExpired removes tokens past their expiry and reports how many.
func (r *GormResetSenhaRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("data_expiracao < ?", now).Delete(&models.ResetSenha{})
	return result.RowsAffected, result.Error
}
