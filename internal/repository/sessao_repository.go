package repository

import (
	"errors"
	"time"

	"github.com/fretehub/fretehub/internal/models"

	"gorm.io/gorm"
)

// SessaoRepository is the login session data access interface.
type SessaoRepository interface {
	Create(sessao *models.Sessao) error
	GetByToken(token string) (*models.Sessao, error)
	DeleteByToken(token string) error
	DeleteByUsuario(usuarioID uint) error
	DeleteExpired(now time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormSessaoRepository
}

// GormSessaoRepository is the GORM implementation.
type GormSessaoRepository struct {
	db *gorm.DB
}

// NewSessaoRepository creates the session repository.
func NewSessaoRepository(db *gorm.DB) *GormSessaoRepository {
	return &GormSessaoRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormSessaoRepository) WithTx(tx *gorm.DB) *GormSessaoRepository {
	if tx == nil {
		return r
	}
	return &GormSessaoRepository{db: tx}
}

// Create inserts a session.
func (r *GormSessaoRepository) Create(sessao *models.Sessao) error {
	return r.db.Create(sessao).Error
}

// GetByToken fetches a session by its opaque token.
func (r *GormSessaoRepository) GetByToken(token string) (*models.Sessao, error) {
	if token == "" {
		return nil, nil
	}
	var sessao models.Sessao
	if err := r.db.Where("token = ?", token).First(&sessao).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sessao, nil
}

// DeleteByToken removes a single session.
func (r *GormSessaoRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.Sessao{}).Error
}

// DeleteByUsuario removes every session of a user.
func (r *GormSessaoRepository) DeleteByUsuario(usuarioID uint) error {
	return r.db.Where("usuario_id = ?", usuarioID).Delete(&models.Sessao{}).Error
}

// DeleteExpired removes sessions past their expiry and reports how many.
func (r *GormSessaoRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("data_expiracao < ?", now).Delete(&models.Sessao{})
	return result.RowsAffected, result.Error
}
