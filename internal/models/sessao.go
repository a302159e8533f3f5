package models

import (
	"time"
)

// Sessao is a persisted login session. Tokens are opaque random strings
// issued at login and validated on each authenticated request alongside
// the JWT, so a session can be revoked server-side.
type Sessao struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UsuarioID     uint      `gorm:"index;not null" json:"usuario_id"`
	Token         string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"token"`
	DataCriacao   time.Time `json:"data_criacao"`
	DataExpiracao time.Time `gorm:"index;not null" json:"data_expiracao"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}

// TableName sets the table name.
func (Sessao) TableName() string {
	return "sessoes"
}

// ResetSenha is a single-use password reset token.
type ResetSenha struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UsuarioID     uint      `gorm:"index;not null" json:"usuario_id"`
	Token         string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"token"`
	Usado         bool      `gorm:"default:false" json:"usado"`
	DataCriacao   time.Time `json:"data_criacao"`
	DataExpiracao time.Time `gorm:"index;not null" json:"data_expiracao"`
}

// TableName sets the table name.
func (ResetSenha) TableName() string {
	return "reset_senha"
}
