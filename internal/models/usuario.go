package models

import (
	"time"
)

// Usuario is the base account shared by shippers and carriers.
type Usuario struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	Senha              string     `gorm:"not null" json:"-"`                      // bcrypt hash, never serialized
	TipoUsuario        string     `gorm:"index;not null" json:"tipo_usuario"`     // embarcador / transportador
	Nome               string     `gorm:"not null" json:"nome"`
	Telefone           string     `gorm:"type:varchar(20)" json:"telefone"`
	Documento          string     `gorm:"type:varchar(20)" json:"documento"`
	DocumentoTipo      string     `gorm:"type:varchar(10)" json:"documento_tipo"` // cpf / cnpj
	Verificado         bool       `gorm:"default:false" json:"verificado"`
	TokenVerificacao   *string    `gorm:"index" json:"-"`
	DataExpiracaoToken *time.Time `json:"-"`
	Ativo              bool       `gorm:"default:true" json:"ativo"`
	FotoPerfil         string     `json:"foto_perfil,omitempty"`
	DataCriacao        time.Time  `gorm:"index;autoCreateTime" json:"data_criacao"`
	DataAtualizacao    time.Time  `gorm:"autoUpdateTime" json:"data_atualizacao"`
}

// TableName sets the table name.
func (Usuario) TableName() string {
	return "usuarios"
}
