package models

// Embarcador is the shipper profile attached to a usuario.
type Embarcador struct {
	ID                     uint     `gorm:"primarykey" json:"id"`
	UsuarioID              uint     `gorm:"uniqueIndex;not null" json:"usuario_id"`
	RazaoSocial            string   `json:"razao_social,omitempty"`
	NomeFantasia           string   `json:"nome_fantasia,omitempty"`
	InscricaoEstadual      string   `json:"inscricao_estadual,omitempty"`
	Segmento               string   `json:"segmento,omitempty"`
	Site                   string   `json:"site,omitempty"`
	QuantidadeFuncionarios *int     `json:"quantidade_funcionarios,omitempty"`
	VolumeMedioCargas      *int     `json:"volume_medio_cargas,omitempty"` // average monthly loads
	Usuario                *Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}

// TableName sets the table name.
func (Embarcador) TableName() string {
	return "embarcadores"
}
