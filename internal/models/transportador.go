package models

// Transportador is the carrier profile attached to a usuario.
type Transportador struct {
	ID                uint     `gorm:"primarykey" json:"id"`
	UsuarioID         uint     `gorm:"uniqueIndex;not null" json:"usuario_id"`
	RazaoSocial       string   `json:"razao_social,omitempty"`
	NomeFantasia      string   `json:"nome_fantasia,omitempty"`
	InscricaoEstadual string   `json:"inscricao_estadual,omitempty"`
	ANTT              string   `gorm:"column:antt" json:"antt,omitempty"`  // national road-freight registry number
	TipoTransportador string   `gorm:"not null" json:"tipo_transportador"` // autonomo / empresa / cooperativa
	AnosExperiencia   *int     `json:"anos_experiencia,omitempty"`
	PossuiFrota       bool     `gorm:"default:false" json:"possui_frota"`
	Usuario           *Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}

// TableName sets the table name.
func (Transportador) TableName() string {
	return "transportadores"
}
