package models

// Endereco is a postal address owned by a usuario. At most one address per
// usuario carries Principal=true.
type Endereco struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	UsuarioID   uint   `gorm:"index;not null" json:"usuario_id"`
	Tipo        string `gorm:"not null" json:"tipo"` // residencial / comercial / entrega / cobranca / outro
	CEP         string `gorm:"column:cep;type:varchar(8);not null" json:"cep"` // digits only
	Logradouro  string `gorm:"not null" json:"logradouro"`
	Numero      string `gorm:"not null" json:"numero"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `gorm:"not null" json:"bairro"`
	Cidade      string `gorm:"not null" json:"cidade"`
	Estado      string `gorm:"type:varchar(2);not null" json:"estado"`
	Principal   bool   `gorm:"index;default:false" json:"principal"`
	Observacoes string `json:"observacoes,omitempty"`
}

// TableName sets the table name.
func (Endereco) TableName() string {
	return "enderecos"
}
