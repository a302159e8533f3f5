package models

// Veiculo is a carrier-owned vehicle. Rows are never deleted; Ativo=false is
// the soft delete, and plate uniqueness is enforced among active rows only.
type Veiculo struct {
	ID              uint     `gorm:"primarykey" json:"id"`
	TransportadorID uint     `gorm:"index;not null" json:"transportador_id"`
	Placa           string   `gorm:"index;type:varchar(10);not null" json:"placa"`
	Renavam         string   `gorm:"type:varchar(20)" json:"renavam,omitempty"`
	Tipo            string   `gorm:"not null" json:"tipo"` // caminhao / carreta / van / outro
	Marca           string   `gorm:"not null" json:"marca"`
	Modelo          string   `gorm:"not null" json:"modelo"`
	Ano             int      `gorm:"not null" json:"ano"`
	CapacidadeKg    *float64 `json:"capacidade_kg,omitempty"`
	CapacidadeM3    *float64 `json:"capacidade_m3,omitempty"`
	TipoCarroceria  string   `json:"tipo_carroceria,omitempty"`
	Rastreado       bool     `gorm:"default:false" json:"rastreado"`
	SeguroCarga     bool     `gorm:"default:false" json:"seguro_carga"`
	Observacoes     string   `json:"observacoes,omitempty"`
	Ativo           bool     `gorm:"index;default:true" json:"ativo"`
}

// TableName sets the table name.
func (Veiculo) TableName() string {
	return "veiculos"
}
