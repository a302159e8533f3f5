package models

import (
	"time"
)

// Carga is a freight listing posted by a shipper.
//
// TransportadorID stays nil while the listing is open or under negotiation
// and is bound when an offer is accepted. Rows are never deleted; status
// "cancelada" is the terminal soft delete.
type Carga struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	EmbarcadorID       uint      `gorm:"index;not null" json:"embarcador_id"` // immutable after creation
	TransportadorID    *uint     `gorm:"index" json:"transportador_id,omitempty"`
	Titulo             string    `gorm:"not null" json:"titulo"`
	Descricao          string    `json:"descricao"`
	TipoMercadoria     string    `gorm:"not null" json:"tipo_mercadoria"`
	Peso               float64   `gorm:"not null" json:"peso"` // kg
	Volume             *float64  `json:"volume,omitempty"`     // m3
	ValorMercadoria    *Money    `gorm:"type:decimal(20,2)" json:"valor_mercadoria,omitempty"`
	ValorFrete         *Money    `gorm:"type:decimal(20,2)" json:"valor_frete,omitempty"`
	OrigemCEP          string    `gorm:"column:origem_cep;type:varchar(8);not null" json:"origem_cep"`
	OrigemCidade       string    `gorm:"not null" json:"origem_cidade"`
	OrigemEstado       string    `gorm:"index;type:varchar(2);not null" json:"origem_estado"`
	DestinoCEP         string    `gorm:"column:destino_cep;type:varchar(8);not null" json:"destino_cep"`
	DestinoCidade      string    `gorm:"not null" json:"destino_cidade"`
	DestinoEstado      string    `gorm:"index;type:varchar(2);not null" json:"destino_estado"`
	DataColeta         time.Time `gorm:"index;not null" json:"data_coleta"`
	DataEntrega        time.Time `gorm:"not null" json:"data_entrega"`
	RequisitosVeiculo  string    `json:"requisitos_veiculo,omitempty"`
	Status             string    `gorm:"index;not null" json:"status"`
	DataCriacao        time.Time `gorm:"index" json:"data_criacao"`
	DataAtualizacao    time.Time `json:"data_atualizacao"`

	Ofertas []Oferta `gorm:"foreignKey:CargaID" json:"ofertas,omitempty"`
}

// TableName sets the table name.
func (Carga) TableName() string {
	return "cargas"
}

// ResumoEmbarcador is the shipper summary embedded in a full load view.
type ResumoEmbarcador struct {
	ID      uint   `json:"id"`
	Nome    string `json:"nome"`
	Empresa string `json:"empresa,omitempty"`
}

// ResumoTransportador is the carrier summary embedded in full views.
type ResumoTransportador struct {
	ID      uint   `json:"id"`
	Nome    string `json:"nome"`
	Empresa string `json:"empresa,omitempty"`
}

// CargaCompleta is the read composition returned by CargaService.GetFull:
// the load plus owner/carrier summaries and its offers ranked cheapest-first.
type CargaCompleta struct {
	Carga
	Embarcador    ResumoEmbarcador     `json:"embarcador"`
	Transportador *ResumoTransportador `json:"transportador,omitempty"`
}
