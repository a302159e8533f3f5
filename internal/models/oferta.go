package models

import (
	"time"
)

// Oferta is a carrier bid on a load. A carrier may hold at most one offer
// per load, enforced by the composite unique index.
type Oferta struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	CargaID         uint       `gorm:"uniqueIndex:idx_oferta_carga_transportador;not null" json:"carga_id"`
	TransportadorID uint       `gorm:"uniqueIndex:idx_oferta_carga_transportador;index;not null" json:"transportador_id"`
	Valor           Money      `gorm:"type:decimal(20,2);not null" json:"valor"`
	PrazoEntrega    *time.Time `json:"prazo_entrega,omitempty"`
	Observacoes     string     `json:"observacoes,omitempty"`
	Status          string     `gorm:"index;not null" json:"status"`
	DataOferta      time.Time  `gorm:"index" json:"data_oferta"`
	DataResposta    *time.Time `json:"data_resposta,omitempty"`

	Carga         *Carga         `gorm:"foreignKey:CargaID" json:"carga,omitempty"`
	Transportador *Transportador `gorm:"foreignKey:TransportadorID" json:"transportador,omitempty"`
}

// TableName sets the table name.
func (Oferta) TableName() string {
	return "ofertas"
}

// OfertaCompleta is the read composition returned by OfertaService.GetFull.
type OfertaCompleta struct {
	Oferta
	CargaTitulo   string              `json:"carga_titulo"`
	CargaStatus   string              `json:"carga_status"`
	Transportador ResumoTransportador `json:"transportador_resumo"`
}
