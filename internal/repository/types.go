package repository

import "time"

// CargaListFilter filters the load listing queries.
type CargaListFilter struct {
	Page            int
	PageSize        int
	EmbarcadorID    uint
	TransportadorID uint
	Status          string
	OrigemEstado    string
	DestinoEstado   string
	DataColetaMin   *time.Time
	DataColetaMax   *time.Time
	PesoMin         *float64
	PesoMax         *float64
	IncludeCanceled bool
}

// OfertaListFilter filters the offer listing queries.
type OfertaListFilter struct {
	Page            int
	PageSize        int
	CargaID         uint
	TransportadorID uint
	Status          string
}
