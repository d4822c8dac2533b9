package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EvaluarAlertaRequest cuerpo para evaluar stock bajo; Umbral nil usa el configurado.
type EvaluarAlertaRequest struct {
	Umbral *decimal.Decimal `json:"umbral,omitempty"`
}

// AlertaResponse una alerta persistida.
type AlertaResponse struct {
	ID            string     `json:"id"`
	ProductoID    string     `json:"producto_id"`
	Tipo          string     `json:"tipo"`
	Mensaje       string     `json:"mensaje"`
	Atendida      bool       `json:"atendida"`
	FechaAtendida *time.Time `json:"fecha_atendida,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AlertaStatsResponse conteos agregados de alertas.
type AlertaStatsResponse struct {
	Total      int `json:"total"`
	Pendientes int `json:"pendientes"`
	Atendidas  int `json:"atendidas"`
	StockBajo  int `json:"stock_bajo"`
	Caducidad  int `json:"caducidad"`
}
