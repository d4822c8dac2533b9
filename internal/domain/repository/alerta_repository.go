package repository

import (
	"time"

	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
)

// AlertaStats conteos agregados de alertas.
type AlertaStats struct {
	Total      int
	Pendientes int
	Atendidas  int
	StockBajo  int
	Caducidad  int
}

// AlertaRepository puerto de persistencia para alertas de inventario.
type AlertaRepository interface {
	Create(alerta *entity.Alerta) error
	GetByID(id string) (*entity.Alerta, error)

	// GetPendiente devuelve la alerta no atendida del producto y tipo dados,
	// o nil si no existe. Es la consulta de deduplicación del reconciliador.
	GetPendiente(productoID string, tipo entity.TipoAlerta) (*entity.Alerta, error)

	// MarkAttended transiciona atendida=false -> true con su timestamp.
	MarkAttended(id string, fecha time.Time) error

	List(soloPendientes bool) ([]*entity.Alerta, error)
	Stats() (*AlertaStats, error)
}
