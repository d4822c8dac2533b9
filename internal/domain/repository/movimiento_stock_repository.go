package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
)

// MovimientoStockRepository puerto del libro de movimientos de stock.
// Es append-only: no expone Update ni Delete.
type MovimientoStockRepository interface {
	// Create inserta una entrada inmutable. Se llama exactamente una vez por
	// movimiento lógico, en la misma transacción que el ApplyDelta asociado.
	Create(mov *entity.MovimientoStock) error

	ListByProducto(productoID string, limit int) ([]*entity.MovimientoStock, error)

	// SumDeltasByProducto devuelve la suma de deltas del producto; soporta la
	// reconciliación stock_inicial + Σ(deltas) == stock actual.
	SumDeltasByProducto(productoID string) (decimal.Decimal, error)
}
