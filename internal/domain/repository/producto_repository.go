package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
)

// ProductoRepository puerto de persistencia para productos.
// GetForUpdate y ApplyDelta solo tienen sentido dentro de una transacción
// (repositorio atado a la tx vía el TxRunner).
type ProductoRepository interface {
	GetByID(id string) (*entity.Producto, error)
	List() ([]*entity.Producto, error)

	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) hasta el
	// commit/rollback de la transacción que lo contiene. Devuelve nil si no existe.
	GetForUpdate(id string) (*entity.Producto, error)

	// ApplyDelta suma delta a la columna stock (delta negativo = salida).
	// Debe llamarse solo con la fila ya bloqueada en la misma transacción;
	// no valida no-negatividad: el caller decide antes de commitear.
	ApplyDelta(id string, delta decimal.Decimal) error

	// ListStockBajo devuelve productos con stock <= umbral.
	ListStockBajo(umbral decimal.Decimal) ([]*entity.Producto, error)

	// ListPorCaducar devuelve productos con fecha de caducidad no nula y <= hasta.
	ListPorCaducar(hasta time.Time) ([]*entity.Producto, error)
}
