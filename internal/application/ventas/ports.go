package ventas

import (
	"context"

	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de ventas:
// si fn retorna error se hace rollback y ningún detalle, movimiento de stock
// ni cambio de cabecera queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ventaRepo repository.VentaRepository,
		detalleRepo repository.DetalleVentaRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoStockRepository,
		comprobanteRepo repository.ComprobanteRepository,
	) error) error
}
