package entity

import "github.com/shopspring/decimal"

// DetalleVenta representa una línea de una venta.
// Invariante: Subtotal == Cantidad × PrecioUnitario.
// Su ciclo de vida (crear/actualizar/eliminar) ocurre siempre dentro de una
// transacción que también registra el movimiento de stock correspondiente.
type DetalleVenta struct {
	ID             string
	VentaID        string
	ProductoID     string
	Cantidad       decimal.Decimal // > 0
	PrecioUnitario decimal.Decimal // > 0
	Subtotal       decimal.Decimal
}
