package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	MetodoPagoEfectivo      = "efectivo"
	MetodoPagoTarjeta       = "tarjeta"
	MetodoPagoTransferencia = "transferencia"
)

// Venta representa la cabecera de una venta. Se crea y se elimina únicamente
// vía el coordinador de ventas (nunca se muta parcialmente fuera de él).
// Invariantes: Subtotal == Σ Detalles.Subtotal; Total == Subtotal + IVA.
type Venta struct {
	ID         string
	Fecha      time.Time
	UsuarioID  string // cajero que registró la venta
	MetodoPago string
	Subtotal   decimal.Decimal
	IVA        decimal.Decimal
	Total      decimal.Decimal
	Detalles   []*DetalleVenta // orden de inserción = orden de línea
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EsMetodoPagoValido verifica que el método de pago pertenezca al conjunto aceptado.
func EsMetodoPagoValido(m string) bool {
	switch m {
	case MetodoPagoEfectivo, MetodoPagoTarjeta, MetodoPagoTransferencia:
		return true
	}
	return false
}
