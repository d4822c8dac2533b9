package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MotivoMovimiento es el conjunto cerrado de motivos de un movimiento de stock.
// Cualquier código fuera de esta lista se rechaza antes de persistir.
type MotivoMovimiento string

const (
	MotivoVenta                 MotivoMovimiento = "venta"
	MotivoAjuste                MotivoMovimiento = "ajuste"
	MotivoCancelacionVenta      MotivoMovimiento = "cancelacion_venta"
	MotivoAjusteDetalleVenta    MotivoMovimiento = "ajuste_detalle_venta"
	MotivoRevertirCambioDetalle MotivoMovimiento = "revertir_cambio_detalle"
	MotivoAplicarCambioDetalle  MotivoMovimiento = "aplicar_cambio_detalle"
	MotivoEliminarDetalleVenta  MotivoMovimiento = "eliminar_detalle_venta"
	MotivoVentaMultiple         MotivoMovimiento = "venta_multiple"
)

// EsValido verifica que el motivo pertenezca al conjunto cerrado.
func (m MotivoMovimiento) EsValido() bool {
	switch m {
	case MotivoVenta, MotivoAjuste, MotivoCancelacionVenta, MotivoAjusteDetalleVenta,
		MotivoRevertirCambioDetalle, MotivoAplicarCambioDetalle,
		MotivoEliminarDetalleVenta, MotivoVentaMultiple:
		return true
	}
	return false
}

// Descripcion devuelve la descripción legible del motivo. El switch es exhaustivo
// sobre el conjunto cerrado: un motivo nuevo sin descripción cae en el default.
func (m MotivoMovimiento) Descripcion() string {
	switch m {
	case MotivoVenta:
		return "salida por venta"
	case MotivoAjuste:
		return "ajuste manual de inventario"
	case MotivoCancelacionVenta:
		return "reversión por cancelación de venta"
	case MotivoAjusteDetalleVenta:
		return "ajuste por cambio de cantidad en detalle"
	case MotivoRevertirCambioDetalle:
		return "reversión del producto anterior al cambiar detalle"
	case MotivoAplicarCambioDetalle:
		return "aplicación del producto nuevo al cambiar detalle"
	case MotivoEliminarDetalleVenta:
		return "reversión por eliminación de detalle"
	case MotivoVentaMultiple:
		return "salida por alta múltiple de detalles"
	default:
		return "motivo desconocido"
	}
}

// MovimientoStock es una entrada del libro de movimientos de stock: registro
// inmutable de un delta con su motivo y actor. Nunca se actualiza ni se borra.
// Invariante: para cada producto, stock_inicial + Σ(deltas) == stock actual.
type MovimientoStock struct {
	ID         string
	ProductoID string
	Delta      decimal.Decimal // positivo = entrada, negativo = salida
	Motivo     MotivoMovimiento
	Fecha      time.Time
	UsuarioID  *string // nil cuando el movimiento no tiene actor asociado
}
