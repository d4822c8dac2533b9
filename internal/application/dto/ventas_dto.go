package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemVentaRequest una línea solicitada dentro de una venta.
type ItemVentaRequest struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateVentaRequest cuerpo para crear una venta completa.
type CreateVentaRequest struct {
	MetodoPago string             `json:"metodo_pago"`
	Items      []ItemVentaRequest `json:"items"`
}

// CreateDetallesMultiplesRequest lote de líneas para una venta existente.
type CreateDetallesMultiplesRequest struct {
	Items []ItemVentaRequest `json:"items"`
}

// CreateDetalleRequest cuerpo para agregar una línea individual.
type CreateDetalleRequest struct {
	VentaID        string          `json:"venta_id"`
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// UpdateDetalleRequest cuerpo para modificar una línea; los campos omitidos
// conservan su valor actual.
type UpdateDetalleRequest struct {
	ProductoID     *string          `json:"producto_id,omitempty"`
	Cantidad       *decimal.Decimal `json:"cantidad,omitempty"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario,omitempty"`
}

// DetalleVentaResponse una línea persistida.
type DetalleVentaResponse struct {
	ID             string          `json:"id"`
	VentaID        string          `json:"venta_id"`
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// VentaResponse venta completa (cabecera + líneas en orden).
type VentaResponse struct {
	ID         string                 `json:"id"`
	Fecha      time.Time              `json:"fecha"`
	UsuarioID  string                 `json:"usuario_id"`
	MetodoPago string                 `json:"metodo_pago"`
	Subtotal   decimal.Decimal        `json:"subtotal"`
	IVA        decimal.Decimal        `json:"iva"`
	Total      decimal.Decimal        `json:"total"`
	Detalles   []DetalleVentaResponse `json:"detalles"`
}

// MovimientoStockResponse una entrada del libro de movimientos.
type MovimientoStockResponse struct {
	ID          string          `json:"id"`
	ProductoID  string          `json:"producto_id"`
	Delta       decimal.Decimal `json:"delta"`
	Motivo      string          `json:"motivo"`
	Descripcion string          `json:"descripcion"`
	Fecha       time.Time       `json:"fecha"`
	UsuarioID   *string         `json:"usuario_id,omitempty"`
}

// ProductoResponse producto del catálogo con su stock actual.
type ProductoResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Stock          decimal.Decimal `json:"stock"`
	PrecioCompra   decimal.Decimal `json:"precio_compra"`
	PrecioVenta    decimal.Decimal `json:"precio_venta"`
	FechaCaducidad *time.Time      `json:"fecha_caducidad,omitempty"`
}
