package repository

import "github.com/jcastellanos/pos-ventas-api/internal/domain/entity"

// ComprobanteRepository puerto de persistencia para comprobantes de venta.
type ComprobanteRepository interface {
	Create(comprobante *entity.Comprobante) error
	ListByVenta(ventaID string) ([]*entity.Comprobante, error)
	// DeleteByVenta elimina los comprobantes de la venta (paso previo a borrar la cabecera).
	DeleteByVenta(ventaID string) error
}
