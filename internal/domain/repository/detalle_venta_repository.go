package repository

import "github.com/jcastellanos/pos-ventas-api/internal/domain/entity"

// DetalleVentaRepository puerto de persistencia para líneas de venta.
type DetalleVentaRepository interface {
	Create(detalle *entity.DetalleVenta) error
	GetByID(id string) (*entity.DetalleVenta, error)
	// ListByVenta devuelve las líneas en orden de inserción.
	ListByVenta(ventaID string) ([]*entity.DetalleVenta, error)
	Update(detalle *entity.DetalleVenta) error
	Delete(id string) error
	DeleteByVenta(ventaID string) error
}
