package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
)

// VentaRepository puerto de persistencia para cabeceras de venta.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	GetByID(id string) (*entity.Venta, error)
	List(desde, hasta time.Time) ([]*entity.Venta, error)
	Delete(id string) error

	// UpdateTotales reescribe subtotal/iva/total de la cabecera; se usa cuando
	// una mutación de detalle cambia la suma de líneas dentro de la misma tx.
	UpdateTotales(id string, subtotal, iva, total decimal.Decimal, updatedAt time.Time) error
}
