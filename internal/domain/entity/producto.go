package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto del catálogo. El campo Stock es la única
// columna autoritativa de existencias y se muta exclusivamente a través del
// motor de ventas (nunca se escribe directo desde el CRUD de catálogo).
// Invariante: Stock >= 0.
type Producto struct {
	ID             string
	Nombre         string
	Stock          decimal.Decimal
	PrecioCompra   decimal.Decimal
	PrecioVenta    decimal.Decimal
	FechaCaducidad *time.Time // nil = producto sin fecha de vencimiento
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
