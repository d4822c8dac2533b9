package entity

import "time"

// Comprobante es el registro de emisión asociado a una venta (ticket o boleta).
// Se elimina junto con la venta al cancelarla.
type Comprobante struct {
	ID        string
	VentaID   string
	Tipo      string // "ticket" | "boleta"
	Folio     string
	CreatedAt time.Time
}
