package entity

import "time"

// Tipos de alerta de inventario.
type TipoAlerta string

const (
	TipoAlertaStockBajo TipoAlerta = "stock_bajo"
	TipoAlertaCaducidad TipoAlerta = "caducidad"
)

// EsValido verifica que el tipo pertenezca al conjunto cerrado.
func (t TipoAlerta) EsValido() bool {
	return t == TipoAlertaStockBajo || t == TipoAlertaCaducidad
}

// Alerta de inventario derivada del estado actual de stock o caducidad.
// Invariante: a lo sumo una alerta no atendida por producto y tipo
// (unicidad aplicada por el reconciliador, no por constraint de BD).
type Alerta struct {
	ID            string
	ProductoID    string
	Tipo          TipoAlerta
	Mensaje       string
	Atendida      bool
	FechaAtendida *time.Time
	CreatedAt     time.Time
}
