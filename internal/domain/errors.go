package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Toda mutación corre dentro de una transacción: cualquier
// error de esta lista aborta y hace rollback completo (nunca queda estado parcial).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrSufficientStock    = errors.New("stock suficiente, alerta no requerida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrBusy               = errors.New("recurso ocupado, reintente la operación")
	ErrUnauthorized       = errors.New("no autorizado")
)

// InsufficientStockError detalla un rechazo por stock con las cantidades involucradas,
// para que la capa HTTP pueda renderizar "stock insuficiente: disponible 3".
// errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	ProductoID string
	Disponible decimal.Decimal
	Solicitado decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s (producto %s)",
		e.Disponible.String(), e.Solicitado.String(), e.ProductoID)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NewInsufficientStockError construye el error detallado.
func NewInsufficientStockError(productoID string, disponible, solicitado decimal.Decimal) error {
	return &InsufficientStockError{ProductoID: productoID, Disponible: disponible, Solicitado: solicitado}
}
