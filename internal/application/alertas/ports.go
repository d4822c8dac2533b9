package alertas

import (
	"context"

	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que el reconciliador necesita: la evaluación lee el stock con la
// fila bloqueada y la deduplicación + inserción ocurren en la misma transacción.
type TxRunner interface {
	RunAlertas(ctx context.Context, fn func(
		productoRepo repository.ProductoRepository,
		alertaRepo repository.AlertaRepository,
	) error) error
}
