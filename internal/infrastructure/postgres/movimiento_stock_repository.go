package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

var _ repository.MovimientoStockRepository = (*MovimientoStockRepo)(nil)

// MovimientoStockRepo implementación del libro de movimientos sobre PostgreSQL.
// La tabla es append-only: este adaptador no expone UPDATE ni DELETE.
type MovimientoStockRepo struct {
	q Querier
}

// NewMovimientoStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoStockRepository(q Querier) *MovimientoStockRepo {
	return &MovimientoStockRepo{q: q}
}

// Create inserta una entrada inmutable del libro. El motivo se valida contra el
// conjunto cerrado antes de tocar la BD.
func (r *MovimientoStockRepo) Create(mov *entity.MovimientoStock) error {
	if !mov.Motivo.EsValido() {
		return fmt.Errorf("motivo de movimiento desconocido: %q", mov.Motivo)
	}
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_stock (id, producto_id, delta, motivo, fecha, usuario_id)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.ProductoID, mov.Delta, string(mov.Motivo), mov.Fecha, mov.UsuarioID,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento stock: %w", err)
	}
	return nil
}

// ListByProducto devuelve los movimientos del producto, más recientes primero.
func (r *MovimientoStockRepo) ListByProducto(productoID string, limit int) ([]*entity.MovimientoStock, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, producto_id, delta, motivo, fecha, usuario_id
		FROM movimientos_stock WHERE producto_id = $1
		ORDER BY fecha DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, productoID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var movs []*entity.MovimientoStock
	for rows.Next() {
		var m entity.MovimientoStock
		var motivo string
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Delta, &motivo, &m.Fecha, &m.UsuarioID); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		m.Motivo = entity.MotivoMovimiento(motivo)
		movs = append(movs, &m)
	}
	return movs, rows.Err()
}

// SumDeltasByProducto devuelve Σ(delta) del producto para reconciliación contra
// la columna stock.
func (r *MovimientoStockRepo) SumDeltasByProducto(productoID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(delta), 0) FROM movimientos_stock WHERE producto_id = $1`
	var suma decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productoID).Scan(&suma); err != nil {
		return decimal.Zero, fmt.Errorf("sum deltas: %w", err)
	}
	return suma, nil
}
