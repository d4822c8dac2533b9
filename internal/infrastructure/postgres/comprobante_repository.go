package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

var _ repository.ComprobanteRepository = (*ComprobanteRepo)(nil)

// ComprobanteRepo implementación de ComprobanteRepository sobre PostgreSQL.
type ComprobanteRepo struct {
	q Querier
}

// NewComprobanteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComprobanteRepository(q Querier) *ComprobanteRepo {
	return &ComprobanteRepo{q: q}
}

// Create persiste un comprobante asociado a una venta.
func (r *ComprobanteRepo) Create(comprobante *entity.Comprobante) error {
	if comprobante.ID == "" {
		comprobante.ID = uuid.New().String()
	}
	query := `
		INSERT INTO comprobantes (id, venta_id, tipo, folio, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		comprobante.ID, comprobante.VentaID, comprobante.Tipo, comprobante.Folio, comprobante.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comprobante: %w", err)
	}
	return nil
}

// ListByVenta devuelve los comprobantes de una venta.
func (r *ComprobanteRepo) ListByVenta(ventaID string) ([]*entity.Comprobante, error) {
	query := `SELECT id, venta_id, tipo, folio, created_at FROM comprobantes WHERE venta_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list comprobantes: %w", err)
	}
	defer rows.Close()

	var comprobantes []*entity.Comprobante
	for rows.Next() {
		var c entity.Comprobante
		if err := rows.Scan(&c.ID, &c.VentaID, &c.Tipo, &c.Folio, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comprobante: %w", err)
		}
		comprobantes = append(comprobantes, &c)
	}
	return comprobantes, rows.Err()
}

// DeleteByVenta elimina los comprobantes de la venta (antes de borrar la cabecera).
func (r *ComprobanteRepo) DeleteByVenta(ventaID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM comprobantes WHERE venta_id = $1`, ventaID)
	if err != nil {
		return fmt.Errorf("delete comprobantes: %w", err)
	}
	return nil
}
