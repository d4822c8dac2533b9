package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

var _ repository.DetalleVentaRepository = (*DetalleVentaRepo)(nil)

// DetalleVentaRepo implementación de DetalleVentaRepository sobre PostgreSQL (usable con pool o tx).
type DetalleVentaRepo struct {
	q Querier
}

// NewDetalleVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDetalleVentaRepository(q Querier) *DetalleVentaRepo {
	return &DetalleVentaRepo{q: q}
}

// Create persiste una línea de venta.
func (r *DetalleVentaRepo) Create(detalle *entity.DetalleVenta) error {
	if detalle.ID == "" {
		detalle.ID = uuid.New().String()
	}
	query := `
		INSERT INTO detalle_ventas (id, venta_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		detalle.ID, detalle.VentaID, detalle.ProductoID,
		detalle.Cantidad, detalle.PrecioUnitario, detalle.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID. Devuelve nil si no existe.
func (r *DetalleVentaRepo) GetByID(id string) (*entity.DetalleVenta, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, subtotal
		FROM detalle_ventas WHERE id = $1`
	var d entity.DetalleVenta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get detalle venta: %w", err)
	}
	return &d, nil
}

// ListByVenta devuelve las líneas de la venta en orden de inserción
// (columna orden BIGSERIAL de la tabla).
func (r *DetalleVentaRepo) ListByVenta(ventaID string) ([]*entity.DetalleVenta, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, subtotal
		FROM detalle_ventas WHERE venta_id = $1
		ORDER BY orden ASC`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list detalles venta: %w", err)
	}
	defer rows.Close()

	var detalles []*entity.DetalleVenta
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		detalles = append(detalles, &d)
	}
	return detalles, rows.Err()
}

// Update reescribe producto, cantidad, precio y subtotal de la línea.
func (r *DetalleVentaRepo) Update(detalle *entity.DetalleVenta) error {
	query := `
		UPDATE detalle_ventas
		SET producto_id = $2, cantidad = $3, precio_unitario = $4, subtotal = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		detalle.ID, detalle.ProductoID, detalle.Cantidad, detalle.PrecioUnitario, detalle.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("update detalle venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update detalle venta %s: fila no encontrada", detalle.ID)
	}
	return nil
}

// Delete elimina una línea.
func (r *DetalleVentaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM detalle_ventas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete detalle venta: %w", err)
	}
	return nil
}

// DeleteByVenta elimina todas las líneas de una venta (cancelación).
func (r *DetalleVentaRepo) DeleteByVenta(ventaID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM detalle_ventas WHERE venta_id = $1`, ventaID)
	if err != nil {
		return fmt.Errorf("delete detalles venta: %w", err)
	}
	return nil
}
