package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository sobre PostgreSQL (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	if venta.ID == "" {
		venta.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ventas (id, fecha, usuario_id, metodo_pago, subtotal, iva, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.Fecha, venta.UsuarioID, venta.MetodoPago,
		venta.Subtotal, venta.IVA, venta.Total, venta.CreatedAt, venta.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// GetByID obtiene una cabecera por ID. Devuelve nil si no existe.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `
		SELECT id, fecha, usuario_id, metodo_pago, subtotal, iva, total, created_at, updated_at
		FROM ventas WHERE id = $1`
	var v entity.Venta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.Fecha, &v.UsuarioID, &v.MetodoPago,
		&v.Subtotal, &v.IVA, &v.Total, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &v, nil
}

// List devuelve las cabeceras del rango [desde, hasta], más recientes primero.
func (r *VentaRepo) List(desde, hasta time.Time) ([]*entity.Venta, error) {
	query := `
		SELECT id, fecha, usuario_id, metodo_pago, subtotal, iva, total, created_at, updated_at
		FROM ventas WHERE fecha >= $1 AND fecha <= $2
		ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var ventas []*entity.Venta
	for rows.Next() {
		var v entity.Venta
		if err := rows.Scan(&v.ID, &v.Fecha, &v.UsuarioID, &v.MetodoPago,
			&v.Subtotal, &v.IVA, &v.Total, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		ventas = append(ventas, &v)
	}
	return ventas, rows.Err()
}

// UpdateTotales reescribe los totales de la cabecera (misma tx que la mutación de detalles).
func (r *VentaRepo) UpdateTotales(id string, subtotal, iva, total decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE ventas SET subtotal = $2, iva = $3, total = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, subtotal, iva, total, updatedAt)
	if err != nil {
		return fmt.Errorf("update totales venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update totales venta %s: fila no encontrada", id)
	}
	return nil
}

// Delete elimina la cabecera. Los detalles y comprobantes deben borrarse antes
// en la misma transacción (FK).
func (r *VentaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ventas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venta: %w", err)
	}
	return nil
}
