package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, nombre, stock, precio_compra, precio_venta, fecha_caducidad, created_at, updated_at`

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(&p.ID, &p.Nombre, &p.Stock, &p.PrecioCompra, &p.PrecioVenta,
		&p.FechaCaducidad, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila para update (SELECT FOR UPDATE).
// El lock vive hasta el commit/rollback de la transacción del Querier.
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto for update: %w", classifyBusy(context.Background(), err))
	}
	return p, nil
}

// ApplyDelta suma delta a la columna stock. La fila debe estar bloqueada por
// GetForUpdate en la misma transacción; la no-negatividad la valida el caller.
func (r *ProductoRepo) ApplyDelta(id string, delta decimal.Decimal) error {
	query := `UPDATE productos SET stock = stock + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("apply delta producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("apply delta producto %s: fila no encontrada", id)
	}
	return nil
}

// List devuelve todos los productos ordenados por nombre.
func (r *ProductoRepo) List() ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos ORDER BY nombre`
	return r.list(query)
}

// ListStockBajo devuelve productos con stock <= umbral, los más bajos primero.
func (r *ProductoRepo) ListStockBajo(umbral decimal.Decimal) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE stock <= $1 ORDER BY stock ASC`
	return r.list(query, umbral)
}

// ListPorCaducar devuelve productos con fecha de caducidad <= hasta.
func (r *ProductoRepo) ListPorCaducar(hasta time.Time) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos
		WHERE fecha_caducidad IS NOT NULL AND fecha_caducidad <= $1
		ORDER BY fecha_caducidad ASC`
	return r.list(query, hasta)
}

func (r *ProductoRepo) list(query string, args ...any) ([]*entity.Producto, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var productos []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}
