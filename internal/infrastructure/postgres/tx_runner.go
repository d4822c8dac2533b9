package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcastellanos/pos-ventas-api/internal/application/alertas"
	"github.com/jcastellanos/pos-ventas-api/internal/application/ventas"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

// Ensure TxRunner implements ventas.TxRunner and alertas.TxRunner.
var _ ventas.TxRunner = (*TxRunner)(nil)
var _ alertas.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del motor de ventas
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ventaRepo repository.VentaRepository,
	detalleRepo repository.DetalleVentaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	comprobanteRepo repository.ComprobanteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classifyBusy(ctx, err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ventaRepo := NewVentaRepository(tx)
	detalleRepo := NewDetalleVentaRepository(tx)
	productoRepo := NewProductoRepository(tx)
	movRepo := NewMovimientoStockRepository(tx)
	comprobanteRepo := NewComprobanteRepository(tx)

	if err := fn(ventaRepo, detalleRepo, productoRepo, movRepo, comprobanteRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAlertas inicia una transacción con los repos que usa el reconciliador de
// alertas (lectura de stock bloqueada + deduplicación + inserción).
func (r *TxRunner) RunAlertas(ctx context.Context, fn func(
	productoRepo repository.ProductoRepository,
	alertaRepo repository.AlertaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classifyBusy(ctx, err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productoRepo := NewProductoRepository(tx)
	alertaRepo := NewAlertaRepository(tx)

	if err := fn(productoRepo, alertaRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
