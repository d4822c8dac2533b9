package ventas

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

// bloquearProductos bloquea las filas de los productos indicados (SELECT FOR UPDATE)
// en orden ascendente de id, sin importar el orden en que llegaron. El orden global
// fijo elimina el deadlock por espera circular entre ventas que tocan los mismos
// productos en orden distinto. Devuelve los productos bloqueados indexados por id.
func bloquearProductos(productoRepo repository.ProductoRepository, ids []string) (map[string]*entity.Producto, error) {
	ordenados := make([]string, 0, len(ids))
	visto := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !visto[id] {
			visto[id] = true
			ordenados = append(ordenados, id)
		}
	}
	sort.Strings(ordenados)

	productos := make(map[string]*entity.Producto, len(ordenados))
	for _, id := range ordenados {
		producto, err := productoRepo.GetForUpdate(id)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrNotFound
		}
		productos[id] = producto
	}
	return productos, nil
}

// crearDetalleEnTx inserta una línea de venta con su descuento de stock y su
// movimiento, dentro de la transacción del caller. El producto llega con la fila
// ya bloqueada; su Stock se descuenta también en memoria, de modo que varios
// ítems del mismo lote que referencien el mismo producto se validen de forma
// acumulada y no independiente.
func crearDetalleEnTx(
	detalleRepo repository.DetalleVentaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	producto *entity.Producto,
	ventaID string,
	cantidad, precioUnitario decimal.Decimal,
	usuarioID string,
	now time.Time,
	motivo entity.MotivoMovimiento,
) (*entity.DetalleVenta, error) {
	if producto.Stock.LessThan(cantidad) {
		return nil, domain.NewInsufficientStockError(producto.ID, producto.Stock, cantidad)
	}

	detalle := &entity.DetalleVenta{
		ID:             uuid.New().String(),
		VentaID:        ventaID,
		ProductoID:     producto.ID,
		Cantidad:       cantidad,
		PrecioUnitario: precioUnitario,
		Subtotal:       cantidad.Mul(precioUnitario),
	}
	if err := detalleRepo.Create(detalle); err != nil {
		return nil, err
	}
	if err := aplicarMovimiento(productoRepo, movRepo, producto, cantidad.Neg(), motivo, usuarioID, now); err != nil {
		return nil, err
	}
	return detalle, nil
}

// aplicarMovimiento aplica un delta de stock sobre un producto ya bloqueado y
// registra la entrada correspondiente en movimientos_stock. Con delta cero no
// hace nada: el libro solo registra movimientos reales.
func aplicarMovimiento(
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	producto *entity.Producto,
	delta decimal.Decimal,
	motivo entity.MotivoMovimiento,
	usuarioID string,
	now time.Time,
) error {
	if delta.IsZero() {
		return nil
	}
	if err := productoRepo.ApplyDelta(producto.ID, delta); err != nil {
		return err
	}
	producto.Stock = producto.Stock.Add(delta)

	mov := &entity.MovimientoStock{
		ID:         uuid.New().String(),
		ProductoID: producto.ID,
		Delta:      delta,
		Motivo:     motivo,
		Fecha:      now,
	}
	if usuarioID != "" {
		mov.UsuarioID = &usuarioID
	}
	return movRepo.Create(mov)
}

// recalcularTotalesEnTx reescribe los totales de la cabecera a partir de la suma
// de líneas vigente, manteniendo Subtotal == Σ detalles.Subtotal y
// Total == Subtotal × (1 + tasaIVA) dentro de la misma transacción.
func recalcularTotalesEnTx(
	ventaRepo repository.VentaRepository,
	detalleRepo repository.DetalleVentaRepository,
	ventaID string,
	tasaIVA decimal.Decimal,
	now time.Time,
) error {
	detalles, err := detalleRepo.ListByVenta(ventaID)
	if err != nil {
		return err
	}
	subtotal := decimal.Zero
	for _, d := range detalles {
		subtotal = subtotal.Add(d.Subtotal)
	}
	iva := subtotal.Mul(tasaIVA)
	return ventaRepo.UpdateTotales(ventaID, subtotal, iva, subtotal.Add(iva), now)
}
