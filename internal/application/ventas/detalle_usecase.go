package ventas

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
	"github.com/jcastellanos/pos-ventas-api/pkg/logger"
)

// DetalleVentaUseCase maneja el ciclo de vida de líneas individuales de una
// venta ya existente. Cada operación corre en una transacción propia: valida,
// bloquea la fila del producto, muta stock, registra el movimiento y recalcula
// los totales de la cabecera. Cualquier fallo deshace todo.
type DetalleVentaUseCase struct {
	txRunner TxRunner
	tasaIVA  decimal.Decimal
	log      *logger.Logger
}

// NewDetalleVentaUseCase construye el caso de uso.
func NewDetalleVentaUseCase(txRunner TxRunner, tasaIVA decimal.Decimal, log *logger.Logger) *DetalleVentaUseCase {
	return &DetalleVentaUseCase{txRunner: txRunner, tasaIVA: tasaIVA, log: log.Component("ventas.detalle")}
}

// CreateDetalleInput entrada para agregar una línea a una venta existente.
type CreateDetalleInput struct {
	VentaID        string
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	UsuarioID      string
}

// UpdateDetalleInput entrada para modificar una línea. Los campos nil conservan
// el valor actual.
type UpdateDetalleInput struct {
	ProductoID     *string
	Cantidad       *decimal.Decimal
	PrecioUnitario *decimal.Decimal
	UsuarioID      string
}

// CreateDetalle agrega una línea a la venta: bloquea el producto, verifica
// disponibilidad, inserta la línea, descuenta stock y registra el movimiento
// con motivo "venta".
func (uc *DetalleVentaUseCase) CreateDetalle(ctx context.Context, in CreateDetalleInput) (*entity.DetalleVenta, error) {
	if in.VentaID == "" || in.ProductoID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Cantidad.GreaterThan(decimal.Zero) || !in.PrecioUnitario.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var detalle *entity.DetalleVenta
	err := uc.txRunner.Run(ctx, func(
		ventaRepo repository.VentaRepository,
		detalleRepo repository.DetalleVentaRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoStockRepository,
		_ repository.ComprobanteRepository,
	) error {
		venta, err := ventaRepo.GetByID(in.VentaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrNotFound
		}
		productos, err := bloquearProductos(productoRepo, []string{in.ProductoID})
		if err != nil {
			return err
		}
		detalle, err = crearDetalleEnTx(
			detalleRepo, productoRepo, movRepo,
			productos[in.ProductoID],
			in.VentaID, in.Cantidad, in.PrecioUnitario,
			in.UsuarioID, now, entity.MotivoVenta,
		)
		if err != nil {
			return err
		}
		return recalcularTotalesEnTx(ventaRepo, detalleRepo, in.VentaID, uc.tasaIVA, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("venta_id", in.VentaID).Str("producto_id", in.ProductoID).
		Str("cantidad", in.Cantidad.String()).Msg("detalle creado")
	return detalle, nil
}

// UpdateDetalle modifica una línea existente.
//
// Mismo producto: delta = nuevaCantidad - cantidadAnterior. Con delta positivo
// exige stock >= delta; con delta cero no toca stock ni libro. Movimiento con
// motivo "ajuste_detalle_venta" y valor -delta.
//
// Producto distinto: bloquea ambos productos en orden ascendente de id,
// exige stock del nuevo >= nuevaCantidad, revierte el anterior
// ("revertir_cambio_detalle", +cantidadAnterior) y aplica el nuevo
// ("aplicar_cambio_detalle", -nuevaCantidad), todo en la misma transacción.
//
// El subtotal de la línea se recalcula incondicionalmente.
func (uc *DetalleVentaUseCase) UpdateDetalle(ctx context.Context, detalleID string, in UpdateDetalleInput) (*entity.DetalleVenta, error) {
	if detalleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductoID != nil && *in.ProductoID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Cantidad != nil && !in.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.PrecioUnitario != nil && !in.PrecioUnitario.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var actualizado *entity.DetalleVenta
	err := uc.txRunner.Run(ctx, func(
		ventaRepo repository.VentaRepository,
		detalleRepo repository.DetalleVentaRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoStockRepository,
		_ repository.ComprobanteRepository,
	) error {
		detalle, err := detalleRepo.GetByID(detalleID)
		if err != nil {
			return err
		}
		if detalle == nil {
			return domain.ErrNotFound
		}

		nuevoProductoID := detalle.ProductoID
		if in.ProductoID != nil {
			nuevoProductoID = *in.ProductoID
		}
		nuevaCantidad := detalle.Cantidad
		if in.Cantidad != nil {
			nuevaCantidad = *in.Cantidad
		}
		nuevoPrecio := detalle.PrecioUnitario
		if in.PrecioUnitario != nil {
			nuevoPrecio = *in.PrecioUnitario
		}

		if nuevoProductoID == detalle.ProductoID {
			delta := nuevaCantidad.Sub(detalle.Cantidad)
			if !delta.IsZero() {
				productos, err := bloquearProductos(productoRepo, []string{detalle.ProductoID})
				if err != nil {
					return err
				}
				producto := productos[detalle.ProductoID]
				if delta.GreaterThan(decimal.Zero) && producto.Stock.LessThan(delta) {
					return domain.NewInsufficientStockError(producto.ID, producto.Stock, delta)
				}
				if err := aplicarMovimiento(productoRepo, movRepo, producto, delta.Neg(),
					entity.MotivoAjusteDetalleVenta, in.UsuarioID, now); err != nil {
					return err
				}
			}
		} else {
			productos, err := bloquearProductos(productoRepo, []string{detalle.ProductoID, nuevoProductoID})
			if err != nil {
				return err
			}
			anterior := productos[detalle.ProductoID]
			nuevo := productos[nuevoProductoID]
			if nuevo.Stock.LessThan(nuevaCantidad) {
				return domain.NewInsufficientStockError(nuevo.ID, nuevo.Stock, nuevaCantidad)
			}
			if err := aplicarMovimiento(productoRepo, movRepo, anterior, detalle.Cantidad,
				entity.MotivoRevertirCambioDetalle, in.UsuarioID, now); err != nil {
				return err
			}
			if err := aplicarMovimiento(productoRepo, movRepo, nuevo, nuevaCantidad.Neg(),
				entity.MotivoAplicarCambioDetalle, in.UsuarioID, now); err != nil {
				return err
			}
		}

		detalle.ProductoID = nuevoProductoID
		detalle.Cantidad = nuevaCantidad
		detalle.PrecioUnitario = nuevoPrecio
		detalle.Subtotal = nuevaCantidad.Mul(nuevoPrecio)
		if err := detalleRepo.Update(detalle); err != nil {
			return err
		}
		actualizado = detalle
		return recalcularTotalesEnTx(ventaRepo, detalleRepo, detalle.VentaID, uc.tasaIVA, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("detalle_id", detalleID).Msg("detalle actualizado")
	return actualizado, nil
}

// DeleteDetalle elimina una línea: revierte el stock completo de la línea
// (movimiento "eliminar_detalle_venta", +cantidad), borra la fila y recalcula
// los totales de la cabecera.
func (uc *DetalleVentaUseCase) DeleteDetalle(ctx context.Context, detalleID, usuarioID string) error {
	if detalleID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		ventaRepo repository.VentaRepository,
		detalleRepo repository.DetalleVentaRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoStockRepository,
		_ repository.ComprobanteRepository,
	) error {
		detalle, err := detalleRepo.GetByID(detalleID)
		if err != nil {
			return err
		}
		if detalle == nil {
			return domain.ErrNotFound
		}
		productos, err := bloquearProductos(productoRepo, []string{detalle.ProductoID})
		if err != nil {
			return err
		}
		if err := aplicarMovimiento(productoRepo, movRepo, productos[detalle.ProductoID],
			detalle.Cantidad, entity.MotivoEliminarDetalleVenta, usuarioID, now); err != nil {
			return err
		}
		if err := detalleRepo.Delete(detalleID); err != nil {
			return err
		}
		return recalcularTotalesEnTx(ventaRepo, detalleRepo, detalle.VentaID, uc.tasaIVA, now)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("detalle_id", detalleID).Msg("detalle eliminado")
	return nil
}
