package ventas

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
	"github.com/jcastellanos/pos-ventas-api/pkg/logger"
)

// VentaUseCase coordina la creación y cancelación de una venta completa como
// unidad atómica: o queda la venta entera con sus líneas, movimientos y
// comprobante, o no queda nada. Los productos tocados se bloquean en orden
// ascendente de id antes de validar disponibilidad.
type VentaUseCase struct {
	txRunner    TxRunner
	ventaRepo   repository.VentaRepository        // lecturas fuera de tx
	detalleRepo repository.DetalleVentaRepository // lecturas fuera de tx
	usuarioRepo repository.UsuarioRepository
	tasaIVA     decimal.Decimal
	log         *logger.Logger
}

// NewVentaUseCase construye el coordinador.
func NewVentaUseCase(
	txRunner TxRunner,
	ventaRepo repository.VentaRepository,
	detalleRepo repository.DetalleVentaRepository,
	usuarioRepo repository.UsuarioRepository,
	tasaIVA decimal.Decimal,
	log *logger.Logger,
) *VentaUseCase {
	return &VentaUseCase{
		txRunner:    txRunner,
		ventaRepo:   ventaRepo,
		detalleRepo: detalleRepo,
		usuarioRepo: usuarioRepo,
		tasaIVA:     tasaIVA,
		log:         log.Component("ventas"),
	}
}

// ItemVenta una línea solicitada para una venta.
type ItemVenta struct {
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// validarItems validación pura, sin I/O: se ejecuta antes de abrir transacción.
func validarItems(items []ItemVenta) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductoID == "" {
			return domain.ErrInvalidInput
		}
		if !it.Cantidad.GreaterThan(decimal.Zero) || !it.PrecioUnitario.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func idsDeItems(items []ItemVenta) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductoID)
	}
	return ids
}

// CreateVenta crea la venta completa en una transacción: bloquea todos los
// productos en orden ascendente de id, inserta la cabecera con sus totales
// (IVA sobre el subtotal), crea cada línea en el orden recibido con su descuento
// de stock y movimiento "venta", y emite el comprobante. El primer fallo
// (producto inexistente, stock insuficiente) deshace todo.
func (uc *VentaUseCase) CreateVenta(ctx context.Context, usuarioID, metodoPago string, items []ItemVenta) (*entity.Venta, error) {
	if usuarioID == "" || !entity.EsMetodoPagoValido(metodoPago) {
		return nil, domain.ErrInvalidInput
	}
	if err := validarItems(items); err != nil {
		return nil, err
	}
	existe, err := uc.usuarioRepo.Exists(usuarioID)
	if err != nil {
		return nil, err
	}
	if !existe {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Cantidad.Mul(it.PrecioUnitario))
	}
	iva := subtotal.Mul(uc.tasaIVA)

	venta := &entity.Venta{
		ID:         uuid.New().String(),
		Fecha:      now,
		UsuarioID:  usuarioID,
		MetodoPago: metodoPago,
		Subtotal:   subtotal,
		IVA:        iva,
		Total:      subtotal.Add(iva),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(
		ventaRepo repository.VentaRepository,
		detalleRepo repository.DetalleVentaRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoStockRepository,
		comprobanteRepo repository.ComprobanteRepository,
	) error {
		productos, err := bloquearProductos(productoRepo, idsDeItems(items))
		if err != nil {
			return err
		}
		if err := ventaRepo.Create(venta); err != nil {
			return err
		}
		for _, it := range items {
			detalle, err := crearDetalleEnTx(
				detalleRepo, productoRepo, movRepo,
				productos[it.ProductoID],
				venta.ID, it.Cantidad, it.PrecioUnitario,
				usuarioID, now, entity.MotivoVenta,
			)
			if err != nil {
				return err
			}
			venta.Detalles = append(venta.Detalles, detalle)
		}
		return comprobanteRepo.Create(&entity.Comprobante{
			ID:        uuid.New().String(),
			VentaID:   venta.ID,
			Tipo:      "ticket",
			Folio:     fmt.Sprintf("T-%d", now.UnixNano()),
			CreatedAt: now,
		})
	})
	if err != nil {
		venta.Detalles = nil
		return nil, err
	}

	uc.log.Info().Str("venta_id", venta.ID).Str("usuario_id", usuarioID).
		Int("lineas", len(items)).Str("total", venta.Total.String()).Msg("venta creada")
	return venta, nil
}

// DeleteVenta cancela una venta: revierte el stock de cada línea con movimiento
// "cancelacion_venta" (+cantidad), elimina líneas, comprobantes y cabecera.
// Todo o nada.
func (uc *VentaUseCase) DeleteVenta(ctx context.Context, ventaID, usuarioID string) error {
	if ventaID == "" || usuarioID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		ventaRepo repository.VentaRepository,
		detalleRepo repository.DetalleVentaRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoStockRepository,
		comprobanteRepo repository.ComprobanteRepository,
	) error {
		venta, err := ventaRepo.GetByID(ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrNotFound
		}
		detalles, err := detalleRepo.ListByVenta(ventaID)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(detalles))
		for _, d := range detalles {
			ids = append(ids, d.ProductoID)
		}
		productos, err := bloquearProductos(productoRepo, ids)
		if err != nil {
			return err
		}
		for _, d := range detalles {
			if err := aplicarMovimiento(productoRepo, movRepo, productos[d.ProductoID],
				d.Cantidad, entity.MotivoCancelacionVenta, usuarioID, now); err != nil {
				return err
			}
		}

		if err := detalleRepo.DeleteByVenta(ventaID); err != nil {
			return err
		}
		if err := comprobanteRepo.DeleteByVenta(ventaID); err != nil {
			return err
		}
		return ventaRepo.Delete(ventaID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("venta_id", ventaID).Str("usuario_id", usuarioID).Msg("venta cancelada")
	return nil
}

// CreateDetallesMultiples agrega un lote de líneas a una venta existente.
// Valida la disponibilidad de todos los ítems con un acumulado por producto
// (dos ítems del lote sobre el mismo producto se verifican de forma acumulada)
// antes de persistir cualquiera; un solo ítem inválido aborta el lote completo.
// Los movimientos llevan motivo "venta_multiple".
func (uc *VentaUseCase) CreateDetallesMultiples(ctx context.Context, ventaID, usuarioID string, items []ItemVenta) ([]*entity.DetalleVenta, error) {
	if ventaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validarItems(items); err != nil {
		return nil, err
	}

	now := time.Now()
	var creados []*entity.DetalleVenta
	err := uc.txRunner.Run(ctx, func(
		ventaRepo repository.VentaRepository,
		detalleRepo repository.DetalleVentaRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoStockRepository,
		_ repository.ComprobanteRepository,
	) error {
		venta, err := ventaRepo.GetByID(ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrNotFound
		}

		productos, err := bloquearProductos(productoRepo, idsDeItems(items))
		if err != nil {
			return err
		}

		// Disponibilidad de todo el lote antes de persistir nada: acumulado por producto.
		necesario := make(map[string]decimal.Decimal, len(productos))
		for _, it := range items {
			necesario[it.ProductoID] = necesario[it.ProductoID].Add(it.Cantidad)
		}
		for id, requerido := range necesario {
			if productos[id].Stock.LessThan(requerido) {
				return domain.NewInsufficientStockError(id, productos[id].Stock, requerido)
			}
		}

		for _, it := range items {
			detalle, err := crearDetalleEnTx(
				detalleRepo, productoRepo, movRepo,
				productos[it.ProductoID],
				ventaID, it.Cantidad, it.PrecioUnitario,
				usuarioID, now, entity.MotivoVentaMultiple,
			)
			if err != nil {
				return err
			}
			creados = append(creados, detalle)
		}
		return recalcularTotalesEnTx(ventaRepo, detalleRepo, ventaID, uc.tasaIVA, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("venta_id", ventaID).Int("lineas", len(creados)).Msg("detalles múltiples creados")
	return creados, nil
}

// GetVenta devuelve la venta con sus líneas en orden de inserción.
func (uc *VentaUseCase) GetVenta(ctx context.Context, ventaID string) (*entity.Venta, error) {
	venta, err := uc.ventaRepo.GetByID(ventaID)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.detalleRepo.ListByVenta(ventaID)
	if err != nil {
		return nil, err
	}
	venta.Detalles = detalles
	return venta, nil
}

// ListVentas devuelve las cabeceras del rango [desde, hasta].
func (uc *VentaUseCase) ListVentas(ctx context.Context, desde, hasta time.Time) ([]*entity.Venta, error) {
	return uc.ventaRepo.List(desde, hasta)
}
