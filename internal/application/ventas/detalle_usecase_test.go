package ventas_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastellanos/pos-ventas-api/internal/application/ventas"
	"github.com/jcastellanos/pos-ventas-api/internal/domain"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: venta existente con una línea, lista para mutar detalles
// ──────────────────────────────────────────────────────────────────────────────

type detalleFixture struct {
	ventaUC   *ventas.VentaUseCase
	detalleUC *ventas.DetalleVentaUseCase
	store     *memStore
	venta     *entity.Venta
	detalle   *entity.DetalleVenta
}

// newDetalleFixture deja el mundo en: producto A stock 10, venta con una línea
// de 3 unidades a $5 (stock restante 7), producto B stock 8 sin vender.
func newDetalleFixture(t *testing.T) *detalleFixture {
	t.Helper()
	store := newMemStore()
	runner := &memTxRunner{store: store}
	log := newTestLogger()
	ventaUC := ventas.NewVentaUseCase(
		runner,
		&ventaRepoFake{store: store},
		&detalleRepoFake{store: store},
		&usuarioRepoFake{store: store},
		tasaIVATest,
		log,
	)
	detalleUC := ventas.NewDetalleVentaUseCase(runner, tasaIVATest, log)

	store.usuarios[testUsuarioID] = &entity.Usuario{
		ID: testUsuarioID, Email: "cajero@pos.test", Nombre: "Cajero", Rol: entity.RolCajero, Estado: "active",
	}
	seedProducto(store, testProductoA, "Leche", "10")
	seedProducto(store, testProductoB, "Café", "8")

	venta, err := ventaUC.CreateVenta(context.Background(), testUsuarioID, entity.MetodoPagoEfectivo,
		[]ventas.ItemVenta{item(testProductoA, "3", "5")})
	require.NoError(t, err)
	require.Len(t, venta.Detalles, 1)

	return &detalleFixture{
		ventaUC:   ventaUC,
		detalleUC: detalleUC,
		store:     store,
		venta:     venta,
		detalle:   venta.Detalles[0],
	}
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// CreateDetalle
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDetalle_DescuentaStockYRecalculaCabecera(t *testing.T) {
	fx := newDetalleFixture(t)

	detalle, err := fx.detalleUC.CreateDetalle(context.Background(), ventas.CreateDetalleInput{
		VentaID:        fx.venta.ID,
		ProductoID:     testProductoB,
		Cantidad:       decimal.RequireFromString("2"),
		PrecioUnitario: decimal.RequireFromString("8"),
		UsuarioID:      testUsuarioID,
	})
	require.NoError(t, err)
	assert.True(t, detalle.Subtotal.Equal(decimal.RequireFromString("16")))

	assert.True(t, fx.store.productos[testProductoB].Stock.Equal(decimal.RequireFromString("6")),
		"stock de B descontado")

	// Cabecera: 3×5 + 2×8 = 31; total 31 × 1.16 = 35.96
	cabecera := fx.store.ventas[fx.venta.ID]
	assert.True(t, cabecera.Subtotal.Equal(decimal.RequireFromString("31")),
		"subtotal recalculado, fue %s", cabecera.Subtotal)
	assert.True(t, cabecera.Total.Equal(decimal.RequireFromString("35.96")),
		"total recalculado, fue %s", cabecera.Total)
}

func TestCreateDetalle_StockInsuficiente_SinEfectos(t *testing.T) {
	fx := newDetalleFixture(t)
	movsAntes := len(fx.store.movimientos)

	_, err := fx.detalleUC.CreateDetalle(context.Background(), ventas.CreateDetalleInput{
		VentaID:        fx.venta.ID,
		ProductoID:     testProductoB,
		Cantidad:       decimal.RequireFromString("9"), // stock 8
		PrecioUnitario: decimal.RequireFromString("8"),
		UsuarioID:      testUsuarioID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, fx.store.movimientos, movsAntes, "rollback: sin movimientos nuevos")
	assert.True(t, fx.store.productos[testProductoB].Stock.Equal(decimal.RequireFromString("8")))
}

func TestCreateDetalle_VentaInexistente(t *testing.T) {
	fx := newDetalleFixture(t)
	_, err := fx.detalleUC.CreateDetalle(context.Background(), ventas.CreateDetalleInput{
		VentaID:        "no-existe",
		ProductoID:     testProductoB,
		Cantidad:       decimal.RequireFromString("1"),
		PrecioUnitario: decimal.RequireFromString("8"),
		UsuarioID:      testUsuarioID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateDetalle — mismo producto
// ──────────────────────────────────────────────────────────────────────────────

// Subir la cantidad de 3 a 5 con stock 7 exige solo el delta (2) y registra un
// movimiento "ajuste_detalle_venta" con -2.
func TestUpdateDetalle_MismoProducto_SubeCantidad(t *testing.T) {
	fx := newDetalleFixture(t)

	actualizado, err := fx.detalleUC.UpdateDetalle(context.Background(), fx.detalle.ID,
		ventas.UpdateDetalleInput{Cantidad: decPtr("5"), UsuarioID: testUsuarioID})
	require.NoError(t, err)

	assert.True(t, actualizado.Cantidad.Equal(decimal.RequireFromString("5")))
	assert.True(t, actualizado.Subtotal.Equal(decimal.RequireFromString("25")),
		"subtotal de la línea recalculado (5×5)")
	assert.True(t, fx.store.productos[testProductoA].Stock.Equal(decimal.RequireFromString("5")),
		"stock 7 - delta 2 = 5")

	movs := movimientosDe(fx.store, testProductoA)
	require.Len(t, movs, 2, "venta inicial + ajuste")
	assert.Equal(t, entity.MotivoAjusteDetalleVenta, movs[1].Motivo)
	assert.True(t, movs[1].Delta.Equal(decimal.RequireFromString("-2")))

	// Cabecera: 25 × 1.16 = 29
	cabecera := fx.store.ventas[fx.venta.ID]
	assert.True(t, cabecera.Total.Equal(decimal.RequireFromString("29")),
		"total recalculado, fue %s", cabecera.Total)
}

// Bajar la cantidad devuelve stock: 3 -> 1 repone 2 unidades.
func TestUpdateDetalle_MismoProducto_BajaCantidad(t *testing.T) {
	fx := newDetalleFixture(t)

	_, err := fx.detalleUC.UpdateDetalle(context.Background(), fx.detalle.ID,
		ventas.UpdateDetalleInput{Cantidad: decPtr("1"), UsuarioID: testUsuarioID})
	require.NoError(t, err)

	assert.True(t, fx.store.productos[testProductoA].Stock.Equal(decimal.RequireFromString("9")),
		"stock 7 + 2 repuestas = 9")
	movs := movimientosDe(fx.store, testProductoA)
	require.Len(t, movs, 2)
	assert.True(t, movs[1].Delta.Equal(decimal.RequireFromString("2")),
		"el ajuste repone 2 unidades")
}

// Cambiar solo el precio no toca stock ni libro, pero sí recalcula subtotales.
func TestUpdateDetalle_SoloPrecio_SinMovimiento(t *testing.T) {
	fx := newDetalleFixture(t)
	movsAntes := len(fx.store.movimientos)

	actualizado, err := fx.detalleUC.UpdateDetalle(context.Background(), fx.detalle.ID,
		ventas.UpdateDetalleInput{PrecioUnitario: decPtr("6"), UsuarioID: testUsuarioID})
	require.NoError(t, err)

	assert.True(t, actualizado.Subtotal.Equal(decimal.RequireFromString("18")), "3×6")
	assert.Len(t, fx.store.movimientos, movsAntes,
		"delta cero: el libro no registra nada")
	assert.True(t, fx.store.productos[testProductoA].Stock.Equal(decimal.RequireFromString("7")),
		"el stock no cambia")

	cabecera := fx.store.ventas[fx.venta.ID]
	assert.True(t, cabecera.Subtotal.Equal(decimal.RequireFromString("18")),
		"la cabecera sí se recalcula")
}

func TestUpdateDetalle_DeltaMayorQueStock(t *testing.T) {
	fx := newDetalleFixture(t)

	// 3 -> 11: delta 8 > stock 7
	_, err := fx.detalleUC.UpdateDetalle(context.Background(), fx.detalle.ID,
		ventas.UpdateDetalleInput{Cantidad: decPtr("11"), UsuarioID: testUsuarioID})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, fx.store.productos[testProductoA].Stock.Equal(decimal.RequireFromString("7")),
		"rollback: stock intacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateDetalle — cambio de producto
// ──────────────────────────────────────────────────────────────────────────────

// Cambiar la línea de A a B revierte A completo y descuenta B completo, con los
// dos movimientos del cambio en la misma transacción.
func TestUpdateDetalle_CambioDeProducto(t *testing.T) {
	fx := newDetalleFixture(t)

	actualizado, err := fx.detalleUC.UpdateDetalle(context.Background(), fx.detalle.ID,
		ventas.UpdateDetalleInput{
			ProductoID: strPtr(testProductoB),
			Cantidad:   decPtr("4"),
			UsuarioID:  testUsuarioID,
		})
	require.NoError(t, err)

	assert.Equal(t, testProductoB, actualizado.ProductoID)
	assert.True(t, fx.store.productos[testProductoA].Stock.Equal(decimal.RequireFromString("10")),
		"A recupera sus 3 unidades (7+3)")
	assert.True(t, fx.store.productos[testProductoB].Stock.Equal(decimal.RequireFromString("4")),
		"B pierde 4 unidades (8-4)")

	movsA := movimientosDe(fx.store, testProductoA)
	require.Len(t, movsA, 2)
	assert.Equal(t, entity.MotivoRevertirCambioDetalle, movsA[1].Motivo)
	assert.True(t, movsA[1].Delta.Equal(decimal.RequireFromString("3")))

	movsB := movimientosDe(fx.store, testProductoB)
	require.Len(t, movsB, 1)
	assert.Equal(t, entity.MotivoAplicarCambioDetalle, movsB[0].Motivo)
	assert.True(t, movsB[0].Delta.Equal(decimal.RequireFromString("-4")))
}

// El producto nuevo debe cubrir la cantidad completa; si no, nada cambia, ni
// siquiera la reversión del producto anterior.
func TestUpdateDetalle_CambioDeProducto_NuevoSinStock(t *testing.T) {
	fx := newDetalleFixture(t)

	_, err := fx.detalleUC.UpdateDetalle(context.Background(), fx.detalle.ID,
		ventas.UpdateDetalleInput{
			ProductoID: strPtr(testProductoB),
			Cantidad:   decPtr("9"), // stock de B: 8
			UsuarioID:  testUsuarioID,
		})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, fx.store.productos[testProductoA].Stock.Equal(decimal.RequireFromString("7")),
		"rollback: A sigue descontado por la venta original")
	assert.True(t, fx.store.productos[testProductoB].Stock.Equal(decimal.RequireFromString("8")),
		"rollback: B intacto")
	detalle := fx.store.detalles[0]
	assert.Equal(t, testProductoA, detalle.ProductoID, "la línea no cambió")
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteDetalle
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteDetalle_RevierteStockYRecalculaCabecera(t *testing.T) {
	fx := newDetalleFixture(t)

	require.NoError(t, fx.detalleUC.DeleteDetalle(context.Background(), fx.detalle.ID, testUsuarioID))

	assert.True(t, fx.store.productos[testProductoA].Stock.Equal(decimal.RequireFromString("10")),
		"las 3 unidades vuelven al stock")
	assert.Empty(t, fx.store.detalles, "la línea desaparece")

	movs := movimientosDe(fx.store, testProductoA)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MotivoEliminarDetalleVenta, movs[1].Motivo)
	assert.True(t, movs[1].Delta.Equal(decimal.RequireFromString("3")))

	// Cabecera sin líneas: totales en cero.
	cabecera := fx.store.ventas[fx.venta.ID]
	assert.True(t, cabecera.Subtotal.IsZero(), "subtotal en cero")
	assert.True(t, cabecera.Total.IsZero(), "total en cero")
}

func TestDeleteDetalle_NoExiste(t *testing.T) {
	fx := newDetalleFixture(t)
	err := fx.detalleUC.DeleteDetalle(context.Background(), "no-existe", testUsuarioID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateDetalle_CantidadNoPositiva(t *testing.T) {
	fx := newDetalleFixture(t)
	_, err := fx.detalleUC.UpdateDetalle(context.Background(), fx.detalle.ID,
		ventas.UpdateDetalleInput{Cantidad: decPtr("0"), UsuarioID: testUsuarioID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateDetalle_ProductoVacio(t *testing.T) {
	fx := newDetalleFixture(t)
	_, err := fx.detalleUC.UpdateDetalle(context.Background(), fx.detalle.ID,
		ventas.UpdateDetalleInput{ProductoID: strPtr(""), UsuarioID: testUsuarioID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
