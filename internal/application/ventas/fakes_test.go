package ventas_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastellanos/pos-ventas-api/internal/application/ventas"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos: mapas y slices protegidos por el mutex del
// memTxRunner. El runner toma un snapshot antes de ejecutar fn y lo restaura si
// fn falla, reproduciendo la semántica de rollback de una transacción real. El
// mutex serializa las "transacciones", igual que los bloqueos de fila
// serializan a dos ventas que compiten por el mismo producto.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu           sync.Mutex
	productos    map[string]*entity.Producto
	ventas       map[string]*entity.Venta
	detalles     []*entity.DetalleVenta // slice: preserva el orden de inserción
	movimientos  []*entity.MovimientoStock
	comprobantes []*entity.Comprobante
	usuarios     map[string]*entity.Usuario
}

func newMemStore() *memStore {
	return &memStore{
		productos: make(map[string]*entity.Producto),
		ventas:    make(map[string]*entity.Venta),
		usuarios:  make(map[string]*entity.Usuario),
	}
}

type memSnapshot struct {
	productos    map[string]*entity.Producto
	ventas       map[string]*entity.Venta
	detalles     []*entity.DetalleVenta
	movimientos  []*entity.MovimientoStock
	comprobantes []*entity.Comprobante
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		productos: make(map[string]*entity.Producto, len(s.productos)),
		ventas:    make(map[string]*entity.Venta, len(s.ventas)),
	}
	for id, p := range s.productos {
		c := *p
		snap.productos[id] = &c
	}
	for id, v := range s.ventas {
		c := *v
		snap.ventas[id] = &c
	}
	for _, d := range s.detalles {
		c := *d
		snap.detalles = append(snap.detalles, &c)
	}
	for _, m := range s.movimientos {
		c := *m
		snap.movimientos = append(snap.movimientos, &c)
	}
	for _, cp := range s.comprobantes {
		c := *cp
		snap.comprobantes = append(snap.comprobantes, &c)
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.productos = snap.productos
	s.ventas = snap.ventas
	s.detalles = snap.detalles
	s.movimientos = snap.movimientos
	s.comprobantes = snap.comprobantes
}

// memTxRunner implementa ventas.TxRunner sobre el memStore.
type memTxRunner struct {
	store *memStore
}

var _ ventas.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(
	ventaRepo repository.VentaRepository,
	detalleRepo repository.DetalleVentaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	comprobanteRepo repository.ComprobanteRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	err := fn(
		&ventaRepoFake{store: r.store},
		&detalleRepoFake{store: r.store},
		&productoRepoFake{store: r.store},
		&movRepoFake{store: r.store},
		&comprobanteRepoFake{store: r.store},
	)
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

// ── ProductoRepository ────────────────────────────────────────────────────────

type productoRepoFake struct {
	store *memStore
}

func (f *productoRepoFake) GetByID(id string) (*entity.Producto, error) {
	p, ok := f.store.productos[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

// GetForUpdate devuelve una copia, igual que un scan de fila real: el caller
// trabaja sobre su copia y el store solo cambia vía ApplyDelta.
func (f *productoRepoFake) GetForUpdate(id string) (*entity.Producto, error) {
	return f.GetByID(id)
}

func (f *productoRepoFake) ApplyDelta(id string, delta decimal.Decimal) error {
	p, ok := f.store.productos[id]
	if !ok {
		return fmt.Errorf("producto %s no existe", id)
	}
	p.Stock = p.Stock.Add(delta)
	return nil
}

func (f *productoRepoFake) List() ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range f.store.productos {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (f *productoRepoFake) ListStockBajo(umbral decimal.Decimal) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range f.store.productos {
		if p.Stock.LessThanOrEqual(umbral) {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *productoRepoFake) ListPorCaducar(hasta time.Time) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range f.store.productos {
		if p.FechaCaducidad != nil && !p.FechaCaducidad.After(hasta) {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── VentaRepository ───────────────────────────────────────────────────────────

type ventaRepoFake struct {
	store *memStore
}

func (f *ventaRepoFake) Create(venta *entity.Venta) error {
	c := *venta
	c.Detalles = nil
	f.store.ventas[venta.ID] = &c
	return nil
}

func (f *ventaRepoFake) GetByID(id string) (*entity.Venta, error) {
	v, ok := f.store.ventas[id]
	if !ok {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (f *ventaRepoFake) List(desde, hasta time.Time) ([]*entity.Venta, error) {
	var out []*entity.Venta
	for _, v := range f.store.ventas {
		if !v.Fecha.Before(desde) && !v.Fecha.After(hasta) {
			c := *v
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *ventaRepoFake) Delete(id string) error {
	delete(f.store.ventas, id)
	return nil
}

func (f *ventaRepoFake) UpdateTotales(id string, subtotal, iva, total decimal.Decimal, updatedAt time.Time) error {
	v, ok := f.store.ventas[id]
	if !ok {
		return fmt.Errorf("venta %s no existe", id)
	}
	v.Subtotal = subtotal
	v.IVA = iva
	v.Total = total
	v.UpdatedAt = updatedAt
	return nil
}

// ── DetalleVentaRepository ────────────────────────────────────────────────────

type detalleRepoFake struct {
	store *memStore
}

func (f *detalleRepoFake) Create(detalle *entity.DetalleVenta) error {
	c := *detalle
	f.store.detalles = append(f.store.detalles, &c)
	return nil
}

func (f *detalleRepoFake) GetByID(id string) (*entity.DetalleVenta, error) {
	for _, d := range f.store.detalles {
		if d.ID == id {
			c := *d
			return &c, nil
		}
	}
	return nil, nil
}

func (f *detalleRepoFake) ListByVenta(ventaID string) ([]*entity.DetalleVenta, error) {
	var out []*entity.DetalleVenta
	for _, d := range f.store.detalles {
		if d.VentaID == ventaID {
			c := *d
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *detalleRepoFake) Update(detalle *entity.DetalleVenta) error {
	for i, d := range f.store.detalles {
		if d.ID == detalle.ID {
			c := *detalle
			f.store.detalles[i] = &c
			return nil
		}
	}
	return fmt.Errorf("detalle %s no existe", detalle.ID)
}

func (f *detalleRepoFake) Delete(id string) error {
	for i, d := range f.store.detalles {
		if d.ID == id {
			f.store.detalles = append(f.store.detalles[:i], f.store.detalles[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *detalleRepoFake) DeleteByVenta(ventaID string) error {
	var rest []*entity.DetalleVenta
	for _, d := range f.store.detalles {
		if d.VentaID != ventaID {
			rest = append(rest, d)
		}
	}
	f.store.detalles = rest
	return nil
}

// ── MovimientoStockRepository ─────────────────────────────────────────────────

type movRepoFake struct {
	store *memStore
}

func (f *movRepoFake) Create(mov *entity.MovimientoStock) error {
	// Mismo contrato que el repo real: motivo fuera del conjunto cerrado se rechaza.
	if !mov.Motivo.EsValido() {
		return fmt.Errorf("motivo de movimiento inválido: %q", mov.Motivo)
	}
	c := *mov
	f.store.movimientos = append(f.store.movimientos, &c)
	return nil
}

func (f *movRepoFake) ListByProducto(productoID string, limit int) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, m := range f.store.movimientos {
		if m.ProductoID == productoID {
			c := *m
			out = append(out, &c)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *movRepoFake) SumDeltasByProducto(productoID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range f.store.movimientos {
		if m.ProductoID == productoID {
			sum = sum.Add(m.Delta)
		}
	}
	return sum, nil
}

// ── ComprobanteRepository ─────────────────────────────────────────────────────

type comprobanteRepoFake struct {
	store *memStore
}

func (f *comprobanteRepoFake) Create(comprobante *entity.Comprobante) error {
	c := *comprobante
	f.store.comprobantes = append(f.store.comprobantes, &c)
	return nil
}

func (f *comprobanteRepoFake) ListByVenta(ventaID string) ([]*entity.Comprobante, error) {
	var out []*entity.Comprobante
	for _, cp := range f.store.comprobantes {
		if cp.VentaID == ventaID {
			c := *cp
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *comprobanteRepoFake) DeleteByVenta(ventaID string) error {
	var rest []*entity.Comprobante
	for _, cp := range f.store.comprobantes {
		if cp.VentaID != ventaID {
			rest = append(rest, cp)
		}
	}
	f.store.comprobantes = rest
	return nil
}

// ── UsuarioRepository ─────────────────────────────────────────────────────────

type usuarioRepoFake struct {
	store *memStore
}

func (f *usuarioRepoFake) Create(usuario *entity.Usuario) error {
	c := *usuario
	f.store.usuarios[usuario.ID] = &c
	return nil
}

func (f *usuarioRepoFake) GetByID(id string) (*entity.Usuario, error) {
	u, ok := f.store.usuarios[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *usuarioRepoFake) GetByEmail(email string) (*entity.Usuario, error) {
	for _, u := range f.store.usuarios {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *usuarioRepoFake) Exists(id string) (bool, error) {
	_, ok := f.store.usuarios[id]
	return ok, nil
}
