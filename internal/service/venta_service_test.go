package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"boletapos/internal/dto"
	"boletapos/internal/model"
	"boletapos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ─── In-memory stubs ─────────────────────────────────────────────────────────
// The repositories run in nil-tx mode: DB() returns nil so the service calls
// the transaction body directly. Validation happens before any write, so the
// no-partial-effect assertions hold without a real rollback.

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo(productos ...*model.Producto) *stubProductoRepo {
	m := make(map[uuid.UUID]*model.Producto)
	for _, p := range productos {
		m[p.ID] = p
	}
	return &stubProductoRepo{productos: m}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) { return nil, nil }

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return repository.ErrStockGuard
	}
	p.Stock -= cantidad
	return nil
}

func (r *stubProductoRepo) RestaurarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += cantidad
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

func (r *stubProductoRepo) stock(id uuid.UUID) int { return r.productos[id].Stock }

type stubBoletaRepo struct {
	boletas    map[uuid.UUID]*model.Boleta
	lastFilter dto.VentaFilter
}

func newStubBoletaRepo() *stubBoletaRepo {
	return &stubBoletaRepo{boletas: make(map[uuid.UUID]*model.Boleta)}
}

func (r *stubBoletaRepo) CreateTx(_ *gorm.DB, b *model.Boleta) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	for i := range b.Detalles {
		b.Detalles[i].BoletaID = b.ID
	}
	b.CreatedAt = time.Now()
	r.boletas[b.ID] = b
	return nil
}

func (r *stubBoletaRepo) UpdateTx(_ *gorm.DB, b *model.Boleta) error {
	r.boletas[b.ID] = b
	return nil
}

func (r *stubBoletaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.boletas, id)
	return nil
}

func (r *stubBoletaRepo) DeleteDetallesTx(_ *gorm.DB, boletaID uuid.UUID) error {
	if b, ok := r.boletas[boletaID]; ok {
		b.Detalles = nil
	}
	return nil
}

func (r *stubBoletaRepo) CreateDetallesTx(_ *gorm.DB, detalles []model.DetalleBoleta) error {
	if len(detalles) == 0 {
		return nil
	}
	b, ok := r.boletas[detalles[0].BoletaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Detalles = append(b.Detalles, detalles...)
	return nil
}

func (r *stubBoletaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Boleta, error) {
	b, ok := r.boletas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBoletaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Boleta, error) {
	r.lastFilter = filter
	var out []model.Boleta
	for _, b := range r.boletas {
		if filter.VendedorID != "" && (b.VendedorID == nil || b.VendedorID.String() != filter.VendedorID) {
			continue
		}
		if filter.Fecha != "" && b.CreatedAt.Format("2006-01-02") != filter.Fecha {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBoletaRepo) FindBetween(_ context.Context, desde, hasta time.Time, vendedorID *uuid.UUID) ([]model.Boleta, error) {
	var out []model.Boleta
	for _, b := range r.boletas {
		if b.CreatedAt.Before(desde) || b.CreatedAt.After(hasta) {
			continue
		}
		if vendedorID != nil && (b.VendedorID == nil || *b.VendedorID != *vendedorID) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBoletaRepo) DB() *gorm.DB { return nil }

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) ListByProducto(_ context.Context, productoID uuid.UUID) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo(usuarios ...*model.Usuario) *stubUsuarioRepo {
	m := make(map[uuid.UUID]*model.Usuario)
	for _, u := range usuarios {
		m[u.ID] = u
	}
	return &stubUsuarioRepo{usuarios: m}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByRut(_ context.Context, rut string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Rut == rut && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) { return nil, nil }

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

// ─── Fixture ─────────────────────────────────────────────────────────────────

type ventaFixture struct {
	svc          VentaService
	productoRepo *stubProductoRepo
	boletaRepo   *stubBoletaRepo
	movRepo      *stubMovimientoRepo
	vendedor     *model.Usuario
	comida       *model.Producto // precio 5000, stock 10
	correa       *model.Producto // precio 10000, stock 5
}

func newVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()

	vendedor := &model.Usuario{
		ID:     uuid.New(),
		Nombre: "Juan Cajero",
		Rut:    "2-7",
		Rol:    model.RolVendedor,
		Activo: true,
	}
	comida := &model.Producto{ID: uuid.New(), Nombre: "Alimento perro 15kg", Precio: 5000, Stock: 10}
	correa := &model.Producto{ID: uuid.New(), Nombre: "Correa retractil", Precio: 10000, Stock: 5}

	productoRepo := newStubProductoRepo(comida, correa)
	boletaRepo := newStubBoletaRepo()
	movRepo := &stubMovimientoRepo{}
	usuarioRepo := newStubUsuarioRepo(vendedor)

	return &ventaFixture{
		svc:          NewVentaService(boletaRepo, productoRepo, movRepo, usuarioRepo, nil),
		productoRepo: productoRepo,
		boletaRepo:   boletaRepo,
		movRepo:      movRepo,
		vendedor:     vendedor,
		comida:       comida,
		correa:       correa,
	}
}

func montoPtr(v int64) *int64 { return &v }

// ─── CalcularNeto ────────────────────────────────────────────────────────────

func TestCalcularNeto(t *testing.T) {
	cases := []struct {
		total int64
		neto  int64
	}{
		{0, 0},
		{1, 1},       // 0.84 rounds up
		{119, 100},   // exact
		{1190, 1000}, // exact
		{100, 84},    // 84.03 rounds down
		{59, 50},     // 49.58 rounds up
		{20000, 16807},
		{85000, 71429},
	}
	for _, tc := range cases {
		neto := CalcularNeto(tc.total)
		assert.Equal(t, tc.neto, neto, "total=%d", tc.total)
		iva := tc.total - neto
		assert.Equal(t, tc.total, neto+iva)
	}
}

// ─── RegistrarVenta ──────────────────────────────────────────────────────────

func TestRegistrarVentaEfectivo(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: f.comida.ID.String(), Cantidad: 2}, // 10000
			{ProductoID: f.correa.ID.String(), Cantidad: 1}, // 10000
		},
		MedioPago:      model.MedioPagoEfectivo,
		MontoEntregado: montoPtr(25000),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20000), resp.Resumen.Total)
	assert.Equal(t, int64(16807), resp.Resumen.Neto)
	assert.Equal(t, int64(3193), resp.Resumen.IVA)
	assert.Equal(t, int64(25000), resp.Resumen.MontoEntregado)
	assert.Equal(t, int64(5000), resp.Resumen.Vuelto)
	assert.Equal(t, "Juan Cajero", resp.Vendedor)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Alimento perro 15kg", resp.Items[0].Producto)
	assert.Equal(t, int64(5000), resp.Items[0].PrecioUnitario)

	// Stock decremented and audited
	assert.Equal(t, 8, f.productoRepo.stock(f.comida.ID))
	assert.Equal(t, 4, f.productoRepo.stock(f.correa.ID))
	require.Len(t, f.movRepo.movimientos, 2)
	assert.Equal(t, "venta", f.movRepo.movimientos[0].Tipo)
	assert.Equal(t, -2, f.movRepo.movimientos[0].Cantidad)
	assert.Equal(t, 10, f.movRepo.movimientos[0].StockAnterior)
	assert.Equal(t, 8, f.movRepo.movimientos[0].StockNuevo)

	assert.Len(t, f.boletaRepo.boletas, 1)
}

func TestRegistrarVentaEfectivoUnaLinea(t *testing.T) {
	f := newVentaFixture(t)
	cama := &model.Producto{ID: uuid.New(), Nombre: "Cama acolchada", Precio: 10000, Stock: 5}
	f.productoRepo.productos[cama.ID] = cama

	resp, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:          []dto.ItemVentaRequest{{ProductoID: cama.ID.String(), Cantidad: 2}},
		MedioPago:      model.MedioPagoEfectivo,
		MontoEntregado: montoPtr(25000),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20000), resp.Resumen.Total)
	assert.Equal(t, int64(16807), resp.Resumen.Neto)
	assert.Equal(t, int64(3193), resp.Resumen.IVA)
	assert.Equal(t, int64(5000), resp.Resumen.Vuelto)
	assert.Equal(t, 3, f.productoRepo.stock(cama.ID))
}

func TestRegistrarVentaDebitoIgnoraMontoEntregado(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:          []dto.ItemVentaRequest{{ProductoID: f.comida.ID.String(), Cantidad: 1}},
		MedioPago:      model.MedioPagoDebito,
		MontoEntregado: montoPtr(99999),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.Resumen.MontoEntregado)
	assert.Equal(t, int64(0), resp.Resumen.Vuelto)
}

func TestRegistrarVentaPagoInsuficiente(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:          []dto.ItemVentaRequest{{ProductoID: f.correa.ID.String(), Cantidad: 1}},
		MedioPago:      model.MedioPagoEfectivo,
		MontoEntregado: montoPtr(9000),
	})
	require.ErrorIs(t, err, ErrPagoInsuficiente)

	// Nothing committed
	assert.Equal(t, 5, f.productoRepo.stock(f.correa.ID))
	assert.Empty(t, f.boletaRepo.boletas)
	assert.Empty(t, f.movRepo.movimientos)
}

func TestRegistrarVentaEfectivoSinMonto(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:     []dto.ItemVentaRequest{{ProductoID: f.comida.ID.String(), Cantidad: 1}},
		MedioPago: model.MedioPagoEfectivo,
	})
	require.ErrorIs(t, err, ErrPagoInsuficiente)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:     []dto.ItemVentaRequest{{ProductoID: f.correa.ID.String(), Cantidad: 6}},
		MedioPago: model.MedioPagoDebito,
	})

	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Correa retractil", stockErr.Producto)
	assert.Equal(t, 5, stockErr.Disponible)
	assert.Equal(t, 6, stockErr.Solicitado)

	assert.Equal(t, 5, f.productoRepo.stock(f.correa.ID))
	assert.Empty(t, f.boletaRepo.boletas)
}

func TestRegistrarVentaFallaEnSegundaLineaNoTocaLaPrimera(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: f.comida.ID.String(), Cantidad: 3}, // valid
			{ProductoID: f.correa.ID.String(), Cantidad: 6}, // over stock
		},
		MedioPago: model.MedioPagoDebito,
	})

	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, f.productoRepo.stock(f.comida.ID))
	assert.Equal(t, 5, f.productoRepo.stock(f.correa.ID))
	assert.Empty(t, f.movRepo.movimientos)
}

func TestRegistrarVentaLineasDuplicadasComputanAcumulado(t *testing.T) {
	f := newVentaFixture(t)

	// 3 + 3 of a stock of 5 must fail
	_, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: f.correa.ID.String(), Cantidad: 3},
			{ProductoID: f.correa.ID.String(), Cantidad: 3},
		},
		MedioPago: model.MedioPagoDebito,
	})
	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Disponible) // 5 - 3 already claimed

	// 2 + 2 fits
	_, err = f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: f.correa.ID.String(), Cantidad: 2},
			{ProductoID: f.correa.ID.String(), Cantidad: 2},
		},
		MedioPago: model.MedioPagoDebito,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.productoRepo.stock(f.correa.ID))
}

func TestRegistrarVentaProductoInexistente(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:     []dto.ItemVentaRequest{{ProductoID: uuid.NewString(), Cantidad: 1}},
		MedioPago: model.MedioPagoDebito,
	})
	require.ErrorIs(t, err, ErrProductoNoEncontrado)
}

// ─── AnularVenta ─────────────────────────────────────────────────────────────

func TestAnularVentaRestauraStock(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:     []dto.ItemVentaRequest{{ProductoID: f.comida.ID.String(), Cantidad: 4}},
		MedioPago: model.MedioPagoCredito,
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.productoRepo.stock(f.comida.ID))

	boletaID := uuid.MustParse(resp.Numero)
	require.NoError(t, f.svc.AnularVenta(context.Background(), boletaID))

	assert.Equal(t, 10, f.productoRepo.stock(f.comida.ID))
	assert.Empty(t, f.boletaRepo.boletas)

	// venta + anulacion movements recorded
	movs, _ := f.movRepo.ListByProducto(context.Background(), f.comida.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, "anulacion", movs[1].Tipo)
	assert.Equal(t, 4, movs[1].Cantidad)
}

func TestAnularVentaInexistente(t *testing.T) {
	f := newVentaFixture(t)
	err := f.svc.AnularVenta(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrBoletaNoEncontrada)
}

func TestAnularVentaSaltaProductosEliminados(t *testing.T) {
	f := newVentaFixture(t)

	boleta := &model.Boleta{
		ID:        uuid.New(),
		Total:     5000,
		MedioPago: model.MedioPagoDebito,
		Detalles: []model.DetalleBoleta{
			{Cantidad: 2, PrecioUnitario: 2500, Subtotal: 5000}, // ProductoID nil
		},
	}
	f.boletaRepo.boletas[boleta.ID] = boleta

	require.NoError(t, f.svc.AnularVenta(context.Background(), boleta.ID))
	assert.Empty(t, f.boletaRepo.boletas)
	assert.Empty(t, f.movRepo.movimientos)
}

// ─── EditarVenta ─────────────────────────────────────────────────────────────

func TestEditarVentaReemplazaCarritoSinDobleConteo(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:     []dto.ItemVentaRequest{{ProductoID: f.comida.ID.String(), Cantidad: 2}},
		MedioPago: model.MedioPagoDebito,
	})
	require.NoError(t, err)
	require.Equal(t, 8, f.productoRepo.stock(f.comida.ID))
	boletaID := uuid.MustParse(resp.Numero)

	// Grow the same line to 5: available is 8 restored + 2 = 10, so it fits.
	edited, err := f.svc.EditarVenta(context.Background(), boletaID, dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: f.comida.ID.String(), Cantidad: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, f.productoRepo.stock(f.comida.ID))
	assert.Equal(t, int64(25000), edited.Resumen.Total)
	assert.Equal(t, CalcularNeto(25000), edited.Resumen.Neto)
	assert.Equal(t, int64(25000)-CalcularNeto(25000), edited.Resumen.IVA)
	require.Len(t, edited.Items, 1)
	assert.Equal(t, 5, edited.Items[0].Cantidad)

	b := f.boletaRepo.boletas[boletaID]
	require.Len(t, b.Detalles, 1)
	assert.Equal(t, 5, b.Detalles[0].Cantidad)
}

func TestEditarVentaMovimientosReflejanStockRestaurado(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:     []dto.ItemVentaRequest{{ProductoID: f.comida.ID.String(), Cantidad: 2}},
		MedioPago: model.MedioPagoDebito,
	})
	require.NoError(t, err)
	require.Equal(t, 8, f.productoRepo.stock(f.comida.ID))

	_, err = f.svc.EditarVenta(context.Background(), uuid.MustParse(resp.Numero), dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: f.comida.ID.String(), Cantidad: 5}},
	})
	require.NoError(t, err)

	// venta (-2), edit restore (+2), edit decrement (-5) — the edicion rows
	// must chain over the restored stock: 8→10, then 10→5.
	movs, _ := f.movRepo.ListByProducto(context.Background(), f.comida.ID)
	require.Len(t, movs, 3)

	restore := movs[1]
	assert.Equal(t, "edicion", restore.Tipo)
	assert.Equal(t, 2, restore.Cantidad)
	assert.Equal(t, 8, restore.StockAnterior)
	assert.Equal(t, 10, restore.StockNuevo)

	descuento := movs[2]
	assert.Equal(t, "edicion", descuento.Tipo)
	assert.Equal(t, -5, descuento.Cantidad)
	assert.Equal(t, 10, descuento.StockAnterior)
	assert.Equal(t, 5, descuento.StockNuevo)
}

func TestEditarVentaStockInsuficienteNoMuta(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:     []dto.ItemVentaRequest{{ProductoID: f.comida.ID.String(), Cantidad: 2}},
		MedioPago: model.MedioPagoDebito,
	})
	require.NoError(t, err)
	boletaID := uuid.MustParse(resp.Numero)

	// 8 in stock + 2 restorable = 10; asking 11 must fail untouched.
	_, err = f.svc.EditarVenta(context.Background(), boletaID, dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: f.comida.ID.String(), Cantidad: 11}},
	})
	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, stockErr.Disponible)

	assert.Equal(t, 8, f.productoRepo.stock(f.comida.ID))
	b := f.boletaRepo.boletas[boletaID]
	require.Len(t, b.Detalles, 1)
	assert.Equal(t, 2, b.Detalles[0].Cantidad)
}

func TestEditarVentaCambioAMedioEfectivoValidaTender(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:     []dto.ItemVentaRequest{{ProductoID: f.correa.ID.String(), Cantidad: 1}}, // 10000
		MedioPago: model.MedioPagoDebito,
	})
	require.NoError(t, err)
	boletaID := uuid.MustParse(resp.Numero)

	efectivo := model.MedioPagoEfectivo
	_, err = f.svc.EditarVenta(context.Background(), boletaID, dto.EditarVentaRequest{
		MedioPago:      &efectivo,
		MontoEntregado: montoPtr(9000),
	})
	require.ErrorIs(t, err, ErrPagoInsuficiente)

	// Retry with enough cash
	edited, err := f.svc.EditarVenta(context.Background(), boletaID, dto.EditarVentaRequest{
		MedioPago:      &efectivo,
		MontoEntregado: montoPtr(12000),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MedioPagoEfectivo, edited.Resumen.MedioPago)
	assert.Equal(t, int64(2000), edited.Resumen.Vuelto)
	assert.Equal(t, 4, f.productoRepo.stock(f.correa.ID)) // cart untouched
}

func TestEditarVentaCambioATarjetaLimpiaTender(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.vendedor.ID, dto.RegistrarVentaRequest{
		Items:          []dto.ItemVentaRequest{{ProductoID: f.correa.ID.String(), Cantidad: 1}},
		MedioPago:      model.MedioPagoEfectivo,
		MontoEntregado: montoPtr(15000),
	})
	require.NoError(t, err)
	boletaID := uuid.MustParse(resp.Numero)

	credito := model.MedioPagoCredito
	edited, err := f.svc.EditarVenta(context.Background(), boletaID, dto.EditarVentaRequest{
		MedioPago: &credito,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), edited.Resumen.MontoEntregado)
	assert.Equal(t, int64(0), edited.Resumen.Vuelto)
}

func TestEditarVentaInexistente(t *testing.T) {
	f := newVentaFixture(t)
	_, err := f.svc.EditarVenta(context.Background(), uuid.New(), dto.EditarVentaRequest{})
	require.ErrorIs(t, err, ErrBoletaNoEncontrada)
}

// ─── Historial ───────────────────────────────────────────────────────────────

func TestHistorialVendedorSiempreVeLoPropio(t *testing.T) {
	f := newVentaFixture(t)
	otro := uuid.New()

	// A vendedor asking for someone else's sales gets scoped to their own id.
	_, err := f.svc.Historial(context.Background(), dto.VentaFilter{VendedorID: otro.String()},
		Principal{ID: f.vendedor.ID, Rol: model.RolVendedor})
	require.NoError(t, err)
	assert.Equal(t, f.vendedor.ID.String(), f.boletaRepo.lastFilter.VendedorID)

	// Admin keeps the requested filter.
	_, err = f.svc.Historial(context.Background(), dto.VentaFilter{VendedorID: otro.String()},
		Principal{ID: uuid.New(), Rol: model.RolAdmin})
	require.NoError(t, err)
	assert.Equal(t, otro.String(), f.boletaRepo.lastFilter.VendedorID)
}

func TestHistorialFiltraPorFecha(t *testing.T) {
	f := newVentaFixture(t)
	now := time.Now()
	vid := f.vendedor.ID

	hoy := &model.Boleta{ID: uuid.New(), Total: 10000, MedioPago: model.MedioPagoDebito,
		VendedorID: &vid, CreatedAt: now}
	ayer := &model.Boleta{ID: uuid.New(), Total: 20000, MedioPago: model.MedioPagoDebito,
		VendedorID: &vid, CreatedAt: now.AddDate(0, 0, -1)}
	f.boletaRepo.boletas[hoy.ID] = hoy
	f.boletaRepo.boletas[ayer.ID] = ayer

	out, err := f.svc.Historial(context.Background(), dto.VentaFilter{Fecha: now.Format("2006-01-02")},
		Principal{ID: uuid.New(), Rol: model.RolAdmin})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, hoy.ID.String(), out[0].Numero)
	assert.Equal(t, now.Format("2006-01-02"), f.boletaRepo.lastFilter.Fecha)
}

// ─── ResumenDelDia ───────────────────────────────────────────────────────────

func TestResumenDelDiaSegmentaPorMedioPago(t *testing.T) {
	f := newVentaFixture(t)
	now := time.Now()
	vid := f.vendedor.ID

	agregar := func(total int64, medio string) {
		b := &model.Boleta{
			ID:         uuid.New(),
			Total:      total,
			MedioPago:  medio,
			VendedorID: &vid,
			CreatedAt:  now,
		}
		f.boletaRepo.boletas[b.ID] = b
	}
	agregar(5000, model.MedioPagoEfectivo)
	agregar(10000, model.MedioPagoDebito)
	agregar(20000, model.MedioPagoDebito)
	agregar(50000, model.MedioPagoCredito)

	// Yesterday's sale must not count.
	ayer := &model.Boleta{ID: uuid.New(), Total: 99999, MedioPago: model.MedioPagoEfectivo,
		VendedorID: &vid, CreatedAt: now.AddDate(0, 0, -1)}
	f.boletaRepo.boletas[ayer.ID] = ayer

	resumen, err := f.svc.ResumenDelDia(context.Background(), dto.ResumenFilter{})
	require.NoError(t, err)

	assert.Equal(t, 4, resumen.CantidadVentas)
	assert.Equal(t, int64(5000), resumen.DetalleCaja.EfectivoEnCaja)
	assert.Equal(t, int64(30000), resumen.DetalleCaja.BancoDebito)
	assert.Equal(t, int64(50000), resumen.DetalleCaja.BancoCredito)
	assert.Equal(t, int64(85000), resumen.DetalleCaja.TotalVendido)
	assert.Equal(t, now.Format("2006-01-02"), resumen.Fecha)
}

func TestResumenDelDiaFiltraPorVendedor(t *testing.T) {
	f := newVentaFixture(t)
	now := time.Now()
	vid := f.vendedor.ID
	otro := uuid.New()

	f.boletaRepo.boletas[uuid.New()] = &model.Boleta{ID: uuid.New(), Total: 7000,
		MedioPago: model.MedioPagoDebito, VendedorID: &vid, CreatedAt: now}
	f.boletaRepo.boletas[uuid.New()] = &model.Boleta{ID: uuid.New(), Total: 3000,
		MedioPago: model.MedioPagoDebito, VendedorID: &otro, CreatedAt: now}

	resumen, err := f.svc.ResumenDelDia(context.Background(), dto.ResumenFilter{VendedorID: vid.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, resumen.CantidadVentas)
	assert.Equal(t, int64(7000), resumen.DetalleCaja.TotalVendido)
}

func TestResumenDelDiaFechaInvalida(t *testing.T) {
	f := newVentaFixture(t)
	_, err := f.svc.ResumenDelDia(context.Background(), dto.ResumenFilter{Fecha: "31-12-2025"})
	require.Error(t, err)
}

// ─── View model ──────────────────────────────────────────────────────────────

func TestObtenerBoletaEtiquetasCentinela(t *testing.T) {
	f := newVentaFixture(t)

	boleta := &model.Boleta{
		ID:        uuid.New(),
		Total:     5000,
		Neto:      4202,
		IVA:       798,
		MedioPago: model.MedioPagoDebito,
		CreatedAt: time.Now(),
		Detalles: []model.DetalleBoleta{
			{Cantidad: 2, PrecioUnitario: 2500, Subtotal: 5000}, // producto borrado
		},
		// Vendedor nil: user hard-deleted
	}
	f.boletaRepo.boletas[boleta.ID] = boleta

	resp, err := f.svc.ObtenerBoleta(context.Background(), boleta.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vendedor desconocido", resp.Vendedor)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Producto eliminado", resp.Items[0].Producto)

	// Fecha carries the real offset, not a hardcoded UTC label.
	fecha, err := time.Parse(time.RFC3339, resp.Fecha)
	require.NoError(t, err)
	assert.WithinDuration(t, boleta.CreatedAt, fecha, time.Second)
}

func TestObtenerBoletaInexistente(t *testing.T) {
	f := newVentaFixture(t)
	_, err := f.svc.ObtenerBoleta(context.Background(), uuid.New())
	require.True(t, errors.Is(err, ErrBoletaNoEncontrada))
}
