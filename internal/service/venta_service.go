package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boletapos/internal/dto"
	"boletapos/internal/model"
	"boletapos/internal/repository"
	"boletapos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Principal is the authenticated actor performing an operation, as handed in
// by the HTTP layer after JWT validation.
type Principal struct {
	ID  uuid.UUID
	Rol string
}

type VentaService interface {
	RegistrarVenta(ctx context.Context, vendedorID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.BoletaResponse, error)
	EditarVenta(ctx context.Context, id uuid.UUID, req dto.EditarVentaRequest) (*dto.BoletaResponse, error)
	AnularVenta(ctx context.Context, id uuid.UUID) error
	ObtenerBoleta(ctx context.Context, id uuid.UUID) (*dto.BoletaResponse, error)
	Historial(ctx context.Context, filter dto.VentaFilter, solicitante Principal) ([]dto.BoletaResponse, error)
	ResumenDelDia(ctx context.Context, filter dto.ResumenFilter) (*dto.ResumenCajaResponse, error)
}

type ventaService struct {
	repo         repository.BoletaRepository
	productoRepo repository.ProductoRepository
	movRepo      repository.MovimientoStockRepository
	usuarioRepo  repository.UsuarioRepository
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.BoletaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	usuarioRepo repository.UsuarioRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		movRepo:      movRepo,
		usuarioRepo:  usuarioRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// CalcularNeto returns round(total / 1.19) with half-up rounding.
// Computed as total*100/119 in exact decimal arithmetic so the result never
// depends on platform float behavior. IVA is derived by subtraction — the
// rounding remainder always lands on the tax side.
func CalcularNeto(total int64) int64 {
	return decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(119), 0).
		IntPart()
}

// lineaResuelta is one validated cart line with its product snapshot.
type lineaResuelta struct {
	producto *model.Producto
	cantidad int
	subtotal int64
}

// resolverCarrito validates a cart against current stock without mutating
// anything. restaurado holds per-product quantities about to be returned to
// stock (edit path); nil for a fresh sale. Duplicate product lines accumulate:
// each line sees the stock left over by the lines before it.
func (s *ventaService) resolverCarrito(tx *gorm.DB, items []dto.ItemVentaRequest, restaurado map[uuid.UUID]int) ([]lineaResuelta, int64, error) {
	resolved := make([]lineaResuelta, 0, len(items))
	pedido := make(map[uuid.UUID]int)
	var total int64

	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: id %q invalido", ErrProductoNoEncontrado, item.ProductoID)
		}
		p, err := s.productoRepo.FindByIDTx(tx, pid)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
		}

		disponible := p.Stock + restaurado[pid] - pedido[pid]
		if item.Cantidad > disponible {
			return nil, 0, &StockInsuficienteError{
				Producto:   p.Nombre,
				Disponible: disponible,
				Solicitado: item.Cantidad,
			}
		}
		pedido[pid] += item.Cantidad

		subtotal := int64(item.Cantidad) * p.Precio
		total += subtotal
		resolved = append(resolved, lineaResuelta{producto: p, cantidad: item.Cantidad, subtotal: subtotal})
	}
	return resolved, total, nil
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// One ACID unit: validate every cart line, compute neto/IVA/vuelto, then
// decrement stock, record movimientos and persist the boleta with its
// detalles. Any failure rolls the whole unit back — no partial stock
// decrement or orphaned boleta is ever observable.

func (s *ventaService) RegistrarVenta(ctx context.Context, vendedorID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.BoletaResponse, error) {
	vendedor, err := s.usuarioRepo.FindByID(ctx, vendedorID)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}

	var boleta model.Boleta
	var resolved []lineaResuelta

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var total int64
		var err error
		resolved, total, err = s.resolverCarrito(tx, req.Items, nil)
		if err != nil {
			return err
		}

		neto := CalcularNeto(total)
		iva := total - neto

		var entregado, vuelto int64
		if req.MedioPago == model.MedioPagoEfectivo {
			if req.MontoEntregado == nil || *req.MontoEntregado < total {
				return ErrPagoInsuficiente
			}
			entregado = *req.MontoEntregado
			vuelto = entregado - total
		}

		boleta = model.Boleta{
			Total:          total,
			Neto:           neto,
			IVA:            iva,
			MedioPago:      req.MedioPago,
			MontoEntregado: entregado,
			Vuelto:         vuelto,
			VendedorID:     &vendedor.ID,
		}
		for _, r := range resolved {
			pid := r.producto.ID
			boleta.Detalles = append(boleta.Detalles, model.DetalleBoleta{
				ProductoID:     &pid,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.producto.Precio,
				Subtotal:       r.subtotal,
			})
		}
		if err := s.repo.CreateTx(tx, &boleta); err != nil {
			return err
		}

		return s.aplicarDescuentos(tx, resolved, boleta.ID, "venta")
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async PDF ticket — best effort, never blocks the sale.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueBoletaPDF(ctx, worker.BoletaPDFPayload{BoletaID: boleta.ID.String()})
	}

	boleta.Vendedor = vendedor
	for i, r := range resolved {
		boleta.Detalles[i].Producto = r.producto
	}
	resp := boletaToResponse(&boleta)
	return &resp, nil
}

// aplicarDescuentos runs the guarded stock decrements for an already-validated
// cart and records one movimiento per line. The guard re-checks stock at write
// time, closing the race with a concurrent sale of the same product.
func (s *ventaService) aplicarDescuentos(tx *gorm.DB, resolved []lineaResuelta, boletaID uuid.UUID, tipo string) error {
	stockActual := make(map[uuid.UUID]int, len(resolved))
	for _, r := range resolved {
		if _, ok := stockActual[r.producto.ID]; !ok {
			stockActual[r.producto.ID] = r.producto.Stock
		}
	}

	for _, r := range resolved {
		pid := r.producto.ID
		if err := s.productoRepo.DescontarStockTx(tx, pid, r.cantidad); err != nil {
			if errors.Is(err, repository.ErrStockGuard) {
				return &StockInsuficienteError{Producto: r.producto.Nombre, Disponible: r.producto.Stock, Solicitado: r.cantidad}
			}
			return err
		}

		antes := stockActual[pid]
		stockActual[pid] = antes - r.cantidad
		ref := boletaID
		mov := &model.MovimientoStock{
			ProductoID:    pid,
			Tipo:          tipo,
			Cantidad:      -r.cantidad,
			StockAnterior: antes,
			StockNuevo:    antes - r.cantidad,
			Motivo:        fmt.Sprintf("Boleta %s", boletaID),
			ReferenciaID:  &ref,
		}
		if err := s.movRepo.CreateTx(tx, mov); err != nil {
			return err
		}
	}
	return nil
}

// ── EditarVenta ───────────────────────────────────────────────────────────────
// Replaces the cart and/or payment fields of a committed boleta. When a new
// cart arrives, the old lines' stock counts as available again for validation
// (available = stock + quantity being returned), so shrinking or growing a
// line never double-counts. All validation happens before the first write.

func (s *ventaService) EditarVenta(ctx context.Context, id uuid.UUID, req dto.EditarVentaRequest) (*dto.BoletaResponse, error) {
	boleta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBoletaNoEncontrada
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		total := boleta.Total
		var resolved []lineaResuelta

		// Per-product quantities the old cart returns to stock. Built up front:
		// the audit fix-up below must not depend on boleta.Detalles, which may
		// alias repository state once the old detalles are deleted.
		restaurado := make(map[uuid.UUID]int)

		if req.Items != nil {
			for _, d := range boleta.Detalles {
				if d.ProductoID != nil {
					restaurado[*d.ProductoID] += d.Cantidad
				}
			}
			var err error
			resolved, total, err = s.resolverCarrito(tx, req.Items, restaurado)
			if err != nil {
				return err
			}
		}

		medioPago := boleta.MedioPago
		if req.MedioPago != nil {
			medioPago = *req.MedioPago
		}
		entregado := boleta.MontoEntregado
		if req.MontoEntregado != nil {
			entregado = *req.MontoEntregado
		}
		var vuelto int64
		if medioPago == model.MedioPagoEfectivo {
			if entregado < total {
				return ErrPagoInsuficiente
			}
			vuelto = entregado - total
		} else {
			entregado, vuelto = 0, 0
		}

		// Validation done — now mutate.
		if req.Items != nil {
			for _, d := range boleta.Detalles {
				if d.ProductoID == nil {
					continue
				}
				if err := s.restaurarLinea(tx, *d.ProductoID, d.Cantidad, boleta.ID, "edicion"); err != nil {
					return err
				}
			}
			// resolverCarrito read the products before restoration; bump the
			// snapshots so the edicion movimientos record post-restore stock.
			for i := range resolved {
				resolved[i].producto.Stock += restaurado[resolved[i].producto.ID]
			}

			if err := s.repo.DeleteDetallesTx(tx, boleta.ID); err != nil {
				return err
			}
			if err := s.aplicarDescuentos(tx, resolved, boleta.ID, "edicion"); err != nil {
				return err
			}

			detalles := make([]model.DetalleBoleta, 0, len(resolved))
			for _, r := range resolved {
				pid := r.producto.ID
				detalles = append(detalles, model.DetalleBoleta{
					BoletaID:       boleta.ID,
					ProductoID:     &pid,
					Cantidad:       r.cantidad,
					PrecioUnitario: r.producto.Precio,
					Subtotal:       r.subtotal,
				})
			}
			if err := s.repo.CreateDetallesTx(tx, detalles); err != nil {
				return err
			}
			boleta.Detalles = detalles
			for i, r := range resolved {
				boleta.Detalles[i].Producto = r.producto
			}

			boleta.Total = total
			boleta.Neto = CalcularNeto(total)
			boleta.IVA = total - boleta.Neto
		}

		boleta.MedioPago = medioPago
		boleta.MontoEntregado = entregado
		boleta.Vuelto = vuelto

		return s.repo.UpdateTx(tx, boleta)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := boletaToResponse(boleta)
	return &resp, nil
}

// restaurarLinea returns one old line's quantity to stock and records the
// inverse movimiento.
func (s *ventaService) restaurarLinea(tx *gorm.DB, pid uuid.UUID, cantidad int, boletaID uuid.UUID, tipo string) error {
	antes := 0
	if p, err := s.productoRepo.FindByIDTx(tx, pid); err == nil {
		antes = p.Stock
	}
	if err := s.productoRepo.RestaurarStockTx(tx, pid, cantidad); err != nil {
		return err
	}
	ref := boletaID
	mov := &model.MovimientoStock{
		ProductoID:    pid,
		Tipo:          tipo,
		Cantidad:      cantidad,
		StockAnterior: antes,
		StockNuevo:    antes + cantidad,
		Motivo:        fmt.Sprintf("Reverso boleta %s", boletaID),
		ReferenciaID:  &ref,
	}
	return s.movRepo.CreateTx(tx, mov)
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// Restores stock for every line whose product still exists, then deletes the
// boleta (detalles cascade). One atomic unit.

func (s *ventaService) AnularVenta(ctx context.Context, id uuid.UUID) error {
	boleta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrBoletaNoEncontrada
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, d := range boleta.Detalles {
			if d.ProductoID == nil {
				continue // product gone from catalog; nothing to restore
			}
			if err := s.restaurarLinea(tx, *d.ProductoID, d.Cantidad, boleta.ID, "anulacion"); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, boleta.ID)
	})
}

// ── ObtenerBoleta ─────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerBoleta(ctx context.Context, id uuid.UUID) (*dto.BoletaResponse, error) {
	boleta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBoletaNoEncontrada
	}
	resp := boletaToResponse(boleta)
	return &resp, nil
}

// ── Historial ─────────────────────────────────────────────────────────────────
// Sellers only ever see their own boletas: for non-admin principals the
// vendedor filter is overwritten with the caller's id, whatever the request
// said. This is data scoping, not access control — the route is open to all
// authenticated roles.

func (s *ventaService) Historial(ctx context.Context, filter dto.VentaFilter, solicitante Principal) ([]dto.BoletaResponse, error) {
	if solicitante.Rol != model.RolAdmin {
		filter.VendedorID = solicitante.ID.String()
	}
	boletas, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BoletaResponse, 0, len(boletas))
	for i := range boletas {
		out = append(out, boletaToResponse(&boletas[i]))
	}
	return out, nil
}

// ── ResumenDelDia ─────────────────────────────────────────────────────────────
// Cash-drawer reconciliation: per-payment-method sums over one local calendar
// day [00:00:00.000, 23:59:59.999], optionally per seller. Read-only.

func (s *ventaService) ResumenDelDia(ctx context.Context, filter dto.ResumenFilter) (*dto.ResumenCajaResponse, error) {
	dia := time.Now()
	if filter.Fecha != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.Fecha, time.Local)
		if err != nil {
			return nil, fmt.Errorf("fecha invalida: %w", err)
		}
		dia = parsed
	}
	desde := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, time.Local)
	hasta := time.Date(dia.Year(), dia.Month(), dia.Day(), 23, 59, 59, 999_000_000, time.Local)

	var vendedorID *uuid.UUID
	if filter.VendedorID != "" {
		vid, err := uuid.Parse(filter.VendedorID)
		if err != nil {
			return nil, fmt.Errorf("vendedor_id invalido: %w", err)
		}
		vendedorID = &vid
	}

	boletas, err := s.repo.FindBetween(ctx, desde, hasta, vendedorID)
	if err != nil {
		return nil, err
	}

	var efectivo, debito, credito int64
	for _, b := range boletas {
		switch b.MedioPago {
		case model.MedioPagoEfectivo:
			efectivo += b.Total
		case model.MedioPagoDebito:
			debito += b.Total
		case model.MedioPagoCredito:
			credito += b.Total
		}
	}

	return &dto.ResumenCajaResponse{
		Fecha:          desde.Format("2006-01-02"),
		CantidadVentas: len(boletas),
		DetalleCaja: dto.DetalleCajaResponse{
			EfectivoEnCaja: efectivo,
			BancoDebito:    debito,
			BancoCredito:   credito,
			TotalVendido:   efectivo + debito + credito,
		},
	}, nil
}

// ── View model ────────────────────────────────────────────────────────────────

const (
	vendedorDesconocido = "Vendedor desconocido"
	productoEliminado   = "Producto eliminado"
)

// boletaToResponse is the pure display mapping of a loaded boleta. Missing
// weak references (deleted seller or product) become sentinel labels instead
// of errors — sale history outlives the catalog.
func boletaToResponse(b *model.Boleta) dto.BoletaResponse {
	vendedor := vendedorDesconocido
	if b.Vendedor != nil {
		vendedor = b.Vendedor.Nombre
	}

	items := make([]dto.DetalleBoletaResponse, 0, len(b.Detalles))
	for _, d := range b.Detalles {
		nombre := productoEliminado
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		items = append(items, dto.DetalleBoletaResponse{
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}

	return dto.BoletaResponse{
		Numero:   b.ID.String(),
		Fecha:    b.CreatedAt.Format(time.RFC3339),
		Vendedor: vendedor,
		Items:    items,
		Resumen: dto.ResumenPagoResponse{
			Neto:           b.Neto,
			IVA:            b.IVA,
			Total:          b.Total,
			MedioPago:      b.MedioPago,
			MontoEntregado: b.MontoEntregado,
			Vuelto:         b.Vuelto,
		},
	}
}
