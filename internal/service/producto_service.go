package service

import (
	"context"
	"errors"
	"time"

	"boletapos/internal/dto"
	"boletapos/internal/model"
	"boletapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjusteStockRequest) (*dto.ProductoResponse, error)
	Movimientos(ctx context.Context, id uuid.UUID) ([]dto.MovimientoStockResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	movRepo       repository.MovimientoStockRepository
}

func NewProductoService(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository, movRepo repository.MovimientoStockRepository) ProductoService {
	return &productoService{repo: repo, categoriaRepo: categoriaRepo, movRepo: movRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		Nombre:  req.Nombre,
		Precio:  req.Precio,
		Stock:   req.Stock,
		FotoURL: req.FotoURL,
	}
	if req.CategoriaID != "" {
		cid, err := uuid.Parse(req.CategoriaID)
		if err != nil {
			return nil, ErrCategoriaNoEncontrada
		}
		categoria, err := s.categoriaRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, ErrCategoriaNoEncontrada
		}
		p.CategoriaID = &categoria.ID
		p.Categoria = categoria
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	if req.Nombre != "" {
		p.Nombre = req.Nombre
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.FotoURL != nil {
		p.FotoURL = req.FotoURL
	}
	if req.CategoriaID != "" {
		cid, err := uuid.Parse(req.CategoriaID)
		if err != nil {
			return nil, ErrCategoriaNoEncontrada
		}
		categoria, err := s.categoriaRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, ErrCategoriaNoEncontrada
		}
		p.CategoriaID = &categoria.ID
		p.Categoria = categoria
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

// Eliminar removes a product from the catalog. Historical detalle_boletas keep
// their snapshots; their producto_id becomes NULL via the FK.
func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductoNoEncontrado
	}
	return s.repo.Delete(ctx, id)
}

// AjustarStock applies a signed manual correction and records the audit row.
// The guarded decrement keeps stock from going negative on write-offs.
func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjusteStockRequest) (*dto.ProductoResponse, error) {
	var ajustado *model.Producto

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return ErrProductoNoEncontrado
		}

		if req.Cantidad > 0 {
			err = s.repo.RestaurarStockTx(tx, id, req.Cantidad)
		} else {
			err = s.repo.DescontarStockTx(tx, id, -req.Cantidad)
		}
		if err != nil {
			if errors.Is(err, repository.ErrStockGuard) {
				return &StockInsuficienteError{Producto: p.Nombre, Disponible: p.Stock, Solicitado: -req.Cantidad}
			}
			return err
		}

		mov := &model.MovimientoStock{
			ProductoID:    id,
			Tipo:          "ajuste_manual",
			Cantidad:      req.Cantidad,
			StockAnterior: p.Stock,
			StockNuevo:    p.Stock + req.Cantidad,
			Motivo:        req.Motivo,
		}
		if err := s.movRepo.CreateTx(tx, mov); err != nil {
			return err
		}

		p.Stock += req.Cantidad
		ajustado = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := productoToResponse(ajustado)
	return &resp, nil
}

// Movimientos returns the audit trail of a product, newest first.
func (s *productoService) Movimientos(ctx context.Context, id uuid.UUID) ([]dto.MovimientoStockResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrProductoNoEncontrado
	}
	movs, err := s.movRepo.ListByProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoStockResponse, len(movs))
	for i, m := range movs {
		out[i] = dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			Fecha:         m.CreatedAt.Format(time.RFC3339),
		}
		if m.ReferenciaID != nil {
			out[i].ReferenciaID = m.ReferenciaID.String()
		}
	}
	return out, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:      p.ID.String(),
		Nombre:  p.Nombre,
		Precio:  p.Precio,
		Stock:   p.Stock,
		FotoURL: p.FotoURL,
	}
	if p.Categoria != nil {
		resp.Categoria = &p.Categoria.Nombre
	}
	return resp
}
