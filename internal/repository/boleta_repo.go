package repository

import (
	"context"
	"time"

	"boletapos/internal/dto"
	"boletapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoletaRepository interface {
	CreateTx(tx *gorm.DB, b *model.Boleta) error
	UpdateTx(tx *gorm.DB, b *model.Boleta) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	// DeleteDetallesTx removes every line item of a boleta (edit/void paths).
	DeleteDetallesTx(tx *gorm.DB, boletaID uuid.UUID) error
	CreateDetallesTx(tx *gorm.DB, detalles []model.DetalleBoleta) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Boleta, error)
	// List returns boletas matching the filter, newest first, with vendedor,
	// detalles and referenced productos loaded.
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Boleta, error)
	// FindBetween returns boletas created inside [desde, hasta], optionally
	// restricted to one seller. Used by the daily cash reconciliation.
	FindBetween(ctx context.Context, desde, hasta time.Time, vendedorID *uuid.UUID) ([]model.Boleta, error)

	DB() *gorm.DB
}

type boletaRepo struct{ db *gorm.DB }

func NewBoletaRepository(db *gorm.DB) BoletaRepository { return &boletaRepo{db: db} }

func (r *boletaRepo) CreateTx(tx *gorm.DB, b *model.Boleta) error {
	return tx.Create(b).Error
}

func (r *boletaRepo) UpdateTx(tx *gorm.DB, b *model.Boleta) error {
	// Detalles are managed explicitly by the service; never upsert them here.
	return tx.Omit(clause.Associations).Save(b).Error
}

func (r *boletaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	// Detalles go with it via ON DELETE CASCADE.
	return tx.Delete(&model.Boleta{}, "id = ?", id).Error
}

func (r *boletaRepo) DeleteDetallesTx(tx *gorm.DB, boletaID uuid.UUID) error {
	return tx.Delete(&model.DetalleBoleta{}, "boleta_id = ?", boletaID).Error
}

func (r *boletaRepo) CreateDetallesTx(tx *gorm.DB, detalles []model.DetalleBoleta) error {
	if len(detalles) == 0 {
		return nil
	}
	return tx.Create(&detalles).Error
}

func (r *boletaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Boleta, error) {
	var b model.Boleta
	err := r.db.WithContext(ctx).
		Preload("Vendedor").
		Preload("Detalles.Producto").
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *boletaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Boleta, error) {
	q := r.db.WithContext(ctx).Model(&model.Boleta{})

	if filter.VendedorID != "" {
		q = q.Where("vendedor_id = ?", filter.VendedorID)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}

	var boletas []model.Boleta
	err := q.Preload("Vendedor").
		Preload("Detalles.Producto").
		Order("created_at DESC").
		Find(&boletas).Error
	return boletas, err
}

func (r *boletaRepo) FindBetween(ctx context.Context, desde, hasta time.Time, vendedorID *uuid.UUID) ([]model.Boleta, error) {
	q := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", desde, hasta)
	if vendedorID != nil {
		q = q.Where("vendedor_id = ?", *vendedorID)
	}
	var boletas []model.Boleta
	err := q.Find(&boletas).Error
	return boletas, err
}

func (r *boletaRepo) DB() *gorm.DB { return r.db }
