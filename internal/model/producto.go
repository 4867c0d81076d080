package model

import (
	"time"

	"github.com/google/uuid"
)

// Producto is the inventory ledger entry for one catalog item.
// Precio is in whole pesos (no cents). Stock is mutated only through
// VentaService (sale / edit / void) or the catalog CRUD.
type Producto struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string     `gorm:"index;not null"`
	Precio      int64      `gorm:"not null"`
	Stock       int        `gorm:"not null;default:0"`
	FotoURL     *string    `gorm:"type:text"`
	CategoriaID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID;constraint:OnDelete:SET NULL"`
}

func (Producto) TableName() string { return "productos" }
