package model

import (
	"time"

	"github.com/google/uuid"
)

// Medios de pago aceptados en caja.
const (
	MedioPagoEfectivo = "efectivo"
	MedioPagoDebito   = "debito"
	MedioPagoCredito  = "credito"
)

// Boleta is a committed sale receipt.
//
// Financial invariants (IVA 19%, montos en pesos enteros):
//   Total = Neto + IVA
//   Neto  = round(Total / 1.19), half-up; IVA = Total - Neto absorbs the remainder
//   efectivo: MontoEntregado >= Total, Vuelto = MontoEntregado - Total
//   debito/credito: MontoEntregado = Vuelto = 0
type Boleta struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Total          int64      `gorm:"not null"`
	Neto           int64      `gorm:"not null"`
	IVA            int64      `gorm:"column:iva;not null"`
	MedioPago      string     `gorm:"type:varchar(20);not null;default:'efectivo'"`
	MontoEntregado int64      `gorm:"not null;default:0"`
	Vuelto         int64      `gorm:"not null;default:0"`
	VendedorID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt      time.Time  `gorm:"index"`
	UpdatedAt      time.Time

	Vendedor *Usuario        `gorm:"foreignKey:VendedorID;constraint:OnDelete:SET NULL"`
	Detalles []DetalleBoleta `gorm:"foreignKey:BoletaID;constraint:OnDelete:CASCADE"`
}

func (Boleta) TableName() string { return "boletas" }

// DetalleBoleta is one cart line of a Boleta. ProductoID is a weak reference:
// sale history must survive catalog deletions, so it is nullable with SET NULL.
type DetalleBoleta struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BoletaID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductoID     *uuid.UUID `gorm:"type:uuid;index"`
	Cantidad       int        `gorm:"not null"`
	PrecioUnitario int64      `gorm:"not null"` // price snapshot at sale time
	Subtotal       int64      `gorm:"not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnDelete:SET NULL"`
}

func (DetalleBoleta) TableName() string { return "detalle_boletas" }
