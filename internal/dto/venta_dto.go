package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarVentaRequest struct {
	Items     []ItemVentaRequest `json:"items"      validate:"required,min=1,dive"`
	MedioPago string             `json:"medio_pago" validate:"required,oneof=efectivo debito credito"`
	// MontoEntregado only matters for efectivo; ignored (forced to 0) otherwise.
	MontoEntregado *int64 `json:"monto_entregado" validate:"omitempty,gt=0"`
}

// EditarVentaRequest replaces parts of a committed boleta. Nil fields are left
// untouched; a non-nil Items slice replaces the whole cart.
type EditarVentaRequest struct {
	Items          []ItemVentaRequest `json:"items"           validate:"omitempty,min=1,dive"`
	MedioPago      *string            `json:"medio_pago"      validate:"omitempty,oneof=efectivo debito credito"`
	MontoEntregado *int64             `json:"monto_entregado" validate:"omitempty,gt=0"`
}

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	VendedorID string `form:"vendedor_id" validate:"omitempty,uuid"`
	Fecha      string `form:"fecha"       validate:"omitempty,datetime=2006-01-02"`
}

// ResumenFilter is bound from the query string of GET /v1/ventas/resumen-dia.
type ResumenFilter struct {
	VendedorID string `form:"vendedor_id" validate:"omitempty,uuid"`
	Fecha      string `form:"fecha"       validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleBoletaResponse struct {
	Producto       string `json:"producto"`
	Cantidad       int    `json:"cantidad"`
	PrecioUnitario int64  `json:"precio_unitario"`
	Subtotal       int64  `json:"subtotal"`
}

type ResumenPagoResponse struct {
	Neto           int64  `json:"neto"`
	IVA            int64  `json:"iva"`
	Total          int64  `json:"total"`
	MedioPago      string `json:"medio_pago"`
	MontoEntregado int64  `json:"monto_entregado"`
	Vuelto         int64  `json:"vuelto"`
}

// BoletaResponse is the display view of a persisted boleta.
type BoletaResponse struct {
	Numero   string                  `json:"numero"`
	Fecha    string                  `json:"fecha"`
	Vendedor string                  `json:"vendedor"`
	Items    []DetalleBoletaResponse `json:"items"`
	Resumen  ResumenPagoResponse     `json:"resumen"`
}

// DetalleCajaResponse segments the day's totals by payment method.
type DetalleCajaResponse struct {
	EfectivoEnCaja int64 `json:"efectivo_en_caja"`
	BancoDebito    int64 `json:"banco_debito"`
	BancoCredito   int64 `json:"banco_credito"`
	TotalVendido   int64 `json:"total_vendido"`
}

type ResumenCajaResponse struct {
	Fecha          string              `json:"fecha"`
	CantidadVentas int                 `json:"cantidad_ventas"`
	DetalleCaja    DetalleCajaResponse `json:"detalle_caja"`
}
