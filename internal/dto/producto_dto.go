package dto

type CrearProductoRequest struct {
	Nombre      string  `json:"nombre"       validate:"required"`
	Precio      int64   `json:"precio"       validate:"required,gt=0"`
	Stock       int     `json:"stock"        validate:"min=0"`
	FotoURL     *string `json:"foto_url"     validate:"omitempty,url"`
	CategoriaID string  `json:"categoria_id" validate:"omitempty,uuid"`
}

type ActualizarProductoRequest struct {
	Nombre      string  `json:"nombre"`
	Precio      *int64  `json:"precio"       validate:"omitempty,gt=0"`
	Stock       *int    `json:"stock"        validate:"omitempty,min=0"`
	FotoURL     *string `json:"foto_url"     validate:"omitempty,url"`
	CategoriaID string  `json:"categoria_id" validate:"omitempty,uuid"`
}

type ProductoResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Precio    int64   `json:"precio"`
	Stock     int     `json:"stock"`
	FotoURL   *string `json:"foto_url,omitempty"`
	Categoria *string `json:"categoria,omitempty"`
}

// AjusteStockRequest is a manual inventory correction. Cantidad is the signed
// delta: positive restocks, negative writes off.
type AjusteStockRequest struct {
	Cantidad int    `json:"cantidad" validate:"required,ne=0"`
	Motivo   string `json:"motivo"   validate:"required"`
}

type MovimientoStockResponse struct {
	ID            string `json:"id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo,omitempty"`
	ReferenciaID  string `json:"referencia_id,omitempty"`
	Fecha         string `json:"fecha"`
}

// ConsultaPrecioResponse is served by the public price-check endpoint.
type ConsultaPrecioResponse struct {
	Nombre          string  `json:"nombre"`
	Precio          int64   `json:"precio"`
	StockDisponible int     `json:"stock_disponible"`
	Categoria       *string `json:"categoria,omitempty"`
}
