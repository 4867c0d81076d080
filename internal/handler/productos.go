package handler

import (
	"net/http"

	"boletapos/internal/apierror"
	"boletapos/internal/dto"
	"boletapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductoHandler struct {
	svc service.ProductoService
}

func NewProductoHandler(svc service.ProductoService) *ProductoHandler {
	return &ProductoHandler{svc: svc}
}

// Crear godoc
// @Summary  Crear producto
// @Tags     productos
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    request body dto.CrearProductoRequest true "Producto"
// @Success  201 {object} dto.ProductoResponse
// @Failure  404 {object} apierror.APIError "Categoria no encontrada"
// @Router   /v1/productos [post]
func (h *ProductoHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary  Listar productos del catalogo
// @Tags     productos
// @Security BearerAuth
// @Produce  json
// @Success  200 {array} dto.ProductoResponse
// @Router   /v1/productos [get]
func (h *ProductoHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary  Obtener un producto
// @Tags     productos
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "ID del producto"
// @Success  200 {object} dto.ProductoResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/productos/{id} [get]
func (h *ProductoHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary  Actualizar producto
// @Tags     productos
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id      path string                        true "ID del producto"
// @Param    request body dto.ActualizarProductoRequest true "Campos a modificar"
// @Success  200 {object} dto.ProductoResponse
// @Router   /v1/productos/{id} [put]
func (h *ProductoHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AjustarStock godoc
// @Summary  Ajuste manual de inventario (delta con signo)
// @Tags     productos
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id      path string                 true "ID del producto"
// @Param    request body dto.AjusteStockRequest true "Delta y motivo"
// @Success  200 {object} dto.ProductoResponse
// @Failure  400 {object} apierror.APIError "El ajuste dejaria stock negativo"
// @Router   /v1/productos/{id}/ajuste-stock [post]
func (h *ProductoHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	var req dto.AjusteStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimientos godoc
// @Summary  Historial de movimientos de stock de un producto
// @Tags     productos
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "ID del producto"
// @Success  200 {array} dto.MovimientoStockResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/productos/{id}/movimientos [get]
func (h *ProductoHandler) Movimientos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	resp, err := h.svc.Movimientos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary  Eliminar producto (las boletas historicas conservan sus detalles)
// @Tags     productos
// @Security BearerAuth
// @Param    id path string true "ID del producto"
// @Success  204
// @Router   /v1/productos/{id} [delete]
func (h *ProductoHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
