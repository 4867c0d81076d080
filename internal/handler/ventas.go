package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"boletapos/internal/apierror"
	"boletapos/internal/dto"
	"boletapos/internal/infra"
	"boletapos/internal/middleware"
	"boletapos/internal/repository"
	"boletapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentaHandler struct {
	svc         service.VentaService
	boletaRepo  repository.BoletaRepository
	storagePath string
}

func NewVentaHandler(svc service.VentaService, boletaRepo repository.BoletaRepository, storagePath string) *VentaHandler {
	return &VentaHandler{svc: svc, boletaRepo: boletaRepo, storagePath: storagePath}
}

// Registrar godoc
// @Summary  Registrar una venta
// @Tags     ventas
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    request body dto.RegistrarVentaRequest true "Carrito y medio de pago"
// @Success  201 {object} dto.BoletaResponse
// @Failure  400 {object} apierror.APIError "Stock insuficiente"
// @Failure  402 {object} apierror.APIError "Monto entregado insuficiente"
// @Router   /v1/ventas [post]
func (h *VentaHandler) Registrar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Historial godoc
// @Summary  Historial de ventas (los vendedores solo ven las propias)
// @Tags     ventas
// @Security BearerAuth
// @Produce  json
// @Param    vendedor_id query string false "Filtrar por vendedor (solo admin)"
// @Param    fecha       query string false "Filtrar por fecha YYYY-MM-DD"
// @Success  200 {array} dto.BoletaResponse
// @Router   /v1/ventas [get]
func (h *VentaHandler) Historial(c *gin.Context) {
	claims := middleware.GetClaims(c)
	var filter dto.VentaFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), filter, service.Principal{
		ID:  claims.UserID,
		Rol: claims.Rol,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary  Obtener una boleta
// @Tags     ventas
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "ID de la boleta"
// @Success  200 {object} dto.BoletaResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/ventas/{id} [get]
func (h *VentaHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	resp, err := h.svc.ObtenerBoleta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF godoc
// @Summary  Descargar el ticket PDF de una boleta
// @Tags     ventas
// @Security BearerAuth
// @Produce  application/pdf
// @Param    id path string true "ID de la boleta"
// @Success  200 {file} binary
// @Failure  404 {object} apierror.APIError
// @Router   /v1/ventas/{id}/pdf [get]
func (h *VentaHandler) DescargarPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}

	// The worker normally pre-generates the file; fall back to rendering
	// inline when the job has not run yet.
	path := filepath.Join(h.storagePath, "boleta_"+id.String()+".pdf")
	if _, err := os.Stat(path); err != nil {
		boleta, err := h.boletaRepo.FindByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, apierror.New("boleta no encontrada"))
			return
		}
		if path, err = infra.GenerateBoletaPDF(boleta, h.storagePath); err != nil {
			respondError(c, err)
			return
		}
	}

	c.Header("Content-Disposition", "attachment; filename=boleta_"+id.String()+".pdf")
	c.File(path)
}

// Editar godoc
// @Summary  Editar una venta (reemplaza carrito y/o medio de pago)
// @Tags     ventas
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id      path string                 true "ID de la boleta"
// @Param    request body dto.EditarVentaRequest true "Campos a modificar"
// @Success  200 {object} dto.BoletaResponse
// @Failure  400 {object} apierror.APIError "Stock insuficiente"
// @Failure  402 {object} apierror.APIError "Monto entregado insuficiente"
// @Failure  404 {object} apierror.APIError
// @Router   /v1/ventas/{id} [patch]
func (h *VentaHandler) Editar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	var req dto.EditarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EditarVenta(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anular godoc
// @Summary  Anular una venta y restaurar stock
// @Tags     ventas
// @Security BearerAuth
// @Param    id path string true "ID de la boleta"
// @Success  204
// @Failure  404 {object} apierror.APIError
// @Router   /v1/ventas/{id} [delete]
func (h *VentaHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	if err := h.svc.AnularVenta(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResumenDia godoc
// @Summary  Resumen de caja del dia (admin)
// @Tags     ventas
// @Security BearerAuth
// @Produce  json
// @Param    vendedor_id query string false "Filtrar por vendedor"
// @Param    fecha       query string false "Fecha YYYY-MM-DD (hoy por defecto)"
// @Success  200 {object} dto.ResumenCajaResponse
// @Router   /v1/ventas/resumen-dia [get]
func (h *VentaHandler) ResumenDia(c *gin.Context) {
	var filter dto.ResumenFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ResumenDelDia(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MiResumen godoc
// @Summary  Resumen diario del vendedor autenticado
// @Tags     ventas
// @Security BearerAuth
// @Produce  json
// @Param    fecha query string false "Fecha YYYY-MM-DD (hoy por defecto)"
// @Success  200 {object} dto.ResumenCajaResponse
// @Router   /v1/ventas/mi-resumen [get]
func (h *VentaHandler) MiResumen(c *gin.Context) {
	claims := middleware.GetClaims(c)
	var filter dto.ResumenFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	filter.VendedorID = claims.UserID.String()
	resp, err := h.svc.ResumenDelDia(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
