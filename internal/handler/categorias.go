package handler

import (
	"net/http"

	"boletapos/internal/apierror"
	"boletapos/internal/dto"
	"boletapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoriaHandler struct {
	svc service.CategoriaService
}

func NewCategoriaHandler(svc service.CategoriaService) *CategoriaHandler {
	return &CategoriaHandler{svc: svc}
}

// Crear godoc
// @Summary  Crear categoria
// @Tags     categorias
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    request body dto.CrearCategoriaRequest true "Categoria"
// @Success  201 {object} dto.CategoriaResponse
// @Router   /v1/categorias [post]
func (h *CategoriaHandler) Crear(c *gin.Context) {
	var req dto.CrearCategoriaRequest
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
// @Summary  Listar categorias
// @Tags     categorias
// @Security BearerAuth
// @Produce  json
// @Success  200 {array} dto.CategoriaResponse
// @Router   /v1/categorias [get]
func (h *CategoriaHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary  Actualizar categoria
// @Tags     categorias
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id      path string                         true "ID de la categoria"
// @Param    request body dto.ActualizarCategoriaRequest true "Campos a modificar"
// @Success  200 {object} dto.CategoriaResponse
// @Router   /v1/categorias/{id} [put]
func (h *CategoriaHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	var req dto.ActualizarCategoriaRequest
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

// Eliminar godoc
// @Summary  Eliminar categoria (los productos quedan sin categoria)
// @Tags     categorias
// @Security BearerAuth
// @Param    id path string true "ID de la categoria"
// @Success  204
// @Router   /v1/categorias/{id} [delete]
func (h *CategoriaHandler) Eliminar(c *gin.Context) {
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
