package handler

import (
	"net/http"

	"boletapos/internal/apierror"
	"boletapos/internal/dto"
	"boletapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsuarioHandler struct {
	svc service.AuthService
}

func NewUsuarioHandler(svc service.AuthService) *UsuarioHandler {
	return &UsuarioHandler{svc: svc}
}

// Crear godoc
// @Summary  Crear usuario
// @Tags     usuarios
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    request body dto.CrearUsuarioRequest true "Usuario"
// @Success  201 {object} dto.UsuarioResponse
// @Router   /v1/usuarios [post]
func (h *UsuarioHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUsuario(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary  Listar usuarios
// @Tags     usuarios
// @Security BearerAuth
// @Produce  json
// @Success  200 {array} dto.UsuarioResponse
// @Router   /v1/usuarios [get]
func (h *UsuarioHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary  Actualizar usuario
// @Tags     usuarios
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id      path string                       true "ID del usuario"
// @Param    request body dto.ActualizarUsuarioRequest true "Campos a modificar"
// @Success  200 {object} dto.UsuarioResponse
// @Router   /v1/usuarios/{id} [put]
func (h *UsuarioHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarUsuario(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar godoc
// @Summary  Desactivar (soft delete) un usuario
// @Tags     usuarios
// @Security BearerAuth
// @Param    id path string true "ID del usuario"
// @Success  204
// @Router   /v1/usuarios/{id} [delete]
func (h *UsuarioHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	if err := h.svc.DesactivarUsuario(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
