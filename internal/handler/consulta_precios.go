package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"boletapos/internal/apierror"
	"boletapos/internal/dto"
	"boletapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const precioCacheTTL = 60 * time.Second

// PrecioHandler serves the public price-check endpoint with a short-lived
// redis cache in front of the catalog.
type PrecioHandler struct {
	svc service.ProductoService
	rdb *redis.Client
}

func NewPrecioHandler(svc service.ProductoService, rdb *redis.Client) *PrecioHandler {
	return &PrecioHandler{svc: svc, rdb: rdb}
}

// Consultar godoc
// @Summary  Consultar precio y stock de un producto (publico)
// @Tags     precios
// @Produce  json
// @Param    id path string true "ID del producto"
// @Success  200 {object} dto.ConsultaPrecioResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/precio/{id} [get]
func (h *PrecioHandler) Consultar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}

	cacheKey := "precio:" + id.String()
	if h.rdb != nil {
		if cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	p, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ConsultaPrecioResponse{
		Nombre:          p.Nombre,
		Precio:          p.Precio,
		StockDisponible: p.Stock,
		Categoria:       p.Categoria,
	}

	if h.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, precioCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("producto_id", id.String()).Msg("no se pudo cachear el precio")
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
