// Package router is the composition root: it wires repositories, services,
// handlers and middleware into the gin engine.
package router

import (
	"time"

	"boletapos/internal/config"
	"boletapos/internal/handler"
	"boletapos/internal/middleware"
	"boletapos/internal/model"
	"boletapos/internal/repository"
	"boletapos/internal/service"
	"boletapos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// New builds the HTTP engine with every route mounted.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, log zerolog.Logger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	boletaRepo := repository.NewBoletaRepository(db)
	movRepo := repository.NewMovimientoStockRepository(db)

	// Services
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, movRepo)
	ventaSvc := service.NewVentaService(boletaRepo, productoRepo, movRepo, usuarioRepo, dispatcher)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	usuarioH := handler.NewUsuarioHandler(authSvc)
	categoriaH := handler.NewCategoriaHandler(categoriaSvc)
	productoH := handler.NewProductoHandler(productoSvc)
	ventaH := handler.NewVentaHandler(ventaSvc, boletaRepo, cfg.PDFStoragePath)
	precioH := handler.NewPrecioHandler(productoSvc, rdb)
	healthH := handler.NewHealthHandler(db, rdb)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(),
		middleware.RateLimiter(300, time.Minute),
	)

	r.GET("/health", healthH.Check)
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/v1")

	// Public
	v1.POST("/auth/login", middleware.LoginRateLimiter(), authH.Login)
	v1.POST("/auth/refresh", authH.Refresh)
	v1.GET("/precio/:id", precioH.Consultar)

	// Authenticated
	auth := v1.Group("", middleware.JWTAuth(cfg.JWTSecret))
	admin := middleware.RequireRole(model.RolAdmin)

	usuarios := auth.Group("/usuarios", admin)
	{
		usuarios.POST("", usuarioH.Crear)
		usuarios.GET("", usuarioH.Listar)
		usuarios.PUT("/:id", usuarioH.Actualizar)
		usuarios.DELETE("/:id", usuarioH.Desactivar)
	}

	categorias := auth.Group("/categorias")
	{
		categorias.GET("", categoriaH.Listar)
		categorias.POST("", admin, categoriaH.Crear)
		categorias.PUT("/:id", admin, categoriaH.Actualizar)
		categorias.DELETE("/:id", admin, categoriaH.Eliminar)
	}

	productos := auth.Group("/productos")
	{
		productos.GET("", productoH.Listar)
		productos.GET("/:id", productoH.Obtener)
		productos.POST("", admin, productoH.Crear)
		productos.PUT("/:id", admin, productoH.Actualizar)
		productos.DELETE("/:id", admin, productoH.Eliminar)
		productos.POST("/:id/ajuste-stock", admin, productoH.AjustarStock)
		productos.GET("/:id/movimientos", admin, productoH.Movimientos)
	}

	ventas := auth.Group("/ventas")
	{
		ventas.POST("", ventaH.Registrar)
		ventas.GET("", ventaH.Historial)
		// Static paths before the :id wildcard
		ventas.GET("/resumen-dia", admin, ventaH.ResumenDia)
		ventas.GET("/mi-resumen", ventaH.MiResumen)
		ventas.GET("/:id", ventaH.Obtener)
		ventas.GET("/:id/pdf", ventaH.DescargarPDF)
		ventas.PATCH("/:id", admin, ventaH.Editar)
		ventas.DELETE("/:id", admin, ventaH.Anular)
	}

	return r
}
