package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/pos-ventas-api/internal/application/alertas"
	"github.com/jcastellanos/pos-ventas-api/internal/application/auth"
	"github.com/jcastellanos/pos-ventas-api/internal/application/ventas"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	VentaUC      *ventas.VentaUseCase
	DetalleUC    *ventas.DetalleVentaUseCase
	AlertaUC     *alertas.AlertaUseCase
	AuthUC       *auth.AuthUseCase
	ProductoRepo repository.ProductoRepository
	MovRepo      repository.MovimientoStockRepository
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ventas (protegido)
	ventasGroup := protected.Group("/ventas")
	ventasHandler := NewVentasHandler(deps.VentaUC)
	ventasGroup.Post("/", ventasHandler.Create)
	ventasGroup.Get("/", ventasHandler.List)
	ventasGroup.Get("/:id", ventasHandler.GetByID)
	ventasGroup.Delete("/:id", ventasHandler.Delete)
	ventasGroup.Post("/:id/detalles", ventasHandler.CreateDetallesMultiples)

	// Detalles de venta (protegido)
	detallesGroup := protected.Group("/detalles")
	detallesHandler := NewDetallesHandler(deps.DetalleUC)
	detallesGroup.Post("/", detallesHandler.Create)
	detallesGroup.Put("/:id", detallesHandler.Update)
	detallesGroup.Delete("/:id", detallesHandler.Delete)

	// Alertas (protegido)
	alertasGroup := protected.Group("/alertas")
	alertasHandler := NewAlertasHandler(deps.AlertaUC)
	alertasGroup.Get("/", alertasHandler.List)
	alertasGroup.Get("/stats", alertasHandler.Stats)
	alertasGroup.Post("/evaluar/:productoId", alertasHandler.Evaluar)
	alertasGroup.Post("/evaluar-caducidad/:productoId", alertasHandler.EvaluarCaducidad)
	alertasGroup.Put("/:id/atender", alertasHandler.Atender)
	// La reconciliación recorre todo el catálogo; solo admin.
	alertasGroup.Post("/reconciliar", RequireRol(entity.RolAdmin), alertasHandler.Reconciliar)

	// Productos (protegido, solo lectura)
	productosGroup := protected.Group("/productos")
	productosHandler := NewProductosHandler(deps.ProductoRepo, deps.MovRepo)
	productosGroup.Get("/", productosHandler.List)
	productosGroup.Get("/:id", productosHandler.GetByID)
	productosGroup.Get("/:id/movimientos", productosHandler.Kardex)
}
