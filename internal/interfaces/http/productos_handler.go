package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/pos-ventas-api/internal/application/dto"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

// ProductosHandler lecturas de catálogo y kardex de movimientos (protegido).
// El stock nunca se escribe por aquí: solo el motor de ventas lo muta.
type ProductosHandler struct {
	productoRepo repository.ProductoRepository
	movRepo      repository.MovimientoStockRepository
}

// NewProductosHandler construye el handler.
func NewProductosHandler(productoRepo repository.ProductoRepository, movRepo repository.MovimientoStockRepository) *ProductosHandler {
	return &ProductosHandler{productoRepo: productoRepo, movRepo: movRepo}
}

func productoToResponse(p *entity.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Stock:          p.Stock,
		PrecioCompra:   p.PrecioCompra,
		PrecioVenta:    p.PrecioVenta,
		FechaCaducidad: p.FechaCaducidad,
	}
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/productos [get]
func (h *ProductosHandler) List(c *fiber.Ctx) error {
	productos, err := h.productoRepo.List()
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, productoToResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "productos": out})
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductosHandler) GetByID(c *fiber.Ctx) error {
	producto, err := h.productoRepo.GetByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if producto == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(productoToResponse(producto))
}

// Kardex godoc
// @Summary      Movimientos de stock del producto (libro append-only)
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "máximo de entradas (default 100)"
// @Success      200  {array}  dto.MovimientoStockResponse
// @Router       /api/productos/{id}/movimientos [get]
func (h *ProductosHandler) Kardex(c *fiber.Ctx) error {
	movs, err := h.movRepo.ListByProducto(c.Params("id"), c.QueryInt("limit", 100))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.MovimientoStockResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimientoStockResponse{
			ID:          m.ID,
			ProductoID:  m.ProductoID,
			Delta:       m.Delta,
			Motivo:      string(m.Motivo),
			Descripcion: m.Motivo.Descripcion(),
			Fecha:       m.Fecha,
			UsuarioID:   m.UsuarioID,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movimientos": out})
}
