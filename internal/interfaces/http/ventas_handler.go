package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/pos-ventas-api/internal/application/dto"
	"github.com/jcastellanos/pos-ventas-api/internal/application/ventas"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
)

// VentasHandler maneja las peticiones HTTP de ventas (protegido).
type VentasHandler struct {
	uc *ventas.VentaUseCase
}

// NewVentasHandler construye el handler.
func NewVentasHandler(uc *ventas.VentaUseCase) *VentasHandler {
	return &VentasHandler{uc: uc}
}

func itemsFromRequest(in []dto.ItemVentaRequest) []ventas.ItemVenta {
	items := make([]ventas.ItemVenta, len(in))
	for i, it := range in {
		items[i] = ventas.ItemVenta{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		}
	}
	return items
}

func ventaToResponse(v *entity.Venta) dto.VentaResponse {
	out := dto.VentaResponse{
		ID:         v.ID,
		Fecha:      v.Fecha,
		UsuarioID:  v.UsuarioID,
		MetodoPago: v.MetodoPago,
		Subtotal:   v.Subtotal,
		IVA:        v.IVA,
		Total:      v.Total,
		Detalles:   make([]dto.DetalleVentaResponse, 0, len(v.Detalles)),
	}
	for _, d := range v.Detalles {
		out.Detalles = append(out.Detalles, detalleToResponse(d))
	}
	return out
}

func detalleToResponse(d *entity.DetalleVenta) dto.DetalleVentaResponse {
	return dto.DetalleVentaResponse{
		ID:             d.ID,
		VentaID:        d.VentaID,
		ProductoID:     d.ProductoID,
		Cantidad:       d.Cantidad,
		PrecioUnitario: d.PrecioUnitario,
		Subtotal:       d.Subtotal,
	}
}

// Create godoc
// @Summary      Crear venta completa (atómica)
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVentaRequest  true  "metodo_pago, items (producto_id, cantidad, precio_unitario)"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentasHandler) Create(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	venta, err := h.uc.CreateVenta(c.Context(), usuarioID, in.MetodoPago, itemsFromRequest(in.Items))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ventaToResponse(venta))
}

// Delete godoc
// @Summary      Cancelar venta (reversión completa de stock)
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [delete]
func (h *VentasHandler) Delete(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.DeleteVenta(c.Context(), c.Params("id"), usuarioID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta cancelada"})
}

// CreateDetallesMultiples godoc
// @Summary      Agregar lote de líneas a una venta existente
// @Description  Valida la disponibilidad de todos los ítems de forma acumulada
//               por producto antes de persistir cualquiera; un ítem inválido
//               aborta el lote completo.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.CreateDetallesMultiplesRequest  true  "items"
// @Success      201   {array}   dto.DetalleVentaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/detalles [post]
func (h *VentasHandler) CreateDetallesMultiples(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateDetallesMultiplesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	creados, err := h.uc.CreateDetallesMultiples(c.Context(), c.Params("id"), usuarioID, itemsFromRequest(in.Items))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.DetalleVentaResponse, 0, len(creados))
	for _, d := range creados {
		out = append(out, detalleToResponse(d))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentasHandler) GetByID(c *fiber.Ctx) error {
	venta, err := h.uc.GetVenta(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(ventaToResponse(venta))
}

// List godoc
// @Summary      Listar ventas por rango de fechas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "RFC3339; default hoy -30d"
// @Param        hasta  query  string  false  "RFC3339; default ahora"
// @Success      200  {array}  dto.VentaResponse
// @Router       /api/ventas [get]
func (h *VentasHandler) List(c *fiber.Ctx) error {
	hasta := time.Now()
	desde := hasta.AddDate(0, 0, -30)
	if s := c.Query("desde"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			desde = t
		}
	}
	if s := c.Query("hasta"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			hasta = t
		}
	}
	lista, err := h.uc.ListVentas(c.Context(), desde, hasta)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.VentaResponse, 0, len(lista))
	for _, v := range lista {
		out = append(out, ventaToResponse(v))
	}
	return c.JSON(fiber.Map{"total": len(out), "ventas": out})
}
