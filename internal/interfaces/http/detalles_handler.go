package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/pos-ventas-api/internal/application/dto"
	"github.com/jcastellanos/pos-ventas-api/internal/application/ventas"
)

// DetallesHandler maneja líneas individuales de venta (protegido).
type DetallesHandler struct {
	uc *ventas.DetalleVentaUseCase
}

// NewDetallesHandler construye el handler.
func NewDetallesHandler(uc *ventas.DetalleVentaUseCase) *DetallesHandler {
	return &DetallesHandler{uc: uc}
}

// Create godoc
// @Summary      Agregar una línea a una venta existente
// @Tags         detalles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDetalleRequest  true  "venta_id, producto_id, cantidad, precio_unitario"
// @Success      201   {object}  dto.DetalleVentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/detalles [post]
func (h *DetallesHandler) Create(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateDetalleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	detalle, err := h.uc.CreateDetalle(c.Context(), ventas.CreateDetalleInput{
		VentaID:        in.VentaID,
		ProductoID:     in.ProductoID,
		Cantidad:       in.Cantidad,
		PrecioUnitario: in.PrecioUnitario,
		UsuarioID:      usuarioID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detalleToResponse(detalle))
}

// Update godoc
// @Summary      Modificar una línea (cantidad, precio o producto)
// @Tags         detalles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del detalle"
// @Param        body  body  dto.UpdateDetalleRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.DetalleVentaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/detalles/{id} [put]
func (h *DetallesHandler) Update(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateDetalleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	detalle, err := h.uc.UpdateDetalle(c.Context(), c.Params("id"), ventas.UpdateDetalleInput{
		ProductoID:     in.ProductoID,
		Cantidad:       in.Cantidad,
		PrecioUnitario: in.PrecioUnitario,
		UsuarioID:      usuarioID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(detalleToResponse(detalle))
}

// Delete godoc
// @Summary      Eliminar una línea (revierte su stock)
// @Tags         detalles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del detalle"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/detalles/{id} [delete]
func (h *DetallesHandler) Delete(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.DeleteDetalle(c.Context(), c.Params("id"), usuarioID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "detalle eliminado"})
}
