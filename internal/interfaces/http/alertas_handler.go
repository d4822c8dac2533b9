package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/pos-ventas-api/internal/application/alertas"
	"github.com/jcastellanos/pos-ventas-api/internal/application/dto"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
)

// AlertasHandler maneja alertas de stock bajo y caducidad (protegido).
type AlertasHandler struct {
	uc *alertas.AlertaUseCase
}

// NewAlertasHandler construye el handler.
func NewAlertasHandler(uc *alertas.AlertaUseCase) *AlertasHandler {
	return &AlertasHandler{uc: uc}
}

func alertaToResponse(a *entity.Alerta) dto.AlertaResponse {
	return dto.AlertaResponse{
		ID:            a.ID,
		ProductoID:    a.ProductoID,
		Tipo:          string(a.Tipo),
		Mensaje:       a.Mensaje,
		Atendida:      a.Atendida,
		FechaAtendida: a.FechaAtendida,
		CreatedAt:     a.CreatedAt,
	}
}

// Evaluar godoc
// @Summary      Evaluar stock bajo de un producto
// @Description  Con stock > umbral responde 422 (sin alerta); con alerta pendiente
//               del mismo tipo responde 409; si no, crea la alerta.
// @Tags         alertas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productoId  path  string  true  "ID del producto"
// @Param        body  body  dto.EvaluarAlertaRequest  false  "umbral opcional"
// @Success      201   {object}  dto.AlertaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/alertas/evaluar/{productoId} [post]
func (h *AlertasHandler) Evaluar(c *fiber.Ctx) error {
	var in dto.EvaluarAlertaRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	alerta, err := h.uc.EvaluateStockBajo(c.Context(), c.Params("productoId"), in.Umbral)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(alertaToResponse(alerta))
}

// EvaluarCaducidad godoc
// @Summary      Evaluar caducidad próxima de un producto
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Param        productoId  path  string  true  "ID del producto"
// @Success      201   {object}  dto.AlertaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/alertas/evaluar-caducidad/{productoId} [post]
func (h *AlertasHandler) EvaluarCaducidad(c *fiber.Ctx) error {
	alerta, err := h.uc.EvaluateCaducidad(c.Context(), c.Params("productoId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(alertaToResponse(alerta))
}

// Atender godoc
// @Summary      Marcar alerta como atendida
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alertas/{id}/atender [put]
func (h *AlertasHandler) Atender(c *fiber.Ctx) error {
	if err := h.uc.MarkAttended(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "alerta atendida"})
}

// Reconciliar godoc
// @Summary      Reconciliar alertas contra el estado actual de stock/caducidad
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/alertas/reconciliar [post]
func (h *AlertasHandler) Reconciliar(c *fiber.Ctx) error {
	creadas, err := h.uc.Reconcile(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"creadas": creadas})
}

// List godoc
// @Summary      Listar alertas
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Param        pendientes  query  bool  false  "solo no atendidas"
// @Success      200  {array}  dto.AlertaResponse
// @Router       /api/alertas [get]
func (h *AlertasHandler) List(c *fiber.Ctx) error {
	soloPendientes := c.QueryBool("pendientes", false)
	lista, err := h.uc.List(c.Context(), soloPendientes)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.AlertaResponse, 0, len(lista))
	for _, a := range lista {
		out = append(out, alertaToResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "alertas": out})
}

// Stats godoc
// @Summary      Estadísticas de alertas
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertaStatsResponse
// @Router       /api/alertas/stats [get]
func (h *AlertasHandler) Stats(c *fiber.Ctx) error {
	s, err := h.uc.Stats(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.AlertaStatsResponse{
		Total:      s.Total,
		Pendientes: s.Pendientes,
		Atendidas:  s.Atendidas,
		StockBajo:  s.StockBajo,
		Caducidad:  s.Caducidad,
	})
}
