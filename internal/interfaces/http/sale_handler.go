package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biciros/internal/application/dto"
	"github.com/jhoicas/biciros/internal/application/sales"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

// OwnedSales ventas de un vendedor (lo implementa *app.App).
type OwnedSales interface {
	SalesFor(ctx context.Context, userID string) (*sales.Hook, error)
}

// SaleHandler pantalla de ventas.
type SaleHandler struct {
	all   *sales.Hook
	owned OwnedSales
}

// NewSaleHandler construye el handler.
func NewSaleHandler(all *sales.Hook, owned OwnedSales) *SaleHandler {
	return &SaleHandler{all: all, owned: owned}
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Texto en cliente o producto"
// @Param        estado  query  string  false  "todas | pendiente | completada | cancelada"
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	return c.JSON(saleList(h.all, c.Query("q"), c.Query("estado")))
}

// Mine ventas registradas por el usuario autenticado.
// GET /api/sales/mine
func (h *SaleHandler) Mine(c *fiber.Ctx) error {
	hook, err := h.owned.SalesFor(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(saleList(hook, c.Query("q"), c.Query("estado")))
}

func saleList(hook *sales.Hook, query, status string) dto.SaleListResponse {
	list := sales.Filter(hook.Records(), query, status)
	return dto.ToSaleList(list, feedState(hook.Loading(), hook.Err()))
}

// Stats resumen de ventas.
// GET /api/sales/stats
func (h *SaleHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(dto.ToSalesStatsDTO(sales.Summarize(h.all.Records())))
}

// Stream envía el listado completo en cada cambio (Server-Sent Events).
// GET /api/sales/stream
func (h *SaleHandler) Stream(c *fiber.Ctx) error {
	return streamSnapshots[entity.Sale](c, h.all, func(list []entity.Sale) any {
		return dto.ToSaleList(list, dto.FeedState{})
	})
}

// Create godoc
// @Summary      Registrar venta
// @Description  La venta queda asociada al usuario autenticado.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	hook, err := h.owned.SalesFor(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	id, err := hook.Add(c.UserContext(), in.ToEntity())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// Update actualiza los campos presentes.
// PUT /api/sales/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.all.Update(c.UserContext(), c.Params("id"), in.ToEntity()); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete elimina la venta. Solo admin.
// DELETE /api/sales/:id
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.all.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
