package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biciros/internal/application/dto"
	"github.com/jhoicas/biciros/internal/application/services"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

// ServiceHandler pantalla de órdenes de servicio del taller.
type ServiceHandler struct {
	hook       *services.Hook
	workOrders *services.WorkOrderUseCase
}

// NewServiceHandler construye el handler.
func NewServiceHandler(hook *services.Hook, workOrders *services.WorkOrderUseCase) *ServiceHandler {
	return &ServiceHandler{hook: hook, workOrders: workOrders}
}

// List godoc
// @Summary      Listar órdenes de servicio
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Texto en nombre, cliente, número o marca"
// @Param        estado  query  string  false  "todos | pendiente | en_progreso | completado | cancelado"
// @Success      200     {object}  dto.ServiceListResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	list := services.Filter(h.hook.Records(), c.Query("q"), c.Query("estado"))
	return c.JSON(dto.ToServiceList(list, feedState(h.hook.Loading(), h.hook.Err())))
}

// Stats conteos por estado.
// GET /api/services/stats
func (h *ServiceHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(dto.ToServiceStatsDTO(services.Summarize(h.hook.Records())))
}

// NextNumber número de ticket que tomaría la próxima orden.
// GET /api/services/next-number
func (h *ServiceHandler) NextNumber(c *fiber.Ctx) error {
	return c.JSON(dto.NextNumberResponse{Number: h.hook.NextNumber()})
}

// Stream envía el listado completo en cada cambio (Server-Sent Events).
// GET /api/services/stream
func (h *ServiceHandler) Stream(c *fiber.Ctx) error {
	return streamSnapshots[entity.Service](c, h.hook, func(list []entity.Service) any {
		return dto.ToServiceList(list, dto.FeedState{})
	})
}

// Create godoc
// @Summary      Crear orden de servicio
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	id, err := h.hook.Add(c.UserContext(), in.ToEntity())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// Update actualiza los campos presentes. Pasar a "completado" fija la fecha de completado.
// PUT /api/services/:id
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateServiceRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.hook.Update(c.UserContext(), c.Params("id"), in.ToEntity()); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete elimina la orden. Solo admin.
// DELETE /api/services/:id
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.hook.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// WorkOrder godoc
// @Summary      Descargar orden de trabajo (PDF)
// @Tags         services
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id}/work-order [get]
func (h *ServiceHandler) WorkOrder(c *fiber.Ctx) error {
	pdf, filename, err := h.workOrders.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}
