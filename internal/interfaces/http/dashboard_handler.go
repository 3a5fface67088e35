package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/biciros/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de ventas, servicios e inventario.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (sales, revenue_label, today_sales, monthly_sales, recent_sales,
// services, products, date_label). Se calcula sobre los últimos snapshots recibidos.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
