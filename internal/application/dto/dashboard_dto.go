package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Sales        SalesStatsDTO   `json:"sales"`
	RevenueLabel string          `json:"revenue_label"` // ej: "$1.2k"
	TodaySales   decimal.Decimal `json:"today_sales"`   // ventas completadas con fecha de hoy
	MonthlySales decimal.Decimal `json:"monthly_sales"` // ventas completadas del mes en curso
	RecentSales  []SaleResponse  `json:"recent_sales"`  // últimas ventas registradas, la más nueva primero

	Services ServiceStatsDTO `json:"services"`
	Products ProductStatsDTO `json:"products"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}
