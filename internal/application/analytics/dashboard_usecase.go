// Package analytics arma el resumen del tablero principal a partir de las listas ya
// sincronizadas de ventas, servicios y productos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biciros/internal/application/dto"
	"github.com/jhoicas/biciros/internal/application/products"
	"github.com/jhoicas/biciros/internal/application/sales"
	"github.com/jhoicas/biciros/internal/application/services"
	"github.com/jhoicas/biciros/internal/domain/document"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

var thousand = decimal.NewFromInt(1000)

// RecentSalesLimit ventas recientes que muestra el tablero.
const RecentSalesLimit = 3

// SalesSource lista actual de ventas.
type SalesSource interface{ Records() []entity.Sale }

// ServicesSource lista actual de órdenes de servicio.
type ServicesSource interface{ Records() []entity.Service }

// ProductsSource lista actual de productos.
type ProductsSource interface{ Records() []entity.Product }

// DashboardUseCase genera el resumen del tablero.
//
// No consulta el almacén: trabaja sobre el último snapshot de cada hook.
type DashboardUseCase struct {
	sales    SalesSource
	services ServicesSource
	products ProductsSource
	clock    func() time.Time
}

// NewDashboardUseCase construye el caso de uso. clock nil = time.Now.
func NewDashboardUseCase(s SalesSource, sv ServicesSource, p ProductsSource, clock func() time.Time) *DashboardUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardUseCase{sales: s, services: sv, products: p, clock: clock}
}

// GetSummary construye el DashboardSummaryDTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	now := uc.clock()
	saleList := uc.sales.Records()

	// ── Ventas ────────────────────────────────────────────────────────────────
	st := sales.Summarize(saleList)
	today := now.Format(document.DateLayout)
	monthPrefix := now.Format("2006-01")
	todaySales, monthSales := decimal.Zero, decimal.Zero
	for _, s := range saleList {
		if s.Status != entity.SaleStatusCompleted {
			continue
		}
		if s.Date == today {
			todaySales = todaySales.Add(s.Total)
		}
		if len(s.Date) >= len(monthPrefix) && s.Date[:len(monthPrefix)] == monthPrefix {
			monthSales = monthSales.Add(s.Total)
		}
	}

	// La lista llega ordenada por creación descendente.
	recent := make([]dto.SaleResponse, 0, RecentSalesLimit)
	for _, s := range saleList[:min(len(saleList), RecentSalesLimit)] {
		recent = append(recent, dto.ToSaleResponse(s))
	}

	// ── Servicios y productos ─────────────────────────────────────────────────
	sv := services.Summarize(uc.services.Records())
	pr := products.Summarize(uc.products.Records())

	return &dto.DashboardSummaryDTO{
		Sales:        dto.ToSalesStatsDTO(st),
		RevenueLabel: FormatRevenue(st.Revenue),
		TodaySales:   todaySales.Round(2),
		MonthlySales: monthSales.Round(2),
		RecentSales:  recent,
		Services:     dto.ToServiceStatsDTO(sv),
		Products:     dto.ToProductStatsDTO(pr),
		DateLabel:    monthLabel(now),
	}, nil
}

// FormatRevenue etiqueta compacta de ingresos: "$1.2k" desde 1000, "$950" por debajo.
func FormatRevenue(v decimal.Decimal) string {
	if v.GreaterThanOrEqual(thousand) {
		return "$" + v.Div(thousand).StringFixed(1) + "k"
	}
	return "$" + v.String()
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
