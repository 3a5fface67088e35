package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biciros/internal/application/sales"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	Customer      string          `json:"cliente" validate:"required,max=200"`
	Product       string          `json:"producto" validate:"required,max=200"`
	Quantity      int             `json:"cantidad" validate:"gt=0"`
	Total         decimal.Decimal `json:"total" validate:"gt=0"`
	Date          string          `json:"fecha" validate:"required,datetime=2006-01-02"`
	Status        string          `json:"estado" validate:"required,oneof=pendiente completada cancelada"`
	PaymentMethod string          `json:"metodoPago" validate:"required,max=100"`
}

// ToEntity convierte la entrada en el alta de dominio.
func (r CreateSaleRequest) ToEntity() entity.NewSale {
	return entity.NewSale{
		Customer:      r.Customer,
		Product:       r.Product,
		Quantity:      r.Quantity,
		Total:         r.Total,
		Date:          r.Date,
		Status:        entity.SaleStatus(r.Status),
		PaymentMethod: r.PaymentMethod,
	}
}

// UpdateSaleRequest entrada para actualizar una venta (solo campos presentes).
type UpdateSaleRequest struct {
	Customer      *string          `json:"cliente" validate:"omitempty,min=1,max=200"`
	Product       *string          `json:"producto" validate:"omitempty,min=1,max=200"`
	Quantity      *int             `json:"cantidad" validate:"omitempty,gt=0"`
	Total         *decimal.Decimal `json:"total" validate:"omitempty,gt=0"`
	Date          *string          `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Status        *string          `json:"estado" validate:"omitempty,oneof=pendiente completada cancelada"`
	PaymentMethod *string          `json:"metodoPago" validate:"omitempty,max=100"`
}

// ToEntity convierte la entrada en la actualización de dominio.
func (r UpdateSaleRequest) ToEntity() entity.SaleUpdate {
	u := entity.SaleUpdate{
		Customer:      r.Customer,
		Product:       r.Product,
		Quantity:      r.Quantity,
		Total:         r.Total,
		Date:          r.Date,
		PaymentMethod: r.PaymentMethod,
	}
	if r.Status != nil {
		st := entity.SaleStatus(*r.Status)
		u.Status = &st
	}
	return u
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	Customer      string          `json:"cliente"`
	Product       string          `json:"producto"`
	Quantity      int             `json:"cantidad"`
	Total         decimal.Decimal `json:"total"`
	Date          string          `json:"fecha"`
	Status        string          `json:"estado"`
	PaymentMethod string          `json:"metodoPago"`
	UserID        string          `json:"userId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// SaleListResponse listado de ventas con el estado de la suscripción.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
	FeedState
}

// SalesStatsDTO resumen de la pantalla de ventas.
type SalesStatsDTO struct {
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
	Pending   int             `json:"pending"`
	Completed int             `json:"completed"`
	Cancelled int             `json:"cancelled"`
}

// ToSaleResponse convierte una venta en su salida.
func ToSaleResponse(s entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		Customer:      s.Customer,
		Product:       s.Product,
		Quantity:      s.Quantity,
		Total:         s.Total,
		Date:          s.Date,
		Status:        string(s.Status),
		PaymentMethod: s.PaymentMethod,
		UserID:        s.UserID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSaleList convierte un listado.
func ToSaleList(list []entity.Sale, state FeedState) SaleListResponse {
	items := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToSaleResponse(s))
	}
	return SaleListResponse{Items: items, Total: len(items), FeedState: state}
}

// ToSalesStatsDTO convierte el resumen.
func ToSalesStatsDTO(st sales.Stats) SalesStatsDTO {
	return SalesStatsDTO{
		Count:     st.Count,
		Revenue:   st.Revenue.Round(2),
		Pending:   st.Pending,
		Completed: st.Completed,
		Cancelled: st.Cancelled,
	}
}
