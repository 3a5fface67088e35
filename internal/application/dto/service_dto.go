package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biciros/internal/application/services"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

// CreateServiceRequest entrada para abrir una orden de servicio.
// numero_servicio vacío = se asigna el siguiente número sugerido.
type CreateServiceRequest struct {
	Number       string          `json:"numero_servicio" validate:"omitempty,max=50"`
	Name         string          `json:"nombre_servicio" validate:"required,max=200"`
	Description  string          `json:"descripcion_servicio" validate:"max=2000"`
	Type         string          `json:"tipo_servicio" validate:"required,oneof=mantenimiento reparacion personalizacion otro"`
	Price        decimal.Decimal `json:"precio_servicio" validate:"gte=0"`
	Status       string          `json:"estado_servicio" validate:"required,oneof=pendiente en_progreso completado cancelado"`
	Notes        string          `json:"notas_servicio" validate:"max=2000"`
	CustomerID   string          `json:"id_cliente_servicio"`
	CustomerName string          `json:"nombre_cliente_servicio" validate:"required,max=200"`
	BikeBrand    string          `json:"marca_bicicleta_servicio" validate:"max=100"`
	BikeModel    string          `json:"modelo_bicicleta_servicio" validate:"max=100"`
	SerialNumber string          `json:"numero_serie_servicio" validate:"max=100"`
	AssigneeID   string          `json:"id_asignado_servicio"`
	AssigneeName string          `json:"nombre_asignado_servicio" validate:"max=200"`
	ScheduledAt  *time.Time      `json:"fecha_programada_servicio"`
}

// ToEntity convierte la entrada en el alta de dominio.
func (r CreateServiceRequest) ToEntity() entity.NewService {
	return entity.NewService{
		Number:       r.Number,
		Name:         r.Name,
		Description:  r.Description,
		Type:         entity.ServiceType(r.Type),
		Price:        r.Price,
		Status:       entity.ServiceStatus(r.Status),
		Notes:        r.Notes,
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		BikeBrand:    r.BikeBrand,
		BikeModel:    r.BikeModel,
		SerialNumber: r.SerialNumber,
		AssigneeID:   r.AssigneeID,
		AssigneeName: r.AssigneeName,
		ScheduledAt:  r.ScheduledAt,
	}
}

// UpdateServiceRequest entrada para actualizar una orden (solo campos presentes).
type UpdateServiceRequest struct {
	Number       *string          `json:"numero_servicio" validate:"omitempty,max=50"`
	Name         *string          `json:"nombre_servicio" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"descripcion_servicio" validate:"omitempty,max=2000"`
	Type         *string          `json:"tipo_servicio" validate:"omitempty,oneof=mantenimiento reparacion personalizacion otro"`
	Price        *decimal.Decimal `json:"precio_servicio" validate:"omitempty,gte=0"`
	Status       *string          `json:"estado_servicio" validate:"omitempty,oneof=pendiente en_progreso completado cancelado"`
	Notes        *string          `json:"notas_servicio" validate:"omitempty,max=2000"`
	CustomerID   *string          `json:"id_cliente_servicio"`
	CustomerName *string          `json:"nombre_cliente_servicio" validate:"omitempty,max=200"`
	BikeBrand    *string          `json:"marca_bicicleta_servicio" validate:"omitempty,max=100"`
	BikeModel    *string          `json:"modelo_bicicleta_servicio" validate:"omitempty,max=100"`
	SerialNumber *string          `json:"numero_serie_servicio" validate:"omitempty,max=100"`
	AssigneeID   *string          `json:"id_asignado_servicio"`
	AssigneeName *string          `json:"nombre_asignado_servicio" validate:"omitempty,max=200"`
	ScheduledAt  *time.Time       `json:"fecha_programada_servicio"`
}

// ToEntity convierte la entrada en la actualización de dominio.
func (r UpdateServiceRequest) ToEntity() entity.ServiceUpdate {
	u := entity.ServiceUpdate{
		Number:       r.Number,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Notes:        r.Notes,
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		BikeBrand:    r.BikeBrand,
		BikeModel:    r.BikeModel,
		SerialNumber: r.SerialNumber,
		AssigneeID:   r.AssigneeID,
		AssigneeName: r.AssigneeName,
		ScheduledAt:  r.ScheduledAt,
	}
	if r.Type != nil {
		t := entity.ServiceType(*r.Type)
		u.Type = &t
	}
	if r.Status != nil {
		st := entity.ServiceStatus(*r.Status)
		u.Status = &st
	}
	return u
}

// ServiceResponse salida de una orden de servicio.
type ServiceResponse struct {
	ID           string          `json:"id"`
	ServiceID    string          `json:"id_servicio"`
	Number       string          `json:"numero_servicio"`
	Name         string          `json:"nombre_servicio"`
	Description  string          `json:"descripcion_servicio"`
	Type         string          `json:"tipo_servicio"`
	Price        decimal.Decimal `json:"precio_servicio"`
	Status       string          `json:"estado_servicio"`
	Notes        string          `json:"notas_servicio"`
	CustomerID   string          `json:"id_cliente_servicio"`
	CustomerName string          `json:"nombre_cliente_servicio"`
	BikeBrand    string          `json:"marca_bicicleta_servicio"`
	BikeModel    string          `json:"modelo_bicicleta_servicio"`
	SerialNumber string          `json:"numero_serie_servicio"`
	AssigneeID   string          `json:"id_asignado_servicio"`
	AssigneeName string          `json:"nombre_asignado_servicio"`
	ScheduledAt  *time.Time      `json:"fecha_programada_servicio"`
	CompletedAt  *time.Time      `json:"fecha_completado_servicio"`
	CreatedAt    time.Time       `json:"creado_servicio"`
	UpdatedAt    time.Time       `json:"actualizado_servicio"`
}

// ServiceListResponse listado de órdenes con el estado de la suscripción.
type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
	Total int               `json:"total"`
	FeedState
}

// ServiceStatsDTO conteos por estado.
type ServiceStatsDTO struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// NextNumberResponse número de ticket sugerido.
type NextNumberResponse struct {
	Number string `json:"numero_servicio"`
}

// ToServiceResponse convierte una orden en su salida.
func ToServiceResponse(s entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:           s.ID,
		ServiceID:    s.ServiceID,
		Number:       s.Number,
		Name:         s.Name,
		Description:  s.Description,
		Type:         string(s.Type),
		Price:        s.Price,
		Status:       string(s.Status),
		Notes:        s.Notes,
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		BikeBrand:    s.BikeBrand,
		BikeModel:    s.BikeModel,
		SerialNumber: s.SerialNumber,
		AssigneeID:   s.AssigneeID,
		AssigneeName: s.AssigneeName,
		ScheduledAt:  s.ScheduledAt,
		CompletedAt:  s.CompletedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToServiceList convierte un listado.
func ToServiceList(list []entity.Service, state FeedState) ServiceListResponse {
	items := make([]ServiceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToServiceResponse(s))
	}
	return ServiceListResponse{Items: items, Total: len(items), FeedState: state}
}

// ToServiceStatsDTO convierte el resumen.
func ToServiceStatsDTO(st services.Stats) ServiceStatsDTO {
	return ServiceStatsDTO{
		Total:      st.Total,
		Pending:    st.Pending,
		InProgress: st.InProgress,
		Completed:  st.Completed,
		Cancelled:  st.Cancelled,
	}
}
