package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType tipo de trabajo de taller.
type ServiceType string

const (
	ServiceTypeMaintenance   ServiceType = "mantenimiento"
	ServiceTypeRepair        ServiceType = "reparacion"
	ServiceTypeCustomization ServiceType = "personalizacion"
	ServiceTypeOther         ServiceType = "otro"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeMaintenance, ServiceTypeRepair, ServiceTypeCustomization, ServiceTypeOther:
		return true
	}
	return false
}

// ServiceStatus estado de una orden de servicio.
type ServiceStatus string

const (
	ServiceStatusPending    ServiceStatus = "pendiente"
	ServiceStatusInProgress ServiceStatus = "en_progreso"
	ServiceStatusCompleted  ServiceStatus = "completado"
	ServiceStatusCancelled  ServiceStatus = "cancelado"
)

// Valid indica si el estado pertenece al conjunto cerrado.
func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceStatusPending, ServiceStatusInProgress, ServiceStatusCompleted, ServiceStatusCancelled:
		return true
	}
	return false
}

// Service orden de servicio del taller (colección "services").
// CompletedAt se fija en la misma escritura que pasa el estado a completado.
type Service struct {
	ID          string
	ServiceID   string // copia del id del documento guardada dentro del propio documento
	Number      string // SRV-2025-001
	Name        string
	Description string
	Type        ServiceType
	Price       decimal.Decimal
	Status      ServiceStatus
	Notes       string

	CustomerID   string
	CustomerName string

	BikeBrand    string
	BikeModel    string
	SerialNumber string

	AssigneeID   string
	AssigneeName string

	ScheduledAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewService datos de una orden nueva.
type NewService struct {
	Number       string
	Name         string
	Description  string
	Type         ServiceType
	Price        decimal.Decimal
	Status       ServiceStatus
	Notes        string
	CustomerID   string
	CustomerName string
	BikeBrand    string
	BikeModel    string
	SerialNumber string
	AssigneeID   string
	AssigneeName string
	ScheduledAt  *time.Time
}

// ServiceUpdate actualización parcial de una orden.
type ServiceUpdate struct {
	Number       *string
	Name         *string
	Description  *string
	Type         *ServiceType
	Price        *decimal.Decimal
	Status       *ServiceStatus
	Notes        *string
	CustomerID   *string
	CustomerName *string
	BikeBrand    *string
	BikeModel    *string
	SerialNumber *string
	AssigneeID   *string
	AssigneeName *string
	ScheduledAt  *time.Time
}
