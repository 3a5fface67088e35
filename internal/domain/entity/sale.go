package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta. Las transiciones no tienen restricciones.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pendiente"
	SaleStatusCompleted SaleStatus = "completada"
	SaleStatusCancelled SaleStatus = "cancelada"
)

// Valid indica si el estado pertenece al conjunto cerrado.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// Sale proyección local de una venta almacenada en la colección "sales".
// Date es una fecha sin hora (YYYY-MM-DD); UserID vacío significa venta sin dueño.
type Sale struct {
	ID            string
	Customer      string
	Product       string
	Quantity      int
	Total         decimal.Decimal
	Date          string
	Status        SaleStatus
	PaymentMethod string
	UserID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSale datos de una venta nueva (sin id ni fechas de auditoría).
// Cantidad y total positivos los exige la capa de formularios, no el almacén.
type NewSale struct {
	Customer      string
	Product       string
	Quantity      int
	Total         decimal.Decimal
	Date          string
	Status        SaleStatus
	PaymentMethod string
}

// SaleUpdate actualización parcial: solo los campos no nil se envían al almacén.
type SaleUpdate struct {
	Customer      *string
	Product       *string
	Quantity      *int
	Total         *decimal.Decimal
	Date          *string
	Status        *SaleStatus
	PaymentMethod *string
}
