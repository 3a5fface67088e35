// Package sales mantiene la lista de ventas sincronizada con la colección "sales".
package sales

import (
	"context"
	"time"

	"github.com/jhoicas/biciros/internal/application/livesync"
	"github.com/jhoicas/biciros/internal/domain/document"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/domain/repository"
)

// Collection nombre de la colección en el almacén remoto.
const Collection = "sales"

// Campos del documento.
const (
	FieldCustomer      = "cliente"
	FieldProduct       = "producto"
	FieldQuantity      = "cantidad"
	FieldTotal         = "total"
	FieldDate          = "fecha"
	FieldStatus        = "estado"
	FieldPaymentMethod = "metodoPago"
	FieldUserID        = "userId"
	FieldCreatedAt     = "createdAt"
	FieldUpdatedAt     = "updatedAt"
)

// Hook ventas en vivo. Con dueño, solo expone las ventas de ese usuario y marca las nuevas
// con su id; sin dueño expone todas.
type Hook struct {
	*livesync.Feed[entity.Sale]
	coll  repository.Collection
	owner string
}

// NewHook crea el hook sin montar. owner vacío = todas las ventas.
func NewHook(store repository.DocumentStore, deps livesync.Deps, owner string) *Hook {
	coll := store.Collection(Collection)
	cfg := livesync.Config[entity.Sale]{
		Collection: Collection,
		OrderBy:    FieldCreatedAt,
		Map:        FromDocument,
		ID:         func(s entity.Sale) string { return s.ID },
		Clock:      deps.Clock,
		Metrics:    deps.Metrics,
		Logger:     deps.Logger,
	}
	if owner != "" {
		// El almacén entrega el conjunto completo; el filtro por dueño es local.
		cfg.Filter = func(s entity.Sale) bool { return s.UserID == owner }
	}
	return &Hook{Feed: livesync.New(coll, cfg), coll: coll, owner: owner}
}

// Owner id del usuario dueño ("" si no hay).
func (h *Hook) Owner() string { return h.owner }

// Add crea una venta con createdAt/updatedAt = ahora y userId = dueño (nulo si no hay).
func (h *Hook) Add(ctx context.Context, in entity.NewSale) (string, error) {
	now := h.Now()
	data := map[string]any{
		FieldCustomer:      in.Customer,
		FieldProduct:       in.Product,
		FieldQuantity:      in.Quantity,
		FieldTotal:         in.Total.InexactFloat64(),
		FieldDate:          in.Date,
		FieldStatus:        string(in.Status),
		FieldPaymentMethod: in.PaymentMethod,
		FieldUserID:        nil,
		FieldCreatedAt:     now,
		FieldUpdatedAt:     now,
	}
	if h.owner != "" {
		data[FieldUserID] = h.owner
	}
	id, err := h.coll.Create(ctx, data)
	return id, h.RecordWrite("create", id, err)
}

// Update escribe solo los campos presentes y renueva updatedAt.
func (h *Hook) Update(ctx context.Context, id string, in entity.SaleUpdate) error {
	err := h.coll.Update(ctx, id, Patch(in, h.Now()))
	return h.RecordWrite("update", id, err)
}

// Delete elimina la venta; un id inexistente es un error.
func (h *Hook) Delete(ctx context.Context, id string) error {
	return h.RecordWrite("delete", id, h.coll.Delete(ctx, id))
}

// FromDocument convierte un documento crudo en Sale con los valores por defecto de cada campo.
func FromDocument(doc repository.Document, now time.Time) entity.Sale {
	r := document.Read(doc.Data)
	return entity.Sale{
		ID:            doc.ID,
		Customer:      r.String(FieldCustomer, ""),
		Product:       r.String(FieldProduct, ""),
		Quantity:      r.Int(FieldQuantity),
		Total:         r.Decimal(FieldTotal),
		Date:          r.DateString(FieldDate),
		Status:        entity.SaleStatus(r.String(FieldStatus, string(entity.SaleStatusPending))),
		PaymentMethod: r.String(FieldPaymentMethod, ""),
		UserID:        r.String(FieldUserID, ""),
		CreatedAt:     r.Time(FieldCreatedAt, now),
		UpdatedAt:     r.Time(FieldUpdatedAt, now),
	}
}

// Patch construye el mapa de actualización parcial.
func Patch(in entity.SaleUpdate, now time.Time) map[string]any {
	p := map[string]any{FieldUpdatedAt: now}
	if in.Customer != nil {
		p[FieldCustomer] = *in.Customer
	}
	if in.Product != nil {
		p[FieldProduct] = *in.Product
	}
	if in.Quantity != nil {
		p[FieldQuantity] = *in.Quantity
	}
	if in.Total != nil {
		p[FieldTotal] = in.Total.InexactFloat64()
	}
	if in.Date != nil {
		p[FieldDate] = *in.Date
	}
	if in.Status != nil {
		p[FieldStatus] = string(*in.Status)
	}
	if in.PaymentMethod != nil {
		p[FieldPaymentMethod] = *in.PaymentMethod
	}
	return p
}
