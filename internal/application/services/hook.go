// Package services mantiene las órdenes de servicio del taller sincronizadas con la
// colección "services".
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/biciros/internal/application/livesync"
	"github.com/jhoicas/biciros/internal/domain/document"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/domain/repository"
)

// Collection nombre de la colección en el almacén remoto.
const Collection = "services"

// Campos del documento.
const (
	FieldServiceID    = "id_servicio"
	FieldNumber       = "numero_servicio"
	FieldName         = "nombre_servicio"
	FieldDescription  = "descripcion_servicio"
	FieldType         = "tipo_servicio"
	FieldPrice        = "precio_servicio"
	FieldStatus       = "estado_servicio"
	FieldNotes        = "notas_servicio"
	FieldCustomerID   = "id_cliente_servicio"
	FieldCustomerName = "nombre_cliente_servicio"
	FieldBikeBrand    = "marca_bicicleta_servicio"
	FieldBikeModel    = "modelo_bicicleta_servicio"
	FieldSerialNumber = "numero_serie_servicio"
	FieldAssigneeID   = "id_asignado_servicio"
	FieldAssigneeName = "nombre_asignado_servicio"
	FieldScheduledAt  = "fecha_programada_servicio"
	FieldCompletedAt  = "fecha_completado_servicio"
	FieldCreatedAt    = "creado_servicio"
	FieldUpdatedAt    = "actualizado_servicio"
)

// Hook órdenes de servicio en vivo.
type Hook struct {
	*livesync.Feed[entity.Service]
	coll repository.Collection
}

// NewHook crea el hook sin montar.
func NewHook(store repository.DocumentStore, deps livesync.Deps) *Hook {
	coll := store.Collection(Collection)
	feed := livesync.New(coll, livesync.Config[entity.Service]{
		Collection: Collection,
		OrderBy:    FieldCreatedAt,
		Map:        FromDocument,
		ID:         func(s entity.Service) string { return s.ID },
		Clock:      deps.Clock,
		Metrics:    deps.Metrics,
		Logger:     deps.Logger,
	})
	return &Hook{Feed: feed, coll: coll}
}

// Add crea la orden en dos pasos: inserta y luego copia el id generado en id_servicio.
// Sin fecha programada se usa la hora actual. Si el segundo paso falla, el documento
// queda creado y se devuelven su id y el error.
func (h *Hook) Add(ctx context.Context, in entity.NewService) (string, error) {
	now := h.Now()
	scheduled := now
	if in.ScheduledAt != nil {
		scheduled = *in.ScheduledAt
	}
	data := map[string]any{
		FieldServiceID:    "",
		FieldNumber:       in.Number,
		FieldName:         in.Name,
		FieldDescription:  in.Description,
		FieldType:         string(in.Type),
		FieldPrice:        in.Price.InexactFloat64(),
		FieldStatus:       string(in.Status),
		FieldNotes:        in.Notes,
		FieldCustomerID:   in.CustomerID,
		FieldCustomerName: in.CustomerName,
		FieldBikeBrand:    in.BikeBrand,
		FieldBikeModel:    in.BikeModel,
		FieldSerialNumber: in.SerialNumber,
		FieldAssigneeID:   in.AssigneeID,
		FieldAssigneeName: in.AssigneeName,
		FieldScheduledAt:  scheduled,
		FieldCompletedAt:  nil,
		FieldCreatedAt:    now,
		FieldUpdatedAt:    now,
	}
	id, err := h.coll.Create(ctx, data)
	if err = h.RecordWrite("create", id, err); err != nil {
		return "", err
	}
	err = h.coll.Update(ctx, id, map[string]any{FieldServiceID: id})
	if err = h.RecordWrite("update", id, err); err != nil {
		return id, fmt.Errorf("guardar id_servicio: %w", err)
	}
	return id, nil
}

// Update escribe los campos presentes y renueva actualizado_servicio. Cada vez que el cambio
// fija el estado completado, fecha_completado_servicio toma la hora de esta misma escritura.
func (h *Hook) Update(ctx context.Context, id string, in entity.ServiceUpdate) error {
	now := h.Now()
	p := Patch(in, now)
	if in.Status != nil && *in.Status == entity.ServiceStatusCompleted {
		p[FieldCompletedAt] = now
	}
	return h.RecordWrite("update", id, h.coll.Update(ctx, id, p))
}

// Delete elimina la orden; un id inexistente es un error.
func (h *Hook) Delete(ctx context.Context, id string) error {
	return h.RecordWrite("delete", id, h.coll.Delete(ctx, id))
}

// NextNumber número de ticket sugerido para la próxima orden según la lista actual.
func (h *Hook) NextNumber() string {
	return GenerateServiceNumber(len(h.Records()), h.Now())
}

// FromDocument convierte un documento crudo en Service con los valores por defecto.
func FromDocument(doc repository.Document, now time.Time) entity.Service {
	r := document.Read(doc.Data)
	return entity.Service{
		ID:           doc.ID,
		ServiceID:    r.String(FieldServiceID, doc.ID),
		Number:       r.String(FieldNumber, ""),
		Name:         r.String(FieldName, ""),
		Description:  r.String(FieldDescription, ""),
		Type:         entity.ServiceType(r.String(FieldType, string(entity.ServiceTypeOther))),
		Price:        r.Decimal(FieldPrice),
		Status:       entity.ServiceStatus(r.String(FieldStatus, string(entity.ServiceStatusPending))),
		Notes:        r.String(FieldNotes, ""),
		CustomerID:   r.String(FieldCustomerID, ""),
		CustomerName: r.String(FieldCustomerName, ""),
		BikeBrand:    r.String(FieldBikeBrand, ""),
		BikeModel:    r.String(FieldBikeModel, ""),
		SerialNumber: r.String(FieldSerialNumber, ""),
		AssigneeID:   r.String(FieldAssigneeID, ""),
		AssigneeName: r.String(FieldAssigneeName, ""),
		ScheduledAt:  r.OptionalTime(FieldScheduledAt),
		CompletedAt:  r.OptionalTime(FieldCompletedAt),
		CreatedAt:    r.Time(FieldCreatedAt, now),
		UpdatedAt:    r.Time(FieldUpdatedAt, now),
	}
}

// Patch construye el mapa de actualización parcial (sin la regla de completado).
func Patch(in entity.ServiceUpdate, now time.Time) map[string]any {
	p := map[string]any{FieldUpdatedAt: now}
	setString(p, FieldNumber, in.Number)
	setString(p, FieldName, in.Name)
	setString(p, FieldDescription, in.Description)
	if in.Type != nil {
		p[FieldType] = string(*in.Type)
	}
	if in.Price != nil {
		p[FieldPrice] = in.Price.InexactFloat64()
	}
	if in.Status != nil {
		p[FieldStatus] = string(*in.Status)
	}
	setString(p, FieldNotes, in.Notes)
	setString(p, FieldCustomerID, in.CustomerID)
	setString(p, FieldCustomerName, in.CustomerName)
	setString(p, FieldBikeBrand, in.BikeBrand)
	setString(p, FieldBikeModel, in.BikeModel)
	setString(p, FieldSerialNumber, in.SerialNumber)
	setString(p, FieldAssigneeID, in.AssigneeID)
	setString(p, FieldAssigneeName, in.AssigneeName)
	if in.ScheduledAt != nil {
		p[FieldScheduledAt] = *in.ScheduledAt
	}
	return p
}

func setString(p map[string]any, key string, v *string) {
	if v != nil {
		p[key] = *v
	}
}
