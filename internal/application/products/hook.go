// Package products mantiene el inventario sincronizado con la colección "productos".
package products

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
const Collection = "productos"

// Campos del documento.
const (
	FieldProductID      = "id_producto"
	FieldName           = "nombre_producto"
	FieldDescription    = "descripcion_producto"
	FieldCategory       = "categoria_producto"
	FieldPrice          = "precio_producto"
	FieldStock          = "stock_producto"
	FieldBrand          = "marca_producto"
	FieldModel          = "modelo_producto"
	FieldSpecifications = "especificaciones_producto"
	FieldImages         = "imagenes_producto"
	FieldAvailable      = "disponible_producto"
	FieldFeatured       = "destacado_producto"
	FieldCreatedAt      = "creado_producto"
	FieldUpdatedAt      = "actualizado_producto"
)

// Hook inventario en vivo.
type Hook struct {
	*livesync.Feed[entity.Product]
	coll repository.Collection
}

// NewHook crea el hook sin montar.
func NewHook(store repository.DocumentStore, deps livesync.Deps) *Hook {
	coll := store.Collection(Collection)
	feed := livesync.New(coll, livesync.Config[entity.Product]{
		Collection: Collection,
		OrderBy:    FieldCreatedAt,
		Map:        FromDocument,
		ID:         func(p entity.Product) string { return p.ID },
		Clock:      deps.Clock,
		Metrics:    deps.Metrics,
		Logger:     deps.Logger,
	})
	return &Hook{Feed: feed, coll: coll}
}

// Add crea el producto en dos pasos (insertar y copiar el id en id_producto).
// Con stock <= 0 el producto se guarda como no disponible sin importar lo pedido.
func (h *Hook) Add(ctx context.Context, in entity.NewProduct) (string, error) {
	now := h.Now()
	specs, err := document.Encode(in.Specifications)
	if err != nil {
		return "", fmt.Errorf("especificaciones: %w", err)
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	category := in.Category
	if category == "" {
		category = entity.CategoryOther
	}
	data := map[string]any{
		FieldProductID:      "",
		FieldName:           in.Name,
		FieldDescription:    in.Description,
		FieldCategory:       category,
		FieldPrice:          in.Price.InexactFloat64(),
		FieldStock:          in.Stock,
		FieldBrand:          in.Brand,
		FieldModel:          in.Model,
		FieldSpecifications: specs,
		FieldImages:         images,
		FieldAvailable:      in.Available && in.Stock > 0,
		FieldFeatured:       in.Featured,
		FieldCreatedAt:      now,
		FieldUpdatedAt:      now,
	}
	id, err := h.coll.Create(ctx, data)
	if err = h.RecordWrite("create", id, err); err != nil {
		return "", err
	}
	err = h.coll.Update(ctx, id, map[string]any{FieldProductID: id})
	if err = h.RecordWrite("update", id, err); err != nil {
		return id, fmt.Errorf("guardar id_producto: %w", err)
	}
	return id, nil
}

// Update escribe los campos presentes y renueva actualizado_producto. Si el parche trae
// stock <= 0, disponible_producto se fuerza a false.
func (h *Hook) Update(ctx context.Context, id string, in entity.ProductUpdate) error {
	p, err := Patch(in, h.Now())
	if err != nil {
		return err
	}
	return h.RecordWrite("update", id, h.coll.Update(ctx, id, p))
}

// Delete elimina el producto; un id inexistente es un error.
func (h *Hook) Delete(ctx context.Context, id string) error {
	return h.RecordWrite("delete", id, h.coll.Delete(ctx, id))
}

// FromDocument convierte un documento crudo en Product con los valores por defecto.
// disponible_producto ausente cuenta como true; destacado_producto ausente como false.
func FromDocument(doc repository.Document, now time.Time) entity.Product {
	r := document.Read(doc.Data)
	var specs entity.Specifications
	if err := r.Decode(FieldSpecifications, &specs); err != nil {
		specs = entity.Specifications{}
	}
	return entity.Product{
		ID:             doc.ID,
		ProductID:      r.String(FieldProductID, doc.ID),
		Name:           r.String(FieldName, ""),
		Description:    r.String(FieldDescription, ""),
		Category:       r.String(FieldCategory, entity.CategoryOther),
		Price:          r.Decimal(FieldPrice),
		Stock:          r.Int(FieldStock),
		Brand:          r.String(FieldBrand, ""),
		Model:          r.String(FieldModel, ""),
		Specifications: specs,
		Images:         r.Strings(FieldImages),
		Available:      r.Bool(FieldAvailable, true),
		Featured:       r.Bool(FieldFeatured, false),
		CreatedAt:      r.Time(FieldCreatedAt, now),
		UpdatedAt:      r.Time(FieldUpdatedAt, now),
	}
}

// Patch construye el mapa de actualización parcial aplicando la regla de stock.
func Patch(in entity.ProductUpdate, now time.Time) (map[string]any, error) {
	p := map[string]any{FieldUpdatedAt: now}
	if in.Name != nil {
		p[FieldName] = *in.Name
	}
	if in.Description != nil {
		p[FieldDescription] = *in.Description
	}
	if in.Category != nil {
		p[FieldCategory] = *in.Category
	}
	if in.Price != nil {
		p[FieldPrice] = in.Price.InexactFloat64()
	}
	if in.Brand != nil {
		p[FieldBrand] = *in.Brand
	}
	if in.Model != nil {
		p[FieldModel] = *in.Model
	}
	if in.Specifications != nil {
		specs, err := document.Encode(*in.Specifications)
		if err != nil {
			return nil, fmt.Errorf("especificaciones: %w", err)
		}
		p[FieldSpecifications] = specs
	}
	if in.Images != nil {
		p[FieldImages] = in.Images
	}
	if in.Available != nil {
		p[FieldAvailable] = *in.Available
	}
	if in.Featured != nil {
		p[FieldFeatured] = *in.Featured
	}
	if in.Stock != nil {
		p[FieldStock] = *in.Stock
		if *in.Stock <= 0 {
			p[FieldAvailable] = false
		}
	}
	return p, nil
}
