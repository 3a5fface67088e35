package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biciros/internal/application/products"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name           string                `json:"nombre_producto" validate:"required,min=1,max=200"`
	Description    string                `json:"descripcion_producto" validate:"max=2000"`
	Category       string                `json:"categoria_producto" validate:"omitempty,oneof=bicicletas ruta montaña accesorios repuestos ropa herramientas otro"`
	Price          decimal.Decimal       `json:"precio_producto" validate:"gte=0"`
	Stock          int                   `json:"stock_producto" validate:"gte=0"`
	Brand          string                `json:"marca_producto" validate:"max=100"`
	Model          string                `json:"modelo_producto" validate:"max=100"`
	Specifications entity.Specifications `json:"especificaciones_producto"`
	Images         []string              `json:"imagenes_producto" validate:"omitempty,dive,url"`
	Available      *bool                 `json:"disponible_producto"`
	Featured       bool                  `json:"destacado_producto"`
}

// ToEntity convierte la entrada en el alta de dominio. disponible_producto ausente = true.
func (r CreateProductRequest) ToEntity() entity.NewProduct {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return entity.NewProduct{
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Price:          r.Price,
		Stock:          r.Stock,
		Brand:          r.Brand,
		Model:          r.Model,
		Specifications: r.Specifications,
		Images:         r.Images,
		Available:      available,
		Featured:       r.Featured,
	}
}

// UpdateProductRequest entrada para actualizar un producto (solo campos presentes).
type UpdateProductRequest struct {
	Name           *string                `json:"nombre_producto" validate:"omitempty,min=1,max=200"`
	Description    *string                `json:"descripcion_producto" validate:"omitempty,max=2000"`
	Category       *string                `json:"categoria_producto" validate:"omitempty,oneof=bicicletas ruta montaña accesorios repuestos ropa herramientas otro"`
	Price          *decimal.Decimal       `json:"precio_producto" validate:"omitempty,gte=0"`
	Stock          *int                   `json:"stock_producto"`
	Brand          *string                `json:"marca_producto" validate:"omitempty,max=100"`
	Model          *string                `json:"modelo_producto" validate:"omitempty,max=100"`
	Specifications *entity.Specifications `json:"especificaciones_producto"`
	Images         []string               `json:"imagenes_producto" validate:"omitempty,dive,url"`
	Available      *bool                  `json:"disponible_producto"`
	Featured       *bool                  `json:"destacado_producto"`
}

// ToEntity convierte la entrada en la actualización de dominio.
func (r UpdateProductRequest) ToEntity() entity.ProductUpdate {
	return entity.ProductUpdate{
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Price:          r.Price,
		Stock:          r.Stock,
		Brand:          r.Brand,
		Model:          r.Model,
		Specifications: r.Specifications,
		Images:         r.Images,
		Available:      r.Available,
		Featured:       r.Featured,
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string                `json:"id"`
	ProductID      string                `json:"id_producto"`
	Name           string                `json:"nombre_producto"`
	Description    string                `json:"descripcion_producto"`
	Category       string                `json:"categoria_producto"`
	Price          decimal.Decimal       `json:"precio_producto"`
	Stock          int                   `json:"stock_producto"`
	Brand          string                `json:"marca_producto"`
	Model          string                `json:"modelo_producto"`
	Specifications entity.Specifications `json:"especificaciones_producto"`
	Images         []string              `json:"imagenes_producto"`
	Available      bool                  `json:"disponible_producto"`
	Featured       bool                  `json:"destacado_producto"`
	InventoryValue decimal.Decimal       `json:"valor_inventario"`
	CreatedAt      time.Time             `json:"creado_producto"`
	UpdatedAt      time.Time             `json:"actualizado_producto"`
}

// ProductListResponse listado de productos con el estado de la suscripción.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
	FeedState
}

// ProductStatsDTO resumen del inventario.
type ProductStatsDTO struct {
	Total          int             `json:"total"`
	Available      int             `json:"available"`
	Unavailable    int             `json:"unavailable"`
	Featured       int             `json:"featured"`
	OutOfStock     int             `json:"out_of_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// ToProductResponse convierte un producto en su salida.
func ToProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		ProductID:      p.ProductID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Price:          p.Price,
		Stock:          p.Stock,
		Brand:          p.Brand,
		Model:          p.Model,
		Specifications: p.Specifications,
		Images:         p.Images,
		Available:      p.Available,
		Featured:       p.Featured,
		InventoryValue: p.Price.Mul(decimal.NewFromInt(int64(p.Stock))),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductList convierte un listado.
func ToProductList(list []entity.Product, state FeedState) ProductListResponse {
	items := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, ToProductResponse(p))
	}
	return ProductListResponse{Items: items, Total: len(items), FeedState: state}
}

// ToProductStatsDTO convierte el resumen.
func ToProductStatsDTO(st products.Stats) ProductStatsDTO {
	return ProductStatsDTO{
		Total:          st.Total,
		Available:      st.Available,
		Unavailable:    st.Unavailable,
		Featured:       st.Featured,
		OutOfStock:     st.OutOfStock,
		InventoryValue: st.InventoryValue.Round(2),
	}
}
