package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto (conjunto cerrado). CategoryOther es el valor por defecto.
const (
	CategoryBikes     = "bicicletas"
	CategoryRoad      = "ruta"
	CategoryMountain  = "montaña"
	CategoryAccessory = "accesorios"
	CategoryParts     = "repuestos"
	CategoryClothing  = "ropa"
	CategoryTools     = "herramientas"
	CategoryOther     = "otro"
)

// ProductCategories lista las categorías en el orden en que se muestran.
var ProductCategories = []string{
	CategoryBikes, CategoryRoad, CategoryMountain, CategoryAccessory,
	CategoryParts, CategoryClothing, CategoryTools, CategoryOther,
}

// IsProductCategory indica si c pertenece al conjunto de categorías.
func IsProductCategory(c string) bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Specifications ficha técnica del producto (objeto anidado, todos los campos opcionales).
type Specifications struct {
	Color     string `mapstructure:"color,omitempty" json:"color,omitempty"`
	Frame     string `mapstructure:"cuadro,omitempty" json:"cuadro,omitempty"`
	Weight    string `mapstructure:"peso,omitempty" json:"peso,omitempty"`
	WheelSize string `mapstructure:"tamañoRueda,omitempty" json:"tamañoRueda,omitempty"`
	Gears     *int   `mapstructure:"velocidades,omitempty" json:"velocidades,omitempty"`
	Size      string `mapstructure:"talla,omitempty" json:"talla,omitempty"`
	Material  string `mapstructure:"material,omitempty" json:"material,omitempty"`
}

// Product artículo del inventario (colección "productos").
// Available es siempre false cuando Stock <= 0 tras cualquier escritura que toque el stock.
type Product struct {
	ID             string
	ProductID      string
	Name           string
	Description    string
	Category       string
	Price          decimal.Decimal
	Stock          int
	Brand          string
	Model          string
	Specifications Specifications
	Images         []string
	Available      bool
	Featured       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProduct datos de un producto nuevo.
type NewProduct struct {
	Name           string
	Description    string
	Category       string
	Price          decimal.Decimal
	Stock          int
	Brand          string
	Model          string
	Specifications Specifications
	Images         []string
	Available      bool
	Featured       bool
}

// ProductUpdate actualización parcial de un producto.
type ProductUpdate struct {
	Name           *string
	Description    *string
	Category       *string
	Price          *decimal.Decimal
	Stock          *int
	Brand          *string
	Model          *string
	Specifications *Specifications
	Images         []string
	Available      *bool
	Featured       *bool
}
