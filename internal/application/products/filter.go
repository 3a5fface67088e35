package products

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/pkg/search"
)

// Filtros de disponibilidad de la pantalla de inventario.
const (
	AvailabilityAll         = "todos"
	AvailabilityAvailable   = "disponible"
	AvailabilityUnavailable = "no_disponible"
	AvailabilityFeatured    = "destacado"
)

// CategoryAll valor del filtro de categoría que no filtra.
const CategoryAll = "todos"

// Criteria criterios de búsqueda; los campos vacíos no filtran.
type Criteria struct {
	Query        string
	Availability string
	Category     string
}

// Filter productos cuyo nombre, marca o modelo contiene Query y que cumplen los filtros
// de disponibilidad y categoría.
func Filter(list []entity.Product, c Criteria) []entity.Product {
	out := make([]entity.Product, 0, len(list))
	for _, p := range list {
		switch c.Availability {
		case AvailabilityAvailable:
			if !p.Available {
				continue
			}
		case AvailabilityUnavailable:
			if p.Available {
				continue
			}
		case AvailabilityFeatured:
			if !p.Featured {
				continue
			}
		}
		if c.Category != "" && c.Category != CategoryAll && p.Category != c.Category {
			continue
		}
		if !search.AnyContains(c.Query, p.Name, p.Brand, p.Model) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Stats resumen del inventario.
type Stats struct {
	Total          int
	Available      int
	Unavailable    int
	Featured       int
	OutOfStock     int
	InventoryValue decimal.Decimal // Σ precio × stock
}

// Summarize calcula Stats sobre list.
func Summarize(list []entity.Product) Stats {
	st := Stats{Total: len(list), InventoryValue: decimal.Zero}
	for _, p := range list {
		if p.Available {
			st.Available++
		} else {
			st.Unavailable++
		}
		if p.Featured {
			st.Featured++
		}
		if p.Stock <= 0 {
			st.OutOfStock++
		}
		st.InventoryValue = st.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return st
}
