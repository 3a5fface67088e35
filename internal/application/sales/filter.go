package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/pkg/search"
)

// StatusAll valor del filtro de estado que no filtra.
const StatusAll = "todas"

// Filter ventas cuyo cliente o producto contiene query y cuyo estado coincide.
// status vacío o "todas" no filtra por estado.
func Filter(list []entity.Sale, query, status string) []entity.Sale {
	out := make([]entity.Sale, 0, len(list))
	for _, s := range list {
		if status != "" && status != StatusAll && string(s.Status) != status {
			continue
		}
		if !search.AnyContains(query, s.Customer, s.Product) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Stats resumen de la pantalla de ventas.
type Stats struct {
	Count     int
	Revenue   decimal.Decimal // suma de totales de ventas completadas
	Pending   int
	Completed int
	Cancelled int
}

// Summarize calcula Stats sobre list.
func Summarize(list []entity.Sale) Stats {
	st := Stats{Count: len(list), Revenue: decimal.Zero}
	for _, s := range list {
		switch s.Status {
		case entity.SaleStatusCompleted:
			st.Completed++
			st.Revenue = st.Revenue.Add(s.Total)
		case entity.SaleStatusPending:
			st.Pending++
		case entity.SaleStatusCancelled:
			st.Cancelled++
		}
	}
	return st
}
