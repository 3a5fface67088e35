package services

import (
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/pkg/search"
)

// StatusAll valor del filtro de estado que no filtra.
const StatusAll = "todos"

// Filter órdenes cuyo nombre, cliente, número o marca de bicicleta contiene query y cuyo
// estado coincide con status ("" o "todos" no filtra).
func Filter(list []entity.Service, query, status string) []entity.Service {
	out := make([]entity.Service, 0, len(list))
	for _, s := range list {
		if status != "" && status != StatusAll && string(s.Status) != status {
			continue
		}
		if !search.AnyContains(query, s.Name, s.CustomerName, s.Number, s.BikeBrand) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Stats conteos por estado.
type Stats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Cancelled  int
}

// Summarize calcula Stats sobre list.
func Summarize(list []entity.Service) Stats {
	st := Stats{Total: len(list)}
	for _, s := range list {
		switch s.Status {
		case entity.ServiceStatusPending:
			st.Pending++
		case entity.ServiceStatusInProgress:
			st.InProgress++
		case entity.ServiceStatusCompleted:
			st.Completed++
		case entity.ServiceStatusCancelled:
			st.Cancelled++
		}
	}
	return st
}
