package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/biciros/internal/application/services"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

func sampleServices() []entity.Service {
	return []entity.Service{
		{ID: "1", Number: "SRV-2025-001", Name: "Mantenimiento", CustomerName: "Andrés", BikeBrand: "Trek", Status: entity.ServiceStatusPending},
		{ID: "2", Number: "SRV-2025-002", Name: "Reparación de rin", CustomerName: "Lucía", BikeBrand: "Specialized", Status: entity.ServiceStatusInProgress},
		{ID: "3", Number: "SRV-2025-003", Name: "Pintura", CustomerName: "Pedro", BikeBrand: "GW", Status: entity.ServiceStatusCompleted},
		{ID: "4", Number: "SRV-2025-004", Name: "Revisión", CustomerName: "Sofía", BikeBrand: "Trek", Status: entity.ServiceStatusCancelled},
	}
}

func serviceIDs(list []entity.Service) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestFilter_BuscaEnNombreClienteNumeroYMarca(t *testing.T) {
	list := sampleServices()
	assert.Equal(t, []string{"2"}, serviceIDs(services.Filter(list, "reparacion", "")))
	assert.Equal(t, []string{"4"}, serviceIDs(services.Filter(list, "sofia", "")))
	assert.Equal(t, []string{"3"}, serviceIDs(services.Filter(list, "003", "")))
	assert.Equal(t, []string{"1", "4"}, serviceIDs(services.Filter(list, "trek", services.StatusAll)))
}

func TestFilter_PorEstadoYTexto(t *testing.T) {
	list := sampleServices()
	assert.Equal(t, []string{"1"}, serviceIDs(services.Filter(list, "trek", "pendiente")))
	assert.Empty(t, services.Filter(list, "pintura", "pendiente"))
}

func TestSummarize_ConteosPorEstado(t *testing.T) {
	st := services.Summarize(sampleServices())
	assert.Equal(t, services.Stats{Total: 4, Pending: 1, InProgress: 1, Completed: 1, Cancelled: 1}, st)
}
