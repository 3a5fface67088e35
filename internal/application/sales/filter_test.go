package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/biciros/internal/application/sales"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

func sampleSales() []entity.Sale {
	return []entity.Sale{
		{ID: "1", Customer: "José Martínez", Product: "Casco", Status: entity.SaleStatusCompleted, Total: decimal.NewFromInt(1000)},
		{ID: "2", Customer: "Ana", Product: "Bicicleta de Montaña", Status: entity.SaleStatusPending, Total: decimal.NewFromInt(500)},
		{ID: "3", Customer: "Luis", Product: "Guantes", Status: entity.SaleStatusCancelled, Total: decimal.NewFromInt(40)},
		{ID: "4", Customer: "María", Product: "Cadena", Status: entity.SaleStatusCompleted, Total: decimal.RequireFromString("250.75")},
	}
}

func ids(list []entity.Sale) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestFilter_SinCriteriosDevuelveTodo(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(sales.Filter(sampleSales(), "", "")))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(sales.Filter(sampleSales(), "  ", sales.StatusAll)))
}

func TestFilter_BusquedaSinAcentosNiMayusculas(t *testing.T) {
	assert.Equal(t, []string{"1"}, ids(sales.Filter(sampleSales(), "jose", "")))
	assert.Equal(t, []string{"2"}, ids(sales.Filter(sampleSales(), "MONTANA", "")))
}

func TestFilter_PorEstado(t *testing.T) {
	assert.Equal(t, []string{"1", "4"}, ids(sales.Filter(sampleSales(), "", "completada")))
	assert.Equal(t, []string{"4"}, ids(sales.Filter(sampleSales(), "maria", "completada")))
	assert.Empty(t, sales.Filter(sampleSales(), "ana", "cancelada"))
}

func TestSummarize_IngresosSoloDeCompletadas(t *testing.T) {
	st := sales.Summarize(sampleSales())

	assert.Equal(t, 4, st.Count)
	assert.Equal(t, 2, st.Completed)
	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, 1, st.Cancelled)
	assert.True(t, decimal.RequireFromString("1250.75").Equal(st.Revenue), "got %s", st.Revenue)
}

func TestSummarize_ListaVacia(t *testing.T) {
	st := sales.Summarize(nil)
	assert.Zero(t, st.Count)
	assert.True(t, st.Revenue.IsZero())
}
