package products_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/biciros/internal/application/products"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

func inventory() []entity.Product {
	return []entity.Product{
		{ID: "1", Name: "Bicicleta Montaña", Brand: "GW", Category: entity.CategoryMountain, Price: decimal.NewFromInt(1000), Stock: 2, Available: true, Featured: true},
		{ID: "2", Name: "Casco", Brand: "Giro", Category: entity.CategoryAccessory, Price: decimal.NewFromInt(150), Stock: 0, Available: false},
		{ID: "3", Name: "Llanta", Brand: "Maxxis", Model: "Ardent", Category: entity.CategoryParts, Price: decimal.RequireFromString("80.50"), Stock: 10, Available: true},
	}
}

func productIDs(list []entity.Product) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_Disponibilidad(t *testing.T) {
	list := inventory()
	assert.Equal(t, []string{"1", "2", "3"}, productIDs(products.Filter(list, products.Criteria{Availability: products.AvailabilityAll})))
	assert.Equal(t, []string{"1", "3"}, productIDs(products.Filter(list, products.Criteria{Availability: products.AvailabilityAvailable})))
	assert.Equal(t, []string{"2"}, productIDs(products.Filter(list, products.Criteria{Availability: products.AvailabilityUnavailable})))
	assert.Equal(t, []string{"1"}, productIDs(products.Filter(list, products.Criteria{Availability: products.AvailabilityFeatured})))
}

func TestFilter_CategoriaYTexto(t *testing.T) {
	list := inventory()
	assert.Equal(t, []string{"1"}, productIDs(products.Filter(list, products.Criteria{Category: "montaña"})))
	assert.Equal(t, []string{"3"}, productIDs(products.Filter(list, products.Criteria{Query: "ardent"})))
	assert.Equal(t, []string{"1"}, productIDs(products.Filter(list, products.Criteria{Query: "montana", Category: products.CategoryAll})))
	assert.Empty(t, products.Filter(list, products.Criteria{Query: "casco", Category: entity.CategoryParts}))
}

func TestSummarize_ValorDeInventario(t *testing.T) {
	st := products.Summarize(inventory())

	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Available)
	assert.Equal(t, 1, st.Unavailable)
	assert.Equal(t, 1, st.Featured)
	assert.Equal(t, 1, st.OutOfStock)
	// 1000×2 + 150×0 + 80.50×10
	assert.True(t, decimal.RequireFromString("2805").Equal(st.InventoryValue), "got %s", st.InventoryValue)
}
