package document_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biciros/internal/domain/document"
)

func TestReader_CamposAusentesUsanDefecto(t *testing.T) {
	r := document.Read(nil)

	assert.Equal(t, "pendiente", r.String("estado", "pendiente"))
	assert.Equal(t, 0, r.Int("cantidad"))
	assert.True(t, r.Decimal("total").IsZero())
	assert.True(t, r.Bool("disponible", true))
	assert.NotNil(t, r.Strings("imagenes"))
	assert.Empty(t, r.Strings("imagenes"))
	assert.Nil(t, r.OptionalTime("createdAt"))
	assert.False(t, r.Has("cliente"))
}

func TestReader_TextoVacioEquivaleAAusente(t *testing.T) {
	r := document.Read(map[string]any{"tipo": "", "estado": nil})
	assert.Equal(t, "otro", r.String("tipo", "otro"))
	assert.Equal(t, "pendiente", r.String("estado", "pendiente"))
}

func TestReader_ConvierteTiposCompatibles(t *testing.T) {
	r := document.Read(map[string]any{
		"cantidad": "12",
		"stock":    float64(3),
		"precio":   "19.99",
		"total":    10.5,
		"nombre":   42,
		"activo":   "true",
	})

	assert.Equal(t, 12, r.Int("cantidad"))
	assert.Equal(t, 3, r.Int("stock"))
	assert.True(t, decimal.RequireFromString("19.99").Equal(r.Decimal("precio")))
	assert.True(t, decimal.NewFromFloat(10.5).Equal(r.Decimal("total")))
	assert.Equal(t, "42", r.String("nombre", ""))
	assert.True(t, r.Bool("activo", false))
}

func TestReader_ValoresInvalidosDanCero(t *testing.T) {
	r := document.Read(map[string]any{"cantidad": "muchos", "precio": "caro"})
	assert.Equal(t, 0, r.Int("cantidad"))
	assert.True(t, r.Decimal("precio").IsZero())
}

func TestReader_BoolFalsoPresenteNoUsaDefecto(t *testing.T) {
	r := document.Read(map[string]any{"disponible": false})
	assert.False(t, r.Bool("disponible", true))
}

func TestReader_ListaDeTextos(t *testing.T) {
	r := document.Read(map[string]any{"imagenes": []any{"a.jpg", "b.jpg"}})
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, r.Strings("imagenes"))
}

func TestReader_TimeSoloReconoceMarcasDeTiempo(t *testing.T) {
	ts := time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := document.Read(map[string]any{
		"createdAt": ts,
		"updatedAt": "2025-03-04T15:30:00Z",
		"otro":      int64(1700000000),
	})

	assert.Equal(t, ts, r.Time("createdAt", fallback))
	assert.Equal(t, fallback, r.Time("updatedAt", fallback), "un texto no es una marca de tiempo")
	assert.Equal(t, fallback, r.Time("otro", fallback))
	assert.Equal(t, fallback, r.Time("ausente", fallback))
}

func TestReader_DateString(t *testing.T) {
	r := document.Read(map[string]any{
		"fecha":    time.Date(2025, 3, 4, 23, 0, 0, 0, time.UTC),
		"fechaTxt": "2025-01-02",
	})
	assert.Equal(t, "2025-03-04", r.DateString("fecha"))
	assert.Equal(t, "2025-01-02", r.DateString("fechaTxt"))
	assert.Equal(t, "", r.DateString("ausente"))
}

type specs struct {
	Color       string `mapstructure:"color,omitempty"`
	Velocidades int    `mapstructure:"velocidades,omitempty"`
}

func TestReader_DecodeObjetoAnidado(t *testing.T) {
	r := document.Read(map[string]any{
		"especificaciones": map[string]any{"color": "rojo", "velocidades": "21"},
	})

	var out specs
	require.NoError(t, r.Decode("especificaciones", &out))
	assert.Equal(t, specs{Color: "rojo", Velocidades: 21}, out)

	var untouched specs
	require.NoError(t, r.Decode("ausente", &untouched))
	assert.Equal(t, specs{}, untouched)
}

func TestEncode_OmiteVacios(t *testing.T) {
	out, err := document.Encode(specs{Color: "azul"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"color": "azul"}, out)
}
