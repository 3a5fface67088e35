package postgres

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_MarcasDeTiempoIdaYVuelta(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	created := time.Date(2025, 6, 1, 9, 30, 15, 123456789, bogota)
	var none *time.Time

	raw, err := marshalData(map[string]any{
		"createdAt":   created,
		"completedAt": none,
		"cliente":     "Ana",
		"cantidad":    2,
		"especificaciones": map[string]any{
			"revisado": created,
		},
		"historial": []any{created, "x"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `{"$ts":"2025-06-01T14:30:15.123456789Z"}`)

	got, err := unmarshalData(raw)
	require.NoError(t, err)

	ts, ok := got["createdAt"].(time.Time)
	require.True(t, ok)
	assert.True(t, created.Equal(ts))
	assert.Nil(t, got["completedAt"])
	assert.Equal(t, "Ana", got["cliente"])
	assert.Equal(t, float64(2), got["cantidad"])

	nested := got["especificaciones"].(map[string]any)
	assert.IsType(t, time.Time{}, nested["revisado"])
	list := got["historial"].([]any)
	assert.IsType(t, time.Time{}, list[0])
	assert.Equal(t, "x", list[1])
}

func TestCodec_OrdenDeTextoIgualAlTemporal(t *testing.T) {
	early := time.Date(2025, 1, 9, 23, 59, 59, 0, time.UTC)
	late := time.Date(2025, 1, 10, 0, 0, 0, 1, time.UTC)

	a, err := marshalData(map[string]any{"t": early})
	require.NoError(t, err)
	b, err := marshalData(map[string]any{"t": late})
	require.NoError(t, err)

	assert.Less(t, string(a), string(b))
}

func TestCodec_ObjetoParecidoNoEsFecha(t *testing.T) {
	got, err := unmarshalData([]byte(`{"a":{"$ts":"ayer"},"b":{"$ts":"2025-06-01T00:00:00.000000000Z","extra":1}}`))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"$ts": "ayer"}, got["a"])
	assert.IsType(t, map[string]any{}, got["b"])
}

func TestCodec_JSONInvalido(t *testing.T) {
	_, err := unmarshalData([]byte(`{roto`))
	assert.Error(t, err)

	got, err := unmarshalData([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueViolation(errors.New("ERROR: duplicate key (SQLSTATE 23505)")))
	assert.False(t, isUniqueViolation(errors.New(strings.Repeat("x", 5))))
}
