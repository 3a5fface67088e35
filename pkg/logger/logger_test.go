package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biciros/pkg/logger"
)

func TestNew_ProduccionEscribeJSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Component("sales").Info().Str("user_id", "u-1").Msg("venta creada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "sales", line["component"])
	assert.Equal(t, "u-1", line["user_id"])
	assert.Equal(t, "venta creada", line["message"])
}

func TestNew_RespetaElNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no sale")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}

func TestOrNop_NilDescarta(t *testing.T) {
	log := logger.OrNop(nil)
	require.NotNil(t, log)
	assert.NotPanics(t, func() { log.Error().Msg("nada") })
}
