package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/pkg/logger"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "contable-api", Output: &buf})

	log.Info().Str("numero", "FV-000001").Msg("factura creada")
	http := log.Component("http")
	http.Warn().Msg("lento")

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "contable-api", got[0]["service"])
	assert.Equal(t, "FV-000001", got[0]["numero"])
	assert.Equal(t, "info", got[0]["level"])
	assert.Equal(t, "http", got[1]["component"])
	assert.Equal(t, "contable-api", got[1]["service"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Output: &buf})

	log.Info().Msg("no sale")
	log.Error().Msg("sí sale")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "error", got[0]["level"])
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "verbose", Output: &buf})

	log.Debug().Msg("no sale")
	log.Info().Msg("sale")

	assert.Len(t, lines(t, &buf), 1)
}
