package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Error().Str("component", "orders").Msg("falló")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "orders", entry["component"])
	assert.Equal(t, "falló", entry["message"])
}

func TestParseLevel_Desconocido(t *testing.T) {
	assert.Equal(t, parseLevel("info"), parseLevel("verbose"))
}
