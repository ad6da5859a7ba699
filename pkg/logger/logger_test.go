package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/pkg/logger"
)

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "almacen-api", Output: &buf})

	l.Debug().Msg("oculto")
	l.Info().Str("op", "create_entry").Msg("ok")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "almacen-api", line["service"])
	assert.Equal(t, "create_entry", line["op"])
	assert.Equal(t, "info", line["level"])
}
