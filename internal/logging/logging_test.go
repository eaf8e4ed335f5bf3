package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestConfigureWriterLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	ConfigureWriter(&buf, "warn", false)
	log.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	logger := Component("server")
	logger.Warn().Msg("shown")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "server", entry["component"])
	require.Equal(t, "shown", entry["message"])
}

func TestConfigureWriterUnknownLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	ConfigureWriter(&buf, "loud", false)
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	require.Contains(t, buf.String(), "unknown log level")
}
