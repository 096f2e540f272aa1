package logger

import (
	"os"
	"path/filepath"
	"testing"

	"alcyxob/exercise-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestInitWritesJSONToFile(t *testing.T) {
	restoreGlobals(t)
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	require.NoError(t, Init(config.LogConfig{Level: "debug", Format: "json", File: path}))
	log.Debug().Str("username", "alice").Msg("user created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"user created"`)
	assert.Contains(t, string(data), `"username":"alice"`)
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	restoreGlobals(t)

	require.NoError(t, Init(config.LogConfig{Level: "chatty"}))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	require.NoError(t, Init(config.LogConfig{Level: "warn"}))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
