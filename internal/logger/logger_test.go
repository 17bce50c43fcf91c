package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usersdb/usersdb/config"
)

func TestNewWithWriterLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewWithWriter(&bytes.Buffer{}, tt.level)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewWithWriterWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Debug().Msg("hidden")
	log.Info().Int64("user_id", 3).Msg("inserted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "inserted", entry["message"])
	assert.Equal(t, "usersdb", entry["service"])
	assert.Equal(t, float64(3), entry["user_id"])
	assert.Contains(t, entry, "time")
}

func TestNewUsesConfigLevel(t *testing.T) {
	log := New(config.Config{Env: "dev", LogLevel: "warn"})
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}
