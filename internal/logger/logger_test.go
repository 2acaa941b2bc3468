package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"trace", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "warn", Console: &buf, NoColor: true}))
	t.Cleanup(func() { Log = zerolog.Nop() })

	Log.Info().Msg("hidden")
	Log.Warn().Str("input", "NodeIds.csv").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "NodeIds.csv")
	assert.Empty(t, GetLogFilePath())
}

func TestInitVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "error", Verbose: true, Console: &buf}))
	t.Cleanup(func() { Log = zerolog.Nop() })

	assert.Equal(t, zerolog.DebugLevel, Log.GetLevel())
}

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nodeidgen.log")

	var console bytes.Buffer
	require.NoError(t, Init(Options{File: path, Console: &console, NoColor: true}))
	t.Cleanup(func() {
		CloseFileWriter()
		Log = zerolog.Nop()
	})

	assert.Equal(t, path, GetLogFilePath())

	Log.Info().Int("rows", 3).Msg("generated")
	require.NoError(t, CloseFileWriter())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rows":3`)
	assert.Contains(t, console.String(), "generated")
}

func TestInitInvalidLevel(t *testing.T) {
	assert.Error(t, Init(Options{Level: "loud"}))
}
