package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"Error": zerolog.ErrorLevel,
		"trace": zerolog.TraceLevel,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.True(t, errors.Is(err, dynamo.ErrInvalidConfig))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", JSON: true, Out: &buf})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Int("trajectories", 10).Msg("integrated")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "integrated", entry["message"])
	assert.EqualValues(t, 10, entry["trajectories"])
	assert.Contains(t, entry, "time")
}

func TestNewConsoleWithFile(t *testing.T) {
	var out, file bytes.Buffer
	log, err := New(Options{Level: "debug", Out: &out, File: &file})
	require.NoError(t, err)

	log.Debug().Str("integrator", "rk4").Msg("starting")
	assert.Contains(t, out.String(), "starting")
	assert.Contains(t, file.String(), "integrator=rk4")
}

func TestForTUI(t *testing.T) {
	log, closeFn, err := ForTUI("info", "")
	require.NoError(t, err)
	log.Info().Msg("dropped")
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "tui.log")
	log, closeFn, err = ForTUI("info", path)
	require.NoError(t, err)
	log.Info().Int("frame", 3).Msg("drawn")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame=3")
}
