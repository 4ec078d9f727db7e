package configuration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/linelog/core"
)

func TestLoadFromJSON(t *testing.T) {
	data := []byte(`{
		"Linelog": {
			"MinimumLevel": "warning",
			"Channel": "payments",
			"LineLimit": 4000,
			"Tags": {"env": "prod"},
			"WriteTo": [{"Name": "Memory"}]
		}
	}`)

	config, err := LoadFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "warning", config.Linelog.MinimumLevel)
	assert.Equal(t, "payments", config.Linelog.Channel)
	assert.Equal(t, 4000, config.Linelog.LineLimit)
	assert.Equal(t, "prod", config.Linelog.Tags["env"])
	require.Len(t, config.Linelog.WriteTo, 1)
	assert.Equal(t, "Memory", config.Linelog.WriteTo[0].Name)
}

func TestLoadFromYAML(t *testing.T) {
	data := []byte(`
Linelog:
  MinimumLevel: debug
  Channel: worker
  WriteTo:
    - Name: File
      Args:
        path: /var/log/worker.log
`)

	config, err := LoadFromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "debug", config.Linelog.MinimumLevel)
	assert.Equal(t, "worker", config.Linelog.Channel)
	require.Len(t, config.Linelog.WriteTo, 1)
	assert.Equal(t, "/var/log/worker.log", GetString(config.Linelog.WriteTo[0].Args, "path", ""))
}

func TestLoadDefaults(t *testing.T) {
	config, err := LoadFromJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "info", config.Linelog.MinimumLevel)
	assert.Equal(t, "app", config.Linelog.Channel)
}

func TestLoadFromFileByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"Linelog":{"Channel":"fromjson"}}`), 0644))
	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("Linelog:\n  Channel: fromyaml\n"), 0644))

	jsonConfig, err := LoadFromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "fromjson", jsonConfig.Linelog.Channel)

	yamlConfig, err := LoadFromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "fromyaml", yamlConfig.Linelog.Channel)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected core.Level
		wantErr  bool
	}{
		{"debug", core.DebugLevel, false},
		{"dbg", core.DebugLevel, false},
		{"info", core.InfoLevel, false},
		{"Information", core.InfoLevel, false},
		{"WARN", core.WarningLevel, false},
		{"warning", core.WarningLevel, false},
		{"error", core.ErrorLevel, false},
		{"err", core.ErrorLevel, false},
		{"bogus", core.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestBuildLogger(t *testing.T) {
	config, err := LoadFromJSON([]byte(`{
		"Linelog": {
			"MinimumLevel": "info",
			"Channel": "built",
			"Tags": {"env": "prod", "az": "eu-1"},
			"WriteTo": [{"Name": "Memory"}]
		}
	}`))
	require.NoError(t, err)

	logger, err := NewLoggerBuilder().Build(config)
	require.NoError(t, err)

	logger.Info("hello")
	snapshot := logger.Tags().Snapshot()
	require.Len(t, snapshot, 2)
	// Config tags are sorted by name for a stable order.
	assert.Equal(t, "az", snapshot[0].Name)
	assert.Equal(t, "env", snapshot[1].Name)
}

func TestBuildUnknownSink(t *testing.T) {
	config, err := LoadFromJSON([]byte(`{"Linelog":{"WriteTo":[{"Name":"Nope"}]}}`))
	require.NoError(t, err)

	_, err = NewLoggerBuilder().Build(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sink")
}

func TestBuildFileSinkEnvOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "override.log")
	t.Setenv("LINELOG_FILE", override)

	config, err := LoadFromJSON([]byte(`{"Linelog":{"WriteTo":[{"Name":"File","Args":{"path":"/nonexistent/ignored.log"}}]}}`))
	require.NoError(t, err)

	logger, err := NewLoggerBuilder().Build(config)
	require.NoError(t, err)
	logger.Info("routed")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(override)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "routed"))
}

func TestGetArgHelpers(t *testing.T) {
	args := map[string]any{
		"s":      "text",
		"i":      float64(42),
		"istr":   "7",
		"b":      true,
		"bstr":   "TRUE",
		"absent": nil,
	}

	assert.Equal(t, "text", GetString(args, "s", "d"))
	assert.Equal(t, "d", GetString(args, "missing", "d"))
	assert.Equal(t, 42, GetInt(args, "i", 0))
	assert.Equal(t, 7, GetInt(args, "istr", 0))
	assert.Equal(t, 9, GetInt(args, "missing", 9))
	assert.True(t, GetBool(args, "b", false))
	assert.True(t, GetBool(args, "bstr", false))
	assert.False(t, GetBool(args, "missing", false))
}
