package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.GetDecimals())
	assert.Equal(t, "homeload", cfg.GetTopicPrefix())
	assert.Equal(t, "homeload", cfg.GetClientID())
	assert.False(t, cfg.IntegerQuantity)
	assert.False(t, cfg.PublishingEnabled())
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
log_level: debug
decimals: 3
integer_quantity: true
mqtt:
  enabled: true
  broker: broker.local:1883
  topic_prefix: energy/
home_assistant:
  enabled: true
  url: http://ha.local:8123
  token: secret
  entity_id: sensor.home_load
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, 3, cfg.GetDecimals())
	assert.True(t, cfg.IntegerQuantity)
	assert.Equal(t, "broker.local:1883", cfg.MQTT.Broker)
	assert.Equal(t, "energy", cfg.GetTopicPrefix())
	assert.Equal(t, "sensor.home_load", cfg.HomeAssistant.EntityID)
	assert.True(t, cfg.PublishingEnabled())
}

func TestGetDecimals(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"unset", "log_level: info\n", 2},
		{"whole numbers", "decimals: 0\n", 0},
		{"explicit", "decimals: 4\n", 4},
		{"negative", "decimals: -1\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0600))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.GetDecimals())
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "warn", cfg.GetLogLevel())
	assert.Equal(t, DefaultDecimals, cfg.GetDecimals())
	assert.False(t, cfg.IntegerQuantity)
	assert.False(t, cfg.PublishingEnabled())
	assert.Equal(t, "homeload", cfg.GetTopicPrefix())
	assert.NotEmpty(t, cfg.MQTT.Broker)
	assert.NotEmpty(t, cfg.HomeAssistant.URL)
	assert.NotEmpty(t, cfg.HomeAssistant.EntityID)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("decimals: [1, 2"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLogLevelEnvOverride(t *testing.T) {
	cfg := &Config{LogLevel: "error"}

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "error", cfg.GetLogLevel())

	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, "debug", cfg.GetLogLevel())

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "warn", (&Config{}).GetLogLevel())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	decimals := 4
	cfg := &Config{Decimals: &decimals, HomeAssistant: HAConfig{Enabled: true, URL: "http://ha", EntityID: "sensor.x"}}

	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
