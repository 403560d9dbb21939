package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	LogLevel        string     `yaml:"log_level,omitempty"`        // debug, info, warn, error (fallback: warn)
	Decimals        *int       `yaml:"decimals,omitempty"`         // Digits shown for kWh values, 0 for whole numbers (fallback: 2)
	IntegerQuantity bool       `yaml:"integer_quantity,omitempty"` // Reject fractional appliance quantities
	MQTT            MQTTConfig `yaml:"mqtt,omitempty"`
	HomeAssistant   HAConfig   `yaml:"home_assistant,omitempty"`
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // e.g., "homeassistant.local:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // fallback: "homeload"
	ClientID    string `yaml:"client_id,omitempty"`    // fallback: "homeload"
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`       // e.g., "http://homeassistant.local:8123"
	Token    string `yaml:"token"`     // Long-lived access token
	EntityID string `yaml:"entity_id"` // e.g., "sensor.household_daily_energy_estimate"
}

// DefaultDecimals is the number of digits shown for kWh values when unset
const DefaultDecimals = 2

// Default returns a config with every setting filled in and both publishing
// targets disabled, as written by "homeload config init".
func Default() *Config {
	decimals := DefaultDecimals
	return &Config{
		LogLevel: "warn",
		Decimals: &decimals,
		MQTT: MQTTConfig{
			Broker:      "homeassistant.local:1883",
			TopicPrefix: "homeload",
			ClientID:    "homeload",
		},
		HomeAssistant: HAConfig{
			URL:      "http://homeassistant.local:8123",
			EntityID: "sensor.household_daily_energy_estimate",
		},
	}
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetLogLevel returns the log level, preferring the LOG_LEVEL environment variable
func (c *Config) GetLogLevel() string {
	if env := strings.TrimSpace(os.Getenv("LOG_LEVEL")); env != "" {
		return env
	}
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return "warn"
}

// GetDecimals returns the number of digits shown for kWh values. An unset or
// negative value falls back to DefaultDecimals; 0 is kept.
func (c *Config) GetDecimals() int {
	if c.Decimals == nil || *c.Decimals < 0 {
		return DefaultDecimals
	}
	return *c.Decimals
}

// GetTopicPrefix returns the MQTT topic prefix with a default of "homeload"
func (c *Config) GetTopicPrefix() string {
	if c.MQTT.TopicPrefix == "" {
		return "homeload"
	}
	return strings.TrimSuffix(c.MQTT.TopicPrefix, "/")
}

// GetClientID returns the MQTT client id with a default of "homeload"
func (c *Config) GetClientID() string {
	if c.MQTT.ClientID == "" {
		return "homeload"
	}
	return c.MQTT.ClientID
}

// PublishingEnabled reports whether any publishing target is configured
func (c *Config) PublishingEnabled() bool {
	return c.MQTT.Enabled || c.HomeAssistant.Enabled
}
