package publisher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/homeload/internal/config"
	"github.com/jgoulah/homeload/pkg/models"
)

func sampleSummary() models.SummaryRecord {
	return models.SummaryRecord{
		Count:            2,
		TotalEnergyKWh:   4.2,
		AverageEnergyKWh: 2.1,
		Max:              models.ApplianceRecord{Name: "Fridge", EnergyKWh: 3.6},
		Min:              models.ApplianceRecord{Name: "Lamp", EnergyKWh: 0.6},
	}
}

func TestNewRequiresTarget(t *testing.T) {
	_, err := New(&config.Config{}, nil)
	assert.Error(t, err)
}

func TestNewValidatesHomeAssistant(t *testing.T) {
	tests := []struct {
		name string
		ha   config.HAConfig
	}{
		{"missing url", config.HAConfig{Enabled: true, Token: "t", EntityID: "sensor.x"}},
		{"missing token", config.HAConfig{Enabled: true, URL: "http://ha", EntityID: "sensor.x"}},
		{"missing entity", config.HAConfig{Enabled: true, URL: "http://ha", Token: "t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&config.Config{HomeAssistant: tt.ha}, nil)
			assert.Error(t, err)
		})
	}
}

func TestNewRequiresBroker(t *testing.T) {
	_, err := New(&config.Config{MQTT: config.MQTTConfig{Enabled: true}}, nil)
	assert.Error(t, err)
}

func TestPublishHomeAssistant(t *testing.T) {
	type captured struct {
		path, auth string
		state      HAState
	}
	got := make(chan captured, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var state HAState
		if err := json.Unmarshal(body, &state); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		got <- captured{path: r.URL.Path, auth: r.Header.Get("Authorization"), state: state}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	cfg := &config.Config{HomeAssistant: config.HAConfig{
		Enabled:  true,
		URL:      server.URL + "/",
		Token:    "secret",
		EntityID: "sensor.home_load",
	}}
	p, err := New(cfg, nil)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Publish(context.Background(), sampleSummary()))

	c := <-got
	assert.Equal(t, "/api/states/sensor.home_load", c.path)
	assert.Equal(t, "Bearer secret", c.auth)
	assert.Equal(t, "4.20", c.state.State)
	assert.Equal(t, "kWh", c.state.Attributes["unit_of_measurement"])
	assert.Equal(t, "Fridge", c.state.Attributes["max_appliance"])
	assert.Equal(t, "Lamp", c.state.Attributes["min_appliance"])
	assert.Equal(t, float64(2), c.state.Attributes["appliance_count"])
}

func TestPublishHomeAssistantError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("401: Unauthorized"))
	}))
	defer server.Close()

	cfg := &config.Config{HomeAssistant: config.HAConfig{Enabled: true, URL: server.URL, Token: "bad", EntityID: "sensor.x"}}
	p, err := New(cfg, nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), sampleSummary())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestAttributes(t *testing.T) {
	attrs := Attributes(sampleSummary())
	assert.Equal(t, 2, attrs["appliance_count"])
	assert.Equal(t, 2.1, attrs["average_energy_kwh"])
	assert.Equal(t, 3.6, attrs["max_energy_kwh"])
	assert.Equal(t, 0.6, attrs["min_energy_kwh"])
}

func TestMQTTMessages(t *testing.T) {
	p := &Publisher{topicPrefix: "energy", clientID: "house", decimals: 2}

	messages, err := p.mqttMessages(sampleSummary())
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, "homeassistant/sensor/house/daily_energy/config", messages[0].topic)
	var discovery discoveryConfig
	require.NoError(t, json.Unmarshal(messages[0].payload, &discovery))
	assert.Equal(t, "house_daily_energy", discovery.UniqueID)
	assert.Equal(t, "energy/daily_energy/state", discovery.StateTopic)
	assert.Equal(t, "energy/daily_energy/attributes", discovery.JSONAttributesTopic)
	assert.Equal(t, "kWh", discovery.UnitOfMeasurement)
	assert.Equal(t, "energy", discovery.DeviceClass)

	assert.Equal(t, "energy/daily_energy/attributes", messages[1].topic)
	var attrs map[string]interface{}
	require.NoError(t, json.Unmarshal(messages[1].payload, &attrs))
	assert.Equal(t, "Fridge", attrs["max_appliance"])
	assert.Equal(t, "Lamp", attrs["min_appliance"])
	assert.Equal(t, 2.0, attrs["appliance_count"])

	assert.Equal(t, "energy/daily_energy/state", messages[2].topic)
	assert.Equal(t, "4.20", string(messages[2].payload))
}

func TestMQTTMessagesFromConfig(t *testing.T) {
	cfg := &config.Config{MQTT: config.MQTTConfig{TopicPrefix: "home/load/"}}
	p := &Publisher{topicPrefix: cfg.GetTopicPrefix(), clientID: cfg.GetClientID(), decimals: 0}

	messages, err := p.mqttMessages(sampleSummary())
	require.NoError(t, err)
	assert.Equal(t, "homeassistant/sensor/homeload/daily_energy/config", messages[0].topic)
	assert.Equal(t, "home/load/daily_energy/state", messages[2].topic)
	assert.Equal(t, "4", string(messages[2].payload))
}
