package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/jgoulah/homeload/internal/config"
	"github.com/jgoulah/homeload/pkg/models"
)

const discoveryPrefix = "homeassistant"

// Publisher sends analysis summaries to Home Assistant over MQTT and/or the HTTP API
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	clientID    string
	haConfig    config.HAConfig
	httpClient  *http.Client
	decimals    int
	logger      *zap.Logger
}

// New creates a new publisher from the config. At least one target must be enabled.
func New(cfg *config.Config, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	haCfg := cfg.HomeAssistant
	mqttCfg := cfg.MQTT

	if !haCfg.Enabled && !mqttCfg.Enabled {
		return nil, fmt.Errorf("neither MQTT nor Home Assistant publishing is enabled in config")
	}

	// Validate HA config if enabled
	if haCfg.Enabled {
		if haCfg.URL == "" {
			return nil, fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if haCfg.Token == "" {
			return nil, fmt.Errorf("Home Assistant token is required when enabled")
		}
		if haCfg.EntityID == "" {
			return nil, fmt.Errorf("Home Assistant entity_id is required when enabled")
		}
	}

	p := &Publisher{
		topicPrefix: cfg.GetTopicPrefix(),
		clientID:    cfg.GetClientID(),
		haConfig:    haCfg,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		decimals:    cfg.GetDecimals(),
		logger:      logger,
	}

	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		opts.SetClientID(p.clientID)
		opts.SetAutoReconnect(true)
		opts.SetConnectRetry(false)
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		p.client = mqtt.NewClient(opts)
		if token := p.client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
		logger.Debug("connected to MQTT broker", zap.String("broker", mqttCfg.Broker))
	}

	return p, nil
}

// HAState matches the body of Home Assistant's POST /api/states/<entity_id>
type HAState struct {
	State      string                 `json:"state"`
	Attributes map[string]interface{} `json:"attributes"`
}

// discoveryConfig is the MQTT discovery payload for the estimate sensor
type discoveryConfig struct {
	Name                string `json:"name"`
	UniqueID            string `json:"unique_id"`
	StateTopic          string `json:"state_topic"`
	JSONAttributesTopic string `json:"json_attributes_topic"`
	UnitOfMeasurement   string `json:"unit_of_measurement"`
	DeviceClass         string `json:"device_class"`
	StateClass          string `json:"state_class"`
}

// Publish sends the summary to every enabled target
func (p *Publisher) Publish(ctx context.Context, summary models.SummaryRecord) error {
	if p.client != nil {
		if err := p.publishMQTT(summary); err != nil {
			return fmt.Errorf("publishing to MQTT: %w", err)
		}
	}
	if p.haConfig.Enabled {
		if err := p.publishHA(ctx, summary); err != nil {
			return fmt.Errorf("publishing to Home Assistant: %w", err)
		}
	}
	return nil
}

func (p *Publisher) stateTopic() string {
	return p.topicPrefix + "/daily_energy/state"
}

func (p *Publisher) attributesTopic() string {
	return p.topicPrefix + "/daily_energy/attributes"
}

// mqttMessage is one retained message sent to the broker
type mqttMessage struct {
	topic   string
	payload []byte
}

// mqttMessages builds the discovery config, attributes and state messages for a summary
func (p *Publisher) mqttMessages(summary models.SummaryRecord) ([]mqttMessage, error) {
	discovery, err := json.Marshal(discoveryConfig{
		Name:                "Household daily energy estimate",
		UniqueID:            p.clientID + "_daily_energy",
		StateTopic:          p.stateTopic(),
		JSONAttributesTopic: p.attributesTopic(),
		UnitOfMeasurement:   "kWh",
		DeviceClass:         "energy",
		StateClass:          "measurement",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding discovery config: %w", err)
	}
	attributes, err := json.Marshal(Attributes(summary))
	if err != nil {
		return nil, fmt.Errorf("encoding attributes: %w", err)
	}

	return []mqttMessage{
		{fmt.Sprintf("%s/sensor/%s/daily_energy/config", discoveryPrefix, p.clientID), discovery},
		{p.attributesTopic(), attributes},
		{p.stateTopic(), []byte(p.formatKWh(summary.TotalEnergyKWh))},
	}, nil
}

func (p *Publisher) publishMQTT(summary models.SummaryRecord) error {
	messages, err := p.mqttMessages(summary)
	if err != nil {
		return err
	}
	for _, m := range messages {
		token := p.client.Publish(m.topic, 1, true, m.payload)
		if !token.WaitTimeout(10 * time.Second) {
			return fmt.Errorf("timed out publishing to %s", m.topic)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("publishing to %s: %w", m.topic, err)
		}
		p.logger.Debug("published", zap.String("topic", m.topic), zap.Int("bytes", len(m.payload)))
	}
	return nil
}

func (p *Publisher) publishHA(ctx context.Context, summary models.SummaryRecord) error {
	apiURL := fmt.Sprintf("%s/api/states/%s", strings.TrimSuffix(p.haConfig.URL, "/"), p.haConfig.EntityID)

	attrs := Attributes(summary)
	attrs["unit_of_measurement"] = "kWh"
	attrs["device_class"] = "energy"
	attrs["friendly_name"] = "Household daily energy estimate"

	body, err := json.Marshal(HAState{
		State:      p.formatKWh(summary.TotalEnergyKWh),
		Attributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.haConfig.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	// 200 updates an existing entity, 201 creates it
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	p.logger.Debug("updated Home Assistant state",
		zap.String("entity_id", p.haConfig.EntityID),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

// Attributes flattens a summary into sensor attributes
func Attributes(summary models.SummaryRecord) map[string]interface{} {
	return map[string]interface{}{
		"appliance_count":    summary.Count,
		"average_energy_kwh": summary.AverageEnergyKWh,
		"max_appliance":      summary.Max.Name,
		"max_energy_kwh":     summary.Max.EnergyKWh,
		"min_appliance":      summary.Min.Name,
		"min_energy_kwh":     summary.Min.EnergyKWh,
	}
}

func (p *Publisher) formatKWh(v float64) string {
	return strconv.FormatFloat(v, 'f', p.decimals, 64)
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
