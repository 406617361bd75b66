package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-insights/internal/config"
	"github.com/ukydev/fleet-insights/internal/reports"
)

// Publisher pushes report tables to an MQTT broker so external dashboards
// can subscribe to them.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// New creates a publisher connected to the configured broker.
func New(cfg config.MQTTConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT is not enabled in config")
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("fleet-insights")
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &Publisher{client: client, topicPrefix: cfg.GetTopicPrefix()}, nil
}

// PublishTable publishes one report table as retained JSON under
// <prefix>/<report name>.
func (p *Publisher) PublishTable(table reports.Table) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encoding report %s: %w", table.Name, err)
	}

	topic := fmt.Sprintf("%s/%s", p.topicPrefix, table.Name)
	token := p.client.Publish(topic, 1, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing report %s: %w", table.Name, token.Error())
	}

	log.WithFields(log.Fields{"topic": topic, "rows": len(table.Rows)}).Info("Published report")
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
