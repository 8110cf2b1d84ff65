// Package mqtt publishes docking recommendations to a port-operations
// broker so downstream consumers (dashboards, the narrative service) can
// react without polling.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "berthwatch-" + uuid.NewString()[:8]
	}
	if c.Topic == "" {
		c.Topic = "berthwatch/recommendations"
	}
}

// Validate checks mandatory fields when publishing is enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("broker is required when mqtt is enabled")
	}
	return nil
}

// Publisher sends analysis results to the broker.
type Publisher interface {
	PublishAnalysis(res model.AnalysisResult) error
	Close()
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli   paho.Client
	topic string
	qos   byte
	log   logger.Logger
}

// NewPahoPublisher connects to the broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)
	cli := paho.NewClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", cfg.Broker)
	}
	if tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &PahoPublisher{
		cli:   cli,
		topic: cfg.Topic,
		qos:   cfg.QoS,
		log:   logger.New("mqtt-publisher"),
	}, nil
}

// PublishAnalysis serializes the result as JSON and publishes it.
func (p *PahoPublisher) PublishAnalysis(res model.AnalysisResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	tok := p.cli.Publish(p.topic, p.qos, false, payload)
	if !tok.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("publish timeout on %s", p.topic)
	}
	if tok.Error() != nil {
		return fmt.Errorf("publish: %w", tok.Error())
	}
	p.log.Debugw("analysis published", map[string]any{
		"topic":       p.topic,
		"analysis_id": res.AnalysisID,
	})
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() { p.cli.Disconnect(250) }

// NopPublisher discards everything; used when publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishAnalysis(model.AnalysisResult) error { return nil }
func (NopPublisher) Close()                                     {}
