package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultTopic is where GPS producers publish fixes.
const DefaultTopic = "inertial/gps"

const connectTimeout = 5 * time.Second

// ClientFactory builds an MQTT client from options.
type ClientFactory func(opts *mqtt.ClientOptions) mqtt.Client

// DefaultClientFactory creates real paho clients.
var DefaultClientFactory ClientFactory = mqtt.NewClient

// mqttFix is the payload published by GPS producers.
type mqttFix struct {
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Alt      float64  `json:"alt"`
	Validity string   `json:"validity"`
}

// MQTT keeps the latest fix published on a broker topic.
type MQTT struct {
	broker  string
	topic   string
	factory ClientFactory

	mu     sync.Mutex
	client mqtt.Client
	last   Fix
	have   bool
}

var _ Source = (*MQTT)(nil)

// NewMQTT returns a source subscribed to topic on broker once Connect succeeds.
func NewMQTT(broker, topic string) *MQTT {
	if topic == "" {
		topic = DefaultTopic
	}
	return &MQTT{broker: brokerURL(broker), topic: topic, factory: DefaultClientFactory}
}

func brokerURL(broker string) string {
	broker = strings.TrimSpace(broker)
	switch {
	case strings.HasPrefix(broker, "mqtt://"):
		return "tcp://" + strings.TrimPrefix(broker, "mqtt://")
	case strings.HasPrefix(broker, "mqtts://"):
		return "ssl://" + strings.TrimPrefix(broker, "mqtts://")
	case strings.Contains(broker, "://"):
		return broker
	default:
		return "tcp://" + broker
	}
}

// Connect dials the broker. The subscription is renewed on every reconnect.
func (m *MQTT) Connect() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(m.broker)
	opts.SetClientID("vie-" + uuid.New().String()[:8])
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(false)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = func(c mqtt.Client) {
		token := c.Subscribe(m.topic, 0, m.handle)
		if token.Wait() && token.Error() != nil {
			log.Error().Str("component", "mqtt").Err(token.Error()).Str("topic", m.topic).Msg("subscribe failed")
			return
		}
		log.Info().Str("component", "mqtt").Str("topic", m.topic).Msg("subscribed")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Str("component", "mqtt").Err(err).Msg("connection lost")
		m.mu.Lock()
		m.have = false
		m.mu.Unlock()
	}

	client := m.factory(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		client.Disconnect(0)
		return errors.New("mqtt: connection timeout")
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return fmt.Errorf("mqtt: connect %s: %w", m.broker, err)
	}

	m.mu.Lock()
	m.client = client
	m.mu.Unlock()
	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.mu.Unlock()
	if client != nil {
		client.Disconnect(250)
	}
}

func (m *MQTT) handle(_ mqtt.Client, msg mqtt.Message) {
	var payload mqttFix
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		log.Debug().Str("component", "mqtt").Err(err).Msg("ignoring malformed fix")
		return
	}
	if payload.Lat == nil || payload.Lon == nil {
		return
	}
	fix := Fix{Lat: *payload.Lat, Lng: *payload.Lon, Alt: payload.Alt}

	m.mu.Lock()
	defer m.mu.Unlock()
	if (payload.Validity != "" && payload.Validity != "A") || !fix.valid() {
		m.have = false
		return
	}
	m.last = fix
	m.have = true
}

// Locate implements Source.
func (m *MQTT) Locate(context.Context) (Fix, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.have {
		return Fix{}, ErrNoFix
	}
	return m.last, nil
}
