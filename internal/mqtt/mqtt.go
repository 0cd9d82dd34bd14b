package mqtt

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	json "github.com/goccy/go-json"

	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
)

// Publisher announces rendered weather snapshots as retained MQTT messages.
type Publisher struct {
	client mqtt.Client
	prefix string
}

// Snapshot is the retained payload published for one location.
type Snapshot struct {
	Location string           `json:"location"`
	Weather  models.ViewModel `json:"weather"`
	At       time.Time        `json:"at"`
}

func Connect(brokerURL, clientID, topicPrefix string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	url := strings.TrimSpace(brokerURL)
	if url == "" {
		url = "mqtt://mosquitto:1883"
	}
	if strings.HasPrefix(url, "mqtt://") {
		url = "tcp://" + strings.TrimPrefix(url, "mqtt://")
	}
	opts.AddBroker(url)
	if strings.TrimSpace(clientID) == "" {
		clientID = "weather-widget-" + time.Now().Format("150405.000")
	}
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		slog.Warn("mqtt connection lost", "error", err)
	}
	opts.OnConnect = func(_ mqtt.Client) {
		slog.Info("mqtt connected", "broker", url)
	}

	c := mqtt.NewClient(opts)
	tok := c.Connect()
	if ok := tok.WaitTimeout(15 * time.Second); !ok {
		return nil, fmt.Errorf("mqtt connect to %s timed out", url)
	}
	if err := tok.Error(); err != nil {
		return nil, err
	}
	return NewPublisher(c, topicPrefix), nil
}

func NewPublisher(c mqtt.Client, topicPrefix string) *Publisher {
	return &Publisher{client: c, prefix: strings.TrimSuffix(strings.TrimSpace(topicPrefix), "/")}
}

// Announce publishes vm as a retained QoS 1 message on the topic for its
// resolved address.
func (p *Publisher) Announce(ctx context.Context, vm models.ViewModel) error {
	payload, err := json.Marshal(Snapshot{Location: vm.ResolvedAddress, Weather: vm, At: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode weather snapshot: %w", err)
	}
	topic := Topic(p.prefix, vm.ResolvedAddress)
	tok := p.client.Publish(topic, 1, true, payload)
	select {
	case <-tok.Done():
		if err := tok.Error(); err != nil {
			return fmt.Errorf("publish %s: %w", topic, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(1000)
}

// Topic returns prefix/<slug> where slug is the lowercased address with every
// run of non-alphanumeric characters collapsed to a single dash.
func Topic(prefix, address string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(address) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "unknown"
	}
	if prefix == "" {
		return slug
	}
	return prefix + "/" + slug
}
