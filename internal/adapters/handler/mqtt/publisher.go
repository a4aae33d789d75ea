package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
)

const publishTimeout = 5 * time.Second

var errNotConnected = errors.New("mqtt: not connected")

// Publisher mirrors batch progress onto MQTT topics of the form
// <prefix>/batch/<batch_id>/progress.
type Publisher struct {
	client mqtt.Client
	prefix string
}

// NewPublisher connects to the broker.
func NewPublisher(brokerURL, prefix string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(fmt.Sprintf("bioportal-%d", time.Now().UnixNano()))
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	logger.Info("Connected to MQTT broker", "broker", brokerURL)
	return newPublisher(client, prefix), nil
}

func newPublisher(client mqtt.Client, prefix string) *Publisher {
	if prefix == "" {
		prefix = "bioportal"
	}
	return &Publisher{client: client, prefix: prefix}
}

func (p *Publisher) Topic(batchID string) string {
	return fmt.Sprintf("%s/batch/%s/progress", p.prefix, batchID)
}

func (p *Publisher) PublishProgress(ctx context.Context, event domain.ProgressEvent) error {
	payload, err := json.Marshal(map[string]interface{}{
		"type":    "batch_progress",
		"payload": event,
	})
	if err != nil {
		return err
	}

	token := p.client.Publish(p.Topic(event.BatchID), 0, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("mqtt publish to %s timed out", p.Topic(event.BatchID))
	}
}

func (p *Publisher) Name() string {
	return "mqtt"
}

func (p *Publisher) Ping(_ context.Context) error {
	if !p.client.IsConnectionOpen() {
		return errNotConnected
	}
	return nil
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
