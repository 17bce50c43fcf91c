package mq

import (
	"context"
	"errors"
	"fmt"

	"github.com/usersdb/usersdb/config"
)

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend is a broker connection. Publish returns the broker-assigned
// message id.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// ErrDisabled is returned by NewBackend when no broker is configured.
var ErrDisabled = errors.New("mq: no backend configured")

// NewBackend constructs the backend named by cfg.Backend.
func NewBackend(ctx context.Context, cfg config.MQConfig) (Backend, error) {
	switch cfg.Backend {
	case "":
		return nil, ErrDisabled
	case "rabbitmq":
		return NewRabbitMQClient(cfg.RabbitMQ)
	case "pubsub":
		return NewPubSubClient(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("mq: unknown backend %q", cfg.Backend)
	}
}
