// Package events announces listing and inquiry changes to other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectPropertyCreated = "property.created"
	SubjectPropertyUpdated = "property.updated"
	SubjectPropertyDeleted = "property.deleted"
	SubjectInquiryCreated  = "inquiry.created"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

// NATSPublisher sends JSON-encoded payloads over a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string, logger *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("estate-be"),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}
	return p.conn.Publish(subject, data)
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	p.conn.Drain()
}

// Logged wraps a publisher so that failures are logged instead of returned.
type Logged struct {
	next   Publisher
	logger *zap.Logger
}

func NewLogged(next Publisher, logger *zap.Logger) *Logged {
	return &Logged{next: next, logger: logger}
}

func (l *Logged) Publish(ctx context.Context, subject string, payload any) error {
	if err := l.next.Publish(ctx, subject, payload); err != nil {
		l.logger.Warn("publish event failed", zap.String("subject", subject), zap.Error(err))
	}
	return nil
}
