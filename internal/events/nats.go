package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

const subjectPrefix = "tableside.orders."

// msgPublisher is the subset of *nats.Conn used here.
type msgPublisher interface {
	Publish(subj string, data []byte) error
}

type NATSPublisher struct {
	conn  msgPublisher
	close func()
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("tableside-api"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, close: conn.Close}, nil
}

// Subject returns the NATS subject for an event type, e.g. tableside.orders.order.paid.
func Subject(eventType string) string {
	return subjectPrefix + eventType
}

func (p *NATSPublisher) Publish(_ context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.conn.Publish(Subject(ev.Type), data)
}

func (p *NATSPublisher) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}
