// Package events carries order state changes out of the request path:
// to the per-table WebSocket rooms and, when configured, to NATS.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is the payload delivered to table clients and published to NATS.
type Event struct {
	Type          string     `json:"type"`
	TableID       uuid.UUID  `json:"tableId"`
	OrderID       *uuid.UUID `json:"orderId,omitempty"`
	OrderGroupID  *uuid.UUID `json:"orderGroupId,omitempty"`
	Status        string     `json:"status,omitempty"`
	PaymentStatus string     `json:"paymentStatus,omitempty"`
	At            time.Time  `json:"at"`
}

// Publisher delivers one event. Implementations must not block for long;
// callers publish after commit on the request goroutine.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Fanout publishes to every sink and logs failures instead of returning them.
type Fanout struct {
	sinks  []Publisher
	logger *zap.Logger
}

func NewFanout(logger *zap.Logger, sinks ...Publisher) *Fanout {
	return &Fanout{sinks: sinks, logger: logger}
}

func (f *Fanout) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	for _, s := range f.sinks {
		if err := s.Publish(ctx, ev); err != nil {
			f.logger.Warn("publish order event",
				zap.String("type", ev.Type),
				zap.String("table_id", ev.TableID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
