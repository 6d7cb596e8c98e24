package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// dispatcher invokes in-process handlers synchronously and mirrors every
// event onto a Redis pub/sub channel for external consumers. Redis being
// unreachable never fails the publishing request.
type dispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
	redis     *redis.Client
	channel   string
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. The Redis client may be nil, in which
// case events stay in-process only.
func NewDispatcher(client *redis.Client, channel string, logger *zap.Logger) Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dispatcher{
		listeners: make(map[EventType][]EventHandler),
		redis:     client,
		channel:   channel,
		logger:    logger,
	}
}

// Publish synchronously invokes handlers for the given event, then mirrors
// it to Redis.
func (d *dispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			d.logger.Warn("event handler failed",
				zap.String("event_type", string(event.Type)),
				zap.Error(err))
		}
	}

	if d.redis != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			d.logger.Warn("event marshal failed", zap.Error(err))
			return nil
		}
		if err := d.redis.Publish(ctx, d.channel, payload).Err(); err != nil {
			d.logger.Warn("event publish to redis failed",
				zap.String("channel", d.channel),
				zap.Error(err))
		}
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *dispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}
