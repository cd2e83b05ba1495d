package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Actions carried by domain events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EventPublisher sends a message to the broker under a routing key.
// *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// DomainEvent is published after every successful write.
type DomainEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

// RoutingKey is "<entity>.<action>", e.g. "reservation.created".
func (e DomainEvent) RoutingKey() string {
	return e.Entity + "." + e.Action
}

type eventEmitter struct {
	publisher EventPublisher
	log       *slog.Logger
}

// emit publishes best-effort: failures are logged and never reach the caller.
func (e *eventEmitter) emit(ctx context.Context, entity, action, id string) {
	if e.publisher == nil {
		return
	}
	event := DomainEvent{Entity: entity, Action: action, ID: id, At: time.Now().UTC()}
	body, err := json.Marshal(event)
	if err != nil {
		e.log.WarnContext(ctx, "failed to marshal domain event", "routing_key", event.RoutingKey(), "error", err)
		return
	}
	if err := e.publisher.Publish(event.RoutingKey(), body); err != nil {
		e.log.WarnContext(ctx, "failed to publish domain event", "routing_key", event.RoutingKey(), "id", id, "error", err)
		return
	}
	e.log.DebugContext(ctx, "published domain event", "routing_key", event.RoutingKey(), "id", id)
}
