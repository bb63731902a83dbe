// Package events carries entity change notifications out of the service to
// dashboard WebSocket clients and the message broker.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/fleetops/driver-service/pkg/logger"
	"github.com/fleetops/driver-service/pkg/websocket"
)

// Type names a change event. The value doubles as the broker routing key.
type Type string

const (
	DriverCreated Type = "driver.created"
	DriverUpdated Type = "driver.updated"
	DriverDeleted Type = "driver.deleted"

	ScheduleCreated Type = "schedule.created"
	ScheduleUpdated Type = "schedule.updated"
	ScheduleDeleted Type = "schedule.deleted"

	FormCreated Type = "form.created"
	FormUpdated Type = "form.updated"
	FormDeleted Type = "form.deleted"
)

// Entity returns the entity part of the type ("driver", "schedule", "form").
func (t Type) Entity() string {
	entity, _, _ := strings.Cut(string(t), ".")
	return entity
}

// Event describes one change to a stored entity.
type Event struct {
	Type       Type        `json:"type"`
	Entity     string      `json:"entity"`
	EntityID   int64       `json:"entity_id"`
	DriverID   int64       `json:"driver_id"`
	Data       interface{} `json:"data,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// New builds an event stamped with the current time.
func New(t Type, entityID, driverID int64, data interface{}) Event {
	return Event{
		Type:       t,
		Entity:     t.Entity(),
		EntityID:   entityID,
		DriverID:   driverID,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher accepts change events. Publishing never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Sink is one destination of a Fanout.
type Sink interface {
	Name() string
	Send(ctx context.Context, e Event) error
}

// Fanout delivers every event to all sinks and logs the ones that fail.
type Fanout struct {
	sinks  []Sink
	logger *logger.Logger
}

// NewFanout creates a publisher over sinks. Nil sinks are skipped.
func NewFanout(log *logger.Logger, sinks ...Sink) *Fanout {
	f := &Fanout{logger: log}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Publish implements Publisher
func (f *Fanout) Publish(ctx context.Context, e Event) {
	for _, s := range f.sinks {
		if err := s.Send(ctx, e); err != nil {
			f.logger.Warn("Failed to publish event",
				logger.String("sink", s.Name()),
				logger.String("type", string(e.Type)),
				logger.Int64("entity_id", e.EntityID),
				logger.Err(err),
			)
		}
	}
}

// Discard drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) {}

// Broadcaster is the part of the WebSocket hub the hub sink needs.
type Broadcaster interface {
	Broadcast(frame []byte, to websocket.Audience) int
}

// DashboardClients is the user type that receives every event.
const DashboardClients = "dashboard"

// HubSink pushes each event, encoded as JSON, to dashboard clients and to
// clients following the event's driver. A client in both groups gets it once.
type HubSink struct {
	hub Broadcaster
}

// NewHubSink wraps a hub.
func NewHubSink(hub Broadcaster) *HubSink {
	return &HubSink{hub: hub}
}

// Name implements Sink
func (s *HubSink) Name() string { return "websocket" }

// Send implements Sink
func (s *HubSink) Send(_ context.Context, e Event) error {
	frame, err := json.Marshal(e)
	if err != nil {
		return err
	}
	s.hub.Broadcast(frame, websocket.Audience{UserType: DashboardClients, DriverID: e.DriverID})
	return nil
}

// JSONPublisher is the part of the message broker the broker sink needs.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, msg any) error
}

// BrokerSink publishes events with the event type as routing key.
type BrokerSink struct {
	broker JSONPublisher
}

// NewBrokerSink wraps a broker.
func NewBrokerSink(broker JSONPublisher) *BrokerSink {
	return &BrokerSink{broker: broker}
}

// Name implements Sink
func (s *BrokerSink) Name() string { return "rabbitmq" }

// Send implements Sink
func (s *BrokerSink) Send(ctx context.Context, e Event) error {
	return s.broker.PublishJSON(ctx, string(e.Type), e)
}
