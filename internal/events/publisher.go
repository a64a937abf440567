package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Zchasse63/vercelpickle/internal/sequence"
)

// Publisher emits enveloped marketplace events to the topic exchange with
// producer-side sequence numbers per partition key.
type Publisher struct {
	ch        *amqp.Channel
	sequences sequence.Repository
}

func NewPublisher(conn *amqp.Connection, sequences sequence.Repository) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{ch: ch, sequences: sequences}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishNegotiationCompleted(ctx context.Context, ev NegotiationCompleted, meta EnvelopeMetadata) error {
	env, err := p.envelope(ctx, NegotiationCompletedName, NegotiationCompletedVersion,
		NegotiationCompletedSchema, ev.NegotiationID, meta, ev)
	if err != nil {
		return err
	}
	return publishJSON(ctx, p.ch, NegotiationCompletedRoutingKey, env)
}

func (p *Publisher) PublishShipmentPlanned(ctx context.Context, ev ShipmentPlanned, meta EnvelopeMetadata) error {
	env, err := p.envelope(ctx, ShipmentPlannedName, ShipmentPlannedVersion,
		ShipmentPlannedSchema, ev.OrderID, meta, ev)
	if err != nil {
		return err
	}
	return publishJSON(ctx, p.ch, ShipmentPlannedRoutingKey, env)
}

func (p *Publisher) envelope(ctx context.Context, name string, version int, schema, partitionKey string, meta EnvelopeMetadata, payload any) (EventEnvelope[any], error) {
	env := EventEnvelope[any]{
		EventName:     name,
		EventVersion:  version,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      ProducerName,
		PartitionKey:  partitionKey,
		OccurredAt:    time.Now().UTC(),
		Schema:        schema,
		Payload:       payload,
	}

	if p.sequences != nil {
		seq, err := p.sequences.NextSequence(ctx, partitionKey)
		if err != nil {
			return env, fmt.Errorf("next sequence: %w", err)
		}
		env.Sequence = &seq
	}

	return env, nil
}

func publishJSON(ctx context.Context, ch *amqp.Channel, routingKey string, env EventEnvelope[any]) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", env.EventName, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// MustDialRabbit connects to RabbitMQ or panics. Mirrors how the service is
// expected to fail fast at startup when the broker is unreachable.
func MustDialRabbit(url string) *amqp.Connection {
	conn, err := amqp.Dial(url)
	if err != nil {
		panic(fmt.Sprintf("rabbitmq dial: %v", err))
	}
	return conn
}
