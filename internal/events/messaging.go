package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange                 = "marketplace.events"
	NegotiationCompletedRoutingKey = "negotiation.completed.v1"
	ShipmentPlannedRoutingKey      = "shipment.planned.v1"

	ProducerName = "marketplace-service"
)

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
