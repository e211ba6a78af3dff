// Package queue_publisher provides functions to publish domain events to
// RabbitMQ.  Errors are logged and returned so callers can ignore failures
// without interrupting the main request flow: a booking confirmation must
// never fail because the broker is down.
package queue_publisher

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"

    q "github.com/adplaze/ooh-marketplace/internal/queue"
)

// PublishBookingConfirmed publishes a BookingConfirmedEvent to the
// "booking.confirmed" queue.  Messages are marked persistent so they
// survive broker restarts.
func PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error {
    conn, err := amqp.Dial(q.BrokerURL())
    if err != nil {
        logrus.Errorf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        logrus.Errorf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        "booking.confirmed", // name
        true,                // durable
        false,               // autoDelete
        false,               // exclusive
        false,               // noWait
        nil,                 // args
    ); err != nil {
        logrus.Errorf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        logrus.Errorf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",                  // default exchange
        "booking.confirmed", // routing key = queue name
        false,               // mandatory
        false,               // immediate
        pub,
    ); err != nil {
        logrus.Errorf("rabbitmq: publish failed: %v", err)
        return err
    }

    return nil
}
