// Package queue_publisher publishes booking lifecycle events to
// RabbitMQ.  Events are emitted after the database transaction has
// committed, so publishing is best effort: errors are logged and
// returned, and callers ignore them rather than failing a booking
// that is already durable.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "os"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/hotel-room-reservation/internal/queue"
)

const lifecycleQueueName = "booking.lifecycle"

// Publisher emits lifecycle events to the configured broker.  A zero
// URL disables publishing entirely, which keeps local development and
// tests independent of a running broker.
type Publisher struct {
    url string
}

// New returns a Publisher for the given AMQP URL.  An empty url falls
// back to the AMQP_URL env var; when neither is set the publisher is
// disabled.
func New(url string) *Publisher {
    if url == "" {
        url = os.Getenv("AMQP_URL")
    }
    return &Publisher{url: url}
}

// Enabled reports whether a broker URL is configured.
func (p *Publisher) Enabled() bool { return p.url != "" }

// PublishBookingEvent publishes a lifecycle event to the durable
// booking.lifecycle queue.  Messages are persistent so they survive a
// broker restart.  The function never panics; any error is logged and
// returned so the caller can choose to ignore it.
func (p *Publisher) PublishBookingEvent(ctx context.Context, event q.BookingLifecycleEvent) error {
    if p.url == "" {
        return nil
    }
    conn, err := amqp.Dial(p.url)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        lifecycleQueueName, // name
        true,               // durable
        false,              // autoDelete
        false,              // exclusive
        false,              // noWait
        nil,                // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        MessageId:    event.EventID,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",                 // default exchange
        lifecycleQueueName, // routing key = queue name
        false,              // mandatory
        false,              // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }

    return nil
}
