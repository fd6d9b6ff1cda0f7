// Package queue contains the background consumer that listens to the
// booking.lifecycle queue and writes structured logs to logs/booking.log.
package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "strings"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const lifecycleQueueName = "booking.lifecycle"

// StartLifecycleConsumer connects to RabbitMQ, declares the durable
// booking.lifecycle queue, and starts consuming messages.  Each event
// is appended to logs/booking.log in a single-line, human-friendly
// format.  The function runs a reconnect loop with capped backoff and
// never returns in normal operation; processing errors are logged and
// the offending message rejected so the server keeps running.  When
// no URL is configured the consumer is disabled and returns nil
// immediately rather than hammering a broker that was never deployed.
func StartLifecycleConsumer(url string) error {
    if url == "" {
        url = os.Getenv("AMQP_URL")
    }
    if url == "" {
        log.Printf("booking-consumer: no broker configured; consumer disabled")
        return nil
    }

    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn); err != nil {
            log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("booking-consumer: set QoS failed: %v", err)
    }

    _, err = ch.QueueDeclare(lifecycleQueueName, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(lifecycleQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body); err != nil {
            log.Printf("booking-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
    var ev BookingLifecycleEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "booking.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    types := make([]string, 0, len(ev.RoomTypeIDs))
    for _, id := range ev.RoomTypeIDs {
        types = append(types, fmt.Sprint(id))
    }
    customer := "guest"
    if ev.CustomerID != nil {
        customer = fmt.Sprint(*ev.CustomerID)
    }

    line := fmt.Sprintf("[%s] %s | event_id=%s | booking_id=%d | ref=%s | customer=%s | stay=%s..%s (%d nights) | room_types=[%s] | total=%d cents\n",
        ev.OccurredAt, ev.Type, ev.EventID, ev.BookingID, ev.MerchantRef, customer,
        ev.CheckIn, ev.CheckOut, ev.Nights, strings.Join(types, ","), ev.TotalAmountCents)

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
