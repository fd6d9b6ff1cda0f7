package queue_publisher

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    q "github.com/iliyamo/hotel-room-reservation/internal/queue"
)

func TestPublisherDisabledWithoutBrokerURL(t *testing.T) {
    t.Setenv("AMQP_URL", "")
    p := New("")
    assert.False(t, p.Enabled())

    // Publishing with no broker configured is a no-op, not an attempt
    // to reach a default localhost broker.
    err := p.PublishBookingEvent(context.Background(), q.BookingLifecycleEvent{
        EventID: "evt-1",
        Type:    q.EventBookingCreated,
    })
    require.NoError(t, err)
}

func TestPublisherFallsBackToEnvURL(t *testing.T) {
    t.Setenv("AMQP_URL", "amqp://broker.internal:5672/")
    assert.True(t, New("").Enabled())
    assert.True(t, New("amqp://explicit:5672/").Enabled())
}
