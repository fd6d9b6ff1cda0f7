// Package queue defines message payloads exchanged over the message broker.
package queue

import (
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// Lifecycle event types published on the booking.lifecycle queue.
const (
    EventBookingCreated   = "booking.created"
    EventBookingPaid      = "booking.paid"
    EventBookingCancelled = "booking.cancelled"
    EventBookingCompleted = "booking.completed"
)

// BookingLifecycleEvent is published whenever a booking is created or
// changes state.  It carries enough information for downstream
// consumers to log, notify or feed analytics without querying the
// primary database.  EventID deduplicates redeliveries.
type BookingLifecycleEvent struct {
    EventID          string   `json:"event_id"`
    Type             string   `json:"type"`
    BookingID        uint64   `json:"booking_id"`
    MerchantRef      string   `json:"merchant_ref"`
    CustomerID       *uint64  `json:"customer_id,omitempty"`
    GuestName        string   `json:"guest_name"`
    CheckIn          string   `json:"check_in"`
    CheckOut         string   `json:"check_out"`
    Nights           int      `json:"nights"`
    RoomTypeIDs      []uint64 `json:"room_type_ids"`
    TotalAmountCents int64    `json:"total_amount_cents"`
    OccurredAt       string   `json:"occurred_at"`
}

// NewBookingEvent builds a lifecycle event from a booking aggregate.
func NewBookingEvent(eventType string, b *model.Booking) BookingLifecycleEvent {
    typeIDs := make([]uint64, 0, len(b.Items))
    for _, it := range b.Items {
        typeIDs = append(typeIDs, it.RoomTypeID)
    }
    return BookingLifecycleEvent{
        EventID:          uuid.NewString(),
        Type:             eventType,
        BookingID:        b.ID,
        MerchantRef:      b.MerchantRef,
        CustomerID:       b.CustomerID,
        GuestName:        b.GuestName,
        CheckIn:          b.CheckIn.Format("2006-01-02"),
        CheckOut:         b.CheckOut.Format("2006-01-02"),
        Nights:           b.Nights,
        RoomTypeIDs:      typeIDs,
        TotalAmountCents: b.TotalAmount,
        OccurredAt:       time.Now().UTC().Format(time.RFC3339),
    }
}
