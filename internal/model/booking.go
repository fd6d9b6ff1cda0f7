package model

import "time"

// BookingStatus is the lifecycle state of a booking.  Transitions are
// restricted: see CanTransitionTo.  Only paid and completed bookings
// count their reservation items against room-type inventory.
type BookingStatus string

const (
    BookingPending   BookingStatus = "pending"   // created, awaiting payment
    BookingPaid      BookingStatus = "paid"      // payment confirmed, occupies inventory
    BookingCancelled BookingStatus = "cancelled" // terminal
    BookingCompleted BookingStatus = "completed" // stay finished, terminal
)

// PaymentStatus tracks the payment leg independently of the booking
// status.  A failed payment leaves the booking pending so the same
// merchant reference can be retried.
type PaymentStatus string

const (
    PaymentPending    PaymentStatus = "pending"
    PaymentProcessing PaymentStatus = "processing"
    PaymentSuccess    PaymentStatus = "success"
    PaymentFailed     PaymentStatus = "failed"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
    switch s {
    case BookingPending, BookingPaid, BookingCancelled, BookingCompleted:
        return true
    }
    return false
}

// Terminal reports whether no further transition is allowed from s.
func (s BookingStatus) Terminal() bool {
    return s == BookingCancelled || s == BookingCompleted
}

// Occupying reports whether a booking in status s counts its items
// against room-type inventory.
func (s BookingStatus) Occupying() bool {
    return s == BookingPaid || s == BookingCompleted
}

// CanTransitionTo reports whether the state machine permits moving
// from s to next.  Allowed edges:
//
//  pending → paid       (payment success callback)
//  pending → cancelled  (customer or operator)
//  paid    → cancelled  (customer or operator)
//  paid    → completed  (stay end, operator)
//
// Everything else, including any edge out of a terminal state and
// self-transitions, is rejected.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
    switch s {
    case BookingPending:
        return next == BookingPaid || next == BookingCancelled
    case BookingPaid:
        return next == BookingCancelled || next == BookingCompleted
    }
    return false
}

// Valid reports whether p is a known payment status.
func (p PaymentStatus) Valid() bool {
    switch p {
    case PaymentPending, PaymentProcessing, PaymentSuccess, PaymentFailed:
        return true
    }
    return false
}

// Booking is the aggregate root of a reservation.  It owns one
// ReservationItem per booked room slot; booking and items are created
// together in a single transaction and the items are deleted by
// cascade when the booking is deleted.  The stay interval is half
// open: the guest occupies the nights in [CheckIn, CheckOut).
//
// Fields:
//  ID            – primary key identifier.
//  CustomerID    – owning customer, nil for guest checkout.
//  GuestName     – contact name for the stay.
//  GuestEmail    – contact email.
//  GuestPhone    – contact phone (optional).
//  CheckIn       – first night of the stay (date, UTC midnight).
//  CheckOut      – day of departure, exclusive.
//  Nights        – number of nights, snapshot of daysBetween(CheckIn, CheckOut).
//  Status        – lifecycle state, see BookingStatus.
//  PaymentStatus – payment leg state, see PaymentStatus.
//  MerchantRef   – globally unique payment correlation reference.
//  PaymentMethod – payment method chosen at booking time.
//  TotalAmount   – sum of item total prices, in cents.
//  Items         – reservation items owned by this booking.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
    ID            uint64            // bookings.id
    CustomerID    *uint64           // bookings.customer_id (nullable)
    GuestName     string            // bookings.guest_name
    GuestEmail    string            // bookings.guest_email
    GuestPhone    string            // bookings.guest_phone
    CheckIn       time.Time         // bookings.check_in (DATE)
    CheckOut      time.Time         // bookings.check_out (DATE)
    Nights        int               // bookings.nights
    Status        BookingStatus     // bookings.status
    PaymentStatus PaymentStatus     // bookings.payment_status
    MerchantRef   string            // bookings.merchant_ref (unique)
    PaymentMethod string            // bookings.payment_method
    TotalAmount   int64             // bookings.total_amount_cents
    Items         []ReservationItem // child reservation_items rows
    CreatedAt     time.Time         // bookings.created_at
    UpdatedAt     time.Time         // bookings.updated_at
}
