package booking

import (
    "context"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// ChangeStatus moves a booking along the lifecycle state machine.
// The booking row is locked for the duration so a concurrent callback
// or second cancel observes the committed state, not a stale read.
// Non-operators can only act on their own bookings; a foreign id
// reports not found.  Moving into paid also settles the payment leg.
func (e *Engine) ChangeStatus(ctx context.Context, principal model.Principal, id uint64, next model.BookingStatus) (*model.Booking, error) {
    if !next.Valid() {
        ve := newValidationError()
        ve.add("status", "unknown status")
        return nil, ve
    }
    tx, err := e.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    b, err := e.bookings.LockTx(ctx, tx, id)
    if err != nil {
        return nil, mapContention(err)
    }
    if !e.visibleTo(principal, b) {
        return nil, repository.ErrBookingNotFound
    }
    if !b.Status.CanTransitionTo(next) {
        return nil, ErrStatusConflict
    }
    ok, err := e.bookings.UpdateStatusTx(ctx, tx, id, b.Status, next)
    if err != nil {
        return nil, mapContention(err)
    }
    if !ok {
        // Raced past the lock somehow; the guard caught it.
        return nil, ErrStatusConflict
    }
    if next == model.BookingPaid {
        if err := e.bookings.SetPaymentStatusTx(ctx, tx, id, model.PaymentSuccess); err != nil {
            return nil, mapContention(err)
        }
    }
    if err := tx.Commit(); err != nil {
        return nil, mapContention(err)
    }
    committed = true
    return e.bookings.GetByID(ctx, id)
}

// PaymentCallback is a settlement notification from the payment
// provider.
type PaymentCallback struct {
    Status         model.PaymentStatus
    TransactionRef string
    PaidAt         *time.Time
}

// ApplyPaymentCallback records a provider notification and advances
// the booking accordingly.  The transaction reference deduplicates
// replays: a reference seen before returns applied=false and changes
// nothing.  A success callback on a pending booking confirms it; a
// failure leaves the booking pending for another payment attempt.
// The returned booking reflects the state after the callback.
func (e *Engine) ApplyPaymentCallback(ctx context.Context, id uint64, cb PaymentCallback) (*model.Booking, bool, error) {
    ve := newValidationError()
    if cb.TransactionRef == "" {
        ve.add("transaction_ref", "is required")
    }
    switch cb.Status {
    case model.PaymentProcessing, model.PaymentSuccess, model.PaymentFailed:
    default:
        ve.add("status", "must be processing, success or failed")
    }
    if !ve.empty() {
        return nil, false, ve
    }

    tx, err := e.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, false, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    b, err := e.bookings.LockTx(ctx, tx, id)
    if err != nil {
        return nil, false, mapContention(err)
    }
    fresh, err := e.payments.RecordTx(ctx, tx, id, cb.TransactionRef, string(cb.Status), cb.PaidAt)
    if err != nil {
        return nil, false, mapContention(err)
    }
    applied := fresh
    if fresh {
        if err := e.bookings.SetPaymentStatusTx(ctx, tx, id, cb.Status); err != nil {
            return nil, false, mapContention(err)
        }
        if cb.Status == model.PaymentSuccess && b.Status == model.BookingPending {
            ok, err := e.bookings.UpdateStatusTx(ctx, tx, id, model.BookingPending, model.BookingPaid)
            if err != nil {
                return nil, false, mapContention(err)
            }
            // The row is locked, so the guard can only miss if the
            // in-memory status drifted from the stored one.
            if !ok {
                return nil, false, ErrStatusConflict
            }
        }
    }
    // A replayed callback commits too: the first delivery already
    // settled everything, so there is nothing to undo.
    if err := tx.Commit(); err != nil {
        return nil, false, mapContention(err)
    }
    committed = true
    b, err = e.bookings.GetByID(ctx, id)
    if err != nil {
        return nil, applied, err
    }
    return b, applied, nil
}

// DeleteBooking removes a booking and, by cascade, its reservation
// items.  Non-operators can only delete their own bookings; a miss in
// either dimension reports not found.
func (e *Engine) DeleteBooking(ctx context.Context, principal model.Principal, id uint64) error {
    var owner *uint64
    if !principal.Operator() {
        if principal.Anonymous() {
            return repository.ErrBookingNotFound
        }
        uid := principal.UserID
        owner = &uid
    }
    ok, err := e.bookings.Delete(ctx, id, owner)
    if err != nil {
        return err
    }
    if !ok {
        return repository.ErrBookingNotFound
    }
    return nil
}
