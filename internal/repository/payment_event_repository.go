package repository

import (
    "context"
    "database/sql"
    "time"
)

// PaymentEventRepo records payment provider callbacks.  The
// transaction_ref column is unique, which is what makes repeated
// delivery of the same callback idempotent: the second insert is a
// duplicate-key no-op and the caller skips re-applying the state
// change.
type PaymentEventRepo struct {
    db *sql.DB
}

// NewPaymentEventRepo returns a new PaymentEventRepo bound to the given database.
func NewPaymentEventRepo(db *sql.DB) *PaymentEventRepo { return &PaymentEventRepo{db: db} }

// RecordTx inserts a payment event inside the provided transaction.
// It returns false when the transaction_ref was already recorded, any
// other database error is returned as-is.
func (r *PaymentEventRepo) RecordTx(ctx context.Context, tx *sql.Tx, bookingID uint64, transactionRef, status string, paidAt *time.Time) (bool, error) {
    const q = `INSERT INTO payment_events (booking_id, transaction_ref, status, paid_at) VALUES (?, ?, ?, ?)`
    _, err := tx.ExecContext(ctx, q, bookingID, transactionRef, status, paidAt)
    if err != nil {
        if IsDuplicateEntry(err) {
            return false, nil
        }
        return false, err
    }
    return true, nil
}
