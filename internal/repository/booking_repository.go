package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// dateLayout is how stay dates are sent to MySQL DATE columns.  All
// date arithmetic in this core is calendar-day based; there is no
// time-of-day granularity on a stay.
const dateLayout = "2006-01-02"

// BookingRepo provides CRUD operations for bookings and their
// reservation items, plus the occupancy counting queries behind the
// availability calculation.  Writes that participate in the atomic
// reservation flow take an explicit *sql.Tx and are suffixed Tx; the
// caller owns commit and rollback.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CountOccupying counts reservation items of a room type whose owning
// booking occupies inventory (paid or completed) and whose stay
// interval overlaps [checkIn, checkOut).  Two half-open intervals
// overlap iff a1 < b2 AND a2 > b1.  Lock-free; reads may be slightly
// stale relative to an in-flight reservation, which is acceptable for
// advisory search and calendar output.
func (r *BookingRepo) CountOccupying(ctx context.Context, roomTypeID uint64, checkIn, checkOut time.Time) (int, error) {
    const q = `SELECT COUNT(*)
               FROM reservation_items ri
               JOIN bookings b ON b.id = ri.booking_id
               WHERE ri.room_type_id = ?
                 AND b.status IN ('paid', 'completed')
                 AND b.check_in < ? AND b.check_out > ?`
    var n int
    err := r.db.QueryRowContext(ctx, q, roomTypeID,
        checkOut.Format(dateLayout), checkIn.Format(dateLayout)).Scan(&n)
    return n, err
}

// CountBlockingTx is the authoritative variant used inside the
// reservation transaction, after the room type row has been locked.
// On top of occupying bookings it counts pending bookings younger
// than holdTTL: an in-flight checkout reserves its slots for the hold
// window, so two concurrent reservations of the last unit cannot both
// commit.  Pending bookings older than holdTTL are treated as
// abandoned and stop blocking inventory.
func (r *BookingRepo) CountBlockingTx(ctx context.Context, tx *sql.Tx, roomTypeID uint64, checkIn, checkOut time.Time, holdTTL time.Duration) (int, error) {
    const q = `SELECT COUNT(*)
               FROM reservation_items ri
               JOIN bookings b ON b.id = ri.booking_id
               WHERE ri.room_type_id = ?
                 AND b.check_in < ? AND b.check_out > ?
                 AND (b.status IN ('paid', 'completed')
                      OR (b.status = 'pending' AND b.created_at > UTC_TIMESTAMP() - INTERVAL ? SECOND))`
    var n int
    err := tx.QueryRowContext(ctx, q, roomTypeID,
        checkOut.Format(dateLayout), checkIn.Format(dateLayout),
        int64(holdTTL/time.Second)).Scan(&n)
    return n, err
}

// CreateTx inserts a new booking within the scope of an existing
// transaction, populates the generated id and timestamps on the
// provided aggregate and returns any database error.  Items are
// inserted separately with CreateItemsBulkTx.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings
               (customer_id, guest_name, guest_email, guest_phone, check_in, check_out,
                nights, status, payment_status, merchant_ref, payment_method, total_amount_cents)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        b.CustomerID, b.GuestName, b.GuestEmail, b.GuestPhone,
        b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout),
        b.Nights, string(b.Status), string(b.PaymentStatus),
        b.MerchantRef, b.PaymentMethod, b.TotalAmount)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Read back DB-assigned timestamps so the returned aggregate is complete.
    const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// CreateItemsBulkTx inserts all reservation items of a booking in a
// single statement and back-fills the generated ids (MySQL assigns
// consecutive ids for a multi-row insert).  Passing an empty slice
// has no effect and returns nil.
func (r *BookingRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []model.ReservationItem) error {
    if len(items) == 0 {
        return nil
    }
    query := `INSERT INTO reservation_items (booking_id, room_type_id, assigned_unit_id, unit_price_cents, total_price_cents) VALUES `
    args := make([]interface{}, 0, len(items)*5)
    for i, it := range items {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?, ?)"
        args = append(args, it.BookingID, it.RoomTypeID, it.AssignedUnitID, it.UnitPrice, it.TotalPrice)
    }
    res, err := tx.ExecContext(ctx, query, args...)
    if err != nil {
        return err
    }
    first, err := res.LastInsertId()
    if err != nil {
        return err
    }
    for i := range items {
        items[i].ID = uint64(first) + uint64(i)
    }
    return nil
}

func scanBooking(scan func(...interface{}) error) (*model.Booking, error) {
    var b model.Booking
    var customerID sql.NullInt64
    var status, payStatus string
    err := scan(&b.ID, &customerID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
        &b.CheckIn, &b.CheckOut, &b.Nights, &status, &payStatus,
        &b.MerchantRef, &b.PaymentMethod, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    if customerID.Valid {
        cid := uint64(customerID.Int64)
        b.CustomerID = &cid
    }
    b.Status = model.BookingStatus(status)
    b.PaymentStatus = model.PaymentStatus(payStatus)
    return &b, nil
}

const bookingColumns = `id, customer_id, guest_name, guest_email, guest_phone, check_in, check_out,
                        nights, status, payment_status, merchant_ref, payment_method, total_amount_cents,
                        created_at, updated_at`

// GetByID loads a booking aggregate with its reservation items, or
// ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
    b, err := scanBooking(row.Scan)
    if err != nil {
        return nil, err
    }
    items, err := r.loadItems(ctx, []uint64{b.ID})
    if err != nil {
        return nil, err
    }
    b.Items = items[b.ID]
    return b, nil
}

// LockTx loads a booking row with SELECT ... FOR UPDATE so that a
// status transition can check and write the state inside one guarded
// unit of work.  Items are not loaded.
func (r *BookingRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    row := tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ? FOR UPDATE`, id)
    return scanBooking(row.Scan)
}

// UpdateStatusTx performs a guarded status write: the UPDATE only
// matches when the row is still in the expected prior state.  It
// returns false when another writer got there first, which callers
// surface as a conflict instead of silently double-applying.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, from, to model.BookingStatus) (bool, error) {
    res, err := tx.ExecContext(ctx,
        `UPDATE bookings SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ? AND status = ?`,
        string(to), id, string(from))
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// SetPaymentStatusTx records the payment leg state.  Unconditional:
// the payment provider is authoritative for its own leg.
func (r *BookingRepo) SetPaymentStatusTx(ctx context.Context, tx *sql.Tx, id uint64, ps model.PaymentStatus) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE bookings SET payment_status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
        string(ps), id)
    return err
}

// ListByCustomer returns all bookings owned by a customer, newest
// first, with items populated in a single follow-up query.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+bookingColumns+` FROM bookings WHERE customer_id = ? ORDER BY created_at DESC, id DESC`,
        customerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    ids := make([]uint64, 0)
    for rows.Next() {
        b, err := scanBooking(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
        ids = append(ids, b.ID)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(out) == 0 {
        return out, nil
    }
    items, err := r.loadItems(ctx, ids)
    if err != nil {
        return nil, err
    }
    for i := range out {
        out[i].Items = items[out[i].ID]
    }
    return out, nil
}

// Delete removes a booking and, via the ON DELETE CASCADE foreign
// key, all of its reservation items.  When owner is non-nil the
// delete is scoped to that customer so a foreign booking reports not
// found rather than revealing its existence.  Returns false when no
// row matched.
func (r *BookingRepo) Delete(ctx context.Context, id uint64, owner *uint64) (bool, error) {
    var (
        res sql.Result
        err error
    )
    if owner != nil {
        res, err = r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ? AND customer_id = ?`, id, *owner)
    } else {
        res, err = r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
    }
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// loadItems fetches reservation items for the given booking ids and
// groups them by booking.
func (r *BookingRepo) loadItems(ctx context.Context, bookingIDs []uint64) (map[uint64][]model.ReservationItem, error) {
    placeholders := strings.TrimSuffix(strings.Repeat("?,", len(bookingIDs)), ",")
    args := make([]interface{}, 0, len(bookingIDs))
    for _, id := range bookingIDs {
        args = append(args, id)
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, booking_id, room_type_id, assigned_unit_id, unit_price_cents, total_price_cents, created_at
         FROM reservation_items
         WHERE booking_id IN (`+placeholders+`)
         ORDER BY booking_id, id`, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make(map[uint64][]model.ReservationItem, len(bookingIDs))
    for rows.Next() {
        var it model.ReservationItem
        var unitID sql.NullInt64
        if err := rows.Scan(&it.ID, &it.BookingID, &it.RoomTypeID, &unitID,
            &it.UnitPrice, &it.TotalPrice, &it.CreatedAt); err != nil {
            return nil, err
        }
        if unitID.Valid {
            uid := uint64(unitID.Int64)
            it.AssignedUnitID = &uid
        }
        out[it.BookingID] = append(out[it.BookingID], it)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
