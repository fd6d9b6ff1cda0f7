package model

import "time"

// ReservationItem is one booked room slot within a booking.  Booking
// two units of the same type produces two rows, not a quantity field,
// so that housekeeping can later bind each row to a distinct physical
// unit.  Prices are snapshots taken at booking time and do not follow
// later catalog price changes.
//
// Fields:
//  ID             – primary key identifier.
//  BookingID      – owning booking.
//  RoomTypeID     – room type of the booked slot.
//  AssignedUnitID – physical unit bound by housekeeping, nil until assigned.
//  UnitPrice      – nightly price snapshot in cents.
//  TotalPrice     – UnitPrice × nights, in cents.
//  CreatedAt      – creation timestamp.
type ReservationItem struct {
    ID             uint64    // reservation_items.id
    BookingID      uint64    // reservation_items.booking_id
    RoomTypeID     uint64    // reservation_items.room_type_id
    AssignedUnitID *uint64   // reservation_items.assigned_unit_id (nullable)
    UnitPrice      int64     // reservation_items.unit_price_cents
    TotalPrice     int64     // reservation_items.total_price_cents
    CreatedAt      time.Time // reservation_items.created_at
}
