package model

import "time"

// RoomUnit is one concrete, physical room belonging to a room type.
// Units are fungible at booking time: a reservation claims a slot of
// the type's pool, and the unit is bound later by an out-of-band
// housekeeping assignment.  The is_active flag takes a unit out of
// service entirely, independent of date-based bookings, which shrinks
// the type's pool for availability purposes.
//
// Fields:
//  ID         – primary key identifier.
//  RoomTypeID – owning room type.
//  UnitNumber – door number, unique per property.
//  IsActive   – false when the unit is out of service.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type RoomUnit struct {
    ID         uint64    // room_units.id
    RoomTypeID uint64    // room_units.room_type_id
    UnitNumber string    // room_units.unit_number
    IsActive   bool      // room_units.is_active
    CreatedAt  time.Time // room_units.created_at
    UpdatedAt  time.Time // room_units.updated_at
}
