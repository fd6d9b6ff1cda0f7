package model

import "time"

// Property represents a hotel owned by a user.  A property groups the
// room types offered at one physical location.  Property records are
// managed by the external catalog service and treated as read-only
// here.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the property owner.
//  PlaceID   – place where the property is located.
//  Name      – unique property name per owner.
//  IsActive  – whether the property is open for booking.
//  CreatedAt – timestamp when the property was created.
//  UpdatedAt – timestamp of last update.
type Property struct {
    ID        uint64    // properties.id
    OwnerID   uint64    // properties.owner_id
    PlaceID   uint64    // properties.place_id
    Name      string    // properties.name
    IsActive  bool      // properties.is_active
    CreatedAt time.Time // properties.created_at
    UpdatedAt time.Time // properties.updated_at
}
