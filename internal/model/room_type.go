package model

import "time"

// RoomType is a bookable category of room within a property.  All
// units of a type share the same nightly price and guest capacity and
// are interchangeable for inventory purposes.  Room types are catalog
// reference data: this core never writes them, it only reads prices,
// capacity and the enabled flag.
//
// Fields:
//  ID             – primary key identifier.
//  PropertyID     – property offering this room type.
//  Name           – type name, unique per property (e.g. "Deluxe").
//  Description    – optional marketing description.
//  PricePerNight  – nightly price in cents.
//  MaxGuests      – maximum guests per unit.
//  IsEnabled      – administrative flag; disabled types cannot be booked.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type RoomType struct {
    ID            uint64    // room_types.id
    PropertyID    uint64    // room_types.property_id
    Name          string    // room_types.name
    Description   *string   // room_types.description (nullable)
    PricePerNight int64     // room_types.price_per_night_cents
    MaxGuests     uint32    // room_types.max_guests
    IsEnabled     bool      // room_types.is_enabled
    CreatedAt     time.Time // room_types.created_at
    UpdatedAt     time.Time // room_types.updated_at
}
