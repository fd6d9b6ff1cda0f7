package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// CatalogRepo provides the read-only browse queries behind the public
// catalog endpoints: provinces, their places, the active properties of
// a place and the enabled room types of a property.  All of this is
// reference data owned by the external catalog service.
type CatalogRepo struct {
    db *sql.DB
}

// NewCatalogRepo returns a new CatalogRepo bound to the given database.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ListProvinces returns all provinces ordered by name.
func (r *CatalogRepo) ListProvinces(ctx context.Context) ([]model.Province, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM provinces ORDER BY name`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Province, 0)
    for rows.Next() {
        var p model.Province
        if err := rows.Scan(&p.ID, &p.Name); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// ListPlacesByProvince returns the places of one province ordered by name.
func (r *CatalogRepo) ListPlacesByProvince(ctx context.Context, provinceID uint64) ([]model.Place, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, province_id, name, created_at FROM places WHERE province_id = ? ORDER BY name`,
        provinceID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Place, 0)
    for rows.Next() {
        var p model.Place
        if err := rows.Scan(&p.ID, &p.ProvinceID, &p.Name, &p.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// ListPropertiesByPlace returns the active properties of a place.
// Inactive properties are hidden from browsing the same way they are
// excluded from stay search.
func (r *CatalogRepo) ListPropertiesByPlace(ctx context.Context, placeID uint64) ([]model.Property, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, owner_id, place_id, name, is_active, created_at, updated_at
         FROM properties WHERE place_id = ? AND is_active = 1 ORDER BY name`,
        placeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Property, 0)
    for rows.Next() {
        var p model.Property
        if err := rows.Scan(&p.ID, &p.OwnerID, &p.PlaceID, &p.Name, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// ListRoomTypesByProperty returns the enabled room types of a property.
func (r *CatalogRepo) ListRoomTypesByProperty(ctx context.Context, propertyID uint64) ([]model.RoomType, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+roomTypeColumns+` FROM room_types WHERE property_id = ? AND is_enabled = 1 ORDER BY price_per_night_cents`,
        propertyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.RoomType, 0)
    for rows.Next() {
        var rt model.RoomType
        var desc sql.NullString
        if err := rows.Scan(&rt.ID, &rt.PropertyID, &rt.Name, &desc, &rt.PricePerNight,
            &rt.MaxGuests, &rt.IsEnabled, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
            return nil, err
        }
        if desc.Valid {
            d := desc.String
            rt.Description = &d
        }
        out = append(out, rt)
    }
    return out, rows.Err()
}
