package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// CatalogHandler exposes the public browse endpoints over the location
// hierarchy: provinces, places, properties and their room types.
// Guests use these to drill down to a bookable room type before
// hitting search or availability.
type CatalogHandler struct {
    catalog *repository.CatalogRepo
}

// NewCatalogHandler returns a CatalogHandler.
func NewCatalogHandler(catalog *repository.CatalogRepo) *CatalogHandler {
    return &CatalogHandler{catalog: catalog}
}

// GetProvinces handles GET /v1/provinces.
func (h *CatalogHandler) GetProvinces(c echo.Context) error {
    provinces, err := h.catalog.ListProvinces(c.Request().Context())
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(provinces))
    for _, p := range provinces {
        out = append(out, echo.Map{"id": p.ID, "name": p.Name})
    }
    return c.JSON(http.StatusOK, echo.Map{"provinces": out})
}

// GetPlaces handles GET /v1/provinces/:id/places.
func (h *CatalogHandler) GetPlaces(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    places, err := h.catalog.ListPlacesByProvince(c.Request().Context(), id)
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(places))
    for _, p := range places {
        out = append(out, echo.Map{"id": p.ID, "province_id": p.ProvinceID, "name": p.Name})
    }
    return c.JSON(http.StatusOK, echo.Map{"places": out})
}

// GetProperties handles GET /v1/places/:id/properties.
func (h *CatalogHandler) GetProperties(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    properties, err := h.catalog.ListPropertiesByPlace(c.Request().Context(), id)
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(properties))
    for _, p := range properties {
        out = append(out, echo.Map{"id": p.ID, "place_id": p.PlaceID, "name": p.Name})
    }
    return c.JSON(http.StatusOK, echo.Map{"properties": out})
}

// GetRoomTypes handles GET /v1/properties/:id/room-types.
func (h *CatalogHandler) GetRoomTypes(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    types, err := h.catalog.ListRoomTypesByProperty(c.Request().Context(), id)
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(types))
    for _, rt := range types {
        out = append(out, echo.Map{
            "id":                    rt.ID,
            "property_id":           rt.PropertyID,
            "name":                  rt.Name,
            "description":           rt.Description,
            "price_per_night_cents": rt.PricePerNight,
            "max_guests":            rt.MaxGuests,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"room_types": out})
}
