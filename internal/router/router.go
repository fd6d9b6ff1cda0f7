// Package router defines how HTTP routes are registered for the API.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-reservation/internal/handler"
    "github.com/iliyamo/hotel-room-reservation/internal/middleware"
    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently it exposes only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated read endpoints: stay
// search, whole-stay availability and the per-night calendar.  The
// provided middlewares are the Redis response cache and the rate
// limiter; both degrade to no-ops when Redis is unavailable.
func RegisterPublic(e *echo.Echo, a *handler.AvailabilityHandler, cat *handler.CatalogHandler, mws ...echo.MiddlewareFunc) {
    g := e.Group("/v1", mws...)
    g.GET("/bookings/search", a.Search)
    g.GET("/room-types/:id/availability", a.Available)
    g.GET("/room-types/:id/calendar", a.Calendar)

    // Catalog drill-down: province -> place -> property -> room type.
    g.GET("/provinces", cat.GetProvinces)
    g.GET("/provinces/:id/places", cat.GetPlaces)
    g.GET("/places/:id/properties", cat.GetProperties)
    g.GET("/properties/:id/room-types", cat.GetRoomTypes)
}

// RegisterBooking registers the reservation and lifecycle endpoints.
// Every route resolves the principal with OptionalJWTAuth: creation
// allows guest checkout, reads and transitions enforce ownership in
// the engine, and /v1/my-bookings requires a signed-in customer.  The
// payment callback is posted by the provider, not a user, so it is
// registered outside the JWT chain with only the rate limiter.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, rl echo.MiddlewareFunc) {
    g := e.Group("/v1", rl, middleware.OptionalJWTAuth(jwtSecret))
    g.POST("/bookings", b.Create)
    g.GET("/bookings/:id", b.Get)
    g.DELETE("/bookings/:id", b.Delete)
    g.PATCH("/bookings/:id/status", b.ChangeStatus,
        middleware.RequireRole(model.RoleCustomer, model.RoleOperator))
    g.GET("/my-bookings", b.List, middleware.RequireAuth())

    e.POST("/v1/bookings/:id/payment-callback", b.PaymentCallback, rl)
}
