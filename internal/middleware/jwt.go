package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// principalKey is the context key under which the acting principal is
// stored.  Handlers read it back with Principal().
const principalKey = "principal"

// OptionalJWTAuth returns an Echo middleware that resolves the acting
// principal from a Bearer access token issued by the external identity
// service.  Booking creation supports guest checkout, so a missing
// Authorization header is not an error: the request proceeds with the
// anonymous principal.  A present but invalid token is rejected with
// 401 rather than silently downgraded to guest.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if auth == "" {
                c.Set(principalKey, model.Principal{})
                return next(c)
            }
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse with HS256 and our secret; reject any other
            // signing method so an attacker cannot downgrade to
            // "none" or an asymmetric scheme we do not expect.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            p := model.Principal{}
            // The identity service puts the numeric user id in "sub"
            // and the role name in "role".  JSON numbers arrive as
            // float64; some issuers stringify the subject.
            switch sub := claims["sub"].(type) {
            case float64:
                p.UserID = uint64(sub)
            case string:
                if n, err := strconv.ParseUint(sub, 10, 64); err == nil {
                    p.UserID = n
                }
            }
            if role, ok := claims["role"].(string); ok {
                p.Role = role
            }
            if p.UserID == 0 {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid subject"})
            }
            c.Set(principalKey, p)
            return next(c)
        }
    }
}

// RequireAuth rejects requests whose principal is the anonymous guest.
// It must run after OptionalJWTAuth.
func RequireAuth() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if Principal(c).Anonymous() {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
            }
            return next(c)
        }
    }
}

// Principal returns the acting principal stored by OptionalJWTAuth,
// or the anonymous guest when the middleware did not run.
func Principal(c echo.Context) model.Principal {
    if p, ok := c.Get(principalKey).(model.Principal); ok {
        return p
    }
    return model.Principal{}
}
