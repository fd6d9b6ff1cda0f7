package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
    t.Helper()
    tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    s, err := tok.SignedString([]byte(testSecret))
    require.NoError(t, err)
    return s
}

func runOptionalAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, model.Principal) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    var got model.Principal
    h := OptionalJWTAuth(testSecret)(func(c echo.Context) error {
        got = Principal(c)
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    return rec, got
}

func TestOptionalJWTAuthAllowsGuests(t *testing.T) {
    rec, p := runOptionalAuth(t, "")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.True(t, p.Anonymous())
}

func TestOptionalJWTAuthResolvesPrincipal(t *testing.T) {
    tok := signToken(t, jwt.MapClaims{
        "sub":  float64(42),
        "role": model.RoleCustomer,
        "exp":  time.Now().Add(time.Hour).Unix(),
    })
    rec, p := runOptionalAuth(t, "Bearer "+tok)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, uint64(42), p.UserID)
    assert.Equal(t, model.RoleCustomer, p.Role)
}

func TestOptionalJWTAuthRejectsBadTokens(t *testing.T) {
    // Present but unparsable: reject, do not downgrade to guest.
    rec, _ := runOptionalAuth(t, "Bearer not-a-token")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    expired := signToken(t, jwt.MapClaims{
        "sub":  float64(42),
        "role": model.RoleCustomer,
        "exp":  time.Now().Add(-time.Hour).Unix(),
    })
    rec, _ = runOptionalAuth(t, "Bearer "+expired)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthAndRole(t *testing.T) {
    e := echo.New()
    ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

    newCtx := func(p *model.Principal) (echo.Context, *httptest.ResponseRecorder) {
        rec := httptest.NewRecorder()
        c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
        if p != nil {
            c.Set(principalKey, *p)
        }
        return c, rec
    }

    c, rec := newCtx(nil)
    require.NoError(t, RequireAuth()(ok)(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    c, rec = newCtx(&model.Principal{UserID: 7, Role: model.RoleCustomer})
    require.NoError(t, RequireAuth()(ok)(c))
    assert.Equal(t, http.StatusOK, rec.Code)

    c, rec = newCtx(&model.Principal{UserID: 7, Role: model.RoleCustomer})
    require.NoError(t, RequireRole(model.RoleOperator)(ok)(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)

    c, rec = newCtx(&model.Principal{UserID: 1, Role: model.RoleOperator})
    require.NoError(t, RequireRole(model.RoleCustomer, model.RoleOperator)(ok)(c))
    assert.Equal(t, http.StatusOK, rec.Code)
}
