package middleware

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/utils"
)

// Context keys set by JWTAuth.
const (
    CtxUserID   = "user_id"
    CtxUsername = "username"
    CtxRole     = "role"
)

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(c echo.Context) string {
    auth := c.Request().Header.Get(echo.HeaderAuthorization)
    if !strings.HasPrefix(auth, "Bearer ") {
        return ""
    }
    return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// JWTAuth validates the Bearer access token and stores its claims in the
// context under CtxUserID (uint64), CtxUsername and CtxRole.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := BearerToken(c)
            if raw == "" {
                return utils.JSONError(c, http.StatusUnauthorized, "Missing bearer token")
            }
            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return utils.JSONError(c, http.StatusUnauthorized, "Invalid token")
            }
            c.Set(CtxUserID, claims.UserID)
            c.Set(CtxUsername, claims.Username)
            c.Set(CtxRole, claims.Role)
            return next(c)
        }
    }
}

// RequireRole rejects with 403 any request whose role, as stored by
// JWTAuth, is not one of roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get(CtxRole).(string)
            if !ok || !allowed[role] {
                return utils.JSONError(c, http.StatusForbidden, "Forbidden")
            }
            return next(c)
        }
    }
}

// AdminOnly gates mutating methods behind JWTAuth and RequireRole.  Reads
// pass through.  With enabled false it is a no-op.
func AdminOnly(enabled bool, secret string, roles ...string) echo.MiddlewareFunc {
    if !enabled {
        return passthrough
    }
    chain := func(next echo.HandlerFunc) echo.HandlerFunc {
        return JWTAuth(secret)(RequireRole(roles...)(next))
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        guarded := chain(next)
        return func(c echo.Context) error {
            switch c.Request().Method {
            case http.MethodGet, http.MethodHead, http.MethodOptions:
                return next(c)
            }
            return guarded(c)
        }
    }
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }
