package middleware

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userKey identifies the caller for cache and rate-limit keys: the JWT
// subject when JWTAuth ran, "anon" otherwise.
func userKey(c echo.Context) string {
    if id, ok := c.Get(CtxUserID).(uint64); ok && id != 0 {
        return strconv.FormatUint(id, 10)
    }
    return "anon"
}
