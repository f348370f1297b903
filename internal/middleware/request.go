package middleware

import (
    "bytes"
    "encoding/json"
    "io"
    "net/http"
    "strings"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/villa-booking/internal/utils"
)

// maxJSONBody bounds the request bodies read by JSONBody.
const maxJSONBody = 1 << 20

// RequestID tags each request with a UUID in X-Request-Id.
func RequestID() echo.MiddlewareFunc {
    return echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString})
}

// RequestLogger emits one logrus entry per request.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:    true,
        LogURI:       true,
        LogStatus:    true,
        LogLatency:   true,
        LogRequestID: true,
        LogRemoteIP:  true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            entry := log.WithFields(logrus.Fields{
                "method":     v.Method,
                "uri":        v.URI,
                "status":     v.Status,
                "latency":    v.Latency.String(),
                "request_id": v.RequestID,
                "remote_ip":  v.RemoteIP,
            })
            if v.Error != nil {
                entry.WithError(v.Error).Warn("request")
                return nil
            }
            entry.Info("request")
            return nil
        },
    })
}

// CORS allows any origin and answers preflight requests with 204.
func CORS() echo.MiddlewareFunc {
    return echomw.CORSWithConfig(echomw.CORSConfig{
        AllowOrigins: []string{"*"},
        AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
        AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
    })
}

// JSONBody reads POST and PUT bodies up front and rejects anything that is
// not valid JSON, an empty body included, with 400 "Invalid JSON body".
// Multipart uploads are left alone.  The body is restored for the handler.
func JSONBody() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            req := c.Request()
            if req.Method != http.MethodPost && req.Method != http.MethodPut {
                return next(c)
            }
            if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
                return next(c)
            }
            raw, err := io.ReadAll(io.LimitReader(req.Body, maxJSONBody+1))
            if err != nil || len(raw) > maxJSONBody || !json.Valid(raw) {
                return utils.JSONError(c, http.StatusBadRequest, "Invalid JSON body")
            }
            req.Body = io.NopCloser(bytes.NewReader(raw))
            return next(c)
        }
    }
}
