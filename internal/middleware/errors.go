package middleware

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/villa-booking/internal/utils"
)

// ErrorHandler returns the echo.HTTPErrorHandler that turns every error
// into the JSON envelope.  An *echo.HTTPError keeps its code; unmatched
// routes and methods become 404 "Endpoint not found"; anything else is a
// 500 carrying the error text.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
    return func(err error, c echo.Context) {
        if c.Response().Committed {
            return
        }

        code := http.StatusInternalServerError
        msg := err.Error()

        var he *echo.HTTPError
        if errors.As(err, &he) {
            code = he.Code
            if m, ok := he.Message.(string); ok {
                msg = m
            } else {
                msg = http.StatusText(code)
            }
            if errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
                code, msg = http.StatusNotFound, "Endpoint not found"
            }
        }

        if code >= http.StatusInternalServerError {
            log.WithError(err).WithFields(logrus.Fields{
                "method": c.Request().Method,
                "uri":    c.Request().RequestURI,
            }).Error("request failed")
        }

        if c.Request().Method == http.MethodHead {
            _ = c.NoContent(code)
            return
        }
        _ = utils.JSONError(c, code, msg)
    }
}
