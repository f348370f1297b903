package utils

import "github.com/labstack/echo/v4"

// Envelope is the body of every API response.
type Envelope struct {
    Success bool   `json:"success"`
    Data    any    `json:"data,omitempty"`
    Error   string `json:"error,omitempty"`
    Message string `json:"message,omitempty"`
    Meta    any    `json:"meta,omitempty"`
}

// ListMeta describes a paginated list.
type ListMeta struct {
    Limit  int `json:"limit"`
    Offset int `json:"offset"`
    Total  int `json:"total"`
}

func JSONSuccess(c echo.Context, code int, data any) error {
    return c.JSON(code, Envelope{Success: true, Data: data})
}

// JSONMessage is JSONSuccess with a human readable message.
func JSONMessage(c echo.Context, code int, data any, msg string) error {
    return c.JSON(code, Envelope{Success: true, Data: data, Message: msg})
}

func JSONList(c echo.Context, code int, data any, meta any) error {
    return c.JSON(code, Envelope{Success: true, Data: data, Meta: meta})
}

func JSONError(c echo.Context, code int, msg string) error {
    return c.JSON(code, Envelope{Success: false, Error: msg})
}
