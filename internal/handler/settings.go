package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/utils"
)

type SettingsStore interface {
    Get(ctx context.Context) (model.Settings, error)
    Merge(ctx context.Context, values map[string]json.RawMessage) (model.Settings, error)
    SetKey(ctx context.Context, key string, value json.RawMessage) (model.Settings, error)
}

type SettingsHandler struct {
    Settings SettingsStore
}

func NewSettingsHandler(s SettingsStore) *SettingsHandler {
    return &SettingsHandler{Settings: s}
}

func settingsError(err error) error {
    if errors.Is(err, model.ErrStaleSettings) {
        return echo.NewHTTPError(http.StatusConflict, err.Error())
    }
    if errors.Is(err, model.ErrUnknownSetting) || errors.Is(err, model.ErrInvalidSetting) {
        return echo.NewHTTPError(http.StatusBadRequest, err.Error())
    }
    return storeError(err, "Settings not found")
}

func (h *SettingsHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    s, err := h.Settings.Get(ctx)
    if err != nil {
        return settingsError(err)
    }
    return utils.JSONSuccess(c, http.StatusOK, s)
}

func (h *SettingsHandler) GetKey(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    s, err := h.Settings.Get(ctx)
    if err != nil {
        return settingsError(err)
    }
    key := c.Param("key")
    v, err := s.Get(key)
    if err != nil {
        return settingsError(err)
    }
    return utils.JSONSuccess(c, http.StatusOK, echo.Map{"key": key, "value": v})
}

// Merge serves POST /api/settings.  Keys absent from the body keep their
// stored (or default) values.
func (h *SettingsHandler) Merge(c echo.Context) error {
    var values map[string]json.RawMessage
    if err := decode(c, &values); err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    s, err := h.Settings.Merge(ctx, values)
    if err != nil {
        return settingsError(err)
    }
    return utils.JSONMessage(c, http.StatusOK, s, "Settings updated")
}

type setKeyReq struct {
    Value json.RawMessage `json:"value"`
}

// SetKey serves PUT /api/settings/:key {value}.
func (h *SettingsHandler) SetKey(c echo.Context) error {
    var req setKeyReq
    if err := decode(c, &req); err != nil {
        return err
    }
    if len(req.Value) == 0 || string(req.Value) == "null" {
        return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: value")
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    key := c.Param("key")
    s, err := h.Settings.SetKey(ctx, key, req.Value)
    if err != nil {
        return settingsError(err)
    }
    v, _ := s.Get(key)
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"key": key, "value": v, "settings": s}, "Setting updated")
}
