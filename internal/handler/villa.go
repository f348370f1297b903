package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/utils"
)

type VillaStore interface {
    Get(ctx context.Context) (*model.VillaInfo, error)
    Update(ctx context.Context, in model.VillaInput) (*model.VillaInfo, error)
}

const errVillaNotFound = "Villa information not found"

type VillaHandler struct {
    Villa VillaStore
}

func NewVillaHandler(v VillaStore) *VillaHandler { return &VillaHandler{Villa: v} }

func (h *VillaHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    v, err := h.Villa.Get(ctx)
    if err != nil {
        return storeError(err, errVillaNotFound)
    }
    return utils.JSONSuccess(c, http.StatusOK, v)
}

// Update writes the present fields, creating the row on first use.
func (h *VillaHandler) Update(c echo.Context) error {
    var in model.VillaInput
    if err := decode(c, &in); err != nil {
        return err
    }
    for _, t := range []*string{in.CheckInTime, in.CheckOutTime} {
        if t != nil && !validClock(*t) {
            return echo.NewHTTPError(http.StatusBadRequest, "check_in_time and check_out_time use HH:MM")
        }
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    v, err := h.Villa.Update(ctx, in)
    if err != nil {
        return storeError(err, errVillaNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, v, "Villa information updated")
}

// validClock accepts 24h "HH:MM".
func validClock(s string) bool {
    _, err := time.Parse("15:04", s)
    return err == nil && len(s) == 5
}
