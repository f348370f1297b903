package handler

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/utils"
)

type InclusionStore interface {
    List(ctx context.Context, category string, featured bool) ([]*model.Inclusion, error)
    GetByID(ctx context.Context, id uint64) (*model.Inclusion, error)
    Create(ctx context.Context, in model.Inclusion) (*model.Inclusion, error)
    Update(ctx context.Context, id uint64, in model.InclusionInput) (*model.Inclusion, error)
    Delete(ctx context.Context, id uint64) error
}

const errInclusionNotFound = "Inclusion not found"

type InclusionHandler struct {
    Inclusions InclusionStore
}

func NewInclusionHandler(s InclusionStore) *InclusionHandler { return &InclusionHandler{Inclusions: s} }

func (h *InclusionHandler) list(c echo.Context, category string, featured bool) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Inclusions.List(ctx, category, featured)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(items))
}

func (h *InclusionHandler) List(c echo.Context) error {
    return h.list(c, c.QueryParam("category"), false)
}

func (h *InclusionHandler) Featured(c echo.Context) error { return h.list(c, "", true) }

func (h *InclusionHandler) ByCategory(c echo.Context) error {
    cat := c.Param("category")
    if !model.ValidInclusionCategory(cat) {
        return echo.NewHTTPError(http.StatusBadRequest, categoryMessage)
    }
    return h.list(c, cat, false)
}

func (h *InclusionHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    in, err := h.Inclusions.GetByID(ctx, id)
    if err != nil {
        return storeError(err, errInclusionNotFound)
    }
    return utils.JSONSuccess(c, http.StatusOK, in)
}

var categoryMessage = "category must be one of: " + strings.Join(model.InclusionCategories, ", ")

func checkInclusion(in model.InclusionInput) error {
    if in.Category != nil && !model.ValidInclusionCategory(*in.Category) {
        return echo.NewHTTPError(http.StatusBadRequest, categoryMessage)
    }
    return checkIcon(in.Icon)
}

func (h *InclusionHandler) Create(c echo.Context) error {
    var in model.InclusionInput
    if err := bind(c, &in); err != nil {
        return err
    }
    if err := checkInclusion(in); err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    out, err := h.Inclusions.Create(ctx, model.NewInclusion(in))
    if err != nil {
        return storeError(err, errInclusionNotFound)
    }
    return utils.JSONMessage(c, http.StatusCreated, out, "Inclusion created")
}

func (h *InclusionHandler) Update(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var in model.InclusionInput
    if err := decode(c, &in); err != nil {
        return err
    }
    if err := checkInclusion(in); err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    out, err := h.Inclusions.Update(ctx, id, in)
    if err != nil {
        return storeError(err, errInclusionNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, out, "Inclusion updated")
}

func (h *InclusionHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Inclusions.Delete(ctx, id); err != nil {
        return storeError(err, errInclusionNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"id": id}, "Inclusion deleted")
}
