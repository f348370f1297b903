package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/repository"
    "github.com/iliyamo/villa-booking/internal/utils"
)

type AmenityStore interface {
    List(ctx context.Context, f repository.AmenityFilter) ([]*model.Amenity, error)
    GetByID(ctx context.Context, id uint64) (*model.Amenity, error)
    Create(ctx context.Context, a model.Amenity) (*model.Amenity, error)
    Update(ctx context.Context, id uint64, in model.AmenityInput) (*model.Amenity, error)
    Delete(ctx context.Context, id uint64) error
}

const errAmenityNotFound = "Amenity not found"

type AmenityHandler struct {
    Amenities AmenityStore
}

func NewAmenityHandler(s AmenityStore) *AmenityHandler { return &AmenityHandler{Amenities: s} }

func (h *AmenityHandler) list(c echo.Context, f repository.AmenityFilter) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Amenities.List(ctx, f)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(items))
}

// List returns every amenity; ?category= narrows it.
func (h *AmenityHandler) List(c echo.Context) error {
    return h.list(c, repository.AmenityFilter{Category: c.QueryParam("category")})
}

// ListActive serves /list, the active amenities the public pages show.
func (h *AmenityHandler) ListActive(c echo.Context) error {
    return h.list(c, repository.AmenityFilter{ActiveOnly: true})
}

func (h *AmenityHandler) Featured(c echo.Context) error {
    return h.list(c, repository.AmenityFilter{Featured: true, ActiveOnly: true})
}

func (h *AmenityHandler) ByCategory(c echo.Context) error {
    return h.list(c, repository.AmenityFilter{Category: c.Param("category")})
}

// Icons returns the icon registry shared by amenities and inclusions.
func (h *AmenityHandler) Icons(c echo.Context) error {
    return utils.JSONSuccess(c, http.StatusOK, model.Icons)
}

func (h *AmenityHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    a, err := h.Amenities.GetByID(ctx, id)
    if err != nil {
        return storeError(err, errAmenityNotFound)
    }
    return utils.JSONSuccess(c, http.StatusOK, a)
}

func (h *AmenityHandler) Create(c echo.Context) error {
    var in model.AmenityInput
    if err := bind(c, &in); err != nil {
        return err
    }
    if err := checkIcon(in.Icon); err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    a, err := h.Amenities.Create(ctx, model.NewAmenity(in))
    if err != nil {
        return storeError(err, errAmenityNotFound)
    }
    return utils.JSONMessage(c, http.StatusCreated, a, "Amenity created")
}

func (h *AmenityHandler) Update(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var in model.AmenityInput
    if err := decode(c, &in); err != nil {
        return err
    }
    if err := checkIcon(in.Icon); err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    a, err := h.Amenities.Update(ctx, id, in)
    if err != nil {
        return storeError(err, errAmenityNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, a, "Amenity updated")
}

// Delete removes the amenity row only; room and package links to it are
// left in place.
func (h *AmenityHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Amenities.Delete(ctx, id); err != nil {
        return storeError(err, errAmenityNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"id": id}, "Amenity deleted")
}

func checkIcon(icon *string) error {
    if icon != nil && !model.ValidIcon(*icon) {
        return echo.NewHTTPError(http.StatusBadRequest, "Unknown icon: "+*icon)
    }
    return nil
}
