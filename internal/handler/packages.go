package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/repository"
    "github.com/iliyamo/villa-booking/internal/utils"
)

// PackageStore is the package persistence used by PackageHandler,
// including the package_rooms, package_inclusions and package_amenities
// joins.
type PackageStore interface {
    List(ctx context.Context, f repository.PackageFilter) ([]*model.Package, error)
    Categories(ctx context.Context) ([]model.CategoryCount, error)
    GetByID(ctx context.Context, id uint64) (*model.Package, error)
    Create(ctx context.Context, p model.Package) (*model.Package, error)
    Update(ctx context.Context, id uint64, in model.PackageInput) (*model.Package, error)
    Delete(ctx context.Context, id uint64) error
    ListRooms(ctx context.Context, p *model.Package) ([]*model.PackageRoom, error)
    AddRoom(ctx context.Context, pr model.PackageRoom) error
    RemoveRoom(ctx context.Context, packageID, roomID uint64) error
    ListInclusions(ctx context.Context, packageID uint64) ([]*model.Inclusion, error)
    AddInclusion(ctx context.Context, packageID, inclusionID uint64) error
    RemoveInclusion(ctx context.Context, packageID, inclusionID uint64) error
    ListAmenities(ctx context.Context, packageID uint64) ([]*model.Amenity, error)
    AddAmenity(ctx context.Context, packageID, amenityID uint64) error
    RemoveAmenity(ctx context.Context, packageID, amenityID uint64) error
}

const errPackageNotFound = "Package not found"

type PackageHandler struct {
    Packages PackageStore
}

func NewPackageHandler(packages PackageStore) *PackageHandler {
    return &PackageHandler{Packages: packages}
}

// validPackage checks the fields of a create or update body that have a
// fixed format.
func validPackage(in model.PackageInput) error {
    for _, d := range []*string{in.ValidFrom, in.ValidUntil} {
        if d != nil && *d != "" && !model.ValidDate(*d) {
            return echo.NewHTTPError(http.StatusBadRequest, model.ErrInvalidDate.Error())
        }
    }
    if in.DiscountPercentage != nil && (*in.DiscountPercentage < 0 || *in.DiscountPercentage > 100) {
        return echo.NewHTTPError(http.StatusBadRequest, "discount_percentage must be between 0 and 100")
    }
    if in.BasePrice != nil && *in.BasePrice < 0 {
        return echo.NewHTTPError(http.StatusBadRequest, "base_price must not be negative")
    }
    return nil
}

// List: GET /api/packages?active=&category=&type=
func (h *PackageHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Packages.List(ctx, repository.PackageFilter{
        Active:   queryBool(c, "active"),
        Category: c.QueryParam("category"),
        Type:     c.QueryParam("type"),
    })
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(items))
}

// Categories lists the marketing categories with their package counts.
func (h *PackageHandler) Categories(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    cats, err := h.Packages.Categories(ctx)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(cats))
}

func (h *PackageHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    p, err := h.Packages.GetByID(ctx, id)
    if err != nil {
        return storeError(err, errPackageNotFound)
    }
    return utils.JSONSuccess(c, http.StatusOK, p)
}

func (h *PackageHandler) Create(c echo.Context) error {
    var in model.PackageInput
    if err := bind(c, &in); err != nil {
        return err
    }
    if err := validPackage(in); err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    p, err := h.Packages.Create(ctx, model.NewPackage(in))
    if err != nil {
        return storeError(err, errPackageNotFound)
    }
    return utils.JSONMessage(c, http.StatusCreated, p, "Package created")
}

func (h *PackageHandler) Update(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var in model.PackageInput
    if err := decode(c, &in); err != nil {
        return err
    }
    if err := validPackage(in); err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    p, err := h.Packages.Update(ctx, id, in)
    if err != nil {
        return storeError(err, errPackageNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, p, "Package updated")
}

// Delete removes the package row.  Its join rows stay behind.
func (h *PackageHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Packages.Delete(ctx, id); err != nil {
        return storeError(err, errPackageNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"id": id}, "Package deleted")
}

// ListRooms returns the package's rooms with their effective nightly price.
func (h *PackageHandler) ListRooms(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    p, err := h.Packages.GetByID(ctx, id)
    if err != nil {
        return storeError(err, errPackageNotFound)
    }
    rooms, err := h.Packages.ListRooms(ctx, p)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(rooms))
}

// AddRoom links a room; posting an existing link replaces its pricing.
func (h *PackageHandler) AddRoom(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var in model.PackageRoomInput
    if err := decode(c, &in); err != nil {
        return err
    }
    if in.RoomID == 0 {
        return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: room_id")
    }
    pr := model.PackageRoom{PackageID: id, RoomID: uint64(in.RoomID), AdjustmentType: model.AdjustmentFixed}
    if in.AdjustmentType != nil {
        if !model.ValidAdjustmentType(*in.AdjustmentType) {
            return echo.NewHTTPError(http.StatusBadRequest, "adjustment_type must be percentage or fixed")
        }
        pr.AdjustmentType = *in.AdjustmentType
    }
    if in.PriceAdjustment != nil {
        pr.PriceAdjustment = *in.PriceAdjustment
    }
    if in.IsDefault != nil {
        pr.IsDefault = *in.IsDefault
    }
    if in.AvailabilityPriority != nil {
        pr.AvailabilityPriority = *in.AvailabilityPriority
    }
    pr.MaxOccupancyOverride = in.MaxOccupancyOverride

    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Packages.AddRoom(ctx, pr); err != nil {
        return err
    }
    return utils.JSONMessage(c, http.StatusCreated, pr, "Room added to package")
}

func (h *PackageHandler) RemoveRoom(c echo.Context) error {
    return h.unlink(c, "room_id", PackageStore.RemoveRoom, "Room removed from package")
}

func (h *PackageHandler) ListInclusions(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Packages.ListInclusions(ctx, id)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(items))
}

func (h *PackageHandler) AddInclusion(c echo.Context) error {
    var link model.InclusionLink
    return h.link(c, &link, "inclusion_id", func() uint64 { return uint64(link.InclusionID) },
        PackageStore.AddInclusion, "Inclusion added to package")
}

func (h *PackageHandler) RemoveInclusion(c echo.Context) error {
    return h.unlink(c, "inclusion_id", PackageStore.RemoveInclusion, "Inclusion removed from package")
}

func (h *PackageHandler) ListAmenities(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Packages.ListAmenities(ctx, id)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(items))
}

func (h *PackageHandler) AddAmenity(c echo.Context) error {
    var link model.AmenityLink
    return h.link(c, &link, "amenity_id", func() uint64 { return uint64(link.AmenityID) },
        PackageStore.AddAmenity, "Amenity added to package")
}

func (h *PackageHandler) RemoveAmenity(c echo.Context) error {
    return h.unlink(c, "amenity_id", PackageStore.RemoveAmenity, "Amenity removed from package")
}

// joinFunc is a PackageStore method expression such as
// PackageStore.AddAmenity.
type joinFunc func(s PackageStore, ctx context.Context, packageID, otherID uint64) error

// link decodes body, reads the linked id through other and inserts the
// join row.
func (h *PackageHandler) link(c echo.Context, body any, field string, other func() uint64, add joinFunc, msg string) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    if err := decode(c, body); err != nil {
        return err
    }
    otherID := other()
    if otherID == 0 {
        return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: "+field)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := add(h.Packages, ctx, id, otherID); err != nil {
        return err
    }
    return utils.JSONMessage(c, http.StatusCreated, echo.Map{"package_id": id, field: otherID}, msg)
}

// unlink deletes the join row named by :id and the :field path parameter.
func (h *PackageHandler) unlink(c echo.Context, field string, remove joinFunc, msg string) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    otherID, err := pathID(c, field)
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := remove(h.Packages, ctx, id, otherID); err != nil {
        return storeError(err, "Package link not found")
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"package_id": id, field: otherID}, msg)
}
