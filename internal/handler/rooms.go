package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/utils"
)

// RoomStore is the room persistence used by RoomHandler.
type RoomStore interface {
    List(ctx context.Context, active *bool) ([]*model.Room, error)
    GetByID(ctx context.Context, id uint64) (*model.Room, error)
    Create(ctx context.Context, r model.Room) (*model.Room, error)
    Update(ctx context.Context, id uint64, in model.RoomInput) (*model.Room, error)
    Deactivate(ctx context.Context, id uint64) error
    Delete(ctx context.Context, id uint64) error
    ListAmenities(ctx context.Context, roomID uint64) ([]*model.Amenity, error)
    AddAmenity(ctx context.Context, roomID, amenityID uint64) error
    RemoveAmenity(ctx context.Context, roomID, amenityID uint64) error
}

const errRoomNotFound = "Room not found"

type RoomHandler struct {
    Rooms RoomStore
}

func NewRoomHandler(rooms RoomStore) *RoomHandler {
    return &RoomHandler{Rooms: rooms}
}

// List: GET /api/rooms?active=true|false
func (h *RoomHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    rooms, err := h.Rooms.List(ctx, queryBool(c, "active"))
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(rooms))
}

func (h *RoomHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    room, err := h.Rooms.GetByID(ctx, id)
    if err != nil {
        return storeError(err, errRoomNotFound)
    }
    return utils.JSONSuccess(c, http.StatusOK, room)
}

func (h *RoomHandler) Create(c echo.Context) error {
    var in model.RoomInput
    if err := bind(c, &in); err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    room, err := h.Rooms.Create(ctx, model.NewRoom(in))
    if err != nil {
        return storeError(err, errRoomNotFound)
    }
    return utils.JSONMessage(c, http.StatusCreated, room, "Room created")
}

// Update applies only the fields present in the body.
func (h *RoomHandler) Update(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var in model.RoomInput
    if err := decode(c, &in); err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    room, err := h.Rooms.Update(ctx, id, in)
    if err != nil {
        return storeError(err, errRoomNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, room, "Room updated")
}

// Delete soft-deletes (is_active=false) unless ?hard=true.
func (h *RoomHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if hard := queryBool(c, "hard"); hard != nil && *hard {
        if err := h.Rooms.Delete(ctx, id); err != nil {
            return storeError(err, errRoomNotFound)
        }
        return utils.JSONMessage(c, http.StatusOK, echo.Map{"id": id}, "Room deleted")
    }
    if err := h.Rooms.Deactivate(ctx, id); err != nil {
        return storeError(err, errRoomNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"id": id}, "Room deactivated")
}

func (h *RoomHandler) ListAmenities(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Rooms.ListAmenities(ctx, id)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(items))
}

// AddAmenity: POST /api/rooms/:id/amenities {amenity_id}.  Neither id is
// checked against its table.
func (h *RoomHandler) AddAmenity(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var link model.AmenityLink
    if err := decode(c, &link); err != nil {
        return err
    }
    if link.AmenityID == 0 {
        return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: amenity_id")
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Rooms.AddAmenity(ctx, id, uint64(link.AmenityID)); err != nil {
        return err
    }
    return utils.JSONMessage(c, http.StatusCreated, echo.Map{"room_id": id, "amenity_id": uint64(link.AmenityID)}, "Amenity added to room")
}

func (h *RoomHandler) RemoveAmenity(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    amenityID, err := pathID(c, "amenity_id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Rooms.RemoveAmenity(ctx, id, amenityID); err != nil {
        return storeError(err, "Room amenity not found")
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"room_id": id, "amenity_id": amenityID}, "Amenity removed from room")
}
