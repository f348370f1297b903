package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/queue"
    "github.com/iliyamo/villa-booking/internal/repository"
    "github.com/iliyamo/villa-booking/internal/utils"
)

type BookingStore interface {
    List(ctx context.Context, q repository.BookingQuery) ([]*model.Booking, int, error)
    GetByID(ctx context.Context, id uint64) (*model.Booking, error)
    GetByReference(ctx context.Context, ref string) (*model.Booking, error)
    SearchByDates(ctx context.Context, from, to string) ([]*model.Booking, error)
    HasOverlap(ctx context.Context, roomID uint64, checkIn, checkOut string) (bool, error)
    Create(ctx context.Context, b model.Booking) (*model.Booking, error)
    Update(ctx context.Context, id uint64, in model.BookingInput) (*model.Booking, error)
    UpdateStatus(ctx context.Context, id uint64, status string, payment *string) (*model.Booking, error)
    Delete(ctx context.Context, id uint64) error
}

// EventPublisher announces new bookings.  It must not block the request.
type EventPublisher interface {
    PublishAsync(ev queue.BookingCreatedEvent)
}

const (
    errBookingNotFound = "Booking not found"

    maxListLimit = 1000
)

type BookingHandler struct {
    Bookings BookingStore
    Events   EventPublisher
    // OverlapGuard rejects a create whose room already has an overlapping
    // non-cancelled stay.
    OverlapGuard bool
    Log          logrus.FieldLogger
}

func NewBookingHandler(s BookingStore, events EventPublisher, overlapGuard bool, log logrus.FieldLogger) *BookingHandler {
    return &BookingHandler{Bookings: s, Events: events, OverlapGuard: overlapGuard, Log: log}
}

// List serves GET /api/bookings (default limit 100).
func (h *BookingHandler) List(c echo.Context) error { return h.list(c, 100) }

// ListPage serves GET /api/bookings/list (default limit 50).
func (h *BookingHandler) ListPage(c echo.Context) error { return h.list(c, 50) }

func (h *BookingHandler) list(c echo.Context, defLimit int) error {
    q := repository.BookingQuery{
        Status: c.QueryParam("status"),
        Limit:  queryInt(c, "limit", defLimit),
        Offset: queryInt(c, "offset", 0),
    }
    if q.Status != "" && !model.ValidStatus(q.Status) {
        return echo.NewHTTPError(http.StatusBadRequest, statusMessage)
    }
    if q.Limit == 0 {
        q.Limit = defLimit
    }
    if q.Limit > maxListLimit {
        q.Limit = maxListLimit
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    items, total, err := h.Bookings.List(ctx, q)
    if err != nil {
        return err
    }
    return utils.JSONList(c, http.StatusOK, nonNil(items), utils.ListMeta{Limit: q.Limit, Offset: q.Offset, Total: total})
}

func (h *BookingHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    b, err := h.Bookings.GetByID(ctx, id)
    if err != nil {
        return storeError(err, errBookingNotFound)
    }
    return utils.JSONSuccess(c, http.StatusOK, b)
}

func (h *BookingHandler) GetByReference(c echo.Context) error {
    ref := strings.TrimSpace(c.Param("ref"))
    if ref == "" {
        return echo.ErrNotFound
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    b, err := h.Bookings.GetByReference(ctx, ref)
    if err != nil {
        return storeError(err, errBookingNotFound)
    }
    return utils.JSONSuccess(c, http.StatusOK, b)
}

// Search returns bookings overlapping the window:
// check_in <= check_out_after AND check_out >= check_in_before.
func (h *BookingHandler) Search(c echo.Context) error {
    from, to := c.QueryParam("check_in_before"), c.QueryParam("check_out_after")
    var missing []string
    if from == "" {
        missing = append(missing, "check_in_before")
    }
    if to == "" {
        missing = append(missing, "check_out_after")
    }
    if len(missing) > 0 {
        return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
    }
    if !model.ValidDate(from) || !model.ValidDate(to) {
        return echo.NewHTTPError(http.StatusBadRequest, model.ErrInvalidDate.Error())
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Bookings.SearchByDates(ctx, from, to)
    if err != nil {
        return err
    }
    return utils.JSONSuccess(c, http.StatusOK, nonNil(items))
}

// Create serves POST /api/bookings and /api/bookings/create.  New bookings
// always start pending/pending whatever the body says.
func (h *BookingHandler) Create(c echo.Context) error {
    var in model.BookingInput
    if err := bind(c, &in); err != nil {
        return err
    }
    b := model.NewBooking(in)
    if err := stayError(model.ValidateStay(b.CheckIn, b.CheckOut)); err != nil {
        return err
    }
    if b.Guests < 1 {
        return echo.NewHTTPError(http.StatusBadRequest, "guests must be at least 1")
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if h.OverlapGuard && b.RoomID != nil {
        taken, err := h.Bookings.HasOverlap(ctx, *b.RoomID, b.CheckIn, b.CheckOut)
        if err != nil {
            return err
        }
        if taken {
            return echo.NewHTTPError(http.StatusConflict, "Room is already booked for the selected dates")
        }
    }

    created, err := h.Bookings.Create(ctx, b)
    if errors.Is(err, repository.ErrConflict) {
        return echo.NewHTTPError(http.StatusConflict, "Booking reference already exists")
    }
    if err != nil {
        return err
    }

    if h.Events != nil {
        h.Events.PublishAsync(queue.NewBookingCreatedEvent(*created))
    }
    return utils.JSONMessage(c, http.StatusCreated, created, "Booking created")
}

// Update applies the present fields.  booking_reference is immutable and
// ignored when sent, so clients may PUT a whole row back.
func (h *BookingHandler) Update(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var in model.BookingInput
    if err := decode(c, &in); err != nil {
        return err
    }
    if in.Status != nil && !model.ValidStatus(*in.Status) {
        return echo.NewHTTPError(http.StatusBadRequest, statusMessage)
    }
    if in.PaymentStatus != nil && !model.ValidPaymentStatus(*in.PaymentStatus) {
        return echo.NewHTTPError(http.StatusBadRequest, paymentMessage)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    // a date change is checked against the stored other end of the stay
    if in.CheckIn != nil || in.CheckOut != nil {
        cur, err := h.Bookings.GetByID(ctx, id)
        if err != nil {
            return storeError(err, errBookingNotFound)
        }
        checkIn, checkOut := cur.CheckIn, cur.CheckOut
        if in.CheckIn != nil {
            checkIn = *in.CheckIn
        }
        if in.CheckOut != nil {
            checkOut = *in.CheckOut
        }
        if err := stayError(model.ValidateStay(checkIn, checkOut)); err != nil {
            return err
        }
    }

    b, err := h.Bookings.Update(ctx, id, in)
    if err != nil {
        return storeError(err, errBookingNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, b, "Booking updated")
}

type statusReq struct {
    Status        string  `json:"status" validate:"required"`
    PaymentStatus *string `json:"payment_status"`
}

var (
    statusMessage  = "status must be one of: pending, confirmed, checked_in, cancelled"
    paymentMessage = "payment_status must be one of: pending, completed"
)

// UpdateStatus sets status and optionally payment_status.  Any transition
// is allowed.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    var req statusReq
    if err := bind(c, &req); err != nil {
        return err
    }
    if !model.ValidStatus(req.Status) {
        return echo.NewHTTPError(http.StatusBadRequest, statusMessage)
    }
    if req.PaymentStatus != nil && !model.ValidPaymentStatus(*req.PaymentStatus) {
        return echo.NewHTTPError(http.StatusBadRequest, paymentMessage)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    b, err := h.Bookings.UpdateStatus(ctx, id, req.Status, req.PaymentStatus)
    if err != nil {
        return storeError(err, errBookingNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, b, "Booking status updated")
}

func (h *BookingHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return err
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Bookings.Delete(ctx, id); err != nil {
        return storeError(err, errBookingNotFound)
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"id": id}, "Booking deleted")
}

func stayError(err error) error {
    if err == nil {
        return nil
    }
    return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
