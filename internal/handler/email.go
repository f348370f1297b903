package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/utils"
)

// EmailSender sends one booking email and reports the attempt.
type EmailSender interface {
    Send(ctx context.Context, kind string, b model.BookingEmail) model.EmailRecord
}

type EmailRecordStore interface {
    List(ctx context.Context, ref string) (map[string]model.EmailRecord, error)
}

type EmailHandler struct {
    Notifier EmailSender
    Records  EmailRecordStore
}

func NewEmailHandler(n EmailSender, records EmailRecordStore) *EmailHandler {
    return &EmailHandler{Notifier: n, Records: records}
}

type emailResp struct {
    ID       string `json:"id"`
    To       string `json:"to"`
    ResendID string `json:"resend_id"`
    Error    string `json:"error,omitempty"`
}

// BookingConfirmation serves POST /api/email/booking-confirmation.  The
// guest address comes from "to" or "email".
func (h *EmailHandler) BookingConfirmation(c echo.Context) error {
    return h.send(c, model.EmailGuest)
}

// AdminNotification serves POST /api/email/admin-notification.  Without
// "to" the admin_email setting is used.
func (h *EmailHandler) AdminNotification(c echo.Context) error {
    return h.send(c, model.EmailAdmin)
}

// send answers 200 even when delivery fails; the failure is reported in
// the error field and kept in the email record.
func (h *EmailHandler) send(c echo.Context, kind string) error {
    var b model.BookingEmail
    if err := bind(c, &b); err != nil {
        return err
    }
    if kind == model.EmailGuest && b.To == "" && b.Email == "" {
        return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: email")
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    rec := h.Notifier.Send(ctx, kind, b)
    msg := "Email sent"
    if rec.Error != "" {
        msg = "Email could not be sent"
    }
    return utils.JSONMessage(c, http.StatusOK, emailResp{
        ID:       rec.ID,
        To:       rec.To,
        ResendID: rec.ResendID,
        Error:    rec.Error,
    }, msg)
}

// StatusChange acknowledges a status change notification without sending.
func (h *EmailHandler) StatusChange(c echo.Context) error {
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"sent": false}, "Status change notification received")
}

// ListRecords serves GET /api/email/records/:reference.
func (h *EmailHandler) ListRecords(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    ref := c.Param("reference")
    recs, err := h.Records.List(ctx, ref)
    if err != nil {
        return storeError(err, "Email records not found")
    }
    return utils.JSONSuccess(c, http.StatusOK, echo.Map{"booking_reference": ref, "records": recs})
}
