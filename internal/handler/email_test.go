package handler

import (
    "context"
    "net/http"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/repository"
)

type fakeNotifier struct {
    kinds []string
    fail  string
}

func (f *fakeNotifier) Send(_ context.Context, kind string, b model.BookingEmail) model.EmailRecord {
    f.kinds = append(f.kinds, kind)
    rec := model.EmailRecord{ID: "rec-1", Type: kind, To: b.Email, Booking: b}
    if f.fail != "" {
        rec.Error = f.fail
        return rec
    }
    rec.ResendID = "re_42"
    return rec
}

type fakeRecordStore struct {
    recs map[string]model.EmailRecord
    err  error
}

func (f fakeRecordStore) List(context.Context, string) (map[string]model.EmailRecord, error) {
    return f.recs, f.err
}

func TestBookingConfirmationEmail(t *testing.T) {
    n := &fakeNotifier{}
    h := NewEmailHandler(n, fakeRecordStore{})

    c, rec := newCtx(http.MethodPost, "/api/email/booking-confirmation",
        `{"booking_reference":"BK1","email":"ana@x.test","check_in":"2025-06-01","check_out":"2025-06-03"}`)
    require.NoError(t, h.BookingConfirmation(c))
    assert.Equal(t, http.StatusOK, rec.Code)

    var out emailResp
    env := readData(t, rec, &out)
    assert.Equal(t, "Email sent", env.Message)
    assert.Equal(t, "re_42", out.ResendID)
    assert.Empty(t, out.Error)
    assert.Equal(t, []string{model.EmailGuest}, n.kinds)
}

func TestEmail_FailureStillSucceeds(t *testing.T) {
    n := &fakeNotifier{fail: "resend: 401 unauthorized"}
    h := NewEmailHandler(n, fakeRecordStore{})

    c, rec := newCtx(http.MethodPost, "/api/email/admin-notification", `{"booking_reference":"BK1"}`)
    require.NoError(t, h.AdminNotification(c))
    assert.Equal(t, http.StatusOK, rec.Code)

    var out emailResp
    readData(t, rec, &out)
    assert.Equal(t, "resend: 401 unauthorized", out.Error)
    assert.Empty(t, out.ResendID)
    assert.Equal(t, []string{model.EmailAdmin}, n.kinds)
}

func TestEmail_RequiresReferenceAndRecipient(t *testing.T) {
    n := &fakeNotifier{}
    h := NewEmailHandler(n, fakeRecordStore{})

    c, _ := newCtx(http.MethodPost, "/api/email/booking-confirmation", `{"email":"ana@x.test"}`)
    assert.Equal(t, "Missing required fields: booking_reference", httpError(t, h.BookingConfirmation(c), http.StatusBadRequest))

    c, _ = newCtx(http.MethodPost, "/api/email/booking-confirmation", `{"booking_reference":"BK1"}`)
    assert.Equal(t, "Missing required fields: email", httpError(t, h.BookingConfirmation(c), http.StatusBadRequest))
    assert.Empty(t, n.kinds)
}

func TestEmail_StatusChangeSendsNothing(t *testing.T) {
    n := &fakeNotifier{}
    h := NewEmailHandler(n, fakeRecordStore{})

    c, rec := newCtx(http.MethodPost, "/api/email/status-change", `{"booking_reference":"BK1","status":"confirmed"}`)
    require.NoError(t, h.StatusChange(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Empty(t, n.kinds)
}

func TestEmail_Records(t *testing.T) {
    h := NewEmailHandler(&fakeNotifier{}, fakeRecordStore{recs: map[string]model.EmailRecord{
        model.EmailGuest: {ID: "1", Type: model.EmailGuest, ResendID: "re_1"},
    }})
    c, rec := newCtx(http.MethodGet, "/api/email/records/BK1", "")
    require.NoError(t, h.ListRecords(withParams(c, "reference", "BK1")))
    var out struct {
        Reference string                       `json:"booking_reference"`
        Records   map[string]model.EmailRecord `json:"records"`
    }
    readData(t, rec, &out)
    assert.Equal(t, "BK1", out.Reference)
    assert.Equal(t, "re_1", out.Records[model.EmailGuest].ResendID)

    h = NewEmailHandler(&fakeNotifier{}, fakeRecordStore{err: repository.ErrUnavailable})
    c, _ = newCtx(http.MethodGet, "/api/email/records/BK1", "")
    httpError(t, h.ListRecords(withParams(c, "reference", "BK1")), http.StatusServiceUnavailable)
}
