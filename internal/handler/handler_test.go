package handler

import (
    "context"
    "encoding/json"
    "io"
    "net/http/httptest"
    "strings"
    "sync"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/queue"
    "github.com/iliyamo/villa-booking/internal/repository"
)

// --- helpers ---

type envelope struct {
    Success bool            `json:"success"`
    Data    json.RawMessage `json:"data"`
    Error   string          `json:"error"`
    Message string          `json:"message"`
    Meta    json.RawMessage `json:"meta"`
}

func newCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    var r io.Reader
    if body != "" {
        r = strings.NewReader(body)
    }
    req := httptest.NewRequest(method, target, r)
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func withParams(c echo.Context, kv ...string) echo.Context {
    var names, values []string
    for i := 0; i+1 < len(kv); i += 2 {
        names = append(names, kv[i])
        values = append(values, kv[i+1])
    }
    c.SetParamNames(names...)
    c.SetParamValues(values...)
    return c
}

func readEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
    t.Helper()
    var env envelope
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
    return env
}

func readData(t *testing.T, rec *httptest.ResponseRecorder, dst any) envelope {
    t.Helper()
    env := readEnvelope(t, rec)
    require.True(t, env.Success, rec.Body.String())
    require.NoError(t, json.Unmarshal(env.Data, dst))
    return env
}

// httpError asserts err is an *echo.HTTPError with the given code and returns
// its message.
func httpError(t *testing.T, err error, code int) string {
    t.Helper()
    var he *echo.HTTPError
    require.ErrorAs(t, err, &he)
    require.Equal(t, code, he.Code)
    msg, _ := he.Message.(string)
    return msg
}

func quietLog() logrus.FieldLogger {
    l := logrus.New()
    l.SetOutput(io.Discard)
    return l
}

// --- fake rooms ---

type memRooms struct {
    mu        sync.Mutex
    next      uint64
    rooms     map[uint64]*model.Room
    amenities map[uint64][]uint64
}

func newMemRooms() *memRooms {
    return &memRooms{rooms: map[uint64]*model.Room{}, amenities: map[uint64][]uint64{}}
}

func (m *memRooms) List(_ context.Context, active *bool) ([]*model.Room, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var out []*model.Room
    for id := uint64(1); id <= m.next; id++ {
        r, ok := m.rooms[id]
        if !ok || (active != nil && r.IsActive != *active) {
            continue
        }
        out = append(out, r)
    }
    return out, nil
}

func (m *memRooms) GetByID(_ context.Context, id uint64) (*model.Room, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    r, ok := m.rooms[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    return r, nil
}

func (m *memRooms) Create(_ context.Context, r model.Room) (*model.Room, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    if r.ID == 0 {
        m.next++
        r.ID = m.next
    } else if r.ID > m.next {
        m.next = r.ID
    }
    r.CreatedAt = time.Now().UTC()
    r.UpdatedAt = r.CreatedAt
    m.rooms[r.ID] = &r
    return &r, nil
}

func (m *memRooms) Update(_ context.Context, id uint64, in model.RoomInput) (*model.Room, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    r, ok := m.rooms[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    if in.Name != nil {
        r.Name = *in.Name
    }
    if in.Price != nil {
        r.Price = *in.Price
    }
    if a := in.Active(); a != nil {
        r.IsActive, r.Available = *a, *a
    }
    return r, nil
}

func (m *memRooms) Deactivate(_ context.Context, id uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    r, ok := m.rooms[id]
    if !ok {
        return repository.ErrNotFound
    }
    r.IsActive, r.Available = false, false
    return nil
}

func (m *memRooms) Delete(_ context.Context, id uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    if _, ok := m.rooms[id]; !ok {
        return repository.ErrNotFound
    }
    delete(m.rooms, id)
    return nil
}

func (m *memRooms) ListAmenities(_ context.Context, roomID uint64) ([]*model.Amenity, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var out []*model.Amenity
    for _, id := range m.amenities[roomID] {
        out = append(out, &model.Amenity{ID: id})
    }
    return out, nil
}

func (m *memRooms) AddAmenity(_ context.Context, roomID, amenityID uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.amenities[roomID] = append(m.amenities[roomID], amenityID)
    return nil
}

func (m *memRooms) RemoveAmenity(_ context.Context, roomID, amenityID uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    ids := m.amenities[roomID][:0]
    for _, id := range m.amenities[roomID] {
        if id != amenityID {
            ids = append(ids, id)
        }
    }
    m.amenities[roomID] = ids
    return nil
}

// --- fake bookings ---

type memBookings struct {
    mu       sync.Mutex
    next     uint64
    bookings map[uint64]*model.Booking
    overlap  bool
    lastList repository.BookingQuery
}

func newMemBookings() *memBookings {
    return &memBookings{bookings: map[uint64]*model.Booking{}}
}

func (m *memBookings) List(_ context.Context, q repository.BookingQuery) ([]*model.Booking, int, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.lastList = q
    var out []*model.Booking
    for id := m.next; id >= 1; id-- {
        b, ok := m.bookings[id]
        if !ok || (q.Status != "" && b.Status != q.Status) {
            continue
        }
        out = append(out, b)
    }
    total := len(out)
    if q.Offset < len(out) {
        out = out[q.Offset:]
    } else {
        out = nil
    }
    if len(out) > q.Limit {
        out = out[:q.Limit]
    }
    return out, total, nil
}

func (m *memBookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    b, ok := m.bookings[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    return b, nil
}

func (m *memBookings) GetByReference(_ context.Context, ref string) (*model.Booking, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    for _, b := range m.bookings {
        if b.BookingReference == ref {
            return b, nil
        }
    }
    return nil, repository.ErrNotFound
}

func (m *memBookings) SearchByDates(_ context.Context, from, to string) ([]*model.Booking, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var out []*model.Booking
    for id := uint64(1); id <= m.next; id++ {
        if b, ok := m.bookings[id]; ok && b.Within(from, to) {
            out = append(out, b)
        }
    }
    return out, nil
}

func (m *memBookings) HasOverlap(context.Context, uint64, string, string) (bool, error) {
    return m.overlap, nil
}

func (m *memBookings) Create(_ context.Context, b model.Booking) (*model.Booking, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    for _, x := range m.bookings {
        if x.BookingReference == b.BookingReference {
            return nil, repository.ErrConflict
        }
    }
    m.next++
    b.ID = m.next
    b.CreatedAt = time.Now().UTC()
    b.UpdatedAt = b.CreatedAt
    m.bookings[b.ID] = &b
    return &b, nil
}

func (m *memBookings) Update(_ context.Context, id uint64, in model.BookingInput) (*model.Booking, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    b, ok := m.bookings[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    if in.CheckIn != nil {
        b.CheckIn = *in.CheckIn
    }
    if in.CheckOut != nil {
        b.CheckOut = *in.CheckOut
    }
    if in.Guests != nil {
        b.Guests = *in.Guests
    }
    if in.Status != nil {
        b.Status = *in.Status
    }
    if in.RoomID.Present {
        b.RoomID = in.RoomID.ID
    }
    if in.PackageID.Present {
        b.PackageID = in.PackageID.ID
    }
    return b, nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id uint64, status string, payment *string) (*model.Booking, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    b, ok := m.bookings[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    b.Status = status
    if payment != nil {
        b.PaymentStatus = *payment
    }
    return b, nil
}

func (m *memBookings) Delete(_ context.Context, id uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    if _, ok := m.bookings[id]; !ok {
        return repository.ErrNotFound
    }
    delete(m.bookings, id)
    return nil
}

type capturePublisher struct {
    mu     sync.Mutex
    events []queue.BookingCreatedEvent
}

func (p *capturePublisher) PublishAsync(ev queue.BookingCreatedEvent) {
    p.mu.Lock()
    p.events = append(p.events, ev)
    p.mu.Unlock()
}
