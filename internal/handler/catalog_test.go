package handler

import (
    "context"
    "net/http"
    "net/http/httptest"
    "sort"
    "sync"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/repository"
)

// The validation tests below use nil stores: every request is rejected
// before a store would be called.

func TestPackage_Validation(t *testing.T) {
    h := NewPackageHandler(nil)
    cases := map[string]string{
        `{"name":"Honeymoon","discount_percentage":120}`: "discount_percentage must be between 0 and 100",
        `{"name":"Honeymoon","discount_percentage":-1}`:  "discount_percentage must be between 0 and 100",
        `{"name":"Honeymoon","base_price":-10}`:          "base_price must not be negative",
        `{"name":"Honeymoon","valid_from":"2025-13-01"}`: model.ErrInvalidDate.Error(),
        `{"description":"no name"}`:                      "Missing required fields: name",
    }
    for body, want := range cases {
        c, _ := newCtx(http.MethodPost, "/api/packages", body)
        assert.Equal(t, want, httpError(t, h.Create(c), http.StatusBadRequest), body)
    }

    c, _ := newCtx(http.MethodPost, "/api/packages/3/rooms", `{"price_adjustment":10}`)
    assert.Equal(t, "Missing required fields: room_id", httpError(t, h.AddRoom(withParams(c, "id", "3")), http.StatusBadRequest))

    c, _ = newCtx(http.MethodPost, "/api/packages/3/rooms", `{"room_id":1,"adjustment_type":"bogus"}`)
    httpError(t, h.AddRoom(withParams(c, "id", "3")), http.StatusBadRequest)

    c, _ = newCtx(http.MethodPost, "/api/packages/3/inclusions", `{}`)
    assert.Equal(t, "Missing required fields: inclusion_id", httpError(t, h.AddInclusion(withParams(c, "id", "3")), http.StatusBadRequest))
}

type fakeVilla struct{ info *model.VillaInfo }

func (f *fakeVilla) Get(context.Context) (*model.VillaInfo, error) {
    if f.info == nil {
        return nil, repository.ErrNotFound
    }
    return f.info, nil
}

func (f *fakeVilla) Update(_ context.Context, in model.VillaInput) (*model.VillaInfo, error) {
    if f.info == nil {
        f.info = &model.VillaInfo{}
    }
    if in.Name != nil {
        f.info.Name = *in.Name
    }
    return f.info, nil
}

func TestVilla_GetAndUpdate(t *testing.T) {
    h := NewVillaHandler(&fakeVilla{})

    c, _ := newCtx(http.MethodGet, "/api/villa", "")
    assert.Equal(t, "Villa information not found", httpError(t, h.Get(c), http.StatusNotFound))

    c, _ = newCtx(http.MethodPut, "/api/villa", `{"check_in_time":"3pm"}`)
    httpError(t, h.Update(c), http.StatusBadRequest)

    c, rec := newCtx(http.MethodPut, "/api/villa", `{"name":"Villa Sole","check_in_time":"15:00"}`)
    require.NoError(t, h.Update(c))
    var v model.VillaInfo
    env := readData(t, rec, &v)
    assert.Equal(t, "Villa Sole", v.Name)
    assert.Equal(t, "Villa information updated", env.Message)

    c, _ = newCtx(http.MethodGet, "/api/villa", "")
    require.NoError(t, h.Get(c))
}

func TestValidClock(t *testing.T) {
    for s, ok := range map[string]bool{
        "00:00": true,
        "23:59": true,
        "15:00": true,
        "24:00": false,
        "9:00":  false,
        "3pm":   false,
        "":      false,
    } {
        assert.Equal(t, ok, validClock(s), s)
    }
}

func TestAmenityAndInclusion_Validation(t *testing.T) {
    a := NewAmenityHandler(nil)
    c, _ := newCtx(http.MethodPost, "/api/amenities", `{"name":"Sauna","icon":"rocket"}`)
    assert.Equal(t, "Unknown icon: rocket", httpError(t, a.Create(c), http.StatusBadRequest))

    c, _ = newCtx(http.MethodPut, "/api/amenities/2", `{"icon":"nope"}`)
    httpError(t, a.Update(withParams(c, "id", "2")), http.StatusBadRequest)

    c, rec := newCtx(http.MethodGet, "/api/amenities/icons", "")
    require.NoError(t, a.Icons(c))
    var icons []model.Icon
    readData(t, rec, &icons)
    assert.Equal(t, model.Icons, icons)

    i := NewInclusionHandler(nil)
    c, _ = newCtx(http.MethodPost, "/api/inclusions", `{"name":"Dinner","category":"food"}`)
    assert.Equal(t, categoryMessage, httpError(t, i.Create(c), http.StatusBadRequest))

    c, _ = newCtx(http.MethodPost, "/api/inclusions", `{"name":"Dinner"}`)
    assert.Equal(t, "Missing required fields: category", httpError(t, i.Create(c), http.StatusBadRequest))

    c, _ = newCtx(http.MethodPost, "/api/inclusions", `{"name":"Dinner","category":"meals","icon":"rocket"}`)
    httpError(t, i.Create(c), http.StatusBadRequest)
}

// --- fake packages ---

type memPackages struct {
    mu         sync.Mutex
    next       uint64
    pkgs       map[uint64]*model.Package
    rooms      map[uint64][]model.PackageRoom
    inclusions map[uint64][]uint64
    amenities  map[uint64][]uint64
    lastFilter repository.PackageFilter
}

func newMemPackages() *memPackages {
    return &memPackages{
        pkgs:       map[uint64]*model.Package{},
        rooms:      map[uint64][]model.PackageRoom{},
        inclusions: map[uint64][]uint64{},
        amenities:  map[uint64][]uint64{},
    }
}

func (m *memPackages) List(_ context.Context, f repository.PackageFilter) ([]*model.Package, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.lastFilter = f
    var out []*model.Package
    for id := uint64(1); id <= m.next; id++ {
        p, ok := m.pkgs[id]
        if !ok ||
            (f.Active != nil && p.IsActive != *f.Active) ||
            (f.Category != "" && p.MarketingCategory != f.Category) ||
            (f.Type != "" && p.PackageType != f.Type) {
            continue
        }
        out = append(out, p)
    }
    return out, nil
}

func (m *memPackages) Categories(context.Context) ([]model.CategoryCount, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    counts := map[string]int{}
    for _, p := range m.pkgs {
        if p.IsActive && p.MarketingCategory != "" {
            counts[p.MarketingCategory]++
        }
    }
    var out []model.CategoryCount
    for cat, n := range counts {
        out = append(out, model.CategoryCount{Category: cat, Count: n})
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
    return out, nil
}

func (m *memPackages) GetByID(_ context.Context, id uint64) (*model.Package, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    p, ok := m.pkgs[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    return p, nil
}

func (m *memPackages) Create(_ context.Context, p model.Package) (*model.Package, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.next++
    p.ID = m.next
    m.pkgs[p.ID] = &p
    return &p, nil
}

func (m *memPackages) Update(_ context.Context, id uint64, in model.PackageInput) (*model.Package, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    p, ok := m.pkgs[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    if in.Name != nil {
        p.Name = *in.Name
    }
    if in.DiscountPercentage != nil {
        p.DiscountPercentage = *in.DiscountPercentage
    }
    if in.IsActive != nil {
        p.IsActive = *in.IsActive
    }
    return p, nil
}

func (m *memPackages) Delete(_ context.Context, id uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    if _, ok := m.pkgs[id]; !ok {
        return repository.ErrNotFound
    }
    delete(m.pkgs, id)
    return nil
}

func (m *memPackages) ListRooms(_ context.Context, p *model.Package) ([]*model.PackageRoom, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var out []*model.PackageRoom
    for _, pr := range m.rooms[p.ID] {
        pr := pr
        pr.EffectivePrice = model.EffectivePrice(p.BasePrice, p.DiscountPercentage, pr.PriceAdjustment, pr.AdjustmentType)
        out = append(out, &pr)
    }
    return out, nil
}

func (m *memPackages) AddRoom(_ context.Context, pr model.PackageRoom) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    rooms := m.rooms[pr.PackageID]
    for i := range rooms {
        if rooms[i].RoomID == pr.RoomID {
            rooms[i] = pr
            return nil
        }
    }
    m.rooms[pr.PackageID] = append(rooms, pr)
    return nil
}

func (m *memPackages) RemoveRoom(_ context.Context, packageID, roomID uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    rooms := m.rooms[packageID]
    for i := range rooms {
        if rooms[i].RoomID == roomID {
            m.rooms[packageID] = append(rooms[:i], rooms[i+1:]...)
            return nil
        }
    }
    return repository.ErrNotFound
}

func (m *memPackages) ListInclusions(_ context.Context, packageID uint64) ([]*model.Inclusion, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var out []*model.Inclusion
    for _, id := range m.inclusions[packageID] {
        out = append(out, &model.Inclusion{ID: id})
    }
    return out, nil
}

func (m *memPackages) AddInclusion(_ context.Context, packageID, inclusionID uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    addJoin(m.inclusions, packageID, inclusionID)
    return nil
}

func (m *memPackages) RemoveInclusion(_ context.Context, packageID, inclusionID uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    return removeJoin(m.inclusions, packageID, inclusionID)
}

func (m *memPackages) ListAmenities(_ context.Context, packageID uint64) ([]*model.Amenity, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var out []*model.Amenity
    for _, id := range m.amenities[packageID] {
        out = append(out, &model.Amenity{ID: id})
    }
    return out, nil
}

func (m *memPackages) AddAmenity(_ context.Context, packageID, amenityID uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    addJoin(m.amenities, packageID, amenityID)
    return nil
}

func (m *memPackages) RemoveAmenity(_ context.Context, packageID, amenityID uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    return removeJoin(m.amenities, packageID, amenityID)
}

// addJoin ignores a link that already exists, like INSERT IGNORE.
func addJoin(joins map[uint64][]uint64, id, other uint64) {
    for _, x := range joins[id] {
        if x == other {
            return
        }
    }
    joins[id] = append(joins[id], other)
}

func removeJoin(joins map[uint64][]uint64, id, other uint64) error {
    for i, x := range joins[id] {
        if x == other {
            joins[id] = append(joins[id][:i], joins[id][i+1:]...)
            return nil
        }
    }
    return repository.ErrNotFound
}

func createPackage(t *testing.T, h *PackageHandler, body string) model.Package {
    t.Helper()
    c, rec := newCtx(http.MethodPost, "/api/packages", body)
    require.NoError(t, h.Create(c))
    require.Equal(t, http.StatusCreated, rec.Code)
    var p model.Package
    readData(t, rec, &p)
    return p
}

func TestPackage_CRUD(t *testing.T) {
    h := NewPackageHandler(newMemPackages())

    p := createPackage(t, h, `{"name":"Honeymoon Escape","package_type":"romance","marketing_category":"couples",
        "base_price":300,"discount_percentage":10,"valid_from":""}`)
    assert.Equal(t, uint64(1), p.ID)
    assert.Equal(t, 1, p.MinNights)
    assert.True(t, p.IsActive)
    assert.Nil(t, p.ValidFrom)
    assert.NotNil(t, p.Inclusions)

    c, rec := newCtx(http.MethodGet, "/api/packages/1", "")
    require.NoError(t, h.Get(withParams(c, "id", "1")))
    var got model.Package
    readData(t, rec, &got)
    assert.Equal(t, "Honeymoon Escape", got.Name)

    c, rec = newCtx(http.MethodPut, "/api/packages/1", `{"name":"Honeymoon Deluxe","discount_percentage":15}`)
    require.NoError(t, h.Update(withParams(c, "id", "1")))
    env := readData(t, rec, &got)
    assert.Equal(t, "Package updated", env.Message)
    assert.Equal(t, "Honeymoon Deluxe", got.Name)
    assert.Equal(t, 15.0, got.DiscountPercentage)

    c, _ = newCtx(http.MethodPut, "/api/packages/1", `{"discount_percentage":101}`)
    httpError(t, h.Update(withParams(c, "id", "1")), http.StatusBadRequest)

    c, rec = newCtx(http.MethodDelete, "/api/packages/1", "")
    require.NoError(t, h.Delete(withParams(c, "id", "1")))
    assert.Equal(t, "Package deleted", readEnvelope(t, rec).Message)

    c, _ = newCtx(http.MethodGet, "/api/packages/1", "")
    assert.Equal(t, errPackageNotFound, httpError(t, h.Get(withParams(c, "id", "1")), http.StatusNotFound))

    c, _ = newCtx(http.MethodDelete, "/api/packages/1", "")
    assert.Equal(t, errPackageNotFound, httpError(t, h.Delete(withParams(c, "id", "1")), http.StatusNotFound))
}

func TestPackage_ListFiltersAndCategories(t *testing.T) {
    store := newMemPackages()
    h := NewPackageHandler(store)
    createPackage(t, h, `{"name":"Honeymoon","package_type":"romance","marketing_category":"couples"}`)
    createPackage(t, h, `{"name":"Anniversary","package_type":"romance","marketing_category":"couples"}`)
    createPackage(t, h, `{"name":"Family Fun","package_type":"family","marketing_category":"families"}`)
    createPackage(t, h, `{"name":"Retired","package_type":"family","marketing_category":"families","is_active":false}`)

    c, rec := newCtx(http.MethodGet, "/api/packages", "")
    require.NoError(t, h.List(c))
    var items []model.Package
    readData(t, rec, &items)
    assert.Len(t, items, 4)
    assert.Nil(t, store.lastFilter.Active)

    c, rec = newCtx(http.MethodGet, "/api/packages?active=true&type=family", "")
    require.NoError(t, h.List(c))
    readData(t, rec, &items)
    require.Len(t, items, 1)
    assert.Equal(t, "Family Fun", items[0].Name)
    require.NotNil(t, store.lastFilter.Active)
    assert.True(t, *store.lastFilter.Active)
    assert.Equal(t, "family", store.lastFilter.Type)

    c, rec = newCtx(http.MethodGet, "/api/packages?category=couples&active=nope", "")
    require.NoError(t, h.List(c))
    readData(t, rec, &items)
    assert.Len(t, items, 2)
    assert.Equal(t, repository.PackageFilter{Category: "couples"}, store.lastFilter)

    // no match still renders an empty array
    c, rec = newCtx(http.MethodGet, "/api/packages?category=solo", "")
    require.NoError(t, h.List(c))
    assert.Equal(t, "[]", string(readEnvelope(t, rec).Data))

    c, rec = newCtx(http.MethodGet, "/api/packages/categories", "")
    require.NoError(t, h.Categories(c))
    var cats []model.CategoryCount
    readData(t, rec, &cats)
    assert.Equal(t, []model.CategoryCount{{Category: "couples", Count: 2}, {Category: "families", Count: 1}}, cats)
}

func TestPackage_Rooms(t *testing.T) {
    h := NewPackageHandler(newMemPackages())
    createPackage(t, h, `{"name":"Honeymoon","base_price":200,"discount_percentage":10}`)

    c, rec := newCtx(http.MethodPost, "/api/packages/1/rooms", `{"room_id":"2","price_adjustment":20}`)
    require.NoError(t, h.AddRoom(withParams(c, "id", "1")))
    assert.Equal(t, http.StatusCreated, rec.Code)
    var pr model.PackageRoom
    readData(t, rec, &pr)
    assert.Equal(t, model.AdjustmentFixed, pr.AdjustmentType)

    c, _ = newCtx(http.MethodPost, "/api/packages/1/rooms", `{"room_id":3,"price_adjustment":-50,"adjustment_type":"percentage","is_default":true}`)
    require.NoError(t, h.AddRoom(withParams(c, "id", "1")))

    c, rec = newCtx(http.MethodGet, "/api/packages/1/rooms", "")
    require.NoError(t, h.ListRooms(withParams(c, "id", "1")))
    var rooms []model.PackageRoom
    readData(t, rec, &rooms)
    require.Len(t, rooms, 2)
    assert.Equal(t, 200.0, rooms[0].EffectivePrice)
    assert.Equal(t, 90.0, rooms[1].EffectivePrice)

    c, rec = newCtx(http.MethodDelete, "/api/packages/1/rooms/2", "")
    require.NoError(t, h.RemoveRoom(withParams(c, "id", "1", "room_id", "2")))
    assert.Equal(t, "Room removed from package", readEnvelope(t, rec).Message)

    c, _ = newCtx(http.MethodDelete, "/api/packages/1/rooms/2", "")
    assert.Equal(t, "Package link not found", httpError(t, h.RemoveRoom(withParams(c, "id", "1", "room_id", "2")), http.StatusNotFound))

    c, _ = newCtx(http.MethodGet, "/api/packages/9/rooms", "")
    assert.Equal(t, errPackageNotFound, httpError(t, h.ListRooms(withParams(c, "id", "9")), http.StatusNotFound))
}

func TestPackage_InclusionAndAmenityLinks(t *testing.T) {
    store := newMemPackages()
    h := NewPackageHandler(store)

    c, _ := newCtx(http.MethodPost, "/api/packages/1/inclusions", `{}`)
    assert.Equal(t, "Missing required fields: inclusion_id", httpError(t, h.AddInclusion(withParams(c, "id", "1")), http.StatusBadRequest))

    c, rec := newCtx(http.MethodPost, "/api/packages/1/inclusions", `{"inclusion_id":"7"}`)
    require.NoError(t, h.AddInclusion(withParams(c, "id", "1")))
    assert.Equal(t, http.StatusCreated, rec.Code)
    env := readEnvelope(t, rec)
    assert.Equal(t, "Inclusion added to package", env.Message)
    assert.JSONEq(t, `{"package_id":1,"inclusion_id":7}`, string(env.Data))

    // linking twice keeps one row
    c, _ = newCtx(http.MethodPost, "/api/packages/1/inclusions", `{"inclusion_id":7}`)
    require.NoError(t, h.AddInclusion(withParams(c, "id", "1")))
    assert.Equal(t, []uint64{7}, store.inclusions[1])

    c, rec = newCtx(http.MethodGet, "/api/packages/1/inclusions", "")
    require.NoError(t, h.ListInclusions(withParams(c, "id", "1")))
    var incs []model.Inclusion
    readData(t, rec, &incs)
    require.Len(t, incs, 1)
    assert.Equal(t, uint64(7), incs[0].ID)

    c, _ = newCtx(http.MethodDelete, "/api/packages/1/inclusions/7", "")
    require.NoError(t, h.RemoveInclusion(withParams(c, "id", "1", "inclusion_id", "7")))
    assert.Empty(t, store.inclusions[1])

    c, _ = newCtx(http.MethodDelete, "/api/packages/1/inclusions/7", "")
    httpError(t, h.RemoveInclusion(withParams(c, "id", "1", "inclusion_id", "7")), http.StatusNotFound)

    c, _ = newCtx(http.MethodPost, "/api/packages/1/amenities", `{"amenity_id":0}`)
    assert.Equal(t, "Missing required fields: amenity_id", httpError(t, h.AddAmenity(withParams(c, "id", "1")), http.StatusBadRequest))

    c, _ = newCtx(http.MethodPost, "/api/packages/1/amenities", `{"amenity_id":4}`)
    require.NoError(t, h.AddAmenity(withParams(c, "id", "1")))

    c, rec = newCtx(http.MethodGet, "/api/packages/1/amenities", "")
    require.NoError(t, h.ListAmenities(withParams(c, "id", "1")))
    var ams []model.Amenity
    readData(t, rec, &ams)
    require.Len(t, ams, 1)
    assert.Equal(t, uint64(4), ams[0].ID)

    c, rec = newCtx(http.MethodDelete, "/api/packages/1/amenities/4", "")
    require.NoError(t, h.RemoveAmenity(withParams(c, "id", "1", "amenity_id", "4")))
    assert.Equal(t, "Amenity removed from package", readEnvelope(t, rec).Message)
    assert.Empty(t, store.amenities[1])

    c, _ = newCtx(http.MethodDelete, "/api/packages/1/amenities/x", "")
    httpError(t, h.RemoveAmenity(withParams(c, "id", "1", "amenity_id", "x")), http.StatusNotFound)
}

// --- fake amenities and inclusions ---

type memAmenities struct {
    mu         sync.Mutex
    next       uint64
    items      map[uint64]*model.Amenity
    lastFilter repository.AmenityFilter
}

func newMemAmenities() *memAmenities { return &memAmenities{items: map[uint64]*model.Amenity{}} }

func (m *memAmenities) List(_ context.Context, f repository.AmenityFilter) ([]*model.Amenity, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.lastFilter = f
    var out []*model.Amenity
    for id := uint64(1); id <= m.next; id++ {
        a, ok := m.items[id]
        if !ok ||
            (f.Category != "" && a.Category != f.Category) ||
            (f.Featured && !a.IsFeatured) ||
            (f.ActiveOnly && !a.IsActive) {
            continue
        }
        out = append(out, a)
    }
    return out, nil
}

func (m *memAmenities) GetByID(_ context.Context, id uint64) (*model.Amenity, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    a, ok := m.items[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    return a, nil
}

func (m *memAmenities) Create(_ context.Context, a model.Amenity) (*model.Amenity, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.next++
    a.ID = m.next
    m.items[a.ID] = &a
    return &a, nil
}

func (m *memAmenities) Update(_ context.Context, id uint64, in model.AmenityInput) (*model.Amenity, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    a, ok := m.items[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    if in.Name != nil {
        a.Name = *in.Name
    }
    if in.IsActive != nil {
        a.IsActive = *in.IsActive
    }
    return a, nil
}

func (m *memAmenities) Delete(_ context.Context, id uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    if _, ok := m.items[id]; !ok {
        return repository.ErrNotFound
    }
    delete(m.items, id)
    return nil
}

type inclusionQuery struct {
    category string
    featured bool
}

type memInclusions struct {
    mu    sync.Mutex
    next  uint64
    items map[uint64]*model.Inclusion
    last  inclusionQuery
}

func newMemInclusions() *memInclusions { return &memInclusions{items: map[uint64]*model.Inclusion{}} }

func (m *memInclusions) List(_ context.Context, category string, featured bool) ([]*model.Inclusion, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.last = inclusionQuery{category, featured}
    var out []*model.Inclusion
    for id := uint64(1); id <= m.next; id++ {
        i, ok := m.items[id]
        if !ok ||
            (category != "" && i.Category != category) ||
            (featured && !(i.IsFeatured && i.IsActive)) {
            continue
        }
        out = append(out, i)
    }
    return out, nil
}

func (m *memInclusions) GetByID(_ context.Context, id uint64) (*model.Inclusion, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    i, ok := m.items[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    return i, nil
}

func (m *memInclusions) Create(_ context.Context, in model.Inclusion) (*model.Inclusion, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.next++
    in.ID = m.next
    m.items[in.ID] = &in
    return &in, nil
}

func (m *memInclusions) Update(_ context.Context, id uint64, in model.InclusionInput) (*model.Inclusion, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    i, ok := m.items[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    if in.Name != nil {
        i.Name = *in.Name
    }
    if in.Category != nil {
        i.Category = *in.Category
    }
    if in.IsFeatured != nil {
        i.IsFeatured = *in.IsFeatured
    }
    return i, nil
}

func (m *memInclusions) Delete(_ context.Context, id uint64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    if _, ok := m.items[id]; !ok {
        return repository.ErrNotFound
    }
    delete(m.items, id)
    return nil
}

func TestAmenity_ListRoutes(t *testing.T) {
    store := newMemAmenities()
    h := NewAmenityHandler(store)
    for _, body := range []string{
        `{"name":"Pool","category":"outdoor","icon":"pool","is_featured":true}`,
        `{"name":"Garden","category":"outdoor","is_active":false,"is_featured":true}`,
        `{"name":"Wifi","category":"tech"}`,
    } {
        c, rec := newCtx(http.MethodPost, "/api/amenities", body)
        require.NoError(t, h.Create(c), body)
        require.Equal(t, http.StatusCreated, rec.Code)
    }

    list := func(f echo.HandlerFunc, c echo.Context, rec *httptest.ResponseRecorder) []string {
        require.NoError(t, f(c))
        var items []model.Amenity
        readData(t, rec, &items)
        out := []string{}
        for _, a := range items {
            out = append(out, a.Name)
        }
        return out
    }

    c, rec := newCtx(http.MethodGet, "/api/amenities", "")
    assert.Equal(t, []string{"Pool", "Garden", "Wifi"}, list(h.List, c, rec))
    assert.Equal(t, repository.AmenityFilter{}, store.lastFilter)

    c, rec = newCtx(http.MethodGet, "/api/amenities?category=outdoor", "")
    assert.Equal(t, []string{"Pool", "Garden"}, list(h.List, c, rec))
    assert.Equal(t, repository.AmenityFilter{Category: "outdoor"}, store.lastFilter)

    c, rec = newCtx(http.MethodGet, "/api/amenities/list", "")
    assert.Equal(t, []string{"Pool", "Wifi"}, list(h.ListActive, c, rec))
    assert.Equal(t, repository.AmenityFilter{ActiveOnly: true}, store.lastFilter)

    c, rec = newCtx(http.MethodGet, "/api/amenities/featured", "")
    assert.Equal(t, []string{"Pool"}, list(h.Featured, c, rec))
    assert.Equal(t, repository.AmenityFilter{Featured: true, ActiveOnly: true}, store.lastFilter)

    c, rec = newCtx(http.MethodGet, "/api/amenities/category/tech", "")
    assert.Equal(t, []string{"Wifi"}, list(h.ByCategory, withParams(c, "category", "tech"), rec))
    assert.Equal(t, repository.AmenityFilter{Category: "tech"}, store.lastFilter)

    c, rec = newCtx(http.MethodGet, "/api/amenities/category/spa", "")
    assert.Empty(t, list(h.ByCategory, withParams(c, "category", "spa"), rec))
}

func TestAmenity_CRUD(t *testing.T) {
    h := NewAmenityHandler(newMemAmenities())

    c, rec := newCtx(http.MethodPost, "/api/amenities", `{"name":"Sauna","icon":"spa","display_order":2}`)
    require.NoError(t, h.Create(c))
    var a model.Amenity
    env := readData(t, rec, &a)
    assert.Equal(t, "Amenity created", env.Message)
    assert.True(t, a.IsActive)
    assert.Equal(t, 2, a.DisplayOrder)

    c, rec = newCtx(http.MethodPut, "/api/amenities/1", `{"name":"Finnish Sauna","is_active":false}`)
    require.NoError(t, h.Update(withParams(c, "id", "1")))
    readData(t, rec, &a)
    assert.Equal(t, "Finnish Sauna", a.Name)
    assert.False(t, a.IsActive)

    c, rec = newCtx(http.MethodGet, "/api/amenities/1", "")
    require.NoError(t, h.Get(withParams(c, "id", "1")))
    readData(t, rec, &a)
    assert.Equal(t, "Finnish Sauna", a.Name)

    c, _ = newCtx(http.MethodDelete, "/api/amenities/1", "")
    require.NoError(t, h.Delete(withParams(c, "id", "1")))

    c, _ = newCtx(http.MethodGet, "/api/amenities/1", "")
    assert.Equal(t, errAmenityNotFound, httpError(t, h.Get(withParams(c, "id", "1")), http.StatusNotFound))

    c, _ = newCtx(http.MethodPut, "/api/amenities/1", `{"name":"Gone"}`)
    httpError(t, h.Update(withParams(c, "id", "1")), http.StatusNotFound)
}

func TestInclusion_ListRoutes(t *testing.T) {
    store := newMemInclusions()
    h := NewInclusionHandler(store)
    for _, body := range []string{
        `{"name":"Breakfast","category":"meals","is_featured":true}`,
        `{"name":"Dinner","category":"meals"}`,
        `{"name":"Airport Transfer","category":"transport","is_featured":true}`,
        `{"name":"Old Tour","category":"activities","is_featured":true,"is_active":false}`,
    } {
        c, _ := newCtx(http.MethodPost, "/api/inclusions", body)
        require.NoError(t, h.Create(c), body)
    }

    list := func(f echo.HandlerFunc, c echo.Context, rec *httptest.ResponseRecorder) []string {
        require.NoError(t, f(c))
        var items []model.Inclusion
        readData(t, rec, &items)
        out := []string{}
        for _, i := range items {
            out = append(out, i.Name)
        }
        return out
    }

    c, rec := newCtx(http.MethodGet, "/api/inclusions", "")
    assert.Len(t, list(h.List, c, rec), 4)
    assert.Equal(t, inclusionQuery{}, store.last)

    c, rec = newCtx(http.MethodGet, "/api/inclusions?category=meals", "")
    assert.Equal(t, []string{"Breakfast", "Dinner"}, list(h.List, c, rec))

    c, rec = newCtx(http.MethodGet, "/api/inclusions/featured", "")
    assert.Equal(t, []string{"Breakfast", "Airport Transfer"}, list(h.Featured, c, rec))
    assert.Equal(t, inclusionQuery{featured: true}, store.last)

    c, rec = newCtx(http.MethodGet, "/api/inclusions/category/transport", "")
    assert.Equal(t, []string{"Airport Transfer"}, list(h.ByCategory, withParams(c, "category", "transport"), rec))
    assert.Equal(t, inclusionQuery{category: "transport"}, store.last)

    c, _ = newCtx(http.MethodGet, "/api/inclusions/category/food", "")
    assert.Equal(t, categoryMessage, httpError(t, h.ByCategory(withParams(c, "category", "food")), http.StatusBadRequest))
}

func TestInclusion_CRUD(t *testing.T) {
    h := NewInclusionHandler(newMemInclusions())

    c, rec := newCtx(http.MethodPost, "/api/inclusions", `{"name":"Spa Session","category":"wellness","icon":"spa"}`)
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusCreated, rec.Code)
    var i model.Inclusion
    readData(t, rec, &i)
    assert.Equal(t, uint64(1), i.ID)
    assert.True(t, i.IsActive)

    c, _ = newCtx(http.MethodPut, "/api/inclusions/1", `{"category":"spa"}`)
    assert.Equal(t, categoryMessage, httpError(t, h.Update(withParams(c, "id", "1")), http.StatusBadRequest))

    c, rec = newCtx(http.MethodPut, "/api/inclusions/1", `{"name":"Couples Massage","is_featured":true}`)
    require.NoError(t, h.Update(withParams(c, "id", "1")))
    env := readData(t, rec, &i)
    assert.Equal(t, "Inclusion updated", env.Message)
    assert.Equal(t, "Couples Massage", i.Name)
    assert.True(t, i.IsFeatured)

    c, rec = newCtx(http.MethodGet, "/api/inclusions/1", "")
    require.NoError(t, h.Get(withParams(c, "id", "1")))
    readData(t, rec, &i)
    assert.Equal(t, "wellness", i.Category)

    c, rec = newCtx(http.MethodDelete, "/api/inclusions/1", "")
    require.NoError(t, h.Delete(withParams(c, "id", "1")))
    assert.Equal(t, "Inclusion deleted", readEnvelope(t, rec).Message)

    c, _ = newCtx(http.MethodGet, "/api/inclusions/1", "")
    assert.Equal(t, errInclusionNotFound, httpError(t, h.Get(withParams(c, "id", "1")), http.StatusNotFound))

    c, _ = newCtx(http.MethodDelete, "/api/inclusions/1", "")
    httpError(t, h.Delete(withParams(c, "id", "1")), http.StatusNotFound)
}
