package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"
    "golang.org/x/sync/errgroup"

    "github.com/iliyamo/villa-booking/internal/model"
    "github.com/iliyamo/villa-booking/internal/utils"
)

type StatsStore interface {
    BookingsByStatus(ctx context.Context) (map[string]int, error)
    UpcomingCheckIns(ctx context.Context, days int) (int, error)
    Revenue(ctx context.Context) (float64, error)
    RecentBookings(ctx context.Context, limit int) ([]*model.Booking, error)
    Monthly(ctx context.Context, months int) ([]model.MonthStat, error)
    BySource(ctx context.Context) ([]model.SourceStat, error)
    AverageNights(ctx context.Context) (float64, error)
}

// ActiveCounter counts rows, optionally only the active ones.
type ActiveCounter interface {
    Count(ctx context.Context, activeOnly bool) (int, error)
}

type Counter interface {
    Count(ctx context.Context) (int, error)
}

const (
    upcomingDays   = 7
    recentBookings = 5
    defaultMonths  = 6
    maxMonths      = 36
)

type AdminHandler struct {
    Stats     StatsStore
    Rooms     ActiveCounter
    Packages  ActiveCounter
    Amenities Counter
}

func NewAdminHandler(stats StatsStore, rooms, packages ActiveCounter, amenities Counter) *AdminHandler {
    return &AdminHandler{Stats: stats, Rooms: rooms, Packages: packages, Amenities: amenities}
}

// Dashboard runs the independent summary queries concurrently.  The first
// failure cancels the rest.
func (h *AdminHandler) Dashboard(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    var d model.Dashboard
    g, ctx := errgroup.WithContext(ctx)
    g.Go(func() (err error) { d.Rooms, err = h.Rooms.Count(ctx, false); return })
    g.Go(func() (err error) { d.ActiveRooms, err = h.Rooms.Count(ctx, true); return })
    g.Go(func() (err error) { d.Packages, err = h.Packages.Count(ctx, false); return })
    g.Go(func() (err error) { d.ActivePackages, err = h.Packages.Count(ctx, true); return })
    g.Go(func() (err error) { d.Amenities, err = h.Amenities.Count(ctx); return })
    g.Go(func() (err error) { d.Bookings, err = h.Stats.BookingsByStatus(ctx); return })
    g.Go(func() (err error) { d.UpcomingCheckIns, err = h.Stats.UpcomingCheckIns(ctx, upcomingDays); return })
    g.Go(func() (err error) { d.Revenue, err = h.Stats.Revenue(ctx); return })
    g.Go(func() (err error) { d.RecentBookings, err = h.Stats.RecentBookings(ctx, recentBookings); return })
    if err := g.Wait(); err != nil {
        return err
    }
    d.RecentBookings = nonNil(d.RecentBookings)
    return utils.JSONSuccess(c, http.StatusOK, d)
}

// Analytics serves GET /api/admin/analytics?months=N.
func (h *AdminHandler) Analytics(c echo.Context) error {
    months := queryInt(c, "months", defaultMonths)
    if months == 0 {
        months = defaultMonths
    }
    if months > maxMonths {
        months = maxMonths
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    a := model.Analytics{Months: months}
    g, ctx := errgroup.WithContext(ctx)
    g.Go(func() (err error) { a.Monthly, err = h.Stats.Monthly(ctx, months); return })
    g.Go(func() (err error) { a.BySource, err = h.Stats.BySource(ctx); return })
    g.Go(func() (err error) { a.AverageNights, err = h.Stats.AverageNights(ctx); return })
    if err := g.Wait(); err != nil {
        return err
    }
    a.Monthly = nonNil(a.Monthly)
    a.BySource = nonNil(a.BySource)
    return utils.JSONSuccess(c, http.StatusOK, a)
}
