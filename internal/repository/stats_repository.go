package repository

import (
	"context"
	"database/sql"
	"math"

	"github.com/iliyamo/villa-booking/internal/model"
)

// StatsRepo runs the read-only aggregate queries behind the admin
// dashboard and analytics screens.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// BookingsByStatus counts bookings per status; the "total" key holds the
// overall count.
func (r *StatsRepo) BookingsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM bookings GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{
		"total":               0,
		model.StatusPending:   0,
		model.StatusConfirmed: 0,
		model.StatusCheckedIn: 0,
		model.StatusCancelled: 0,
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] += n
		out["total"] += n
	}
	return out, rows.Err()
}

// UpcomingCheckIns counts non-cancelled stays starting within the next
// days days, today included.
func (r *StatsRepo) UpcomingCheckIns(ctx context.Context, days int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings
		WHERE status <> ? AND check_in >= CURDATE() AND check_in < DATE_ADD(CURDATE(), INTERVAL ? DAY)`,
		model.StatusCancelled, days).Scan(&n)
	return n, err
}

// Revenue sums total_price over non-cancelled bookings.
func (r *StatsRepo) Revenue(ctx context.Context) (float64, error) {
	var v float64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status <> ?", model.StatusCancelled).Scan(&v)
	return v, err
}

// RecentBookings returns the newest bookings.
func (r *StatsRepo) RecentBookings(ctx context.Context, limit int) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// Monthly groups bookings created in the last months months by month.
// Revenue excludes cancelled bookings.
func (r *StatsRepo) Monthly(ctx context.Context, months int) ([]model.MonthStat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DATE_FORMAT(created_at, '%Y-%m') AS month,
			COUNT(*),
			COALESCE(SUM(CASE WHEN status <> ? THEN total_price ELSE 0 END), 0)
		FROM bookings
		WHERE created_at >= DATE_SUB(DATE_FORMAT(CURDATE(), '%Y-%m-01'), INTERVAL ? MONTH)
		GROUP BY month
		ORDER BY month`, model.StatusCancelled, months-1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MonthStat{}
	for rows.Next() {
		var m model.MonthStat
		if err := rows.Scan(&m.Month, &m.Bookings, &m.Revenue); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *StatsRepo) BySource(ctx context.Context) ([]model.SourceStat, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT source, COUNT(*) AS n FROM bookings GROUP BY source ORDER BY n DESC, source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.SourceStat{}
	for rows.Next() {
		var s model.SourceStat
		if err := rows.Scan(&s.Source, &s.Bookings); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AverageNights is the mean stay length of non-cancelled bookings, rounded
// to two decimals.
func (r *StatsRepo) AverageNights(ctx context.Context) (float64, error) {
	var v float64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(DATEDIFF(check_out, check_in)), 0) FROM bookings WHERE status <> ?",
		model.StatusCancelled).Scan(&v)
	return math.Round(v*100) / 100, err
}

// TableCounts returns the row count of each named table.  Names must come
// from a fixed list; they are not quoted.
func (r *StatsRepo) TableCounts(ctx context.Context, tables []string) (map[string]int, error) {
	out := make(map[string]int, len(tables))
	for _, t := range tables {
		var n int
		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t).Scan(&n); err != nil {
			return nil, err
		}
		out[t] = n
	}
	return out, nil
}

// Ping checks the connection.
func (r *StatsRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
