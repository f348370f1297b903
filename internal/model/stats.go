package model

// Dashboard is the admin landing page summary.
type Dashboard struct {
    Rooms            int            `json:"rooms"`
    ActiveRooms      int            `json:"active_rooms"`
    Packages         int            `json:"packages"`
    ActivePackages   int            `json:"active_packages"`
    Amenities        int            `json:"amenities"`
    Bookings         map[string]int `json:"bookings"` // by status, plus "total"
    UpcomingCheckIns int            `json:"upcoming_check_ins"`
    Revenue          float64        `json:"revenue"`
    RecentBookings   []*Booking     `json:"recent_bookings"`
}

// MonthStat is one month of the analytics series.  Month is YYYY-MM.
type MonthStat struct {
    Month    string  `json:"month"`
    Bookings int     `json:"bookings"`
    Revenue  float64 `json:"revenue"`
}

type SourceStat struct {
    Source   string `json:"source"`
    Bookings int    `json:"bookings"`
}

// Analytics is the admin reporting payload.
type Analytics struct {
    Months        int          `json:"months"`
    Monthly       []MonthStat  `json:"monthly"`
    BySource      []SourceStat `json:"by_source"`
    AverageNights float64      `json:"average_nights"`
}
