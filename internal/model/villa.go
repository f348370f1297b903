package model

import "time"

// VillaID is the primary key of the single villa_info row.
const VillaID = 1

// VillaInfo is the property profile shown on the homepage and in emails.
type VillaInfo struct {
    ID               uint64           `json:"id"`
    Name             string           `json:"name"`
    Location         string           `json:"location"`
    Description      string           `json:"description"`
    Images           JSONArray[Image] `json:"images"`
    AmenitiesSummary string           `json:"amenities_summary"`
    Phone            string           `json:"phone"`
    Email            string           `json:"email"`
    Website          string           `json:"website"`
    Address          string           `json:"address"`
    CheckInTime      string           `json:"check_in_time"`
    CheckOutTime     string           `json:"check_out_time"`
    MaxGuests        int              `json:"max_guests"`
    TotalRooms       int              `json:"total_rooms"`
    TotalBathrooms   int              `json:"total_bathrooms"`
    Policies         string           `json:"policies"`
    UpdatedAt        time.Time        `json:"updated_at"`
}

type VillaInput struct {
    Name             *string           `json:"name"`
    Location         *string           `json:"location"`
    Description      *string           `json:"description"`
    Images           *JSONArray[Image] `json:"images"`
    AmenitiesSummary *string           `json:"amenities_summary"`
    Phone            *string           `json:"phone"`
    Email            *string           `json:"email"`
    Website          *string           `json:"website"`
    Address          *string           `json:"address"`
    CheckInTime      *string           `json:"check_in_time"`
    CheckOutTime     *string           `json:"check_out_time"`
    MaxGuests        *int              `json:"max_guests"`
    TotalRooms       *int              `json:"total_rooms"`
    TotalBathrooms   *int              `json:"total_bathrooms"`
    Policies         *string           `json:"policies"`
}
