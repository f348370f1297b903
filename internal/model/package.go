package model

import (
    "math"
    "time"
)

// Package is a bookable offer (e.g. "Honeymoon Escape") grouping rooms and
// inclusions under one price.  PackageType is the internal kind while
// MarketingCategory is the customer-facing grouping shown on the homepage.
type Package struct {
    ID                 uint64            `json:"id"`
    Name               string            `json:"name"`
    Description        string            `json:"description"`
    PackageType        string            `json:"package_type"`
    MarketingCategory  string            `json:"marketing_category"`
    BasePrice          float64           `json:"base_price"`
    DiscountPercentage float64           `json:"discount_percentage"`
    MinNights          int               `json:"min_nights"`
    MaxNights          int               `json:"max_nights"`
    ValidFrom          *string           `json:"valid_from"`
    ValidUntil         *string           `json:"valid_until"`
    MaxGuests          int               `json:"max_guests"`
    Inclusions         JSONArray[string] `json:"inclusions"`
    Terms              string            `json:"terms"`
    IsActive           bool              `json:"is_active"`
    CreatedAt          time.Time         `json:"created_at"`
    UpdatedAt          time.Time         `json:"updated_at"`
}

type PackageInput struct {
    ID                 *uint64            `json:"id"`
    Name               *string            `json:"name" validate:"required,notblank"`
    Description        *string            `json:"description"`
    PackageType        *string            `json:"package_type"`
    MarketingCategory  *string            `json:"marketing_category"`
    BasePrice          *float64           `json:"base_price"`
    DiscountPercentage *float64           `json:"discount_percentage"`
    MinNights          *int               `json:"min_nights"`
    MaxNights          *int               `json:"max_nights"`
    ValidFrom          *string            `json:"valid_from"`
    ValidUntil         *string            `json:"valid_until"`
    MaxGuests          *int               `json:"max_guests"`
    Inclusions         *JSONArray[string] `json:"inclusions"`
    Terms              *string            `json:"terms"`
    IsActive           *bool              `json:"is_active"`
}

func NewPackage(in PackageInput) Package {
    p := Package{MinNights: 1, IsActive: true, Inclusions: JSONArray[string]{}}
    if in.ID != nil {
        p.ID = *in.ID
    }
    assign(&p.Name, in.Name)
    assign(&p.Description, in.Description)
    assign(&p.PackageType, in.PackageType)
    assign(&p.MarketingCategory, in.MarketingCategory)
    assign(&p.BasePrice, in.BasePrice)
    assign(&p.DiscountPercentage, in.DiscountPercentage)
    assign(&p.MinNights, in.MinNights)
    assign(&p.MaxNights, in.MaxNights)
    p.ValidFrom = nonEmpty(in.ValidFrom)
    p.ValidUntil = nonEmpty(in.ValidUntil)
    assign(&p.MaxGuests, in.MaxGuests)
    assign(&p.Inclusions, in.Inclusions)
    assign(&p.Terms, in.Terms)
    assign(&p.IsActive, in.IsActive)
    return p
}

// CategoryCount is one row of the marketing category listing.
type CategoryCount struct {
    Category string `json:"category"`
    Count    int    `json:"count"`
}

// Adjustment types of a package_rooms row.
const (
    AdjustmentPercentage = "percentage"
    AdjustmentFixed      = "fixed"
)

// PackageRoom is a package_rooms join row, optionally carrying the joined
// room and the computed nightly price of that room inside the package.
type PackageRoom struct {
    PackageID            uint64  `json:"package_id"`
    RoomID               uint64  `json:"room_id"`
    PriceAdjustment      float64 `json:"price_adjustment"`
    AdjustmentType       string  `json:"adjustment_type"`
    IsDefault            bool    `json:"is_default"`
    AvailabilityPriority int     `json:"availability_priority"`
    MaxOccupancyOverride *int    `json:"max_occupancy_override"`
    Room                 *Room   `json:"room,omitempty"`
    EffectivePrice       float64 `json:"effective_price"`
}

// PackageRoomInput is the body of POST /packages/:id/rooms.
type PackageRoomInput struct {
    RoomID               FlexID   `json:"room_id"`
    PriceAdjustment      *float64 `json:"price_adjustment"`
    AdjustmentType       *string  `json:"adjustment_type"`
    IsDefault            *bool    `json:"is_default"`
    AvailabilityPriority *int     `json:"availability_priority"`
    MaxOccupancyOverride *int     `json:"max_occupancy_override"`
}

// EffectivePrice applies the package discount to the base price and then
// the per-room adjustment.  The result is rounded to cents and floored at 0.
func EffectivePrice(base, discountPct, adjustment float64, adjustmentType string) float64 {
    price := base * (1 - discountPct/100)
    switch adjustmentType {
    case AdjustmentPercentage:
        price *= 1 + adjustment/100
    default:
        price += adjustment
    }
    price = math.Round(price*100) / 100
    if price < 0 {
        return 0
    }
    return price
}

// ValidAdjustmentType reports whether t is a known adjustment type.
func ValidAdjustmentType(t string) bool {
    return t == AdjustmentPercentage || t == AdjustmentFixed
}

func nonEmpty(s *string) *string {
    if s == nil || *s == "" {
        return nil
    }
    return s
}
