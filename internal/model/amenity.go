package model

import "time"

// Amenity is a facility shown on rooms and packages.  Icon is a key of the
// shared icon registry.
type Amenity struct {
    ID           uint64    `json:"id"`
    Name         string    `json:"name"`
    Category     string    `json:"category"`
    Description  string    `json:"description"`
    Icon         string    `json:"icon"`
    IsFeatured   bool      `json:"is_featured"`
    IsActive     bool      `json:"is_active"`
    DisplayOrder int       `json:"display_order"`
    CreatedAt    time.Time `json:"created_at"`
    UpdatedAt    time.Time `json:"updated_at"`
}

type AmenityInput struct {
    ID           *uint64 `json:"id"`
    Name         *string `json:"name" validate:"required,notblank"`
    Category     *string `json:"category"`
    Description  *string `json:"description"`
    Icon         *string `json:"icon"`
    IsFeatured   *bool   `json:"is_featured"`
    IsActive     *bool   `json:"is_active"`
    DisplayOrder *int    `json:"display_order"`
}

func NewAmenity(in AmenityInput) Amenity {
    a := Amenity{IsActive: true}
    if in.ID != nil {
        a.ID = *in.ID
    }
    assign(&a.Name, in.Name)
    assign(&a.Category, in.Category)
    assign(&a.Description, in.Description)
    assign(&a.Icon, in.Icon)
    assign(&a.IsFeatured, in.IsFeatured)
    assign(&a.IsActive, in.IsActive)
    assign(&a.DisplayOrder, in.DisplayOrder)
    return a
}

// AmenityLink is the body of the join endpoints that attach an amenity.
type AmenityLink struct {
    AmenityID FlexID `json:"amenity_id"`
}
