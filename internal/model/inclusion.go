package model

import "time"

// InclusionCategories lists the categories an inclusion may belong to.
var InclusionCategories = []string{"meals", "transport", "activities", "services", "wellness", "special"}

// Inclusion is something bundled into a package (breakfast, airport
// transfer, spa session).  It is structurally parallel to Amenity.
type Inclusion struct {
    ID          uint64    `json:"id"`
    Name        string    `json:"name"`
    Category    string    `json:"category"`
    Description string    `json:"description"`
    Icon        string    `json:"icon"`
    IsFeatured  bool      `json:"is_featured"`
    IsActive    bool      `json:"is_active"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}

type InclusionInput struct {
    ID          *uint64 `json:"id"`
    Name        *string `json:"name" validate:"required,notblank"`
    Category    *string `json:"category" validate:"required,notblank"`
    Description *string `json:"description"`
    Icon        *string `json:"icon"`
    IsFeatured  *bool   `json:"is_featured"`
    IsActive    *bool   `json:"is_active"`
}

func NewInclusion(in InclusionInput) Inclusion {
    i := Inclusion{IsActive: true}
    if in.ID != nil {
        i.ID = *in.ID
    }
    assign(&i.Name, in.Name)
    assign(&i.Category, in.Category)
    assign(&i.Description, in.Description)
    assign(&i.Icon, in.Icon)
    assign(&i.IsFeatured, in.IsFeatured)
    assign(&i.IsActive, in.IsActive)
    return i
}

// InclusionLink is the body of POST /packages/:id/inclusions.
type InclusionLink struct {
    InclusionID FlexID `json:"inclusion_id"`
}

func ValidInclusionCategory(c string) bool {
    for _, v := range InclusionCategories {
        if v == c {
            return true
        }
    }
    return false
}
