package model

import "time"

// Room is a bookable unit of the villa.  Images, features and amenity ids
// live in JSON columns on the rooms row; the room_amenities join is kept in
// parallel for the admin amenity picker.
type Room struct {
    ID          uint64            `json:"id"`
    Name        string            `json:"name"`
    Type        string            `json:"type"`
    Price       float64           `json:"price"`
    Capacity    int               `json:"capacity"`
    Description string            `json:"description"`
    Size        string            `json:"size"`
    Beds        string            `json:"beds"`
    IsActive    bool              `json:"is_active"`
    Available   bool              `json:"available"` // mirrors IsActive for older clients
    Images      JSONArray[Image]  `json:"images"`
    Features    JSONArray[string] `json:"features"`
    Amenities   JSONArray[uint64] `json:"amenities"`
    CreatedAt   time.Time         `json:"created_at"`
    UpdatedAt   time.Time         `json:"updated_at"`
}

// RoomInput is the request body for create and partial update.  Nil fields
// are left untouched on update and defaulted on create.
type RoomInput struct {
    ID          *uint64            `json:"id"`
    Name        *string            `json:"name" validate:"required,notblank"`
    Type        *string            `json:"type"`
    Price       *float64           `json:"price"`
    Capacity    *int               `json:"capacity"`
    Description *string            `json:"description"`
    Size        *string            `json:"size"`
    Beds        *string            `json:"beds"`
    IsActive    *bool              `json:"is_active"`
    Available   *bool              `json:"available"`
    Images      *JSONArray[Image]  `json:"images"`
    Features    *JSONArray[string] `json:"features"`
    Amenities   *JSONArray[uint64] `json:"amenities"`
}

// Active resolves is_active, accepting the legacy "available" name.
func (in RoomInput) Active() *bool {
    if in.IsActive != nil {
        return in.IsActive
    }
    return in.Available
}

// NewRoom builds a room from a create request.
func NewRoom(in RoomInput) Room {
    r := Room{
        IsActive:  true,
        Images:    JSONArray[Image]{},
        Features:  JSONArray[string]{},
        Amenities: JSONArray[uint64]{},
    }
    if in.ID != nil {
        r.ID = *in.ID
    }
    assign(&r.Name, in.Name)
    assign(&r.Type, in.Type)
    assign(&r.Price, in.Price)
    assign(&r.Capacity, in.Capacity)
    assign(&r.Description, in.Description)
    assign(&r.Size, in.Size)
    assign(&r.Beds, in.Beds)
    assign(&r.IsActive, in.Active())
    assign(&r.Images, in.Images)
    assign(&r.Features, in.Features)
    assign(&r.Amenities, in.Amenities)
    r.Available = r.IsActive
    return r
}

// assign copies *src into dst when src is set.
func assign[T any](dst *T, src *T) {
    if src != nil {
        *dst = *src
    }
}
