package model

import (
    "database/sql/driver"
    "encoding/json"
    "fmt"
    "strconv"
    "strings"
)

// JSONArray maps a JSON array column (images, features, amenities,
// inclusions) onto a typed slice.  NULL and empty columns scan as an empty
// slice so responses always carry [] rather than null.
type JSONArray[T any] []T

// Scan implements sql.Scanner.
func (a *JSONArray[T]) Scan(src any) error {
    var raw []byte
    switch v := src.(type) {
    case nil:
        *a = JSONArray[T]{}
        return nil
    case []byte:
        raw = v
    case string:
        raw = []byte(v)
    default:
        return fmt.Errorf("json array: unsupported source %T", src)
    }
    if len(strings.TrimSpace(string(raw))) == 0 {
        *a = JSONArray[T]{}
        return nil
    }
    var out []T
    if err := json.Unmarshal(raw, &out); err != nil {
        return fmt.Errorf("json array: %w", err)
    }
    if out == nil {
        out = []T{}
    }
    *a = out
    return nil
}

// Value implements driver.Valuer.  A nil slice is stored as [].
func (a JSONArray[T]) Value() (driver.Value, error) {
    if a == nil {
        return "[]", nil
    }
    b, err := json.Marshal([]T(a))
    if err != nil {
        return nil, err
    }
    return string(b), nil
}

// MarshalJSON keeps nil slices rendering as [].
func (a JSONArray[T]) MarshalJSON() ([]byte, error) {
    if a == nil {
        return []byte("[]"), nil
    }
    return json.Marshal([]T(a))
}

// Image is one entry of an images column.
type Image struct {
    URL       string `json:"url"`
    Filename  string `json:"filename,omitempty"`
    IsPrimary bool   `json:"is_primary"`
    Caption   string `json:"caption,omitempty"`
}

// FlexID is an identifier that clients send either as a JSON number or as a
// numeric string.
type FlexID uint64

func (f *FlexID) UnmarshalJSON(b []byte) error {
    s := strings.Trim(strings.TrimSpace(string(b)), `"`)
    if s == "" || s == "null" {
        *f = 0
        return nil
    }
    n, err := strconv.ParseUint(s, 10, 64)
    if err != nil {
        return fmt.Errorf("invalid id %q", s)
    }
    *f = FlexID(n)
    return nil
}

// Ptr returns the id as *uint64, nil when zero.
func (f *FlexID) Ptr() *uint64 {
    if f == nil || *f == 0 {
        return nil
    }
    v := uint64(*f)
    return &v
}

// OptionalID is an id field of a partial update.  Present reports whether
// the body carried it at all; a present null or 0 leaves ID nil, which
// clears the link.
type OptionalID struct {
    Present bool
    ID      *uint64
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
    var f FlexID
    if err := f.UnmarshalJSON(b); err != nil {
        return err
    }
    o.Present = true
    o.ID = f.Ptr()
    return nil
}

// Value is the column value: the id, or nil for SQL NULL.
func (o OptionalID) Value() any {
    if o.ID == nil {
        return nil
    }
    return *o.ID
}
