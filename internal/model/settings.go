package model

import (
    "encoding/json"
    "errors"
    "fmt"
    "time"
)

// SettingsKey is the Redis key holding the settings record.
const SettingsKey = "app_settings"

var (
    ErrUnknownSetting = errors.New("unknown setting")
    ErrInvalidSetting = errors.New("invalid setting value")
    ErrStaleSettings  = errors.New("settings were changed by another request")
)

// Settings is the single application settings record.  Only the fields
// below exist; any other key is rejected.
type Settings struct {
    AdminEmail            string    `json:"admin_email"`
    VillaName             string    `json:"villa_name"`
    FromEmail             string    `json:"from_email"`
    Currency              string    `json:"currency"`
    NotifyAdminOnBooking  bool      `json:"notify_admin_on_booking"`
    SendGuestConfirmation bool      `json:"send_guest_confirmation"`
    Version               int64     `json:"version"`
    UpdatedAt             time.Time `json:"updated_at"`
}

// SettingsKeys are the keys writable through the API, in display order.
var SettingsKeys = []string{
    "admin_email", "villa_name", "from_email", "currency",
    "notify_admin_on_booking", "send_guest_confirmation",
}

// Get returns the value stored under key.  version and updated_at are
// readable but not writable.
func (s Settings) Get(key string) (any, error) {
    switch key {
    case "admin_email":
        return s.AdminEmail, nil
    case "villa_name":
        return s.VillaName, nil
    case "from_email":
        return s.FromEmail, nil
    case "currency":
        return s.Currency, nil
    case "notify_admin_on_booking":
        return s.NotifyAdminOnBooking, nil
    case "send_guest_confirmation":
        return s.SendGuestConfirmation, nil
    case "version":
        return s.Version, nil
    case "updated_at":
        return s.UpdatedAt, nil
    }
    return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
}

// Set decodes raw into the field named key.
func (s *Settings) Set(key string, raw json.RawMessage) error {
    var dst any
    switch key {
    case "admin_email":
        dst = &s.AdminEmail
    case "villa_name":
        dst = &s.VillaName
    case "from_email":
        dst = &s.FromEmail
    case "currency":
        dst = &s.Currency
    case "notify_admin_on_booking":
        dst = &s.NotifyAdminOnBooking
    case "send_guest_confirmation":
        dst = &s.SendGuestConfirmation
    default:
        return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
    }
    if err := json.Unmarshal(raw, dst); err != nil {
        return fmt.Errorf("%w: %s", ErrInvalidSetting, key)
    }
    return nil
}

// Apply sets every key of values, validating all keys before touching s.
// A record read back from Get may be posted as is: updated_at is ignored
// and version, when present, must match the stored version.
func (s *Settings) Apply(values map[string]json.RawMessage) error {
    next := *s
    for k, v := range values {
        switch k {
        case "updated_at":
            continue
        case "version":
            var ver int64
            if err := json.Unmarshal(v, &ver); err != nil {
                return fmt.Errorf("%w: %s", ErrInvalidSetting, k)
            }
            if ver != s.Version {
                return fmt.Errorf("%w: version %d, stored %d", ErrStaleSettings, ver, s.Version)
            }
            continue
        }
        if err := next.Set(k, v); err != nil {
            return err
        }
    }
    *s = next
    return nil
}
