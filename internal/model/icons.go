package model

// Icon is an entry of the icon registry shared by amenities and
// inclusions.  Clients map Key to a glyph; the server only validates keys.
type Icon struct {
    Key   string `json:"key"`
    Label string `json:"label"`
}

// Icons is the canonical registry.
var Icons = []Icon{
    {"wifi", "Wi-Fi"},
    {"pool", "Swimming pool"},
    {"parking", "Parking"},
    {"air-conditioning", "Air conditioning"},
    {"kitchen", "Kitchen"},
    {"tv", "Television"},
    {"coffee", "Coffee"},
    {"breakfast", "Breakfast"},
    {"utensils", "Dining"},
    {"wine", "Wine"},
    {"spa", "Spa"},
    {"gym", "Gym"},
    {"beach", "Beach"},
    {"mountain", "Mountain view"},
    {"garden", "Garden"},
    {"sun", "Terrace"},
    {"bath", "Bathtub"},
    {"shower", "Shower"},
    {"bed", "Bed"},
    {"car", "Car"},
    {"plane", "Airport transfer"},
    {"bicycle", "Bicycle"},
    {"boat", "Boat"},
    {"concierge", "Concierge"},
    {"laundry", "Laundry"},
    {"safe", "Safe"},
    {"pet", "Pets allowed"},
    {"baby", "Family friendly"},
    {"music", "Music"},
    {"fire", "Fireplace"},
    {"snowflake", "Heating"},
    {"heart", "Romance"},
    {"star", "Featured"},
    {"gift", "Gift"},
    {"camera", "Photography"},
    {"map", "Tours"},
}

var iconIndex = func() map[string]bool {
    m := make(map[string]bool, len(Icons))
    for _, i := range Icons {
        m[i.Key] = true
    }
    return m
}()

// ValidIcon accepts registry keys and the empty string.
func ValidIcon(key string) bool {
    return key == "" || iconIndex[key]
}
