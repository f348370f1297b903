package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		name     string
		base     float64
		discount float64
		adj      float64
		adjType  string
		want     float64
	}{
		{"no discount fixed", 200, 0, 25, AdjustmentFixed, 225},
		{"discount then fixed", 200, 10, 20, AdjustmentFixed, 200},
		{"discount then percentage", 200, 10, 50, AdjustmentPercentage, 270},
		{"rounds to cents", 99.99, 33, 0, AdjustmentFixed, 66.99},
		{"never negative", 100, 0, -150, AdjustmentFixed, 0},
		{"unknown type acts as fixed", 100, 0, 5, "", 105},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, EffectivePrice(tc.base, tc.discount, tc.adj, tc.adjType), 0.001)
		})
	}
}

func TestJSONArray_ScanAndValue(t *testing.T) {
	var imgs JSONArray[Image]
	require.NoError(t, imgs.Scan([]byte(`[{"url":"/a.jpg","is_primary":true}]`)))
	require.Len(t, imgs, 1)
	assert.True(t, imgs[0].IsPrimary)

	var ids JSONArray[uint64]
	require.NoError(t, ids.Scan(nil))
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	v, err := JSONArray[string](nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	out, err := json.Marshal(struct {
		F JSONArray[string] `json:"f"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":[]}`, string(out))

	assert.Error(t, ids.Scan(42))
}

func TestFlexID_AcceptsNumberAndString(t *testing.T) {
	var in struct {
		A FlexID `json:"a"`
		B FlexID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":7,"b":"12"}`), &in))
	assert.Equal(t, FlexID(7), in.A)
	assert.Equal(t, uint64(12), *in.B.Ptr())

	var bad FlexID
	assert.Error(t, json.Unmarshal([]byte(`"R1"`), &bad))
}

func TestNewBooking_Defaults(t *testing.T) {
	ref, email, in, out := "BK1", "a@b.com", "2025-06-01", "2025-06-03"
	guests := 2
	rid := uint64(3)
	b := NewBooking(BookingInput{
		BookingReference: &ref, Email: &email, CheckIn: &in, CheckOut: &out,
		Guests: &guests, RoomID: OptionalID{Present: true, ID: &rid},
	})

	assert.Equal(t, 2, b.Guests)
	assert.Equal(t, 2, b.Adults)
	assert.Equal(t, 0, b.Children)
	assert.Equal(t, "USD", b.Currency)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
	assert.Equal(t, "website", b.Source)
	assert.Equal(t, uint64(3), *b.RoomID)
	assert.Equal(t, 2, b.Nights())
}

func TestNewBooking_StatusAlwaysStartsPending(t *testing.T) {
	confirmed := StatusConfirmed
	b := NewBooking(BookingInput{Status: &confirmed})
	assert.Equal(t, StatusPending, b.Status)
}

func TestValidateStay(t *testing.T) {
	assert.NoError(t, ValidateStay("2025-06-01", "2025-06-02"))
	assert.ErrorIs(t, ValidateStay("2025-06-02", "2025-06-02"), ErrInvalidDateOrder)
	assert.ErrorIs(t, ValidateStay("2025-06-03", "2025-06-01"), ErrInvalidDateOrder)
	assert.ErrorIs(t, ValidateStay("06/01/2025", "2025-06-02"), ErrInvalidDate)
}

func TestBookingWithin(t *testing.T) {
	b := Booking{CheckIn: "2025-06-10", CheckOut: "2025-06-15"}
	assert.True(t, b.Within("2025-06-01", "2025-06-10"))
	assert.True(t, b.Within("2025-06-15", "2025-06-20"))
	assert.True(t, b.Within("2025-06-11", "2025-06-12"))
	assert.False(t, b.Within("2025-06-16", "2025-06-20"))
	assert.False(t, b.Within("2025-06-01", "2025-06-09"))
}

func TestSettings_SetRejectsUnknownKeys(t *testing.T) {
	s := Settings{VillaName: "Old", AdminEmail: "admin@example.com"}

	require.NoError(t, s.Set("villa_name", json.RawMessage(`"New"`)))
	assert.Equal(t, "New", s.VillaName)
	assert.Equal(t, "admin@example.com", s.AdminEmail)

	assert.ErrorIs(t, s.Set("theme", json.RawMessage(`"dark"`)), ErrUnknownSetting)
	assert.ErrorIs(t, s.Set("version", json.RawMessage(`9`)), ErrUnknownSetting)
	assert.ErrorIs(t, s.Set("notify_admin_on_booking", json.RawMessage(`"yes"`)), ErrInvalidSetting)
}

func TestSettings_ApplyIsAllOrNothing(t *testing.T) {
	s := Settings{VillaName: "Old"}
	err := s.Apply(map[string]json.RawMessage{
		"villa_name": json.RawMessage(`"New"`),
		"colour":     json.RawMessage(`"red"`),
	})
	assert.ErrorIs(t, err, ErrUnknownSetting)
	assert.Equal(t, "Old", s.VillaName)
}

func TestSettings_ApplyAcceptsRecordReadBack(t *testing.T) {
	stored := Settings{VillaName: "Old", Version: 4}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &body))
	body["villa_name"] = json.RawMessage(`"New"`)

	s := stored
	require.NoError(t, s.Apply(body))
	assert.Equal(t, "New", s.VillaName)
	assert.Equal(t, int64(4), s.Version)

	s = Settings{VillaName: "Old", Version: 5}
	assert.ErrorIs(t, s.Apply(body), ErrStaleSettings)
	assert.Equal(t, "Old", s.VillaName)
}

func TestOptionalID(t *testing.T) {
	var in struct {
		Room    OptionalID `json:"room_id"`
		Package OptionalID `json:"package_id"`
		Other   OptionalID `json:"other_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"room_id":null,"package_id":"8"}`), &in))
	assert.True(t, in.Room.Present)
	assert.Nil(t, in.Room.Value())
	assert.True(t, in.Package.Present)
	assert.Equal(t, uint64(8), in.Package.Value())
	assert.False(t, in.Other.Present)

	var zero OptionalID
	require.NoError(t, json.Unmarshal([]byte(`0`), &zero))
	assert.True(t, zero.Present)
	assert.Nil(t, zero.ID)
}

func TestIcons(t *testing.T) {
	assert.True(t, ValidIcon("wifi"))
	assert.True(t, ValidIcon(""))
	assert.False(t, ValidIcon("unicorn"))

	seen := map[string]bool{}
	for _, i := range Icons {
		assert.False(t, seen[i.Key], "duplicate icon %s", i.Key)
		seen[i.Key] = true
	}
}

func TestNewRoom_AvailableAlias(t *testing.T) {
	name := "Deluxe"
	off := false
	r := NewRoom(RoomInput{Name: &name, Available: &off})
	assert.False(t, r.IsActive)
	assert.False(t, r.Available)
	assert.NotNil(t, r.Images)
}
