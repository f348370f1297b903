package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/villa-booking/internal/model"
)

// EmailRecordStore keeps one record per booking reference and email kind
// under email:{reference}:{guest|admin}, expiring after 30 days.
type EmailRecordStore struct {
	rdb *redis.Client
}

func NewEmailRecordStore(rdb *redis.Client) *EmailRecordStore {
	return &EmailRecordStore{rdb: rdb}
}

func emailRecordKey(ref, kind string) string {
	return "email:" + ref + ":" + kind
}

// Save overwrites the record for rec's booking and type.
func (s *EmailRecordStore) Save(ctx context.Context, rec model.EmailRecord) error {
	if s.rdb == nil {
		return ErrUnavailable
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, emailRecordKey(rec.Booking.BookingReference, rec.Type), raw, model.EmailRecordTTL).Err()
}

// List returns the stored records of a booking keyed by kind.  Kinds never
// sent are absent from the map.
func (s *EmailRecordStore) List(ctx context.Context, ref string) (map[string]model.EmailRecord, error) {
	if s.rdb == nil {
		return nil, ErrUnavailable
	}
	kinds := []string{model.EmailGuest, model.EmailAdmin}
	keys := make([]string, len(kinds))
	for i, k := range kinds {
		keys[i] = emailRecordKey(ref, k)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	out := map[string]model.EmailRecord{}
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var rec model.EmailRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, err
		}
		out[kinds[i]] = rec
	}
	return out, nil
}
