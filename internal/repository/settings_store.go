package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/villa-booking/internal/model"
)

// settingsTxRetries bounds the optimistic transaction retries of a write.
const settingsTxRetries = 5

// SettingsStore keeps the settings record as JSON under model.SettingsKey.
// Without Redis it serves the environment defaults and refuses writes.
type SettingsStore struct {
	rdb      *redis.Client
	defaults model.Settings
	now      func() time.Time
}

func NewSettingsStore(rdb *redis.Client, defaults model.Settings) *SettingsStore {
	return &SettingsStore{rdb: rdb, defaults: defaults, now: time.Now}
}

// Defaults returns the environment defaults.
func (s *SettingsStore) Defaults() model.Settings { return s.defaults }

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *SettingsStore) read(ctx context.Context, g stringGetter) (model.Settings, error) {
	raw, err := g.Get(ctx, model.SettingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return s.defaults, nil
	}
	if err != nil {
		return model.Settings{}, err
	}
	var cur model.Settings
	if err := json.Unmarshal(raw, &cur); err != nil {
		return model.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	s.fill(&cur)
	return cur, nil
}

// fill backs blank text fields with the defaults.
func (s *SettingsStore) fill(cur *model.Settings) {
	for _, f := range []struct{ dst *string; def string }{
		{&cur.AdminEmail, s.defaults.AdminEmail},
		{&cur.VillaName, s.defaults.VillaName},
		{&cur.FromEmail, s.defaults.FromEmail},
		{&cur.Currency, s.defaults.Currency},
	} {
		if *f.dst == "" {
			*f.dst = f.def
		}
	}
}

// Get returns the stored record, or the defaults when nothing is stored or
// Redis is not configured.
func (s *SettingsStore) Get(ctx context.Context) (model.Settings, error) {
	if s.rdb == nil {
		return s.defaults, nil
	}
	return s.read(ctx, s.rdb)
}

// Merge applies values over the current record.  Unknown keys fail the
// whole write with model.ErrUnknownSetting.
func (s *SettingsStore) Merge(ctx context.Context, values map[string]json.RawMessage) (model.Settings, error) {
	return s.update(ctx, func(cur *model.Settings) error { return cur.Apply(values) })
}

// SetKey writes a single field, leaving the others unchanged.
func (s *SettingsStore) SetKey(ctx context.Context, key string, value json.RawMessage) (model.Settings, error) {
	return s.update(ctx, func(cur *model.Settings) error { return cur.Set(key, value) })
}

// update runs fn inside a WATCH/MULTI transaction on the settings key,
// bumping version and updated_at.  A concurrent writer makes the
// transaction fail and it is retried.
func (s *SettingsStore) update(ctx context.Context, fn func(*model.Settings) error) (model.Settings, error) {
	if s.rdb == nil {
		return model.Settings{}, ErrUnavailable
	}
	var out model.Settings
	for i := 0; i < settingsTxRetries; i++ {
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			cur, err := s.read(ctx, tx)
			if err != nil {
				return err
			}
			if err := fn(&cur); err != nil {
				return err
			}
			cur.Version++
			cur.UpdatedAt = s.now().UTC()
			raw, err := json.Marshal(cur)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
				p.Set(ctx, model.SettingsKey, raw, 0)
				return nil
			})
			if err == nil {
				out = cur
			}
			return err
		}, model.SettingsKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return out, err
	}
	return model.Settings{}, ErrConflict
}
