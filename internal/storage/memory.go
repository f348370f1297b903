package storage

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

type memObject struct {
	Object
	body []byte
}

// MemoryStore keeps objects in process memory.  Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]memObject{}, now: time.Now}
}

func (m *MemoryStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string, meta map[string]string) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	md := make(map[string]string, len(meta))
	for k, v := range meta {
		md[k] = v
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{
		Object: Object{
			Key:          key,
			Size:         int64(len(body)),
			ContentType:  contentType,
			LastModified: m.now().UTC(),
			Metadata:     md,
		},
		body: body,
	}
	return nil
}

// List returns objects under prefix ordered by key.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Object
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, o.Object)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	if !ok {
		return nil, Object{}, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(o.body)), o.Object, nil
}

// Delete is idempotent, like S3 DeleteObject.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }
