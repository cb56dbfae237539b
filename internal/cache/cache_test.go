package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (m *mapStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type loaf struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestJSONRoundTrip(t *testing.T) {
	store := &mapStore{data: map[string][]byte{}}
	ctx := context.Background()

	_, err := GetJSON[[]loaf](ctx, store, "products:all")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, SetJSON(ctx, store, "products:all", []loaf{{Name: "Pão", Price: 5}}, time.Minute))

	got, err := GetJSON[[]loaf](ctx, store, "products:all")
	require.NoError(t, err)
	assert.Equal(t, []loaf{{Name: "Pão", Price: 5}}, got)

	store.data["broken"] = []byte("{")
	_, err = GetJSON[[]loaf](ctx, store, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestNoopAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	store := Noop()

	require.NoError(t, SetJSON(ctx, store, "k", loaf{Name: "Bolo"}, 0))
	_, err := GetJSON[loaf](ctx, store, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = GetJSON[loaf](ctx, nil, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
