package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("redis down")
}

func (brokenCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("redis down")
}

func TestCacheServiceDisabled(t *testing.T) {
	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
	_, hit, err := nilSvc.Get(context.Background(), "k")
	assert.False(t, hit)
	assert.NoError(t, err)

	svc := NewCacheService(&memoryCache{items: map[string][]byte{}}, nil, 0, nil, false)
	assert.False(t, svc.Enabled())
	assert.NoError(t, svc.Set(context.Background(), "k", []byte("v"), 0))
}

func TestCacheServiceHitAndMiss(t *testing.T) {
	metrics := NewMetricsService()
	store := &memoryCache{items: map[string][]byte{}}
	svc := NewCacheService(store, metrics, time.Minute, nil, true)

	_, hit, err := svc.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "k", []byte("payload"), 0))
	value, hit, err := svc.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("payload"), value)
}

func TestCacheServiceBackendFailure(t *testing.T) {
	svc := NewCacheService(brokenCache{}, nil, time.Minute, nil, true)

	_, hit, err := svc.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Error(t, svc.Set(context.Background(), "k", []byte("v"), 0))
}
