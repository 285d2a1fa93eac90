package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/spacecap/internal/iocache"
	"github.com/huangsam/spacecap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedScorerNilStore(t *testing.T) {
	scorer := CachedScorer(nil, map[string]string{"usa": "v1"})
	b, err := scorer(uniform("usa", "Americas", 50), directProfile())
	require.NoError(t, err)
	assert.InDelta(t, 50.0, b.Overall, 1e-9)
}

func TestCachedScorer(t *testing.T) {
	profile := directProfile()
	raw := uniform("usa", "Americas", 50)
	key := generateCacheKey("usa", "v1", profile)

	cached := schema.SCIBreakdown{CountryID: "usa", Overall: 12.3, Tier: "Nascent"}
	cachedData, err := json.Marshal(cached)
	require.NoError(t, err)

	tests := []struct {
		name        string
		data        []byte
		version     int
		ts          int64
		getErr      error
		expectHit   bool
		expectStore bool
	}{
		{name: "fresh entry", data: cachedData, version: currentCacheVersion, ts: time.Now().Unix(), expectHit: true},
		{name: "miss", getErr: errors.New("not found"), expectStore: true},
		{name: "stale entry", data: cachedData, version: currentCacheVersion, ts: time.Now().Add(-8 * 24 * time.Hour).Unix(), expectStore: true},
		{name: "old format", data: cachedData, version: currentCacheVersion + 1, ts: time.Now().Unix(), expectStore: true},
		{name: "corrupt entry", data: []byte("{"), version: currentCacheVersion, ts: time.Now().Unix(), expectStore: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockCacheStore{}
			store.On("Get", key).Return(tt.data, tt.version, tt.ts, tt.getErr)
			if tt.expectStore {
				store.On("Set", key, mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)
			}

			scorer := CachedScorer(store, map[string]string{"usa": "v1"})
			b, err := scorer(raw, profile)
			require.NoError(t, err)

			if tt.expectHit {
				assert.InDelta(t, 12.3, b.Overall, 1e-9)
				store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.InDelta(t, 50.0, b.Overall, 1e-9)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestCachedScorerWithoutVersion(t *testing.T) {
	store := &iocache.MockCacheStore{}
	scorer := CachedScorer(store, map[string]string{})

	b, err := scorer(uniform("chn", "Asia", 30), directProfile())
	require.NoError(t, err)
	assert.InDelta(t, 30.0, b.Overall, 1e-9)
	store.AssertNotCalled(t, "Get", mock.Anything)
}

func TestCachedScorerWriteFailureIsNotFatal(t *testing.T) {
	profile := directProfile()
	key := generateCacheKey("usa", "v1", profile)

	store := &iocache.MockCacheStore{}
	store.On("Get", key).Return([]byte(nil), 0, int64(0), errors.New("not found"))
	store.On("Set", key, mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(errors.New("disk full"))

	b, err := CachedScorer(store, map[string]string{"usa": "v1"})(uniform("usa", "Americas", 50), profile)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, b.Overall, 1e-9)
}

func TestGenerateCacheKey(t *testing.T) {
	profile := directProfile()
	base := generateCacheKey("usa", "v1", profile)
	assert.Len(t, base, 64)
	assert.Equal(t, base, generateCacheKey("usa", "v1", directProfile()))

	assert.NotEqual(t, base, generateCacheKey("chn", "v1", profile))
	assert.NotEqual(t, base, generateCacheKey("usa", "v2", profile))

	other := directProfile()
	other.StrengthMargin = 5
	assert.NotEqual(t, base, generateCacheKey("usa", "v1", other))
}
