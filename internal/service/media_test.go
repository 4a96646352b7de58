package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaGatewayFetch(t *testing.T) {
	catalog := &fakeCatalog{
		images: map[int][]string{3: {"https://img/3.png"}},
		videos: map[int][]string{3: {"https://vid/3.mp4"}},
	}
	gw, err := NewMediaGateway(catalog, time.Second, 8)
	require.NoError(t, err)

	m := gw.Fetch(context.Background(), 3)
	assert.Equal(t, Media{Images: []string{"https://img/3.png"}, Videos: []string{"https://vid/3.mp4"}}, m)

	// Second lookup is served from cache
	gw.Fetch(context.Background(), 3)
	assert.Equal(t, 1, catalog.imageCalls)
}

func TestMediaGatewayNeverFails(t *testing.T) {
	catalog := &fakeCatalog{mediaErr: errCatalogDown}
	gw, err := NewMediaGateway(catalog, time.Second, 8)
	require.NoError(t, err)

	for _, id := range []int{0, 1, 42, -7} {
		m := gw.Fetch(context.Background(), id)
		assert.Equal(t, Media{Images: []string{}, Videos: []string{}}, m)
	}

	// Failures are not cached
	gw.Fetch(context.Background(), 1)
	assert.Equal(t, 5, catalog.imageCalls)
}

func TestMediaGatewayEmptyListsAreNonNil(t *testing.T) {
	gw, err := NewMediaGateway(&fakeCatalog{}, time.Second, 8)
	require.NoError(t, err)

	m := gw.Fetch(context.Background(), 11)
	assert.NotNil(t, m.Images)
	assert.NotNil(t, m.Videos)
}

func TestNewMediaGatewayRejectsBadCacheSize(t *testing.T) {
	_, err := NewMediaGateway(&fakeCatalog{}, time.Second, 0)
	assert.Error(t, err)
}
