package service

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Media holds the image and video URLs of one exercise
type Media struct {
	Images []string `json:"images"`
	Videos []string `json:"videos"`
}

// MediaGateway fetches exercise media with per-call timeouts and an
// in-process cache of complete lookups
type MediaGateway struct {
	catalog ExerciseCatalog
	timeout time.Duration
	cache   *lru.Cache[int, Media]
}

// NewMediaGateway creates a gateway caching up to cacheSize exercises
func NewMediaGateway(catalog ExerciseCatalog, timeout time.Duration, cacheSize int) (*MediaGateway, error) {
	cache, err := lru.New[int, Media](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create media cache: %w", err)
	}
	return &MediaGateway{
		catalog: catalog,
		timeout: timeout,
		cache:   cache,
	}, nil
}

// Fetch returns the media of exerciseID. Images and videos are fetched
// concurrently and each degrades to an empty list on failure.
func (g *MediaGateway) Fetch(ctx context.Context, exerciseID int) Media {
	if m, ok := g.cache.Get(exerciseID); ok {
		return m
	}

	m := Media{Images: []string{}, Videos: []string{}}
	var imagesOK, videosOK bool

	var eg errgroup.Group
	eg.Go(func() error {
		m.Images, imagesOK = g.fetch(ctx, exerciseID, "images", g.catalog.ListImages)
		return nil
	})
	eg.Go(func() error {
		m.Videos, videosOK = g.fetch(ctx, exerciseID, "videos", g.catalog.ListVideos)
		return nil
	})
	_ = eg.Wait()

	if imagesOK && videosOK {
		g.cache.Add(exerciseID, m)
	}
	return m
}

func (g *MediaGateway) fetch(ctx context.Context, exerciseID int, kind string, list func(context.Context, int) ([]string, error)) ([]string, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	urls, err := list(fetchCtx, exerciseID)
	if err != nil {
		log.Warn().Err(err).Int("exercise_id", exerciseID).Str("kind", kind).Msg("Media fetch failed")
		return []string{}, false
	}
	if urls == nil {
		urls = []string{}
	}
	return urls, true
}
