package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/swole-ai/backend/config"
	"github.com/pageza/swole-ai/backend/internal/types"
)

// WorkoutCategories maps each workout type to wger category ids
var WorkoutCategories = map[types.WorkoutType][]int{
	types.WorkoutCardio:     {9},
	types.WorkoutUpperBody:  {8, 14, 12, 13},
	types.WorkoutLowerBody:  {9, 11},
	types.WorkoutFullBody:   {8, 9, 10, 11, 12, 13, 14},
	types.WorkoutArms:       {8},
	types.WorkoutLegs:       {9, 11},
	types.WorkoutChest:      {14},
	types.WorkoutBack:       {12},
	types.WorkoutShoulders:  {13},
	types.WorkoutAbs:        {10},
	types.WorkoutStretching: {9, 10},
}

// DefaultCategories is used for tags without a mapping
var DefaultCategories = []int{8, 9, 10}

// CategoriesFor returns the category ids for tag in fetch order
func CategoriesFor(tag types.WorkoutType) []int {
	ids, ok := WorkoutCategories[tag]
	if !ok {
		ids = DefaultCategories
	}
	return append([]int(nil), ids...)
}

// WgerClient talks to the wger REST API
type WgerClient struct {
	baseURL string
	client  *http.Client
}

// NewWgerClient creates a client for the API rooted at baseURL (e.g. https://wger.de/api/v2).
// Timeouts are carried by the caller's context.
func NewWgerClient(baseURL string) *WgerClient {
	return &WgerClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// wgerNamed accepts both the expanded {"name": ...} form and a bare id
type wgerNamed struct {
	Name string
}

func (n *wgerNamed) UnmarshalJSON(data []byte) error {
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		n.Name = obj.Name
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n.Name = s
		return nil
	}
	var id json.Number
	if err := json.Unmarshal(data, &id); err == nil {
		return nil
	}
	return fmt.Errorf("unexpected wger reference %s", string(data))
}

type wgerExercise struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    wgerNamed   `json:"category"`
	Muscles     []wgerNamed `json:"muscles"`
	Equipment   []wgerNamed `json:"equipment"`
}

func names(refs []wgerNamed) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.Name != "" {
			out = append(out, r.Name)
		}
	}
	return out
}

func (c *WgerClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: wger %s returned status %d", ErrUpstreamUnavailable, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode wger %s response: %w", path, err)
	}
	return nil
}

func (c *WgerClient) ListExercises(ctx context.Context, categoryID, language, limit int) ([]types.CandidateExercise, error) {
	var page struct {
		Results []wgerExercise `json:"results"`
	}
	query := url.Values{
		"language": {strconv.Itoa(language)},
		"category": {strconv.Itoa(categoryID)},
		"limit":    {strconv.Itoa(limit)},
	}
	if err := c.get(ctx, "/exercise/", query, &page); err != nil {
		return nil, err
	}

	exercises := make([]types.CandidateExercise, 0, len(page.Results))
	for _, ex := range page.Results {
		exercises = append(exercises, types.CandidateExercise{
			ID:          ex.ID,
			Name:        ex.Name,
			Description: ex.Description,
			Category:    ex.Category.Name,
			Muscles:     names(ex.Muscles),
			Equipment:   names(ex.Equipment),
		})
	}
	return exercises, nil
}

func (c *WgerClient) ListImages(ctx context.Context, exerciseID int) ([]string, error) {
	var page struct {
		Results []struct {
			Image string `json:"image"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/exerciseimage/", url.Values{"exercise": {strconv.Itoa(exerciseID)}}, &page); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(page.Results))
	for _, r := range page.Results {
		if r.Image != "" {
			urls = append(urls, r.Image)
		}
	}
	return urls, nil
}

func (c *WgerClient) ListVideos(ctx context.Context, exerciseID int) ([]string, error) {
	var page struct {
		Results []struct {
			Video string `json:"video"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/exercisevideo/", url.Values{"exercise": {strconv.Itoa(exerciseID)}}, &page); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(page.Results))
	for _, r := range page.Results {
		if r.Video != "" {
			urls = append(urls, r.Video)
		}
	}
	return urls, nil
}

// Ping checks that the exercise listing answers with 200
func (c *WgerClient) Ping(ctx context.Context) error {
	return c.get(ctx, "/exercise/", url.Values{"limit": {"1"}}, nil)
}

// CategoryCache stores serialized category listings
type CategoryCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisCategoryCache struct {
	client *redis.Client
}

// NewRedisCategoryCache adapts a redis client to CategoryCache
func NewRedisCategoryCache(client *redis.Client) CategoryCache {
	return &redisCategoryCache{client: client}
}

func (c *redisCategoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

func (c *redisCategoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// CatalogGateway builds the candidate pool for a workout type
type CatalogGateway struct {
	catalog  ExerciseCatalog
	cache    CategoryCache
	language int
	limit    int
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewCatalogGateway creates a gateway. cache may be nil.
func NewCatalogGateway(catalog ExerciseCatalog, cfg config.CatalogConfig, cache CategoryCache) *CatalogGateway {
	return &CatalogGateway{
		catalog:  catalog,
		cache:    cache,
		language: cfg.Language,
		limit:    cfg.Limit,
		timeout:  cfg.Timeout,
		cacheTTL: cfg.CacheTTL,
	}
}

// FetchCandidates fetches every category of tag concurrently and concatenates
// the results in category order. A failing category contributes nothing.
// limit <= 0 uses the configured default.
func (g *CatalogGateway) FetchCandidates(ctx context.Context, tag types.WorkoutType, limit int) []types.CandidateExercise {
	if limit <= 0 {
		limit = g.limit
	}
	categories := CategoriesFor(tag)
	results := make([][]types.CandidateExercise, len(categories))

	var eg errgroup.Group
	for i, categoryID := range categories {
		eg.Go(func() error {
			results[i] = g.fetchCategory(ctx, categoryID, limit)
			return nil
		})
	}
	_ = eg.Wait()

	var pool []types.CandidateExercise
	for _, r := range results {
		pool = append(pool, r...)
	}
	return pool
}

func (g *CatalogGateway) cacheKey(categoryID, limit int) string {
	return fmt.Sprintf("catalog:category:%d:%d:%d", categoryID, g.language, limit)
}

func (g *CatalogGateway) fetchCategory(ctx context.Context, categoryID, limit int) []types.CandidateExercise {
	key := g.cacheKey(categoryID, limit)
	if g.cache != nil {
		if cached, ok := g.readCache(ctx, key); ok {
			return cached
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	exercises, err := g.catalog.ListExercises(fetchCtx, categoryID, g.language, limit)
	if err != nil {
		log.Warn().Err(err).Int("category", categoryID).Msg("Catalog category fetch failed")
		return nil
	}

	if g.cache != nil && len(exercises) > 0 {
		if data, err := json.Marshal(exercises); err == nil {
			if err := g.cache.Set(ctx, key, data, g.cacheTTL); err != nil {
				log.Debug().Err(err).Str("key", key).Msg("Catalog cache write failed")
			}
		}
	}
	return exercises
}

func (g *CatalogGateway) readCache(ctx context.Context, key string) ([]types.CandidateExercise, bool) {
	data, err := g.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Debug().Err(err).Str("key", key).Msg("Catalog cache read failed")
		}
		return nil, false
	}
	var exercises []types.CandidateExercise
	if err := json.Unmarshal(data, &exercises); err != nil {
		return nil, false
	}
	return exercises, true
}
