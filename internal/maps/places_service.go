package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"
)

// Place represents a simplified location result.
type Place struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float32 `json:"rating,omitempty"`
	PlaceID string  `json:"place_id,omitempty"`
}

// SearchType selects how a query is matched and how many results come back.
type SearchType string

const (
	// SearchTypePlace looks up a named place; capped at 3 results.
	SearchTypePlace SearchType = "place"
	// SearchTypeItem looks for places selling an item; capped at 5 results.
	SearchTypeItem SearchType = "item"
)

const (
	placeResultLimit = 3
	itemResultLimit  = 5

	cacheKeyPrefix = "places:%s:%s:%s"
	cacheTTL       = 10 * time.Minute
)

// PlacesService handles interactions with Google Places API, with an
// optional Redis read-through cache in front of it.
type PlacesService struct {
	client *maps.Client
	cache  *redis.Client
}

// NewPlacesService creates a new PlacesService with the given API key.
// cache may be nil to disable caching.
func NewPlacesService(apiKey string, cache *redis.Client) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, cache: cache}, nil
}

// Search queries places matching the query near the given location and caps
// the result count by search type. near may be empty.
func (s *PlacesService) Search(ctx context.Context, query, near string, searchType SearchType) ([]Place, error) {
	key := cacheKey(query, near, searchType)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	fullQuery := query
	if near != "" {
		fullQuery = fmt.Sprintf("%s near %s", query, near)
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: fullQuery})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	limit := ResultLimit(searchType)
	var results []Place
	for _, r := range resp.Results {
		results = append(results, Place{
			Name:    r.Name,
			Address: r.FormattedAddress,
			Rating:  r.Rating,
			PlaceID: r.PlaceID,
		})
		if len(results) >= limit {
			break
		}
	}

	s.cachePut(ctx, key, results)
	return results, nil
}

// ResultLimit is the engine-side cap for a search type.
func ResultLimit(searchType SearchType) int {
	if searchType == SearchTypeItem {
		return itemResultLimit
	}
	return placeResultLimit
}

func cacheKey(query, near string, searchType SearchType) string {
	return fmt.Sprintf(cacheKeyPrefix, searchType, strings.ToLower(query), strings.ToLower(near))
}

func (s *PlacesService) cacheGet(ctx context.Context, key string) ([]Place, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var places []Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, false
	}
	return places, true
}

func (s *PlacesService) cachePut(ctx context.Context, key string, places []Place) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(places)
	if err != nil {
		return
	}
	// Cache failures are not fatal; the next lookup just hits the API again.
	_ = s.cache.Set(ctx, key, raw, cacheTTL).Err()
}
