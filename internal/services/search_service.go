package services

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/config"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/models"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/database/repositories"
)

const browseCacheKey = "active_listings"

// ListingSearchService serves the browse surface: the active listing set is
// cached briefly and card titles are matched fuzzily.
type ListingSearchService struct {
	repo  repositories.ListingRepository
	cache *lru.Cache
}

type cacheEntry struct {
	listings  []*models.Listing
	fetchedAt time.Time
}

func NewListingSearchService(repo repositories.ListingRepository) *ListingSearchService {
	cache, err := lru.New(config.BrowseCacheSize)
	if err != nil {
		panic(err)
	}
	return &ListingSearchService{repo: repo, cache: cache}
}

// ActiveListings returns the active listing set, served from cache when
// fresh enough.
func (s *ListingSearchService) ActiveListings(ctx context.Context) ([]*models.Listing, error) {
	if v, ok := s.cache.Get(browseCacheKey); ok {
		entry := v.(cacheEntry)
		if time.Since(entry.fetchedAt) < config.BrowseCacheExpiration {
			return entry.listings, nil
		}
	}

	listings, err := s.repo.GetActive(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	s.cache.Add(browseCacheKey, cacheEntry{listings: listings, fetchedAt: time.Now()})
	slog.Debug("Browse cache refreshed",
		slog.Int("listings", len(listings)))

	return listings, nil
}

// Search fuzzy-matches the query against card titles of active listings,
// best matches first. An empty query returns the full active set.
func (s *ListingSearchService) Search(ctx context.Context, query string) ([]*models.Listing, error) {
	listings, err := s.ActiveListings(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return listings, nil
	}

	matches := fuzzy.FindFrom(query, titleSource(listings))
	results := make([]*models.Listing, 0, len(matches))
	for _, match := range matches {
		results = append(results, listings[match.Index])
	}
	return results, nil
}

// Invalidate drops the cached browse set.
func (s *ListingSearchService) Invalidate() {
	s.cache.Remove(browseCacheKey)
}

type titleSource []*models.Listing

func (t titleSource) String(i int) string {
	return t[i].Title
}

func (t titleSource) Len() int {
	return len(t)
}
