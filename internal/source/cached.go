package source

import (
	"context"
	"time"

	"github.com/bilgisen/resourcehub/internal/cache"
	"github.com/bilgisen/resourcehub/internal/logger"
	"github.com/bilgisen/resourcehub/internal/models"
)

// CachedSource reads through a cache in front of another source. Cache
// failures are logged and the wrapped source is used directly.
type CachedSource struct {
	next     Source
	cache    cache.Cache
	ttl      time.Duration
	listName string
}

func NewCachedSource(next Source, c cache.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:     next,
		cache:    c,
		ttl:      ttl,
		listName: next.Name() + ":all",
	}
}

func (s *CachedSource) Name() string { return "cached-" + s.next.Name() }

func (s *CachedSource) Lookup(ctx context.Context, slug string) (*models.Resource, error) {
	if res, err := s.cache.GetResource(ctx, slug); err != nil {
		logger.Warn().Err(err).Str("slug", slug).Msg("Cache read failed")
	} else if res != nil {
		return res, nil
	}

	res, err := s.next.Lookup(ctx, slug)
	if err != nil || res == nil {
		return res, err
	}
	if err := s.cache.SetResource(ctx, *res, s.ttl); err != nil {
		logger.Warn().Err(err).Str("slug", slug).Msg("Cache write failed")
	}
	return res, nil
}

func (s *CachedSource) List(ctx context.Context) ([]models.Resource, error) {
	if list, err := s.cache.GetList(ctx, s.listName); err != nil {
		logger.Warn().Err(err).Str("list", s.listName).Msg("Cache read failed")
	} else if list != nil {
		return list, nil
	}

	list, err := s.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		if err := s.cache.SetList(ctx, s.listName, list, s.ttl); err != nil {
			logger.Warn().Err(err).Str("list", s.listName).Msg("Cache write failed")
		}
	}
	return list, nil
}
