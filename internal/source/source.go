package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/bilgisen/resourcehub/internal/logger"
	"github.com/bilgisen/resourcehub/internal/models"
)

// ErrNotFound means no source in the chain has a resource for the slug.
var ErrNotFound = errors.New("resource not found")

// Source is one place resources can be read from.
// Lookup returns nil with no error when the source has no such resource.
type Source interface {
	Name() string
	Lookup(ctx context.Context, slug string) (*models.Resource, error)
	List(ctx context.Context) ([]models.Resource, error)
}

// Chain tries its sources in order. A source that fails is logged and treated
// as having no record, so the next source gets a chance.
type Chain []Source

// Resolve returns the first resource found for slug, or ErrNotFound.
func (c Chain) Resolve(ctx context.Context, slug string) (models.Resource, error) {
	for _, src := range c {
		if err := ctx.Err(); err != nil {
			return models.Resource{}, err
		}
		res, err := src.Lookup(ctx, slug)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("source", src.Name()).
				Str("slug", slug).
				Msg("Source lookup failed, trying next source")
			continue
		}
		if res != nil {
			logger.Debug().
				Str("source", src.Name()).
				Str("slug", slug).
				Msg("Resolved resource")
			return *res, nil
		}
	}
	return models.Resource{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// Candidates returns the first non-empty resource list in the chain. The
// result is never nil.
func (c Chain) Candidates(ctx context.Context) ([]models.Resource, error) {
	for _, src := range c {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		list, err := src.List(ctx)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("source", src.Name()).
				Msg("Source list failed, trying next source")
			continue
		}
		if len(list) > 0 {
			return list, nil
		}
	}
	return []models.Resource{}, nil
}
