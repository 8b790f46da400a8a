package source

import (
	"context"

	"github.com/bilgisen/resourcehub/internal/models"
)

// RecordFetcher reads raw resource documents from the CMS.
type RecordFetcher interface {
	FetchResource(ctx context.Context, slug string) (*models.CMSRecord, error)
	ListResources(ctx context.Context) ([]models.CMSRecord, error)
}

// RecordNormalizer converts raw CMS documents into canonical resources.
type RecordNormalizer interface {
	Normalize(raw models.CMSRecord) models.Resource
}

// CMSSource reads live resources from the CMS.
type CMSSource struct {
	fetcher    RecordFetcher
	normalizer RecordNormalizer
}

func NewCMSSource(fetcher RecordFetcher, normalizer RecordNormalizer) *CMSSource {
	return &CMSSource{fetcher: fetcher, normalizer: normalizer}
}

func (s *CMSSource) Name() string { return "cms" }

func (s *CMSSource) Lookup(ctx context.Context, slug string) (*models.Resource, error) {
	rec, err := s.fetcher.FetchResource(ctx, slug)
	if err != nil || rec == nil {
		return nil, err
	}
	res := s.normalizer.Normalize(*rec)
	if res.Slug == "" {
		res.Slug = slug
	}
	return &res, nil
}

// List normalizes every document. Documents without a slug cannot be linked
// to and are dropped, as are later documents repeating an earlier slug.
func (s *CMSSource) List(ctx context.Context) ([]models.Resource, error) {
	records, err := s.fetcher.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(records))
	out := make([]models.Resource, 0, len(records))
	for _, rec := range records {
		res := s.normalizer.Normalize(rec)
		if res.Slug == "" {
			continue
		}
		if _, dup := seen[res.Slug]; dup {
			continue
		}
		seen[res.Slug] = struct{}{}
		out = append(out, res)
	}
	return out, nil
}
