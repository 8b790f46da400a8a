package source

import (
	"context"

	"github.com/bilgisen/resourcehub/internal/models"
	"github.com/bilgisen/resourcehub/internal/storage"
)

// StaticSource serves the fallback list bundled with the service.
type StaticSource struct {
	fallback *storage.Fallback
}

func NewStaticSource(fallback *storage.Fallback) *StaticSource {
	return &StaticSource{fallback: fallback}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Lookup(_ context.Context, slug string) (*models.Resource, error) {
	res, ok := s.fallback.Get(slug)
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (s *StaticSource) List(_ context.Context) ([]models.Resource, error) {
	return s.fallback.All(), nil
}
