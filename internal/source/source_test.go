package source_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bilgisen/resourcehub/internal/cache"
	"github.com/bilgisen/resourcehub/internal/models"
	"github.com/bilgisen/resourcehub/internal/normalize"
	"github.com/bilgisen/resourcehub/internal/source"
	"github.com/bilgisen/resourcehub/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves fixed resources and counts calls.
type stubSource struct {
	name      string
	resources map[string]models.Resource
	list      []models.Resource
	err       error
	lookups   int
	lists     int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Lookup(_ context.Context, slug string) (*models.Resource, error) {
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.resources[slug]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *stubSource) List(context.Context) ([]models.Resource, error) {
	s.lists++
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func TestResolveFallsThroughOnError(t *testing.T) {
	failing := &stubSource{name: "cms", err: errors.New("timeout")}
	static := &stubSource{name: "static", resources: map[string]models.Resource{
		"guide": {Slug: "guide", Type: models.TypeGuide},
	}}

	r, err := source.Chain{failing, static}.Resolve(context.Background(), "guide")
	require.NoError(t, err)
	assert.Equal(t, "guide", r.Slug)
	assert.Equal(t, 1, failing.lookups)
}

func TestResolveFirstSourceWins(t *testing.T) {
	first := &stubSource{name: "cms", resources: map[string]models.Resource{"a": {Slug: "a", Title: "live"}}}
	second := &stubSource{name: "static", resources: map[string]models.Resource{"a": {Slug: "a", Title: "bundled"}}}

	r, err := source.Chain{first, second}.Resolve(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "live", r.Title)
	assert.Equal(t, 0, second.lookups)
}

func TestResolveNotFound(t *testing.T) {
	chain := source.Chain{
		&stubSource{name: "cms", err: errors.New("down")},
		&stubSource{name: "static"},
	}

	_, err := chain.Resolve(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrNotFound)
	assert.Contains(t, err.Error(), "missing")

	_, err = source.Chain{}.Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, source.ErrNotFound)
}

func TestResolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &stubSource{name: "static"}

	_, err := source.Chain{src}.Resolve(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, src.lookups)
}

func TestCandidates(t *testing.T) {
	empty := &stubSource{name: "cms"}
	static := &stubSource{name: "static", list: []models.Resource{{Slug: "a"}}}

	list, err := source.Chain{empty, static}.Candidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = source.Chain{&stubSource{name: "cms", err: errors.New("down")}}.Candidates(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestStaticSource(t *testing.T) {
	fb, err := storage.NewFallback("")
	require.NoError(t, err)
	src := source.NewStaticSource(fb)

	r, err := src.Lookup(context.Background(), "roi-calculator")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, models.TypeTool, r.Type)

	r, err = src.Lookup(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, r)

	list, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, fb.Len())
}

type stubFetcher struct {
	record  *models.CMSRecord
	records []models.CMSRecord
	err     error
}

func (f stubFetcher) FetchResource(context.Context, string) (*models.CMSRecord, error) {
	return f.record, f.err
}

func (f stubFetcher) ListResources(context.Context) ([]models.CMSRecord, error) {
	return f.records, f.err
}

func TestCMSSource(t *testing.T) {
	n := normalize.NewNormalizer(nil)

	src := source.NewCMSSource(stubFetcher{record: &models.CMSRecord{Title: "Untitled slug", Type: "Tool"}}, n)
	r, err := src.Lookup(context.Background(), "requested")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "requested", r.Slug)
	assert.Equal(t, models.TypeTool, r.Type)

	r, err = source.NewCMSSource(stubFetcher{}, n).Lookup(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, r)

	_, err = source.NewCMSSource(stubFetcher{err: errors.New("boom")}, n).Lookup(context.Background(), "x")
	assert.Error(t, err)

	src = source.NewCMSSource(stubFetcher{records: []models.CMSRecord{
		{Slug: "a", Title: "first"},
		{Title: "no slug"},
		{Slug: "a", Title: "duplicate"},
		{Slug: "b"},
	}}, n)
	list, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "b", list[1].Slug)
}

func TestCachedSourceReadThrough(t *testing.T) {
	next := &stubSource{
		name:      "cms",
		resources: map[string]models.Resource{"a": {Slug: "a", Type: models.TypeGuide}},
		list:      []models.Resource{{Slug: "a", Type: models.TypeGuide}},
	}
	src := source.NewCachedSource(next, cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()
	assert.Equal(t, "cached-cms", src.Name())

	for range 3 {
		r, err := src.Lookup(ctx, "a")
		require.NoError(t, err)
		require.NotNil(t, r)
	}
	assert.Equal(t, 1, next.lookups)

	for range 2 {
		list, err := src.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	assert.Equal(t, 1, next.lists)

	r, err := src.Lookup(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestCachedSourceDoesNotCacheEmptyList(t *testing.T) {
	next := &stubSource{name: "cms"}
	src := source.NewCachedSource(next, cache.NewMemoryCache(), time.Minute)

	for range 2 {
		_, err := src.List(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, next.lists)
}
