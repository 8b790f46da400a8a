package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bilgisen/resourcehub/internal/cache"
	"github.com/bilgisen/resourcehub/internal/detail"
	"github.com/bilgisen/resourcehub/internal/logger"
	"github.com/bilgisen/resourcehub/internal/middleware"
	"github.com/bilgisen/resourcehub/internal/models"
	"github.com/bilgisen/resourcehub/internal/related"
	"github.com/bilgisen/resourcehub/internal/resource"
	"github.com/gofiber/fiber/v2"
)

const version = "1.0.0"

// Resolver looks resources up across the configured sources.
type Resolver interface {
	Resolve(ctx context.Context, slug string) (models.Resource, error)
	Candidates(ctx context.Context) ([]models.Resource, error)
}

// Normalizer converts raw CMS documents for the preview endpoint.
type Normalizer interface {
	Normalize(raw models.CMSRecord) models.Resource
}

type Handlers struct {
	resolver   Resolver
	normalizer Normalizer
	cache      cache.Cache
	taxonomy   resource.Taxonomy
}

// NewHandlers wires the handlers. c may be nil when caching is disabled.
func NewHandlers(resolver Resolver, normalizer Normalizer, c cache.Cache, tax resource.Taxonomy) *Handlers {
	return &Handlers{
		resolver:   resolver,
		normalizer: normalizer,
		cache:      c,
		taxonomy:   tax,
	}
}

// ListQuery is the query string accepted by GET /resources.
type ListQuery struct {
	Bucket   string `query:"bucket" validate:"omitempty,oneof=insights success-stories resources"`
	Type     string `query:"type"`
	Category string `query:"category"`
	Featured *bool  `query:"featured"`
	Page     int    `query:"page" validate:"gte=0,lte=100000"`
	PageSize int    `query:"page_size" validate:"gte=0,lte=100"`
}

// RelatedQuery is the query string accepted by GET /resources/:slug/related.
type RelatedQuery struct {
	Offset int `query:"offset"`
	Limit  int `query:"limit" validate:"gte=0,lte=24"`
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

// ListResources handles GET /api/v1/resources
func (h *Handlers) ListResources(c *fiber.Ctx) error {
	q := middleware.QueryParams[ListQuery](c)

	filter := resource.Filter{Category: q.Category, Featured: q.Featured}
	if q.Bucket != "" {
		filter.Bucket, _ = resource.ParseBucket(q.Bucket)
	}
	if q.Type != "" {
		t, err := models.ParseType(q.Type)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Invalid query parameters",
				"fields": fiber.Map{"Type": "oneof"},
			})
		}
		filter.Type = t
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	candidates, err := h.resolver.Candidates(c.UserContext())
	if err != nil {
		return err
	}
	matched := related.FeaturedFirst(filter.Apply(candidates))

	// Compare before multiplying so a huge page cannot overflow the offset.
	start := len(matched)
	if page-1 <= len(matched)/pageSize {
		start = min((page-1)*pageSize, len(matched))
	}
	end := start + min(pageSize, len(matched)-start)

	return c.JSON(fiber.Map{
		"page":       page,
		"page_size":  pageSize,
		"total":      len(matched),
		"items":      matched[start:end],
		"categories": resource.Categories(candidates),
	})
}

// GetResource handles GET /api/v1/resources/:slug
func (h *Handlers) GetResource(c *fiber.Ctx) error {
	ctx := c.UserContext()
	res, err := h.resolver.Resolve(ctx, c.Params("slug"))
	if err != nil {
		return err
	}
	candidates, err := h.resolver.Candidates(ctx)
	if err != nil {
		return err
	}
	return c.JSON(detail.Assemble(res, candidates, h.taxonomy))
}

// GetRelated handles GET /api/v1/resources/:slug/related
func (h *Handlers) GetRelated(c *fiber.Ctx) error {
	q := middleware.QueryParams[RelatedQuery](c)
	ctx := c.UserContext()

	res, err := h.resolver.Resolve(ctx, c.Params("slug"))
	if err != nil {
		return err
	}
	candidates, err := h.resolver.Candidates(ctx)
	if err != nil {
		return err
	}

	items := related.Select(res, candidates)
	total := len(items)
	if q.Limit > 0 {
		items = related.Window(items, q.Offset, q.Limit)
	}

	return c.JSON(fiber.Map{
		"slug":  res.Slug,
		"total": total,
		"items": items,
	})
}

// PreviewResource handles POST /api/v1/admin/preview. It normalizes the posted
// CMS document and returns the detail view without storing anything.
func (h *Handlers) PreviewResource(c *fiber.Ctx) error {
	var raw models.CMSRecord
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"msg":   err.Error(),
		})
	}

	res := h.normalizer.Normalize(raw)
	candidates, err := h.resolver.Candidates(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(detail.Assemble(res, candidates, h.taxonomy))
}

// ClearCache handles DELETE /api/v1/admin/cache
func (h *Handlers) ClearCache(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.JSON(fiber.Map{"status": "disabled"})
	}
	if err := h.cache.Clear(c.UserContext()); err != nil {
		return err
	}
	logger.Info().Str("ip", c.IP()).Msg("Resource cache cleared")
	return c.JSON(fiber.Map{"status": "cleared"})
}

// CMSWebhook handles POST /api/v1/webhooks/cms, sent by the CMS when a
// resource is published, changed or deleted.
func (h *Handlers) CMSWebhook(c *fiber.Ctx) error {
	var doc models.CMSRecord
	if err := json.Unmarshal(c.Body(), &doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"msg":   err.Error(),
		})
	}
	if h.cache == nil {
		return c.JSON(fiber.Map{"status": "disabled"})
	}

	ctx := c.UserContext()
	slug := string(doc.Slug)
	if slug == "" {
		if err := h.cache.Clear(ctx); err != nil {
			return err
		}
		logger.Info().Str("id", doc.ID.String()).Msg("Webhook without slug, cleared resource cache")
		return c.JSON(fiber.Map{"status": "cleared"})
	}

	if err := h.cache.Invalidate(ctx, slug); err != nil {
		return err
	}
	logger.Info().Str("slug", slug).Msg("Invalidated cached resource")
	return c.JSON(fiber.Map{"status": "invalidated", "slug": slug})
}
