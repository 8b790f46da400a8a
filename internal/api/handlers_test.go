package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bilgisen/resourcehub/internal/cache"
	"github.com/bilgisen/resourcehub/internal/middleware"
	"github.com/bilgisen/resourcehub/internal/models"
	"github.com/bilgisen/resourcehub/internal/normalize"
	"github.com/bilgisen/resourcehub/internal/resource"
	"github.com/bilgisen/resourcehub/internal/source"
	"github.com/bilgisen/resourcehub/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminKey      = "admin-key"
	testWebhookSecret = "hook-secret"
)

func newTestHandlers(t *testing.T, c cache.Cache) *Handlers {
	t.Helper()
	fb, err := storage.NewFallback("")
	require.NoError(t, err)

	chain := source.Chain{source.NewStaticSource(fb)}
	return NewHandlers(chain, normalize.NewNormalizer(nil), c, resource.DefaultTaxonomy)
}

func newTestApp(t *testing.T, c cache.Cache) *fiber.App {
	t.Helper()
	h := newTestHandlers(t, c)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, h, RouteConfig{AdminAPIKey: testAdminKey, WebhookSecret: testWebhookSecret})
	return app
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, out any) int {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

type listResponse struct {
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	Items      []models.Resource `json:"items"`
	Categories []string          `json:"categories"`
}

type detailResponse struct {
	Resource models.Resource `json:"resource"`
	Props    struct {
		Layout     string            `json:"layout"`
		Bucket     string            `json:"bucket"`
		TypeLabel  string            `json:"typeLabel"`
		TopicLabel string            `json:"topicLabel"`
		Accent     string            `json:"accent"`
		Related    []models.Resource `json:"related"`
	} `json:"props"`
}

func slugsOf(list []models.Resource) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Slug)
	}
	return out
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t, nil)
	var body map[string]any
	status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), &body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestListResources(t *testing.T) {
	app := newTestApp(t, nil)

	var all listResponse
	status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resources", nil), &all)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 9, all.Total)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, 20, all.PageSize)
	assert.Equal(t, []string{
		"five-tips-for-a-sharper-brand-voice",
		"state-of-agency-marketing-2025",
		"northwind-rebrand-case-study",
		"marketing-budget-template",
	}, slugsOf(all.Items[:4]))
	assert.Contains(t, all.Categories, "Budgeting & Finance")

	var gated listResponse
	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resources?bucket=resources", nil), &gated)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{
		"marketing-budget-template",
		"measuring-brand-lift-webinar",
		"roi-calculator",
		"content-calendar-template",
		"website-redesign-ebook",
	}, slugsOf(gated.Items))

	var cases listResponse
	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resources?type=Case%20Study", nil), &cases)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"northwind-rebrand-case-study"}, slugsOf(cases.Items))

	var finance listResponse
	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resources?category=budgeting-finance&featured=false", nil), &finance)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"roi-calculator"}, slugsOf(finance.Items))
}

func TestListResourcesPagination(t *testing.T) {
	app := newTestApp(t, nil)

	var page listResponse
	status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resources?page=3&page_size=4", nil), &page)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 9, page.Total)
	assert.Len(t, page.Items, 1)

	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resources?page=9", nil), &page)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestListResourcesHugePage(t *testing.T) {
	target := fmt.Sprintf("/api/v1/resources?page=%d&page_size=100", math.MaxInt)
	status := doJSON(t, newTestApp(t, nil), httptest.NewRequest(http.MethodGet, target, nil), nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	// The handler must not overflow even when the query bypasses validation.
	h := newTestHandlers(t, nil)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/resources", func(c *fiber.Ctx) error {
		c.Locals(middleware.QueryParamsKey, &ListQuery{Page: math.MaxInt, PageSize: 100})
		return c.Next()
	}, h.ListResources)

	var page listResponse
	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, "/resources", nil), &page)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 9, page.Total)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestListResourcesInvalidQuery(t *testing.T) {
	app := newTestApp(t, nil)

	for _, target := range []string{
		"/api/v1/resources?type=Podcast",
		"/api/v1/resources?bucket=blog",
		"/api/v1/resources?page_size=500",
	} {
		var body map[string]any
		status := doJSON(t, app, httptest.NewRequest(http.MethodGet, target, nil), &body)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status, target)
		assert.NotEmpty(t, body["fields"], target)
	}
}

func TestGetResource(t *testing.T) {
	app := newTestApp(t, nil)

	var view detailResponse
	status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resources/marketing-budget-template", nil), &view)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "marketing-budget-template", view.Resource.Slug)
	assert.Equal(t, "gated-resource", view.Props.Layout)
	assert.Equal(t, "resources", view.Props.Bucket)
	assert.Equal(t, "Template", view.Props.TypeLabel)
	assert.Equal(t, "Budgeting & Finance", view.Props.TopicLabel)
	assert.Equal(t, []string{"roi-calculator"}, slugsOf(view.Props.Related))

	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resources/northwind-rebrand-case-study", nil), &view)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "case-study", view.Props.Layout)
	assert.Equal(t, "success-stories", view.Props.Bucket)
	assert.NotNil(t, view.Props.Related)
	assert.Empty(t, view.Props.Related)
}

func TestGetResourceNotFound(t *testing.T) {
	app := newTestApp(t, nil)

	var body map[string]any
	status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resources/nope", nil), &body)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Resource not found", body["error"])
}

func TestGetRelated(t *testing.T) {
	app := newTestApp(t, nil)
	target := "/api/v1/resources/five-tips-for-a-sharper-brand-voice/related"

	var body struct {
		Slug  string            `json:"slug"`
		Total int               `json:"total"`
		Items []models.Resource `json:"items"`
	}
	status := doJSON(t, app, httptest.NewRequest(http.MethodGet, target, nil), &body)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, []string{"campaign-planning-guide", "state-of-agency-marketing-2025"}, slugsOf(body.Items))

	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, target+"?offset=1&limit=2", nil), &body)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, []string{"state-of-agency-marketing-2025", "campaign-planning-guide"}, slugsOf(body.Items))

	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, target+"?limit=100", nil), nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestPreviewResource(t *testing.T) {
	app := newTestApp(t, nil)
	doc := `{"slug": {"current": "draft-tool"}, "title": "Draft", "type": "Tool", "category": "Budgeting & Finance", "webinar": ""}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/preview", strings.NewReader(doc))
	req.Header.Set("Content-Type", "application/json")
	status := doJSON(t, app, req, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/preview", strings.NewReader(doc))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAdminKey)
	var view detailResponse
	status = doJSON(t, app, req, &view)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "draft-tool", view.Resource.Slug)
	assert.Nil(t, view.Resource.Webinar)
	assert.Equal(t, "gated-resource", view.Props.Layout)
	assert.Equal(t, []string{"marketing-budget-template", "roi-calculator"}, slugsOf(view.Props.Related))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/preview", strings.NewReader("{"))
	req.Header.Set("X-API-Key", testAdminKey)
	status = doJSON(t, app, req, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestClearCache(t *testing.T) {
	var body map[string]any
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/cache", nil)
	req.Header.Set("X-API-Key", testAdminKey)
	status := doJSON(t, newTestApp(t, nil), req, &body)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "disabled", body["status"])

	mem := cache.NewMemoryCache()
	require.NoError(t, mem.SetResource(context.Background(), models.Resource{Slug: "a"}, 0))

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/cache", nil)
	req.Header.Set("X-API-Key", testAdminKey)
	status = doJSON(t, newTestApp(t, mem), req, &body)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "cleared", body["status"])

	got, err := mem.GetResource(context.Background(), "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCMSWebhook(t *testing.T) {
	mem := cache.NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, mem.SetResource(ctx, models.Resource{Slug: "a"}, 0))
	require.NoError(t, mem.SetResource(ctx, models.Resource{Slug: "b"}, 0))
	app := newTestApp(t, mem)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/cms", strings.NewReader(`{"slug": {"current": "a"}}`))
	status := doJSON(t, app, req, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	var body map[string]any
	req = httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/cms", strings.NewReader(`{"_id": "doc1", "slug": {"current": "a"}}`))
	req.Header.Set("X-Webhook-Secret", testWebhookSecret)
	status = doJSON(t, app, req, &body)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "invalidated", body["status"])
	assert.Equal(t, "a", body["slug"])

	got, _ := mem.GetResource(ctx, "a")
	assert.Nil(t, got)
	got, _ = mem.GetResource(ctx, "b")
	assert.NotNil(t, got)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/cms", strings.NewReader(`{"_id": "doc2"}`))
	req.Header.Set("X-Webhook-Secret", testWebhookSecret)
	status = doJSON(t, app, req, &body)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "cleared", body["status"])
	got, _ = mem.GetResource(ctx, "b")
	assert.Nil(t, got)
}

func TestUnknownEndpoint(t *testing.T) {
	var body map[string]any
	status := doJSON(t, newTestApp(t, nil), httptest.NewRequest(http.MethodGet, "/api/v2/things", nil), &body)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Endpoint not found", body["error"])
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/missing", func(*fiber.Ctx) error {
		return fmt.Errorf("%w: gone", source.ErrNotFound)
	})
	app.Get("/teapot", func(*fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(*fiber.Ctx) error {
		return fmt.Errorf("database exploded")
	})

	var body map[string]any
	status := doJSON(t, app, httptest.NewRequest(http.MethodGet, "/missing", nil), &body)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Resource not found", body["error"])

	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, "/teapot", nil), &body)
	assert.Equal(t, fiber.StatusTeapot, status)
	assert.Equal(t, "short and stout", body["error"])

	status = doJSON(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil), &body)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body["error"])
}
