package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bilgisen/resourcehub/internal/models"
	"github.com/go-resty/resty/v2"
)

const defaultAPIVersion = "2023-10-01"

// Config selects the CMS project and dataset to query.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	Timeout    time.Duration
	// BaseURL overrides the project API host, mainly for tests.
	BaseURL string
}

// Client queries the content store's HTTP query API.
type Client struct {
	client     *resty.Client
	baseURL    string
	dataset    string
	apiVersion string
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		host := "api.sanity.io"
		if cfg.UseCDN {
			host = "apicdn.sanity.io"
		}
		baseURL = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	}

	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}

	return &Client{
		client:     rc,
		baseURL:    strings.TrimRight(baseURL, "/"),
		dataset:    cfg.Dataset,
		apiVersion: strings.TrimPrefix(apiVersion, "v"),
	}
}

// Fetch runs a query with the given parameters and returns the raw result.
// A null result yields nil with no error.
func (c *Client) Fetch(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("query", query)

	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query param %s: %w", name, err)
		}
		req.SetQueryParam("$"+name, string(encoded))
	}

	url := fmt.Sprintf("%s/v%s/data/query/%s", c.baseURL, c.apiVersion, c.dataset)
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to query cms: %w", err)
	}

	var body queryResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse cms response (status %d): %w", resp.StatusCode(), err)
	}
	if body.Error != nil {
		return nil, fmt.Errorf("cms query error (status %d): %s", resp.StatusCode(), body.Error.Description)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from cms", resp.StatusCode())
	}

	result := bytes.TrimSpace(body.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return nil, nil
	}
	return result, nil
}

// FetchResource returns the resource document with the given slug, or nil
// when the store has none.
func (c *Client) FetchResource(ctx context.Context, slug string) (*models.CMSRecord, error) {
	raw, err := c.Fetch(ctx, ResourceBySlugQuery, map[string]any{"slug": slug})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var rec models.CMSRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode resource %s: %w", slug, err)
	}
	return &rec, nil
}

// ListResources returns every published resource document. Documents that
// are not JSON objects are skipped.
func (c *Client) ListResources(ctx context.Context) ([]models.CMSRecord, error) {
	raw, err := c.Fetch(ctx, ResourceListQuery, nil)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode resource list: %w", err)
	}
	records := make([]models.CMSRecord, 0, len(docs))
	for _, doc := range docs {
		var rec models.CMSRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
