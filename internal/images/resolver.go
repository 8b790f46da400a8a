package images

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bilgisen/resourcehub/internal/models"
)

// Resolver turns an image reference into a URL. It returns "" when it cannot
// handle the reference.
type Resolver interface {
	Resolve(ref models.ImageRef) string
}

// Chain asks each resolver in turn and returns the first URL produced.
type Chain []Resolver

func (c Chain) Resolve(ref models.ImageRef) string {
	for _, r := range c {
		if r == nil {
			continue
		}
		if u := r.Resolve(ref); u != "" {
			return u
		}
	}
	return ""
}

// SanityResolver builds CDN URLs for Sanity image assets.
type SanityResolver struct {
	ProjectID string
	Dataset   string
	BaseURL   string
}

const sanityCDN = "https://cdn.sanity.io/images"

func NewSanityResolver(projectID, dataset string) *SanityResolver {
	return &SanityResolver{ProjectID: projectID, Dataset: dataset, BaseURL: sanityCDN}
}

// Resolve returns expanded http(s) asset URLs unchanged and converts asset ids
// of the form image-<id>-<width>x<height>-<ext> into CDN URLs.
func (s *SanityResolver) Resolve(ref models.ImageRef) string {
	if isHTTPURL(ref.URL) {
		return ref.URL
	}
	if ref.Ref == "" || s.ProjectID == "" || s.Dataset == "" {
		return ""
	}
	file, ok := sanityAssetFile(ref.Ref)
	if !ok {
		return ""
	}
	base := s.BaseURL
	if base == "" {
		base = sanityCDN
	}
	return fmt.Sprintf("%s/%s/%s/%s", strings.TrimRight(base, "/"), s.ProjectID, s.Dataset, file)
}

// sanityAssetFile maps "image-abc123-800x600-jpg" to "abc123-800x600.jpg".
func sanityAssetFile(ref string) (string, bool) {
	rest, ok := strings.CutPrefix(ref, "image-")
	if !ok {
		return "", false
	}
	parts := strings.Split(rest, "-")
	if len(parts) < 3 {
		return "", false
	}
	ext := parts[len(parts)-1]
	dims := parts[len(parts)-2]
	id := strings.Join(parts[:len(parts)-2], "-")
	if id == "" || ext == "" || !strings.Contains(dims, "x") {
		return "", false
	}
	return fmt.Sprintf("%s-%s.%s", id, dims, ext), true
}

func isHTTPURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
