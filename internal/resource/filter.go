package resource

import (
	"strings"

	"github.com/bilgisen/resourcehub/internal/models"
)

// Filter narrows a resource listing. Zero-valued fields match everything.
type Filter struct {
	Bucket   models.Bucket
	Type     models.Type
	Category string
	Featured *bool
}

func (f Filter) Match(r models.Resource) bool {
	if f.Bucket != "" && BucketOf(r.Type) != f.Bucket {
		return false
	}
	if f.Type.Valid() && r.Type != f.Type {
		return false
	}
	if f.Category != "" && TopicKey(r.Category) != TopicKey(f.Category) {
		return false
	}
	if f.Featured != nil && r.Featured != *f.Featured {
		return false
	}
	return true
}

// Apply returns the resources matching f, in input order.
func (f Filter) Apply(list []models.Resource) []models.Resource {
	out := make([]models.Resource, 0, len(list))
	for _, r := range list {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Categories returns the distinct categories in list, in first-seen order.
func Categories(list []models.Resource) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range list {
		c := strings.TrimSpace(r.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[TopicKey(c)]; ok {
			continue
		}
		seen[TopicKey(c)] = struct{}{}
		out = append(out, c)
	}
	return out
}
