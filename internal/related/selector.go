package related

import (
	"github.com/bilgisen/resourcehub/internal/models"
	"github.com/bilgisen/resourcehub/internal/resource"
)

// Select picks the resources to show next to current, in candidate order.
//
// Insights and success stories relate to everything else in their bucket so the
// slider always has items to rotate through. Everything else only relates
// within the same bucket and the same category.
// current itself is never returned; candidates are expected to have unique slugs.
func Select(current models.Resource, candidates []models.Resource) []models.Resource {
	bucket := resource.BucketOf(current.Type)
	byCategory := bucket != models.BucketInsights && bucket != models.BucketSuccessStories
	out := make([]models.Resource, 0, len(candidates))
	for _, c := range candidates {
		if c.Slug == current.Slug {
			continue
		}
		if resource.BucketOf(c.Type) != bucket {
			continue
		}
		if byCategory && c.Category != current.Category {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FeaturedFirst returns a copy of list with featured resources moved to the
// front. Relative order within each group is kept.
func FeaturedFirst(list []models.Resource) []models.Resource {
	out := make([]models.Resource, 0, len(list))
	for _, r := range list {
		if r.Featured {
			out = append(out, r)
		}
	}
	for _, r := range list {
		if !r.Featured {
			out = append(out, r)
		}
	}
	return out
}

// Window returns up to size items of list starting at offset, wrapping around
// the end. It backs the auto-advancing related slider: the client increments
// offset on its own timer and asks for the next window.
func Window(list []models.Resource, offset, size int) []models.Resource {
	n := len(list)
	if n == 0 || size <= 0 {
		return []models.Resource{}
	}
	size = min(size, n)
	start := ((offset % n) + n) % n
	out := make([]models.Resource, 0, size)
	for i := range size {
		out = append(out, list[(start+i)%n])
	}
	return out
}
