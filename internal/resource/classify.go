package resource

import (
	"fmt"

	"github.com/bilgisen/resourcehub/internal/models"
)

type typeInfo struct {
	label  string
	bucket models.Bucket
	accent models.Accent
}

// classification has one entry per models.Type. Adding a type to the enum
// without an entry here fails TestEveryTypeIsClassified.
var classification = map[models.Type]typeInfo{
	models.TypeArticle:   {label: "Article", bucket: models.BucketInsights, accent: models.AccentPrimary},
	models.TypeGuide:     {label: "Guide", bucket: models.BucketInsights, accent: models.AccentSecondary},
	models.TypeReport:    {label: "Report", bucket: models.BucketInsights, accent: models.AccentSecondary},
	models.TypeCaseStudy: {label: "Case Study", bucket: models.BucketSuccessStories, accent: models.AccentPrimary},
	models.TypeWebinar:   {label: "Webinar", bucket: models.BucketResources, accent: models.AccentPrimary},
	models.TypeTemplate:  {label: "Template", bucket: models.BucketResources, accent: models.AccentPrimary},
	models.TypeTool:      {label: "Tool", bucket: models.BucketResources, accent: models.AccentPrimary},
	models.TypeEbook:     {label: "Ebook", bucket: models.BucketResources, accent: models.AccentPrimary},
}

func info(t models.Type) typeInfo {
	ti, ok := classification[t]
	if !ok {
		// models.Type values only come from its constants or ParseType.
		panic(fmt.Sprintf("resource: unclassified type %v", t))
	}
	return ti
}

// BucketOf returns the content bucket a type belongs to.
func BucketOf(t models.Type) models.Bucket {
	return info(t).bucket
}

// LabelOf returns the singular display label for a type.
func LabelOf(t models.Type) string {
	return info(t).label
}

// AccentOf picks the colour variant for a type's detail page.
func AccentOf(t models.Type) models.Accent {
	return info(t).accent
}

// Plural turns a type label into its listing heading ("Guide" -> "Guides").
func Plural(label string) string {
	if label == "" {
		return ""
	}
	return label + "s"
}

// Buckets lists the buckets in navigation order.
var Buckets = []models.Bucket{
	models.BucketInsights,
	models.BucketSuccessStories,
	models.BucketResources,
}

// ParseBucket maps a query-string value to a Bucket.
func ParseBucket(s string) (models.Bucket, bool) {
	for _, b := range Buckets {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}

// TypesIn returns the types that classify into b, in CMS order.
func TypesIn(b models.Bucket) []models.Type {
	var out []models.Type
	for _, t := range models.Types {
		if BucketOf(t) == b {
			out = append(out, t)
		}
	}
	return out
}
