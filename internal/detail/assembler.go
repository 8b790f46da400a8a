package detail

import (
	"github.com/bilgisen/resourcehub/internal/models"
	"github.com/bilgisen/resourcehub/internal/related"
	"github.com/bilgisen/resourcehub/internal/resource"
)

// Layout is the page template a resource is rendered with.
type Layout string

const (
	LayoutInsights      Layout = "insights"
	LayoutGatedResource Layout = "gated-resource"
	LayoutCaseStudy     Layout = "case-study"
	LayoutGeneric       Layout = "generic"
)

// Props is everything a detail layout needs besides the resource itself.
type Props struct {
	Layout     Layout            `json:"layout"`
	Bucket     models.Bucket     `json:"bucket"`
	TypeLabel  string            `json:"typeLabel"`
	TopicLabel string            `json:"topicLabel,omitempty"`
	Accent     models.Accent     `json:"accent"`
	Related    []models.Resource `json:"related"`
}

// View pairs a resource with its assembled props.
type View struct {
	Resource models.Resource `json:"resource"`
	Props    Props           `json:"props"`
}

// ChooseLayout picks the page template for r.
func ChooseLayout(r models.Resource) Layout {
	return chooseLayout(resource.BucketOf(r.Type), r.Type)
}

// chooseLayout checks the bucket before the type, so any type added to the
// resources bucket is gated without needing its own branch here.
func chooseLayout(bucket models.Bucket, t models.Type) Layout {
	switch {
	case bucket == models.BucketInsights:
		return LayoutInsights
	case bucket == models.BucketResources:
		return LayoutGatedResource
	case t == models.TypeCaseStudy:
		return LayoutCaseStudy
	default:
		return LayoutGeneric
	}
}

// AssembleProps bundles the layout, labels, accent and related resources for r.
func AssembleProps(r models.Resource, candidates []models.Resource, tax resource.Taxonomy) Props {
	topic, _ := resource.PrimaryTopicLabel(r, tax)
	return Props{
		Layout:     ChooseLayout(r),
		Bucket:     resource.BucketOf(r.Type),
		TypeLabel:  resource.LabelOf(r.Type),
		TopicLabel: topic,
		Accent:     resource.AccentOf(r.Type),
		Related:    related.Select(r, candidates),
	}
}

// Assemble returns the full detail view for r.
func Assemble(r models.Resource, candidates []models.Resource, tax resource.Taxonomy) View {
	return View{Resource: r, Props: AssembleProps(r, candidates, tax)}
}
