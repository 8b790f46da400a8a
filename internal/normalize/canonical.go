package normalize

import "github.com/bilgisen/resourcehub/internal/models"

// Canonical fills the list fields of an already-typed resource (for example
// one loaded from the static fallback file) so it has the same shape as a
// normalized CMS record.
func Canonical(r models.Resource) models.Resource {
	r.GalleryImages = orEmpty(r.GalleryImages)
	r.Tags = orEmpty(r.Tags)
	r.Topics = orEmpty(r.Topics)
	r.KeyPoints = orEmpty(r.KeyPoints)
	r.TableOfContents = orEmpty(r.TableOfContents)
	r.ResultsMetrics = orEmpty(r.ResultsMetrics)
	if r.ReadTime < 0 {
		r.ReadTime = 0
	}
	if r.Webinar != nil {
		w := *r.Webinar
		w.Speakers = orEmpty(w.Speakers)
		r.Webinar = &w
	}
	if r.Downloadable != nil {
		d := *r.Downloadable
		d.PreviewImages = orEmpty(d.PreviewImages)
		d.Features = orEmpty(d.Features)
		r.Downloadable = &d
	}
	if r.ChallengeSection != nil {
		s := *r.ChallengeSection
		s.PainPoints = orEmpty(s.PainPoints)
		r.ChallengeSection = &s
	}
	if r.SolutionSection != nil {
		s := *r.SolutionSection
		s.Phases = orEmpty(s.Phases)
		r.SolutionSection = &s
	}
	if r.ResultsSection != nil {
		s := *r.ResultsSection
		s.Outcomes = orEmpty(s.Outcomes)
		r.ResultsSection = &s
	}
	return r
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
