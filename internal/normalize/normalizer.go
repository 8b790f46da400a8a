package normalize

import (
	"strings"
	"time"

	"github.com/bilgisen/resourcehub/internal/logger"
	"github.com/bilgisen/resourcehub/internal/models"
)

// DisplayDateLayout is the short date shown on resource cards and headers.
const DisplayDateLayout = "Jan 02, 2006"

var publishedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ImageResolver turns a CMS image reference into a URL the browser can load.
// An empty result means the image cannot be shown.
type ImageResolver interface {
	Resolve(ref models.ImageRef) string
}

// Normalizer converts CMS records into canonical resources.
type Normalizer struct {
	images ImageResolver
}

func NewNormalizer(images ImageResolver) *Normalizer {
	return &Normalizer{images: images}
}

// Normalize builds a canonical Resource from a CMS record. It never fails:
// missing scalars take their zero value, missing lists become empty, and
// optional blocks that are absent or malformed are left nil.
func (n *Normalizer) Normalize(raw models.CMSRecord) models.Resource {
	r := models.Resource{
		Slug:            string(raw.Slug),
		Title:           cleanText(raw.Title.String()),
		Excerpt:         cleanExcerpt(raw.Excerpt.String()),
		CoverImage:      n.image(raw.CoverImage),
		GalleryImages:   n.imageList(raw.GalleryImages),
		Category:        raw.Category.String(),
		Type:            n.resourceType(raw),
		Tags:            texts(raw.Tags),
		Topics:          texts(raw.Topics),
		PublishedAt:     FormatPublishedAt(raw.PublishedAt.String()),
		ReadTime:        max(int(raw.ReadTime), 0),
		Featured:        bool(raw.Featured),
		KeyPoints:       texts(raw.KeyPoints),
		TableOfContents: tableOfContents(raw.TableOfContents),
		ResultsMetrics:  resultsMetrics(raw.ResultsMetrics),
	}

	if a := raw.Author.Value; a != nil {
		r.Author = models.Author{
			Name:   a.Name.String(),
			Role:   a.Role.String(),
			Avatar: n.image(a.Avatar),
		}
	}
	if w := raw.Webinar.Value; w != nil {
		r.Webinar = n.webinar(w)
	}
	if d := raw.Downloadable.Value; d != nil {
		r.Downloadable = &models.Downloadable{
			Format:        d.Format.String(),
			FileSize:      d.FileSize.String(),
			DownloadURL:   d.DownloadURL.String(),
			PreviewImages: n.imageList(d.PreviewImages),
			Features:      texts(d.Features),
		}
	}
	if c := raw.Client.Value; c != nil {
		r.Client = n.client(c)
	}
	if s := raw.ChallengeSection.Value; s != nil {
		r.ChallengeSection = challengeSection(s)
	}
	if s := raw.SolutionSection.Value; s != nil {
		r.SolutionSection = solutionSection(s)
	}
	if s := raw.ResultsSection.Value; s != nil {
		r.ResultsSection = resultsSection(s)
	}
	if t := raw.Testimonial.Value; t != nil {
		r.Testimonial = &models.Testimonial{
			Quote:           t.Quote.String(),
			AttributionName: t.AttributionName.String(),
			AttributionRole: t.AttributionRole.String(),
		}
	}
	return r
}

func (n *Normalizer) resourceType(raw models.CMSRecord) models.Type {
	t, err := models.ParseType(raw.Type.String())
	if err != nil {
		logger.Warn().
			Str("slug", string(raw.Slug)).
			Str("type", raw.Type.String()).
			Msg("Unrecognized resource type, treating as Article")
		return models.TypeArticle
	}
	return t
}

func (n *Normalizer) image(ref models.ImageRef) string {
	if ref.IsZero() || n.images == nil {
		return ""
	}
	return strings.TrimSpace(n.images.Resolve(ref))
}

func (n *Normalizer) imageList(refs []models.ImageRef) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if u := n.image(ref); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (n *Normalizer) webinar(w *models.CMSWebinar) *models.Webinar {
	speakers := make([]models.Speaker, 0, len(w.Speakers))
	for _, s := range w.Speakers {
		speakers = append(speakers, models.Speaker{
			Name:   s.Name.String(),
			Role:   s.Role.String(),
			Avatar: n.image(s.Avatar),
		})
	}
	return &models.Webinar{
		Date:            w.Date.String(),
		Time:            w.Time.String(),
		Duration:        w.Duration.String(),
		RegistrationURL: w.RegistrationURL.String(),
		RecordingURL:    w.RecordingURL.String(),
		Speakers:        speakers,
		IsLive:          bool(w.IsLive),
	}
}

func (n *Normalizer) client(c *models.CMSClient) *models.Client {
	out := &models.Client{
		Name:        c.Name.String(),
		Industry:    c.Industry.String(),
		Logo:        n.image(c.Logo),
		Description: c.Description.String(),
	}
	if ct := c.Contact.Value; ct != nil {
		out.Contact = &models.Contact{
			Name:  ct.Name.String(),
			Role:  ct.Role.String(),
			Email: ct.Email.String(),
		}
	}
	return out
}

// FormatPublishedAt renders a CMS timestamp as a display date. Empty or
// unparseable input yields "".
func FormatPublishedAt(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DisplayDateLayout)
		}
	}
	return ""
}

func texts(in []models.Text) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if s := t.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func tableOfContents(in []models.CMSTOCEntry) []models.TOCEntry {
	out := make([]models.TOCEntry, 0, len(in))
	for _, e := range in {
		out = append(out, models.TOCEntry{
			ID:    e.ID.String(),
			Title: e.Title.String(),
			Level: int(e.Level),
		})
	}
	return out
}

func resultsMetrics(in []models.CMSResultsMetric) []models.ResultsMetric {
	out := make([]models.ResultsMetric, 0, len(in))
	for _, m := range in {
		out = append(out, models.ResultsMetric{
			Label:       m.Label.String(),
			Value:       m.Value.String(),
			Unit:        m.Unit.String(),
			Description: m.Description.String(),
		})
	}
	return out
}

func header(h models.CMSSectionHeader) models.SectionHeader {
	return models.SectionHeader{
		Eyebrow: h.Eyebrow.String(),
		Title:   h.Title.String(),
		Summary: h.Summary.String(),
	}
}

func challengeSection(s *models.CMSChallengeSection) *models.ChallengeSection {
	points := make([]models.PainPoint, 0, len(s.PainPoints))
	for _, p := range s.PainPoints {
		points = append(points, models.PainPoint{Title: p.Title.String(), Description: p.Description.String()})
	}
	return &models.ChallengeSection{SectionHeader: header(s.CMSSectionHeader), PainPoints: points}
}

func solutionSection(s *models.CMSSolutionSection) *models.SolutionSection {
	phases := make([]models.Phase, 0, len(s.Phases))
	for _, p := range s.Phases {
		phases = append(phases, models.Phase{
			Label:       p.Label.String(),
			Title:       p.Title.String(),
			Description: p.Description.String(),
		})
	}
	return &models.SolutionSection{SectionHeader: header(s.CMSSectionHeader), Phases: phases}
}

func resultsSection(s *models.CMSResultsSection) *models.ResultsSection {
	outcomes := make([]models.Outcome, 0, len(s.Outcomes))
	for _, o := range s.Outcomes {
		outcomes = append(outcomes, models.Outcome{
			Title:       o.Title.String(),
			Description: o.Description.String(),
			Metric:      o.Metric.String(),
		})
	}
	return &models.ResultsSection{SectionHeader: header(s.CMSSectionHeader), Outcomes: outcomes}
}
