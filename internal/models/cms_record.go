package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// CMSRecord is a resource document as returned by the content store.
// Every field decodes leniently: a value of the wrong JSON kind becomes the
// zero value instead of failing the whole document. Only the normalizer
// should read these fields.
type CMSRecord struct {
	ID            Text             `json:"_id"`
	Slug          SlugField        `json:"slug"`
	Title         Text             `json:"title"`
	Excerpt       Text             `json:"excerpt"`
	CoverImage    ImageRef         `json:"coverImage"`
	GalleryImages List[ImageRef]   `json:"galleryImages"`
	Category      Text             `json:"category"`
	Type          Text             `json:"type"`
	Tags          List[Text]       `json:"tags"`
	Topics        List[Text]       `json:"topics"`
	Author        Block[CMSAuthor] `json:"author"`
	PublishedAt   Text             `json:"publishedAt"`
	ReadTime      Int              `json:"readTime"`
	Featured      Flag             `json:"featured"`

	KeyPoints        List[Text]                 `json:"keyPoints"`
	TableOfContents  List[CMSTOCEntry]          `json:"tableOfContents"`
	ResultsMetrics   List[CMSResultsMetric]     `json:"resultsMetrics"`
	Webinar          Block[CMSWebinar]          `json:"webinar"`
	Downloadable     Block[CMSDownloadable]     `json:"downloadable"`
	Client           Block[CMSClient]           `json:"client"`
	ChallengeSection Block[CMSChallengeSection] `json:"challengeSection"`
	SolutionSection  Block[CMSSolutionSection]  `json:"solutionSection"`
	ResultsSection   Block[CMSResultsSection]   `json:"resultsSection"`
	Testimonial      Block[CMSTestimonial]      `json:"testimonial"`
}

type CMSAuthor struct {
	Name   Text     `json:"name"`
	Role   Text     `json:"role"`
	Avatar ImageRef `json:"avatar"`
}

type CMSTOCEntry struct {
	ID    Text `json:"id"`
	Title Text `json:"title"`
	Level Int  `json:"level"`
}

type CMSSpeaker struct {
	Name   Text     `json:"name"`
	Role   Text     `json:"role"`
	Avatar ImageRef `json:"avatar"`
}

type CMSWebinar struct {
	Date            Text             `json:"date"`
	Time            Text             `json:"time"`
	Duration        Text             `json:"duration"`
	RegistrationURL Text             `json:"registrationUrl"`
	RecordingURL    Text             `json:"recordingUrl"`
	Speakers        List[CMSSpeaker] `json:"speakers"`
	IsLive          Flag             `json:"isLive"`
}

type CMSDownloadable struct {
	Format        Text           `json:"format"`
	FileSize      Text           `json:"fileSize"`
	DownloadURL   Text           `json:"downloadUrl"`
	PreviewImages List[ImageRef] `json:"previewImages"`
	Features      List[Text]     `json:"features"`
}

type CMSContact struct {
	Name  Text `json:"name"`
	Role  Text `json:"role"`
	Email Text `json:"email"`
}

type CMSClient struct {
	Name        Text              `json:"name"`
	Industry    Text              `json:"industry"`
	Logo        ImageRef          `json:"logo"`
	Description Text              `json:"description"`
	Contact     Block[CMSContact] `json:"contact"`
}

type CMSResultsMetric struct {
	Label       Text `json:"label"`
	Value       Text `json:"value"`
	Unit        Text `json:"unit"`
	Description Text `json:"description"`
}

type CMSSectionHeader struct {
	Eyebrow Text `json:"eyebrow"`
	Title   Text `json:"title"`
	Summary Text `json:"summary"`
}

type CMSPainPoint struct {
	Title       Text `json:"title"`
	Description Text `json:"description"`
}

type CMSPhase struct {
	Label       Text `json:"label"`
	Title       Text `json:"title"`
	Description Text `json:"description"`
}

type CMSOutcome struct {
	Title       Text `json:"title"`
	Description Text `json:"description"`
	Metric      Text `json:"metric"`
}

type CMSChallengeSection struct {
	CMSSectionHeader
	PainPoints List[CMSPainPoint] `json:"painPoints"`
}

type CMSSolutionSection struct {
	CMSSectionHeader
	Phases List[CMSPhase] `json:"phases"`
}

type CMSResultsSection struct {
	CMSSectionHeader
	Outcomes List[CMSOutcome] `json:"outcomes"`
}

type CMSTestimonial struct {
	Quote           Text `json:"quote"`
	AttributionName Text `json:"attributionName"`
	AttributionRole Text `json:"attributionRole"`
}

// Text decodes JSON strings and numbers; anything else is left empty.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = Text(n.String())
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Int decodes JSON numbers and numeric strings, truncating fractions.
type Int int

func (i *Int) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*i = Int(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*i = Int(f)
		}
	}
	return nil
}

// Flag decodes JSON booleans; anything else is false.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*f = Flag(v)
	}
	return nil
}

// List decodes a JSON array element by element, skipping elements that do not
// decode. A non-array value leaves the list nil.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make(List[T], 0, len(raw))
	for _, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// Block holds an optional nested object. Value stays nil when the field is
// absent, falsy, or not an object of the expected shape.
type Block[T any] struct {
	Value *T
}

func (blk *Block[T]) UnmarshalJSON(b []byte) error {
	blk.Value = nil
	if !truthy(b) {
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	blk.Value = &v
	return nil
}

// Present reports whether the block decoded to a value.
func (blk Block[T]) Present() bool { return blk.Value != nil }

// SlugField accepts both the CMS slug object ({"current": "..."}) and a bare string.
type SlugField string

func (s *SlugField) UnmarshalJSON(b []byte) error {
	var plain string
	if err := json.Unmarshal(b, &plain); err == nil {
		*s = SlugField(strings.TrimSpace(plain))
		return nil
	}
	var obj struct {
		Current string `json:"current"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		*s = SlugField(strings.TrimSpace(obj.Current))
	}
	return nil
}

// ImageRef is an image as stored in the CMS: either an expanded asset with a
// URL, an asset reference id, or a bare URL string.
type ImageRef struct {
	URL string
	Ref string
	Alt string
}

type imageAsset struct {
	Ref string `json:"_ref"`
	URL string `json:"url"`
}

func (r *ImageRef) UnmarshalJSON(b []byte) error {
	*r = ImageRef{}
	var plain string
	if err := json.Unmarshal(b, &plain); err == nil {
		r.URL = strings.TrimSpace(plain)
		return nil
	}
	var obj struct {
		Ref   string     `json:"_ref"`
		URL   string     `json:"url"`
		Alt   string     `json:"alt"`
		Asset imageAsset `json:"asset"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	r.Alt = obj.Alt
	r.URL = firstNonEmpty(obj.Asset.URL, obj.URL)
	r.Ref = firstNonEmpty(obj.Asset.Ref, obj.Ref)
	return nil
}

// IsZero reports whether the reference points at nothing.
func (r ImageRef) IsZero() bool {
	return r.URL == "" && r.Ref == ""
}

func truthy(b []byte) bool {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
