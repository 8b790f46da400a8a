package models

// Resource is the canonical content entity shown on the resources and insights pages.
// Values are built once per request and never mutated afterwards.
type Resource struct {
	Slug          string   `json:"slug" validate:"required,slug"`
	Title         string   `json:"title" validate:"required"`
	Excerpt       string   `json:"excerpt"`
	CoverImage    string   `json:"coverImage"`
	GalleryImages []string `json:"galleryImages"`
	Category      string   `json:"category"`
	Type          Type     `json:"type"`
	Tags          []string `json:"tags"`
	Topics        []string `json:"topics"`
	Author        Author   `json:"author"`
	PublishedAt   string   `json:"publishedAt"`
	ReadTime      int      `json:"readTime" validate:"gte=0"`
	Featured      bool     `json:"featured"`

	KeyPoints        []string          `json:"keyPoints"`
	TableOfContents  []TOCEntry        `json:"tableOfContents"`
	ResultsMetrics   []ResultsMetric   `json:"resultsMetrics"`
	Webinar          *Webinar          `json:"webinar,omitempty"`
	Downloadable     *Downloadable     `json:"downloadable,omitempty"`
	Client           *Client           `json:"client,omitempty"`
	ChallengeSection *ChallengeSection `json:"challengeSection,omitempty"`
	SolutionSection  *SolutionSection  `json:"solutionSection,omitempty"`
	ResultsSection   *ResultsSection   `json:"resultsSection,omitempty"`
	Testimonial      *Testimonial      `json:"testimonial,omitempty"`
}

// Author of a resource.
type Author struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// TOCEntry is one heading in an article's table of contents.
type TOCEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// Speaker presents at a webinar.
type Speaker struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Webinar holds scheduling and access details for Webinar resources.
type Webinar struct {
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Duration        string    `json:"duration"`
	RegistrationURL string    `json:"registrationUrl"`
	RecordingURL    string    `json:"recordingUrl"`
	Speakers        []Speaker `json:"speakers"`
	IsLive          bool      `json:"isLive"`
}

// Downloadable describes the gated file behind templates, tools and ebooks.
type Downloadable struct {
	Format        string   `json:"format"`
	FileSize      string   `json:"fileSize"`
	DownloadURL   string   `json:"downloadUrl"`
	PreviewImages []string `json:"previewImages"`
	Features      []string `json:"features"`
}

// Contact is the client-side person for a case study.
type Contact struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Client is the customer featured in a case study.
type Client struct {
	Name        string   `json:"name"`
	Industry    string   `json:"industry"`
	Logo        string   `json:"logo,omitempty"`
	Description string   `json:"description"`
	Contact     *Contact `json:"contact,omitempty"`
}

// ResultsMetric is a headline number in a case study.
type ResultsMetric struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// SectionHeader is shared by the three case study sections.
type SectionHeader struct {
	Eyebrow string `json:"eyebrow"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// PainPoint is one problem listed in a challenge section.
type PainPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Phase is one step of the delivered solution.
type Phase struct {
	Label       string `json:"label"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Outcome is one result reported after the engagement.
type Outcome struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Metric      string `json:"metric"`
}

type ChallengeSection struct {
	SectionHeader
	PainPoints []PainPoint `json:"painPoints"`
}

type SolutionSection struct {
	SectionHeader
	Phases []Phase `json:"phases"`
}

type ResultsSection struct {
	SectionHeader
	Outcomes []Outcome `json:"outcomes"`
}

// Testimonial quoted on a resource page.
type Testimonial struct {
	Quote           string `json:"quote"`
	AttributionName string `json:"attributionName"`
	AttributionRole string `json:"attributionRole"`
}
