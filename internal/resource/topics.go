package resource

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/bilgisen/resourcehub/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonKeyChars = regexp.MustCompile(`[^a-z0-9]+`)

// Taxonomy maps topic keys to the labels shown in breadcrumbs and pills.
// Keys are matched after folding case, accents and punctuation, so
// "Budgeting & Finance" and "budgeting-finance" are the same key.
type Taxonomy map[string]string

// NewTaxonomy builds a Taxonomy from raw key/label pairs.
func NewTaxonomy(labels map[string]string) Taxonomy {
	tax := make(Taxonomy, len(labels))
	for k, v := range labels {
		if key := TopicKey(k); key != "" && strings.TrimSpace(v) != "" {
			tax[key] = strings.TrimSpace(v)
		}
	}
	return tax
}

// Label returns the label registered for a topic or category name.
func (t Taxonomy) Label(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	label, ok := t[TopicKey(name)]
	return label, ok
}

// DefaultTaxonomy covers the site's navigation topics.
var DefaultTaxonomy = NewTaxonomy(map[string]string{
	"brand-strategy":      "Brand Strategy",
	"marketing-strategy":  "Marketing Strategy",
	"budgeting-finance":   "Budgeting & Finance",
	"content-marketing":   "Content Marketing",
	"web-design":          "Web Design",
	"seo":                 "SEO",
	"paid-media":          "Paid Media",
	"social-media":        "Social Media",
	"analytics":           "Analytics & Reporting",
	"analytics-reporting": "Analytics & Reporting",
	"ai":                  "AI & Automation",
	"ai-automation":       "AI & Automation",
	"growth":              "Growth",
})

// PrimaryTopicLabel resolves the most specific label available for r: the
// first of its topics known to the taxonomy, then the taxonomy label of its
// category, then the category itself.
func PrimaryTopicLabel(r models.Resource, tax Taxonomy) (string, bool) {
	for _, topic := range r.Topics {
		if label, ok := tax.Label(topic); ok {
			return label, true
		}
	}
	if label, ok := tax.Label(r.Category); ok {
		return label, true
	}
	if c := strings.TrimSpace(r.Category); c != "" {
		return c, true
	}
	return "", false
}

// TopicKey folds a topic or category name into its lookup key.
func TopicKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = removeAccents(s)
	s = strings.ReplaceAll(s, "&", " ")
	s = nonKeyChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
