package models

import (
	"fmt"
	"strings"
)

// Type is the closed set of resource kinds editors can pick in the CMS.
// The zero value is not a valid Type; values come from the constants below or ParseType.
type Type uint8

const (
	TypeArticle Type = iota + 1
	TypeGuide
	TypeCaseStudy
	TypeReport
	TypeWebinar
	TypeTemplate
	TypeTool
	TypeEbook
)

var typeNames = [...]string{
	TypeArticle:   "Article",
	TypeGuide:     "Guide",
	TypeCaseStudy: "Case Study",
	TypeReport:    "Report",
	TypeWebinar:   "Webinar",
	TypeTemplate:  "Template",
	TypeTool:      "Tool",
	TypeEbook:     "Ebook",
}

// Types lists every valid Type in CMS order.
var Types = []Type{
	TypeArticle,
	TypeGuide,
	TypeCaseStudy,
	TypeReport,
	TypeWebinar,
	TypeTemplate,
	TypeTool,
	TypeEbook,
}

// Valid reports whether t is one of the declared constants.
func (t Type) Valid() bool {
	return t >= TypeArticle && t <= TypeEbook
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeNames[t]
}

// ParseType maps a CMS type string to a Type. Matching ignores case and
// surrounding whitespace, so "case study" and "Case Study" are the same type.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, t := range Types {
		if strings.EqualFold(typeNames[t], s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown resource type %q", s)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid resource type %d", uint8(t))
	}
	return []byte(typeNames[t]), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Bucket is the coarse content grouping derived from a Type.
type Bucket string

const (
	BucketInsights       Bucket = "insights"
	BucketSuccessStories Bucket = "success-stories"
	BucketResources      Bucket = "resources"
)

// Accent is the colour variant a detail page uses.
type Accent string

const (
	AccentPrimary   Accent = "primary"
	AccentSecondary Accent = "secondary"
)
