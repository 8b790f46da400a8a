package normalize

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	scriptBlocks = regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>`)
	unsafeTags   = regexp.MustCompile(`(?i)</?(script|iframe|object|embed|link|meta)[^>]*>`)
)

// cleanText removes control characters and collapses whitespace. Editors
// paste titles and excerpts from rich text, so stray newlines and tabs are common.
func cleanText(s string) string {
	s = controlChars.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// cleanExcerpt is cleanText with embedded markup that could run in the page dropped.
func cleanExcerpt(s string) string {
	s = scriptBlocks.ReplaceAllString(s, "")
	s = unsafeTags.ReplaceAllString(s, "")
	return cleanText(s)
}
