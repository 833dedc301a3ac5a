// Package anchor generates heading anchors.
//
// The same slug algorithm is used when headings are parsed and when an anchor
// is suggested for arbitrary heading text, so both always agree.
package anchor

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\p{Zs}\s-]`)
	whitespace   = regexp.MustCompile(`[\p{Zs}\s]+`)
	hyphens      = regexp.MustCompile(`-+`)
	lower        = cases.Lower(language.Und)
)

// Slugify converts heading text into an anchor id.
//
// The text is lowercased, every character that is not a Unicode letter, mark,
// digit, underscore, whitespace or hyphen is removed, whitespace runs become one hyphen, hyphen
// runs collapse, and leading/trailing hyphens are trimmed.
// Slugify is idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(text string) string {
	if text == "" {
		return ""
	}
	s := lower.String(text)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Fragment returns the link fragment ("#id") a heading with the given text
// would receive. An explicit "{#id}" suffix wins over the generated slug.
func Fragment(headingText string) string {
	text, explicit := SplitExplicitID(headingText)
	if explicit != "" {
		return "#" + explicit
	}
	return "#" + Slugify(text)
}

var explicitID = regexp.MustCompile(`\s*\{#([^}\s]+)\}\s*$`)

// SplitExplicitID strips an inline "{#custom-id}" suffix from heading text.
// It returns the remaining text and the explicit id, or "" when there is none.
func SplitExplicitID(text string) (string, string) {
	m := explicitID.FindStringSubmatchIndex(text)
	if m == nil {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(text[:m[0]]), text[m[2]:m[3]]
}
