package markdown

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docrefs/internal/anchor"
	"git.home.luguber.info/inful/docrefs/internal/frontmatter"
)

// Document holds the navigable structure extracted from one Markdown text.
type Document struct {
	Links    []ParsedLink
	Headings []HeadingInfo
}

// targetChar matches one character of an unbracketed link target: any escaped
// character, or anything but parentheses, whitespace and backslashes.
const targetChar = `(?:\\.|[^()\s\\])`

// linkText matches link text that may hold nested bracketed groups such as
// an image, e.g. a badge: [![build](badge.svg)](guide.md).
const linkText = `((?:[^\[\]]|!?\[[^\[\]]*\](?:\([^()\n]*\))?)*)`

var (
	angleLinkPattern = regexp.MustCompile(`!?\[` + linkText + `\]\(<([^<>\n]+)>(?:\s+"[^"]*")?\)`)
	// One nested parenthesized group is allowed, e.g. Wikipedia-style URLs.
	inlineLinkPattern = regexp.MustCompile(`!?\[` + linkText + `\]\((` + targetChar + `*(?:\(` + targetChar + `*\)` + targetChar + `*)?)(?:\s+"[^"]*")?\)`)
	hrefPattern       = regexp.MustCompile(`<a\s[^>]*?href="([^"]*)"[^>]*>(?:([^<]*)</a>)?`)
	dataRefPattern    = regexp.MustCompile(`data-ref="([^"]*)"`)

	headingPattern  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	closingSequence = regexp.MustCompile(`\s+#+\s*$`)
)

type linkMatcher struct {
	pattern *regexp.Regexp
	form    LinkForm
	// Submatch indices of the target and the display text (-1 when absent).
	target, text int
}

// Matchers are attempted in this order; a later match overlapping an earlier
// one on the same line is ignored.
var linkMatchers = []linkMatcher{
	{pattern: angleLinkPattern, form: FormAngle, target: 2, text: 1},
	{pattern: inlineLinkPattern, form: FormInline, target: 2, text: 1},
	{pattern: hrefPattern, form: FormHref, target: 1, text: 2},
	{pattern: dataRefPattern, form: FormDataRef, target: 1, text: -1},
}

// Parse extracts links and headings in a single forward pass.
//
// Lines inside fenced code blocks are skipped. A line starting with ``` or ~~~
// (after trimming) toggles the fenced state, so an unterminated fence hides
// the rest of the document. A leading YAML frontmatter block is skipped too.
func Parse(content []byte) Document {
	doc := Document{Links: []ParsedLink{}, Headings: []HeadingInfo{}}
	lines := strings.Split(string(content), "\n")
	inFence := false

	for i := frontmatter.BodyLineOffset(content); i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		if h, ok := parseHeading(line, i+1); ok {
			doc.Headings = append(doc.Headings, h)
		}
		doc.Links = append(doc.Links, parseLineLinks(line, i+1)...)
	}
	return doc
}

// ParseLinks returns the navigable links of a document in order.
// External links are dropped.
func ParseLinks(content []byte) []ParsedLink {
	return Parse(content).Links
}

// ParseHeadings returns the ATX headings of a document in order.
func ParseHeadings(content []byte) []HeadingInfo {
	return Parse(content).Headings
}

type span struct{ start, end int }

func overlaps(spans []span, s span) bool {
	for _, o := range spans {
		if s.start < o.end && o.start < s.end {
			return true
		}
	}
	return false
}

func parseLineLinks(line string, lineNum int) []ParsedLink {
	if !strings.ContainsAny(line, "](\"") {
		return nil
	}
	scan := maskInlineCode(line)

	var taken []span
	var found []ParsedLink
	for _, m := range linkMatchers {
		for _, idx := range m.pattern.FindAllStringSubmatchIndex(scan, -1) {
			s := span{idx[0], idx[1]}
			if overlaps(taken, s) {
				continue
			}
			taken = append(taken, s)
			if m.text >= 0 && idx[2*m.text] >= 0 {
				found = append(found, nestedLinks(scan, idx[2*m.text], idx[2*m.text+1], lineNum)...)
			}

			rawTarget := strings.TrimSpace(line[idx[2*m.target]:idx[2*m.target+1]])
			if rawTarget == "" {
				continue
			}
			kind := Classify(rawTarget)
			if kind == KindExternal {
				continue
			}

			text := ""
			if m.text >= 0 && idx[2*m.text] >= 0 {
				text = line[idx[2*m.text]:idx[2*m.text+1]]
			}
			p, frag := SplitAnchor(rawTarget)
			found = append(found, ParsedLink{
				Raw:         line[s.start:s.end],
				RawTarget:   rawTarget,
				DisplayText: text,
				TargetPath:  CleanPath(p),
				Anchor:      CleanPath(frag),
				Line:        lineNum,
				Column:      s.start + 1,
				Kind:        kind,
				Form:        m.form,
			})
		}
	}
	sortByColumn(found)
	return found
}

// nestedLinks parses links inside the text of an enclosing link. The text is
// padded to its original offset so columns stay aligned with line.
func nestedLinks(line string, start, end, lineNum int) []ParsedLink {
	text := line[start:end]
	if !strings.Contains(text, "](") {
		return nil
	}
	return parseLineLinks(strings.Repeat(" ", start)+text, lineNum)
}

func sortByColumn(links []ParsedLink) {
	slices.SortStableFunc(links, func(a, b ParsedLink) int {
		return cmp.Compare(a.Column, b.Column)
	})
}

// maskInlineCode replaces inline code spans with spaces so links inside them
// are not matched while byte columns stay aligned with the original line.
func maskInlineCode(s string) string {
	if !strings.Contains(s, "`") {
		return s
	}
	out := []byte(s)
	for i := 0; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		run := 1
		for i+run < len(s) && s[i+run] == '`' {
			run++
		}
		closeRel := strings.Index(s[i+run:], strings.Repeat("`", run))
		if closeRel == -1 {
			i += run
			continue
		}
		end := i + run + closeRel + run
		for j := i; j < end; j++ {
			out[j] = ' '
		}
		i = end
	}
	return string(out)
}

func parseHeading(line string, lineNum int) (HeadingInfo, bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return HeadingInfo{}, false
	}
	raw := closingSequence.ReplaceAllString(m[2], "")
	raw, explicit := anchor.SplitExplicitID(raw)
	text := headingText(raw)
	if text == "" && explicit == "" {
		return HeadingInfo{}, false
	}

	h := HeadingInfo{
		Text:  text,
		ID:    explicit,
		Level: len(m[1]),
		Line:  lineNum,
	}
	if explicit != "" {
		h.Explicit = true
	} else {
		h.ID = anchor.Slugify(text)
	}
	if h.ID == "" {
		return HeadingInfo{}, false
	}
	return h, true
}
