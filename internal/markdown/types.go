package markdown

// LinkKind classifies a link target. It is assigned once at parse time.
type LinkKind string

const (
	KindInternal   LinkKind = "internal"
	KindExternal   LinkKind = "external"
	KindAnchorOnly LinkKind = "anchor-only"
	KindAsset      LinkKind = "asset"
)

// LinkForm records the syntax a link was written in, so a rewriter can find
// the exact text again.
type LinkForm string

const (
	FormInline  LinkForm = "inline"   // [text](target)
	FormAngle   LinkForm = "angle"    // [text](<target>)
	FormHref    LinkForm = "href"     // <a href="target">
	FormDataRef LinkForm = "data-ref" // data-ref="target"
)

// ParsedLink is a navigable link found in a document.
type ParsedLink struct {
	Raw         string   // Complete matched text
	RawTarget   string   // Target exactly as written, fragment included
	DisplayText string   // Link text (empty for attribute forms without text)
	TargetPath  string   // Cleaned target without the fragment
	Anchor      string   // Cleaned fragment without '#', empty when absent
	Line        int      // 1-based line number
	Column      int      // 1-based byte column of the match start
	Kind        LinkKind // Never KindExternal in parser output
	Form        LinkForm
}

// HasAnchor reports whether the link carries a fragment.
func (l ParsedLink) HasAnchor() bool {
	return l.Anchor != ""
}

// HeadingInfo is an ATX heading found in a document.
type HeadingInfo struct {
	Text     string // Plain display text, explicit id suffix removed
	ID       string // Explicit id or generated slug
	Level    int
	Line     int
	Explicit bool // ID came from a {#id} suffix
}

// FileLinks groups the links of one document, keyed by project-relative path.
type FileLinks struct {
	Path  string
	Links []ParsedLink
}

// FileHeadings groups the headings of one document, keyed by project-relative path.
type FileHeadings struct {
	Path     string
	Headings []HeadingInfo
}

// HasID reports whether a heading with exactly this id exists.
func (f FileHeadings) HasID(id string) bool {
	for _, h := range f.Headings {
		if h.ID == id {
			return true
		}
	}
	return false
}

// IDs returns the heading ids in document order.
func (f FileHeadings) IDs() []string {
	ids := make([]string, 0, len(f.Headings))
	for _, h := range f.Headings {
		ids = append(ids, h.ID)
	}
	return ids
}
