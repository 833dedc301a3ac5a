package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinks_InlineLink(t *testing.T) {
	links := ParseLinks([]byte("See [API](api.md) for details."))
	require.Len(t, links, 1)

	l := links[0]
	assert.Equal(t, "[API](api.md)", l.Raw)
	assert.Equal(t, "api.md", l.RawTarget)
	assert.Equal(t, "API", l.DisplayText)
	assert.Equal(t, "api.md", l.TargetPath)
	assert.Empty(t, l.Anchor)
	assert.Equal(t, 1, l.Line)
	assert.Equal(t, 5, l.Column)
	assert.Equal(t, KindInternal, l.Kind)
	assert.Equal(t, FormInline, l.Form)
}

func TestParseLinks_DropsExternal(t *testing.T) {
	src := "[Go](https://go.dev), [Mail](mailto:docs@example.com), [FTP](FTP://host/file), [Call](tel:123)\n"
	assert.Empty(t, ParseLinks([]byte(src)))
}

func TestParseLinks_Classification(t *testing.T) {
	src := "" +
		"[setup](guide/setup.md#install-steps)\n" +
		"[top](#overview)\n" +
		"![Diagram](img/flow.png)\n" +
		"[bundle](downloads/site.zip)\n"
	links := ParseLinks([]byte(src))
	require.Len(t, links, 4)

	assert.Equal(t, KindInternal, links[0].Kind)
	assert.Equal(t, "guide/setup.md", links[0].TargetPath)
	assert.Equal(t, "install-steps", links[0].Anchor)
	assert.Equal(t, "guide/setup.md#install-steps", links[0].RawTarget)

	assert.Equal(t, KindAnchorOnly, links[1].Kind)
	assert.Empty(t, links[1].TargetPath)
	assert.Equal(t, "overview", links[1].Anchor)

	assert.Equal(t, KindAsset, links[2].Kind)
	assert.Equal(t, "![Diagram](img/flow.png)", links[2].Raw)
	assert.Equal(t, 3, links[2].Line)

	assert.Equal(t, KindAsset, links[3].Kind)
}

func TestParseLinks_TargetForms(t *testing.T) {
	src := "" +
		"[Spaced](<my file.md>)\n" +
		"[Wiki](docs/Foo_(bar).md)\n" +
		"[pct](my%20notes.md) [esc](snake\\_case.md) [sp](with\\ space.md)\n" +
		"<a href=\"guide.md#top\">Guide</a> <div data-ref=\"api/index.md\"></div>\n" +
		"[titled](page.md \"Page title\")\n" +
		"[![build](img/badge.svg)](guide.md)\n"
	links := ParseLinks([]byte(src))
	require.Len(t, links, 10)

	assert.Equal(t, FormAngle, links[0].Form)
	assert.Equal(t, "my file.md", links[0].TargetPath)

	assert.Equal(t, "docs/Foo_(bar).md", links[1].TargetPath)

	assert.Equal(t, "my notes.md", links[2].TargetPath)
	assert.Equal(t, "snake_case.md", links[3].TargetPath)
	assert.Equal(t, `snake\_case.md`, links[3].RawTarget)
	assert.Equal(t, "with space.md", links[4].TargetPath)

	assert.Equal(t, FormHref, links[5].Form)
	assert.Equal(t, "guide.md", links[5].TargetPath)
	assert.Equal(t, "top", links[5].Anchor)
	assert.Equal(t, "Guide", links[5].DisplayText)

	assert.Equal(t, FormDataRef, links[6].Form)
	assert.Equal(t, "api/index.md", links[6].TargetPath)

	assert.Equal(t, "page.md", links[7].TargetPath)

	assert.Equal(t, "guide.md", links[8].TargetPath)
	assert.Equal(t, KindInternal, links[8].Kind)
	assert.Equal(t, "![build](img/badge.svg)", links[8].DisplayText)
	assert.Equal(t, 1, links[8].Column)
	assert.Equal(t, "img/badge.svg", links[9].TargetPath)
	assert.Equal(t, KindAsset, links[9].Kind)
	assert.Equal(t, 2, links[9].Column)
}

func TestParseLinks_ImageInsideExternalLink(t *testing.T) {
	links := ParseLinks([]byte("[![ci](img/ci.svg)](https://ci.example.com) [![x](https://x/y.svg)](local.md)"))
	require.Len(t, links, 2)
	assert.Equal(t, "img/ci.svg", links[0].TargetPath)
	assert.Equal(t, "local.md", links[1].TargetPath)
}

func TestParseLinks_NoDoubleCountingAndColumnOrder(t *testing.T) {
	src := `[b](b.md) and <a href="a.md">A</a> then [c](<c.md>)`
	links := ParseLinks([]byte(src))
	require.Len(t, links, 3)
	assert.Equal(t, []string{"b.md", "a.md", "c.md"}, []string{links[0].TargetPath, links[1].TargetPath, links[2].TargetPath})
	assert.Equal(t, FormAngle, links[2].Form)
	assert.Less(t, links[0].Column, links[1].Column)
	assert.Less(t, links[1].Column, links[2].Column)
}

func TestParse_SkipsFencedBlocksAndInlineCode(t *testing.T) {
	src := "" +
		"[before](a.md)\n" +
		"```sh\n" +
		"[inside](b.md)\n" +
		"# not a heading\n" +
		"```\n" +
		"~~~\n" +
		"## also not a heading\n" +
		"~~~\n" +
		"Inline: `[code](ignored.md)` but [after](c.md)\n"
	doc := Parse([]byte(src))
	require.Len(t, doc.Links, 2)
	assert.Equal(t, "a.md", doc.Links[0].TargetPath)
	assert.Equal(t, "c.md", doc.Links[1].TargetPath)
	assert.Equal(t, 9, doc.Links[1].Line)
	assert.Empty(t, doc.Headings)
}

func TestParse_UnterminatedFenceHidesRest(t *testing.T) {
	src := "# Title\n```\n[hidden](a.md)\n# Hidden\n"
	doc := Parse([]byte(src))
	assert.Empty(t, doc.Links)
	require.Len(t, doc.Headings, 1)
	assert.Equal(t, "title", doc.Headings[0].ID)
}

func TestParse_SkipsFrontmatterKeepsLineNumbers(t *testing.T) {
	src := "---\ntitle: \"[x](y.md)\"\n---\n[real](z.md)\n"
	links := ParseLinks([]byte(src))
	require.Len(t, links, 1)
	assert.Equal(t, "z.md", links[0].TargetPath)
	assert.Equal(t, 4, links[0].Line)
}

func TestParseHeadings(t *testing.T) {
	src := "" +
		"# Hello, World!\n" +
		"## Setup {#custom-setup}\n" +
		"### Using `kubectl` *fast*\n" +
		"## Closing hashes ##\n" +
		"## 1. Introduction\r\n" +
		"#NoSpace\n" +
		"####### seven\n" +
		"Text with # inside\n"
	hs := ParseHeadings([]byte(src))
	require.Len(t, hs, 5)

	assert.Equal(t, HeadingInfo{Text: "Hello, World!", ID: "hello-world", Level: 1, Line: 1}, hs[0])
	assert.Equal(t, HeadingInfo{Text: "Setup", ID: "custom-setup", Level: 2, Line: 2, Explicit: true}, hs[1])
	assert.Equal(t, "Using kubectl fast", hs[2].Text)
	assert.Equal(t, "using-kubectl-fast", hs[2].ID)
	assert.Equal(t, "Closing hashes", hs[3].Text)
	assert.Equal(t, "1-introduction", hs[4].ID)
}

func TestParseHeadings_NonLatinAndEmptySlugs(t *testing.T) {
	hs := ParseHeadings([]byte("# 安装\n## !!!\n## Über uns\n## ??? {#faq}\n"))
	require.Len(t, hs, 3)
	assert.Equal(t, "安装", hs[0].ID)
	assert.Equal(t, "über-uns", hs[1].ID)
	assert.Equal(t, 3, hs[1].Line)
	assert.Equal(t, "faq", hs[2].ID)
}

func TestFileHeadings(t *testing.T) {
	fh := FileHeadings{Path: "a.md", Headings: ParseHeadings([]byte("# One\n## Two\n"))}
	assert.True(t, fh.HasID("two"))
	assert.False(t, fh.HasID("Two"))
	assert.Equal(t, []string{"one", "two"}, fh.IDs())
}

func TestClassifyAndClean(t *testing.T) {
	assert.Equal(t, KindExternal, Classify("HTTPS://example.com"))
	assert.Equal(t, KindAnchorOnly, Classify("#x"))
	assert.Equal(t, KindAsset, Classify("a/b.PNG#frag"))
	assert.Equal(t, KindInternal, Classify("a/b.md"))
	assert.Equal(t, KindInternal, Classify("a/dir/"))

	p, frag := SplitAnchor(`file\#1.md#sec`)
	assert.Equal(t, `file\#1.md`, p)
	assert.Equal(t, "sec", frag)
	assert.Equal(t, "file#1.md", CleanPath(p))
	assert.Equal(t, "bad%zz.md", CleanPath("bad%zz.md"))
}
