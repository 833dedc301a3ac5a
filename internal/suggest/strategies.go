package suggest

import (
	"fmt"
	"path"
	"strings"

	"github.com/agnivade/levenshtein"

	"git.home.luguber.info/inful/docrefs/internal/docfs"
	"git.home.luguber.info/inful/docrefs/internal/linkcheck"
	"git.home.luguber.info/inful/docrefs/internal/markdown"
	"git.home.luguber.info/inful/docrefs/internal/redirects"
)

const (
	basenameOverlapThreshold = 0.5
	similarityMaxEdits       = 10
	similarityRatio          = 0.3
	similarityAcceptEdits    = 5
	similarityMediumEdits    = 2
	readmeName               = "README.md"
	readmeProbeLevels        = 3
)

// Context is the read-only view strategies match against. Candidate lists
// are sorted project-relative paths.
type Context struct {
	Index     *docfs.Index
	Redirects *redirects.Table
	Locate    func(p string) string // Extensionless fallback resolution

	Markdown []string
	Assets   []string
	Files    []string // Every file, any extension
}

// Strategy produces a suggestion for a broken link, or ok=false.
type Strategy struct {
	Name string
	Find func(broken linkcheck.BrokenLink, ctx *Context) (FixSuggestion, bool)
}

// DefaultStrategies are tried in order; the first match wins.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "redirect", Find: RedirectMatch},
		{Name: "basename", Find: BasenameMatch},
		{Name: "similarity", Find: SimilarityMatch},
		{Name: "case", Find: CaseVariationMatch},
		{Name: "readme", Find: NeighborReadmeMatch},
	}
}

// brokenPath is the resolved path strategies compare against. Extensionless
// targets are compared as Markdown files.
func brokenPath(b linkcheck.BrokenLink) string {
	p := b.ResolvedPath
	if path.Ext(p) == "" {
		p += ".md"
	}
	return p
}

func candidatesFor(b linkcheck.BrokenLink, ctx *Context) []string {
	if b.Link.Kind == markdown.KindAsset {
		return ctx.Assets
	}
	return ctx.Markdown
}

// RedirectMatch looks the resolved path and its variants up in the redirect
// table; the first variant whose destination exists wins.
func RedirectMatch(b linkcheck.BrokenLink, ctx *Context) (FixSuggestion, bool) {
	for _, key := range redirects.Variants(b.ResolvedPath) {
		entry, ok := ctx.Redirects.Lookup(key)
		if !ok {
			continue
		}
		dest := entry.Destination()
		if dest == "" {
			continue
		}
		if located := ctx.Locate(dest); ctx.Index.Exists(located) {
			return FixSuggestion{
				Confidence:    ConfidenceHigh,
				SuggestedPath: located,
				Reason:        fmt.Sprintf("redirect %s -> %s", entry.RawFrom, entry.RawTo),
				RedirectEntry: &entry,
			}, true
		}
	}
	return FixSuggestion{}, false
}

// BasenameMatch finds files with the same name, extension stripped and case
// ignored. A single match is accepted; among several, the one sharing most
// directory segments wins if its overlap score exceeds 0.5.
func BasenameMatch(b linkcheck.BrokenLink, ctx *Context) (FixSuggestion, bool) {
	broken := brokenPath(b)
	stem := strings.ToLower(docfs.Stem(broken))
	if stem == "" {
		return FixSuggestion{}, false
	}

	var matches []string
	for _, c := range candidatesFor(b, ctx) {
		if c == b.SourceFile || c == broken {
			continue
		}
		if strings.ToLower(docfs.Stem(c)) == stem {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return FixSuggestion{}, false
	case 1:
		return FixSuggestion{
			Confidence:    ConfidenceMedium,
			SuggestedPath: matches[0],
			Reason:        "only file named " + path.Base(matches[0]),
		}, true
	}

	best, bestScore := "", 0.0
	for _, m := range matches {
		if s := segmentOverlap(broken, m); s > bestScore {
			best, bestScore = m, s
		}
	}
	if bestScore <= basenameOverlapThreshold {
		return FixSuggestion{}, false
	}
	return FixSuggestion{
		Confidence:    ConfidenceMedium,
		SuggestedPath: best,
		Reason:        fmt.Sprintf("closest of %d files named %s", len(matches), path.Base(best)),
	}, true
}

// segmentOverlap counts the directory segments two paths share and divides
// by the segment count of the longer path.
func segmentOverlap(a, b string) float64 {
	as, bs := docfs.Segments(a), docfs.Segments(b)
	longest := max(len(as), len(bs))
	if longest == 0 {
		return 0
	}

	dirs := make(map[string]int)
	for _, s := range as[:max(len(as)-1, 0)] {
		dirs[s]++
	}
	shared := 0
	for _, s := range bs[:max(len(bs)-1, 0)] {
		if dirs[s] > 0 {
			dirs[s]--
			shared++
		}
	}
	return float64(shared) / float64(longest)
}

// SimilarityMatch picks the candidate path with the smallest case-insensitive
// edit distance, within min(10, 30% of the broken path length) edits and at
// most 5. Distance up to 2 is medium confidence, otherwise low.
func SimilarityMatch(b linkcheck.BrokenLink, ctx *Context) (FixSuggestion, bool) {
	broken := strings.ToLower(brokenPath(b))
	threshold := min(similarityMaxEdits, int(float64(len(broken))*similarityRatio))

	best, bestDist := "", -1
	for _, c := range candidatesFor(b, ctx) {
		if c == b.SourceFile {
			continue
		}
		d := levenshtein.ComputeDistance(broken, strings.ToLower(c))
		if d > threshold {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > similarityAcceptEdits {
		return FixSuggestion{}, false
	}

	confidence := ConfidenceLow
	if bestDist <= similarityMediumEdits {
		confidence = ConfidenceMedium
	}
	return FixSuggestion{
		Confidence:    confidence,
		SuggestedPath: best,
		Reason:        fmt.Sprintf("similar path (%d edits)", bestDist),
	}, true
}

// CaseVariationMatch finds a file anywhere in the tree, of any type, whose
// path differs from the resolved path only in letter case.
func CaseVariationMatch(b linkcheck.BrokenLink, ctx *Context) (FixSuggestion, bool) {
	for _, want := range []string{b.ResolvedPath, brokenPath(b)} {
		for _, f := range ctx.Files {
			if f != want && strings.EqualFold(f, want) {
				return FixSuggestion{
					Confidence:    ConfidenceLow,
					SuggestedPath: f,
					Reason:        "differs only in letter case",
				}, true
			}
		}
	}
	return FixSuggestion{}, false
}

// NeighborReadmeMatch handles links that look like directory references
// (trailing slash, or a dotted relative prefix without a .md target) by
// probing README.md in the source directory, its parent and grandparent.
func NeighborReadmeMatch(b linkcheck.BrokenLink, ctx *Context) (FixSuggestion, bool) {
	target := b.Link.TargetPath
	if !looksLikeDirectory(target) {
		return FixSuggestion{}, false
	}

	dir := path.Dir(b.SourceFile)
	seen := make(map[string]struct{})
	for range readmeProbeLevels {
		readme := path.Join(dir, readmeName)
		if _, done := seen[readme]; !done {
			seen[readme] = struct{}{}
			link := docfs.RelativeLink(b.SourceFile, readme, target)
			if ctx.Index.IsFile(readme) && link != target {
				return FixSuggestion{
					Confidence:    ConfidenceLow,
					SuggestedPath: readme,
					Reason:        "nearest README for directory link",
				}, true
			}
		}
		dir = path.Dir(dir)
	}
	return FixSuggestion{}, false
}

func looksLikeDirectory(target string) bool {
	if strings.HasSuffix(target, "/") {
		return true
	}
	dotted := strings.HasPrefix(target, "./") || strings.HasPrefix(target, "../") || target == "." || target == ".."
	return dotted && !strings.HasSuffix(strings.ToLower(target), ".md")
}
