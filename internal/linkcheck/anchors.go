package linkcheck

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	anchorSimilarityThreshold = 0.5
	maxAnchorSuggestions      = 3
)

// ValidateAnchor checks anchor (without '#') against the headings of
// targetFile. Matching is exact or case-insensitive; on failure the closest
// heading ids are returned as suggestions.
func (c *Checker) ValidateAnchor(targetFile, anchor string) (AnchorResult, error) {
	res := AnchorResult{TargetFile: targetFile, Anchor: anchor}

	fh, err := c.FileHeadings(targetFile)
	if err != nil {
		return res, err
	}

	ids := fh.IDs()
	for _, id := range ids {
		if id == anchor {
			res.Valid, res.MatchedID = true, id
			return res, nil
		}
	}
	for _, id := range ids {
		if strings.EqualFold(id, anchor) {
			res.Valid, res.MatchedID = true, id
			return res, nil
		}
	}

	res.Suggestions = SimilarAnchors(anchor, ids)
	return res, nil
}

// SimilarAnchors ranks ids by normalized similarity to anchor
// (1 - distance/longer length) and returns up to three scoring above 0.5,
// best first. Equal scores keep document order.
func SimilarAnchors(anchor string, ids []string) []string {
	type scored struct {
		id    string
		score float64
	}

	needle := strings.ToLower(anchor)
	seen := make(map[string]struct{}, len(ids))
	var candidates []scored
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s := similarity(needle, strings.ToLower(id)); s > anchorSimilarityThreshold {
			candidates = append(candidates, scored{id: id, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	out := make([]string, 0, maxAnchorSuggestions)
	for i := 0; i < len(candidates) && i < maxAnchorSuggestions; i++ {
		out = append(out, candidates[i].id)
	}
	return out
}

func similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
