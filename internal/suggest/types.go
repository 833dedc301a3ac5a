package suggest

import (
	"git.home.luguber.info/inful/docrefs/internal/linkcheck"
	"git.home.luguber.info/inful/docrefs/internal/redirects"
)

// FixSuggestion is a proposed replacement target for a broken link.
type FixSuggestion struct {
	Confidence    Confidence
	SuggestedPath string // Project-relative file the link should point to
	SuggestedLink string // Replacement link target as it would be written, fragment kept
	Reason        string
	Strategy      string
	RedirectEntry *redirects.Entry // Set by the redirect strategy
}

// Suggestion pairs a broken link with its fix; Fix is nil when no strategy
// produced a candidate.
type Suggestion struct {
	Broken linkcheck.BrokenLink
	Fix    *FixSuggestion
}

// Confidence returns the fix confidence, ConfidenceNone without a fix.
func (s Suggestion) Confidence() Confidence {
	if s.Fix == nil {
		return ConfidenceNone
	}
	return s.Fix.Confidence
}

// Groups buckets suggestions by confidence.
type Groups struct {
	High   []Suggestion
	Medium []Suggestion
	Low    []Suggestion
	None   []Suggestion
}

// GroupByConfidence buckets suggestions, preserving their order.
func GroupByConfidence(suggestions []Suggestion) Groups {
	var g Groups
	for _, s := range suggestions {
		switch s.Confidence() {
		case ConfidenceHigh:
			g.High = append(g.High, s)
		case ConfidenceMedium:
			g.Medium = append(g.Medium, s)
		case ConfidenceLow:
			g.Low = append(g.Low, s)
		default:
			g.None = append(g.None, s)
		}
	}
	return g
}

// AtLeast returns the suggestions whose fix confidence is at least minimum.
func AtLeast(suggestions []Suggestion, minimum Confidence) []Suggestion {
	var out []Suggestion
	for _, s := range suggestions {
		if s.Fix != nil && s.Fix.Confidence.AtLeast(minimum) {
			out = append(out, s)
		}
	}
	return out
}
