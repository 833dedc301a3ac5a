package report

import (
	"encoding/json"
	"io"

	"git.home.luguber.info/inful/docrefs/internal/linkcheck"
	"git.home.luguber.info/inful/docrefs/internal/suggest"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONLink is one reported link.
type JSONLink struct {
	File              string   `json:"file"`
	Line              int      `json:"line"`
	Column            int      `json:"column"`
	Target            string   `json:"target"`
	Kind              string   `json:"kind"`
	Status            string   `json:"status"`
	Resolved          string   `json:"resolved,omitempty"`
	Error             string   `json:"error,omitempty"`
	AnchorSuggestions []string `json:"anchor_suggestions,omitempty"`
}

// JSONCheckOutput represents the JSON output of a check run.
type JSONCheckOutput struct {
	Root          string         `json:"root"`
	FilesTotal    int            `json:"files_total"`
	LinksTotal    int            `json:"links_total"`
	BrokenCount   int            `json:"broken_count"`
	RedirectCount int            `json:"redirect_count"`
	Links         []JSONLink     `json:"links"`
	Navigation    []JSONNavIssue `json:"navigation,omitempty"`
	Orphans       []string       `json:"orphans,omitempty"`
}

// JSONNavIssue is a broken navigation entry.
type JSONNavIssue struct {
	Line    int    `json:"line"`
	Title   string `json:"title"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// JSONSuggestion is one broken link with its fix, if any.
type JSONSuggestion struct {
	File       string             `json:"file"`
	Line       int                `json:"line"`
	Target     string             `json:"target"`
	Confidence suggest.Confidence `json:"confidence"`
	Suggested  string             `json:"suggested,omitempty"`
	Path       string             `json:"path,omitempty"`
	Strategy   string             `json:"strategy,omitempty"`
	Reason     string             `json:"reason,omitempty"`
}

// JSONFixOutput represents the JSON output of a fix run.
type JSONFixOutput struct {
	DryRun    bool              `json:"dry_run"`
	Fixed     int               `json:"fixed"`
	Failed    int               `json:"failed"`
	Results   []JSONFixResult   `json:"results"`
	Redirects map[string]string `json:"redirects,omitempty"`
	Skipped   []JSONSuggestion  `json:"skipped,omitempty"`
}

// JSONFixResult is one attempted rewrite.
type JSONFixResult struct {
	File          string `json:"file"`
	Line          int    `json:"line"`
	Original      string `json:"original"`
	New           string `json:"new"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	RedirectAdded bool   `json:"redirect_added"`
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Check outputs every non-valid link.
func (f *JSONFormatter) Check(w io.Writer, r CheckReport) error {
	s := r.Summary()
	out := JSONCheckOutput{
		Root:          r.Root,
		FilesTotal:    r.Files,
		LinksTotal:    len(r.Results),
		BrokenCount:   s.Broken,
		RedirectCount: s.Redirect,
		Links:         []JSONLink{},
		Orphans:       r.Orphans,
	}
	for _, res := range r.Results {
		if res.Status == linkcheck.StatusValid {
			continue
		}
		out.Links = append(out.Links, JSONLink{
			File:              res.SourceFile,
			Line:              res.Link.Line,
			Column:            res.Link.Column,
			Target:            res.Link.RawTarget,
			Kind:              string(res.Link.Kind),
			Status:            string(res.Status),
			Resolved:          res.ResolvedPath,
			Error:             res.Error,
			AnchorSuggestions: res.AnchorSuggestions,
		})
	}
	for _, issue := range r.NavIssues {
		out.Navigation = append(out.Navigation, JSONNavIssue{
			Line:    issue.Entry.Line,
			Title:   issue.Entry.Title,
			Path:    issue.Entry.Path,
			Message: issue.Message,
		})
	}
	return encode(w, out)
}

func toJSONSuggestion(s suggest.Suggestion) JSONSuggestion {
	js := JSONSuggestion{
		File:       s.Broken.SourceFile,
		Line:       s.Broken.Link.Line,
		Target:     s.Broken.Link.RawTarget,
		Confidence: s.Confidence(),
	}
	if s.Fix != nil {
		js.Suggested = s.Fix.SuggestedLink
		js.Path = s.Fix.SuggestedPath
		js.Strategy = s.Fix.Strategy
		js.Reason = s.Fix.Reason
	}
	return js
}

// Suggestions outputs suggestions in input order.
func (f *JSONFormatter) Suggestions(w io.Writer, all []suggest.Suggestion) error {
	out := make([]JSONSuggestion, 0, len(all))
	for _, s := range all {
		out = append(out, toJSONSuggestion(s))
	}
	return encode(w, out)
}

// Fixes outputs per-fix outcomes.
func (f *JSONFormatter) Fixes(w io.Writer, r FixReport) error {
	out := JSONFixOutput{DryRun: r.DryRun, Results: []JSONFixResult{}}
	for _, res := range r.Results {
		if res.Success {
			out.Fixed++
		} else {
			out.Failed++
		}
		out.Results = append(out.Results, JSONFixResult{
			File:          res.SourceFile,
			Line:          res.Line,
			Original:      res.OriginalLink,
			New:           res.NewLink,
			Success:       res.Success,
			Error:         res.Error,
			RedirectAdded: res.RedirectAdded,
		})
	}
	if len(r.Redirects) > 0 {
		out.Redirects = make(map[string]string, len(r.Redirects))
		for _, p := range r.Redirects {
			out.Redirects[p.From] = p.To
		}
	}
	for _, s := range r.Skipped {
		out.Skipped = append(out.Skipped, toJSONSuggestion(s))
	}
	return encode(w, out)
}
