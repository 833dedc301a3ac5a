package fixer

import (
	"strings"

	"git.home.luguber.info/inful/docrefs/internal/logfields"
	"git.home.luguber.info/inful/docrefs/internal/redirects"
)

// GenerateRedirectEntries derives redirect pairs from successful fixes: the
// old resolved path (".md" stripped) to the new project-relative path. Fixes
// whose original target traverses to a parent directory are skipped, and
// identical pairs are emitted once.
func GenerateRedirectEntries(results []FixResult) []redirects.Pair {
	seen := make(map[redirects.Pair]struct{})
	var pairs []redirects.Pair
	for _, r := range results {
		if p, ok := redirectFor(r); ok {
			if _, dup := seen[p]; !dup {
				seen[p] = struct{}{}
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}

func redirectFor(r FixResult) (redirects.Pair, bool) {
	if !r.Success || r.NewPath == "" || strings.Contains(r.OriginalLink, "..") {
		return redirects.Pair{}, false
	}
	from := strings.TrimSuffix(r.originalPath, ".md")
	if from == "" || from == "." || from == strings.TrimSuffix(r.NewPath, ".md") {
		return redirects.Pair{}, false
	}
	return redirects.Pair{From: from, To: r.NewPath}, true
}

// ApplyWithRedirects applies fixes and appends redirects for them. Pairs
// whose source already has a redirect are dropped so the table never gains a
// duplicate key. It returns the pairs appended (or, in dry-run mode, the
// pairs that would be appended). An append failure leaves the file fixes in
// place and RedirectAdded unset.
func (f *Fixer) ApplyWithRedirects(fixes []Fix) ([]FixResult, []redirects.Pair, error) {
	results := f.ApplyFixes(fixes)
	if f.table == nil {
		return results, nil, nil
	}

	var pending []redirects.Pair
	for _, p := range GenerateRedirectEntries(results) {
		if _, exists := f.table.FindRedirectTarget(p.From); exists {
			continue
		}
		pending = append(pending, p)
	}
	if len(pending) == 0 || f.dryRun {
		return results, pending, nil
	}

	if err := f.table.AddRedirects(pending); err != nil {
		f.logger.Error("Failed to append redirects", logfields.Path(f.table.Path()), logfields.Error(err))
		return results, nil, err
	}
	f.recorder.AddRedirects(len(pending))
	f.logger.Info("Added redirects", logfields.Path(f.table.Path()), logfields.Count(len(pending)))

	added := make(map[redirects.Pair]struct{}, len(pending))
	for _, p := range pending {
		added[p] = struct{}{}
	}
	for i := range results {
		if p, ok := redirectFor(results[i]); ok {
			if _, hit := added[p]; hit {
				results[i].RedirectAdded = true
			}
		}
	}
	return results, pending, nil
}
