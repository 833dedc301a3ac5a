// Package preview renders pending file rewrites as unified diffs.
package preview

import (
	"fmt"
	"io"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"git.home.luguber.info/inful/docrefs/internal/fixer"
)

const defaultContext = 2

// Unified produces a unified patch for one file change, with a/ and b/
// prefixed names.
func Unified(change fixer.FileChange, context int) (string, error) {
	if context <= 0 {
		context = defaultContext
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(change.Before)),
		B:        splitLinesKeepNL(string(change.After)),
		FromFile: "a/" + change.Path,
		ToFile:   "b/" + change.Path,
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(u)
}

// Write renders every change to w in order.
func Write(w io.Writer, changes []fixer.FileChange) error {
	for _, c := range changes {
		patch, err := Unified(c, defaultContext)
		if err != nil {
			return fmt.Errorf("diff %s: %w", c.Path, err)
		}
		if _, err := io.WriteString(w, patch); err != nil {
			return err
		}
	}
	return nil
}

// splitLinesKeepNL splits into lines and keeps newline characters, which
// produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
