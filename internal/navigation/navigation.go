// Package navigation parses the indented link list that defines the
// documentation table of contents (for example SUMMARY.md).
package navigation

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/markdown"
)

// IndentUnit is the number of columns that make up one nesting level.
const IndentUnit = 2

var itemPattern = regexp.MustCompile(`^(\s*)[-*]\s+\[([^\]]*)\]\(([^)]*)\)`)

// Entry is one node of the navigation tree.
type Entry struct {
	Title    string
	Path     string // Cleaned link target, fragment removed
	Line     int
	Depth    int
	Children []*Entry
}

// Parse builds the navigation forest from the list items in content.
//
// A node attaches to the nearest preceding node whose depth is strictly less
// than its own; otherwise it becomes a root. Inconsistent indentation never
// fails, under-indented items simply move up the tree.
func Parse(content []byte) []*Entry {
	var roots []*Entry
	var stack []*Entry

	for i, line := range strings.Split(string(content), "\n") {
		m := itemPattern.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
		if m == nil {
			continue
		}
		target, _ := markdown.SplitAnchor(strings.TrimSpace(m[3]))
		entry := &Entry{
			Title: strings.TrimSpace(m[2]),
			Path:  markdown.CleanPath(target),
			Line:  i + 1,
			Depth: indentWidth(m[1]) / IndentUnit,
		}

		for len(stack) > 0 && stack[len(stack)-1].Depth >= entry.Depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, entry)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, entry)
		}
		stack = append(stack, entry)
	}
	return roots
}

// ParseFile reads and parses a navigation file. A navigation file that cannot
// be read is fatal for the run.
func ParseFile(path string) ([]*Entry, error) {
	// #nosec G304 -- the navigation path comes from configuration.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NavigationError("failed to read navigation file").Wrap(err).
			WithContext("path", path).
			Build()
	}
	return Parse(content), nil
}

func indentWidth(indent string) int {
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += IndentUnit
			continue
		}
		width++
	}
	return width
}

// Flatten lists the tree in document (pre-)order.
func Flatten(entries []*Entry) []*Entry {
	var out []*Entry
	var walk func([]*Entry)
	walk = func(level []*Entry) {
		for _, e := range level {
			out = append(out, e)
			walk(e.Children)
		}
	}
	walk(entries)
	return out
}

// Issue is a navigation entry whose target does not exist.
type Issue struct {
	Entry   *Entry
	Message string
}

// Validate checks every entry with the injected existence function; the
// navigation package itself does no filesystem access here. Entries without
// a path (pure section headers) and external targets are skipped.
func Validate(entries []*Entry, exists func(path string) bool) []Issue {
	var issues []Issue
	for _, e := range Flatten(entries) {
		if e.Path == "" || markdown.Classify(e.Path) == markdown.KindExternal {
			continue
		}
		if !exists(e.Path) {
			issues = append(issues, Issue{Entry: e, Message: "navigation target not found: " + e.Path})
		}
	}
	return issues
}

// Orphans returns the Markdown files that no navigation entry points to.
// ignore lists files that are never expected in the tree (such as the
// navigation file itself).
func Orphans(entries []*Entry, files []string, ignore ...string) []string {
	listed := make(map[string]struct{})
	for _, e := range Flatten(entries) {
		listed[strings.TrimPrefix(e.Path, "./")] = struct{}{}
	}
	for _, f := range ignore {
		listed[f] = struct{}{}
	}

	var orphans []string
	for _, f := range files {
		if _, ok := listed[f]; !ok {
			orphans = append(orphans, f)
		}
	}
	sort.Strings(orphans)
	return orphans
}
