// Package redirects reads and appends the redirect block of the project's
// documentation configuration file.
//
// The block is a constrained YAML subset: a top-level "redirects:" line
// followed by indented "from: to" pairs. Entries are parsed textually so the
// file can be appended to without reformatting what the authors wrote.
package redirects

import (
	"bytes"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
)

const marker = "redirects:"

var entryPattern = regexp.MustCompile(`^\s+("[^"]*"|'[^']*'|[^\s#"'][^:]*?)\s*:\s+(.+?)\s*$`)

// Entry is one redirect. From and To are the normalized published forms;
// RawFrom and RawTo are the literal (unquoted) text from the file.
type Entry struct {
	From    string
	To      string
	RawFrom string
	RawTo   string
	Line    int
}

// Destination returns the project-relative file the entry points to: the
// literal destination without a leading slash or fragment.
func (e Entry) Destination() string {
	dest := e.RawTo
	if i := strings.IndexByte(dest, '#'); i >= 0 {
		dest = dest[:i]
	}
	dest = strings.TrimLeft(dest, "/")
	if dest == "" {
		return ""
	}
	return path.Clean(dest)
}

// Pair is a redirect to be appended.
type Pair struct {
	From string
	To   string
}

// Table is the parsed redirect block. The forward index maps each literal
// source to its entry (last write wins), the reverse index maps each literal
// destination to every entry pointing at it.
//
// A nil *Table is a valid empty table.
type Table struct {
	path    string
	content []byte
	entries []Entry
	forward map[string]Entry
	reverse map[string][]Entry
}

// Parse reads redirect entries from configuration content.
func Parse(content []byte) *Table {
	t := &Table{content: content}
	t.index()
	return t
}

// Load reads the redirect configuration at path. A missing or unreadable file
// is fatal: no redirect-aware validation can proceed without it.
func Load(path string) (*Table, error) {
	// #nosec G304 -- the redirects path comes from configuration.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.RedirectsError("failed to read redirect configuration").Wrap(err).
			WithContext("path", path).
			Build()
	}
	t := Parse(content)
	t.path = path
	return t, nil
}

func (t *Table) index() {
	t.entries = nil
	t.forward = make(map[string]Entry)
	t.reverse = make(map[string][]Entry)

	inBlock := false
	for i, line := range splitLines(t.content) {
		if !inBlock {
			inBlock = line == marker || strings.HasPrefix(line, marker+" ")
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			break
		}
		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		from, to := unquote(m[1]), unquote(m[2])
		e := Entry{
			From:    normalizeFrom(from),
			To:      normalizeTo(to),
			RawFrom: from,
			RawTo:   to,
			Line:    i + 1,
		}
		t.entries = append(t.entries, e)
		t.forward[from] = e
		t.reverse[to] = append(t.reverse[to], e)
	}
}

func splitLines(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func normalizeFrom(from string) string {
	return "/" + strings.TrimLeft(from, "/")
}

func normalizeTo(to string) string {
	if strings.HasSuffix(to, ".md") {
		to = strings.TrimSuffix(to, ".md") + ".html"
	}
	if strings.HasSuffix(to, "/README.html") {
		to = strings.TrimSuffix(to, "README.html")
	}
	return to
}

// Path returns the file the table was loaded from, empty for parsed content.
func (t *Table) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Content returns the current file content, including appended entries.
func (t *Table) Content() []byte {
	if t == nil {
		return nil
	}
	return t.content
}

// Entries returns every entry in file order, duplicates included.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Len returns the number of distinct source keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.forward)
}

// Lookup returns the entry for a literal source key.
func (t *Table) Lookup(from string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t.forward[from]
	return e, ok
}

// Sources returns every entry redirecting to the literal destination to.
func (t *Table) Sources(to string) []Entry {
	if t == nil {
		return nil
	}
	return t.reverse[to]
}

// Variants lists the keys FindRedirectTarget tries for p, in order: as given,
// without a leading slash, without a ".md" suffix, and both.
func Variants(p string) []string {
	noSlash := strings.TrimLeft(p, "/")
	out := []string{p}
	for _, v := range []string{noSlash, strings.TrimSuffix(p, ".md"), strings.TrimSuffix(noSlash, ".md")} {
		if v != "" && !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FindRedirectTarget returns the first entry matching one of the variants of p.
func (t *Table) FindRedirectTarget(p string) (Entry, bool) {
	for _, key := range Variants(p) {
		if e, ok := t.Lookup(key); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// AddRedirects inserts pairs as "  from: to" lines directly after the last
// existing entry of the block, creating the block if it is absent, and
// rewrites the file when the table was loaded from one. Pairs are not
// deduplicated against existing entries.
func (t *Table) AddRedirects(pairs []Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	newLines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		newLines = append(newLines, "  "+quote(p.From)+": "+quote(p.To))
	}

	eol := "\n"
	if bytes.Contains(t.content, []byte("\r\n")) {
		eol = "\r\n"
	}

	lines := splitLines(t.content)
	insertAt := t.insertionLine(lines)
	if insertAt < 0 {
		body := strings.TrimRight(string(t.content), "\r\n")
		var b strings.Builder
		if body != "" {
			b.WriteString(body)
			b.WriteString(eol + eol)
		}
		b.WriteString(marker + eol)
		for _, l := range newLines {
			b.WriteString(l + eol)
		}
		t.content = []byte(b.String())
	} else {
		updated := make([]string, 0, len(lines)+len(newLines))
		updated = append(updated, lines[:insertAt]...)
		updated = append(updated, newLines...)
		updated = append(updated, lines[insertAt:]...)
		t.content = []byte(strings.Join(updated, eol))
	}

	if t.path != "" {
		if err := writePreservingMode(t.path, t.content); err != nil {
			return err
		}
	}
	t.index()
	return nil
}

// insertionLine returns the 0-based index at which new entries go, or -1 when
// the file has no redirect block.
func (t *Table) insertionLine(lines []string) int {
	for i, line := range lines {
		if line == marker || strings.HasPrefix(line, marker+" ") {
			at := i + 1
			for _, e := range t.entries {
				if e.Line > at {
					at = e.Line
				}
			}
			return at
		}
	}
	return -1
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, ":#'\"{}[]&*!|>%@`") || strings.TrimSpace(s) != s {
		return strconv.Quote(s)
	}
	return s
}

func writePreservingMode(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return errors.RedirectsError("failed to write redirect configuration").Wrap(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
