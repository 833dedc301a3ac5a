// Package docfs gives the link checker its view of the documentation tree:
// project-relative path arithmetic, existence checks, and a cached file index.
package docfs

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/logfields"
)

// Index is a cached listing of the files below a project root.
//
// The listing is built by the first call that needs it and reused until
// Reset is called. Index is not safe for concurrent use.
type Index struct {
	root   string
	logger *slog.Logger

	files    []string
	markdown []string
	built    bool
}

// NewIndex creates an index rooted at root (an OS path).
func NewIndex(root string, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{root: root, logger: logger}
}

// Root returns the OS path of the project root.
func (x *Index) Root() string {
	return x.root
}

// Abs converts a project-relative path to an OS path.
func (x *Index) Abs(rel string) string {
	return filepath.Join(x.root, filepath.FromSlash(rel))
}

// Rel converts an OS path below the root to a project-relative path.
func (x *Index) Rel(abs string) (string, error) {
	rel, err := filepath.Rel(x.root, abs)
	if err != nil {
		return "", errors.FileSystemError("path is not below project root").Wrap(err).
			WithContext("path", abs).
			Build()
	}
	return filepath.ToSlash(rel), nil
}

// Exists reports whether a file or directory exists at the project-relative
// path. Paths above the root never exist.
func (x *Index) Exists(rel string) bool {
	if OutsideRoot(rel) {
		return false
	}
	_, err := os.Stat(x.Abs(rel))
	return err == nil
}

// IsFile reports whether a regular file exists at the project-relative path.
func (x *Index) IsFile(rel string) bool {
	if OutsideRoot(rel) {
		return false
	}
	info, err := os.Stat(x.Abs(rel))
	return err == nil && info.Mode().IsRegular()
}

// ReadFile reads a project-relative file.
func (x *Index) ReadFile(rel string) ([]byte, error) {
	// #nosec G304 -- paths come from the project index or resolved links.
	data, err := os.ReadFile(x.Abs(rel))
	if err != nil {
		return nil, errors.FileSystemError("failed to read document").Wrap(err).
			WithContext("path", rel).
			Build()
	}
	return data, nil
}

// Files returns every non-hidden file below the root, sorted.
func (x *Index) Files() ([]string, error) {
	if err := x.build(); err != nil {
		return nil, err
	}
	return x.files, nil
}

// MarkdownFiles returns every Markdown document below the root, sorted.
func (x *Index) MarkdownFiles() ([]string, error) {
	if err := x.build(); err != nil {
		return nil, err
	}
	return x.markdown, nil
}

// Reset drops the cached listing; the next query walks the tree again.
func (x *Index) Reset() {
	x.files = nil
	x.markdown = nil
	x.built = false
}

func (x *Index) build() error {
	if x.built {
		return nil
	}
	start := time.Now()

	var files, markdown []string
	err := filepath.WalkDir(x.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != x.root && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if name == "node_modules" {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(x.root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		files = append(files, rel)
		if IsMarkdown(rel) {
			markdown = append(markdown, rel)
		}
		return nil
	})
	if err != nil {
		return errors.FileSystemError("failed to walk documentation tree").Wrap(err).
			WithContext("path", x.root).
			Build()
	}

	sort.Strings(files)
	sort.Strings(markdown)
	x.files, x.markdown, x.built = files, markdown, true

	x.logger.Debug("Indexed documentation tree",
		logfields.Path(x.root),
		logfields.Count(len(files)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

// IsMarkdown reports whether p names a Markdown document.
func IsMarkdown(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".md" || ext == ".markdown"
}
