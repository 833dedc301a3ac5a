package docfs

import (
	"path"
	"strings"
)

// Resolve joins a link target with the directory of the linking document.
// A target with a leading slash is relative to the project root instead.
// Both sourceFile and the result are slash-separated project-relative paths.
// The result may start with "../" when the target escapes the root.
func Resolve(sourceFile, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimLeft(target, "/"))
	}
	return path.Join(path.Dir(sourceFile), target)
}

// OutsideRoot reports whether a resolved project-relative path climbs above
// the project root.
func OutsideRoot(p string) bool {
	return p == ".." || strings.HasPrefix(p, "../")
}

// RelativeLink returns the link text that points from sourceFile to the
// project-relative target. When the original link was root-absolute the
// result is root-absolute too, and a "./" prefix is kept when the original had one.
func RelativeLink(sourceFile, target, original string) string {
	if strings.HasPrefix(original, "/") {
		return "/" + target
	}
	rel := relPath(path.Dir(sourceFile), target)
	if strings.HasPrefix(original, "./") && !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}

// Segments splits a project-relative path into its components.
func Segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}

// Stem returns the file name without directory and extension.
func Stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// relPath computes a slash-separated relative path from dir to target.
func relPath(dir, target string) string {
	from := Segments(dir)
	to := Segments(target)
	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}
	parts := make([]string, 0, len(from)-i+len(to)-i)
	for range from[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[i:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}
