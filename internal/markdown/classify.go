package markdown

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var externalScheme = regexp.MustCompile(`(?i)^(https?|mailto|tel|ftp):`)

var assetExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {},
	".ico": {}, ".bmp": {}, ".avif": {},
	".pdf": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".tgz": {}, ".7z": {},
	".mp3": {}, ".mp4": {}, ".webm": {}, ".mov": {}, ".wav": {}, ".ogg": {},
}

var markdownUnescaper = strings.NewReplacer(`\_`, `_`, `\#`, `#`, `\ `, ` `)

// Classify assigns the LinkKind of a raw link target.
func Classify(rawTarget string) LinkKind {
	target := strings.TrimSpace(rawTarget)
	switch {
	case externalScheme.MatchString(target):
		return KindExternal
	case strings.HasPrefix(target, "#"):
		return KindAnchorOnly
	}
	p, _ := SplitAnchor(target)
	if IsAssetPath(CleanPath(p)) {
		return KindAsset
	}
	return KindInternal
}

// IsAssetPath reports whether p has a media or archive extension.
func IsAssetPath(p string) bool {
	_, ok := assetExtensions[strings.ToLower(path.Ext(p))]
	return ok
}

// SplitAnchor splits a raw target at the first '#' that is not escaped with a
// backslash. The fragment is returned without the '#'.
func SplitAnchor(rawTarget string) (string, string) {
	escaped := false
	for i := 0; i < len(rawTarget); i++ {
		switch {
		case escaped:
			escaped = false
		case rawTarget[i] == '\\':
			escaped = true
		case rawTarget[i] == '#':
			return rawTarget[:i], rawTarget[i+1:]
		}
	}
	return rawTarget, ""
}

// CleanPath percent-decodes a target and removes Markdown escapes for
// underscores, hashes and spaces.
func CleanPath(target string) string {
	if decoded, err := url.PathUnescape(target); err == nil {
		target = decoded
	}
	return markdownUnescaper.Replace(target)
}
