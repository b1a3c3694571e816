package prompt

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FilterPaths applies include/exclude glob patterns to relative paths.
// Matching is case-insensitive; exclude wins over include; an empty
// include list keeps everything. Patterns use doublestar syntax, and a
// pattern without a path separator also matches against the base name,
// so a bare "*.py" picks up nested files the way fnmatch does.
func FilterPaths(paths, include, exclude []string) []string {
	var out []string
	for _, p := range paths {
		if matchAny(p, exclude) {
			continue
		}
		if len(include) > 0 && !matchAny(p, include) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchAny(relPath string, patterns []string) bool {
	lower := strings.ToLower(relPath)
	base := path.Base(lower)
	for _, pat := range patterns {
		p := strings.ToLower(pat)
		if ok, err := doublestar.Match(p, lower); err == nil && ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, err := doublestar.Match(p, base); err == nil && ok {
				return true
			}
		}
	}
	return false
}
