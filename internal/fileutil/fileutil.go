// Package fileutil provides file name and path utility functions.
package fileutil

import (
	"os"
	"strings"
)

// SanitizeName makes a string safe for use as a file name component:
// characters that are reserved on common filesystems are replaced with
// underscores, as are spaces, and runs of underscores are collapsed.
// An empty or fully-reserved input yields "untitled".
func SanitizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ' ' || r == '/' || r == '\\' || r == ':' || r == '*' ||
			r == '?' || r == '"' || r == '<' || r == '>' || r == '|' || r < 0x20:
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}

	name := b.String()
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	name = strings.Trim(name, "_.")
	if name == "" {
		return "untitled"
	}
	return name
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather
// than a bare name: anything containing a path separator counts.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
