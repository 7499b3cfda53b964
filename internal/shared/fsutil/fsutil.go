package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// unsafeChars are the characters replaced with underscores in file names.
const unsafeChars = `<>:"/\|?*`

// SanitizeFileName makes a name safe to use as a single path element.
// Unsafe characters become underscores, leading and trailing spaces and
// dots are stripped, and an empty result falls back to "untitled".
func SanitizeFileName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeChars, r) {
			return '_'
		}
		return r
	}, name)

	sanitized = strings.Trim(sanitized, " .")
	if sanitized == "" {
		return "untitled"
	}

	return sanitized
}

// UniquePath returns a path for name under dir that does not collide with
// an existing file. Collisions are resolved by appending _1, _2, ... to the
// name before its extension. Callers are expected to be sequential; there
// is no locking between the check and the eventual write.
func UniquePath(dir, name string) string {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
