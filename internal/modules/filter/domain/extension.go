package domain

import (
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// extensionPresets maps preset names to the suffix sets they expand to.
// The resolved filter stores only concrete suffixes, never preset names.
var extensionPresets = map[string][]string{
	"audio": {".mp3", ".m4a", ".flac", ".ogg", ".wav", ".aac", ".opus", ".wma"},
	"video": {".mp4", ".mkv", ".avi", ".mov", ".webm"},
}

// ExtensionFilter is an allow-list of file suffixes. An empty filter
// accepts every file.
type ExtensionFilter struct {
	allowed map[string]struct{}
}

// NewExtensionFilter resolves normalized tokens into a flat suffix set.
// A token either names a preset or is taken verbatim as a literal
// extension. Tokens that name no preset and do not start with a dot still
// degrade to literals, with a warning.
func NewExtensionFilter(tokens []string, logger *slog.Logger) *ExtensionFilter {
	if logger == nil {
		logger = slog.Default()
	}

	f := &ExtensionFilter{allowed: make(map[string]struct{}, len(tokens))}
	for _, token := range tokens {
		if suffixes, ok := extensionPresets[token]; ok {
			for _, suffix := range suffixes {
				f.allowed[suffix] = struct{}{}
			}
			continue
		}

		if !strings.HasPrefix(token, ".") {
			logger.Warn("Extension filter token matches no preset and has no leading dot, treating as literal extension", "token", token)
		}
		f.allowed[token] = struct{}{}
	}

	return f
}

// Empty reports whether the filter has no entries.
func (f *ExtensionFilter) Empty() bool {
	return len(f.allowed) == 0
}

// Allows reports whether the file name's suffix is in scope. The check is
// case-insensitive; an empty filter allows everything.
func (f *ExtensionFilter) Allows(name string) bool {
	if len(f.allowed) == 0 {
		return true
	}

	_, ok := f.allowed[strings.ToLower(filepath.Ext(name))]

	return ok
}

// Extensions returns the resolved suffix set in sorted order.
func (f *ExtensionFilter) Extensions() []string {
	return slices.Sorted(maps.Keys(f.allowed))
}
