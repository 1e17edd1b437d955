package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldExt returns the case-folded form of a file extension, so ".JPG",
// ".jpg", and ".Jpg" compare equal. Unicode-aware, unlike strings.ToLower on
// its own for names such as ".ſvg".
func FoldExt(ext string) string {
	return cases.Fold().String(strings.TrimSpace(ext))
}

// ExtensionSet is a case-insensitive set of file extensions with leading dots.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from a whitespace-separated list. Entries
// without a leading dot get one.
func NewExtensionSet(list string) ExtensionSet {
	set := make(ExtensionSet)
	for _, field := range strings.Fields(list) {
		if !strings.HasPrefix(field, ".") {
			field = "." + field
		}
		if field == "." {
			continue
		}
		set[FoldExt(field)] = struct{}{}
	}
	return set
}

// Contains reports whether ext is in the set, ignoring case.
func (s ExtensionSet) Contains(ext string) bool {
	if ext == "" {
		return false
	}
	_, ok := s[FoldExt(ext)]
	return ok
}
