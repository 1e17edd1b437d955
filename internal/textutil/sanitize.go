package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename
// fragment. Slashes, backslashes, colons, and asterisks become dashes; other
// unsafe characters are removed. Surrounding whitespace is kept so that a
// suffix such as " (crop)" survives.
func SanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	return fileNameReplacer.Replace(name)
}
