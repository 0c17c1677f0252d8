package pattern

import "regexp"

const maxFilenameRunes = 50

var (
	disallowedFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	filenameWhitespace      = regexp.MustCompile(`\s+`)
)

// SanitizeFilename keeps letters, digits, whitespace and hyphens, turns
// whitespace runs into underscores and cuts the result to 50 characters.
func SanitizeFilename(name string) string {
	name = disallowedFilenameChars.ReplaceAllString(name, "")
	name = filenameWhitespace.ReplaceAllString(name, "_")

	runes := []rune(name)
	if len(runes) > maxFilenameRunes {
		runes = runes[:maxFilenameRunes]
	}
	return string(runes)
}

// DocumentFilename is the archive entry name for one language
func DocumentFilename(title, displayName string) string {
	return SanitizeFilename(title) + "_" + displayName + ".pdf"
}

// ArchiveFilename is the suggested download name of the whole archive
func ArchiveFilename(title string) string {
	return SanitizeFilename(title) + "_alla-språk.zip"
}
