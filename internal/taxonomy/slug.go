package taxonomy

import (
	"strings"
	"unicode"
)

// Slugify turns a display name into a URL-safe slug. Non-alphanumeric runs
// collapse to a single hyphen; leading and trailing hyphens are trimmed.
func Slugify(name string, caseSensitive bool) string {
	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if caseSensitive {
				b.WriteRune(r)
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
