package promotions

import "strings"

// MakeSlug sanitizes free text into a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, no leading or
// trailing hyphen. "My Song!! Title" becomes "my-song-title".
func MakeSlug(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
