package catalog

import "strings"

// Slugify derives the filename-safe identifier used for a record's rendered
// output. The transformation is deliberately lossy: lowercase ASCII letters
// and hyphens survive, spaces become hyphens, and every other rune is
// dropped without transliteration ("Equació de Segon Grau" becomes
// "equaci-de-segon-grau"). Slugs are only required to be unique among
// siblings, where they decide output filenames.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, ch := range strings.ToLower(title) {
		switch {
		case ch >= 'a' && ch <= 'z', ch == '-':
			b.WriteRune(ch)
		case ch == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}
