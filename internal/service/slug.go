package service

import (
	"strings"
	"unicode"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	slugSuffixLength = 6
	maxSlugBase      = 80
)

// Slugify lowercases title, strips accents and joins the remaining
// alphanumeric runs with hyphens.
func Slugify(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	slug := b.String()
	if len(slug) > maxSlugBase {
		slug = strings.TrimRight(slug[:maxSlugBase], "-")
	}
	if slug == "" {
		return "job"
	}
	return slug
}

// NewSlug returns Slugify(title) with a short random suffix.
func NewSlug(title string) string {
	id := strings.ToLower(ulid.Make().String())
	return Slugify(title) + "-" + id[len(id)-slugSuffixLength:]
}
