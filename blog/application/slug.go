package application

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugLength is the maximum length of a base slug before any
// disambiguation suffix is appended.
const maxSlugLength = 50

// SlugCounter counts existing posts whose slug is exactly base or base
// followed by a numeric suffix, case-insensitively.
type SlugCounter interface {
	CountMatchingSlugs(ctx context.Context, base string) (int, error)
}

// stripMarks removes combining marks after NFD decomposition, turning
// "Café" into "Cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a title to its base slug: lowercase ASCII with runs of
// anything other than letters and digits collapsed to single hyphens,
// trimmed of leading and trailing hyphens, and truncated to maxSlugLength.
func Slugify(title string) string {
	folded, _, err := transform.String(stripMarks, title)
	if err != nil {
		folded = title
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	slug := b.String()
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

// GenerateSlug derives a unique slug for title against the posts counted by
// counter. If no existing slug matches the base slug (optionally followed by
// a numeric suffix), the base slug is returned unchanged; otherwise the base
// gets a "-<count+1>" suffix.
//
// The count-then-use step is not atomic against concurrent creations. The
// storage layer enforces slug uniqueness with a constraint, and creation
// retries generation on conflict, so a colliding result here is caught
// before it is ever visible.
func GenerateSlug(ctx context.Context, title string, counter SlugCounter) (string, error) {
	base := Slugify(title)

	count, err := counter.CountMatchingSlugs(ctx, base)
	if err != nil {
		return "", fmt.Errorf("failed to count existing slugs: %w", err)
	}

	if count == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, count+1), nil
}
