package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	// Matches characters outside the slug alphabet (before dashing).
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	// Matches runs of whitespace and dashes.
	slugSeparatorRe = regexp.MustCompile(`[\s-]+`)
)

// Slugify converts a title or name into its canonical URL slug.
//
// Rules:
//  1. Trim whitespace and lowercase
//  2. Strip characters outside [a-z0-9\s-]
//  3. Collapse runs of whitespace/dashes into a single dash
//  4. Trim leading/trailing dashes
//
// Examples:
//
//	"Chiều Hôm Ấy"   → "chiu-hm-y"
//	"Lost & Found"   → "lost-found"
//	"  multi   word" → "multi-word"
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = slugInvalidRe.ReplaceAllString(s, "")
	s = slugSeparatorRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// slugExistsFunc reports whether a slug is already taken for an entity
// kind. currentSlug (may be empty) names the caller's own slug so
// renames do not collide with themselves.
type slugExistsFunc func(ctx context.Context, slug string) (bool, error)

// resolveExplicitSlug implements the slug policy for explicit-slug kinds
// (artists, albums, genres): the caller may supply a slug, otherwise one
// is derived from the name. Either way a collision is a hard conflict;
// these kinds are never disambiguated automatically.
func resolveExplicitSlug(ctx context.Context, supplied, name, currentSlug string, exists slugExistsFunc) (string, error) {
	slug := supplied
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == currentSlug {
		return slug, nil
	}
	taken, err := exists(ctx, slug)
	if err != nil {
		return "", err
	}
	if taken {
		return "", fmt.Errorf("slug %q: %w", slug, ErrSlugExists)
	}
	return slug, nil
}

// allocateAutoSlug implements the slug policy for auto-slug kinds (songs,
// playlists): derive the slug from the title and, on collision, append a
// monotonically increasing millisecond stamp until a free slug is found.
// Collisions are resolved internally and never surface to the caller.
func (s *service) allocateAutoSlug(ctx context.Context, title, currentSlug string, exists slugExistsFunc) (string, error) {
	base := Slugify(title)
	if base == currentSlug {
		return base, nil
	}
	taken, err := exists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	stamp := s.now().UnixMilli()
	for {
		candidate := fmt.Sprintf("%s-%d", base, stamp)
		if candidate == currentSlug {
			return candidate, nil
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		stamp++
	}
}
