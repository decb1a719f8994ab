package taxonomy

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)
	slugRegex     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// DeriveSlug turns a display name into a URL-safe slug.
func DeriveSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// normalizeSlug trims and lower-cases an explicit slug, or derives one from name
// when none was supplied.
func normalizeSlug(slug, name string) (string, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		slug = DeriveSlug(name)
	}
	if slug == "" {
		return "", invalid("slug", "cannot be derived from name")
	}
	if !slugRegex.MatchString(slug) {
		return "", invalid("slug", "must contain only letters, digits and single dashes")
	}
	return slug, nil
}
