package content

import "github.com/goliatone/go-slug"

// Slugify derives a filename-safe slug from a post title.
func Slugify(title string) (string, error) {
	return slug.Normalize(title)
}

// IsValidSlug reports whether value is an acceptable slug.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
