package brew

import (
	"regexp"
	"strings"
)

// slugIDLength is the length of a canonical UUID string. The codec leans on
// every record id being exactly this long; decode validates the length
// instead of assuming it.
const slugIDLength = 36

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// EncodeSlug builds the URL path segment for a recipe: the method lowercased
// with every run of non-alphanumeric characters collapsed to a hyphen,
// followed by a hyphen and the id.
func EncodeSlug(method, id string) string {
	m := nonAlnum.ReplaceAllString(strings.ToLower(method), "-")
	return m + "-" + id
}

// DecodeSlug recovers the id from a slug by taking its trailing
// slugIDLength characters; the method portion is discarded. Slugs shorter
// than an id are returned unchanged, so malformed input never fails.
func DecodeSlug(slug string) string {
	if len(slug) < slugIDLength {
		return slug
	}
	return slug[len(slug)-slugIDLength:]
}
