package strapi

import (
	"regexp"
	"strings"
)

const (
	maxSlugLen   = 80
	maxSourceLen = 100
	untitledSlug = "untitled"
)

var slugInvalidRe = regexp.MustCompile(`[^a-z0-9\-_.~]+`)

// SanitizeSlug makes slug match Strapi's uid pattern [A-Za-z0-9-_.~]. An
// empty, URL-shaped or overlong slug is replaced by the title first.
func SanitizeSlug(slug, title string) string {
	if slug == "" || strings.Contains(slug, "://") || len(slug) > maxSourceLen {
		slug = title
	}

	s := slugInvalidRe.ReplaceAllString(strings.ToLower(slug), "-")
	s = strings.Trim(s, "-")

	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
		if i := strings.LastIndexByte(s, '-'); i > 0 {
			s = s[:i]
		}
		s = strings.TrimRight(s, "-")
	}

	if s == "" {
		return untitledSlug
	}
	return s
}
