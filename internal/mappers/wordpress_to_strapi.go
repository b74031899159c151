package mappers

import (
	"strings"
	"time"

	"wp2strapi/internal/domain"
	"wp2strapi/internal/strapi"
)

const defaultAuthor = "Admin"

const wpDateLayout = "2006-01-02 15:04:05"

func PostToStrapi(p domain.Post) strapi.PostInput {
	date := FormatDate(p.Date, p.DateGMT)
	return strapi.PostInput{
		Title:          p.Title,
		Slug:           p.Slug,
		Content:        p.Content,
		Excerpt:        p.Excerpt,
		PublishedDate:  date,
		Author:         pick(p.Author, defaultAuthor),
		SEOTitle:       p.Title,
		SEODescription: p.Excerpt,
		WPPostID:       p.ID,
		PublishedAt:    date,
	}
}

func PageToStrapi(p domain.Post) strapi.PageInput {
	return strapi.PageInput{
		Title:          p.Title,
		Slug:           p.Slug,
		Content:        p.Content,
		SEOTitle:       p.Title,
		SEODescription: p.Excerpt,
		WPPageID:       p.ID,
		PublishedAt:    FormatDate(p.Date, p.DateGMT),
	}
}

// TermToStrapi keeps the WordPress name and makes the slug valid for Strapi.
func TermToStrapi(t domain.TermRef) strapi.TermInput {
	return strapi.TermInput{
		Name: t.Name,
		Slug: TermSlug(t),
	}
}

// TermSlug is the slug a WordPress term has once created in Strapi. Lookups
// against created terms must go through it too.
func TermSlug(t domain.TermRef) string {
	return strapi.SanitizeSlug(t.Slug, t.Name)
}

// FormatDate picks the publish date sent to Strapi. A parseable post_date_gmt
// becomes RFC 3339 UTC. Otherwise the site-local post_date is passed through
// as is, since its offset is unknown. Zero dates count as missing.
func FormatDate(local, gmt string) string {
	if gmt = strings.TrimSpace(gmt); !isZeroDate(gmt) {
		if t, err := time.Parse(wpDateLayout, gmt); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	if local = strings.TrimSpace(local); isZeroDate(local) {
		return ""
	}
	return local
}

func isZeroDate(s string) bool {
	return s == "" || strings.HasPrefix(s, "0000-00-00")
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
