package mappers

import (
	"testing"

	"wp2strapi/internal/domain"
)

func TestPostToStrapi(t *testing.T) {
	p := domain.Post{
		ID:      42,
		Author:  "frank",
		Date:    "2023-04-05 08:07:08",
		DateGMT: "2023-04-05 06:07:08",
		Content: "<p>Hello</p>",
		Title:   "Hello World",
		Excerpt: "A greeting",
		Status:  domain.StatusPublish,
		Slug:    "hello-world",
		Type:    domain.TypePost,
	}

	in := PostToStrapi(p)

	if in.Title != p.Title || in.SEOTitle != p.Title {
		t.Errorf("Expected Title and SEOTitle to be %q, got %q / %q", p.Title, in.Title, in.SEOTitle)
	}
	if in.Excerpt != p.Excerpt || in.SEODescription != p.Excerpt {
		t.Errorf("Expected Excerpt and SEODescription to be %q, got %q / %q", p.Excerpt, in.Excerpt, in.SEODescription)
	}
	if in.WPPostID != 42 {
		t.Errorf("Expected WPPostID to be 42, got %d", in.WPPostID)
	}
	if in.PublishedDate != "2023-04-05T06:07:08Z" || in.PublishedAt != in.PublishedDate {
		t.Errorf("Expected RFC 3339 dates, got %q / %q", in.PublishedDate, in.PublishedAt)
	}
	if in.Author != "frank" {
		t.Errorf("Expected Author to be 'frank', got %q", in.Author)
	}

	p.Author = ""
	if got := PostToStrapi(p).Author; got != "Admin" {
		t.Errorf("Expected default Author 'Admin', got %q", got)
	}
}

func TestPageToStrapi(t *testing.T) {
	in := PageToStrapi(domain.Post{ID: 7, Title: "About", Content: "c", Excerpt: "e", Slug: "about", Type: domain.TypePage})

	if in.WPPageID != 7 {
		t.Errorf("Expected WPPageID to be 7, got %d", in.WPPageID)
	}
	if in.SEODescription != "e" || in.SEOTitle != "About" {
		t.Errorf("Unexpected SEO fields %q / %q", in.SEOTitle, in.SEODescription)
	}
	if in.PublishedAt != "" {
		t.Errorf("Expected empty PublishedAt without a date, got %q", in.PublishedAt)
	}
}

func TestTermToStrapi(t *testing.T) {
	in := TermToStrapi(domain.TermRef{Name: "Business Tips", Slug: "business%e2%80%99s-tips"})
	if in.Name != "Business Tips" {
		t.Errorf("Expected name to be kept, got %q", in.Name)
	}
	if in.Slug != "business-e2-80-99s-tips" {
		t.Errorf("Expected sanitized slug, got %q", in.Slug)
	}
}

func TestFormatDate(t *testing.T) {
	testCases := []struct {
		local, gmt string
		want       string
	}{
		{"2020-01-02 05:04:05", "2020-01-02 03:04:05", "2020-01-02T03:04:05Z"},
		{"2020-01-02 05:04:05", "", "2020-01-02 05:04:05"},
		{"2020-01-02 05:04:05", "0000-00-00 00:00:00", "2020-01-02 05:04:05"},
		{"2020-01-02 05:04:05", "garbage", "2020-01-02 05:04:05"},
		{"0000-00-00 00:00:00", "0000-00-00 00:00:00", ""},
		{"", "", ""},
		{"Thu, 02 Jan 2020", "", "Thu, 02 Jan 2020"},
	}
	for _, tc := range testCases {
		if got := FormatDate(tc.local, tc.gmt); got != tc.want {
			t.Errorf("FormatDate(%q, %q) = %q, want %q", tc.local, tc.gmt, got, tc.want)
		}
	}
}
