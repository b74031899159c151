package domain

// PostType is the WordPress post_type values this service migrates.
type PostType string

const (
	TypePost PostType = "post"
	TypePage PostType = "page"
)

// StatusPublish is the only post_status kept by the extractors.
const StatusPublish = "publish"

// IsMigratable reports whether a raw post_type value is one we carry over.
func IsMigratable(postType string) bool {
	return postType == string(TypePost) || postType == string(TypePage)
}

// TermRef is a category or tag reference attached to a post.
type TermRef struct {
	Name string
	Slug string
}

// Post is the canonical representation of a WordPress post or page inside this service.
// Both extractors (SQL dump and WXR) map into this model and every orchestrator maps from it.
type Post struct {
	ID      int    // WordPress ID
	Author  string // display name (or raw post_author id on the SQL path)
	Date    string // site-local post_date, passed through unparsed
	DateGMT string // post_date_gmt; zero date for never-published rows
	Content string
	Title   string
	Excerpt string
	Status  string // always "publish" once extracted
	Slug    string
	Type    PostType

	// Only populated by the WXR extractor.
	Categories []TermRef
	Tags       []TermRef
}

// SplitByType partitions posts into posts and pages, preserving order.
func SplitByType(all []Post) (posts []Post, pages []Post) {
	for _, p := range all {
		switch p.Type {
		case TypePost:
			posts = append(posts, p)
		case TypePage:
			pages = append(pages, p)
		}
	}
	return posts, pages
}
