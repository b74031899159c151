package strapi

// PostInput is the create payload for a post.
type PostInput struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Content        string `json:"content"`
	Excerpt        string `json:"excerpt"`
	PublishedDate  string `json:"publishedDate,omitempty"`
	Author         string `json:"author"`
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
	WPPostID       int    `json:"wpPostId"`
	PublishedAt    string `json:"publishedAt,omitempty"`
}

// PageInput is the create payload for a page.
type PageInput struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Content        string `json:"content"`
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
	WPPageID       int    `json:"wpPageId"`
	PublishedAt    string `json:"publishedAt,omitempty"`
}

// TermInput is the create payload for a category or tag.
type TermInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RelationsInput replaces a post's category and tag relations.
type RelationsInput struct {
	Categories []any `json:"categories,omitempty"`
	Tags       []any `json:"tags,omitempty"`
}

// ContentInput replaces a post's body.
type ContentInput struct {
	Content string `json:"content"`
}
