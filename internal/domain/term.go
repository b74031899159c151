package domain

// Term is a WordPress category or tag.
type Term struct {
	ID   int
	Name string
	Slug string
}

// Terms is the taxonomy catalog returned by an extractor.
type Terms struct {
	Categories []Term
	Tags       []Term

	// Approximate is set when the source could not tell categories from tags
	// (the SQL path puts every term in Categories).
	Approximate bool
}

// Ref converts a catalog term into the reference shape used on posts.
func (t Term) Ref() TermRef {
	return TermRef{Name: t.Name, Slug: t.Slug}
}

// UniqueTerms collects the distinct categories and tags referenced by posts, keyed by slug.
// The first occurrence of a slug wins.
func UniqueTerms(posts []Post) (categories map[string]TermRef, tags map[string]TermRef) {
	categories = map[string]TermRef{}
	tags = map[string]TermRef{}
	for _, p := range posts {
		for _, c := range p.Categories {
			if _, ok := categories[c.Slug]; !ok {
				categories[c.Slug] = c
			}
		}
		for _, t := range p.Tags {
			if _, ok := tags[t.Slug]; !ok {
				tags[t.Slug] = t
			}
		}
	}
	return categories, tags
}
