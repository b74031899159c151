package migrate

import (
	"context"
	"fmt"

	"wp2strapi/internal/strapi"
)

// SwapResult reports a categories/tags swap.
type SwapResult struct {
	CategoriesBefore int
	TagsBefore       int
	CategoriesAfter  int
	TagsAfter        int

	TagsCreated       int
	CategoriesCreated int
	PostsUpdated      int
	PostsFailed       int
	Deleted           int
	DeleteFailed      int
}

// Swap moves every category into the tags collection and every tag into the
// categories collection, re-pointing post relations before the old entries
// are deleted.
func (m *Migrator) Swap(ctx context.Context) (SwapResult, error) {
	var res SwapResult

	oldCats, err := m.cms.ListCategories(ctx)
	if err != nil {
		return res, fmt.Errorf("migrate: swap: %w", err)
	}
	oldTags, err := m.cms.ListTags(ctx)
	if err != nil {
		return res, fmt.Errorf("migrate: swap: %w", err)
	}
	res.CategoriesBefore, res.TagsBefore = len(oldCats), len(oldTags)

	m.printf("\nCreating %d tags from categories...\n", len(oldCats))
	catToTag := map[string]any{}
	for _, c := range oldCats {
		if e, ok := m.cms.CreateTag(ctx, strapi.TermInput{Name: c.Name, Slug: c.Slug}); ok {
			catToTag[c.Ref()] = e.RelationKey()
			res.TagsCreated++
		}
	}

	m.printf("Creating %d categories from tags...\n", len(oldTags))
	tagToCat := map[string]any{}
	for _, t := range oldTags {
		if e, ok := m.cms.CreateCategory(ctx, strapi.TermInput{Name: t.Name, Slug: t.Slug}); ok {
			tagToCat[t.Ref()] = e.RelationKey()
			res.CategoriesCreated++
		}
	}

	posts, err := m.cms.ListPosts(ctx, strapi.Query{Populate: []string{"categories", "tags"}})
	if err != nil {
		return res, fmt.Errorf("migrate: swap: %w", err)
	}

	m.printf("Updating %d posts...\n", len(posts))
	for _, p := range posts {
		newTags := remap(p.Categories, catToTag)
		newCats := remap(p.Tags, tagToCat)
		if len(newTags) == 0 && len(newCats) == 0 {
			continue
		}
		if _, ok := m.cms.UpdatePost(ctx, p.Ref(), strapi.RelationsInput{Categories: newCats, Tags: newTags}); ok {
			res.PostsUpdated++
		} else {
			res.PostsFailed++
		}
	}

	m.printf("Deleting %d old categories and %d old tags...\n", len(oldCats), len(oldTags))
	for _, c := range oldCats {
		m.countDelete(&res, m.cms.DeleteCategory(ctx, c.Ref()))
	}
	for _, t := range oldTags {
		m.countDelete(&res, m.cms.DeleteTag(ctx, t.Ref()))
	}

	newCats, err := m.cms.ListCategories(ctx)
	if err != nil {
		return res, fmt.Errorf("migrate: swap verify: %w", err)
	}
	newTags, err := m.cms.ListTags(ctx)
	if err != nil {
		return res, fmt.Errorf("migrate: swap verify: %w", err)
	}
	res.CategoriesAfter, res.TagsAfter = len(newCats), len(newTags)

	return res, nil
}

func (m *Migrator) countDelete(res *SwapResult, ok bool) {
	if ok {
		res.Deleted++
	} else {
		res.DeleteFailed++
	}
}

func remap(rel strapi.Relations, to map[string]any) []any {
	var out []any
	for _, e := range rel {
		if key, ok := to[e.Ref()]; ok {
			out = append(out, key)
		}
	}
	return out
}
